package services

// InvestmentComponent is the decorated view of an investment. Each
// decorator forwards to its immediate inner component, so composition
// is order-dependent: callers must apply decorators in a fixed order
// for reproducible numbers. Decorate below pins that order.
type InvestmentComponent interface {
	Investment() *Investment
	Description() string
	Value() float64
	Risk() float64
	Metrics() map[string]interface{}
}

// BaseInvestment is the undecorated component.
type BaseInvestment struct {
	investment *Investment
}

func NewBaseInvestment(inv *Investment) *BaseInvestment {
	return &BaseInvestment{investment: inv}
}

func (b *BaseInvestment) Investment() *Investment { return b.investment }

func (b *BaseInvestment) Description() string {
	if desc := b.investment.Transaction().Description; desc != "" {
		return desc
	}
	return "Investment"
}

func (b *BaseInvestment) Value() float64 {
	return b.investment.Transaction().Amount.InexactFloat64()
}

func (b *BaseInvestment) Risk() float64 {
	return b.investment.Risk()
}

func (b *BaseInvestment) Metrics() map[string]interface{} {
	return map[string]interface{}{
		"value": b.Value(),
		"risk":  b.Risk(),
	}
}

// RiskAnalysisDecorator scales the inner risk by metadata volatility
// and market condition.
type RiskAnalysisDecorator struct {
	inner InvestmentComponent
}

func NewRiskAnalysisDecorator(inner InvestmentComponent) *RiskAnalysisDecorator {
	return &RiskAnalysisDecorator{inner: inner}
}

func (d *RiskAnalysisDecorator) Investment() *Investment { return d.inner.Investment() }
func (d *RiskAnalysisDecorator) Value() float64          { return d.inner.Value() }

func (d *RiskAnalysisDecorator) Description() string {
	return d.inner.Description() + " (with Risk Analysis)"
}

func (d *RiskAnalysisDecorator) Risk() float64 {
	meta := d.Investment().Metadata()
	volatility := meta.NumberOr("volatility", 0.1)
	marketCondition := meta.NumberOr("marketCondition", 0.5)
	return d.inner.Risk() * (1 + volatility) * marketCondition
}

func (d *RiskAnalysisDecorator) Metrics() map[string]interface{} {
	metrics := d.inner.Metrics()
	baseRisk := d.inner.Risk()
	adjusted := d.Risk()

	metrics["risk"] = adjusted
	breakdown := map[string]interface{}{
		"baseRisk":     baseRisk,
		"adjustedRisk": adjusted,
	}
	if baseRisk != 0 {
		breakdown["riskFactor"] = adjusted / baseRisk
	}
	metrics["riskBreakdown"] = breakdown

	return metrics
}

// ROICalculationDecorator projects the inner value forward by the
// state's ROI.
type ROICalculationDecorator struct {
	inner InvestmentComponent
}

func NewROICalculationDecorator(inner InvestmentComponent) *ROICalculationDecorator {
	return &ROICalculationDecorator{inner: inner}
}

func (d *ROICalculationDecorator) Investment() *Investment { return d.inner.Investment() }
func (d *ROICalculationDecorator) Risk() float64           { return d.inner.Risk() }

func (d *ROICalculationDecorator) Description() string {
	return d.inner.Description() + " (with ROI Calculation)"
}

func (d *ROICalculationDecorator) Value() float64 {
	roi := d.Investment().ROI()
	return d.inner.Value() * (1 + roi)
}

func (d *ROICalculationDecorator) Metrics() map[string]interface{} {
	metrics := d.inner.Metrics()
	roi := d.Investment().ROI()

	metrics["value"] = d.Value()
	metrics["roi"] = roi
	metrics["projectedReturn"] = d.inner.Value() * roi

	return metrics
}

// PerformanceTrackingDecorator attaches historical performance data to
// the metrics without touching value or risk.
type PerformanceTrackingDecorator struct {
	inner InvestmentComponent
}

func NewPerformanceTrackingDecorator(inner InvestmentComponent) *PerformanceTrackingDecorator {
	return &PerformanceTrackingDecorator{inner: inner}
}

func (d *PerformanceTrackingDecorator) Investment() *Investment { return d.inner.Investment() }
func (d *PerformanceTrackingDecorator) Value() float64          { return d.inner.Value() }
func (d *PerformanceTrackingDecorator) Risk() float64           { return d.inner.Risk() }

func (d *PerformanceTrackingDecorator) Description() string {
	return d.inner.Description() + " (with Performance Tracking)"
}

func (d *PerformanceTrackingDecorator) Metrics() map[string]interface{} {
	metrics := d.inner.Metrics()
	meta := d.Investment().Metadata()

	trend := meta.String("performanceTrend")
	if trend == "" {
		trend = "stable"
	}
	historical, ok := meta["historicalReturns"]
	if !ok {
		historical = []interface{}{}
	}

	metrics["performance"] = map[string]interface{}{
		"trend":             trend,
		"historicalReturns": historical,
		"volatilityIndex":   meta.NumberOr("volatility", 0.1),
		"marketCorrelation": meta.NumberOr("marketCorrelation", 0.5),
	}

	return metrics
}

// DecoratorOptions selects which decorators to apply.
type DecoratorOptions struct {
	WithRiskAnalysis        bool
	WithROICalculation      bool
	WithPerformanceTracking bool
}

// Decorate wraps the investment's base component with the selected
// decorators in the canonical order: risk analysis, then ROI
// calculation, then performance tracking.
func Decorate(inv *Investment, opts DecoratorOptions) InvestmentComponent {
	var component InvestmentComponent = NewBaseInvestment(inv)

	if opts.WithRiskAnalysis {
		component = NewRiskAnalysisDecorator(component)
	}
	if opts.WithROICalculation {
		component = NewROICalculationDecorator(component)
	}
	if opts.WithPerformanceTracking {
		component = NewPerformanceTrackingDecorator(component)
	}

	return component
}

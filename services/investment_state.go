package services

import (
	"github.com/finflowhq/finflow-api/models"
)

// Investment state names. There is no persisted state: the state of an
// investment is re-derived from its metadata every time it is read.
const (
	StateActive    = "active"
	StatePending   = "pending"
	StateCompleted = "completed"
	StateLosing    = "losing"
)

// InvestmentState supplies the per-state risk and ROI formulas plus a
// suggested next action. Implementations are stateless.
type InvestmentState interface {
	Name() string
	Color() string
	Icon() string
	Risk(inv *Investment) float64
	ROI(inv *Investment) float64
	NextAction() string
}

// Investment wraps an investment-typed transaction with its derived
// state. Synthesized per request, never stored.
type Investment struct {
	transaction *models.Transaction
	state       InvestmentState
	metadata    models.Metadata
}

// NewInvestment derives the state from the transaction's metadata:
// status "completed" and "pending" win outright, an explicitly negative
// roi field means losing, anything else is active. The roi read here is
// the stored metadata field, not a computed value, so an investment
// whose currentValue has dropped below its amount still derives
// "active" until roi is written.
func NewInvestment(tx *models.Transaction) *Investment {
	meta := tx.Metadata
	var state InvestmentState

	switch meta.String("status") {
	case StateCompleted:
		state = CompletedState{}
	case StatePending:
		state = PendingState{}
	default:
		if roi, ok := meta.Number("roi"); ok && roi < 0 {
			state = LosingState{}
		} else {
			state = ActiveState{}
		}
	}

	return &Investment{transaction: tx, state: state, metadata: meta}
}

func (i *Investment) Transaction() *models.Transaction { return i.transaction }
func (i *Investment) State() InvestmentState           { return i.state }
func (i *Investment) Metadata() models.Metadata        { return i.metadata }

func (i *Investment) ChangeState(state InvestmentState) {
	i.state = state
}

func (i *Investment) Risk() float64 {
	return i.state.Risk(i)
}

func (i *Investment) ROI() float64 {
	return i.state.ROI(i)
}

func (i *Investment) NextAction() string {
	return i.state.NextAction()
}

func (i *Investment) amount() float64 {
	return i.transaction.Amount.InexactFloat64()
}

// ActiveState: risk scales with position size, ROI against the stored
// current value.
type ActiveState struct{}

func (ActiveState) Name() string  { return StateActive }
func (ActiveState) Color() string { return "green" }
func (ActiveState) Icon() string  { return "🚀" }

func (ActiveState) Risk(inv *Investment) float64 {
	risk := inv.amount() / 10000
	if risk > 0.8 {
		risk = 0.8
	}
	return risk
}

func (ActiveState) ROI(inv *Investment) float64 {
	initial := inv.amount()
	current := inv.Metadata().NumberOr("currentValue", initial)
	return (current - initial) / initial
}

func (ActiveState) NextAction() string { return "Monitor performance" }

// PendingState: unknown risk, no ROI yet.
type PendingState struct{}

func (PendingState) Name() string  { return StatePending }
func (PendingState) Color() string { return "yellow" }
func (PendingState) Icon() string  { return "⏳" }

func (PendingState) Risk(inv *Investment) float64 { return 0.5 }
func (PendingState) ROI(inv *Investment) float64  { return 0 }
func (PendingState) NextAction() string           { return "Confirm investment" }

// CompletedState: risk is gone, ROI against the realized final value.
type CompletedState struct{}

func (CompletedState) Name() string  { return StateCompleted }
func (CompletedState) Color() string { return "blue" }
func (CompletedState) Icon() string  { return "✅" }

func (CompletedState) Risk(inv *Investment) float64 { return 0 }

func (CompletedState) ROI(inv *Investment) float64 {
	initial := inv.amount()
	final := inv.Metadata().NumberOr("finalValue", initial)
	return (final - initial) / initial
}

func (CompletedState) NextAction() string { return "Analyze results" }

// LosingState: high risk, ROI formula identical to active.
type LosingState struct{}

func (LosingState) Name() string  { return StateLosing }
func (LosingState) Color() string { return "red" }
func (LosingState) Icon() string  { return "📉" }

func (LosingState) Risk(inv *Investment) float64 { return 0.9 }

func (LosingState) ROI(inv *Investment) float64 {
	initial := inv.amount()
	current := inv.Metadata().NumberOr("currentValue", initial)
	return (current - initial) / initial
}

func (LosingState) NextAction() string { return "Consider cutting losses" }

// ValidStateName reports whether name is one of the four states.
// Used to validate the update-state request body.
func ValidStateName(name string) bool {
	switch name {
	case StateActive, StatePending, StateCompleted, StateLosing:
		return true
	}
	return false
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/models"
	"github.com/finflowhq/finflow-api/services"
	"github.com/finflowhq/finflow-api/utils"
)

type InvestmentHandler struct {
	Service *services.InvestmentService
	WS      *WSHandler
}

func NewInvestmentHandler(service *services.InvestmentService, ws *WSHandler) *InvestmentHandler {
	return &InvestmentHandler{Service: service, WS: ws}
}

// investmentView is one decorated investment as returned to clients.
type investmentView struct {
	Transaction *models.Transaction    `json:"transaction"`
	State       string                 `json:"state"`
	Risk        float64                `json:"risk"`
	ROI         float64                `json:"roi"`
	NextAction  string                 `json:"next_action"`
	Metrics     map[string]interface{} `json:"metrics"`
}

// GetInvestments lists the user's investments with derived state and
// optional decoration. Filters and decorator flags come from query
// parameters: minAmount, maxAmount, category, from, to,
// withRiskAnalysis, withROICalculation, withPerformanceTracking.
func (h *InvestmentHandler) GetInvestments(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	filters, err := parseInvestmentFilters(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts := services.DecoratorOptions{
		WithRiskAnalysis:        c.Query("withRiskAnalysis") == "true",
		WithROICalculation:      c.Query("withROICalculation") == "true",
		WithPerformanceTracking: c.Query("withPerformanceTracking") == "true",
	}

	transactions, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		utils.SafeError("Failed to fetch investments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch investments"})
		return
	}

	components := h.Service.Decorated(transactions, filters, opts)

	views := make([]investmentView, 0, len(components))
	for _, component := range components {
		inv := component.Investment()
		views = append(views, investmentView{
			Transaction: inv.Transaction(),
			State:       inv.State().Name(),
			Risk:        component.Risk(),
			ROI:         inv.ROI(),
			NextAction:  inv.NextAction(),
			Metrics:     component.Metrics(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"investments": views})
}

// GetSummary aggregates the portfolio with ROI projection applied.
func (h *InvestmentHandler) GetSummary(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summary, err := h.Service.Summary(c.Request.Context(), userID)
	if err != nil {
		utils.SafeError("Failed to compute investment summary: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// UpdateState merges a status change plus extra metadata fields into
// an investment transaction.
func (h *InvestmentHandler) UpdateState(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateInvestmentStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !services.ValidStateName(req.NewState) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state name"})
		return
	}

	tx, err := h.Service.UpdateState(c.Request.Context(), userID, req)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Investment not found"})
		return
	}
	if err != nil {
		utils.SafeError("Failed to update investment state: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update investment state"})
		return
	}

	h.WS.BroadcastUpdate(userID, "investments")

	c.JSON(http.StatusOK, gin.H{"transaction": tx, "message": "Investment state updated"})
}

func parseInvestmentFilters(c *gin.Context) (services.InvestmentFilters, error) {
	var filters services.InvestmentFilters

	if raw := c.Query("minAmount"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, errors.New("invalid minAmount")
		}
		filters.MinAmount = &min
	}
	if raw := c.Query("maxAmount"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			return filters, errors.New("invalid maxAmount")
		}
		filters.MaxAmount = &max
	}
	filters.CategoryID = c.Query("category")

	if fromRaw, toRaw := c.Query("from"), c.Query("to"); fromRaw != "" && toRaw != "" {
		from, err := utils.ParseUTC(fromRaw)
		if err != nil {
			return filters, errors.New("invalid from date")
		}
		to, err := utils.ParseUTC(toRaw)
		if err != nil {
			return filters, errors.New("invalid to date")
		}
		filters.From = &from
		filters.To = &to
	}

	return filters, nil
}

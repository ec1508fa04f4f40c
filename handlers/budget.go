package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/models"
	"github.com/finflowhq/finflow-api/services"
	"github.com/finflowhq/finflow-api/utils"
)

type BudgetHandler struct {
	Service *services.BudgetService
	WS      *WSHandler
}

func NewBudgetHandler(service *services.BudgetService, ws *WSHandler) *BudgetHandler {
	return &BudgetHandler{Service: service, WS: ws}
}

// GetBudgets lists the user's budgets with derived spent/remaining.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	budgets, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		utils.SafeError("Failed to fetch budgets: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget type"})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}
	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	budget, err := h.Service.Create(c.Request.Context(), userID, req)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		utils.SafeError("Failed to create budget: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	h.WS.BroadcastUpdate(userID, "budgets")

	c.JSON(http.StatusCreated, gin.H{"budget": budget, "message": "Budget created successfully"})
}

func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.EndDate.After(req.StartDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	err := h.Service.Update(c.Request.Context(), userID, budgetID, req)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	h.WS.BroadcastUpdate(userID, "budgets")

	c.JSON(http.StatusOK, gin.H{"message": "Budget updated successfully"})
}

func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID := middleware.GetUserID(c)
	budgetID := c.Param("id")

	err := h.Service.Delete(c.Request.Context(), userID, budgetID)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}

	h.WS.BroadcastUpdate(userID, "budgets")

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}

// GetSpentAmount answers /budgets/spent?categoryId=&startDate=&endDate=
// with the aggregate used for budget progress bars.
func (h *BudgetHandler) GetSpentAmount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	categoryID := c.Query("categoryId")
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if categoryID == "" || startDate == "" || endDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameters"})
		return
	}

	start, err := utils.ParseUTC(startDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date"})
		return
	}
	end, err := utils.ParseUTC(endDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date"})
		return
	}

	spent, err := h.Service.SpentAmount(c.Request.Context(), userID, categoryID, start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spent amount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"spentAmount": spent})
}

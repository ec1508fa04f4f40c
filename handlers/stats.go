package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/services"
	"github.com/finflowhq/finflow-api/utils"
)

type StatsHandler struct {
	Service *services.StatsService
}

func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: service}
}

// GetOverview answers /stats/overview?from=&to= with the scalar totals
// plus both category groupings.
func (h *StatsHandler) GetOverview(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	result, err := h.Service.Overview(c.Request.Context(), userID, from, to)
	if err != nil {
		utils.SafeError("Failed to compute overview: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute overview"})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetHistory answers /stats/history?from=&to= with chart columns
// bucketed by an automatically chosen granularity.
func (h *StatsHandler) GetHistory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	data, err := h.Service.History(c.Request.Context(), userID, from, to)
	if err != nil {
		utils.SafeError("Failed to compute history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"granularity": services.SelectGranularity(from, to),
		"data":        data,
	})
}

// parseDateRange reads from/to and widens them to whole days: from is
// normalized to the start of its day, to to the end of its day.
func parseDateRange(c *gin.Context) (time.Time, time.Time, error) {
	fromRaw := c.Query("from")
	toRaw := c.Query("to")

	from, err := utils.ParseUTC(fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := utils.ParseUTC(toRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)

	return from, to, nil
}

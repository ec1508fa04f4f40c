package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/models"
)

type UserSettingsHandler struct {
	DB *sql.DB
}

// GetSettings returns the user's settings, creating the USD default
// row on first access.
func (h *UserSettingsHandler) GetSettings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	settings, err := h.loadOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userSettings": settings})
}

func (h *UserSettingsHandler) UpdateSettings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateUserSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Make sure the row exists before updating it.
	if _, err := h.loadOrCreate(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
		return
	}

	var settings models.UserSettings
	err := h.DB.QueryRow(`
		UPDATE user_settings
		SET currency = $1, updated_at = NOW()
		WHERE user_id = $2
		RETURNING id, user_id, currency, created_at, updated_at
	`, req.Currency, userID).Scan(
		&settings.ID, &settings.UserID, &settings.Currency,
		&settings.CreatedAt, &settings.UpdatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"userSettings": settings, "message": "Settings updated"})
}

func (h *UserSettingsHandler) loadOrCreate(userID string) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := h.DB.QueryRow(`
		SELECT id, user_id, currency, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`, userID).Scan(&settings.ID, &settings.UserID, &settings.Currency,
		&settings.CreatedAt, &settings.UpdatedAt)

	if err == sql.ErrNoRows {
		err = h.DB.QueryRow(`
			INSERT INTO user_settings (user_id, currency)
			VALUES ($1, 'USD')
			RETURNING id, user_id, currency, created_at, updated_at
		`, userID).Scan(&settings.ID, &settings.UserID, &settings.Currency,
			&settings.CreatedAt, &settings.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

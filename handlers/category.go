package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/models"
	"github.com/finflowhq/finflow-api/utils"
)

type CategoryHandler struct {
	DB *sql.DB
	WS *WSHandler
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT id, user_id, name, icon, type, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY type, name
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.Type,
			&cat.CreatedAt, &cat.UpdatedAt); err != nil {
			utils.SafeError("Failed to scan category: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		categories = append(categories, cat)
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory inserts a category. (user, name, type) is unique.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category type"})
		return
	}

	var cat models.Category
	err := h.DB.QueryRow(`
		INSERT INTO categories (user_id, name, icon, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, icon, type, created_at, updated_at
	`, userID, req.Name, req.Icon, req.Type).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
		utils.SafeError("Failed to create category: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
		return
	}

	h.WS.BroadcastUpdate(userID, "categories")

	c.JSON(http.StatusCreated, gin.H{"category": cat, "message": "Category created"})
}

// UpdateCategory edits a category and cascades a type change onto all
// referencing transactions. The cascade is a best-effort bulk update,
// not a transactional guarantee.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	categoryID := c.Param("id")

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category type"})
		return
	}

	var cat models.Category
	err := h.DB.QueryRow(`
		UPDATE categories
		SET name = $1, icon = $2, type = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, name, icon, type, created_at, updated_at
	`, req.Name, req.Icon, req.Type, categoryID, userID).Scan(
		&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE transactions SET type = $1, updated_at = NOW() WHERE category_id = $2
	`, cat.Type, categoryID)
	if err != nil {
		utils.SafeWarn("Type cascade failed for category %s: %v", utils.MaskID(categoryID), err)
	}

	h.WS.BroadcastUpdate(userID, "categories")

	c.JSON(http.StatusOK, gin.H{"category": cat, "message": "Category updated"})
}

// DeleteCategory rejects deletion while transactions still reference
// the category.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID := middleware.GetUserID(c)
	categoryID := c.Param("id")

	var inUse bool
	err := h.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM transactions WHERE category_id = $1)
	`, categoryID).Scan(&inUse)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if inUse {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete category with transactions"})
		return
	}

	result, err := h.DB.Exec(`
		DELETE FROM categories WHERE id = $1 AND user_id = $2
	`, categoryID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	h.WS.BroadcastUpdate(userID, "categories")

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

package handlers

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/finflowhq/finflow-api/middleware"
	"github.com/finflowhq/finflow-api/models"
	"github.com/finflowhq/finflow-api/utils"
)

type TransactionHandler struct {
	DB *sql.DB
	WS *WSHandler
}

// GetTransactions returns the user's transactions, newest first, with
// categories populated.
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rows, err := h.DB.Query(`
		SELECT t.id, t.user_id, t.category_id, t.amount, COALESCE(t.description, ''),
		       t.date, t.type, t.metadata, t.created_at, t.updated_at,
		       c.id, c.user_id, c.name, c.icon, c.type, c.created_at, c.updated_at
		FROM transactions t
		INNER JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		utils.SafeError("Failed to fetch transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		var cat models.Category
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &tx.Description,
			&tx.Date, &tx.Type, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
			&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt,
		); err != nil {
			utils.SafeError("Failed to scan transaction: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		tx.Category = &cat
		transactions = append(transactions, tx)
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// CreateTransaction records a transaction. The category must belong to
// the user and its type must agree with the transaction type.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction type"})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be a positive number"})
		return
	}

	if !h.checkCategory(c, userID, req.CategoryID, req.Type) {
		return
	}

	var tx models.Transaction
	err := h.DB.QueryRow(`
		INSERT INTO transactions (user_id, category_id, amount, description, date, type, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, user_id, category_id, amount, COALESCE(description, ''), date, type, metadata, created_at, updated_at
	`, userID, req.CategoryID, req.Amount, req.Description, req.Date, req.Type, req.Metadata).Scan(
		&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &tx.Description,
		&tx.Date, &tx.Type, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		utils.SafeError("Failed to create transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transactions")

	c.JSON(http.StatusCreated, gin.H{"transaction": tx, "message": "Transaction created"})
}

// checkCategory verifies the category exists, belongs to the user, and
// carries the given transaction type. Writes the error response and
// returns false when any check fails.
func (h *TransactionHandler) checkCategory(c *gin.Context, userID, categoryID string, txType models.TransactionType) bool {
	var categoryType models.TransactionType
	err := h.DB.QueryRow(`
		SELECT type FROM categories WHERE id = $1 AND user_id = $2
	`, categoryID, userID).Scan(&categoryType)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return false
	}
	if categoryType != txType {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Transaction type must match category type"})
		return false
	}
	return true
}

// UpdateTransaction edits a transaction owned by the user.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	transactionID := c.Param("id")

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !req.Type.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction type"})
		return
	}

	var ownerID string
	err := h.DB.QueryRow(`SELECT user_id FROM transactions WHERE id = $1`, transactionID).Scan(&ownerID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if ownerID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Same rules as create: the target category must be the user's own
	// and its type must agree with the transaction type.
	if !h.checkCategory(c, userID, req.CategoryID, req.Type) {
		return
	}

	var tx models.Transaction
	err = h.DB.QueryRow(`
		UPDATE transactions
		SET amount = $1, description = $2, date = $3, type = $4, category_id = $5, metadata = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING id, user_id, category_id, amount, COALESCE(description, ''), date, type, metadata, created_at, updated_at
	`, req.Amount, req.Description, req.Date, req.Type, req.CategoryID, req.Metadata, transactionID).Scan(
		&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &tx.Description,
		&tx.Date, &tx.Type, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err != nil {
		utils.SafeError("Failed to update transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transactions")

	c.JSON(http.StatusOK, gin.H{"transaction": tx, "message": "Transaction updated"})
}

// DeleteTransaction removes one transaction owned by the user.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID := middleware.GetUserID(c)
	transactionID := c.Param("id")

	result, err := h.DB.Exec(`
		DELETE FROM transactions WHERE id = $1 AND user_id = $2
	`, transactionID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return
	}

	h.WS.BroadcastUpdate(userID, "transactions")

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// BulkDeleteTransactions removes a list of the user's transactions by
// id. Ids belonging to other users are silently skipped.
func (h *TransactionHandler) BulkDeleteTransactions(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BulkDeleteTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.DB.Exec(`
		DELETE FROM transactions WHERE id = ANY($1) AND user_id = $2
	`, pq.Array(req.IDs), userID)
	if err != nil {
		utils.SafeError("Failed to bulk delete transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transactions"})
		return
	}

	deleted, _ := result.RowsAffected()

	h.WS.BroadcastUpdate(userID, "transactions")

	noun := "transactions have"
	if deleted == 1 {
		noun = "transaction has"
	}
	c.JSON(http.StatusOK, gin.H{
		"deleted": deleted,
		"message": fmt.Sprintf("%d %s been deleted!", deleted, noun),
	})
}

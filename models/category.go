package models

import "time"

// TransactionType classifies both categories and transactions. A
// transaction's type must agree with its category's type; category
// edits cascade the new type onto referencing transactions.
type TransactionType string

const (
	TypeIncome     TransactionType = "income"
	TypeExpense    TransactionType = "expense"
	TypeInvestment TransactionType = "investment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeIncome, TypeExpense, TypeInvestment:
		return true
	}
	return false
}

type Category struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Type      TransactionType `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name string          `json:"name" binding:"required"`
	Icon string          `json:"icon"`
	Type TransactionType `json:"type" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name string          `json:"name" binding:"required"`
	Icon string          `json:"icon"`
	Type TransactionType `json:"type" binding:"required"`
}

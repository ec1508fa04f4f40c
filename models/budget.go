package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BudgetType string

const (
	BudgetMonthly BudgetType = "monthly"
	BudgetYearly  BudgetType = "yearly"
	BudgetProject BudgetType = "project"
)

func (t BudgetType) Valid() bool {
	switch t {
	case BudgetMonthly, BudgetYearly, BudgetProject:
		return true
	}
	return false
}

type Budget struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	CategoryID string          `json:"category_id"`
	Category   *Category       `json:"category,omitempty"`
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	Type       BudgetType      `json:"type"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    time.Time       `json:"end_date"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Derived, never stored.
	SpentAmount decimal.Decimal `json:"spent_amount"`
	Remaining   decimal.Decimal `json:"remaining"`
}

type CreateBudgetRequest struct {
	Name       string          `json:"name" binding:"required"`
	CategoryID string          `json:"category_id" binding:"required,uuid"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Type       BudgetType      `json:"type" binding:"required"`
	StartDate  time.Time       `json:"start_date" binding:"required"`
	EndDate    time.Time       `json:"end_date" binding:"required"`
}

type UpdateBudgetRequest struct {
	Name      string          `json:"name" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
}

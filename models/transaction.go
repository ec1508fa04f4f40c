package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Metadata is the free-form document stored on investment transactions.
// Ordinary income/expense transactions leave it empty.
type Metadata map[string]interface{}

// Value implements driver.Valuer for the JSONB column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for the JSONB column.
func (m *Metadata) Scan(src interface{}) error {
	if src == nil {
		*m = nil
		return nil
	}
	raw, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("metadata: cannot scan %T", src)
	}
	return json.Unmarshal(raw, m)
}

// String reads a string field, "" when absent.
func (m Metadata) String(key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

// Number reads a numeric field. JSON decoding leaves numbers as
// float64; ints can appear when metadata was built in Go code.
func (m Metadata) Number(key string) (float64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// NumberOr reads a numeric field with a default.
func (m Metadata) NumberOr(key string, def float64) float64 {
	if v, ok := m.Number(key); ok {
		return v
	}
	return def
}

// Merge overlays other onto a copy of m without mutating either map.
func (m Metadata) Merge(other Metadata) Metadata {
	merged := make(Metadata, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	CategoryID  string          `json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Metadata    Metadata        `json:"metadata,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type CreateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" binding:"required"`
	Type        TransactionType `json:"type" binding:"required"`
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Metadata    Metadata        `json:"metadata"`
}

type UpdateTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date" binding:"required"`
	Type        TransactionType `json:"type" binding:"required"`
	CategoryID  string          `json:"category_id" binding:"required,uuid"`
	Metadata    Metadata        `json:"metadata"`
}

type BulkDeleteTransactionsRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,uuid"`
}

type UpdateInvestmentStateRequest struct {
	TransactionID string   `json:"transactionId" binding:"required,uuid"`
	NewState      string   `json:"newState" binding:"required"`
	Metadata      Metadata `json:"metadata"`
}

package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflowhq/finflow-api/models"
)

// InvestmentFilters narrows an investment collection. Zero fields are
// ignored. Filters are fixed when the iterator is created, not
// re-evaluated on Reset.
type InvestmentFilters struct {
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	CategoryID string
	From       *time.Time
	To         *time.Time
}

func (f InvestmentFilters) match(tx *models.Transaction) bool {
	if f.MinAmount != nil && tx.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && tx.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.CategoryID != "" && tx.CategoryID != f.CategoryID {
		return false
	}
	if f.From != nil && f.To != nil {
		if tx.Date.Before(*f.From) || tx.Date.After(*f.To) {
			return false
		}
	}
	return true
}

// InvestmentCollection holds fetched transactions of any type and
// hands out iterators restricted to investments.
type InvestmentCollection struct {
	items   []models.Transaction
	filters InvestmentFilters
}

func NewInvestmentCollection(items []models.Transaction) *InvestmentCollection {
	return &InvestmentCollection{items: items}
}

func (c *InvestmentCollection) AddItem(tx models.Transaction) {
	c.items = append(c.items, tx)
}

func (c *InvestmentCollection) Items() []models.Transaction {
	return c.items
}

func (c *InvestmentCollection) SetFilters(filters InvestmentFilters) {
	c.filters = filters
}

// CreateIterator snapshots the investment-typed items matching the
// collection's filters and returns a cursor at position 0.
func (c *InvestmentCollection) CreateIterator() *InvestmentIterator {
	filtered := make([]models.Transaction, 0, len(c.items))
	for i := range c.items {
		tx := &c.items[i]
		if tx.Type != models.TypeInvestment {
			continue
		}
		if !c.filters.match(tx) {
			continue
		}
		filtered = append(filtered, *tx)
	}
	return &InvestmentIterator{items: filtered}
}

// InvestmentIterator is a single-pass cursor; Reset restarts over the
// same filtered snapshot.
type InvestmentIterator struct {
	items    []models.Transaction
	position int
}

func (it *InvestmentIterator) HasNext() bool {
	return it.position < len(it.items)
}

func (it *InvestmentIterator) Next() *models.Transaction {
	if !it.HasNext() {
		return nil
	}
	tx := &it.items[it.position]
	it.position++
	return tx
}

func (it *InvestmentIterator) Current() *models.Transaction {
	if it.position < len(it.items) {
		return &it.items[it.position]
	}
	return nil
}

func (it *InvestmentIterator) Reset() {
	it.position = 0
}

package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflowhq/finflow-api/models"
)

type StatsService struct {
	db *sql.DB
}

func NewStatsService(db *sql.DB) *StatsService {
	return &StatsService{db: db}
}

// OverviewTotals are the four scalar totals over a date range.
type OverviewTotals struct {
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Investment decimal.Decimal `json:"investment"`
	Balance    decimal.Decimal `json:"balance"`
}

// CategoryTotal is one category's share within a type.
type CategoryTotal struct {
	Category *models.Category `json:"category"`
	Total    decimal.Decimal  `json:"total"`
}

// TypeGroups partitions transactions by type. Every type key is
// always present, even when empty.
type TypeGroups map[models.TransactionType][]models.Transaction

// OverviewResult is the full payload of GET /stats/overview.
type OverviewResult struct {
	Overview   OverviewTotals                               `json:"overview"`
	Types      map[models.TransactionType][]CategoryTotal   `json:"types"`
	TypeGroups TypeGroups                                   `json:"typeGroups"`
}

// Overview fetches the user's transactions in [from, to] and computes
// totals plus both groupings in one pass over the result set.
func (s *StatsService) Overview(ctx context.Context, userID string, from, to time.Time) (*OverviewResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.category_id, t.amount, COALESCE(t.description, ''),
		       t.date, t.type, t.metadata, t.created_at, t.updated_at,
		       c.id, c.user_id, c.name, c.icon, c.type, c.created_at, c.updated_at
		FROM transactions t
		INNER JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date ASC
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions, err := scanTransactionsWithCategory(rows)
	if err != nil {
		return nil, err
	}

	groups := GroupByType(transactions)
	return &OverviewResult{
		Overview:   BuildOverview(transactions),
		Types:      GroupByCategory(groups),
		TypeGroups: groups,
	}, nil
}

// BuildOverview sums transaction amounts per type.
// balance = income - expense - investment.
func BuildOverview(transactions []models.Transaction) OverviewTotals {
	totals := OverviewTotals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Investment: decimal.Zero,
	}

	for i := range transactions {
		tx := &transactions[i]
		switch tx.Type {
		case models.TypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case models.TypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		case models.TypeInvestment:
			totals.Investment = totals.Investment.Add(tx.Amount)
		}
	}

	totals.Balance = totals.Income.Sub(totals.Expense).Sub(totals.Investment)
	return totals
}

// GroupByType partitions transactions into the three type buckets.
func GroupByType(transactions []models.Transaction) TypeGroups {
	groups := TypeGroups{
		models.TypeIncome:     {},
		models.TypeExpense:    {},
		models.TypeInvestment: {},
	}
	for _, tx := range transactions {
		groups[tx.Type] = append(groups[tx.Type], tx)
	}
	return groups
}

// GroupByCategory collapses each type bucket into per-category totals.
func GroupByCategory(groups TypeGroups) map[models.TransactionType][]CategoryTotal {
	result := make(map[models.TransactionType][]CategoryTotal, len(groups))

	for txType, transactions := range groups {
		totals := []CategoryTotal{}
		index := map[string]int{}

		for i := range transactions {
			tx := &transactions[i]
			pos, seen := index[tx.CategoryID]
			if !seen {
				index[tx.CategoryID] = len(totals)
				totals = append(totals, CategoryTotal{Category: tx.Category, Total: decimal.Zero})
				pos = len(totals) - 1
			}
			totals[pos].Total = totals[pos].Total.Add(tx.Amount)
		}

		result[txType] = totals
	}

	return result
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/finflowhq/finflow-api/models"
)

var ErrNotFound = errors.New("not found")

type InvestmentService struct {
	db *sql.DB
}

func NewInvestmentService(db *sql.DB) *InvestmentService {
	return &InvestmentService{db: db}
}

// List returns the user's investment transactions with categories
// populated, newest first.
func (s *InvestmentService) List(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.user_id, t.category_id, t.amount, COALESCE(t.description, ''),
		       t.date, t.type, t.metadata, t.created_at, t.updated_at,
		       c.id, c.user_id, c.name, c.icon, c.type, c.created_at, c.updated_at
		FROM transactions t
		INNER JOIN categories c ON t.category_id = c.id
		WHERE t.user_id = $1 AND t.type = 'investment'
		ORDER BY t.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTransactionsWithCategory(rows)
}

// Decorated drives the collection through an iterator and decorates
// each investment with the requested feature set.
func (s *InvestmentService) Decorated(transactions []models.Transaction, filters InvestmentFilters, opts DecoratorOptions) []InvestmentComponent {
	collection := NewInvestmentCollection(transactions)
	collection.SetFilters(filters)

	iterator := collection.CreateIterator()
	decorated := []InvestmentComponent{}
	for iterator.HasNext() {
		tx := iterator.Next()
		if tx == nil {
			break
		}
		decorated = append(decorated, Decorate(NewInvestment(tx), opts))
	}

	return decorated
}

// InvestmentSummary is the portfolio-level aggregate.
type InvestmentSummary struct {
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	TotalValue        decimal.Decimal `json:"totalValue"`
	TotalROI          float64         `json:"totalROI"`
	ActiveInvestments int             `json:"activeInvestments"`
}

// Summarize folds decorated components into portfolio totals.
// TotalValue uses the decorated value, so ROI-decorated components
// contribute their projected value.
func Summarize(components []InvestmentComponent) InvestmentSummary {
	summary := InvestmentSummary{
		TotalInvested: decimal.Zero,
		TotalValue:    decimal.Zero,
	}

	for _, component := range components {
		inv := component.Investment()
		summary.TotalInvested = summary.TotalInvested.Add(inv.Transaction().Amount)
		summary.TotalValue = summary.TotalValue.Add(decimal.NewFromFloat(component.Value()))

		if inv.State().Name() == StateActive {
			summary.ActiveInvestments++
		}
	}

	if summary.TotalInvested.IsPositive() {
		summary.TotalROI = summary.TotalValue.Sub(summary.TotalInvested).
			Div(summary.TotalInvested).InexactFloat64()
	}

	return summary
}

// Summary fetches the portfolio and aggregates it with ROI projection
// applied, matching what the dashboard shows.
func (s *InvestmentService) Summary(ctx context.Context, userID string) (InvestmentSummary, error) {
	transactions, err := s.List(ctx, userID)
	if err != nil {
		return InvestmentSummary{}, err
	}

	components := s.Decorated(transactions, InvestmentFilters{}, DecoratorOptions{
		WithROICalculation: true,
	})

	return Summarize(components), nil
}

// UpdateState merges {status: newState} plus any extra fields into the
// transaction's stored metadata. The stored status only seeds the next
// state derivation; nothing else is recomputed here.
func (s *InvestmentService) UpdateState(ctx context.Context, userID string, req models.UpdateInvestmentStateRequest) (*models.Transaction, error) {
	var tx models.Transaction
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, category_id, amount, description, date, type, metadata, created_at, updated_at
		FROM transactions
		WHERE id = $1 AND user_id = $2 AND type = 'investment'
	`, req.TransactionID, userID).Scan(
		&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &description,
		&tx.Date, &tx.Type, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	tx.Description = description.String

	merged := tx.Metadata.Merge(models.Metadata{"status": req.NewState}).Merge(req.Metadata)

	_, err = s.db.ExecContext(ctx, `
		UPDATE transactions
		SET metadata = $1, updated_at = NOW()
		WHERE id = $2
	`, merged, tx.ID)
	if err != nil {
		return nil, err
	}

	tx.Metadata = merged
	return &tx, nil
}

func scanTransactionsWithCategory(rows *sql.Rows) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	for rows.Next() {
		var tx models.Transaction
		var cat models.Category
		if err := rows.Scan(
			&tx.ID, &tx.UserID, &tx.CategoryID, &tx.Amount, &tx.Description,
			&tx.Date, &tx.Type, &tx.Metadata, &tx.CreatedAt, &tx.UpdatedAt,
			&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tx.Category = &cat
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

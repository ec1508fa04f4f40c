package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finflowhq/finflow-api/models"
)

// BudgetService owns budget CRUD and the derived spent/remaining
// figures. Spent amount is never stored: it is the sum of the user's
// transactions with the budget's category dated within
// [start_date, end_date].
type BudgetService struct {
	db *sql.DB
}

func NewBudgetService(db *sql.DB) *BudgetService {
	return &BudgetService{db: db}
}

// CalculateRemaining is the budget formula shared by all budget types:
// remaining = amount - spent. Kept as a pure function so the per-type
// calculations stay trivially testable.
func CalculateRemaining(budget *models.Budget, spent decimal.Decimal) decimal.Decimal {
	return budget.Amount.Sub(spent)
}

// SumSpent totals already-fetched transactions against a budget,
// matching by category and date-range containment (inclusive bounds).
func SumSpent(budget *models.Budget, transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		tx := &transactions[i]
		if tx.CategoryID != budget.CategoryID {
			continue
		}
		if tx.Date.Before(budget.StartDate) || tx.Date.After(budget.EndDate) {
			continue
		}
		total = total.Add(tx.Amount)
	}
	return total
}

// SpentAmount is the DB-backed aggregate for one budget.
func (s *BudgetService) SpentAmount(ctx context.Context, userID, categoryID string, start, end time.Time) (decimal.Decimal, error) {
	var spent decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND category_id = $2 AND date >= $3 AND date <= $4
	`, userID, categoryID, start, end).Scan(&spent)
	if err != nil {
		return decimal.Zero, err
	}
	return spent, nil
}

// Create validates and inserts a budget. The category must exist and
// belong to the user.
func (s *BudgetService) Create(ctx context.Context, userID string, req models.CreateBudgetRequest) (*models.Budget, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)
	`, req.CategoryID, userID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNotFound
	}

	budget := &models.Budget{
		ID:         uuid.New().String(),
		UserID:     userID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Amount:     req.Amount,
		Type:       req.Type,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Status:     "active",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, category_id, name, amount, type, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, budget.ID, budget.UserID, budget.CategoryID, budget.Name, budget.Amount,
		budget.Type, budget.StartDate, budget.EndDate, budget.Status,
		budget.CreatedAt, budget.UpdatedAt)
	if err != nil {
		return nil, err
	}

	budget.SpentAmount = decimal.Zero
	budget.Remaining = budget.Amount
	return budget, nil
}

// List returns the user's budgets with derived spent and remaining.
func (s *BudgetService) List(ctx context.Context, userID string) ([]models.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.category_id, b.name, b.amount, b.type,
		       b.start_date, b.end_date, b.status, b.created_at, b.updated_at,
		       c.id, c.user_id, c.name, c.icon, c.type, c.created_at, c.updated_at
		FROM budgets b
		INNER JOIN categories c ON b.category_id = c.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		var cat models.Category
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.CategoryID, &b.Name, &b.Amount, &b.Type,
			&b.StartDate, &b.EndDate, &b.Status, &b.CreatedAt, &b.UpdatedAt,
			&cat.ID, &cat.UserID, &cat.Name, &cat.Icon, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt,
		); err != nil {
			return nil, err
		}
		b.Category = &cat
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range budgets {
		spent, err := s.SpentAmount(ctx, userID, budgets[i].CategoryID, budgets[i].StartDate, budgets[i].EndDate)
		if err != nil {
			return nil, err
		}
		budgets[i].SpentAmount = spent
		budgets[i].Remaining = CalculateRemaining(&budgets[i], spent)
	}

	return budgets, nil
}

// Update edits budget fields owned by the user.
func (s *BudgetService) Update(ctx context.Context, userID, budgetID string, req models.UpdateBudgetRequest) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE budgets
		SET name = $1, amount = $2, start_date = $3, end_date = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
	`, req.Name, req.Amount, req.StartDate, req.EndDate, budgetID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a budget owned by the user.
func (s *BudgetService) Delete(ctx context.Context, userID, budgetID string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM budgets WHERE id = $1 AND user_id = $2
	`, budgetID, userID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireOutdated flips active budgets past their end date to expired.
// Run periodically from the background sweeper.
func (s *BudgetService) ExpireOutdated(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE budgets
		SET status = 'expired', updated_at = NOW()
		WHERE status = 'active' AND end_date < NOW()
	`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

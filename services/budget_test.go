package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflowhq/finflow-api/models"
)

func budgetFixture() *models.Budget {
	return &models.Budget{
		ID:         "budget-1",
		UserID:     "user-1",
		CategoryID: "groceries",
		Name:       "Monthly groceries",
		Amount:     decimal.NewFromInt(500000),
		Type:       models.BudgetMonthly,
		StartDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC),
		Status:     "active",
	}
}

func budgetTx(amount float64, categoryID string, date time.Time) models.Transaction {
	return models.Transaction{
		ID:         "tx",
		UserID:     "user-1",
		CategoryID: categoryID,
		Amount:     decimal.NewFromFloat(amount),
		Date:       date,
		Type:       models.TypeExpense,
	}
}

func TestCalculateRemainingNoSpending(t *testing.T) {
	budget := budgetFixture()

	remaining := CalculateRemaining(budget, decimal.Zero)
	assert.True(t, remaining.Equal(decimal.NewFromInt(500000)))
}

func TestSumSpentAndRemaining(t *testing.T) {
	budget := budgetFixture()
	inRange := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	spent := SumSpent(budget, []models.Transaction{
		budgetTx(150000, "groceries", inRange),
	})
	require.True(t, spent.Equal(decimal.NewFromInt(150000)))

	remaining := CalculateRemaining(budget, spent)
	assert.True(t, remaining.Equal(decimal.NewFromInt(350000)))
}

func TestSumSpentMatchesCategoryAndRange(t *testing.T) {
	budget := budgetFixture()
	inRange := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	spent := SumSpent(budget, []models.Transaction{
		budgetTx(100000, "groceries", inRange),
		// Other category, same dates: ignored.
		budgetTx(99999, "entertainment", inRange),
		// Right category, before the window: ignored.
		budgetTx(99999, "groceries", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)),
		// Right category, after the window: ignored.
		budgetTx(99999, "groceries", time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
	})

	assert.True(t, spent.Equal(decimal.NewFromInt(100000)))
}

func TestSumSpentInclusiveBounds(t *testing.T) {
	budget := budgetFixture()

	spent := SumSpent(budget, []models.Transaction{
		budgetTx(100, "groceries", budget.StartDate),
		budgetTx(200, "groceries", budget.EndDate),
	})

	assert.True(t, spent.Equal(decimal.NewFromInt(300)))
}

func TestCalculateRemainingCanGoNegative(t *testing.T) {
	budget := budgetFixture()

	remaining := CalculateRemaining(budget, decimal.NewFromInt(600000))
	assert.True(t, remaining.Equal(decimal.NewFromInt(-100000)))
}

package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflowhq/finflow-api/models"
)

func TestSelectGranularity(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		span time.Duration
		want Granularity
	}{
		{"400 days", 400 * 24 * time.Hour, GranularityYear},
		{"just over a year", 367 * 24 * time.Hour, GranularityYear},
		{"100 days", 100 * 24 * time.Hour, GranularityMonth},
		{"63 days", 63 * 24 * time.Hour, GranularityMonth},
		{"10 days", 10 * 24 * time.Hour, GranularityDay},
		{"2 days", 48 * time.Hour, GranularityDay},
		{"12 hours", 12 * time.Hour, GranularityHour},
		{"30 minutes", 30 * time.Minute, GranularityYear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectGranularity(base, base.Add(tt.span)))
		})
	}
}

func historyTx(amount float64, txType models.TransactionType, date time.Time) models.Transaction {
	return models.Transaction{
		ID:         "tx",
		UserID:     "user-1",
		CategoryID: "cat-1",
		Amount:     decimal.NewFromFloat(amount),
		Date:       date,
		Type:       txType,
	}
}

func TestBuildHistoryTenDayRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 10)

	groups := GroupByType([]models.Transaction{
		historyTx(100, models.TypeIncome, from.AddDate(0, 0, 2)),
		historyTx(40, models.TypeExpense, from.AddDate(0, 0, 2)),
		historyTx(250, models.TypeInvestment, from.AddDate(0, 0, 7)),
	})

	data := BuildHistory(from, to, groups)

	require.Len(t, data, 10)
	assert.Equal(t, "Jan 01", data[0].Name)
	assert.Equal(t, "Jan 10", data[9].Name)

	assert.True(t, data[2].Income.Equal(decimal.NewFromInt(100)))
	assert.True(t, data[2].Expense.Equal(decimal.NewFromInt(40)))
	assert.True(t, data[7].Investment.Equal(decimal.NewFromInt(250)))
	assert.True(t, data[0].Income.IsZero())
}

func TestBuildHistoryYearGranularity(t *testing.T) {
	from := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 400)

	groups := GroupByType([]models.Transaction{
		historyTx(1000, models.TypeIncome, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)),
		historyTx(2000, models.TypeIncome, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
	})

	data := BuildHistory(from, to, groups)

	require.Len(t, data, 2)
	assert.Equal(t, "2023", data[0].Name)
	assert.Equal(t, "2024", data[1].Name)
	assert.True(t, data[0].Income.Equal(decimal.NewFromInt(1000)))
	assert.True(t, data[1].Income.Equal(decimal.NewFromInt(2000)))
}

// A transaction exactly on a bucket boundary belongs to the bucket
// starting at that instant, never to the previous one.
func TestBuildHistoryBoundaryClosedOpen(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 3)

	boundary := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	groups := GroupByType([]models.Transaction{
		historyTx(75, models.TypeExpense, boundary),
	})

	data := BuildHistory(from, to, groups)

	require.Len(t, data, 3)
	assert.True(t, data[0].Expense.IsZero())
	assert.True(t, data[1].Expense.Equal(decimal.NewFromInt(75)))
	assert.True(t, data[2].Expense.IsZero())
}

// A range starting mid-month yields a short first bucket; the rest
// align on month boundaries with no gaps.
func TestBuildHistoryMisalignedMonths(t *testing.T) {
	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 20, 0, 0, 0, 0, time.UTC)
	require.Equal(t, GranularityMonth, SelectGranularity(from, to))

	groups := GroupByType([]models.Transaction{
		historyTx(10, models.TypeExpense, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)),
		historyTx(20, models.TypeExpense, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		historyTx(30, models.TypeExpense, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)),
	})

	data := BuildHistory(from, to, groups)

	require.Len(t, data, 4)
	assert.Equal(t, []string{"Jan", "Feb", "Mar", "Apr"}, []string{data[0].Name, data[1].Name, data[2].Name, data[3].Name})
	assert.True(t, data[0].Expense.Equal(decimal.NewFromInt(10)))
	assert.True(t, data[1].Expense.Equal(decimal.NewFromInt(20)))
	assert.True(t, data[2].Expense.IsZero())
	assert.True(t, data[3].Expense.Equal(decimal.NewFromInt(30)))
}

func TestBuildHistoryHourGranularity(t *testing.T) {
	from := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	to := from.Add(6 * time.Hour)

	groups := GroupByType([]models.Transaction{
		historyTx(5, models.TypeExpense, from.Add(90*time.Minute)),
	})

	data := BuildHistory(from, to, groups)

	require.Len(t, data, 6)
	assert.Equal(t, "09:00", data[0].Name)
	assert.Equal(t, "10:00", data[1].Name)
	assert.True(t, data[1].Expense.Equal(decimal.NewFromInt(5)))
}

func TestBuildHistoryEmptyRange(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	data := BuildHistory(from, from, GroupByType(nil))
	assert.Empty(t, data)
}

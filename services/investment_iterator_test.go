package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflowhq/finflow-api/models"
)

func collectionFixture() *InvestmentCollection {
	mk := func(id string, amount float64, txType models.TransactionType, categoryID string, date time.Time) models.Transaction {
		return models.Transaction{
			ID:         id,
			UserID:     "user-1",
			CategoryID: categoryID,
			Amount:     decimal.NewFromFloat(amount),
			Date:       date,
			Type:       txType,
		}
	}

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	jun := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	return NewInvestmentCollection([]models.Transaction{
		mk("inv-small", 500, models.TypeInvestment, "stocks", jan),
		mk("inv-mid", 5000, models.TypeInvestment, "stocks", mar),
		mk("inv-big", 20000, models.TypeInvestment, "crypto", jun),
		mk("groceries", 300, models.TypeExpense, "food", mar),
		mk("salary", 4000, models.TypeIncome, "work", mar),
	})
}

func drain(it *InvestmentIterator) []string {
	ids := []string{}
	for it.HasNext() {
		ids = append(ids, it.Next().ID)
	}
	return ids
}

func TestIteratorSkipsNonInvestments(t *testing.T) {
	it := collectionFixture().CreateIterator()
	assert.Equal(t, []string{"inv-small", "inv-mid", "inv-big"}, drain(it))
}

func TestIteratorAmountFilters(t *testing.T) {
	min := decimal.NewFromInt(1000)
	max := decimal.NewFromInt(10000)

	c := collectionFixture()
	c.SetFilters(InvestmentFilters{MinAmount: &min, MaxAmount: &max})

	assert.Equal(t, []string{"inv-mid"}, drain(c.CreateIterator()))
}

func TestIteratorCategoryFilter(t *testing.T) {
	c := collectionFixture()
	c.SetFilters(InvestmentFilters{CategoryID: "crypto"})

	assert.Equal(t, []string{"inv-big"}, drain(c.CreateIterator()))
}

func TestIteratorDateRangeFilter(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	c := collectionFixture()
	c.SetFilters(InvestmentFilters{From: &from, To: &to})

	assert.Equal(t, []string{"inv-mid"}, drain(c.CreateIterator()))
}

func TestIteratorExhaustionAndReset(t *testing.T) {
	it := collectionFixture().CreateIterator()

	require.True(t, it.HasNext())
	assert.Equal(t, "inv-small", it.Current().ID)

	drain(it)
	assert.False(t, it.HasNext())
	assert.Nil(t, it.Next())
	assert.Nil(t, it.Current())

	// Reset restarts over the same filtered snapshot.
	it.Reset()
	require.True(t, it.HasNext())
	assert.Equal(t, "inv-small", it.Next().ID)
}

func TestIteratorSnapshotIgnoresLaterAdds(t *testing.T) {
	c := collectionFixture()
	it := c.CreateIterator()

	c.AddItem(models.Transaction{
		ID:     "inv-late",
		Amount: decimal.NewFromInt(100),
		Type:   models.TypeInvestment,
	})

	assert.Equal(t, []string{"inv-small", "inv-mid", "inv-big"}, drain(it))
	assert.Len(t, c.Items(), 6)
}

func TestIteratorEmptyCollection(t *testing.T) {
	it := NewInvestmentCollection(nil).CreateIterator()

	assert.False(t, it.HasNext())
	assert.Nil(t, it.Next())
}

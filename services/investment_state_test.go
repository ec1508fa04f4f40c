package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflowhq/finflow-api/models"
)

func investmentTx(amount float64, metadata models.Metadata) *models.Transaction {
	return &models.Transaction{
		ID:         "tx-1",
		UserID:     "user-1",
		CategoryID: "cat-1",
		Amount:     decimal.NewFromFloat(amount),
		Date:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Type:       models.TypeInvestment,
		Metadata:   metadata,
	}
}

func TestNewInvestmentStateDerivation(t *testing.T) {
	tests := []struct {
		name     string
		metadata models.Metadata
		want     string
	}{
		{"no metadata", nil, StateActive},
		{"empty metadata", models.Metadata{}, StateActive},
		{"status completed", models.Metadata{"status": "completed"}, StateCompleted},
		{"status pending", models.Metadata{"status": "pending"}, StatePending},
		{"negative roi", models.Metadata{"roi": -0.2}, StateLosing},
		{"zero roi", models.Metadata{"roi": 0.0}, StateActive},
		{"positive roi", models.Metadata{"roi": 0.15}, StateActive},
		// Status wins over roi: a completed investment stays completed
		// even when its stored roi is negative.
		{"completed with negative roi", models.Metadata{"status": "completed", "roi": -0.5}, StateCompleted},
		{"pending with negative roi", models.Metadata{"status": "pending", "roi": -0.5}, StatePending},
		// Derivation reads the stored roi field only: a currentValue
		// below the amount does not make the investment losing.
		{"currentValue below amount, roi unset", models.Metadata{"currentValue": 500.0}, StateActive},
		{"unknown status falls through", models.Metadata{"status": "frozen"}, StateActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInvestment(investmentTx(1000, tt.metadata))
			assert.Equal(t, tt.want, inv.State().Name())
		})
	}
}

func TestActiveStateRisk(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   float64
	}{
		{"small position", 1000, 0.1},
		{"mid position", 5000, 0.5},
		{"at cap boundary", 8000, 0.8},
		{"capped", 50000, 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := NewInvestment(investmentTx(tt.amount, nil))
			require.Equal(t, StateActive, inv.State().Name())
			assert.InDelta(t, tt.want, inv.Risk(), 1e-9)
		})
	}
}

func TestActiveStateROI(t *testing.T) {
	t.Run("currentValue present", func(t *testing.T) {
		inv := NewInvestment(investmentTx(1000, models.Metadata{"currentValue": 1200.0}))
		assert.InDelta(t, 0.2, inv.ROI(), 1e-9)
	})

	t.Run("currentValue defaults to amount", func(t *testing.T) {
		inv := NewInvestment(investmentTx(1000, nil))
		assert.InDelta(t, 0, inv.ROI(), 1e-9)
	})
}

func TestPendingState(t *testing.T) {
	inv := NewInvestment(investmentTx(3000, models.Metadata{"status": "pending", "currentValue": 9999.0}))

	assert.InDelta(t, 0.5, inv.Risk(), 1e-9)
	assert.InDelta(t, 0, inv.ROI(), 1e-9)
	assert.Equal(t, "Confirm investment", inv.NextAction())
}

func TestCompletedState(t *testing.T) {
	t.Run("roi from finalValue", func(t *testing.T) {
		inv := NewInvestment(investmentTx(2000, models.Metadata{"status": "completed", "finalValue": 2500.0}))

		assert.InDelta(t, 0, inv.Risk(), 1e-9)
		assert.InDelta(t, 0.25, inv.ROI(), 1e-9)
	})

	t.Run("finalValue defaults to amount", func(t *testing.T) {
		inv := NewInvestment(investmentTx(2000, models.Metadata{"status": "completed"}))
		assert.InDelta(t, 0, inv.ROI(), 1e-9)
	})
}

func TestLosingState(t *testing.T) {
	inv := NewInvestment(investmentTx(1000, models.Metadata{"roi": -0.3, "currentValue": 700.0}))

	assert.Equal(t, StateLosing, inv.State().Name())
	assert.InDelta(t, 0.9, inv.Risk(), 1e-9)
	assert.InDelta(t, -0.3, inv.ROI(), 1e-9)
	assert.Equal(t, "Consider cutting losses", inv.NextAction())
}

func TestChangeState(t *testing.T) {
	inv := NewInvestment(investmentTx(1000, nil))
	require.Equal(t, StateActive, inv.State().Name())

	inv.ChangeState(CompletedState{})

	assert.Equal(t, StateCompleted, inv.State().Name())
	assert.InDelta(t, 0, inv.Risk(), 1e-9)
}

func TestValidStateName(t *testing.T) {
	for _, name := range []string{StateActive, StatePending, StateCompleted, StateLosing} {
		assert.True(t, ValidStateName(name), name)
	}
	assert.False(t, ValidStateName("frozen"))
	assert.False(t, ValidStateName(""))
	assert.False(t, ValidStateName("Active"))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataNumber(t *testing.T) {
	meta := Metadata{
		"float":  1.5,
		"int":    7,
		"string": "nope",
	}

	v, ok := meta.Number("float")
	require.True(t, ok)
	assert.InDelta(t, 1.5, v, 1e-9)

	v, ok = meta.Number("int")
	require.True(t, ok)
	assert.InDelta(t, 7, v, 1e-9)

	_, ok = meta.Number("string")
	assert.False(t, ok)
	_, ok = meta.Number("missing")
	assert.False(t, ok)

	var nilMeta Metadata
	_, ok = nilMeta.Number("anything")
	assert.False(t, ok)
}

func TestMetadataNumberOr(t *testing.T) {
	meta := Metadata{"volatility": 0.3}

	assert.InDelta(t, 0.3, meta.NumberOr("volatility", 0.1), 1e-9)
	assert.InDelta(t, 0.1, meta.NumberOr("missing", 0.1), 1e-9)
}

func TestMetadataString(t *testing.T) {
	meta := Metadata{"status": "pending", "count": 3}

	assert.Equal(t, "pending", meta.String("status"))
	assert.Equal(t, "", meta.String("count"))
	assert.Equal(t, "", meta.String("missing"))
	assert.Equal(t, "", Metadata(nil).String("status"))
}

func TestMetadataMergeDoesNotMutate(t *testing.T) {
	original := Metadata{"status": "active", "roi": 0.1}
	overlay := Metadata{"status": "completed", "finalValue": 1200.0}

	merged := original.Merge(overlay)

	assert.Equal(t, "completed", merged.String("status"))
	assert.InDelta(t, 1200, merged.NumberOr("finalValue", 0), 1e-9)
	assert.InDelta(t, 0.1, merged.NumberOr("roi", 0), 1e-9)

	// Inputs untouched.
	assert.Equal(t, "active", original.String("status"))
	_, hasFinal := original["finalValue"]
	assert.False(t, hasFinal)
}

func TestMetadataValueAndScan(t *testing.T) {
	meta := Metadata{"status": "pending", "currentValue": 1500.0}

	raw, err := meta.Value()
	require.NoError(t, err)

	var scanned Metadata
	require.NoError(t, scanned.Scan(raw))

	assert.Equal(t, "pending", scanned.String("status"))
	assert.InDelta(t, 1500, scanned.NumberOr("currentValue", 0), 1e-9)
}

func TestMetadataScanNil(t *testing.T) {
	scanned := Metadata{"stale": true}
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TypeIncome.Valid())
	assert.True(t, TypeExpense.Valid())
	assert.True(t, TypeInvestment.Valid())
	assert.False(t, TransactionType("transfer").Valid())
	assert.False(t, TransactionType("").Valid())
}

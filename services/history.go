package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finflowhq/finflow-api/models"
)

// Granularity is the time unit used to bucket transactions for charts.
type Granularity string

const (
	GranularityYear  Granularity = "years"
	GranularityMonth Granularity = "months"
	GranularityDay   Granularity = "days"
	GranularityHour  Granularity = "hours"
)

// ChartDatum is one chart column: the bucket label plus the summed
// amount per transaction type.
type ChartDatum struct {
	Name       string          `json:"name"`
	Income     decimal.Decimal `json:"income"`
	Expense    decimal.Decimal `json:"expense"`
	Investment decimal.Decimal `json:"investment"`
}

// SelectGranularity picks the bucket unit from the range length.
// Ranges of an hour or less fall back to years, which yields a single
// bucket covering the whole range.
func SelectGranularity(from, to time.Time) Granularity {
	duration := to.Sub(from)
	day := 24 * time.Hour

	switch {
	case duration > 366*day:
		return GranularityYear
	case duration > 62*day:
		return GranularityMonth
	case duration > day:
		return GranularityDay
	case duration > time.Hour:
		return GranularityHour
	default:
		return GranularityYear
	}
}

// BuildHistory buckets the grouped transactions over [from, to] with
// the granularity chosen from the range length. Buckets are contiguous
// and closed-open: a transaction exactly on a bucket boundary belongs
// to the bucket starting at that instant.
func BuildHistory(from, to time.Time, groups TypeGroups) []ChartDatum {
	granularity := SelectGranularity(from, to)

	data := []ChartDatum{}
	cursor := from.UTC()
	end := to.UTC()

	for cursor.Before(end) {
		bucketEnd := nextBucketStart(cursor, granularity)

		data = append(data, ChartDatum{
			Name:       formatBucketLabel(cursor, granularity),
			Income:     sumInRange(groups[models.TypeIncome], cursor, bucketEnd),
			Expense:    sumInRange(groups[models.TypeExpense], cursor, bucketEnd),
			Investment: sumInRange(groups[models.TypeInvestment], cursor, bucketEnd),
		})

		cursor = bucketEnd
	}

	return data
}

// History is the DB-backed variant: it reuses the overview fetch to
// partition the range, then buckets it.
func (s *StatsService) History(ctx context.Context, userID string, from, to time.Time) ([]ChartDatum, error) {
	result, err := s.Overview(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return BuildHistory(from, to, result.TypeGroups), nil
}

// nextBucketStart returns the start of the period following t: the
// next year/month/day/hour boundary after t, so a mid-period start
// yields a short first bucket and aligned buckets afterwards.
func nextBucketStart(t time.Time, g Granularity) time.Time {
	t = t.UTC()
	switch g {
	case GranularityYear:
		return time.Date(t.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
	case GranularityMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	case GranularityDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	default: // GranularityHour
		return t.Truncate(time.Hour).Add(time.Hour)
	}
}

func formatBucketLabel(t time.Time, g Granularity) string {
	switch g {
	case GranularityYear:
		return t.Format("2006")
	case GranularityMonth:
		return t.Format("Jan")
	case GranularityDay:
		return t.Format("Jan 02")
	default: // GranularityHour
		return t.Format("15:00")
	}
}

// sumInRange totals transactions with date in [start, end).
func sumInRange(transactions []models.Transaction, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range transactions {
		date := transactions[i].Date.UTC()
		if !date.Before(start) && date.Before(end) {
			total = total.Add(transactions[i].Amount)
		}
	}
	return total
}

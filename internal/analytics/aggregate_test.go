package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/moneta/internal/transaction"
)

func tx(kind transaction.Kind, amount, category string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Kind:     kind,
		Source:   transaction.SourceManual,
		Amount:   decimal.RequireFromString(amount),
		Category: category,
		Date:     date,
	}
}

func TestByCategory(t *testing.T) {
	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, "30.00", "food", day),
		tx(transaction.KindExpense, "20.00", "transport", day),
		tx(transaction.KindExpense, "20.00", "food", day),
		tx(transaction.KindExpense, "15.00", "", day), // uncategorized, excluded entirely
	}

	stats := ByCategory(txs)
	require.Len(t, stats, 2)

	assert.Equal(t, "food", stats[0].Category)
	assert.True(t, stats[0].Amount.Equal(decimal.RequireFromString("50")))
	assert.True(t, stats[0].Percent.Equal(decimal.RequireFromString("71.43")),
		"got %s", stats[0].Percent)

	assert.Equal(t, "transport", stats[1].Category)
	assert.True(t, stats[1].Amount.Equal(decimal.RequireFromString("20")))
	assert.True(t, stats[1].Percent.Equal(decimal.RequireFromString("28.57")),
		"got %s", stats[1].Percent)
}

func TestByCategoryEmpty(t *testing.T) {
	assert.Empty(t, ByCategory(nil))

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, ByCategory([]*transaction.Transaction{
		tx(transaction.KindExpense, "10", "", day),
	}))
}

func TestByPaymentMethod(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	card := tx(transaction.KindExpense, "40", "food", day)
	card.PaymentMethod = "visa"

	cash := tx(transaction.KindExpense, "10", "food", day)
	cash.PaymentMethod = "cash"

	external := tx(transaction.KindExpense, "99", "food", day)
	external.PaymentMethod = "visa"
	external.Source = transaction.SourceExternal

	unlabeled := tx(transaction.KindExpense, "5", "food", day)

	stats := ByPaymentMethod([]*transaction.Transaction{card, cash, external, unlabeled})
	require.Len(t, stats, 2)

	assert.Equal(t, "visa", stats[0].Method)
	assert.True(t, stats[0].Amount.Equal(decimal.RequireFromString("40")))
	assert.True(t, stats[0].Percent.Equal(decimal.RequireFromString("80")))

	assert.Equal(t, "cash", stats[1].Method)
	assert.True(t, stats[1].Percent.Equal(decimal.RequireFromString("20")))
}

func TestTopCategories(t *testing.T) {
	stats := []CategoryStat{
		{Category: "a", Amount: decimal.NewFromInt(10)},
		{Category: "b", Amount: decimal.NewFromInt(30)},
		{Category: "c", Amount: decimal.NewFromInt(20)},
		{Category: "d", Amount: decimal.NewFromInt(30)},
		{Category: "e", Amount: decimal.NewFromInt(5)},
		{Category: "f", Amount: decimal.NewFromInt(1)},
	}

	top := TopCategories(stats, 5)
	require.Len(t, top, 5)

	// b ties with d; b keeps its earlier position.
	assert.Equal(t, "b", top[0].Category)
	assert.Equal(t, "d", top[1].Category)
	assert.Equal(t, "c", top[2].Category)
	assert.Equal(t, "a", top[3].Category)
	assert.Equal(t, "e", top[4].Category)

	// Input order is untouched.
	assert.Equal(t, "a", stats[0].Category)
}

func TestTopCategoriesShorterThanCutoff(t *testing.T) {
	stats := []CategoryStat{{Category: "only", Amount: decimal.NewFromInt(1)}}
	assert.Len(t, TopCategories(stats, 5), 1)
}

func TestByBucketDaily(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, "10", "food", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)),
		tx(transaction.KindExpense, "5", "food", time.Date(2026, 3, 10, 21, 30, 0, 0, time.UTC)),
		tx(transaction.KindExpense, "7", "food", time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)),
	}

	points := ByBucket(txs, TimeframeDay)
	require.Len(t, points, 2)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), points[0].Bucket)
	assert.True(t, points[0].Amount.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), points[1].Bucket)
}

func TestFillDailyGaps(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	points := []Point{
		{Bucket: time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(4)},
		{Bucket: time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(9)},
	}

	filled := FillDailyGaps(points, start, end)
	require.Len(t, filled, 5)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), filled[0].Bucket)
	assert.True(t, filled[0].Amount.IsZero())
	assert.True(t, filled[1].Amount.Equal(decimal.NewFromInt(4)))
	assert.True(t, filled[2].Amount.IsZero())
	assert.True(t, filled[3].Amount.Equal(decimal.NewFromInt(9)))
	assert.True(t, filled[4].Amount.IsZero())
}

func TestFillWeeklyGaps(t *testing.T) {
	// Wed 2026-03-04 through Tue 2026-03-17 spans three ISO weeks.
	start := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	points := []Point{
		{Bucket: time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(12)},
	}

	filled := FillWeeklyGaps(points, start, end)
	require.Len(t, filled, 3)

	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), filled[0].Bucket)
	assert.True(t, filled[0].Amount.IsZero())
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), filled[1].Bucket)
	assert.True(t, filled[1].Amount.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), filled[2].Bucket)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"wednesday rolls back to monday",
			time.Date(2026, 3, 11, 15, 4, 5, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday is its own week start",
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to the previous monday",
			time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.in))
		})
	}
}

func TestBucketStart(t *testing.T) {
	ts := time.Date(2026, 7, 18, 13, 0, 0, 0, time.UTC) // a Saturday

	assert.Equal(t, time.Date(2026, 7, 18, 0, 0, 0, 0, time.UTC), BucketStart(ts, TimeframeDay))
	assert.Equal(t, time.Date(2026, 7, 13, 0, 0, 0, 0, time.UTC), BucketStart(ts, TimeframeWeek))
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), BucketStart(ts, TimeframeMonth))
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), BucketStart(ts, TimeframeYear))
}

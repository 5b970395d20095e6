// Package analytics is the aggregation engine over the unified
// transaction view: category and payment-method breakdowns, calendar
// bucketing with gap-filling, and the period/budget comparisons built
// on top. Every function here is a pure function of its inputs; "now"
// always arrives as an argument or injected clock, never from a global.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/money"
	"github.com/avoronov/moneta/internal/transaction"
)

// CategoryStat is one slice of a category breakdown. Percent is taken
// against the total of categorized amounts only.
type CategoryStat struct {
	Category string
	Amount   decimal.Decimal
	Percent  decimal.Decimal
}

// MethodStat is one slice of a payment-method breakdown.
type MethodStat struct {
	Method  string
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

// Point is one bucket of a time series.
type Point struct {
	Bucket time.Time
	Amount decimal.Decimal
}

// sumByKey accumulates amounts per key, remembering the order in which
// keys were first encountered. Map iteration order would make repeated
// aggregations disagree; the insertion order is also the documented
// tie-break for top-N cutoffs.
type sumByKey struct {
	order []string
	sums  map[string]decimal.Decimal
}

func newSumByKey() *sumByKey {
	return &sumByKey{sums: make(map[string]decimal.Decimal)}
}

func (s *sumByKey) add(key string, amount decimal.Decimal) {
	if _, ok := s.sums[key]; !ok {
		s.order = append(s.order, key)
	}

	s.sums[key] = s.sums[key].Add(amount)
}

func (s *sumByKey) total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range s.sums {
		total = total.Add(amount)
	}

	return total
}

// ByCategory sums amounts per non-empty category. Transactions without
// a category are excluded from both the numerator and the denominator.
func ByCategory(txs []*transaction.Transaction) []CategoryStat {
	byCat := newSumByKey()

	for _, tx := range txs {
		if tx.Category == "" {
			continue
		}

		byCat.add(tx.Category, tx.Amount)
	}

	total := byCat.total()

	stats := make([]CategoryStat, 0, len(byCat.order))
	for _, cat := range byCat.order {
		stats = append(stats, CategoryStat{
			Category: cat,
			Amount:   money.Round(byCat.sums[cat]),
			Percent:  money.PercentOf(byCat.sums[cat], total),
		})
	}

	return stats
}

// ByPaymentMethod sums amounts per payment method. Only manually
// entered records carry a meaningful payment method.
func ByPaymentMethod(txs []*transaction.Transaction) []MethodStat {
	byMethod := newSumByKey()

	for _, tx := range txs {
		if tx.Source != transaction.SourceManual || tx.PaymentMethod == "" {
			continue
		}

		byMethod.add(tx.PaymentMethod, tx.Amount)
	}

	total := byMethod.total()

	stats := make([]MethodStat, 0, len(byMethod.order))
	for _, method := range byMethod.order {
		stats = append(stats, MethodStat{
			Method:  method,
			Amount:  money.Round(byMethod.sums[method]),
			Percent: money.PercentOf(byMethod.sums[method], total),
		})
	}

	return stats
}

// topCategoryCutoff is the fixed "top categories" cutoff used by the
// summary and comparison views.
const topCategoryCutoff = 5

// TopCategories sorts by amount descending and keeps the first n.
// Equal amounts keep their first-encountered order; that non-strict
// tie-break is intentional.
func TopCategories(stats []CategoryStat, n int) []CategoryStat {
	sorted := make([]CategoryStat, len(stats))
	copy(sorted, stats)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// ByBucket groups transactions into calendar buckets for the given
// timeframe and returns the buckets in ascending order.
func ByBucket(txs []*transaction.Transaction, tf Timeframe) []Point {
	sums := make(map[time.Time]decimal.Decimal)

	for _, tx := range txs {
		key := BucketStart(tx.Date, tf)
		sums[key] = sums[key].Add(tx.Amount)
	}

	points := make([]Point, 0, len(sums))
	for bucket, amount := range sums {
		points = append(points, Point{Bucket: bucket, Amount: money.Round(amount)})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Bucket.Before(points[j].Bucket)
	})

	return points
}

// FillDailyGaps returns one point per calendar day in [start, end]
// inclusive, inserting zero amounts for days with no transactions.
// Chart consumers never have to special-case missing points.
func FillDailyGaps(points []Point, start, end time.Time) []Point {
	return fillGaps(points, DateOf(start), DateOf(end), func(d time.Time) time.Time {
		return d.AddDate(0, 0, 1)
	})
}

// FillWeeklyGaps does the same with one point per ISO week (keyed by
// its Monday) in [start, end] inclusive.
func FillWeeklyGaps(points []Point, start, end time.Time) []Point {
	return fillGaps(points, WeekStart(start), WeekStart(end), func(d time.Time) time.Time {
		return d.AddDate(0, 0, 7)
	})
}

func fillGaps(points []Point, start, end time.Time, next func(time.Time) time.Time) []Point {
	byBucket := make(map[time.Time]decimal.Decimal, len(points))
	for _, p := range points {
		byBucket[p.Bucket] = p.Amount
	}

	var filled []Point

	for d := start; !d.After(end); d = next(d) {
		amount, ok := byBucket[d]
		if !ok {
			amount = decimal.Zero
		}

		filled = append(filled, Point{Bucket: d, Amount: amount})
	}

	return filled
}

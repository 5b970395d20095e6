package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoronov/moneta/internal/budget"
	"github.com/avoronov/moneta/internal/transaction"
)

// Wednesday, March 11th. Week starts Monday the 9th, month on the 1st.
var testNow = time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *MockTransactionFetcher, *MockBudgetLister) {
	t.Helper()

	ctrl := gomock.NewController(t)
	transactions := NewMockTransactionFetcher(ctrl)
	budgets := NewMockBudgetLister(ctrl)

	svc := NewService(transactions, budgets)
	svc.now = func() time.Time { return testNow }

	return svc, transactions, budgets
}

func TestServiceSummary(t *testing.T) {
	svc, transactions, _ := newTestService(t)
	userID := uuid.New()

	txs := []*transaction.Transaction{
		tx(transaction.KindExpense, "10", "food", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),  // this week
		tx(transaction.KindExpense, "20", "food", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)),   // this month
		tx(transaction.KindExpense, "30", "rent", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)),  // this year
		tx(transaction.KindExpense, "40", "rent", time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)), // older
	}
	txs[0].PaymentMethod = "visa"

	transactions.EXPECT().
		FetchUnified(gomock.Any(), userID, transaction.ListFilter{}).
		Return(txs, nil)

	summary, err := svc.Summary(context.Background(), userID, nil)
	require.NoError(t, err)

	assert.True(t, summary.TotalSpent.Week.Equal(decimal.NewFromInt(10)))
	assert.True(t, summary.TotalSpent.Month.Equal(decimal.NewFromInt(30)))
	assert.True(t, summary.TotalSpent.Year.Equal(decimal.NewFromInt(60)))

	require.Len(t, summary.TopCategories, 2)
	assert.Equal(t, "rent", summary.TopCategories[0].Category)
	assert.True(t, summary.TopCategories[0].Amount.Equal(decimal.NewFromInt(70)))

	require.Len(t, summary.PaymentMethods, 1)
	assert.Equal(t, "visa", summary.PaymentMethods[0].Method)
}

func TestServiceSummaryKindFilterPushdown(t *testing.T) {
	svc, transactions, _ := newTestService(t)
	userID := uuid.New()

	kind := transaction.KindIncome

	transactions.EXPECT().
		FetchUnified(gomock.Any(), userID, transaction.ListFilter{Kind: &kind}).
		Return(nil, nil)

	summary, err := svc.Summary(context.Background(), userID, &kind)
	require.NoError(t, err)
	assert.True(t, summary.TotalSpent.Year.IsZero())
}

func TestServicePie(t *testing.T) {
	t.Run("current month categories", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)
		userID := uuid.New()

		monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, transaction.ListFilter{Since: &monthStart}).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
				assert.Equal(t, monthStart, *filter.Since)
				return []*transaction.Transaction{
					tx(transaction.KindExpense, "50", "food", testNow),
					tx(transaction.KindExpense, "50", "transport", testNow),
				}, nil
			})

		stats, err := svc.Pie(context.Background(), userID, nil)
		require.NoError(t, err)
		require.Len(t, stats, 2)
		assert.True(t, stats[0].Percent.Equal(decimal.NewFromInt(50)))
	})

	t.Run("empty month is no data", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)
		userID := uuid.New()

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, gomock.Any()).
			Return(nil, nil)

		_, err := svc.Pie(context.Background(), userID, nil)
		require.ErrorIs(t, err, ErrNoData)
	})
}

func TestServiceLine(t *testing.T) {
	t.Run("rejects unknown timeframe", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Line(context.Background(), uuid.New(), Timeframe("decade"), nil)
		require.ErrorIs(t, err, ErrInvalidTimeframe)
	})

	t.Run("month window gap-fills every day", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)
		userID := uuid.New()

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
				assert.Equal(t, testNow.AddDate(0, 0, -30), *filter.Since)
				return []*transaction.Transaction{
					tx(transaction.KindExpense, "10", "food", testNow.AddDate(0, 0, -3)),
				}, nil
			})

		chart, err := svc.Line(context.Background(), userID, TimeframeMonth, nil)
		require.NoError(t, err)
		assert.Equal(t, TimeframeMonth, chart.Timeframe)

		// 30 days back through today, inclusive.
		require.Len(t, chart.Points, 31)
		assert.Equal(t, time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), chart.Points[0].Bucket)
		assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), chart.Points[30].Bucket)

		var nonZero int
		for _, p := range chart.Points {
			if !p.Amount.IsZero() {
				nonZero++
			}
		}
		assert.Equal(t, 1, nonZero)
	})

	t.Run("year window buckets by week", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)
		userID := uuid.New()

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, gomock.Any()).
			Return([]*transaction.Transaction{
				tx(transaction.KindExpense, "10", "food", testNow.AddDate(0, 0, -10)),
			}, nil)

		chart, err := svc.Line(context.Background(), userID, TimeframeYear, nil)
		require.NoError(t, err)

		// 365 days is 53 Mondays for this window.
		assert.Len(t, chart.Points, 53)
		for _, p := range chart.Points {
			assert.Equal(t, time.Monday, p.Bucket.Weekday())
		}
	})

	t.Run("empty window is no data", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)

		transactions.EXPECT().
			FetchUnified(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		_, err := svc.Line(context.Background(), uuid.New(), TimeframeWeek, nil)
		require.ErrorIs(t, err, ErrNoData)
	})
}

func TestServiceCompareMonths(t *testing.T) {
	svc, transactions, _ := newTestService(t)
	userID := uuid.New()

	transactions.EXPECT().
		FetchUnified(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
			assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *filter.Since)
			return []*transaction.Transaction{
				tx(transaction.KindExpense, "150", "food", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
				tx(transaction.KindExpense, "100", "food", time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)),
			}, nil
		})

	cmp, err := svc.CompareMonths(context.Background(), userID, nil)
	require.NoError(t, err)

	assert.True(t, cmp.CurrentTotal.Equal(decimal.NewFromInt(150)))
	assert.True(t, cmp.PreviousTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, cmp.ChangePercent.Equal(decimal.NewFromInt(50)))
}

func TestServiceCompareMonthsZeroPrevious(t *testing.T) {
	svc, transactions, _ := newTestService(t)

	transactions.EXPECT().
		FetchUnified(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*transaction.Transaction{
			tx(transaction.KindExpense, "80", "food", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
		}, nil)

	cmp, err := svc.CompareMonths(context.Background(), uuid.New(), nil)
	require.NoError(t, err)

	assert.True(t, cmp.PreviousTotal.IsZero())
	assert.True(t, cmp.ChangePercent.IsZero(), "zero previous must not divide")
}

func TestServiceBudgetAnalysis(t *testing.T) {
	t.Run("no budgets is no data", func(t *testing.T) {
		svc, _, budgets := newTestService(t)
		userID := uuid.New()

		budgets.EXPECT().ListBudgets(gomock.Any(), userID).Return(nil, nil)

		_, err := svc.BudgetAnalysis(context.Background(), userID)
		require.ErrorIs(t, err, ErrNoData)
	})

	t.Run("spend against limits, newest duplicate wins", func(t *testing.T) {
		svc, transactions, budgets := newTestService(t)
		userID := uuid.New()

		budgets.EXPECT().ListBudgets(gomock.Any(), userID).Return([]*budget.Budget{
			{Category: "food", Limit: decimal.NewFromInt(100)},
			{Category: "transport", Limit: decimal.NewFromInt(50)},
			{Category: "food", Limit: decimal.NewFromInt(200)}, // created later, wins
		}, nil)

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
				require.NotNil(t, filter.Kind)
				assert.Equal(t, transaction.KindExpense, *filter.Kind)
				return []*transaction.Transaction{
					tx(transaction.KindExpense, "50", "food", testNow),
					tx(transaction.KindExpense, "10", "transport", testNow),
				}, nil
			})

		stats, err := svc.BudgetAnalysis(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, stats, 2)

		assert.Equal(t, "food", stats[0].Category)
		assert.True(t, stats[0].Limit.Equal(decimal.NewFromInt(200)))
		assert.True(t, stats[0].Spent.Equal(decimal.NewFromInt(50)))
		assert.True(t, stats[0].Percent.Equal(decimal.NewFromInt(25)))

		assert.Equal(t, "transport", stats[1].Category)
		assert.True(t, stats[1].Percent.Equal(decimal.NewFromInt(20)))
	})

	t.Run("unspent category reports zero", func(t *testing.T) {
		svc, transactions, budgets := newTestService(t)
		userID := uuid.New()

		budgets.EXPECT().ListBudgets(gomock.Any(), userID).Return([]*budget.Budget{
			{Category: "travel", Limit: decimal.NewFromInt(300)},
		}, nil)

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, gomock.Any()).
			Return(nil, nil)

		stats, err := svc.BudgetAnalysis(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, stats, 1)
		assert.True(t, stats[0].Spent.IsZero())
		assert.True(t, stats[0].Percent.IsZero())
	})
}

func TestServiceCompareTypes(t *testing.T) {
	t.Run("rejects day timeframe", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CompareTypes(context.Background(), uuid.New(), TimeframeDay)
		require.ErrorIs(t, err, ErrInvalidTimeframe)
	})

	t.Run("splits month into income and expense", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)
		userID := uuid.New()

		transactions.EXPECT().
			FetchUnified(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
				assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *filter.Since)
				return []*transaction.Transaction{
					tx(transaction.KindIncome, "1500", "salary", testNow),
					tx(transaction.KindExpense, "400", "rent", testNow),
					tx(transaction.KindExpense, "100", "food", testNow),
				}, nil
			})

		cmp, err := svc.CompareTypes(context.Background(), userID, TimeframeMonth)
		require.NoError(t, err)

		assert.True(t, cmp.TotalIncome.Equal(decimal.NewFromInt(1500)))
		assert.True(t, cmp.TotalExpense.Equal(decimal.NewFromInt(500)))
		assert.True(t, cmp.Difference.Equal(decimal.NewFromInt(1000)))
		assert.True(t, cmp.IncomePercent.Equal(decimal.NewFromInt(75)))
		assert.True(t, cmp.ExpensePercent.Equal(decimal.NewFromInt(25)))

		require.Len(t, cmp.TopIncomeCategories, 1)
		assert.Equal(t, "salary", cmp.TopIncomeCategories[0].Category)

		require.Len(t, cmp.TopExpenseCategories, 2)
		assert.Equal(t, "rent", cmp.TopExpenseCategories[0].Category)
	})

	t.Run("empty period is no data", func(t *testing.T) {
		svc, transactions, _ := newTestService(t)

		transactions.EXPECT().
			FetchUnified(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		_, err := svc.CompareTypes(context.Background(), uuid.New(), TimeframeWeek)
		require.ErrorIs(t, err, ErrNoData)
	})
}

func TestServiceFetchErrorPropagates(t *testing.T) {
	svc, transactions, _ := newTestService(t)

	dbErr := errors.New("connection reset")

	transactions.EXPECT().
		FetchUnified(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, dbErr)

	_, err := svc.Summary(context.Background(), uuid.New(), nil)
	require.ErrorIs(t, err, dbErr)
}

package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/budget"
	"github.com/avoronov/moneta/internal/money"
	"github.com/avoronov/moneta/internal/transaction"
)

var (
	// ErrNoData marks views that have nothing to report for the
	// requested window, which the API surfaces as not found.
	ErrNoData = errors.New("no transactions for the requested window")

	ErrInvalidTimeframe = errors.New("invalid timeframe")
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=analytics

type TransactionFetcher interface {
	FetchUnified(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type BudgetLister interface {
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error)
}

// Service renders the analytics views over the unified transaction
// history. All date math runs off the injected clock.
type Service struct {
	transactions TransactionFetcher
	budgets      BudgetLister
	now          func() time.Time
}

func NewService(transactions TransactionFetcher, budgets BudgetLister) *Service {
	return &Service{
		transactions: transactions,
		budgets:      budgets,
		now:          time.Now,
	}
}

type TotalSpent struct {
	Week  decimal.Decimal
	Month decimal.Decimal
	Year  decimal.Decimal
}

type Summary struct {
	TotalSpent     TotalSpent
	TopCategories  []CategoryStat
	PaymentMethods []MethodStat
}

// Summary reports calendar-period totals (since Monday, since the 1st,
// since January 1st) plus the top categories and payment-method
// breakdown over the whole history.
func (s *Service) Summary(ctx context.Context, userID uuid.UUID, kind *transaction.Kind) (*Summary, error) {
	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{Kind: kind})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for summary: %w", err)
	}

	now := s.now()
	weekStart := WeekStart(now)
	monthStart := MonthStart(now)
	yearStart := YearStart(now)

	week, month, year := decimal.Zero, decimal.Zero, decimal.Zero

	for _, tx := range txs {
		if !tx.Date.Before(weekStart) {
			week = week.Add(tx.Amount)
		}

		if !tx.Date.Before(monthStart) {
			month = month.Add(tx.Amount)
		}

		if !tx.Date.Before(yearStart) {
			year = year.Add(tx.Amount)
		}
	}

	return &Summary{
		TotalSpent: TotalSpent{
			Week:  money.Round(week),
			Month: money.Round(month),
			Year:  money.Round(year),
		},
		TopCategories:  TopCategories(ByCategory(txs), topCategoryCutoff),
		PaymentMethods: ByPaymentMethod(txs),
	}, nil
}

// Pie breaks the current month down by category.
func (s *Service) Pie(ctx context.Context, userID uuid.UUID, kind *transaction.Kind) ([]CategoryStat, error) {
	monthStart := MonthStart(s.now())

	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{
		Kind:  kind,
		Since: &monthStart,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for pie chart: %w", err)
	}

	if len(txs) == 0 {
		return nil, ErrNoData
	}

	return ByCategory(txs), nil
}

type LineChart struct {
	Timeframe Timeframe
	Points    []Point
}

// Line renders a gap-filled time series over the timeframe's look-back
// window. Day, week and month windows use daily buckets; the year
// window uses ISO-week buckets to keep the series a sane length.
func (s *Service) Line(ctx context.Context, userID uuid.UUID, tf Timeframe, kind *transaction.Kind) (*LineChart, error) {
	if !tf.Valid() {
		return nil, ErrInvalidTimeframe
	}

	now := s.now()
	since := now.AddDate(0, 0, -tf.WindowDays())

	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{
		Kind:  kind,
		Since: &since,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for line chart: %w", err)
	}

	if len(txs) == 0 {
		return nil, ErrNoData
	}

	var points []Point
	if tf == TimeframeYear {
		points = FillWeeklyGaps(ByBucket(txs, TimeframeWeek), since, now)
	} else {
		points = FillDailyGaps(ByBucket(txs, TimeframeDay), since, now)
	}

	return &LineChart{Timeframe: tf, Points: points}, nil
}

type MonthComparison struct {
	PreviousTotal decimal.Decimal
	CurrentTotal  decimal.Decimal
	ChangePercent decimal.Decimal
}

// CompareMonths totals the current calendar month against the previous
// one.
func (s *Service) CompareMonths(ctx context.Context, userID uuid.UUID, kind *transaction.Kind) (*MonthComparison, error) {
	now := s.now()
	monthStart := MonthStart(now)
	prevStart := monthStart.AddDate(0, -1, 0)

	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{
		Kind:  kind,
		Since: &prevStart,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for month comparison: %w", err)
	}

	current, previous := decimal.Zero, decimal.Zero

	for _, tx := range txs {
		if !tx.Date.Before(monthStart) {
			current = current.Add(tx.Amount)
		} else {
			previous = previous.Add(tx.Amount)
		}
	}

	return &MonthComparison{
		PreviousTotal: money.Round(previous),
		CurrentTotal:  money.Round(current),
		ChangePercent: ChangePercent(current, previous),
	}, nil
}

type BudgetStat struct {
	Category string
	Limit    decimal.Decimal
	Spent    decimal.Decimal
	Percent  decimal.Decimal
}

// BudgetAnalysis compares this month's expenses against the user's
// budgets. When the same category carries several budgets, the most
// recently created limit wins; the stats keep the category's original
// position.
func (s *Service) BudgetAnalysis(ctx context.Context, userID uuid.UUID) ([]BudgetStat, error) {
	budgets, err := s.budgets.ListBudgets(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}

	if len(budgets) == 0 {
		return nil, ErrNoData
	}

	monthStart := MonthStart(s.now())
	expenseKind := transaction.KindExpense

	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{
		Kind:  &expenseKind,
		Since: &monthStart,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching expenses for budget analysis: %w", err)
	}

	spentByCategory := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Category == "" {
			continue
		}

		spentByCategory[tx.Category] = spentByCategory[tx.Category].Add(tx.Amount)
	}

	stats := make([]BudgetStat, 0, len(budgets))
	index := make(map[string]int)

	// Budgets arrive ordered by creation time, so a repeated category
	// overwrites the earlier limit in place.
	for _, b := range budgets {
		util := BudgetUtilization(b.Limit, spentByCategory[b.Category])

		stat := BudgetStat{
			Category: b.Category,
			Limit:    money.Round(b.Limit),
			Spent:    util.Spent,
			Percent:  util.Percent,
		}

		if i, ok := index[b.Category]; ok {
			stats[i] = stat
			continue
		}

		index[b.Category] = len(stats)
		stats = append(stats, stat)
	}

	return stats, nil
}

type TypeComparison struct {
	Timeframe            Timeframe
	TotalIncome          decimal.Decimal
	TotalExpense         decimal.Decimal
	Difference           decimal.Decimal
	IncomePercent        decimal.Decimal
	ExpensePercent       decimal.Decimal
	TopIncomeCategories  []CategoryStat
	TopExpenseCategories []CategoryStat
}

// CompareTypes splits the current calendar period (week, month or
// year) into income versus expense.
func (s *Service) CompareTypes(ctx context.Context, userID uuid.UUID, tf Timeframe) (*TypeComparison, error) {
	var since time.Time

	now := s.now()

	switch tf {
	case TimeframeWeek:
		since = WeekStart(now)
	case TimeframeMonth:
		since = MonthStart(now)
	case TimeframeYear:
		since = YearStart(now)
	default:
		return nil, ErrInvalidTimeframe
	}

	txs, err := s.transactions.FetchUnified(ctx, userID, transaction.ListFilter{Since: &since})
	if err != nil {
		return nil, fmt.Errorf("fetching transactions for type comparison: %w", err)
	}

	if len(txs) == 0 {
		return nil, ErrNoData
	}

	var incomes, expenses []*transaction.Transaction

	totalIncome, totalExpense := decimal.Zero, decimal.Zero

	for _, tx := range txs {
		switch tx.Kind {
		case transaction.KindIncome:
			incomes = append(incomes, tx)
			totalIncome = totalIncome.Add(tx.Amount)
		case transaction.KindExpense:
			expenses = append(expenses, tx)
			totalExpense = totalExpense.Add(tx.Amount)
		}
	}

	incomePercent, expensePercent := IncomeExpenseSplit(totalIncome, totalExpense)

	return &TypeComparison{
		Timeframe:            tf,
		TotalIncome:          money.Round(totalIncome),
		TotalExpense:         money.Round(totalExpense),
		Difference:           money.Round(totalIncome.Sub(totalExpense)),
		IncomePercent:        incomePercent,
		ExpensePercent:       expensePercent,
		TopIncomeCategories:  TopCategories(ByCategory(incomes), topCategoryCutoff),
		TopExpenseCategories: TopCategories(ByCategory(expenses), topCategoryCutoff),
	}, nil
}

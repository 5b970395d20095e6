package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/money"
)

// ChangePercent is the period-over-period delta as a percentage of the
// previous total. It is zero when the previous total is zero, which
// conflates "no prior spending" with "no change"; callers must treat a
// zero result as ambiguous in that case.
func ChangePercent(current, previous decimal.Decimal) decimal.Decimal {
	return money.PercentOf(current.Sub(previous), previous)
}

// Utilization reports how much of a budget limit has been consumed.
type Utilization struct {
	Spent   decimal.Decimal
	Percent decimal.Decimal
}

// BudgetUtilization computes spend against a limit. A zero limit yields
// a zero percentage rather than an error.
func BudgetUtilization(limit, spent decimal.Decimal) Utilization {
	return Utilization{
		Spent:   money.Round(spent),
		Percent: money.PercentOf(spent, limit),
	}
}

// IncomeExpenseSplit returns each side's share of the combined volume.
// Both are zero when both totals are zero. The two percentages are
// rounded independently and need not sum to exactly 100; forcing them
// to be complementary would change observed behavior.
func IncomeExpenseSplit(totalIncome, totalExpense decimal.Decimal) (incomePercent, expensePercent decimal.Decimal) {
	combined := totalIncome.Add(totalExpense)

	return money.PercentOf(totalIncome, combined), money.PercentOf(totalExpense, combined)
}

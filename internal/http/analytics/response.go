package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/analytics"
)

type categoryStat struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Percent  decimal.Decimal `json:"percent"`
}

func toCategoryStats(stats []analytics.CategoryStat) []categoryStat {
	resp := make([]categoryStat, len(stats))
	for i, s := range stats {
		resp[i] = categoryStat{Category: s.Category, Amount: s.Amount, Percent: s.Percent}
	}

	return resp
}

type methodStat struct {
	Method  string          `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

type summaryResponse struct {
	TotalSpent     totalSpent     `json:"total_spent"`
	TopCategories  []categoryStat `json:"top_categories"`
	PaymentMethods []methodStat   `json:"payment_methods"`
}

type totalSpent struct {
	Week  decimal.Decimal `json:"week"`
	Month decimal.Decimal `json:"month"`
	Year  decimal.Decimal `json:"year"`
}

func toSummaryResponse(s *analytics.Summary) summaryResponse {
	methods := make([]methodStat, len(s.PaymentMethods))
	for i, m := range s.PaymentMethods {
		methods[i] = methodStat{Method: m.Method, Amount: m.Amount, Percent: m.Percent}
	}

	return summaryResponse{
		TotalSpent: totalSpent{
			Week:  s.TotalSpent.Week,
			Month: s.TotalSpent.Month,
			Year:  s.TotalSpent.Year,
		},
		TopCategories:  toCategoryStats(s.TopCategories),
		PaymentMethods: methods,
	}
}

type pieResponse struct {
	Data []categoryStat `json:"data"`
}

type linePoint struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type lineResponse struct {
	Timeframe analytics.Timeframe `json:"timeframe"`
	Data      []linePoint         `json:"data"`
}

func toLineResponse(chart *analytics.LineChart) lineResponse {
	points := make([]linePoint, len(chart.Points))
	for i, p := range chart.Points {
		points[i] = linePoint{Date: p.Bucket, Amount: p.Amount}
	}

	return lineResponse{Timeframe: chart.Timeframe, Data: points}
}

type monthComparisonResponse struct {
	PreviousMonthTotal decimal.Decimal `json:"previous_month_total"`
	CurrentMonthTotal  decimal.Decimal `json:"current_month_total"`
	ChangePercent      decimal.Decimal `json:"change_percent"`
}

func toMonthComparisonResponse(cmp *analytics.MonthComparison) monthComparisonResponse {
	return monthComparisonResponse{
		PreviousMonthTotal: cmp.PreviousTotal,
		CurrentMonthTotal:  cmp.CurrentTotal,
		ChangePercent:      cmp.ChangePercent,
	}
}

type budgetStat struct {
	Category string          `json:"category"`
	Budget   decimal.Decimal `json:"budget"`
	Spent    decimal.Decimal `json:"spent"`
	Percent  decimal.Decimal `json:"percent"`
}

type budgetAnalysisResponse struct {
	Categories []budgetStat `json:"categories"`
}

func toBudgetStats(stats []analytics.BudgetStat) []budgetStat {
	resp := make([]budgetStat, len(stats))
	for i, s := range stats {
		resp[i] = budgetStat{Category: s.Category, Budget: s.Limit, Spent: s.Spent, Percent: s.Percent}
	}

	return resp
}

type typeComparisonResponse struct {
	Timeframe            analytics.Timeframe `json:"timeframe"`
	TotalIncome          decimal.Decimal     `json:"total_income"`
	TotalExpense         decimal.Decimal     `json:"total_expense"`
	Difference           decimal.Decimal     `json:"difference"`
	IncomePercent        decimal.Decimal     `json:"income_percent"`
	ExpensePercent       decimal.Decimal     `json:"expense_percent"`
	TopIncomeCategories  []categoryStat      `json:"top_income_categories"`
	TopExpenseCategories []categoryStat      `json:"top_expense_categories"`
}

func toTypeComparisonResponse(cmp *analytics.TypeComparison) typeComparisonResponse {
	return typeComparisonResponse{
		Timeframe:            cmp.Timeframe,
		TotalIncome:          cmp.TotalIncome,
		TotalExpense:         cmp.TotalExpense,
		Difference:           cmp.Difference,
		IncomePercent:        cmp.IncomePercent,
		ExpensePercent:       cmp.ExpensePercent,
		TopIncomeCategories:  toCategoryStats(cmp.TopIncomeCategories),
		TopExpenseCategories: toCategoryStats(cmp.TopExpenseCategories),
	}
}

package transaction_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/avoronov/moneta/internal/transaction"
)

func TestKindForProviderAmount(t *testing.T) {
	type testCase struct {
		name     string
		raw      string
		wantKind transaction.Kind
		wantMag  string
	}

	tests := []testCase{
		{name: "PositiveIsExpense", raw: "42.50", wantKind: transaction.KindExpense, wantMag: "42.50"},
		{name: "NegativeIsIncome", raw: "-1200", wantKind: transaction.KindIncome, wantMag: "1200"},
		{name: "ZeroIsExpense", raw: "0", wantKind: transaction.KindExpense, wantMag: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, mag := transaction.KindForProviderAmount(decimal.RequireFromString(tt.raw))
			assert.Equal(t, tt.wantKind, kind)
			assert.True(t, mag.Equal(decimal.RequireFromString(tt.wantMag)))
			assert.False(t, mag.IsNegative())
		})
	}
}

func TestKindForProviderAmount_Idempotent(t *testing.T) {
	raw := decimal.RequireFromString("-57.30")

	kind1, mag1 := transaction.KindForProviderAmount(raw)
	kind2, mag2 := transaction.KindForProviderAmount(raw)

	assert.Equal(t, kind1, kind2)
	assert.True(t, mag1.Equal(mag2))
}

func TestJoinCategories(t *testing.T) {
	assert.Equal(t, "", transaction.JoinCategories(nil))
	assert.Equal(t, "Food and Drink", transaction.JoinCategories([]string{"Food and Drink"}))
	assert.Equal(t, "Food and Drink, Restaurants", transaction.JoinCategories([]string{"Food and Drink", "Restaurants"}))
}

func TestSignedAmount(t *testing.T) {
	expense := &transaction.Transaction{Kind: transaction.KindExpense, Amount: decimal.RequireFromString("10.50")}
	income := &transaction.Transaction{Kind: transaction.KindIncome, Amount: decimal.RequireFromString("10.50")}

	assert.True(t, expense.SignedAmount().Equal(decimal.RequireFromString("-10.50")))
	assert.True(t, income.SignedAmount().Equal(decimal.RequireFromString("10.50")))
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2024, 6, 1, 2, 30, 0, 0, loc)

	got := transaction.NormalizeDate(local)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, time.Date(2024, 5, 31, 23, 30, 0, 0, time.UTC), got)
}

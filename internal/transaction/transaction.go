package transaction

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind discriminates between money leaving and money entering the account.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Source records where a transaction came from. It is set once and
// never mutated.
type Source string

const (
	SourceManual   Source = "manual"
	SourceExternal Source = "external"
)

var (
	ErrNotFound  = errors.New("transaction not found")
	ErrForbidden = errors.New("transaction belongs to another user")
)

// Transaction is the unified view over manually entered records and
// records imported from a linked bank account. Amount is always a
// non-negative magnitude; the sign lives in Kind.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Kind          Kind
	Source        Source
	Category      string
	PaymentMethod string // only meaningful for manual expenses
	Description   string
	Date          time.Time // UTC
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// SignedAmount returns the amount with income positive and expense
// negative, the convention used by balance math.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Kind == KindExpense {
		return t.Amount.Neg()
	}

	return t.Amount
}

// KindForProviderAmount derives the kind and magnitude from a raw
// provider amount. Providers report outflows as positive and inflows as
// negative; the same raw record must always normalize the same way so
// repeated syncs stay idempotent.
func KindForProviderAmount(raw decimal.Decimal) (Kind, decimal.Decimal) {
	if raw.IsNegative() {
		return KindIncome, raw.Neg()
	}

	return KindExpense, raw
}

// JoinCategories flattens a provider category list into the single
// display string carried by the unified view.
func JoinCategories(categories []string) string {
	return strings.Join(categories, ", ")
}

// NormalizeDate converts a timestamp to UTC. Every timestamp crosses
// this exactly once, at the ingestion boundary.
func NormalizeDate(t time.Time) time.Time {
	return t.UTC()
}

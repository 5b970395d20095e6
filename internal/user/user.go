package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrBadCredential = errors.New("invalid email or password")
)

// User owns transactions, budgets and bank connections. Balance is a
// cached sum of the user's signed transaction amounts, maintained by
// the balance ledger.
type User struct {
	ID             uuid.UUID
	Email          string
	HashedPassword string
	FirstName      string
	LastName       string
	Balance        decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

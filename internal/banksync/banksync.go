// Package banksync links external bank accounts through an
// aggregation provider and imports their transactions into the
// external side of the unified transaction view.
package banksync

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/transaction"
)

var (
	ErrNotFound      = errors.New("bank connection not found")
	ErrNoConnections = errors.New("no bank connections")
	ErrNoAccounts    = errors.New("no bank accounts")
)

// Connection holds the provider credentials for one linked bank item.
// The access token never leaves this package.
type Connection struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccessToken string
	ItemID      string
	CreatedAt   time.Time
}

// Account is one depository account under a connection.
type Account struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ConnectionID      uuid.UUID
	ProviderAccountID string
	Name              string
	OfficialName      string
	Type              string
	Subtype           string
	Mask              string
	CurrentBalance    decimal.Decimal
	AvailableBalance  decimal.Decimal
	CurrencyCode      string
	CreatedAt         time.Time
}

// ExternalTransaction is an imported bank transaction after
// normalization: kind derived from the raw sign, amount stored as a
// non-negative magnitude, provider categories flattened.
type ExternalTransaction struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	AccountID             uuid.UUID
	ProviderTransactionID string
	Name                  string
	Amount                decimal.Decimal
	Kind                  transaction.Kind
	Category              string
	PaymentChannel        string
	CurrencyCode          string
	Pending               bool
	Date                  time.Time
	CreatedAt             time.Time
}

// Window bounds the look-back of a transaction sync.
type Window string

const (
	// WindowFull is the initial 30-day pull.
	WindowFull Window = "full"
	// WindowLatest is the short incremental pull for fresh activity.
	WindowLatest Window = "latest"
)

func (w Window) Days() int {
	if w == WindowLatest {
		return 3
	}

	return 30
}

// Package balance maintains each user's cached balance. The balance is
// a derived value: the transaction set is the source of truth, and the
// ledger either nudges the cache incrementally (manual transaction
// lifecycle) or rebuilds it from scratch (bulk bank sync, connection
// removal), where the set of affected records is not precisely known
// up front.
package balance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/transaction"
)

//go:generate mockgen -source=ledger.go -destination=ledger_mock.go -package=balance
type UserStore interface {
	// AddToBalance adds delta to the user's balance as an atomic
	// read-modify-write in the store.
	AddToBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error
	SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error
}

type TransactionFetcher interface {
	FetchUnified(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Ledger struct {
	users        UserStore
	transactions TransactionFetcher
}

func NewLedger(users UserStore, transactions TransactionFetcher) *Ledger {
	return &Ledger{users: users, transactions: transactions}
}

// ApplyDelta moves the cached balance by a signed amount: expenses
// apply negative, incomes positive. A failed store write means the
// delta was not applied; there is no partial-success state and no
// retry here.
func (l *Ledger) ApplyDelta(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	if err := l.users.AddToBalance(ctx, userID, delta); err != nil {
		return fmt.Errorf("applying balance delta: %w", err)
	}

	return nil
}

// ReverseAndReapply corrects the balance on an edit. It nets the old
// and new signed amounts into one delta and issues a single write, so
// a concurrent reader can never observe the intermediate balance
// between "old reversed" and "new applied".
func (l *Ledger) ReverseAndReapply(ctx context.Context, userID uuid.UUID, oldSigned, newSigned decimal.Decimal) error {
	return l.ApplyDelta(ctx, userID, newSigned.Sub(oldSigned))
}

// Recompute rebuilds the cached balance from the full unified
// transaction history and overwrites it. Used after bulk external sync
// and connection removal, where incremental deltas would have to be
// reconstructed from dedup results at every call site.
func (l *Ledger) Recompute(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	txs, err := l.transactions.FetchUnified(ctx, userID, transaction.ListFilter{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetching transactions for recompute: %w", err)
	}

	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.SignedAmount())
	}

	if err := l.users.SetBalance(ctx, userID, sum); err != nil {
		return decimal.Zero, fmt.Errorf("storing recomputed balance: %w", err)
	}

	return sum, nil
}

package transaction

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	// CreateTransaction inserts a manual transaction and applies
	// balanceDelta to the owner's cached balance in the same database
	// transaction: both writes succeed or neither does.
	CreateTransaction(ctx context.Context, tx *Transaction, balanceDelta decimal.Decimal) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction, balanceDelta decimal.Decimal) error
	DeleteTransaction(ctx context.Context, tx *Transaction, balanceDelta decimal.Decimal) error

	ListManual(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	ListExternal(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
}

// ListFilter narrows a fetch. Kind matches on equality; Since is an
// inclusive lower bound on the transaction date.
type ListFilter struct {
	Kind  *Kind
	Since *time.Time
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Kind          Kind
	Category      string
	PaymentMethod string
	Description   string
	Date          time.Time
}

type UpdateParams struct {
	Amount        decimal.Decimal
	Kind          Kind
	Category      string
	PaymentMethod string
	Description   string
	Date          *time.Time
}

// Create stores a manual transaction. The owner's balance moves by the
// signed amount in the same unit of work (incremental path; bulk bank
// imports recompute instead, see the balance package).
func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	if !params.Kind.Valid() {
		return nil, fmt.Errorf("invalid transaction kind %q", params.Kind)
	}

	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}

	date := params.Date
	if date.IsZero() {
		date = s.now()
	}

	tx := &Transaction{
		UserID:        params.UserID,
		Amount:        params.Amount,
		Kind:          params.Kind,
		Source:        SourceManual,
		Category:      params.Category,
		PaymentMethod: params.PaymentMethod,
		Description:   params.Description,
		Date:          NormalizeDate(date),
	}

	if err := s.repo.CreateTransaction(ctx, tx, tx.SignedAmount()); err != nil {
		return nil, err
	}

	return tx, nil
}

// Get returns a transaction by id. Unlike Update and Delete it surfaces
// the ownership mismatch explicitly as ErrForbidden.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != userID {
		return nil, ErrForbidden
	}

	return tx, nil
}

// Update replaces the mutable fields of a manual transaction. The
// balance correction is the single combined delta new-old, never two
// sequential writes, so no intermediate balance is ever observable.
// An ownership mismatch reports ErrNotFound to avoid leaking existence.
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, params UpdateParams) (*Transaction, error) {
	if !params.Kind.Valid() {
		return nil, fmt.Errorf("invalid transaction kind %q", params.Kind)
	}

	if params.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}

	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if tx.UserID != userID {
		return nil, ErrNotFound
	}

	oldSigned := tx.SignedAmount()

	tx.Amount = params.Amount
	tx.Kind = params.Kind
	tx.Category = params.Category
	tx.PaymentMethod = params.PaymentMethod
	tx.Description = params.Description

	if params.Date != nil {
		tx.Date = NormalizeDate(*params.Date)
	}

	delta := tx.SignedAmount().Sub(oldSigned)

	if err := s.repo.UpdateTransaction(ctx, tx, delta); err != nil {
		return nil, err
	}

	return tx, nil
}

// Delete removes a manual transaction, reversing its balance
// contribution. An ownership mismatch reports ErrNotFound.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if tx.UserID != userID {
		return ErrNotFound
	}

	return s.repo.DeleteTransaction(ctx, tx, tx.SignedAmount().Neg())
}

// List returns the user's manual transactions, newest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	txs, err := s.repo.ListManual(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	sortByDateDesc(txs)

	return txs, nil
}

// FetchUnified merges manual and externally synced transactions into
// one normalized sequence sorted by date descending. Consumers taking
// "top N" or "latest" slices depend on that ordering. The read has no
// side effects.
func (s *Service) FetchUnified(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	manual, err := s.repo.ListManual(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing manual transactions: %w", err)
	}

	external, err := s.repo.ListExternal(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("listing external transactions: %w", err)
	}

	unified := make([]*Transaction, 0, len(manual)+len(external))
	unified = append(unified, manual...)
	unified = append(unified, external...)

	sortByDateDesc(unified)

	return unified, nil
}

func sortByDateDesc(txs []*Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.After(txs[j].Date)
	})
}

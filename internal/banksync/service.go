package banksync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=banksync

// Store persists connections, accounts and imported transactions.
type Store interface {
	CreateConnection(ctx context.Context, c *Connection) error
	GetConnection(ctx context.Context, id uuid.UUID) (*Connection, error)
	ListConnections(ctx context.Context, userID uuid.UUID) ([]*Connection, error)
	// DeleteConnection removes the connection together with its
	// accounts and their imported transactions.
	DeleteConnection(ctx context.Context, id uuid.UUID) error

	CreateAccount(ctx context.Context, a *Account) error
	ListAccounts(ctx context.Context, userID uuid.UUID) ([]*Account, error)
	AccountExists(ctx context.Context, providerAccountID string) (bool, error)

	CreateExternalTransaction(ctx context.Context, t *ExternalTransaction) error
	ExternalTransactionExists(ctx context.Context, providerTransactionID string) (bool, error)
}

// Recomputer rebuilds the user's cached balance after bulk imports.
type Recomputer interface {
	Recompute(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	client Client
	store  Store
	ledger Recomputer
	logger *slog.Logger
	now    func() time.Time
}

func NewService(client Client, store Store, ledger Recomputer, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		store:  store,
		ledger: ledger,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) CreateLinkToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.client.CreateLinkToken(ctx, userID.String())
}

// ExchangePublicToken trades the short-lived public token from the
// link flow for item credentials and stores them as a connection.
func (s *Service) ExchangePublicToken(ctx context.Context, userID uuid.UUID, publicToken string) (*Connection, error) {
	creds, err := s.client.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return nil, err
	}

	conn := &Connection{
		UserID:      userID,
		AccessToken: creds.AccessToken,
		ItemID:      creds.ItemID,
	}

	if err := s.store.CreateConnection(ctx, conn); err != nil {
		return nil, err
	}

	return conn, nil
}

// SyncAccounts pulls accounts for every connection and stores the ones
// not seen before. A provider failure on one connection is logged and
// skipped; the remaining connections still sync.
func (s *Service) SyncAccounts(ctx context.Context, userID uuid.UUID) ([]*Account, error) {
	connections, err := s.store.ListConnections(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing connections: %w", err)
	}

	if len(connections) == 0 {
		return nil, ErrNoConnections
	}

	var saved []*Account

	for _, conn := range connections {
		accounts, err := s.client.GetAccounts(ctx, conn.AccessToken)
		if err != nil {
			s.logger.Warn("skipping connection: provider account fetch failed",
				"connection_id", conn.ID, "error", err)
			continue
		}

		for _, pa := range accounts {
			exists, err := s.store.AccountExists(ctx, pa.AccountID)
			if err != nil {
				return nil, fmt.Errorf("checking account %s: %w", pa.AccountID, err)
			}

			if exists {
				continue
			}

			account := &Account{
				UserID:            userID,
				ConnectionID:      conn.ID,
				ProviderAccountID: pa.AccountID,
				Name:              pa.Name,
				OfficialName:      pa.OfficialName,
				Type:              pa.Type,
				Subtype:           pa.Subtype,
				Mask:              pa.Mask,
				CurrentBalance:    pa.CurrentBalance,
				AvailableBalance:  pa.AvailableBalance,
				CurrencyCode:      pa.CurrencyCode,
			}

			if err := s.store.CreateAccount(ctx, account); err != nil {
				return nil, fmt.Errorf("storing account %s: %w", pa.AccountID, err)
			}

			saved = append(saved, account)
		}
	}

	return saved, nil
}

// SyncResult reports what a transaction sync changed.
type SyncResult struct {
	Imported int
	Balance  decimal.Decimal
}

// SyncTransactions imports bank transactions over the window's
// look-back period, skipping records whose provider transaction id was
// already imported. Re-running a sync against unchanged upstream data
// imports nothing. The cached balance is rebuilt afterwards from the
// full unified history.
func (s *Service) SyncTransactions(ctx context.Context, userID uuid.UUID, window Window) (*SyncResult, error) {
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	end := s.now()
	start := end.AddDate(0, 0, -window.Days())

	imported := 0

	for _, account := range accounts {
		conn, err := s.store.GetConnection(ctx, account.ConnectionID)
		if err != nil {
			s.logger.Warn("skipping account: connection lookup failed",
				"account_id", account.ID, "error", err)
			continue
		}

		txs, err := s.client.GetTransactions(ctx, conn.AccessToken, account.ProviderAccountID, start, end)
		if err != nil {
			s.logger.Warn("skipping account: provider transaction fetch failed",
				"account_id", account.ID, "error", err)
			continue
		}

		for _, pt := range txs {
			exists, err := s.store.ExternalTransactionExists(ctx, pt.TransactionID)
			if err != nil {
				return nil, fmt.Errorf("checking transaction %s: %w", pt.TransactionID, err)
			}

			if exists {
				continue
			}

			kind, amount := transaction.KindForProviderAmount(pt.Amount)

			record := &ExternalTransaction{
				UserID:                userID,
				AccountID:             account.ID,
				ProviderTransactionID: pt.TransactionID,
				Name:                  pt.Name,
				Amount:                amount,
				Kind:                  kind,
				Category:              transaction.JoinCategories(pt.Categories),
				PaymentChannel:        pt.PaymentChannel,
				CurrencyCode:          pt.CurrencyCode,
				Pending:               pt.Pending,
				Date:                  transaction.NormalizeDate(pt.Date),
			}

			if err := s.store.CreateExternalTransaction(ctx, record); err != nil {
				return nil, fmt.Errorf("storing transaction %s: %w", pt.TransactionID, err)
			}

			imported++
		}
	}

	balance, err := s.ledger.Recompute(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("recomputing balance after sync: %w", err)
	}

	return &SyncResult{Imported: imported, Balance: balance}, nil
}

// RemoveConnection deletes a connection with its accounts and imported
// transactions, then rebuilds the balance without them.
func (s *Service) RemoveConnection(ctx context.Context, userID, connectionID uuid.UUID) error {
	conn, err := s.store.GetConnection(ctx, connectionID)
	if err != nil {
		return err
	}

	if conn.UserID != userID {
		return ErrNotFound
	}

	if err := s.store.DeleteConnection(ctx, connectionID); err != nil {
		return fmt.Errorf("deleting connection: %w", err)
	}

	if _, err := s.ledger.Recompute(ctx, userID); err != nil {
		return fmt.Errorf("recomputing balance after removal: %w", err)
	}

	return nil
}

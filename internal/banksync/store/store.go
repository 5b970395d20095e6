package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/avoronov/moneta/internal/banksync"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateConnection(ctx context.Context, c *banksync.Connection) error {
	query := `
		INSERT INTO bank_connections (user_id, access_token, item_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.UserID, c.AccessToken, c.ItemID).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bank connection: %w", err)
	}

	return nil
}

func (s *Store) GetConnection(ctx context.Context, id uuid.UUID) (*banksync.Connection, error) {
	query := `SELECT id, user_id, access_token, item_id, created_at FROM bank_connections WHERE id = $1`

	var c banksync.Connection

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.UserID, &c.AccessToken, &c.ItemID, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, banksync.ErrNotFound
		}

		return nil, fmt.Errorf("getting bank connection: %w", err)
	}

	return &c, nil
}

func (s *Store) ListConnections(ctx context.Context, userID uuid.UUID) ([]*banksync.Connection, error) {
	query := `
		SELECT id, user_id, access_token, item_id, created_at
		FROM bank_connections
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bank connections: %w", err)
	}
	defer rows.Close()

	var connections []*banksync.Connection

	for rows.Next() {
		var c banksync.Connection

		if err := rows.Scan(&c.ID, &c.UserID, &c.AccessToken, &c.ItemID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning bank connection: %w", err)
		}

		connections = append(connections, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank connection rows: %w", err)
	}

	return connections, nil
}

// DeleteConnection cascades to the connection's accounts and their
// imported transactions in one database transaction.
func (s *Store) DeleteConnection(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM external_transactions
		WHERE account_id IN (SELECT id FROM bank_accounts WHERE connection_id = $1)
	`, id)
	if err != nil {
		return fmt.Errorf("deleting external transactions: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bank_accounts WHERE connection_id = $1`, id); err != nil {
		return fmt.Errorf("deleting bank accounts: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM bank_connections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting bank connection: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return banksync.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateAccount(ctx context.Context, a *banksync.Account) error {
	query := `
		INSERT INTO bank_accounts (
			user_id, connection_id, provider_account_id, name, official_name,
			account_type, account_subtype, mask, current_balance,
			available_balance, currency_code, created_at
		)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, NULLIF($7, ''), NULLIF($8, ''), $9, $10, NULLIF($11, ''), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.UserID, a.ConnectionID, a.ProviderAccountID, a.Name, a.OfficialName,
		a.Type, a.Subtype, a.Mask, a.CurrentBalance, a.AvailableBalance, a.CurrencyCode,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bank account: %w", err)
	}

	return nil
}

func (s *Store) ListAccounts(ctx context.Context, userID uuid.UUID) ([]*banksync.Account, error) {
	query := `
		SELECT id, user_id, connection_id, provider_account_id, name, official_name,
			account_type, account_subtype, mask, current_balance,
			available_balance, currency_code, created_at
		FROM bank_accounts
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing bank accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*banksync.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bank account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bank account rows: %w", err)
	}

	return accounts, nil
}

func (s *Store) AccountExists(ctx context.Context, providerAccountID string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bank_accounts WHERE provider_account_id = $1)`,
		providerAccountID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking bank account existence: %w", err)
	}

	return exists, nil
}

func (s *Store) CreateExternalTransaction(ctx context.Context, t *banksync.ExternalTransaction) error {
	query := `
		INSERT INTO external_transactions (
			user_id, account_id, provider_transaction_id, kind, amount,
			category, description, payment_channel, currency_code, pending, date, created_at
		)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''), NULLIF($9, ''), $10, $11, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		t.UserID, t.AccountID, t.ProviderTransactionID, t.Kind, t.Amount,
		t.Category, t.Name, t.PaymentChannel, t.CurrencyCode, t.Pending, t.Date,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating external transaction: %w", err)
	}

	return nil
}

func (s *Store) ExternalTransactionExists(ctx context.Context, providerTransactionID string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM external_transactions WHERE provider_transaction_id = $1)`,
		providerTransactionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking external transaction existence: %w", err)
	}

	return exists, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*banksync.Account, error) {
	var a banksync.Account

	var officialName, subtype, mask, currency sql.NullString

	err := s.Scan(
		&a.ID, &a.UserID, &a.ConnectionID, &a.ProviderAccountID, &a.Name, &officialName,
		&a.Type, &subtype, &mask, &a.CurrentBalance, &a.AvailableBalance, &currency, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	a.OfficialName = officialName.String
	a.Subtype = subtype.String
	a.Mask = mask.String
	a.CurrencyCode = currency.String

	return &a, nil
}

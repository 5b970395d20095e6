package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanManual reads a manual transaction row.
// Expected column order: id, user_id, kind, amount, category, payment_method, description, date, created_at, updated_at
func scanManual(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var kindStr string

	var category, paymentMethod, description sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.UserID, &kindStr, &tx.Amount,
		&category, &paymentMethod, &description,
		&tx.Date, &tx.CreatedAt, &tx.UpdatedAt,
	); err != nil {
		return nil, err
	}

	tx.Kind = transaction.Kind(kindStr)
	tx.Source = transaction.SourceManual
	tx.Category = category.String
	tx.PaymentMethod = paymentMethod.String
	tx.Description = description.String
	tx.Date = transaction.NormalizeDate(tx.Date)

	return &tx, nil
}

const selectManualColumns = `
	t.id, t.user_id, t.kind, t.amount, t.category, t.payment_method, t.description,
	t.date, t.created_at, t.updated_at
`

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction, balanceDelta decimal.Decimal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO transactions (user_id, kind, amount, category, payment_method, description, date, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NOW())
		RETURNING id, created_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		tx.UserID,
		tx.Kind,
		tx.Amount,
		tx.Category,
		tx.PaymentMethod,
		tx.Description,
		tx.Date,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if err := applyBalanceDelta(ctx, dbTx, tx.UserID, balanceDelta); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectManualColumns + ` FROM transactions t WHERE t.id = $1`

	tx, err := scanManual(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction, balanceDelta decimal.Decimal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE transactions
		SET kind = $1, amount = $2, category = NULLIF($3, ''), payment_method = NULLIF($4, ''),
		    description = NULLIF($5, ''), date = $6, updated_at = NOW()
		WHERE id = $7
	`

	res, err := dbTx.ExecContext(ctx, query,
		tx.Kind,
		tx.Amount,
		tx.Category,
		tx.PaymentMethod,
		tx.Description,
		tx.Date,
		tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	if err := applyBalanceDelta(ctx, dbTx, tx.UserID, balanceDelta); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, tx *transaction.Transaction, balanceDelta decimal.Decimal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, tx.ID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	if err := applyBalanceDelta(ctx, dbTx, tx.UserID, balanceDelta); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// applyBalanceDelta moves the owner's cached balance inside the caller's
// database transaction. The read-modify-write happens in SQL, so two
// concurrent mutations against the same user cannot lose an update.
func applyBalanceDelta(ctx context.Context, dbTx *sql.Tx, userID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}

	if _, err := dbTx.ExecContext(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`, delta, userID,
	); err != nil {
		return fmt.Errorf("applying balance delta: %w", err)
	}

	return nil
}

func (s *Store) ListManual(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectManualColumns + ` FROM transactions t WHERE t.user_id = $1`

	args := []any{userID}
	argIdx := 2

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND t.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Since != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.Since)
		argIdx++
	}

	query += " ORDER BY t.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanManual(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

// ListExternal returns bank-synced transactions in the unified shape.
// Kind and category were already normalized once at sync time, so the
// rows map straight onto the unified view.
func (s *Store) ListExternal(ctx context.Context, userID uuid.UUID, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `
		SELECT e.id, e.user_id, e.kind, e.amount, e.category, e.description, e.date, e.created_at
		FROM external_transactions e
		WHERE e.user_id = $1`

	args := []any{userID}
	argIdx := 2

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND e.kind = $%d", argIdx)

		args = append(args, *filter.Kind)
		argIdx++
	}

	if filter.Since != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, *filter.Since)
		argIdx++
	}

	query += " ORDER BY e.date DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing external transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		var tx transaction.Transaction

		var kindStr string

		var category, description sql.NullString

		if err := rows.Scan(
			&tx.ID, &tx.UserID, &kindStr, &tx.Amount,
			&category, &description, &tx.Date, &tx.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning external transaction: %w", err)
		}

		tx.Kind = transaction.Kind(kindStr)
		tx.Source = transaction.SourceExternal
		tx.Category = category.String
		tx.Description = description.String
		tx.Date = transaction.NormalizeDate(tx.Date)

		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating external transaction rows: %w", err)
	}

	return txs, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avoronov/moneta/internal/user"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateUser(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (email, hashed_password, first_name, last_name, balance, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, NOW())
		RETURNING id, balance, created_at
	`

	err := s.db.QueryRowContext(ctx, query, u.Email, u.HashedPassword, u.FirstName, u.LastName, u.Balance).
		Scan(&u.ID, &u.Balance, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := `
		SELECT id, email, hashed_password, first_name, last_name, balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	query := `
		SELECT id, email, hashed_password, first_name, last_name, balance, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, user.ErrNotFound
		}

		return nil, fmt.Errorf("getting user by email: %w", err)
	}

	return u, nil
}

func (s *Store) UpdateProfile(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET first_name = NULLIF($1, ''), last_name = NULLIF($2, ''), updated_at = NOW()
		WHERE id = $3
	`

	res, err := s.db.ExecContext(ctx, query, u.FirstName, u.LastName, u.ID)
	if err != nil {
		return fmt.Errorf("updating user profile: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	query := `UPDATE users SET hashed_password = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, hashedPassword, id)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}

// DeleteUser removes the user together with all owned rows. Ordered
// child-first to satisfy foreign keys; one database transaction so a
// failure leaves the account intact.
func (s *Store) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	children := []string{
		`DELETE FROM external_transactions WHERE user_id = $1`,
		`DELETE FROM bank_accounts WHERE user_id = $1`,
		`DELETE FROM bank_connections WHERE user_id = $1`,
		`DELETE FROM transactions WHERE user_id = $1`,
		`DELETE FROM budgets WHERE user_id = $1`,
		`DELETE FROM categories WHERE user_id = $1`,
		`DELETE FROM payment_methods WHERE user_id = $1`,
	}

	for _, query := range children {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("deleting user data: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return tx.Commit()
}

// AddToBalance shifts the cached balance in a single statement so
// concurrent writers cannot lose each other's deltas.
func (s *Store) AddToBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) error {
	query := `UPDATE users SET balance = balance + $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, delta, userID)
	if err != nil {
		return fmt.Errorf("adding to balance: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}

func (s *Store) SetBalance(ctx context.Context, userID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE users SET balance = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, balance, userID)
	if err != nil {
		return fmt.Errorf("setting balance: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*user.User, error) {
	var u user.User

	var firstName, lastName sql.NullString

	err := s.Scan(&u.ID, &u.Email, &u.HashedPassword, &firstName, &lastName, &u.Balance, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.FirstName = firstName.String
	u.LastName = lastName.String

	return &u, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/avoronov/moneta/internal/paymentmethod"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreatePaymentMethod(ctx context.Context, m *paymentmethod.PaymentMethod) error {
	query := `
		INSERT INTO payment_methods (user_id, name, bank, card_type, last4, icon, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, m.UserID, m.Name, m.Bank, m.CardType, m.Last4, m.Icon).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating payment method: %w", err)
	}

	return nil
}

func (s *Store) GetPaymentMethod(ctx context.Context, id uuid.UUID) (*paymentmethod.PaymentMethod, error) {
	query := `
		SELECT id, user_id, name, bank, card_type, last4, icon, created_at
		FROM payment_methods
		WHERE id = $1
	`

	m, err := scanPaymentMethod(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, paymentmethod.ErrNotFound
		}

		return nil, fmt.Errorf("getting payment method: %w", err)
	}

	return m, nil
}

func (s *Store) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*paymentmethod.PaymentMethod, error) {
	query := `
		SELECT id, user_id, name, bank, card_type, last4, icon, created_at
		FROM payment_methods
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}
	defer rows.Close()

	var methods []*paymentmethod.PaymentMethod

	for rows.Next() {
		m, err := scanPaymentMethod(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment method: %w", err)
		}

		methods = append(methods, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payment method rows: %w", err)
	}

	return methods, nil
}

func (s *Store) UpdatePaymentMethod(ctx context.Context, m *paymentmethod.PaymentMethod) error {
	query := `
		UPDATE payment_methods
		SET name = $1, bank = NULLIF($2, ''), card_type = NULLIF($3, ''), icon = NULLIF($4, '')
		WHERE id = $5
	`

	res, err := s.db.ExecContext(ctx, query, m.Name, m.Bank, m.CardType, m.Icon, m.ID)
	if err != nil {
		return fmt.Errorf("updating payment method: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return paymentmethod.ErrNotFound
	}

	return nil
}

func (s *Store) DeletePaymentMethod(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM payment_methods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting payment method: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return paymentmethod.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPaymentMethod(s scanner) (*paymentmethod.PaymentMethod, error) {
	var m paymentmethod.PaymentMethod

	var bank, cardType, last4, icon sql.NullString

	if err := s.Scan(&m.ID, &m.UserID, &m.Name, &bank, &cardType, &last4, &icon, &m.CreatedAt); err != nil {
		return nil, err
	}

	m.Bank = bank.String
	m.CardType = cardType.String
	m.Last4 = last4.String
	m.Icon = icon.String

	return &m, nil
}

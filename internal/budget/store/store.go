package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/avoronov/moneta/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category, limit_amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, b.UserID, b.Category, b.Limit).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT id, user_id, category, limit_amount, created_at FROM budgets WHERE id = $1`

	var b budget.Budget

	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return &b, nil
}

func (s *Store) ListBudgets(ctx context.Context, userID uuid.UUID) ([]*budget.Budget, error) {
	query := `
		SELECT id, user_id, category, limit_amount, created_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		var b budget.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.Limit, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `UPDATE budgets SET category = $1, limit_amount = $2 WHERE id = $3`

	res, err := s.db.ExecContext(ctx, query, b.Category, b.Limit, b.ID)
	if err != nil {
		return fmt.Errorf("updating budget: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

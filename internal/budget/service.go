package budget

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	CreateBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	// ListBudgets returns the user's budgets ordered by creation time
	// ascending, so "last created wins" dedup policies are stable.
	ListBudgets(ctx context.Context, userID uuid.UUID) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   uuid.UUID
	Category string
	Limit    decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Budget, error) {
	if params.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	if params.Limit.IsNegative() {
		return nil, fmt.Errorf("limit must not be negative")
	}

	b := &Budget{
		UserID:   params.UserID,
		Category: params.Category,
		Limit:    params.Limit,
	}

	if err := s.repo.CreateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListBudgets(ctx, userID)
}

func (s *Service) UpdateLimit(ctx context.Context, id, userID uuid.UUID, limit decimal.Decimal) (*Budget, error) {
	if limit.IsNegative() {
		return nil, fmt.Errorf("limit must not be negative")
	}

	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.UserID != userID {
		return nil, ErrNotFound
	}

	b.Limit = limit

	if err := s.repo.UpdateBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return err
	}

	if b.UserID != userID {
		return ErrNotFound
	}

	return s.repo.DeleteBudget(ctx, id)
}

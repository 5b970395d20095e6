package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	// ListCategories returns global defaults plus the user's own.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, name, icon string) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	c := &Category{
		UserID:    &userID,
		Name:      name,
		Icon:      icon,
		IsDefault: false,
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

// Delete removes one of the user's own categories. Global defaults and
// other users' categories are off limits.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return err
	}

	if c.UserID == nil || *c.UserID != userID {
		return ErrForbidden
	}

	return s.repo.DeleteCategory(ctx, id)
}

package paymentmethod

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	CreatePaymentMethod(ctx context.Context, m *PaymentMethod) error
	GetPaymentMethod(ctx context.Context, id uuid.UUID) (*PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]*PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, m *PaymentMethod) error
	DeletePaymentMethod(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   uuid.UUID
	Name     string
	Bank     string
	CardType string
	Last4    string
	Icon     string
}

type UpdateParams struct {
	Name     *string
	Bank     *string
	CardType *string
	Icon     *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*PaymentMethod, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	m := &PaymentMethod{
		UserID:   params.UserID,
		Name:     params.Name,
		Bank:     params.Bank,
		CardType: params.CardType,
		Last4:    params.Last4,
		Icon:     params.Icon,
	}

	if err := s.repo.CreatePaymentMethod(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*PaymentMethod, error) {
	return s.repo.ListPaymentMethods(ctx, userID)
}

// Get hides other users' methods behind ErrNotFound rather than
// admitting they exist.
func (s *Service) Get(ctx context.Context, id, userID uuid.UUID) (*PaymentMethod, error) {
	m, err := s.repo.GetPaymentMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.UserID != userID {
		return nil, ErrNotFound
	}

	return m, nil
}

func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, params UpdateParams) (*PaymentMethod, error) {
	m, err := s.repo.GetPaymentMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	if m.UserID != userID {
		return nil, ErrForbidden
	}

	if params.Name != nil {
		m.Name = *params.Name
	}

	if params.Bank != nil {
		m.Bank = *params.Bank
	}

	if params.CardType != nil {
		m.CardType = *params.CardType
	}

	if params.Icon != nil {
		m.Icon = *params.Icon
	}

	if err := s.repo.UpdatePaymentMethod(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	m, err := s.repo.GetPaymentMethod(ctx, id)
	if err != nil {
		return err
	}

	if m.UserID != userID {
		return ErrForbidden
	}

	return s.repo.DeletePaymentMethod(ctx, id)
}

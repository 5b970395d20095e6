package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=user

type Repository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateProfile(ctx context.Context, u *User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error

	// DeleteUser removes the user and everything they own in one
	// database transaction.
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string

	// InitialBalance seeds the cached balance for users who start
	// tracking mid-stream; it is not backed by any transaction record.
	InitialBalance decimal.Decimal
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	if params.Email == "" || params.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	if _, err := s.repo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	if params.InitialBalance.IsNegative() {
		return nil, fmt.Errorf("initial balance must not be negative")
	}

	u := &User{
		Email:          params.Email,
		HashedPassword: string(hash),
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		Balance:        params.InitialBalance,
	}

	if err := s.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

// Authenticate returns ErrBadCredential for both unknown emails and
// wrong passwords so callers cannot probe which accounts exist.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrBadCredential
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)); err != nil {
		return nil, ErrBadCredential
	}

	return u, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetUser(ctx, id)
}

type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, params UpdateProfileParams) (*User, error) {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.FirstName != nil {
		u.FirstName = *params.FirstName
	}

	if params.LastName != nil {
		u.LastName = *params.LastName
	}

	if err := s.repo.UpdateProfile(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *Service) ChangePassword(ctx context.Context, id uuid.UUID, current, next string) error {
	u, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(current)); err != nil {
		return ErrBadCredential
	}

	if next == "" {
		return fmt.Errorf("new password is required")
	}

	if next == current {
		return fmt.Errorf("new password must differ from the current one")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// Delete removes the account and all data owned by it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteUser(ctx, id)
}

package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestServiceRegister(t *testing.T) {
	tests := []struct {
		name      string
		params    RegisterParams
		setupMock func(m *MockRepository)
		wantErr   error
	}{
		{
			name: "creates user with hashed password",
			params: RegisterParams{
				Email:     "ana@example.com",
				Password:  "hunter2hunter2",
				FirstName: "Ana",
			},
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(nil, ErrNotFound)

				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *User) error {
						assert.Equal(t, "ana@example.com", u.Email)
						assert.NotEqual(t, "hunter2hunter2", u.HashedPassword)
						assert.NoError(t, bcrypt.CompareHashAndPassword(
							[]byte(u.HashedPassword), []byte("hunter2hunter2")))
						return nil
					})
			},
		},
		{
			name: "seeds initial balance",
			params: RegisterParams{
				Email:          "ana@example.com",
				Password:       "hunter2hunter2",
				InitialBalance: decimal.NewFromInt(250),
			},
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(nil, ErrNotFound)

				m.EXPECT().
					CreateUser(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *User) error {
						assert.True(t, u.Balance.Equal(decimal.NewFromInt(250)))
						return nil
					})
			},
		},
		{
			name: "rejects negative initial balance",
			params: RegisterParams{
				Email:          "ana@example.com",
				Password:       "hunter2hunter2",
				InitialBalance: decimal.NewFromInt(-10),
			},
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(nil, ErrNotFound)
			},
			wantErr: errors.New("initial balance must not be negative"),
		},
		{
			name: "rejects taken email",
			params: RegisterParams{
				Email:    "ana@example.com",
				Password: "hunter2hunter2",
			},
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(&User{Email: "ana@example.com"}, nil)
			},
			wantErr: ErrEmailTaken,
		},
		{
			name:      "rejects empty password",
			params:    RegisterParams{Email: "ana@example.com"},
			setupMock: func(m *MockRepository) {},
			wantErr:   errors.New("email and password are required"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := NewService(repo)

			u, err := svc.Register(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Email, u.Email)
		})
	}
}

func TestServiceAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &User{
		ID:             uuid.New(),
		Email:          "ana@example.com",
		HashedPassword: string(hash),
	}

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(m *MockRepository)
		wantErr   error
	}{
		{
			name:     "accepts matching password",
			email:    "ana@example.com",
			password: "correct-horse",
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(stored, nil)
			},
		},
		{
			name:     "rejects wrong password",
			email:    "ana@example.com",
			password: "battery-staple",
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ana@example.com").
					Return(stored, nil)
			},
			wantErr: ErrBadCredential,
		},
		{
			name:     "masks unknown email as bad credential",
			email:    "ghost@example.com",
			password: "correct-horse",
			setupMock: func(m *MockRepository) {
				m.EXPECT().
					GetUserByEmail(gomock.Any(), "ghost@example.com").
					Return(nil, ErrNotFound)
			},
			wantErr: ErrBadCredential,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := NewService(repo)

			u, err := svc.Authenticate(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID, u.ID)
		})
	}
}

func TestServiceChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	userID := uuid.New()
	stored := &User{ID: userID, HashedPassword: string(hash)}

	t.Run("rejects wrong current password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)

		repo.EXPECT().GetUser(gomock.Any(), userID).Return(stored, nil)

		svc := NewService(repo)

		err := svc.ChangePassword(context.Background(), userID, "not-it", "new-pass")
		require.ErrorIs(t, err, ErrBadCredential)
	})

	t.Run("stores new hash", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)

		repo.EXPECT().GetUser(gomock.Any(), userID).Return(stored, nil)
		repo.EXPECT().
			UpdatePassword(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, hashed string) error {
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("new-pass")))
				return nil
			})

		svc := NewService(repo)

		err := svc.ChangePassword(context.Background(), userID, "old-pass", "new-pass")
		require.NoError(t, err)
	})

	t.Run("rejects unchanged password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := NewMockRepository(ctrl)

		repo.EXPECT().GetUser(gomock.Any(), userID).Return(stored, nil)

		svc := NewService(repo)

		err := svc.ChangePassword(context.Background(), userID, "old-pass", "old-pass")
		require.EqualError(t, err, "new password must differ from the current one")
	})
}

func TestServiceDelete(t *testing.T) {
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	repo := NewMockRepository(ctrl)

	repo.EXPECT().DeleteUser(gomock.Any(), userID).Return(nil)

	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), userID))
}

package budget_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoronov/moneta/internal/budget"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    budget.CreateParams
		setupMock func(m *budget.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			params: budget.CreateParams{
				UserID:   uuid.New(),
				Category: "food",
				Limit:    decimal.RequireFromString("500"),
			},
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					CreateBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						b.ID = uuid.New()
						b.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name:    "MissingCategory",
			params:  budget.CreateParams{UserID: uuid.New(), Limit: decimal.RequireFromString("500")},
			wantErr: true,
		},
		{
			name: "NegativeLimit",
			params: budget.CreateParams{
				UserID:   uuid.New(),
				Category: "food",
				Limit:    decimal.RequireFromString("-1"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Delete_OwnershipMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &budget.Budget{ID: id, UserID: uuid.New(), Category: "food"}

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().GetBudget(gomock.Any(), id).Return(existing, nil)

	svc := budget.NewService(repo)

	err := svc.Delete(context.Background(), id, uuid.New())
	assert.ErrorIs(t, err, budget.ErrNotFound)
}

func TestService_UpdateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	id := uuid.New()
	existing := &budget.Budget{ID: id, UserID: userID, Category: "food", Limit: decimal.RequireFromString("100")}

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().GetBudget(gomock.Any(), id).Return(existing, nil)
	repo.EXPECT().UpdateBudget(gomock.Any(), existing).Return(nil)

	svc := budget.NewService(repo)

	got, err := svc.UpdateLimit(context.Background(), id, userID, decimal.RequireFromString("250"))
	require.NoError(t, err)
	assert.True(t, got.Limit.Equal(decimal.RequireFromString("250")))
}

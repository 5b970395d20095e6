package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/avoronov/moneta/internal/transaction"
)

func TestService_Create(t *testing.T) {
	userID := uuid.New()

	type testCase struct {
		name      string
		params    transaction.CreateParams
		setupMock func(m *transaction.MockRepository)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "ExpenseAppliesNegativeDelta",
			params: transaction.CreateParams{
				UserID:   userID,
				Amount:   decimal.RequireFromString("25.40"),
				Kind:     transaction.KindExpense,
				Category: "food",
				Date:     time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction, delta decimal.Decimal) error {
						assert.True(t, delta.Equal(decimal.RequireFromString("-25.40")))
						assert.Equal(t, transaction.SourceManual, tx.Source)
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "IncomeAppliesPositiveDelta",
			params: transaction.CreateParams{
				UserID: userID,
				Amount: decimal.RequireFromString("1500"),
				Kind:   transaction.KindIncome,
				Date:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction, delta decimal.Decimal) error {
						assert.True(t, delta.Equal(decimal.RequireFromString("1500")))
						tx.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "InvalidKind",
			params: transaction.CreateParams{
				UserID: userID,
				Amount: decimal.RequireFromString("10"),
				Kind:   transaction.Kind("transfer"),
			},
			wantErr: true,
		},
		{
			name: "NegativeAmount",
			params: transaction.CreateParams{
				UserID: userID,
				Amount: decimal.RequireFromString("-10"),
				Kind:   transaction.KindExpense,
			},
			wantErr: true,
		},
		{
			name: "RepoError",
			params: transaction.CreateParams{
				UserID: userID,
				Amount: decimal.RequireFromString("10"),
				Kind:   transaction.KindExpense,
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Update_CombinedDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	txID := uuid.New()

	existing := &transaction.Transaction{
		ID:     txID,
		UserID: userID,
		Amount: decimal.RequireFromString("30"),
		Kind:   transaction.KindExpense,
		Source: transaction.SourceManual,
		Date:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(existing, nil)
	repo.EXPECT().
		UpdateTransaction(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction, delta decimal.Decimal) error {
			// old signed -30, new signed +100: one combined delta of +130,
			// never two sequential writes.
			assert.True(t, delta.Equal(decimal.RequireFromString("130")), "got delta %s", delta)
			assert.Equal(t, transaction.KindIncome, tx.Kind)
			return nil
		})

	svc := transaction.NewService(repo)

	got, err := svc.Update(context.Background(), txID, userID, transaction.UpdateParams{
		Amount: decimal.RequireFromString("100"),
		Kind:   transaction.KindIncome,
	})
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("100")))
}

func TestService_Update_OwnershipMismatchIsNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txID := uuid.New()
	existing := &transaction.Transaction{
		ID:     txID,
		UserID: uuid.New(),
		Amount: decimal.RequireFromString("30"),
		Kind:   transaction.KindExpense,
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(existing, nil)

	svc := transaction.NewService(repo)

	_, err := svc.Update(context.Background(), txID, uuid.New(), transaction.UpdateParams{
		Amount: decimal.RequireFromString("10"),
		Kind:   transaction.KindExpense,
	})
	assert.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestService_Get_OwnershipMismatchIsForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txID := uuid.New()
	existing := &transaction.Transaction{ID: txID, UserID: uuid.New()}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(existing, nil)

	svc := transaction.NewService(repo)

	_, err := svc.Get(context.Background(), txID, uuid.New())
	assert.ErrorIs(t, err, transaction.ErrForbidden)
}

func TestService_Delete_ReversesDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	txID := uuid.New()

	existing := &transaction.Transaction{
		ID:     txID,
		UserID: userID,
		Amount: decimal.RequireFromString("45.10"),
		Kind:   transaction.KindIncome,
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().GetTransaction(gomock.Any(), txID).Return(existing, nil)
	repo.EXPECT().
		DeleteTransaction(gomock.Any(), existing, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *transaction.Transaction, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(decimal.RequireFromString("-45.10")))
			return nil
		})

	svc := transaction.NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), txID, userID))
}

func TestService_FetchUnified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	day := func(d int) time.Time {
		return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC)
	}

	manual := []*transaction.Transaction{
		{ID: uuid.New(), UserID: userID, Source: transaction.SourceManual, Date: day(3)},
		{ID: uuid.New(), UserID: userID, Source: transaction.SourceManual, Date: day(1)},
	}
	external := []*transaction.Transaction{
		{ID: uuid.New(), UserID: userID, Source: transaction.SourceExternal, Date: day(5)},
		{ID: uuid.New(), UserID: userID, Source: transaction.SourceExternal, Date: day(2)},
	}

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListManual(gomock.Any(), userID, transaction.ListFilter{}).Return(manual, nil)
	repo.EXPECT().ListExternal(gomock.Any(), userID, transaction.ListFilter{}).Return(external, nil)

	svc := transaction.NewService(repo)

	got, err := svc.FetchUnified(context.Background(), userID, transaction.ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Newest first, regardless of source.
	assert.Equal(t, day(5), got[0].Date)
	assert.Equal(t, day(3), got[1].Date)
	assert.Equal(t, day(2), got[2].Date)
	assert.Equal(t, day(1), got[3].Date)
}

func TestService_FetchUnified_ExternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	repo := transaction.NewMockRepository(ctrl)
	repo.EXPECT().ListManual(gomock.Any(), userID, gomock.Any()).Return(nil, nil)
	repo.EXPECT().ListExternal(gomock.Any(), userID, gomock.Any()).Return(nil, errors.New("store down"))

	svc := transaction.NewService(repo)

	_, err := svc.FetchUnified(context.Background(), userID, transaction.ListFilter{})
	assert.Error(t, err)
}

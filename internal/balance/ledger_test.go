package balance_test

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

	"github.com/avoronov/moneta/internal/balance"
	"github.com/avoronov/moneta/internal/transaction"
)

func TestLedger_ApplyDelta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	users := balance.NewMockUserStore(ctrl)
	users.EXPECT().
		AddToBalance(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(decimal.RequireFromString("-12.30")))
			return nil
		})

	ledger := balance.NewLedger(users, balance.NewMockTransactionFetcher(ctrl))

	require.NoError(t, ledger.ApplyDelta(context.Background(), userID, decimal.RequireFromString("-12.30")))
}

func TestLedger_ApplyDelta_ZeroIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// No AddToBalance expectation: a zero delta must not touch the store.
	ledger := balance.NewLedger(balance.NewMockUserStore(ctrl), balance.NewMockTransactionFetcher(ctrl))

	require.NoError(t, ledger.ApplyDelta(context.Background(), uuid.New(), decimal.Zero))
}

func TestLedger_ApplyDelta_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := balance.NewMockUserStore(ctrl)
	users.EXPECT().
		AddToBalance(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("write failed"))

	ledger := balance.NewLedger(users, balance.NewMockTransactionFetcher(ctrl))

	err := ledger.ApplyDelta(context.Background(), uuid.New(), decimal.RequireFromString("5"))
	assert.Error(t, err)
}

func TestLedger_ReverseAndReapply_SingleCombinedWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	users := balance.NewMockUserStore(ctrl)
	// Exactly one write with the netted delta: -(-30) + 100 = 130.
	users.EXPECT().
		AddToBalance(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(decimal.RequireFromString("130")), "got %s", delta)
			return nil
		}).
		Times(1)

	ledger := balance.NewLedger(users, balance.NewMockTransactionFetcher(ctrl))

	err := ledger.ReverseAndReapply(context.Background(), userID,
		decimal.RequireFromString("-30"), decimal.RequireFromString("100"))
	require.NoError(t, err)
}

func TestLedger_Recompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	txs := []*transaction.Transaction{
		{Kind: transaction.KindIncome, Amount: decimal.RequireFromString("2000"), Source: transaction.SourceManual, Date: date},
		{Kind: transaction.KindExpense, Amount: decimal.RequireFromString("350.25"), Source: transaction.SourceManual, Date: date},
		{Kind: transaction.KindExpense, Amount: decimal.RequireFromString("49.75"), Source: transaction.SourceExternal, Date: date},
		{Kind: transaction.KindIncome, Amount: decimal.RequireFromString("100"), Source: transaction.SourceExternal, Date: date},
	}

	fetcher := balance.NewMockTransactionFetcher(ctrl)
	fetcher.EXPECT().
		FetchUnified(gomock.Any(), userID, transaction.ListFilter{}).
		Return(txs, nil)

	users := balance.NewMockUserStore(ctrl)
	users.EXPECT().
		SetBalance(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, b decimal.Decimal) error {
			assert.True(t, b.Equal(decimal.RequireFromString("1700")), "got %s", b)
			return nil
		})

	ledger := balance.NewLedger(users, fetcher)

	got, err := ledger.Recompute(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("1700")))
}

func TestLedger_Recompute_EmptyHistoryIsZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	userID := uuid.New()

	fetcher := balance.NewMockTransactionFetcher(ctrl)
	fetcher.EXPECT().
		FetchUnified(gomock.Any(), userID, transaction.ListFilter{}).
		Return(nil, nil)

	users := balance.NewMockUserStore(ctrl)
	users.EXPECT().SetBalance(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, b decimal.Decimal) error {
			assert.True(t, b.IsZero())
			return nil
		})

	ledger := balance.NewLedger(users, fetcher)

	got, err := ledger.Recompute(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestLedger_Recompute_FetchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	fetcher := balance.NewMockTransactionFetcher(ctrl)
	fetcher.EXPECT().
		FetchUnified(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("store down"))

	ledger := balance.NewLedger(balance.NewMockUserStore(ctrl), fetcher)

	_, err := ledger.Recompute(context.Background(), uuid.New())
	assert.Error(t, err)
}

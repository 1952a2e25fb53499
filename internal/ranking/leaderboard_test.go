package ranking

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/points-ledger/internal/domain/account"
	"github.com/points-ledger/internal/ledger"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acc *account.Account) error {
	args := m.Called(ctx, acc)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByProfileID(ctx context.Context, profileID int64) (*account.Account, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyDelta(ctx context.Context, profileID int64, delta int64) (*account.Account, error) {
	args := m.Called(ctx, profileID, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) LockForUpdate(ctx context.Context, profileID int64) (*account.Account, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByBalanceDesc(ctx context.Context, limit int) ([]*account.Account, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return m
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("dense ranks with ties", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		svc := NewService(accounts, testLogger())

		accounts.On("ListByBalanceDesc", mock.Anything, 10).Return([]*account.Account{
			{ProfileID: 4, Balance: 500},
			{ProfileID: 7, Balance: 500},
			{ProfileID: 2, Balance: 300},
			{ProfileID: 9, Balance: 100},
		}, nil).Once()

		ranked, err := svc.Leaderboard(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []RankedAccount{
			{ProfileID: 4, Balance: 500, Rank: 1},
			{ProfileID: 7, Balance: 500, Rank: 1},
			{ProfileID: 2, Balance: 300, Rank: 2},
			{ProfileID: 9, Balance: 100, Rank: 3},
		}, ranked)
		accounts.AssertExpectations(t)
	})

	t.Run("all balances equal", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		svc := NewService(accounts, testLogger())

		accounts.On("ListByBalanceDesc", mock.Anything, 3).Return([]*account.Account{
			{ProfileID: 1, Balance: 250},
			{ProfileID: 2, Balance: 250},
			{ProfileID: 3, Balance: 250},
		}, nil).Once()

		ranked, err := svc.Leaderboard(ctx, 3)
		require.NoError(t, err)
		for _, row := range ranked {
			assert.Equal(t, 1, row.Rank)
		}
	})

	t.Run("empty account set", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		svc := NewService(accounts, testLogger())

		accounts.On("ListByBalanceDesc", mock.Anything, 10).
			Return([]*account.Account{}, nil).Once()

		ranked, err := svc.Leaderboard(ctx, 10)
		require.NoError(t, err)
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})

	t.Run("limit out of range", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		svc := NewService(accounts, testLogger())

		for _, limit := range []int{0, -1, 101} {
			ranked, err := svc.Leaderboard(ctx, limit)
			assert.Nil(t, ranked)
			require.Error(t, err)
			assert.True(t, ledger.IsKind(err, ledger.KindInvalidRequest))
		}
		accounts.AssertNotCalled(t, "ListByBalanceDesc", mock.Anything, mock.Anything)
	})

	t.Run("store error", func(t *testing.T) {
		accounts := new(MockAccountRepository)
		svc := NewService(accounts, testLogger())

		accounts.On("ListByBalanceDesc", mock.Anything, 10).
			Return(nil, errors.New("connection reset")).Once()

		ranked, err := svc.Leaderboard(ctx, 10)
		assert.Nil(t, ranked)
		require.Error(t, err)
		assert.True(t, ledger.IsKind(err, ledger.KindInternal))
	})
}

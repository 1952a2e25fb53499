package mongo

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/domain/transfer"
)

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Create(ctx context.Context, entry *archive.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockArchiveRepository) GetByTransferID(ctx context.Context, transferID int64) (*archive.Entry, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*archive.Entry), args.Error(1)
}

func (m *MockArchiveRepository) GetByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*archive.Entry, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*archive.Entry), args.Error(1)
}

func (m *MockArchiveRepository) CountByAccountID(ctx context.Context, accountID int64) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func TestNewArchiveRepository(t *testing.T) {
	db := &mongo.Database{}
	logger := slog.Default()

	repo := NewArchiveRepository(logger, db)

	assert.NotNil(t, repo)
	assert.IsType(t, &ArchiveRepository{}, repo)
}

func TestArchiveRepository_Create(t *testing.T) {
	entry := &archive.Entry{
		TransferID:    42,
		SenderID:      2,
		RecipientID:   3,
		Amount:        500,
		Status:        transfer.StatusCompleted,
		CorrelationID: "corr1",
		CreatedAt:     time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func(repo *MockArchiveRepository)
		expectedError error
	}{
		{
			name: "successful creation",
			setupMocks: func(repo *MockArchiveRepository) {
				repo.On("Create", mock.Anything, entry).Return(nil)
			},
			expectedError: nil,
		},
		{
			name: "duplicate entry",
			setupMocks: func(repo *MockArchiveRepository) {
				repo.On("Create", mock.Anything, entry).Return(archive.ErrDuplicateEntry{TransferID: 42})
			},
			expectedError: archive.ErrDuplicateEntry{TransferID: 42},
		},
		{
			name: "database error",
			setupMocks: func(repo *MockArchiveRepository) {
				repo.On("Create", mock.Anything, entry).Return(errors.New("db error"))
			},
			expectedError: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockArchiveRepository{}
			tt.setupMocks(mockRepo)

			err := mockRepo.Create(context.Background(), entry)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestArchiveRepository_GetByTransferID(t *testing.T) {
	entry := &archive.Entry{
		TransferID:  42,
		SenderID:    2,
		RecipientID: 3,
		Amount:      500,
		Status:      transfer.StatusCompleted,
		CreatedAt:   time.Now(),
	}

	tests := []struct {
		name          string
		setupMocks    func(repo *MockArchiveRepository)
		expectedEntry *archive.Entry
		expectedError error
	}{
		{
			name: "entry found",
			setupMocks: func(repo *MockArchiveRepository) {
				repo.On("GetByTransferID", mock.Anything, int64(42)).Return(entry, nil)
			},
			expectedEntry: entry,
		},
		{
			name: "entry not found",
			setupMocks: func(repo *MockArchiveRepository) {
				repo.On("GetByTransferID", mock.Anything, int64(42)).Return(nil, archive.ErrEntryNotFound{TransferID: 42})
			},
			expectedError: archive.ErrEntryNotFound{TransferID: 42},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockArchiveRepository{}
			tt.setupMocks(mockRepo)

			result, err := mockRepo.GetByTransferID(context.Background(), 42)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedEntry, result)
			}
		})
	}
}

func TestArchiveRepository_GetByAccountID(t *testing.T) {
	entries := []*archive.Entry{
		{TransferID: 2, SenderID: 7, RecipientID: 3, Amount: 200, Status: transfer.StatusCompleted},
		{TransferID: 1, SenderID: 4, RecipientID: 7, Amount: 500, Status: transfer.StatusFailed, FailureReason: transfer.FailureReasonInsufficientFunds},
	}

	mockRepo := &MockArchiveRepository{}
	mockRepo.On("GetByAccountID", mock.Anything, int64(7), 10, 0).Return(entries, nil)
	mockRepo.On("CountByAccountID", mock.Anything, int64(7)).Return(int64(2), nil)

	result, err := mockRepo.GetByAccountID(context.Background(), 7, 10, 0)
	assert.NoError(t, err)
	assert.Len(t, result, 2)

	total, err := mockRepo.CountByAccountID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)

	mockRepo.AssertExpectations(t)
}

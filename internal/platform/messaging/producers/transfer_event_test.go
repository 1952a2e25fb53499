package producers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/domain/transfer"
)

// MockKafkaWriter is shared across package test files
type MockKafkaWriter struct {
	mock.Mock
}

func (m *MockKafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockKafkaWriter) Close() error {
	args := m.Called()
	return args.Error(0)
}

func TestTransferEventProducer_Publish(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()
	topic := "test-transfer-events"

	t.Run("SuccessfulPublish", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransferEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		entry := archive.NewEntry(&transfer.Record{
			ID:          42,
			SenderID:    2,
			RecipientID: 3,
			Amount:      500,
			Status:      transfer.StatusCompleted,
		}, "corr1")

		mockWriter.On("WriteMessages", ctx, mock.MatchedBy(func(msgs []kafka.Message) bool {
			if len(msgs) != 1 {
				return false
			}
			msg := msgs[0]
			if string(msg.Key) != "42" {
				return false
			}
			var decoded archive.Entry
			if err := json.Unmarshal(msg.Value, &decoded); err != nil {
				return false
			}
			return decoded.TransferID == 42 && decoded.Status == transfer.StatusCompleted
		})).Return(nil).Once()

		err := producer.Publish(ctx, "42", entry)
		require.NoError(t, err)
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransferEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		writerError := errors.New("kafka write error")
		mockWriter.On("WriteMessages", ctx, mock.AnythingOfType("[]kafka.Message")).Return(writerError).Once()

		err := producer.Publish(ctx, "42", map[string]string{"k": "v"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, writerError) || strings.Contains(err.Error(), writerError.Error()))
		mockWriter.AssertExpectations(t)
	})

	t.Run("PublishReturnsErrorOnUnmarshalableValue", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransferEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  topic,
		}

		err := producer.Publish(ctx, "42", make(chan int))
		require.Error(t, err)
		mockWriter.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	})
}

func TestTransferEventProducer_Close(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	t.Run("SuccessfulClose", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransferEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  "test-transfer-events",
		}
		mockWriter.On("Close").Return(nil).Once()
		require.NoError(t, producer.Close())
		mockWriter.AssertExpectations(t)
	})

	t.Run("CloseReturnsErrorOnWriterError", func(t *testing.T) {
		mockWriter := new(MockKafkaWriter)
		producer := &TransferEventProducer{
			logger: logger,
			writer: mockWriter,
			topic:  "test-transfer-events",
		}
		closeError := errors.New("kafka close error")
		mockWriter.On("Close").Return(closeError).Once()
		err := producer.Close()
		require.Error(t, err)
		assert.Contains(t, err.Error(), closeError.Error())
	})
}

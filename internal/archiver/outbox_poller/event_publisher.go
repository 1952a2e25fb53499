package outbox_poller

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/points-ledger/internal/domain/outbox"
	"github.com/points-ledger/internal/metrics"
	"github.com/points-ledger/internal/platform/messaging/producers"
)

// EventPublisher pushes one outbox message onto the transfer event stream
type EventPublisher interface {
	PublishEvent(ctx context.Context, message *outbox.Message) error
}

// EventPublisherImpl implements EventPublisher on top of the Kafka producer
type EventPublisherImpl struct {
	outboxRepo outbox.Repository
	producer   producers.MessagePublisher
	logger     *slog.Logger
}

// NewEventPublisher creates a new publisher
func NewEventPublisher(
	outboxRepo outbox.Repository,
	producer producers.MessagePublisher,
	logger *slog.Logger,
) EventPublisher {
	return &EventPublisherImpl{
		outboxRepo: outboxRepo,
		producer:   producer,
		logger:     logger,
	}
}

// PublishEvent publishes the message payload to the transfer event topic and
// marks the outbox row PROCESSED. Rows whose payload cannot be decoded are
// marked FAILED_TO_PUBLISH immediately since retrying cannot fix them.
func (p *EventPublisherImpl) PublishEvent(ctx context.Context, message *outbox.Message) error {
	entry, err := message.Entry()
	if err != nil {
		p.logger.Error("Failed to unmarshal archive entry from outbox payload",
			"outbox_id", message.ID, "transfer_id", message.TransferID, "error", err,
		)
		if updateErr := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusFailedToPublish); updateErr != nil {
			p.logger.Error("Also failed to update outbox status to FAILED_TO_PUBLISH after unmarshal error", "outbox_id", message.ID, "update_error", updateErr)
		}
		return fmt.Errorf("unmarshal payload for outbox %d failed: %w", message.ID, err)
	}

	logger := p.logger
	if entry.CorrelationID != "" {
		logger = p.logger.With("correlation_id", entry.CorrelationID)
	}

	key := strconv.FormatInt(message.TransferID, 10)
	if err := p.producer.Publish(ctx, key, entry); err != nil {
		logger.Error("Failed to publish outbox message to transfer event stream",
			"outbox_id", message.ID, "transfer_id", message.TransferID, "error", err,
		)
		return fmt.Errorf("failed to publish outbox %d: %w", message.ID, err)
	}

	if err := p.outboxRepo.UpdateStatus(ctx, message.ID, outbox.StatusProcessed); err != nil {
		logger.Error("Failed to update outbox message status to PROCESSED",
			"outbox_id", message.ID, "transfer_id", message.TransferID, "error", err,
		)
		return fmt.Errorf("event for transfer %d published, but failed to mark outbox %d as PROCESSED: %w", message.TransferID, message.ID, err)
	}

	metrics.OutboxPublishedTotal.Inc()
	logger.Info("Outbox message published and marked as PROCESSED", "outbox_id", message.ID, "transfer_id", message.TransferID)
	return nil
}

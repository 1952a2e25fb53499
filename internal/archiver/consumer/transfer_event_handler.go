// Package consumer adapts Kafka transfer events into archive writes.
package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/points-ledger/internal/archiver/service"
	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/platform/messaging/producers"
)

// TransferEventHandler handles incoming transfer event messages from Kafka
type TransferEventHandler struct {
	archivingService service.ArchivingService
	producer         producers.DeadLetterPublisher
	logger           *slog.Logger
}

// NewTransferEventHandler creates a new handler
func NewTransferEventHandler(
	logger *slog.Logger,
	archivingService service.ArchivingService,
	producer producers.DeadLetterPublisher,
) *TransferEventHandler {
	return &TransferEventHandler{
		archivingService: archivingService,
		producer:         producer,
		logger:           logger,
	}
}

// HandleMessage processes Kafka messages. Messages that cannot be decoded go
// to the DLQ so the partition keeps draining; archive failures stay
// uncommitted for redelivery.
func (h *TransferEventHandler) HandleMessage(ctx context.Context, key []byte, value []byte) error {
	var entry archive.Entry
	if err := json.Unmarshal(value, &entry); err != nil {
		unmarshalErrorMsg := "Failed to unmarshal transfer event from Kafka message"
		h.logger.Error(unmarshalErrorMsg,
			"error", err,
			"message_key", string(key),
		)

		if h.producer != nil {
			dlqReason := fmt.Sprintf("%s: %s", unmarshalErrorMsg, err.Error())
			if dlqErr := h.producer.PublishToDLQ(ctx, string(key), value, dlqReason); dlqErr != nil {
				h.logger.Error("Failed to publish message to DLQ after unmarshal error",
					"dlq_error", dlqErr,
					"original_error", err,
					"message_key", string(key),
				)
			} else {
				h.logger.Info("Published unprocessable message to DLQ", "message_key", string(key), "reason", dlqReason)
				return nil
			}
		}
		return fmt.Errorf("failed to unmarshal message value: %w", err)
	}

	logger := h.logger
	if entry.CorrelationID != "" {
		logger = h.logger.With("correlation_id", entry.CorrelationID)
	}

	logger.Info("Received transfer event for archiving",
		"transfer_id", entry.TransferID,
		"status", string(entry.Status),
		"amount", entry.Amount,
	)

	if err := h.archivingService.ArchiveEntry(ctx, &entry); err != nil {
		logger.Error("Failed to archive transfer event",
			"transfer_id", entry.TransferID,
			"error", err,
		)
		return fmt.Errorf("archiving transfer %d failed: %w", entry.TransferID, err)
	}

	return nil
}

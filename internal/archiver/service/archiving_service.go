package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/metrics"
)

// ArchivingServiceImpl writes transfer events into the archive. A duplicate
// entry counts as success so redelivered events commit their offset.
type ArchivingServiceImpl struct {
	archiveRepo archive.Repository
	logger      *slog.Logger
}

// NewArchivingService creates a new archiving service
func NewArchivingService(logger *slog.Logger, archiveRepo archive.Repository) ArchivingService {
	return &ArchivingServiceImpl{
		archiveRepo: archiveRepo,
		logger:      logger,
	}
}

// ArchiveEntry persists one transfer event into the archive read model
func (s *ArchivingServiceImpl) ArchiveEntry(ctx context.Context, entry *archive.Entry) error {
	logger := s.logger
	if entry.CorrelationID != "" {
		logger = s.logger.With("correlation_id", entry.CorrelationID)
	}

	err := s.archiveRepo.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, archive.ErrDuplicateEntry{}) {
			logger.Info("Transfer already archived, skipping",
				"transfer_id", entry.TransferID,
			)
			return nil
		}
		logger.Error("Failed to archive transfer event",
			"transfer_id", entry.TransferID,
			"error", err,
		)
		return err
	}

	metrics.ArchivedEntriesTotal.Inc()
	logger.Info("Archived transfer event",
		"transfer_id", entry.TransferID,
		"status", string(entry.Status),
	)
	return nil
}

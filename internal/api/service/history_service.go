package service

import (
	"context"
	"log/slog"

	"github.com/points-ledger/internal/domain/archive"
)

// HistoryServiceImpl serves transfer history from the archive read model. The
// archive trails the canonical store by the outbox publish interval, so a
// transfer may briefly be absent from history after it commits.
type HistoryServiceImpl struct {
	archiveRepo archive.Repository
	logger      *slog.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(logger *slog.Logger, archiveRepo archive.Repository) HistoryService {
	return &HistoryServiceImpl{
		archiveRepo: archiveRepo,
		logger:      logger,
	}
}

// GetTransfersByAccountID retrieves a paginated list of archived transfers for an account
func (s *HistoryServiceImpl) GetTransfersByAccountID(ctx context.Context, accountID int64, page, perPage int) ([]*archive.Entry, int64, error) {
	offset := (page - 1) * perPage

	entries, err := s.archiveRepo.GetByAccountID(ctx, accountID, perPage, offset)
	if err != nil {
		s.logger.Error("Failed to read transfer history", "account_id", accountID, "error", err)
		return nil, 0, err
	}

	total, err := s.archiveRepo.CountByAccountID(ctx, accountID)
	if err != nil {
		s.logger.Error("Failed to count transfer history", "account_id", accountID, "error", err)
		return nil, 0, err
	}

	return entries, total, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/points-ledger/internal/domain/transfer"
	"github.com/points-ledger/internal/platform/persistence"
)

// TransferRepository implements the transfer.Repository interface for PostgreSQL
type TransferRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewTransferRepository creates a new PostgreSQL transfer repository
func NewTransferRepository(logger *slog.Logger, db *persistence.PostgresDB) transfer.Repository {
	return &TransferRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction so the record insert commits
// atomically with the balance mutations.
func (r *TransferRepository) WithTx(tx pgx.Tx) transfer.Repository {
	return &TransferRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create inserts a transfer record with a terminal status and fills in the
// generated ID and timestamps.
func (r *TransferRepository) Create(ctx context.Context, rec *transfer.Record) error {
	query := `
		INSERT INTO transfers (sender_id, recipient_id, amount, status, failure_reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.querier.QueryRow(ctx, query,
		rec.SenderID,
		rec.RecipientID,
		rec.Amount,
		rec.Status,
		rec.FailureReason,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create transfer record",
			"sender_id", rec.SenderID,
			"recipient_id", rec.RecipientID,
			"error", err,
		)
		return fmt.Errorf("failed to create transfer record: %w", err)
	}

	return nil
}

// GetByID retrieves a transfer record by its ID
func (r *TransferRepository) GetByID(ctx context.Context, id int64) (*transfer.Record, error) {
	query := `
		SELECT id, sender_id, recipient_id, amount, status, failure_reason, created_at, updated_at
		FROM transfers
		WHERE id = $1
	`

	var rec transfer.Record
	err := r.querier.QueryRow(ctx, query, id).Scan(
		&rec.ID,
		&rec.SenderID,
		&rec.RecipientID,
		&rec.Amount,
		&rec.Status,
		&rec.FailureReason,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, transfer.ErrRecordNotFound{ID: id}
		}
		r.logger.Error("Failed to get transfer record", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get transfer record: %w", err)
	}

	return &rec, nil
}

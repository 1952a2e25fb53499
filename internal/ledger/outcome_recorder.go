package ledger

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/domain/outbox"
	"github.com/points-ledger/internal/domain/transfer"
	"github.com/points-ledger/internal/platform/persistence"
)

// outcomeRecorder persists the terminal outcome of a rejected or aborted
// transfer attempt. It is the single place failed records are written; the
// validation pipeline computes a reason and hands it here exactly once.
type outcomeRecorder struct {
	db        persistence.TxRunner
	transfers transfer.Repository
	outbox    outbox.Repository
	logger    *slog.Logger
}

func newOutcomeRecorder(
	db persistence.TxRunner,
	transfers transfer.Repository,
	outboxRepo outbox.Repository,
	logger *slog.Logger,
) *outcomeRecorder {
	return &outcomeRecorder{
		db:        db,
		transfers: transfers,
		outbox:    outboxRepo,
		logger:    logger,
	}
}

// recordFailure writes a failed transfer record plus its outbox event in a
// transaction independent of any aborted apply transaction. The write is
// best-effort: if it fails, the gap is logged and the zero-ID record is
// returned so the caller can still surface the business error.
func (r *outcomeRecorder) recordFailure(ctx context.Context, req Request, reason transfer.FailureReason) *transfer.Record {
	logger := r.logger
	if req.CorrelationID != "" {
		logger = r.logger.With("correlation_id", req.CorrelationID)
	}

	rec := &transfer.Record{
		SenderID:      req.SenderID,
		RecipientID:   req.RecipientID,
		Amount:        req.Amount,
		Status:        transfer.StatusFailed,
		FailureReason: reason,
	}

	err := r.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		if err := r.transfers.WithTx(tx).Create(ctx, rec); err != nil {
			return err
		}
		msg, err := outbox.NewMessage(archive.NewEntry(rec, req.CorrelationID))
		if err != nil {
			return err
		}
		return r.outbox.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		// Last-resort degradation: the attempt has no audit row. Known
		// inconsistency, surfaced loudly instead of silently swallowed.
		logger.Error("Failed to record failed transfer attempt",
			"sender_id", req.SenderID,
			"recipient_id", req.RecipientID,
			"amount", req.Amount,
			"reason", string(reason),
			"error", err,
		)
		return rec
	}

	logger.Info("Recorded failed transfer attempt",
		"transfer_id", rec.ID,
		"reason", string(reason),
	)
	return rec
}

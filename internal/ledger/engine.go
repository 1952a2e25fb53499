// Package ledger implements the transfer engine: it validates a transfer
// request, applies it atomically against the account store, and guarantees
// every attempt leaves exactly one terminal transfer record behind.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/points-ledger/internal/domain/account"
	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/domain/outbox"
	"github.com/points-ledger/internal/domain/transfer"
	"github.com/points-ledger/internal/metrics"
	"github.com/points-ledger/internal/platform/persistence"
)

// Request describes one transfer attempt
type Request struct {
	SenderID      int64
	RecipientID   int64
	Amount        int64
	CorrelationID string
}

// Config carries engine configuration. TreasuryAccountID designates the
// system account exempt from the sufficient-funds check; zero disables the
// exemption.
type Config struct {
	TreasuryAccountID int64
}

// Engine applies transfers against the account store. All collaborators are
// injected at construction time; the engine holds no ambient state.
type Engine struct {
	db        persistence.TxRunner
	accounts  account.Repository
	transfers transfer.Repository
	outbox    outbox.Repository
	recorder  *outcomeRecorder
	cfg       Config
	logger    *slog.Logger
}

// NewEngine creates a ledger engine with explicit dependencies
func NewEngine(
	db persistence.TxRunner,
	accounts account.Repository,
	transfers transfer.Repository,
	outboxRepo outbox.Repository,
	cfg Config,
	logger *slog.Logger,
) *Engine {
	return &Engine{
		db:        db,
		accounts:  accounts,
		transfers: transfers,
		outbox:    outboxRepo,
		recorder:  newOutcomeRecorder(db, transfers, outboxRepo, logger),
		cfg:       cfg,
		logger:    logger,
	}
}

// businessErr pairs the failure reason persisted on the record with the typed
// error surfaced to the caller. It aborts the apply transaction when returned
// from inside it.
type businessErr struct {
	reason transfer.FailureReason
	err    *Error
}

func (b *businessErr) Error() string { return b.err.Error() }

// CreateTransfer validates and applies a transfer. On success the created
// record is returned with status completed; on any failure the attempt is
// still durably recorded as failed before the typed error is returned.
func (e *Engine) CreateTransfer(ctx context.Context, req Request) (*transfer.Record, error) {
	logger := e.logger
	if req.CorrelationID != "" {
		logger = e.logger.With("correlation_id", req.CorrelationID)
	}

	// Cheap input checks fail before any balance is read
	if req.SenderID == req.RecipientID {
		e.recorder.recordFailure(ctx, req, transfer.FailureReasonSelfTransfer)
		metrics.TransfersTotal.WithLabelValues(string(transfer.StatusFailed)).Inc()
		return nil, NewInvalidRequest("sender and recipient must differ")
	}
	if req.Amount <= 0 {
		e.recorder.recordFailure(ctx, req, transfer.FailureReasonInvalidAmount)
		metrics.TransfersTotal.WithLabelValues(string(transfer.StatusFailed)).Inc()
		return nil, NewInvalidRequest("amount must be positive")
	}

	rec := &transfer.Record{
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Amount:      req.Amount,
		Status:      transfer.StatusCompleted,
	}

	err := e.db.ExecuteTx(ctx, func(tx pgx.Tx) error {
		accounts := e.accounts.WithTx(tx)

		sender, recipient, err := e.lockPair(ctx, accounts, req.SenderID, req.RecipientID)
		if err != nil {
			return err
		}

		// Checks run in a fixed order against the locked balances, so a
		// concurrent transfer can never make the funds check stale at commit.
		if sender == nil {
			return &businessErr{transfer.FailureReasonSenderNotFound, NewNotFound("sender account not found")}
		}
		if sender.ProfileID != e.cfg.TreasuryAccountID && sender.Balance < req.Amount {
			return &businessErr{transfer.FailureReasonInsufficientFunds, NewInsufficientFunds("sender balance is insufficient")}
		}
		if recipient == nil {
			return &businessErr{transfer.FailureReasonRecipientNotFound, NewNotFound("recipient account not found")}
		}

		if err := e.transfers.WithTx(tx).Create(ctx, rec); err != nil {
			return err
		}
		if _, err := accounts.ApplyDelta(ctx, req.SenderID, -req.Amount); err != nil {
			return err
		}
		if _, err := accounts.ApplyDelta(ctx, req.RecipientID, req.Amount); err != nil {
			return err
		}

		msg, err := outbox.NewMessage(archive.NewEntry(rec, req.CorrelationID))
		if err != nil {
			return err
		}
		return e.outbox.WithTx(tx).Create(ctx, msg)
	})
	if err != nil {
		metrics.TransfersTotal.WithLabelValues(string(transfer.StatusFailed)).Inc()

		var bizErr *businessErr
		if errors.As(err, &bizErr) {
			e.recorder.recordFailure(ctx, req, bizErr.reason)
			return nil, bizErr.err
		}

		// Infrastructural failure: the transaction rolled back, nothing was
		// applied. Record the aborted attempt in an independent write.
		logger.Error("Transfer apply transaction failed",
			"sender_id", req.SenderID,
			"recipient_id", req.RecipientID,
			"amount", req.Amount,
			"error", err,
		)
		e.recorder.recordFailure(ctx, req, transfer.FailureReasonCommitFailed)
		return nil, NewInternal("failed to apply transfer", err)
	}

	metrics.TransfersTotal.WithLabelValues(string(transfer.StatusCompleted)).Inc()
	logger.Info("Transfer completed",
		"transfer_id", rec.ID,
		"sender_id", rec.SenderID,
		"recipient_id", rec.RecipientID,
		"amount", rec.Amount,
	)
	return rec, nil
}

// lockPair locks both account rows in ascending profile-id order so
// concurrent transfers over the same pair cannot deadlock. A missing account
// is returned as nil rather than an error; the caller decides which absence
// matters first.
func (e *Engine) lockPair(ctx context.Context, accounts account.Repository, senderID, recipientID int64) (sender, recipient *account.Account, err error) {
	first, second := senderID, recipientID
	if first > second {
		first, second = second, first
	}

	byID := make(map[int64]*account.Account, 2)
	for _, id := range []int64{first, second} {
		acc, err := accounts.LockForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, account.ErrAccountNotFound{}) {
				continue
			}
			return nil, nil, fmt.Errorf("failed to lock account %d: %w", id, err)
		}
		byID[id] = acc
	}

	return byID[senderID], byID[recipientID], nil
}

// GetBalance returns the current balance for a profile's account. The read
// always goes through to the store; no cached balance is ever served.
func (e *Engine) GetBalance(ctx context.Context, profileID int64) (int64, error) {
	acc, err := e.accounts.GetByProfileID(ctx, profileID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound{}) {
			return 0, NewNotFound("account not found")
		}
		return 0, NewInternal("failed to read balance", err)
	}
	return acc.Balance, nil
}

// GetTransfer returns a transfer record by its ID from the canonical store
func (e *Engine) GetTransfer(ctx context.Context, id int64) (*transfer.Record, error) {
	rec, err := e.transfers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, transfer.ErrRecordNotFound{}) {
			return nil, NewNotFound("transfer not found")
		}
		return nil, NewInternal("failed to read transfer", err)
	}
	return rec, nil
}

// Package archive defines the read model mirrored into MongoDB for transfer
// history queries. The canonical transfer records live in PostgreSQL; archive
// entries are produced asynchronously through the outbox and the event stream.
package archive

import (
	"context"
	"strconv"
	"time"

	"github.com/points-ledger/internal/domain/transfer"
)

// Entry is one archived transfer attempt as stored in MongoDB
type Entry struct {
	TransferID    int64                  `json:"transfer_id" bson:"transfer_id"`
	SenderID      int64                  `json:"sender_id" bson:"sender_id"`
	RecipientID   int64                  `json:"recipient_id" bson:"recipient_id"`
	Amount        int64                  `json:"amount" bson:"amount"`
	Status        transfer.Status        `json:"status" bson:"status"`
	FailureReason transfer.FailureReason `json:"failure_reason,omitempty" bson:"failure_reason,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt     time.Time              `json:"created_at" bson:"created_at"`
	ArchivedAt    *time.Time             `json:"archived_at,omitempty" bson:"archived_at,omitempty"`
}

// NewEntry builds an archive entry from a transfer record
func NewEntry(rec *transfer.Record, correlationID string) *Entry {
	return &Entry{
		TransferID:    rec.ID,
		SenderID:      rec.SenderID,
		RecipientID:   rec.RecipientID,
		Amount:        rec.Amount,
		Status:        rec.Status,
		FailureReason: rec.FailureReason,
		CorrelationID: correlationID,
		CreatedAt:     rec.CreatedAt,
	}
}

// Repository manages archive entry persistence with pagination support.
// GetByAccountID returns entries where the account is sender or recipient.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetByTransferID(ctx context.Context, transferID int64) (*Entry, error)
	GetByAccountID(ctx context.Context, accountID int64, limit, offset int) ([]*Entry, error)
	CountByAccountID(ctx context.Context, accountID int64) (int64, error)
}

// ErrEntryNotFound indicates a missing archive entry
type ErrEntryNotFound struct {
	TransferID int64
}

func (e ErrEntryNotFound) Error() string {
	return "archive entry not found: " + strconv.FormatInt(e.TransferID, 10)
}

// Is implements errors.Is matching; a zero-ID target matches any ErrEntryNotFound.
func (e ErrEntryNotFound) Is(target error) bool {
	t, ok := target.(ErrEntryNotFound)
	if !ok {
		return false
	}
	if t.TransferID == 0 {
		return true
	}
	return e.TransferID == t.TransferID
}

// ErrDuplicateEntry indicates transfer uniqueness violation in the archive
type ErrDuplicateEntry struct {
	TransferID int64
}

func (e ErrDuplicateEntry) Error() string {
	return "duplicate archive entry: " + strconv.FormatInt(e.TransferID, 10)
}

// Is implements errors.Is matching; a zero-ID target matches any ErrDuplicateEntry.
func (e ErrDuplicateEntry) Is(target error) bool {
	t, ok := target.(ErrDuplicateEntry)
	if !ok {
		return false
	}
	if t.TransferID == 0 {
		return true
	}
	return e.TransferID == t.TransferID
}

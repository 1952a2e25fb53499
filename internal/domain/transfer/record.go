// Package transfer defines the audit record written for every transfer
// attempt, successful or not.
package transfer

import (
	"strconv"
	"time"
)

// Status defines terminal transfer states. An attempt is conceptually pending
// while in flight, but only terminal states are ever persisted.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// FailureReason categorizes why a transfer attempt was rejected
type FailureReason string

const (
	FailureReasonSelfTransfer      FailureReason = "SELF_TRANSFER"
	FailureReasonInvalidAmount     FailureReason = "INVALID_AMOUNT"
	FailureReasonSenderNotFound    FailureReason = "SENDER_NOT_FOUND"
	FailureReasonRecipientNotFound FailureReason = "RECIPIENT_NOT_FOUND"
	FailureReasonInsufficientFunds FailureReason = "INSUFFICIENT_FUNDS"
	FailureReasonCommitFailed      FailureReason = "COMMIT_FAILED"
)

// Record is the immutable audit row for one transfer attempt. Exactly one
// Record exists per call into the ledger engine; its ID is a monotonic serial
// so records sort in audit order.
type Record struct {
	ID            int64         `json:"id"`
	SenderID      int64         `json:"sender_id"`
	RecipientID   int64         `json:"recipient_id"`
	Amount        int64         `json:"amount"`
	Status        Status        `json:"status"`
	FailureReason FailureReason `json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ErrRecordNotFound indicates a missing transfer record
type ErrRecordNotFound struct {
	ID int64
}

func (e ErrRecordNotFound) Error() string {
	return "transfer record not found: " + strconv.FormatInt(e.ID, 10)
}

// Is implements errors.Is matching; a zero-ID target matches any ErrRecordNotFound.
func (e ErrRecordNotFound) Is(target error) bool {
	t, ok := target.(ErrRecordNotFound)
	if !ok {
		return false
	}
	if t.ID == 0 {
		return true
	}
	return e.ID == t.ID
}

// Package outbox implements the transactional outbox: transfer events are
// written to PostgreSQL in the same transaction as the transfer itself and
// published to Kafka afterwards by the archiver's poller.
package outbox

import (
	"encoding/json"
	"time"

	"github.com/points-ledger/internal/domain/archive"
)

// Status defines message publishing states
type Status string

const (
	StatusPending         Status = "PENDING"
	StatusProcessed       Status = "PROCESSED"
	StatusFailedToPublish Status = "FAILED_TO_PUBLISH"
)

// Message stores one transfer event awaiting reliable publication
type Message struct {
	ID            int64           `json:"id"`
	TransferID    int64           `json:"transfer_id"`
	Payload       json.RawMessage `json:"payload"`
	Status        Status          `json:"status"`
	Attempts      int             `json:"attempts"`
	CreatedAt     time.Time       `json:"created_at"`
	LastAttemptAt *time.Time      `json:"last_attempt_at,omitempty"`
}

// NewMessage wraps an archive entry as a pending outbox message
func NewMessage(entry *archive.Entry) (*Message, error) {
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	return &Message{
		TransferID: entry.TransferID,
		Payload:    payload,
		Status:     StatusPending,
		Attempts:   0,
		CreatedAt:  time.Now(),
	}, nil
}

// Entry extracts the archive entry from the payload
func (m *Message) Entry() (*archive.Entry, error) {
	var entry archive.Entry
	if err := json.Unmarshal(m.Payload, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

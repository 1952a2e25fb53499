package transfer

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository manages transfer record persistence. Records are append-only:
// there is no update or delete beyond the database's own timestamp bookkeeping.
type Repository interface {
	// Create inserts the record and fills in its generated ID and timestamps
	Create(ctx context.Context, rec *Record) error
	GetByID(ctx context.Context, id int64) (*Record, error)
	WithTx(tx pgx.Tx) Repository
}

package account

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Repository defines account persistence operations. The store carries no
// business validation; it only guarantees atomicity and durability of
// single-row mutations and consistent reads.
type Repository interface {
	Create(ctx context.Context, acc *Account) error
	GetByProfileID(ctx context.Context, profileID int64) (*Account, error)

	// ApplyDelta atomically adds delta (positive or negative) to the balance
	ApplyDelta(ctx context.Context, profileID int64, delta int64) (*Account, error)

	// LockForUpdate acquires a row lock on the account for transaction processing
	LockForUpdate(ctx context.Context, profileID int64) (*Account, error)

	// ListByBalanceDesc returns up to limit accounts ordered by balance
	// descending, profile id ascending among equal balances
	ListByBalanceDesc(ctx context.Context, limit int) ([]*Account, error)

	WithTx(tx pgx.Tx) Repository
}

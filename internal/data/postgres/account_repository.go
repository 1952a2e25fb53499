// Package postgres provides PostgreSQL implementations of the domain
// repositories. This is the single source of truth for balances and transfer
// records; every mutation happens through a pgx transaction.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/points-ledger/internal/domain/account"
	"github.com/points-ledger/internal/platform/persistence"
)

// AccountRepository implements the account.Repository interface for PostgreSQL
type AccountRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewAccountRepository creates a new PostgreSQL account repository
func NewAccountRepository(logger *slog.Logger, db *persistence.PostgresDB) account.Repository {
	return &AccountRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// WithTx wraps the repository with a transaction, allowing for atomic
// operations across multiple repository calls.
func (r *AccountRepository) WithTx(tx pgx.Tx) account.Repository {
	return &AccountRepository{
		querier: tx,
		logger:  r.logger,
	}
}

// Create stores a new account. The unique constraint on profile_id rejects a
// second account for the same profile.
func (r *AccountRepository) Create(ctx context.Context, acc *account.Account) error {
	query := `
		INSERT INTO accounts (profile_id, balance)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.querier.QueryRow(ctx, query, acc.ProfileID, acc.Balance).
		Scan(&acc.ID, &acc.CreatedAt, &acc.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create account", "profile_id", acc.ProfileID, "error", err)
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByProfileID retrieves the account owned by the given profile
func (r *AccountRepository) GetByProfileID(ctx context.Context, profileID int64) (*account.Account, error) {
	query := `
		SELECT id, profile_id, balance, created_at, updated_at
		FROM accounts
		WHERE profile_id = $1
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, profileID).Scan(
		&acc.ID,
		&acc.ProfileID,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{ProfileID: profileID}
		}
		r.logger.Error("Failed to get account", "profile_id", profileID, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acc, nil
}

// ApplyDelta atomically adds delta to the balance and returns the updated row
func (r *AccountRepository) ApplyDelta(ctx context.Context, profileID int64, delta int64) (*account.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, updated_at = NOW()
		WHERE profile_id = $2
		RETURNING id, profile_id, balance, created_at, updated_at
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, delta, profileID).Scan(
		&acc.ID,
		&acc.ProfileID,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{ProfileID: profileID}
		}
		r.logger.Error("Failed to apply balance delta", "profile_id", profileID, "delta", delta, "error", err)
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	return &acc, nil
}

// LockForUpdate obtains a row lock on the account and returns its current
// state. This must be used within a transaction; the lock serializes all
// balance reads and writes on the row until commit or rollback.
func (r *AccountRepository) LockForUpdate(ctx context.Context, profileID int64) (*account.Account, error) {
	query := `
		SELECT id, profile_id, balance, created_at, updated_at
		FROM accounts
		WHERE profile_id = $1
		FOR UPDATE
	`

	var acc account.Account
	err := r.querier.QueryRow(ctx, query, profileID).Scan(
		&acc.ID,
		&acc.ProfileID,
		&acc.Balance,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrAccountNotFound{ProfileID: profileID}
		}
		r.logger.Error("Failed to lock account for update", "profile_id", profileID, "error", err)
		return nil, fmt.Errorf("failed to lock account for update: %w", err)
	}

	return &acc, nil
}

// ListByBalanceDesc returns up to limit accounts ordered by balance descending.
// Profile id ascending breaks ties so a snapshot is stable across re-reads.
func (r *AccountRepository) ListByBalanceDesc(ctx context.Context, limit int) ([]*account.Account, error) {
	query := `
		SELECT id, profile_id, balance, created_at, updated_at
		FROM accounts
		ORDER BY balance DESC, profile_id ASC
		LIMIT $1
	`

	rows, err := r.querier.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error("Failed to list accounts by balance", "error", err)
		return nil, fmt.Errorf("failed to list accounts by balance: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		var acc account.Account
		err := rows.Scan(
			&acc.ID,
			&acc.ProfileID,
			&acc.Balance,
			&acc.CreatedAt,
			&acc.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("Failed to scan account row", "error", err)
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, &acc)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating over account rows", "error", err)
		return nil, fmt.Errorf("error iterating over account rows: %w", err)
	}

	return accounts, nil
}

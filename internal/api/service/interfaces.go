package service

import (
	"context"

	"github.com/points-ledger/internal/domain/archive"
	"github.com/points-ledger/internal/domain/transfer"
	"github.com/points-ledger/internal/ledger"
	"github.com/points-ledger/internal/ranking"
)

// TransferService defines the interface for transfer operations
type TransferService interface {
	// CreateTransfer validates and applies a transfer attempt and returns its
	// terminal record. Rejections surface as *ledger.Error alongside a failed
	// record.
	CreateTransfer(ctx context.Context, req ledger.Request) (*transfer.Record, error)

	// GetTransfer retrieves a transfer record by its ID
	GetTransfer(ctx context.Context, id int64) (*transfer.Record, error)

	// GetBalance returns the current balance for a profile's account
	GetBalance(ctx context.Context, profileID int64) (int64, error)
}

// LeaderboardService defines the interface for leaderboard queries
type LeaderboardService interface {
	// Leaderboard returns up to limit accounts ranked by balance
	Leaderboard(ctx context.Context, limit int) ([]ranking.RankedAccount, error)
}

// HistoryService defines the interface for transfer history reads
type HistoryService interface {
	// GetTransfersByAccountID retrieves a paginated list of archived transfers
	// involving the account, newest first. Returns entries, total count, and
	// any error.
	GetTransfersByAccountID(ctx context.Context, accountID int64, page, perPage int) ([]*archive.Entry, int64, error)
}

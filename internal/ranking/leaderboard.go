// Package ranking produces the leaderboard: a deterministically ordered,
// dense-ranked snapshot of account balances.
package ranking

import (
	"context"
	"log/slog"

	"github.com/points-ledger/internal/domain/account"
	"github.com/points-ledger/internal/ledger"
)

const (
	// DefaultLimit is used when the caller does not specify one
	DefaultLimit = 10
	// MaxLimit bounds a single leaderboard query
	MaxLimit = 100
)

// RankedAccount is one leaderboard row. Rank is dense: accounts with equal
// balances share a rank and the next distinct balance gets rank+1.
type RankedAccount struct {
	ProfileID int64 `json:"profile_id"`
	Balance   int64 `json:"balance"`
	Rank      int   `json:"rank"`
}

// Service answers leaderboard queries against the account store
type Service struct {
	accounts account.Repository
	logger   *slog.Logger
}

// NewService creates a leaderboard service
func NewService(accounts account.Repository, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		logger:   logger,
	}
}

// Leaderboard returns up to limit accounts ordered by balance descending with
// dense ranks assigned. A limit outside [1, MaxLimit] is rejected; an empty
// account set yields an empty slice, not an error.
func (s *Service) Leaderboard(ctx context.Context, limit int) ([]RankedAccount, error) {
	if limit < 1 || limit > MaxLimit {
		return nil, ledger.NewInvalidRequest("limit must be between 1 and 100")
	}

	accounts, err := s.accounts.ListByBalanceDesc(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to read leaderboard snapshot", "error", err)
		return nil, ledger.NewInternal("failed to read leaderboard", err)
	}

	ranked := make([]RankedAccount, 0, len(accounts))
	rank := 0
	var prevBalance int64
	for i, acc := range accounts {
		if i == 0 || acc.Balance != prevBalance {
			rank++
			prevBalance = acc.Balance
		}
		ranked = append(ranked, RankedAccount{
			ProfileID: acc.ProfileID,
			Balance:   acc.Balance,
			Rank:      rank,
		})
	}

	return ranked, nil
}

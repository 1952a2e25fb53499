package handler

import (
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/points-ledger/internal/api/service"
	"github.com/points-ledger/internal/ranking"
)

// LeaderboardHandler handles HTTP requests for the leaderboard
type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	logger             *slog.Logger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(logger *slog.Logger, leaderboardService service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// Get returns the top accounts ranked by balance. The limit query parameter
// defaults to 10 and must stay within [1, 100].
func (h *LeaderboardHandler) Get(c *gin.Context) {
	limit := ranking.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			RespondBadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	ranked, err := h.leaderboardService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		RespondLedgerError(c, err)
		return
	}

	RespondOK(c, gin.H{"leaderboard": ranked})
}

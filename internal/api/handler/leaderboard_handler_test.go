package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/points-ledger/internal/ledger"
	"github.com/points-ledger/internal/ranking"
)

type MockLeaderboardService struct {
	mock.Mock
}

func (m *MockLeaderboardService) Leaderboard(ctx context.Context, limit int) ([]ranking.RankedAccount, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ranking.RankedAccount), args.Error(1)
}

func newLeaderboardRouter(handler *LeaderboardHandler) *gin.Engine {
	router := gin.New()
	router.GET("/leaderboard", handler.Get)
	return router
}

func TestLeaderboardHandler_Get(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	gin.SetMode(gin.TestMode)

	t.Run("DefaultLimit", func(t *testing.T) {
		mockService := new(MockLeaderboardService)
		handler := NewLeaderboardHandler(logger, mockService)
		router := newLeaderboardRouter(handler)

		mockService.On("Leaderboard", mock.Anything, ranking.DefaultLimit).Return([]ranking.RankedAccount{
			{ProfileID: 4, Balance: 500, Rank: 1},
			{ProfileID: 7, Balance: 500, Rank: 1},
			{ProfileID: 2, Balance: 300, Rank: 2},
		}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/leaderboard", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		data := response["data"].(map[string]interface{})
		rows := data["leaderboard"].([]interface{})
		require.Len(t, rows, 3)

		first := rows[0].(map[string]interface{})
		second := rows[1].(map[string]interface{})
		assert.Equal(t, float64(1), first["rank"])
		assert.Equal(t, float64(1), second["rank"])

		mockService.AssertExpectations(t)
	})

	t.Run("ExplicitLimit", func(t *testing.T) {
		mockService := new(MockLeaderboardService)
		handler := NewLeaderboardHandler(logger, mockService)
		router := newLeaderboardRouter(handler)

		mockService.On("Leaderboard", mock.Anything, 25).
			Return([]ranking.RankedAccount{}, nil)

		req, _ := http.NewRequest(http.MethodGet, "/leaderboard?limit=25", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NonNumericLimit", func(t *testing.T) {
		mockService := new(MockLeaderboardService)
		handler := NewLeaderboardHandler(logger, mockService)
		router := newLeaderboardRouter(handler)

		req, _ := http.NewRequest(http.MethodGet, "/leaderboard?limit=abc", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockService.AssertNotCalled(t, "Leaderboard", mock.Anything, mock.Anything)
	})

	t.Run("OutOfRangeLimit", func(t *testing.T) {
		mockService := new(MockLeaderboardService)
		handler := NewLeaderboardHandler(logger, mockService)
		router := newLeaderboardRouter(handler)

		mockService.On("Leaderboard", mock.Anything, 101).
			Return(nil, ledger.NewInvalidRequest("limit must be between 1 and 100"))

		req, _ := http.NewRequest(http.MethodGet, "/leaderboard?limit=101", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ServiceError", func(t *testing.T) {
		mockService := new(MockLeaderboardService)
		handler := NewLeaderboardHandler(logger, mockService)
		router := newLeaderboardRouter(handler)

		mockService.On("Leaderboard", mock.Anything, ranking.DefaultLimit).
			Return(nil, ledger.NewInternal("failed to read leaderboard", assert.AnError))

		req, _ := http.NewRequest(http.MethodGet, "/leaderboard", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/points-ledger/internal/api/service"
	"github.com/points-ledger/internal/domain/archive"
)

// AccountHandler handles HTTP requests for account reads
type AccountHandler struct {
	transferService service.TransferService
	historyService  service.HistoryService
	logger          *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, transferService service.TransferService, historyService service.HistoryService) *AccountHandler {
	return &AccountHandler{
		transferService: transferService,
		historyService:  historyService,
		logger:          logger,
	}
}

// GetBalance retrieves the current balance for an account, returning 404 if
// the account does not exist
func (h *AccountHandler) GetBalance(c *gin.Context) {
	profileID, ok := profileIDParam(c)
	if !ok {
		return
	}

	balance, err := h.transferService.GetBalance(c.Request.Context(), profileID)
	if err != nil {
		RespondLedgerError(c, err)
		return
	}

	RespondOK(c, BalanceResponse{ProfileID: profileID, Balance: balance})
}

// GetTransfers retrieves paginated transfer history for an account from the
// archive read model
func (h *AccountHandler) GetTransfers(c *gin.Context) {
	profileID, ok := profileIDParam(c)
	if !ok {
		return
	}

	var pagination PaginationParams
	if err := c.ShouldBindQuery(&pagination); err != nil {
		h.logger.Error("Invalid pagination parameters", "error", err)
		RespondBadRequest(c, "Invalid pagination parameters")
		return
	}

	entries, total, err := h.historyService.GetTransfersByAccountID(
		c.Request.Context(),
		profileID,
		pagination.Page,
		pagination.PerPage,
	)
	if err != nil {
		h.logger.Error("Failed to get transfer history", "account_id", profileID, "error", err)
		RespondInternalError(c)
		return
	}

	history := make([]HistoryEntryResponse, 0, len(entries))
	for _, entry := range entries {
		history = append(history, mapEntryToResponse(entry))
	}

	RespondWithPaginatedData(c, http.StatusOK, history, pagination.Page, pagination.PerPage, int(total))
}

// profileIDParam parses the :id path parameter, responding 400 on malformed input
func profileIDParam(c *gin.Context) (int64, bool) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		RespondBadRequest(c, "Invalid account ID")
		return 0, false
	}
	return id, true
}

// mapEntryToResponse maps an archive entry to a history response DTO
func mapEntryToResponse(entry *archive.Entry) HistoryEntryResponse {
	return HistoryEntryResponse{
		TransferID:    entry.TransferID,
		SenderID:      entry.SenderID,
		RecipientID:   entry.RecipientID,
		Amount:        entry.Amount,
		Status:        string(entry.Status),
		FailureReason: string(entry.FailureReason),
		CreatedAt:     entry.CreatedAt.Format(time.RFC3339),
	}
}

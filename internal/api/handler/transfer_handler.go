package handler

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/points-ledger/internal/api/middleware"
	"github.com/points-ledger/internal/api/service"
	"github.com/points-ledger/internal/domain/transfer"
	"github.com/points-ledger/internal/ledger"
)

// TransferHandler handles HTTP requests for transfer operations
type TransferHandler struct {
	transferService service.TransferService
	logger          *slog.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(logger *slog.Logger, transferService service.TransferService) *TransferHandler {
	return &TransferHandler{
		transferService: transferService,
		logger:          logger,
	}
}

// Create applies a transfer from the authenticated sender to the recipient.
// The sender is taken from the X-User-ID header; rejected attempts are still
// recorded before the error envelope is returned.
func (h *TransferHandler) Create(c *gin.Context) {
	senderID, ok := senderFromHeader(c)
	if !ok {
		return
	}

	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	rec, err := h.transferService.CreateTransfer(c.Request.Context(), ledger.Request{
		SenderID:      senderID,
		RecipientID:   req.RecipientID,
		Amount:        req.Amount,
		CorrelationID: middleware.GetCorrelationID(c),
	})
	if err != nil {
		RespondLedgerError(c, err)
		return
	}

	RespondCreated(c, mapRecordToResponse(rec))
}

// GetByID retrieves a transfer record by its ID, returning 404 if not found
func (h *TransferHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.logger.Error("Invalid transfer ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transfer ID")
		return
	}

	rec, err := h.transferService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		RespondLedgerError(c, err)
		return
	}

	RespondOK(c, mapRecordToResponse(rec))
}

// senderFromHeader resolves the authenticated sender from the X-User-ID
// header, responding 401 when it is missing or malformed
func senderFromHeader(c *gin.Context) (int64, bool) {
	raw := c.GetHeader(SenderIDHeader)
	if raw == "" {
		RespondUnauthorized(c, "Missing X-User-ID header")
		return 0, false
	}

	senderID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		RespondUnauthorized(c, "Invalid X-User-ID header")
		return 0, false
	}

	return senderID, true
}

// mapRecordToResponse maps a transfer record to a transfer response DTO
func mapRecordToResponse(rec *transfer.Record) TransferResponse {
	return TransferResponse{
		ID:            rec.ID,
		SenderID:      rec.SenderID,
		RecipientID:   rec.RecipientID,
		Amount:        rec.Amount,
		Status:        string(rec.Status),
		FailureReason: string(rec.FailureReason),
		CreatedAt:     rec.CreatedAt.Format(time.RFC3339),
	}
}

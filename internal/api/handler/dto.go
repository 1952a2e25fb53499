package handler

// SenderIDHeader identifies the authenticated sender of a transfer request
const SenderIDHeader = "X-User-ID"

// CreateTransferRequest represents a request to move points to another account.
// Amount carries no binding constraint: a non-positive amount must
// reach the engine so the attempt is recorded as failed.
type CreateTransferRequest struct {
	RecipientID int64 `json:"recipient_id"`
	Amount      int64 `json:"amount"`
}

// TransferResponse represents a transfer record in API responses
type TransferResponse struct {
	ID            int64  `json:"id"`
	SenderID      int64  `json:"sender_id"`
	RecipientID   int64  `json:"recipient_id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// BalanceResponse represents an account balance in API responses
type BalanceResponse struct {
	ProfileID int64 `json:"profile_id"`
	Balance   int64 `json:"balance"`
}

// HistoryEntryResponse represents one archived transfer in API responses
type HistoryEntryResponse struct {
	TransferID    int64  `json:"transfer_id"`
	SenderID      int64  `json:"sender_id"`
	RecipientID   int64  `json:"recipient_id"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
	FailureReason string `json:"failure_reason,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// PaginationParams represents pagination parameters for list endpoints
type PaginationParams struct {
	Page    int `form:"page,default=1" binding:"min=1"`
	PerPage int `form:"per_page,default=10" binding:"min=1,max=100"`
}

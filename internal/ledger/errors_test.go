package ledger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Kinds(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		kind Kind
	}{
		{"invalid request", NewInvalidRequest("sender and recipient must differ"), KindInvalidRequest},
		{"not found", NewNotFound("sender account not found"), KindNotFound},
		{"insufficient funds", NewInsufficientFunds("sender balance is insufficient"), KindInsufficientFunds},
		{"internal", NewInternal("failed to apply transfer", errors.New("boom")), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, KindOf(tt.err))
			assert.True(t, IsKind(tt.err, tt.kind))
			assert.Contains(t, tt.err.Error(), string(tt.kind))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternal("failed to apply transfer", cause)

	assert.ErrorIs(t, err, cause)
}

func TestKindOf_NonLedgerError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.False(t, IsKind(errors.New("plain"), KindInternal))
}

func TestIsKind_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NewNotFound("transfer not found"))
	assert.True(t, IsKind(wrapped, KindNotFound))
}

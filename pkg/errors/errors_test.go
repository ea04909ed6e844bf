package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	cause := stderrors.New("connection refused")
	wrapped := fmt.Errorf("deliver: %w", Wrap(ErrCodeStoreUnavailable, "store unavailable", cause))

	assert.Equal(t, ErrCodeStoreUnavailable, CodeOf(wrapped))
	assert.True(t, Is(wrapped, ErrCodeStoreUnavailable))
	assert.True(t, IsDelivery(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	assert.Equal(t, ErrCodeInternalError, CodeOf(cause))
	assert.False(t, Is(nil, ErrCodeInternalError))
	assert.False(t, IsDelivery(New(ErrCodeBadRequest, "bad")))
}

func TestAppErrorMessage(t *testing.T) {
	assert.Equal(t, "SEND_FAILED: rejected", New(ErrCodeSendFailed, "rejected").Error())
	assert.Equal(t, "WRITE_FAILED: insert (dup key)",
		Wrap(ErrCodeWriteFailed, "insert", stderrors.New("dup key")).Error())
}

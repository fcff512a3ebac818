package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsFindsWrappedAppError(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("saving: %w", Internal("Failed to save", cause))

	appErr, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)

	_, ok = As(cause)
	assert.False(t, ok)
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, "Payment not found", NotFound("Payment", nil).Message)
	assert.Equal(t, http.StatusBadRequest, InvalidState("Payment cannot be released").Status)
	assert.Equal(t, "INVALID_STATE", InvalidState("x").Code)
	assert.Equal(t, http.StatusConflict, Conflict("Course code already exists").Status)
	assert.Equal(t, http.StatusTooManyRequests, TooManyRequests("slow down").Status)
	assert.Equal(t, "NOT_FOUND: Payment not found", NotFound("Payment", nil).Error())
}

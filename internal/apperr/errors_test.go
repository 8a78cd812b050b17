package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidation([]string{"amount too large", "order cancelled"})
	assert.Equal(t, "validation failed: amount too large; order cancelled", err.Error())
	assert.Len(t, err.Errors, 2)
}

func TestErrorsAsRoundTrips(t *testing.T) {
	wrapped := fmt.Errorf("create refund: %w", NewInvalidState("processed", "refund must be pending before approval"))

	var invalidState *InvalidStateError
	require.ErrorAs(t, wrapped, &invalidState)
	assert.Equal(t, "processed", invalidState.Current)
}

func TestStorageErrorUnwraps(t *testing.T) {
	underlying := errors.New("disk full")
	err := NewStorage("write", underlying)

	assert.ErrorIs(t, err, underlying)
	assert.Contains(t, err.Error(), "disk full")
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "order 42 not found", NewNotFound("order", "42").Error())
}

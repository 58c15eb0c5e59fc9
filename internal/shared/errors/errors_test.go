package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_CodesAndDetails(t *testing.T) {
	err := NewValidationError("invalid ticket", "subject is required", "group is required")

	assert.Equal(t, http.StatusBadRequest, err.Code)
	assert.Equal(t, "subject is required; group is required", err.Details)
	assert.Equal(t, "validation_error: invalid ticket (subject is required; group is required)", err.Error())

	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").Code)
	assert.Equal(t, http.StatusConflict, NewConflictError("x").Code)
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("x").Code)
	assert.Equal(t, "internal_error: boom", NewInternalError("boom").Error())
}

func TestTypePredicates_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("saving: %w", NewConflictError("ticket was modified"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.Nil(t, GetAppError(fmt.Errorf("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry 'x' for key 'name'")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: tags.normalized")))
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
}

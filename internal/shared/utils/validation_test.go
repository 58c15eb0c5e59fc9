package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

type sampleCommand struct {
	Subject  string `json:"subject" validate:"required,max=10"`
	GroupID  uint   `json:"group_id" validate:"required"`
	Priority int    `json:"priority" validate:"gte=1,lte=3"`
}

func TestValidateStruct_ReportsEveryViolation(t *testing.T) {
	err := ValidateStruct(sampleCommand{Subject: "this subject is too long", Priority: 7})
	require.Error(t, err)

	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Details, "subject must be at most 10 characters long")
	assert.Contains(t, appErr.Details, "group_id is required")
	assert.Contains(t, appErr.Details, "priority must be less than or equal to 3")
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(sampleCommand{Subject: "ok", GroupID: 1, Priority: 2}))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(40, -1))
	assert.Equal(t, 3, TotalPages(21, 10))
}

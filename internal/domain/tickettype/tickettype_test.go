package tickettype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketType(t *testing.T) {
	tt, err := NewTicketType(" Issue ")
	require.NoError(t, err)
	assert.Equal(t, "Issue", tt.Name())

	require.NoError(t, tt.Rename("Task"))
	assert.Equal(t, "Task", tt.Name())
	assert.Error(t, tt.Rename(""))

	_, err = NewTicketType("")
	assert.Error(t, err)
}

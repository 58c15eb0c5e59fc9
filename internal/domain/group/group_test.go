package group

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupMembership(t *testing.T) {
	g, err := NewGroup("Support", nil)
	require.NoError(t, err)

	assert.True(t, g.AddMember(1))
	assert.False(t, g.AddMember(1))
	g.AddMember(2)

	g.SetSendMailTo([]uint{2, 3, 2})
	assert.Equal(t, []uint{2}, g.SendMailTo())

	assert.True(t, g.RemoveMember(2))
	assert.Empty(t, g.SendMailTo())
	assert.Equal(t, []uint{1}, g.Members())
	assert.False(t, g.RemoveMember(9))

	g.SetPublic(true)
	assert.True(t, g.IsPublic())

	_, err = NewGroup("", nil)
	assert.Error(t, err)
}

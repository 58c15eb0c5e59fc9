package organization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganization(t *testing.T) {
	o, err := NewOrganization("Acme Corp", " ACME ")
	require.NoError(t, err)
	assert.Equal(t, "acme", o.ShortName())

	assert.True(t, o.AddMember(4))
	assert.False(t, o.AddMember(4))
	assert.True(t, o.RemoveMember(4))
	assert.Empty(t, o.Members())

	_, err = NewOrganization("Acme", "a b")
	assert.Error(t, err)
	_, err = NewOrganization("", "acme")
	assert.Error(t, err)
}

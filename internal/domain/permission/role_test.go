package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePolicies(t *testing.T) {
	r, err := NewRole("mod", "Moderators", "", []string{"ticket:create edit", "comment:*"})
	require.NoError(t, err)

	policies, err := r.Policies()
	require.NoError(t, err)
	assert.Equal(t, []Policy{
		{Role: "mod", Object: "ticket", Action: "create"},
		{Role: "mod", Object: "ticket", Action: "edit"},
		{Role: "mod", Object: "comment", Action: "*"},
	}, policies)
}

func TestRolePolicies_Wildcard(t *testing.T) {
	r, err := NewRole("admin", "", "", []string{"*"})
	require.NoError(t, err)
	assert.Equal(t, "admin", r.Name())

	policies, err := r.Policies()
	require.NoError(t, err)
	assert.Equal(t, []Policy{{Role: "admin", Object: "*", Action: "*"}}, policies)
}

func TestNewRole_InvalidGrant(t *testing.T) {
	_, err := NewRole("bad", "", "", []string{"ticket"})
	assert.Error(t, err)
	_, err = NewRole("bad", "", "", []string{"ticket:"})
	assert.Error(t, err)
	_, err = NewRole("", "", "", nil)
	assert.Error(t, err)
}

func TestParseCapability(t *testing.T) {
	obj, act, err := ParseCapability(CapTicketAssignee)
	require.NoError(t, err)
	assert.Equal(t, "ticket", obj)
	assert.Equal(t, "assignee", act)

	_, _, err = ParseCapability("nocolon")
	assert.Error(t, err)
}

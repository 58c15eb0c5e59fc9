package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

func TestNewUser(t *testing.T) {
	email, err := vo.NewEmail("agent@example.com")
	require.NoError(t, err)

	u, err := NewUser("agent", "", email, RoleSupport)
	require.NoError(t, err)
	assert.Equal(t, "agent", u.Fullname())
	assert.Equal(t, RoleSupport, u.Role())

	require.NoError(t, u.SetID(3))
	assert.Error(t, u.SetID(4))

	_, err = NewUser("x", "X", email, "root")
	assert.Error(t, err)
	_, err = NewUser(" ", "X", email, RoleUser)
	assert.Error(t, err)
	_, err = NewUser("x", "X", nil, RoleUser)
	assert.Error(t, err)
}

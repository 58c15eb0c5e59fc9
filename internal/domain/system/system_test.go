package system

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSystem(t *testing.T) {
	tests := []struct {
		name    string
		orgID   uint
		sysName string
		wantErr bool
	}{
		{"valid", 1, " Payroll ", false},
		{"missing organization", 0, "Payroll", true},
		{"blank name", 1, "  ", true},
		{"name too long", 1, strings.Repeat("x", 101), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSystem(tt.orgID, tt.sysName, "erp", "")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Payroll", s.Name())
			assert.True(t, s.IsActive())
			assert.Nil(t, s.Edited())
		})
	}
}

func TestSystemEdit(t *testing.T) {
	s, err := NewSystem(1, "Payroll", "erp", "monthly runs")
	require.NoError(t, err)

	require.NoError(t, s.Edit("Payroll v2", " saas ", "", false))
	assert.Equal(t, "Payroll v2", s.Name())
	assert.Equal(t, "saas", s.Kind())
	assert.Empty(t, s.Description())
	assert.False(t, s.IsActive())
	assert.NotNil(t, s.Edited())

	assert.Error(t, s.Edit("", "erp", "", true))
	assert.Equal(t, "Payroll v2", s.Name(), "rejected edit leaves the system untouched")
}

package tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTag(t *testing.T) {
	tg, err := NewTag("  Straße ")
	require.NoError(t, err)
	assert.Equal(t, "Straße", tg.Name())
	assert.Equal(t, Normalize("STRASSE"), tg.Normalized())

	_, err = NewTag(" ")
	assert.Error(t, err)
}

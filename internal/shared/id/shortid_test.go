package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandom(t *testing.T) {
	a, err := Random(0)
	require.NoError(t, err)
	assert.Len(t, a, DefaultLength)
	assert.Empty(t, strings.Trim(a, alphabet))

	long, err := Random(200)
	require.NoError(t, err)
	assert.Len(t, long, 200)
	assert.NotEqual(t, a, long[:DefaultLength])
}

func TestKindIDs(t *testing.T) {
	tests := []struct {
		gen    func() (string, error)
		prefix string
	}{
		{NewCommentID, PrefixComment},
		{NewNoteID, PrefixNote},
		{NewAttachmentID, PrefixAttachment},
	}
	for _, tt := range tests {
		v, err := tt.gen()
		require.NoError(t, err)
		rest, ok := strings.CutPrefix(v, tt.prefix+"_")
		require.True(t, ok, v)
		assert.Len(t, rest, DefaultLength)
	}
}

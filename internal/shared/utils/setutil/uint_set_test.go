package setutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUintSet(t *testing.T) {
	s := NewUintSet(5, 1, 3, 1)

	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(2))
	assert.Equal(t, []uint{1, 3, 5}, s.Sorted())
	assert.Equal(t, []uint{3, 5}, s.Intersect([]uint{9, 5, 3}))
	assert.Empty(t, s.Intersect(nil))
}

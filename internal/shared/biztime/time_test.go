package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() { _ = Init("") })

	require.NoError(t, Init("America/New_York"))
	assert.Equal(t, "America/New_York", Location().String())

	assert.Error(t, Init("Mars/Olympus_Mons"))
	assert.Equal(t, "America/New_York", Location().String())

	require.NoError(t, Init(""))
	assert.Equal(t, time.UTC, Location())
}

func TestWindowStartUTC(t *testing.T) {
	t.Cleanup(func() { _ = Init("") })
	require.NoError(t, Init("Asia/Tokyo"))

	// 20:00 UTC on the 9th is already the 10th in Tokyo.
	now := time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC)
	start := WindowStartUTC(now, 1)

	want := time.Date(2024, 3, 10, 23, 59, 59, 999999999, Location()).AddDate(0, 0, -1).UTC()
	assert.Equal(t, want, start)
	assert.Equal(t, time.UTC, start.Location())
	assert.True(t, start.Before(now))
}

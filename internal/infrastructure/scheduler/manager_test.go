package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type countingRebuilder struct {
	runs atomic.Int32
}

func (r *countingRebuilder) RebuildStats(context.Context) error {
	r.runs.Add(1)
	return nil
}

func TestSchedulerManager_StatsJobRunsImmediately(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)

	r := &countingRebuilder{}
	require.NoError(t, m.RegisterStatsJob(r, time.Hour))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "quickstats-rebuild", m.Jobs()[0].Name())

	m.Start()
	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool { return r.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
}

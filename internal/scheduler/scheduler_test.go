package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsJobAfterGrace(t *testing.T) {
	var ran atomic.Bool
	s, err := New(time.UTC, "0 0 * * *", 10*time.Millisecond, func(ctx context.Context) {
		ran.Store(true)
	})
	require.NoError(t, err)

	s.run()
	require.True(t, ran.Load())
}

func TestSchedulerStopDuringGraceSkipsJob(t *testing.T) {
	var ran atomic.Bool
	s, err := New(time.UTC, "0 0 * * *", time.Second, func(ctx context.Context) {
		ran.Store(true)
	})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.run()
		close(done)
	}()
	s.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after Stop")
	}
	require.False(t, ran.Load())

	// Repeated Stop is a no-op.
	s.Stop()
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	_, err := New(time.UTC, "not a cron spec", 0, func(ctx context.Context) {})
	require.Error(t, err)
}

package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPollerRefreshesUntilStopped(t *testing.T) {
	src := newFakeSource()
	src.set("notifications", claims("n1"), nil)
	r := NewRefresher(NewStore(), src, testSchemas(), nil)

	p := NewPoller(r, 5*time.Millisecond, []string{"notifications"}, nil)
	p.Start(context.Background())
	assert.True(t, p.Running())

	require.Eventually(t, func() bool { return src.calls.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"n1"}, snapshotIDs(r.Store().Snapshot("notifications")))

	p.Stop()
	assert.False(t, p.Running())

	calls := src.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, src.calls.Load(), "no polls after Stop")
}

func TestPollerStartIsIdempotent(t *testing.T) {
	src := newFakeSource()
	r := NewRefresher(NewStore(), src, testSchemas(), nil)

	p := NewPoller(r, time.Hour, []string{"notifications"}, nil)
	p.Start(context.Background())
	p.Start(context.Background())

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	p.Stop()
	p.Stop()
	assert.EqualValues(t, 1, src.calls.Load())
}

func TestPollerStopsWithParentContext(t *testing.T) {
	src := newFakeSource()
	r := NewRefresher(NewStore(), src, testSchemas(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	p := NewPoller(r, time.Millisecond, []string{"notifications"}, nil)
	p.Start(ctx)
	cancel()

	// Stop still returns promptly after the loop exited on its own
	p.Stop()
}

func TestPollerFailureKeepsSnapshot(t *testing.T) {
	src := newFakeSource()
	src.set("notifications", claims("n1"), nil)
	r := NewRefresher(NewStore(), src, testSchemas(), nil)
	require.NoError(t, r.Refresh(context.Background(), "notifications"))

	src.set("notifications", nil, errors.New("unreachable"))
	p := NewPoller(r, time.Millisecond, []string{"notifications"}, nil)
	p.Start(context.Background())
	require.Eventually(t, func() bool {
		return r.Store().Snapshot("notifications").LastError != ""
	}, time.Second, time.Millisecond)
	p.Stop()

	assert.Equal(t, []string{"n1"}, snapshotIDs(r.Store().Snapshot("notifications")))
}

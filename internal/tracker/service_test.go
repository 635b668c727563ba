package tracker

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streaklit/internal/storage"
)

var fixedNow = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.Local)

type clock struct {
	now time.Time
}

func (c *clock) Now() time.Time { return c.now }

func (c *clock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestService(t *testing.T, opts ...Option) (*Service, *storage.Adapter, *clock) {
	t.Helper()

	provider := storage.NewMemoryStore()
	require.NoError(t, provider.Init())
	adapter := storage.NewAdapter(provider)

	c := &clock{now: fixedNow}
	var seq atomic.Int64
	svc := New(adapter, append([]Option{WithClock(c.Now)}, opts...)...)
	svc.newID = func() string { return fmt.Sprintf("id-%d", seq.Add(1)) }
	return svc, adapter, c
}

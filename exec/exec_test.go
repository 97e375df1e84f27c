package exec

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSyncRunsInline(t *testing.T) {
	t.Parallel()
	ran := false
	Sync().Submit(context.Background(), func() { ran = true })
	require.True(t, ran)
}

func TestPoolLimitsConcurrency(t *testing.T) {
	t.Parallel()
	p := Pool(2)
	gate := make(chan struct{})
	var cur, peak atomic.Int64

	for i := 0; i < 6; i++ {
		p.Submit(context.Background(), func() {
			n := cur.Add(1)
			for {
				old := peak.Load()
				if n <= old || peak.CompareAndSwap(old, n) {
					break
				}
			}
			<-gate
			cur.Add(-1)
		})
	}

	time.Sleep(50 * time.Millisecond)
	close(gate)
	p.Wait()
	require.LessOrEqual(t, peak.Load(), int64(2))
	require.Positive(t, peak.Load())
}

func TestPoolAbandonWhileQueued(t *testing.T) {
	t.Parallel()
	p := Pool(1)
	gate := make(chan struct{})
	acquired := make(chan struct{})

	p.Submit(context.Background(), func() {
		close(acquired)
		<-gate
	})
	<-acquired

	ctx, cancel := context.WithCancel(context.Background())
	var ran atomic.Int64
	p.Submit(ctx, func() { ran.Add(1) })

	cancel()
	close(gate)
	p.Wait()
	require.Equal(t, int64(0), ran.Load())
}

func TestPoolRunsEverythingEventually(t *testing.T) {
	t.Parallel()
	p := Pool(3)
	var n atomic.Int64
	for i := 0; i < 20; i++ {
		p.Submit(context.Background(), func() { n.Add(1) })
	}
	p.Wait()
	require.Equal(t, int64(20), n.Load())
}

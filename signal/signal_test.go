package signal

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

func TestEndRunsHandlers(t *testing.T) {
	t.Parallel()
	s := New()
	var n atomic.Int64
	s.OnEnd(func() { n.Add(1) })
	s.OnEnd(func() { n.Add(1) })

	require.False(t, s.Ended())
	s.End()
	require.True(t, s.Ended())
	require.Equal(t, int64(2), n.Load())
}

func TestHandlerAfterEndRunsImmediately(t *testing.T) {
	t.Parallel()
	s := New()
	s.End()

	ran := false
	s.OnEnd(func() { ran = true })
	require.True(t, ran)
}

func TestEndIdempotent(t *testing.T) {
	t.Parallel()
	s := New()
	var n atomic.Int64
	s.OnEnd(func() { n.Add(1) })
	s.End()
	s.End()
	require.Equal(t, int64(1), n.Load())
}

func TestHandlersRunInRegistrationOrder(t *testing.T) {
	t.Parallel()
	s := New()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		s.OnEnd(func() { got = append(got, i) })
	}
	s.End()
	require.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestChildEndsWithParent(t *testing.T) {
	t.Parallel()
	parent := New()
	child := parent.Child()

	require.False(t, child.Ended())
	parent.End()
	require.True(t, child.Ended())
}

func TestChildEndDoesNotEndParent(t *testing.T) {
	t.Parallel()
	parent := New()
	child := parent.Child()

	child.End()
	require.True(t, child.Ended())
	require.False(t, parent.Ended())

	// Parent end stays a no-op on the already-ended child.
	parent.End()
	require.True(t, child.Ended())
}

func TestFromContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	s := FromContext(ctx)
	require.False(t, s.Ended())

	cancel()
	require.Eventually(t, s.Ended, 2*time.Second, 5*time.Millisecond)
}

func TestFromContextBackgroundNeverEnds(t *testing.T) {
	t.Parallel()
	s := FromContext(context.Background())
	require.False(t, s.Ended())
}

func TestBindStopReleasesBinding(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := New()
	stop := Bind(ctx, s)
	require.True(t, stop())

	cancel()
	time.Sleep(20 * time.Millisecond)
	require.False(t, s.Ended())
}

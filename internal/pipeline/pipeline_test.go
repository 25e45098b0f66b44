// internal/pipeline/pipeline_test.go
package pipeline

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"

	"kreads/internal/seqio"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// memSource yields a fixed set of units.
type memSource struct {
	units  []seqio.Pair
	pos    int
	mu     sync.Mutex
	closed bool
}

func (m *memSource) Next() (seqio.Pair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pos >= len(m.units) {
		return seqio.Pair{}, io.EOF
	}
	p := m.units[m.pos]
	m.pos++
	return p, nil
}

func (m *memSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func unit(name string) seqio.Pair {
	return seqio.Pair{R1: &seqio.Read{Name: []byte(name), Seq: []byte("ACGT")}}
}

func TestRunPoolDrainsAllTasks(t *testing.T) {
	s1 := &memSource{units: []seqio.Pair{unit("a"), unit("b"), unit("c")}}
	s2 := &memSource{units: []seqio.Pair{unit("d"), unit("e")}}
	tasks := []Task[int]{{Source: s1, Group: 1}, {Source: s2, Group: 2}}

	var n atomic.Int64
	var byGroup [3]atomic.Int64
	err := RunPool(context.Background(), tasks, 4, func(p seqio.Pair, g int) error {
		n.Add(1)
		byGroup[g].Add(1)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(5), n.Load())
	require.Equal(t, int64(3), byGroup[1].Load())
	require.Equal(t, int64(2), byGroup[2].Load())
	require.True(t, s1.closed)
	require.True(t, s2.closed)
}

func TestRunPoolPropagatesCallbackError(t *testing.T) {
	s := &memSource{units: []seqio.Pair{unit("a"), unit("b"), unit("c"), unit("d")}}
	boom := errors.New("write failed")
	err := RunPool(context.Background(), []Task[int]{{Source: s, Group: 0}}, 2,
		func(p seqio.Pair, g int) error { return boom })
	require.ErrorIs(t, err, boom)
	require.True(t, s.closed)
}

func TestRunPoolHonorsCancellation(t *testing.T) {
	s := &memSource{units: []seqio.Pair{unit("a"), unit("b")}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunPool(ctx, []Task[int]{{Source: s, Group: 0}}, 2,
		func(p seqio.Pair, g int) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunPoolSingleThread(t *testing.T) {
	s := &memSource{units: []seqio.Pair{unit("a"), unit("b"), unit("c")}}
	var n int // single worker: no synchronization needed
	err := RunPool(context.Background(), []Task[int]{{Source: s, Group: 0}}, 0,
		func(p seqio.Pair, g int) error { n++; return nil })
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

package queue

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var handled atomic.Int64

type countingJob struct {
	Delta int64 `json:"delta"`
}

func (j *countingJob) Handle() error {
	handled.Add(j.Delta)
	return nil
}

func TestDispatchAndProcess(t *testing.T) {
	m := &Manager{
		registry: map[string]func() Job{},
		maxRetry: 1,
		driver:   NewMemoryDriver(),
	}
	m.registry["*queue.countingJob"] = func() Job { return &countingJob{} }

	handled.Store(0)
	require.NoError(t, m.push(&countingJob{Delta: 2}))

	raw, err := m.driver.Pop(context.Background())
	require.NoError(t, err)
	m.process(raw)

	assert.Equal(t, int64(2), handled.Load())
}

func TestUnregisteredJobIsSkipped(t *testing.T) {
	m := &Manager{
		registry: map[string]func() Job{},
		maxRetry: 1,
		driver:   NewMemoryDriver(),
	}

	handled.Store(0)
	require.NoError(t, m.push(&countingJob{Delta: 5}))

	raw, err := m.driver.Pop(context.Background())
	require.NoError(t, err)
	m.process(raw) // no registered factory; must not panic

	assert.Zero(t, handled.Load())
}

func TestMemoryDriverPopHonoursContext(t *testing.T) {
	d := NewMemoryDriver()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := d.Pop(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

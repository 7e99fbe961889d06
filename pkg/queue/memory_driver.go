package queue

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by Push when the in-memory queue is at capacity.
var ErrQueueFull = errors.New("queue: full")

// MemoryDriver is an in-process queue backed by a buffered channel.
// It is the default driver and the one used in tests.
type MemoryDriver struct {
	ch chan []byte
}

// NewMemoryDriver creates a MemoryDriver with room for 1024 pending jobs.
func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, 1024)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	select {
	case d.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}

// Package schedule provides a small interval task scheduler.
//
//	schedule.Every(5).Minutes().Run(sweepLowStock)
//	schedule.Start(ctx)
package schedule

import (
	"sync"
	"time"

	"github.com/shashiranjanraj/vanij/pkg/logger"
)

// Task is the function signature for a scheduled task.
type Task func()

type entry struct {
	interval time.Duration
	task     Task
	lastRun  time.Time
	running  bool
	mu       sync.Mutex
}

var (
	entriesMu sync.Mutex
	entries   []*entry
)

// Builder accumulates an interval before Run registers the task.
type Builder struct {
	n int
}

// Every starts building a schedule that fires every n units.
func Every(n int) *Builder {
	if n <= 0 {
		n = 1
	}
	return &Builder{n: n}
}

// Seconds sets the unit to seconds.
func (b *Builder) Seconds() *IntervalBuilder {
	return &IntervalBuilder{interval: time.Duration(b.n) * time.Second}
}

// Minutes sets the unit to minutes.
func (b *Builder) Minutes() *IntervalBuilder {
	return &IntervalBuilder{interval: time.Duration(b.n) * time.Minute}
}

// IntervalBuilder holds a concrete interval awaiting its task.
type IntervalBuilder struct {
	interval time.Duration
}

// Run registers task to fire on the builder's interval once Start is called.
func (ib *IntervalBuilder) Run(task Task) {
	entriesMu.Lock()
	defer entriesMu.Unlock()
	entries = append(entries, &entry{interval: ib.interval, task: task, lastRun: time.Now()})
}

// Start runs the scheduler loop until ctx is done. Call once at boot, in its
// own goroutine. Overlapping runs of the same task are skipped.
func Start(done <-chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			entriesMu.Lock()
			due := make([]*entry, 0, len(entries))
			for _, e := range entries {
				if now.Sub(e.lastRun) >= e.interval {
					due = append(due, e)
				}
			}
			entriesMu.Unlock()

			for _, e := range due {
				e.mu.Lock()
				if e.running {
					e.mu.Unlock()
					continue
				}
				e.running = true
				e.lastRun = now
				e.mu.Unlock()

				go func(e *entry) {
					defer func() {
						if r := recover(); r != nil {
							logger.Error("schedule: task panicked", "panic", r)
						}
						e.mu.Lock()
						e.running = false
						e.mu.Unlock()
					}()
					e.task()
				}(e)
			}
		}
	}
}

// Flush removes all registered tasks (useful in tests).
func Flush() {
	entriesMu.Lock()
	defer entriesMu.Unlock()
	entries = nil
}

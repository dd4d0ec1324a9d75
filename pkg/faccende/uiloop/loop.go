// Package uiloop provides the single execution context on which all
// navigation and window state is mutated. Background timers never touch
// shared state directly; they only enqueue callbacks here.
package uiloop

import (
	"log/slog"
	"sync"
	"time"
)

// Loop is a serial task queue standing in for the UI thread. Embed it in a
// frame loop by calling Drain once per frame, or run it headless with Run.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a stopped-free loop ready for Post and Drain.
func New(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		tasks:  make(chan func(), 128),
		done:   make(chan struct{}),
		timers: make(map[string]*time.Timer),
		logger: logger,
	}
}

// Post enqueues fn to run on the loop. Safe to call from any goroutine.
// After Stop the task is dropped with a log line.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
		l.logger.Debug("task dropped, loop stopped")
		return
	default:
	}
	select {
	case <-l.done:
		l.logger.Debug("task dropped, loop stopped")
	case l.tasks <- fn:
	}
}

// Debounce schedules fn to be posted after delay, keyed by key. Scheduling
// the same key again before it fires cancels the earlier callback
// (last-write-wins).
func (l *Loop) Debounce(key string, delay time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.timers[key]; ok {
		t.Stop()
	}
	l.timers[key] = time.AfterFunc(delay, func() {
		l.mu.Lock()
		delete(l.timers, key)
		l.mu.Unlock()
		l.Post(fn)
	})
}

// Cancel stops the debounced callback scheduled under key, reporting
// whether one was pending. A callback whose delivery has already begun
// cannot be canceled.
func (l *Loop) Cancel(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.timers[key]
	if !ok {
		return false
	}
	t.Stop()
	delete(l.timers, key)
	return true
}

// Drain runs every task currently queued and returns. Call from the frame
// loop that owns UI state.
func (l *Loop) Drain() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		default:
			return
		}
	}
}

// Run processes tasks until Stop is called. For headless use (tests,
// non-GUI embedding); a GUI host uses Drain instead.
func (l *Loop) Run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			l.Drain()
			return
		}
	}
}

// Stop shuts the loop down and cancels all pending debounce timers.
func (l *Loop) Stop() {
	l.once.Do(func() {
		close(l.done)
		l.mu.Lock()
		for key, t := range l.timers {
			t.Stop()
			delete(l.timers, key)
		}
		l.mu.Unlock()
	})
}

// Package subscribe implements the Subscribe Loop (C6): a one-at-a-time,
// cancellable, exponentially-backed-off resubscription task. Grounded on
// the teacher's src/data_source polling-with-backoff goroutines,
// generalized to a cancellable-from-outside sleep per spec.md §9.
package subscribe

import (
	"context"
	"sync"
	"time"

	"termbridge/internal/logger"
	"termbridge/internal/transport"
)

// Loop drives transport.Subscribe for one account, retrying on a capped
// doubling backoff until cancelled or closed.
type Loop struct {
	accountID string
	tr        transport.Transport
	log       *logger.Logger

	initialBackoff time.Duration
	maxBackoff     time.Duration

	mu            sync.Mutex
	isSubscribing bool
	shouldRetry   bool
	closed        bool
	cancelCh      chan struct{}
	runDone       chan struct{}
}

// New builds a Loop for accountID with the given backoff floor/ceiling in
// seconds.
func New(accountID string, tr transport.Transport, initialBackoffSeconds, maxBackoffSeconds int, log *logger.Logger) *Loop {
	return &Loop{
		accountID:      accountID,
		tr:             tr,
		log:            log,
		initialBackoff: time.Duration(initialBackoffSeconds) * time.Second,
		maxBackoff:     time.Duration(maxBackoffSeconds) * time.Second,
	}
}

// Start launches the subscribe loop if one isn't already running. No-op
// once the loop has been Closed.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.isSubscribing || l.closed {
		l.mu.Unlock()
		return
	}
	l.isSubscribing = true
	l.shouldRetry = true
	done := make(chan struct{})
	l.runDone = done
	l.mu.Unlock()

	go l.run(ctx, done)
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	backoff := l.initialBackoff
	for {
		l.mu.Lock()
		retry := l.shouldRetry && !l.closed
		l.mu.Unlock()
		if !retry {
			break
		}

		if err := l.tr.Subscribe(ctx, l.accountID); err != nil {
			l.log.Warning("subscribe failed for account %s: %v", l.accountID, err)
		}

		if !l.sleep(ctx, backoff) {
			break
		}

		backoff *= 2
		if backoff > l.maxBackoff {
			backoff = l.maxBackoff
		}
	}

	l.mu.Lock()
	l.isSubscribing = false
	l.mu.Unlock()
}

// sleep waits for d, an external CancelBackoff, or ctx cancellation.
// Returns true on natural expiry, false otherwise.
func (l *Loop) sleep(ctx context.Context, d time.Duration) bool {
	l.mu.Lock()
	cancel := make(chan struct{})
	l.cancelCh = cancel
	l.mu.Unlock()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-cancel:
		return false
	case <-ctx.Done():
		return false
	}
}

// CancelBackoff resolves any pending sleep early with false and stops the
// retry loop, then blocks until run() has actually exited and cleared
// isSubscribing. Without this, a Start() issued right after CancelBackoff
// (as OnReconnected does) can race a still-exiting run() and silently
// no-op, permanently stopping resubscription. Safe to call when no sleep
// is pending, and idempotent.
func (l *Loop) CancelBackoff() {
	l.mu.Lock()
	l.shouldRetry = false
	cancel := l.cancelCh
	l.cancelCh = nil
	done := l.runDone
	l.mu.Unlock()
	if cancel != nil {
		close(cancel)
	}
	if done != nil {
		<-done
	}
}

// IsSubscribing reports whether the loop is currently running.
func (l *Loop) IsSubscribing() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isSubscribing
}

// Close is a terminal shutdown: it stops any running loop and prevents
// future Start calls.
func (l *Loop) Close() {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	l.CancelBackoff()
}

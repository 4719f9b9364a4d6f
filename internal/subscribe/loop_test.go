package subscribe

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"termbridge/internal/logger"
	"termbridge/internal/mocks"
)

func TestLoopRetriesUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)

	var calls int32
	tr.EXPECT().Subscribe(gomock.Any(), "acc1").DoAndReturn(func(ctx context.Context, accountID string) error {
		atomic.AddInt32(&calls, 1)
		return context.DeadlineExceeded
	}).AnyTimes()

	l := New("acc1", tr, 0, 1, logger.New("test"))
	l.initialBackoff = time.Millisecond
	l.maxBackoff = 2 * time.Millisecond

	l.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	l.CancelBackoff()
	time.Sleep(5 * time.Millisecond)

	if atomic.LoadInt32(&calls) < 2 {
		t.Fatalf("expected multiple subscribe attempts before cancellation, got %d", calls)
	}
	if l.IsSubscribing() {
		t.Fatalf("expected loop to have stopped after CancelBackoff")
	}
}

func TestCancelBackoffBlocksUntilRunExitsThenStartRestarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)

	var calls int32
	tr.EXPECT().Subscribe(gomock.Any(), "acc1").DoAndReturn(func(ctx context.Context, accountID string) error {
		atomic.AddInt32(&calls, 1)
		return context.DeadlineExceeded
	}).AnyTimes()

	l := New("acc1", tr, 0, 1, logger.New("test"))
	l.initialBackoff = 5 * time.Millisecond
	l.maxBackoff = 5 * time.Millisecond

	l.Start(context.Background())
	time.Sleep(2 * time.Millisecond)

	// CancelBackoff must not return until run() has cleared
	// isSubscribing, otherwise the immediately following Start call can
	// race a still-exiting goroutine and silently no-op.
	l.CancelBackoff()
	if l.IsSubscribing() {
		t.Fatalf("expected CancelBackoff to block until the loop fully stopped")
	}

	l.Start(context.Background())
	time.Sleep(2 * time.Millisecond)
	if !l.IsSubscribing() {
		t.Fatalf("expected Start right after CancelBackoff to restart the loop")
	}
	l.CancelBackoff()
}

func TestLoopCloseIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().Subscribe(gomock.Any(), "acc1").Return(nil).AnyTimes()

	l := New("acc1", tr, 0, 1, logger.New("test"))
	l.Close()
	l.Start(context.Background())
	time.Sleep(5 * time.Millisecond)

	if l.IsSubscribing() {
		t.Fatalf("Start after Close must remain a no-op")
	}
}

package syncctl

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"termbridge/internal/bridgeerr"
	"termbridge/internal/logger"
	"termbridge/internal/mocks"
)

type fakeSymbolSource struct{ symbols []string }

func (f *fakeSymbolSource) SubscribedSymbols() []string { return f.symbols }

type fakeSubscribeLoop struct {
	cancelCalls int
	startCalls  int
}

func (f *fakeSubscribeLoop) CancelBackoff()            { f.cancelCalls++ }
func (f *fakeSubscribeLoop) Start(ctx context.Context) { f.startCalls++ }

func testConfig() Config {
	return Config{
		InitialRetrySeconds:            1,
		MaxRetrySeconds:                2,
		WaitSynchronizedTimeoutSeconds: 1,
		WaitSynchronizedIntervalMillis: 10,
		SubscribeInitialBackoffSeconds: 3,
		SubscribeMaxBackoffSeconds:     300,
	}
}

func TestOnConnectedSynchronizesAndMarksSynchronized(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	store := mocks.NewMockStorage(ctrl)

	store.EXPECT().LastHistoryOrderTime(gomock.Any(), 0).Return(time.Time{}, nil)
	store.EXPECT().LastDealTime(gomock.Any(), 0).Return(time.Time{}, nil)
	tr.EXPECT().Synchronize(gomock.Any(), "acc1", 0, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	symbols := &fakeSymbolSource{symbols: []string{"EURUSD"}}
	tr.EXPECT().SubscribeToMarketData(gomock.Any(), "acc1", 0, "EURUSD").Return(nil)

	loop := &fakeSubscribeLoop{}
	c := New("acc1", testConfig(), tr, store, symbols, loop, logger.New("test"))

	c.OnConnected(context.Background(), 0, 1)

	if !c.AnySynchronized() {
		t.Fatalf("expected instance 0 to be synchronized")
	}
	if loop.cancelCalls != 1 {
		t.Fatalf("expected subscribe loop backoff cancelled once, got %d", loop.cancelCalls)
	}
}

func TestEnsureSynchronizedAbandonsOnStaleToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	store := mocks.NewMockStorage(ctrl)

	store.EXPECT().LastHistoryOrderTime(gomock.Any(), 0).Return(time.Time{}, nil).AnyTimes()
	store.EXPECT().LastDealTime(gomock.Any(), 0).Return(time.Time{}, nil).AnyTimes()
	tr.EXPECT().Synchronize(gomock.Any(), "acc1", 0, gomock.Any(), gomock.Any(), gomock.Any()).
		Return(bridgeerr.NewTransportError("synchronize", context.DeadlineExceeded)).AnyTimes()

	c := New("acc1", testConfig(), tr, store, &fakeSymbolSource{}, &fakeSubscribeLoop{}, logger.New("test"))

	c.mu.Lock()
	state := c.stateLocked(0)
	state.ShouldSynchronize = "stale-token"
	c.mu.Unlock()

	// A retry loop running under a since-superseded token must exit
	// without mutating state.
	c.ensureSynchronized(context.Background(), 0, "different-token")

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.states[0].Synchronized {
		t.Fatalf("stale retry must not flip synchronized")
	}
}

func TestOnDisconnectedMovesSyncIDAndClearsFlags(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	store := mocks.NewMockStorage(ctrl)

	c := New("acc1", testConfig(), tr, store, &fakeSymbolSource{}, &fakeSubscribeLoop{}, logger.New("test"))

	c.mu.Lock()
	state := c.stateLocked(0)
	state.LastSynchronizationID = "sync-abc"
	state.Synchronized = true
	c.mu.Unlock()

	c.OnDisconnected(context.Background(), 0)

	c.mu.Lock()
	defer c.mu.Unlock()
	state = c.states[0]
	if state.LastDisconnectedSynchronizationID != "sync-abc" {
		t.Fatalf("expected lastDisconnectedSynchronizationId captured")
	}
	if state.LastSynchronizationID != "" {
		t.Fatalf("expected lastSynchronizationId cleared")
	}
	if state.Synchronized {
		t.Fatalf("expected synchronized cleared on disconnect")
	}
	if !state.Disconnected {
		t.Fatalf("expected disconnected flag set")
	}
}

func TestWaitSynchronizedTimesOutWithRelevantSyncID(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	store := mocks.NewMockStorage(ctrl)

	c := New("acc1", testConfig(), tr, store, &fakeSymbolSource{}, &fakeSubscribeLoop{}, logger.New("test"))

	c.mu.Lock()
	state := c.stateLocked(0)
	state.LastSynchronizationID = "sync-xyz"
	c.mu.Unlock()

	timeout := 0
	interval := 5
	err := c.WaitSynchronized(context.Background(), WaitSynchronizedOptions{
		TimeoutSeconds: &timeout,
		IntervalMillis: &interval,
		InstanceIndex:  intPtr(0),
	})

	if err == nil {
		t.Fatalf("expected a timeout error")
	}
	timeoutErr, ok := err.(*bridgeerr.TimeoutError)
	if !ok {
		t.Fatalf("expected *bridgeerr.TimeoutError, got %T", err)
	}
	if timeoutErr.SynchronizationID != "sync-xyz" {
		t.Fatalf("expected relevant sync id sync-xyz, got %s", timeoutErr.SynchronizationID)
	}
}

func TestIsSynchronizedRequiresBothOrdersAndDeals(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	store := mocks.NewMockStorage(ctrl)
	c := New("acc1", testConfig(), tr, store, &fakeSymbolSource{}, &fakeSubscribeLoop{}, logger.New("test"))

	c.mu.Lock()
	c.stateLocked(0).LastSynchronizationID = "sync-1"
	c.mu.Unlock()

	if c.IsSynchronized(intPtr(0), "") {
		t.Fatalf("expected false before either orders or deals finished")
	}

	c.OnOrderSynchronizationFinished(context.Background(), 0, "sync-1")
	if c.IsSynchronized(intPtr(0), "") {
		t.Fatalf("expected false with only orders finished")
	}

	c.OnDealSynchronizationFinished(context.Background(), 0, "sync-1")
	if !c.IsSynchronized(intPtr(0), "") {
		t.Fatalf("expected true once both orders and deals finished")
	}
}

func TestOnConnectedGarbageCollectsDroppedInstances(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	store := mocks.NewMockStorage(ctrl)
	store.EXPECT().LastHistoryOrderTime(gomock.Any(), gomock.Any()).Return(time.Time{}, nil).AnyTimes()
	store.EXPECT().LastDealTime(gomock.Any(), gomock.Any()).Return(time.Time{}, nil).AnyTimes()
	tr.EXPECT().Synchronize(gomock.Any(), "acc1", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	c := New("acc1", testConfig(), tr, store, &fakeSymbolSource{}, &fakeSubscribeLoop{}, logger.New("test"))

	c.mu.Lock()
	c.stateLocked(3)
	c.mu.Unlock()

	c.OnConnected(context.Background(), 0, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.states[3]; ok {
		t.Fatalf("expected instance 3 dropped once replicas=1")
	}
	if _, ok := c.states[0]; !ok {
		t.Fatalf("expected instance 0 retained")
	}
}

func intPtr(v int) *int { return &v }

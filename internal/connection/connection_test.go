package connection

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"termbridge/internal/logger"
	"termbridge/internal/mocks"
	"termbridge/internal/models"
	"termbridge/internal/quotesession"
	"termbridge/internal/syncctl"
)

func newTestConnection(t *testing.T, tr *mocks.MockTransport) *Connection {
	t.Helper()
	registry := NewRegistry()
	c, err := New(Options{
		AccountID:      "acc1",
		ApplicationTag: "RPC",
		Fallback:       quotesession.NewProvider(),
		SyncConfig: syncctl.Config{
			InitialRetrySeconds:            1,
			MaxRetrySeconds:                2,
			WaitSynchronizedTimeoutSeconds: 1,
			WaitSynchronizedIntervalMillis: 10,
			SubscribeInitialBackoffSeconds: 1,
			SubscribeMaxBackoffSeconds:     2,
		},
	}, tr, registry, logger.New("test"))
	if err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	return c
}

func TestNewRejectsMalformedApplicationTag(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	registry := NewRegistry()

	_, err := New(Options{
		AccountID:      "acc1",
		ApplicationTag: "bad tag!",
		Fallback:       quotesession.NewProvider(),
	}, tr, registry, logger.New("test"))
	if err == nil {
		t.Fatalf("expected a validation error for a malformed application tag")
	}
}

func TestSubscribeToMarketDataRecordsSymbol(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().SubscribeToMarketData(gomock.Any(), "acc1", 0, "EURUSD").Return(nil)

	c := newTestConnection(t, tr)
	if err := c.SubscribeToMarketData(context.Background(), "EURUSD", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	symbols := c.SubscribedSymbols()
	if len(symbols) != 1 || symbols[0] != "EURUSD" {
		t.Fatalf("expected EURUSD recorded, got %v", symbols)
	}
}

func TestUnsubscribeFromMarketDataPreservesAddBehavior(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().UnsubscribeFromMarketData(gomock.Any(), "acc1", 0, "EURUSD").Return(nil)

	c := newTestConnection(t, tr)
	if err := c.UnsubscribeFromMarketData(context.Background(), "EURUSD", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	symbols := c.SubscribedSymbols()
	if len(symbols) != 1 || symbols[0] != "EURUSD" {
		t.Fatalf("expected unsubscribe to still add the symbol to the subscription set, got %v", symbols)
	}
}

func TestTradeRejectsInvalidRequestBeforeCallingTransport(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl) // no EXPECT() calls: Trade must never reach the transport

	c := newTestConnection(t, tr)
	err := c.Trade(context.Background(), &models.TradeRequest{ActionType: models.ActionBuy})
	if err == nil {
		t.Fatalf("expected a validation error for a market order missing a symbol")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)
	tr.EXPECT().AddSynchronizationListener(gomock.Any(), gomock.Any()).Times(4)
	tr.EXPECT().AddReconnectListener(gomock.Any(), gomock.Any()).Times(1)
	tr.EXPECT().RemoveSynchronizationListener(gomock.Any(), gomock.Any()).Times(4)
	tr.EXPECT().RemoveReconnectListener(gomock.Any(), gomock.Any()).Times(1)
	tr.EXPECT().Unsubscribe(gomock.Any(), "acc1").Return(nil).Times(1)
	// Initialize starts the subscribe loop, which may reach Subscribe
	// before Close stops it.
	tr.EXPECT().Subscribe(gomock.Any(), "acc1").Return(nil).AnyTimes()

	c := newTestConnection(t, tr)
	if err := c.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := c.Close(context.Background()); err != nil {
		t.Fatalf("second Close must be a no-op, got error: %v", err)
	}
}

func TestHealthSourceDelegatesToState(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := mocks.NewMockTransport(ctrl)

	c := newTestConnection(t, tr)
	if c.Connected() {
		t.Fatalf("expected Connected false before any lifecycle event")
	}
	c.state.SetConnected(true)
	if !c.Connected() {
		t.Fatalf("expected Connected true after SetConnected")
	}
}

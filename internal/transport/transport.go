// Package transport defines the black-box collaborator surface of spec.md
// §6: the outbound calls the synchronization core issues against the
// websocket transport, and the inbound event/listener interfaces the
// transport drives the core with.
package transport

import (
	"context"
	"time"

	"termbridge/internal/models"
)

// Transport is the outbound call surface the core issues against the
// websocket transport. A concrete implementation (internal/wstransport)
// frames these as JSON-RPC-shaped requests over a websocket connection;
// tests substitute a generated mock (internal/mocks).
type Transport interface {
	Subscribe(ctx context.Context, accountID string) error
	Unsubscribe(ctx context.Context, accountID string) error
	Reconnect(ctx context.Context, accountID string) error
	Synchronize(ctx context.Context, accountID string, instanceIndex int, synchronizationID string, startingHistoryOrderTime, startingDealTime time.Time) error
	WaitSynchronized(ctx context.Context, accountID string, instanceIndex *int, applicationPattern string, timeoutSeconds int) error
	SubscribeToMarketData(ctx context.Context, accountID string, instanceIndex int, symbol string) error
	UnsubscribeFromMarketData(ctx context.Context, accountID string, instanceIndex int, symbol string) error
	Trade(ctx context.Context, accountID string, request *models.TradeRequest) error
	RemoveHistory(ctx context.Context, accountID string, application string) error
	RemoveApplication(ctx context.Context, accountID string) error

	// Read queries, pure delegation per spec.md §4.7.
	AccountInformation(ctx context.Context, accountID string) (*models.AccountInformation, error)
	Positions(ctx context.Context, accountID string) ([]models.Position, error)
	Orders(ctx context.Context, accountID string) ([]models.Order, error)
	HistoryOrdersByTicket(ctx context.Context, accountID, ticket string) ([]models.HistoryOrder, error)
	HistoryOrdersByPosition(ctx context.Context, accountID, positionID string) ([]models.HistoryOrder, error)
	HistoryOrdersByTimeRange(ctx context.Context, accountID string, from, to time.Time) ([]models.HistoryOrder, error)
	DealsByTicket(ctx context.Context, accountID, ticket string) ([]models.Deal, error)
	DealsByPosition(ctx context.Context, accountID, positionID string) ([]models.Deal, error)
	DealsByTimeRange(ctx context.Context, accountID string, from, to time.Time) ([]models.Deal, error)
	SymbolSpecification(ctx context.Context, accountID, symbol string) (*models.SymbolSpecification, error)
	SymbolPrice(ctx context.Context, accountID, symbol string) (*models.SymbolPrice, error)
	SaveUptime(ctx context.Context, accountID string, uptime models.Uptime) error

	// Listener registry, mutated only via these Add/Remove calls per spec.md §5.
	AddSynchronizationListener(accountID string, listener SynchronizationListener)
	RemoveSynchronizationListener(accountID string, listener SynchronizationListener)
	AddReconnectListener(accountID string, listener ReconnectListener)
	RemoveReconnectListener(accountID string, listener ReconnectListener)
}

// SynchronizationListener is the capability-set dispatch interface driven
// by packet-ordered inbound events. Every hook defaults to a no-op via
// BaseListener so implementers only override what they need — the
// pattern spec.md §9 calls for modeling this as a capability set rather
// than a fat required interface.
type SynchronizationListener interface {
	OnConnected(ctx context.Context, instanceIndex int, replicas int)
	OnDisconnected(ctx context.Context, instanceIndex int)
	OnDealSynchronizationFinished(ctx context.Context, instanceIndex int, synchronizationID string)
	OnOrderSynchronizationFinished(ctx context.Context, instanceIndex int, synchronizationID string)
	OnSymbolPriceUpdated(ctx context.Context, instanceIndex int, price *models.SymbolPrice)
	OnAccountInformationUpdated(ctx context.Context, instanceIndex int, info *models.AccountInformation)

	// OnHistoryOrderAdded and OnDealAdded feed C3 (spec.md §4.3): the
	// history storage ingests these to advance lastHistoryOrderTime and
	// lastDealTime past historyStartTime.
	OnHistoryOrderAdded(ctx context.Context, instanceIndex int, order *models.HistoryOrder)
	OnDealAdded(ctx context.Context, instanceIndex int, deal *models.Deal)

	// OnOutOfOrderPacket reports a packet-orderer gap alert (spec.md §4.1,
	// §7: out-of-order events are reported via a listener callback, never
	// as errors).
	OnOutOfOrderPacket(accountID string, instanceIndex int, expectedSequenceNumber, actualSequenceNumber int64, packet *models.Packet, receivedAt time.Time)
}

// ReconnectListener is driven once per transport reconnect event.
type ReconnectListener interface {
	OnReconnected(ctx context.Context)
}

// BaseListener implements SynchronizationListener with no-op bodies.
// Embed it and override only the hooks a given listener cares about.
type BaseListener struct{}

func (BaseListener) OnConnected(ctx context.Context, instanceIndex int, replicas int)                    {}
func (BaseListener) OnDisconnected(ctx context.Context, instanceIndex int)                               {}
func (BaseListener) OnDealSynchronizationFinished(ctx context.Context, instanceIndex int, synchronizationID string) {}
func (BaseListener) OnOrderSynchronizationFinished(ctx context.Context, instanceIndex int, synchronizationID string) {}
func (BaseListener) OnSymbolPriceUpdated(ctx context.Context, instanceIndex int, price *models.SymbolPrice) {}
func (BaseListener) OnAccountInformationUpdated(ctx context.Context, instanceIndex int, info *models.AccountInformation) {}
func (BaseListener) OnHistoryOrderAdded(ctx context.Context, instanceIndex int, order *models.HistoryOrder) {}
func (BaseListener) OnDealAdded(ctx context.Context, instanceIndex int, deal *models.Deal)                 {}
func (BaseListener) OnOutOfOrderPacket(accountID string, instanceIndex int, expectedSequenceNumber, actualSequenceNumber int64, packet *models.Packet, receivedAt time.Time) {
}

// BaseReconnectListener implements ReconnectListener with a no-op body.
type BaseReconnectListener struct{}

func (BaseReconnectListener) OnReconnected(ctx context.Context) {}

// Package termstate implements the Terminal State (C2): a read-only
// in-memory replica of one account's positions, orders, quote prices and
// connectedness flags. Updated exclusively by dispatched packets from the
// packet orderer; never mutated by consumer code. Grounded on the
// mutex-guarded map style of the teacher's src/server/fastAPI.go
// latestState cache.
package termstate

import (
	"context"
	"sync"

	"termbridge/internal/models"
	"termbridge/internal/quotesession"
	"termbridge/internal/transport"
)

// State is one connection's local replica, registered as a
// transport.SynchronizationListener.
type State struct {
	transport.BaseListener

	mu sync.RWMutex

	connected         bool
	connectedToBroker bool

	accountInfo *models.AccountInformation
	positions   map[string]models.Position
	orders      map[string]models.Order
	prices      map[string]*models.SymbolPrice
	specs       map[string]*models.SymbolSpecification

	fallback *quotesession.Provider
}

// New builds an empty Terminal State. fallback supplies a default
// quote-session schedule for symbols the server hasn't described yet.
func New(fallback *quotesession.Provider) *State {
	return &State{
		positions: make(map[string]models.Position),
		orders:    make(map[string]models.Order),
		prices:    make(map[string]*models.SymbolPrice),
		specs:     make(map[string]*models.SymbolSpecification),
		fallback:  fallback,
	}
}

// Connected reports whether the transport's connection to the API server
// is currently established.
func (s *State) Connected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connected
}

// ConnectedToBroker reports whether the terminal reports an active link
// to the broker.
func (s *State) ConnectedToBroker() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.connectedToBroker
}

// Specification returns the quote-session schedule for symbol, falling
// back to the calendar-derived default when the server hasn't pushed an
// explicit one.
func (s *State) Specification(symbol string) *models.SymbolSpecification {
	s.mu.RLock()
	spec, ok := s.specs[symbol]
	s.mu.RUnlock()
	if ok {
		return spec
	}
	if s.fallback != nil {
		return s.fallback.Specification(symbol)
	}
	return nil
}

// Price returns the latest known quote for symbol, or nil.
func (s *State) Price(symbol string) *models.SymbolPrice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prices[symbol]
}

// AccountInformation returns the last known account snapshot, or nil.
func (s *State) AccountInformation() *models.AccountInformation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accountInfo
}

// Positions returns a snapshot of the replica's open positions.
func (s *State) Positions() []models.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}
	return out
}

// Orders returns a snapshot of the replica's pending orders.
func (s *State) Orders() []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out
}

// UpsertPosition adds or replaces a position in the replica.
func (s *State) UpsertPosition(p models.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[p.ID] = p
}

// RemovePosition drops a position from the replica.
func (s *State) RemovePosition(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, id)
}

// UpsertOrder adds or replaces an order in the replica.
func (s *State) UpsertOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// RemoveOrder drops an order from the replica.
func (s *State) RemoveOrder(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
}

// UpsertSpecification records an explicit quote-session schedule pushed
// by the server, taking priority over the calendar-derived fallback.
func (s *State) UpsertSpecification(spec *models.SymbolSpecification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.specs[spec.Symbol] = spec
}

// SetConnected flips the API-server connectedness flag.
func (s *State) SetConnected(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connected = v
}

// SetConnectedToBroker flips the broker-link connectedness flag.
func (s *State) SetConnectedToBroker(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.connectedToBroker = v
}

// OnConnected implements transport.SynchronizationListener: the
// connection to the API server is established for instanceIndex.
func (s *State) OnConnected(ctx context.Context, instanceIndex int, replicas int) {
	s.SetConnected(true)
}

// OnDisconnected implements transport.SynchronizationListener.
func (s *State) OnDisconnected(ctx context.Context, instanceIndex int) {
	s.SetConnected(false)
	s.SetConnectedToBroker(false)
}

// OnSymbolPriceUpdated implements transport.SynchronizationListener,
// recording the latest quote and implicitly confirming the broker link
// is live.
func (s *State) OnSymbolPriceUpdated(ctx context.Context, instanceIndex int, price *models.SymbolPrice) {
	if price == nil {
		return
	}
	s.mu.Lock()
	s.prices[price.Symbol] = price
	s.connectedToBroker = true
	s.mu.Unlock()
}

// OnAccountInformationUpdated implements transport.SynchronizationListener.
func (s *State) OnAccountInformationUpdated(ctx context.Context, instanceIndex int, info *models.AccountInformation) {
	s.mu.Lock()
	s.accountInfo = info
	s.mu.Unlock()
}

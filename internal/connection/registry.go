// Package connection implements the Connection Facade (C7): the
// aggregate that owns one trading account's identity, wires C2-C6
// together as transport listeners, and exposes the consumer-facing
// trade/query/subscription surface. Grounded on the teacher's
// src/data_source/multi_source_manager.go mutex-guarded registry style.
package connection

import (
	"fmt"
	"sync"
)

// Registry tracks every open Connection by account id, supplementing the
// per-account wiring spec.md §4.7 describes with a lookup surface the
// admin HTTP layer (internal/adminhttp) reads from.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*Connection
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{connections: make(map[string]*Connection)}
}

// Add registers conn under its account id. Returns an error if a
// connection for that account is already registered.
func (r *Registry) Add(conn *Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.connections[conn.AccountID()]; exists {
		return fmt.Errorf("connection for account %s already exists", conn.AccountID())
	}
	r.connections[conn.AccountID()] = conn
	return nil
}

// Remove drops accountID's connection, if any.
func (r *Registry) Remove(accountID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, accountID)
}

// Get retrieves accountID's connection.
func (r *Registry) Get(accountID string) (*Connection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.connections[accountID]
	return conn, ok
}

// All returns a snapshot of every registered connection.
func (r *Registry) All() []*Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Connection, 0, len(r.connections))
	for _, conn := range r.connections {
		out = append(out, conn)
	}
	return out
}

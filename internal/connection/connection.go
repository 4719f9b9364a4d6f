package connection

import (
	"context"
	"regexp"
	"sync"
	"time"

	"termbridge/internal/bridgeerr"
	"termbridge/internal/health"
	"termbridge/internal/history"
	"termbridge/internal/logger"
	"termbridge/internal/models"
	"termbridge/internal/quotesession"
	"termbridge/internal/subscribe"
	"termbridge/internal/syncctl"
	"termbridge/internal/termstate"
	"termbridge/internal/transport"
)

// applicationTagPattern is the allowed charset for an application tag
// per spec.md §7: [a-zA-Z0-9_]+.
var applicationTagPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Options configures a new Connection.
type Options struct {
	AccountID         string
	ApplicationTag    string
	HistoryStartTime  time.Time
	Fallback          *quotesession.Provider
	SyncConfig        syncctl.Config
}

// Connection is one logical connection to a trading account: it owns
// account identity, the per-account subset of C2-C6, a set of
// market-data subscriptions, and a closed flag, per spec.md §3.
type Connection struct {
	accountID        string
	applicationTag   string
	historyStartTime time.Time

	tr       transport.Transport
	registry *Registry
	log      *logger.Logger

	state         *termstate.State
	historyStore  *history.MemoryStorage
	healthMonitor *health.Monitor
	syncCtl       *syncctl.Controller
	subscribeLoop *subscribe.Loop

	mu                sync.Mutex
	subscribedSymbols map[string]struct{}
	closed            bool
}

// New builds a Connection bound to tr and registry but does not register
// it or start its background tasks; call Initialize for that. It rejects
// a malformed application tag at construction time, per spec.md §7.
func New(opts Options, tr transport.Transport, registry *Registry, log *logger.Logger) (*Connection, error) {
	if opts.ApplicationTag != "" && !applicationTagPattern.MatchString(opts.ApplicationTag) {
		return nil, bridgeerr.NewValidationError("applicationTag", "must match [a-zA-Z0-9_]+")
	}

	state := termstate.New(opts.Fallback)
	historyStore := history.NewMemoryStorage()

	conn := &Connection{
		accountID:         opts.AccountID,
		applicationTag:    opts.ApplicationTag,
		historyStartTime:  opts.HistoryStartTime,
		tr:                tr,
		registry:          registry,
		log:               log,
		state:             state,
		historyStore:      historyStore,
		subscribedSymbols: make(map[string]struct{}),
	}

	conn.healthMonitor = health.New(conn)

	syncCfg := opts.SyncConfig
	syncCfg.ApplicationTag = opts.ApplicationTag
	syncCfg.HistoryStartTime = opts.HistoryStartTime
	conn.subscribeLoop = subscribe.New(opts.AccountID, tr, syncCfg.SubscribeInitialBackoffSeconds, syncCfg.SubscribeMaxBackoffSeconds, log)
	conn.syncCtl = syncctl.New(opts.AccountID, syncCfg, tr, historyStore, conn, conn.subscribeLoop, log)

	return conn, nil
}

// AccountID returns the opaque account identity this connection is bound
// to.
func (c *Connection) AccountID() string { return c.accountID }

// State exposes the Terminal State replica for read access (used by
// internal/adminhttp).
func (c *Connection) State() *termstate.State { return c.state }

// HealthMonitor exposes the Health Monitor for read access.
func (c *Connection) HealthMonitor() *health.Monitor { return c.healthMonitor }

// Closed reports whether Close has already run.
func (c *Connection) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Initialize prepares history storage, registers the connection's
// components as transport listeners, and starts the health monitor and
// subscribe loop.
func (c *Connection) Initialize(ctx context.Context) error {
	if err := c.historyStore.Initialize(ctx); err != nil {
		return err
	}

	c.tr.AddSynchronizationListener(c.accountID, c.state)
	c.tr.AddSynchronizationListener(c.accountID, c.historyStore)
	c.tr.AddSynchronizationListener(c.accountID, c.healthMonitor)
	c.tr.AddSynchronizationListener(c.accountID, c.syncCtl)
	c.tr.AddReconnectListener(c.accountID, c.syncCtl)

	c.healthMonitor.Start()
	c.subscribeLoop.Start(ctx)

	if c.registry != nil {
		if err := c.registry.Add(c); err != nil {
			return err
		}
	}
	return nil
}

// Close is idempotent and terminal: it unsubscribes from the transport,
// removes every listener, stops the health monitor, and removes itself
// from the registry.
func (c *Connection) Close(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.subscribeLoop.Close()
	c.healthMonitor.Stop()

	c.tr.RemoveSynchronizationListener(c.accountID, c.state)
	c.tr.RemoveSynchronizationListener(c.accountID, c.historyStore)
	c.tr.RemoveSynchronizationListener(c.accountID, c.healthMonitor)
	c.tr.RemoveSynchronizationListener(c.accountID, c.syncCtl)
	c.tr.RemoveReconnectListener(c.accountID, c.syncCtl)

	err := c.tr.Unsubscribe(ctx, c.accountID)

	if c.registry != nil {
		c.registry.Remove(c.accountID)
	}
	return err
}

// --- health.Source, implemented by Connection itself (spec.md §9:
// inject a capability interface rather than share ownership between C7
// and C4) ---

func (c *Connection) Connected() bool         { return c.state.Connected() }
func (c *Connection) ConnectedToBroker() bool { return c.state.ConnectedToBroker() }
func (c *Connection) Synchronized() bool      { return c.syncCtl.AnySynchronized() }

func (c *Connection) SymbolPrice(symbol string) *models.SymbolPrice {
	return c.state.Price(symbol)
}

func (c *Connection) SymbolSpecification(symbol string) *models.SymbolSpecification {
	return c.state.Specification(symbol)
}

// SubscribedSymbols implements both health.Source and
// syncctl.SymbolSource, returning the current subscription set's keys.
func (c *Connection) SubscribedSymbols() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.subscribedSymbols))
	for symbol := range c.subscribedSymbols {
		out = append(out, symbol)
	}
	return out
}

// --- read queries: pure delegation to the transport, per spec.md §4.7 ---

func (c *Connection) AccountInformation(ctx context.Context) (*models.AccountInformation, error) {
	return c.tr.AccountInformation(ctx, c.accountID)
}

func (c *Connection) Positions(ctx context.Context) ([]models.Position, error) {
	return c.tr.Positions(ctx, c.accountID)
}

func (c *Connection) Orders(ctx context.Context) ([]models.Order, error) {
	return c.tr.Orders(ctx, c.accountID)
}

func (c *Connection) HistoryOrdersByTicket(ctx context.Context, ticket string) ([]models.HistoryOrder, error) {
	return c.tr.HistoryOrdersByTicket(ctx, c.accountID, ticket)
}

func (c *Connection) HistoryOrdersByPosition(ctx context.Context, positionID string) ([]models.HistoryOrder, error) {
	return c.tr.HistoryOrdersByPosition(ctx, c.accountID, positionID)
}

func (c *Connection) HistoryOrdersByTimeRange(ctx context.Context, from, to time.Time) ([]models.HistoryOrder, error) {
	return c.tr.HistoryOrdersByTimeRange(ctx, c.accountID, from, to)
}

func (c *Connection) DealsByTicket(ctx context.Context, ticket string) ([]models.Deal, error) {
	return c.tr.DealsByTicket(ctx, c.accountID, ticket)
}

func (c *Connection) DealsByPosition(ctx context.Context, positionID string) ([]models.Deal, error) {
	return c.tr.DealsByPosition(ctx, c.accountID, positionID)
}

func (c *Connection) DealsByTimeRange(ctx context.Context, from, to time.Time) ([]models.Deal, error) {
	return c.tr.DealsByTimeRange(ctx, c.accountID, from, to)
}

func (c *Connection) SymbolSpecificationRemote(ctx context.Context, symbol string) (*models.SymbolSpecification, error) {
	return c.tr.SymbolSpecification(ctx, c.accountID, symbol)
}

func (c *Connection) SymbolPriceRemote(ctx context.Context, symbol string) (*models.SymbolPrice, error) {
	return c.tr.SymbolPrice(ctx, c.accountID, symbol)
}

// SaveUptime reports the health monitor's current uptime windows to the
// transport.
func (c *Connection) SaveUptime(ctx context.Context) error {
	return c.tr.SaveUptime(ctx, c.accountID, c.healthMonitor.Uptime())
}

// --- trade operations ---

// Trade validates req and issues it as a single transport trade call. The
// transport's error (a TransportError or TradeError) is returned unchanged.
func (c *Connection) Trade(ctx context.Context, req *models.TradeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return c.tr.Trade(ctx, c.accountID, req)
}

// --- history lifecycle ---

// RemoveHistory clears local history storage then the remote copy for
// application (or all applications, if empty).
func (c *Connection) RemoveHistory(ctx context.Context, application string) error {
	if err := c.historyStore.Clear(ctx); err != nil {
		return err
	}
	return c.tr.RemoveHistory(ctx, c.accountID, application)
}

// RemoveApplication removes all remote state for this account's
// application tag.
func (c *Connection) RemoveApplication(ctx context.Context) error {
	return c.tr.RemoveApplication(ctx, c.accountID)
}

// --- subscription management ---

// SubscribeToMarketData records symbol in the subscription set and
// delegates to the transport.
func (c *Connection) SubscribeToMarketData(ctx context.Context, symbol string, instanceIndex int) error {
	c.mu.Lock()
	c.subscribedSymbols[symbol] = struct{}{}
	c.mu.Unlock()
	return c.tr.SubscribeToMarketData(ctx, c.accountID, instanceIndex, symbol)
}

// UnsubscribeFromMarketData delegates to the transport. It adds symbol to
// the subscription set rather than removing it, mirroring an apparent
// bug in the source SDK (see spec.md §9 open question): flagged and
// preserved rather than silently fixed.
func (c *Connection) UnsubscribeFromMarketData(ctx context.Context, symbol string, instanceIndex int) error {
	c.mu.Lock()
	c.subscribedSymbols[symbol] = struct{}{}
	c.mu.Unlock()
	return c.tr.UnsubscribeFromMarketData(ctx, c.accountID, instanceIndex, symbol)
}

// --- synchronization barrier, delegated to the Sync Controller ---

// IsSynchronized reports whether instanceIndex (or any instance, if nil)
// has finished synchronization.
func (c *Connection) IsSynchronized(instanceIndex *int, synchronizationID string) bool {
	return c.syncCtl.IsSynchronized(instanceIndex, synchronizationID)
}

// WaitSynchronized blocks until synchronization completes or opts'
// timeout passes.
func (c *Connection) WaitSynchronized(ctx context.Context, opts syncctl.WaitSynchronizedOptions) error {
	return c.syncCtl.WaitSynchronized(ctx, opts)
}

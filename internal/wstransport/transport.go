// Package wstransport is a concrete transport.Transport over a
// gorilla/websocket connection to the cloud-hosted terminal service.
// Wire framing details are explicitly out of scope (spec.md §1
// Non-goals: "protocol bytes on the wire") — this package picks a
// reasonable JSON-RPC-shaped envelope and concentrates on driving the
// packet orderer and listener dispatch correctly. Grounded on the
// teacher's src/server/client.go read/write pump pair and ping/pong
// keepalive constants, turned from a server accepting connections into a
// client dialing out.
package wstransport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"termbridge/internal/bridgeerr"
	"termbridge/internal/logger"
	"termbridge/internal/models"
	"termbridge/internal/orderer"
	"termbridge/internal/transport"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024 * 1024
)

// frame is the single envelope shape used for every direction: outbound
// requests, their responses, streamed events, and lifecycle signals.
type frame struct {
	Kind string `json:"kind"` // "request" | "response" | "event" | "lifecycle"

	// request / response
	ID     string          `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`

	// event (dispatched through the packet orderer) / lifecycle
	AccountID         string            `json:"accountId,omitempty"`
	InstanceIndex     int               `json:"instanceIndex,omitempty"`
	Replicas          int               `json:"replicas,omitempty"`
	Lifecycle         string            `json:"lifecycle,omitempty"` // "connected" | "disconnected" | "reconnected"
	Type              models.PacketType `json:"type,omitempty"`
	SequenceNumber    *int64            `json:"sequenceNumber,omitempty"`
	SequenceTimestamp int64             `json:"sequenceTimestamp,omitempty"`
	SynchronizationID string            `json:"synchronizationId,omitempty"`
	Payload           json.RawMessage   `json:"payload,omitempty"`
}

// Transport dials one websocket connection and multiplexes every account
// bound to it over that connection.
type Transport struct {
	url          string
	dialTimeout  time.Duration
	log          *logger.Logger
	ord          *orderer.Orderer

	mu   sync.Mutex
	conn *websocket.Conn

	writeCh chan frame
	stopCh  chan struct{}
	wg      sync.WaitGroup

	nextID  uint64
	reqMu   sync.Mutex
	pending map[string]chan frame

	listenersMu        sync.RWMutex
	syncListeners      map[string][]transport.SynchronizationListener
	reconnectListeners map[string][]transport.ReconnectListener
}

// New builds a Transport dialing url, with orderingTimeout forwarded to
// the embedded packet orderer (spec.md §4.1; zero selects the orderer's
// default).
func New(url string, dialTimeout, orderingTimeout time.Duration, log *logger.Logger) *Transport {
	t := &Transport{
		url:                url,
		dialTimeout:        dialTimeout,
		log:                log,
		writeCh:            make(chan frame, 256),
		stopCh:             make(chan struct{}),
		pending:            make(map[string]chan frame),
		syncListeners:      make(map[string][]transport.SynchronizationListener),
		reconnectListeners: make(map[string][]transport.ReconnectListener),
	}
	t.ord = orderer.New(orderingTimeout, t.handleOutOfOrder, log)
	return t
}

// Connect dials the websocket endpoint and starts the read/write pumps
// and the packet orderer's gap-sweep task.
func (t *Transport) Connect(ctx context.Context) error {
	dialer := websocket.Dialer{HandshakeTimeout: t.dialTimeout}
	conn, _, err := dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return bridgeerr.NewTransportError("connect", fmt.Errorf("dial %s: %w", t.url, err))
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	t.ord.Start()

	t.wg.Add(2)
	go t.readPump()
	go t.writePump()
	return nil
}

// Close tears down the connection and background tasks.
func (t *Transport) Close() error {
	close(t.stopCh)
	t.ord.Stop()

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	t.wg.Wait()
	return nil
}

func (t *Transport) readPump() {
	defer t.wg.Done()

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				t.log.Warning("websocket read error: %v", err)
			}
			return
		}

		switch f.Kind {
		case "response":
			t.deliverResponse(f)
		case "event":
			t.dispatchEvent(&f)
		case "lifecycle":
			t.dispatchLifecycle(&f)
		}
	}
}

func (t *Transport) writePump() {
	defer t.wg.Done()

	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-t.stopCh:
			return
		case f := <-t.writeCh:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(f); err != nil {
				t.log.Warning("websocket write error: %v", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (t *Transport) deliverResponse(f frame) {
	t.reqMu.Lock()
	ch, ok := t.pending[f.ID]
	t.reqMu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- f:
	default:
	}
}

// call issues a request/response round trip framed as method/params and
// returns the raw result payload.
func (t *Transport) call(ctx context.Context, method string, params interface{}) (json.RawMessage, error) {
	paramsRaw, err := json.Marshal(params)
	if err != nil {
		return nil, bridgeerr.NewTransportError(method, err)
	}

	id := fmt.Sprintf("%d", atomic.AddUint64(&t.nextID, 1))
	respCh := make(chan frame, 1)

	t.reqMu.Lock()
	t.pending[id] = respCh
	t.reqMu.Unlock()
	defer func() {
		t.reqMu.Lock()
		delete(t.pending, id)
		t.reqMu.Unlock()
	}()

	select {
	case t.writeCh <- frame{Kind: "request", ID: id, Method: method, Params: paramsRaw}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case resp := <-respCh:
		if resp.Error != "" {
			return nil, bridgeerr.NewTransportError(method, errors.New(resp.Error))
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (t *Transport) listenersFor(accountID string) []transport.SynchronizationListener {
	t.listenersMu.RLock()
	defer t.listenersMu.RUnlock()
	out := make([]transport.SynchronizationListener, len(t.syncListeners[accountID]))
	copy(out, t.syncListeners[accountID])
	return out
}

func (t *Transport) reconnectListenersFor(accountID string) []transport.ReconnectListener {
	t.listenersMu.RLock()
	defer t.listenersMu.RUnlock()
	out := make([]transport.ReconnectListener, len(t.reconnectListeners[accountID]))
	copy(out, t.reconnectListeners[accountID])
	return out
}

func (t *Transport) dispatchLifecycle(f *frame) {
	ctx := context.Background()
	switch f.Lifecycle {
	case "connected":
		for _, l := range t.listenersFor(f.AccountID) {
			l.OnConnected(ctx, f.InstanceIndex, f.Replicas)
		}
	case "disconnected":
		for _, l := range t.listenersFor(f.AccountID) {
			l.OnDisconnected(ctx, f.InstanceIndex)
		}
	case "reconnected":
		for _, l := range t.reconnectListenersFor(f.AccountID) {
			l.OnReconnected(ctx)
		}
	}
}

func (t *Transport) dispatchEvent(f *frame) {
	packet := &models.Packet{
		AccountID:         f.AccountID,
		InstanceIndex:     f.InstanceIndex,
		Type:              f.Type,
		SequenceNumber:    f.SequenceNumber,
		SequenceTimestamp: f.SequenceTimestamp,
		SynchronizationID: f.SynchronizationID,
		ReceivedAt:        time.Now(),
		Payload:           f.Payload,
	}

	ctx := context.Background()
	for _, ordered := range t.ord.RestoreOrder(packet) {
		t.dispatchOrdered(ctx, ordered)
	}
}

func (t *Transport) dispatchOrdered(ctx context.Context, p *models.Packet) {
	listeners := t.listenersFor(p.AccountID)

	switch p.Type {
	case models.PacketDealSynchronizationFinished:
		for _, l := range listeners {
			l.OnDealSynchronizationFinished(ctx, p.InstanceIndex, p.SynchronizationID)
		}
	case models.PacketOrderSynchronizationFinished:
		for _, l := range listeners {
			l.OnOrderSynchronizationFinished(ctx, p.InstanceIndex, p.SynchronizationID)
		}
	case models.PacketPrices:
		raw, ok := p.Payload.(json.RawMessage)
		if !ok {
			return
		}
		var price models.SymbolPrice
		if err := json.Unmarshal(raw, &price); err != nil {
			t.log.Warning("malformed price payload for %s: %v", p.AccountID, err)
			return
		}
		for _, l := range listeners {
			l.OnSymbolPriceUpdated(ctx, p.InstanceIndex, &price)
		}
	case models.PacketAccountInformation:
		raw, ok := p.Payload.(json.RawMessage)
		if !ok {
			return
		}
		var info models.AccountInformation
		if err := json.Unmarshal(raw, &info); err != nil {
			t.log.Warning("malformed account information payload for %s: %v", p.AccountID, err)
			return
		}
		for _, l := range listeners {
			l.OnAccountInformationUpdated(ctx, p.InstanceIndex, &info)
		}
	case models.PacketHistoryOrders:
		raw, ok := p.Payload.(json.RawMessage)
		if !ok {
			return
		}
		var orders []models.HistoryOrder
		if err := json.Unmarshal(raw, &orders); err != nil {
			t.log.Warning("malformed history orders payload for %s: %v", p.AccountID, err)
			return
		}
		for i := range orders {
			for _, l := range listeners {
				l.OnHistoryOrderAdded(ctx, p.InstanceIndex, &orders[i])
			}
		}
	case models.PacketDeals:
		raw, ok := p.Payload.(json.RawMessage)
		if !ok {
			return
		}
		var deals []models.Deal
		if err := json.Unmarshal(raw, &deals); err != nil {
			t.log.Warning("malformed deals payload for %s: %v", p.AccountID, err)
			return
		}
		for i := range deals {
			for _, l := range listeners {
				l.OnDealAdded(ctx, p.InstanceIndex, &deals[i])
			}
		}
	case models.PacketSynchronizationStarted:
		// session reset is handled entirely inside the orderer; no
		// dedicated listener hook fires for this packet type.
	}
}

// handleOutOfOrder is the orderer.OutOfOrderHandler forwarding a gap
// alert to every listener registered for accountID.
func (t *Transport) handleOutOfOrder(accountID string, instanceIndex int, expectedSequenceNumber, actualSequenceNumber int64, packet *models.Packet, receivedAt time.Time) {
	for _, l := range t.listenersFor(accountID) {
		l.OnOutOfOrderPacket(accountID, instanceIndex, expectedSequenceNumber, actualSequenceNumber, packet, receivedAt)
	}
}

// --- transport.Transport: outbound calls ---

func (t *Transport) Subscribe(ctx context.Context, accountID string) error {
	_, err := t.call(ctx, "subscribe", map[string]string{"accountId": accountID})
	return err
}

func (t *Transport) Unsubscribe(ctx context.Context, accountID string) error {
	_, err := t.call(ctx, "unsubscribe", map[string]string{"accountId": accountID})
	return err
}

func (t *Transport) Reconnect(ctx context.Context, accountID string) error {
	_, err := t.call(ctx, "reconnect", map[string]string{"accountId": accountID})
	return err
}

func (t *Transport) Synchronize(ctx context.Context, accountID string, instanceIndex int, synchronizationID string, startingHistoryOrderTime, startingDealTime time.Time) error {
	_, err := t.call(ctx, "synchronize", map[string]interface{}{
		"accountId":                accountID,
		"instanceIndex":            instanceIndex,
		"synchronizationId":        synchronizationID,
		"startingHistoryOrderTime": startingHistoryOrderTime,
		"startingDealTime":         startingDealTime,
	})
	return err
}

func (t *Transport) WaitSynchronized(ctx context.Context, accountID string, instanceIndex *int, applicationPattern string, timeoutSeconds int) error {
	_, err := t.call(ctx, "waitSynchronized", map[string]interface{}{
		"accountId":           accountID,
		"instanceIndex":       instanceIndex,
		"applicationPattern":  applicationPattern,
		"timeoutSeconds":      timeoutSeconds,
	})
	return err
}

func (t *Transport) SubscribeToMarketData(ctx context.Context, accountID string, instanceIndex int, symbol string) error {
	_, err := t.call(ctx, "subscribeToMarketData", map[string]interface{}{
		"accountId": accountID, "instanceIndex": instanceIndex, "symbol": symbol,
	})
	return err
}

func (t *Transport) UnsubscribeFromMarketData(ctx context.Context, accountID string, instanceIndex int, symbol string) error {
	_, err := t.call(ctx, "unsubscribeFromMarketData", map[string]interface{}{
		"accountId": accountID, "instanceIndex": instanceIndex, "symbol": symbol,
	})
	return err
}

func (t *Transport) Trade(ctx context.Context, accountID string, request *models.TradeRequest) error {
	result, err := t.call(ctx, "trade", map[string]interface{}{"accountId": accountID, "request": request})
	if err != nil {
		return err
	}
	var tradeResult struct {
		StringCode string `json:"stringCode"`
		Message    string `json:"message"`
	}
	if err := json.Unmarshal(result, &tradeResult); err != nil {
		return bridgeerr.NewTransportError("trade", err)
	}
	if tradeResult.StringCode != "" && tradeResult.StringCode != "TRADE_RETCODE_DONE" {
		return &bridgeerr.TradeError{AccountID: accountID, Description: tradeResult.Message}
	}
	return nil
}

func (t *Transport) RemoveHistory(ctx context.Context, accountID string, application string) error {
	_, err := t.call(ctx, "removeHistory", map[string]string{"accountId": accountID, "application": application})
	return err
}

func (t *Transport) RemoveApplication(ctx context.Context, accountID string) error {
	_, err := t.call(ctx, "removeApplication", map[string]string{"accountId": accountID})
	return err
}

// --- transport.Transport: read queries ---

func (t *Transport) AccountInformation(ctx context.Context, accountID string) (*models.AccountInformation, error) {
	result, err := t.call(ctx, "getAccountInformation", map[string]string{"accountId": accountID})
	if err != nil {
		return nil, err
	}
	var info models.AccountInformation
	if err := json.Unmarshal(result, &info); err != nil {
		return nil, bridgeerr.NewTransportError("getAccountInformation", err)
	}
	return &info, nil
}

func (t *Transport) Positions(ctx context.Context, accountID string) ([]models.Position, error) {
	result, err := t.call(ctx, "getPositions", map[string]string{"accountId": accountID})
	if err != nil {
		return nil, err
	}
	var positions []models.Position
	if err := json.Unmarshal(result, &positions); err != nil {
		return nil, bridgeerr.NewTransportError("getPositions", err)
	}
	return positions, nil
}

func (t *Transport) Orders(ctx context.Context, accountID string) ([]models.Order, error) {
	result, err := t.call(ctx, "getOrders", map[string]string{"accountId": accountID})
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(result, &orders); err != nil {
		return nil, bridgeerr.NewTransportError("getOrders", err)
	}
	return orders, nil
}

func (t *Transport) HistoryOrdersByTicket(ctx context.Context, accountID, ticket string) ([]models.HistoryOrder, error) {
	return t.historyOrders(ctx, "getHistoryOrdersByTicket", map[string]string{"accountId": accountID, "ticket": ticket})
}

func (t *Transport) HistoryOrdersByPosition(ctx context.Context, accountID, positionID string) ([]models.HistoryOrder, error) {
	return t.historyOrders(ctx, "getHistoryOrdersByPosition", map[string]string{"accountId": accountID, "positionId": positionID})
}

func (t *Transport) HistoryOrdersByTimeRange(ctx context.Context, accountID string, from, to time.Time) ([]models.HistoryOrder, error) {
	return t.historyOrders(ctx, "getHistoryOrdersByTimeRange", map[string]interface{}{"accountId": accountID, "from": from, "to": to})
}

func (t *Transport) historyOrders(ctx context.Context, method string, params interface{}) ([]models.HistoryOrder, error) {
	result, err := t.call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	var orders []models.HistoryOrder
	if err := json.Unmarshal(result, &orders); err != nil {
		return nil, bridgeerr.NewTransportError(method, err)
	}
	return orders, nil
}

func (t *Transport) DealsByTicket(ctx context.Context, accountID, ticket string) ([]models.Deal, error) {
	return t.deals(ctx, "getDealsByTicket", map[string]string{"accountId": accountID, "ticket": ticket})
}

func (t *Transport) DealsByPosition(ctx context.Context, accountID, positionID string) ([]models.Deal, error) {
	return t.deals(ctx, "getDealsByPosition", map[string]string{"accountId": accountID, "positionId": positionID})
}

func (t *Transport) DealsByTimeRange(ctx context.Context, accountID string, from, to time.Time) ([]models.Deal, error) {
	return t.deals(ctx, "getDealsByTimeRange", map[string]interface{}{"accountId": accountID, "from": from, "to": to})
}

func (t *Transport) deals(ctx context.Context, method string, params interface{}) ([]models.Deal, error) {
	result, err := t.call(ctx, method, params)
	if err != nil {
		return nil, err
	}
	var deals []models.Deal
	if err := json.Unmarshal(result, &deals); err != nil {
		return nil, bridgeerr.NewTransportError(method, err)
	}
	return deals, nil
}

func (t *Transport) SymbolSpecification(ctx context.Context, accountID, symbol string) (*models.SymbolSpecification, error) {
	result, err := t.call(ctx, "getSymbolSpecification", map[string]string{"accountId": accountID, "symbol": symbol})
	if err != nil {
		return nil, err
	}
	var spec models.SymbolSpecification
	if err := json.Unmarshal(result, &spec); err != nil {
		return nil, bridgeerr.NewTransportError("getSymbolSpecification", err)
	}
	return &spec, nil
}

func (t *Transport) SymbolPrice(ctx context.Context, accountID, symbol string) (*models.SymbolPrice, error) {
	result, err := t.call(ctx, "getSymbolPrice", map[string]string{"accountId": accountID, "symbol": symbol})
	if err != nil {
		return nil, err
	}
	var price models.SymbolPrice
	if err := json.Unmarshal(result, &price); err != nil {
		return nil, bridgeerr.NewTransportError("getSymbolPrice", err)
	}
	return &price, nil
}

func (t *Transport) SaveUptime(ctx context.Context, accountID string, uptime models.Uptime) error {
	_, err := t.call(ctx, "saveUptime", map[string]interface{}{"accountId": accountID, "uptime": uptime})
	return err
}

// --- transport.Transport: listener registry ---

func (t *Transport) AddSynchronizationListener(accountID string, listener transport.SynchronizationListener) {
	t.listenersMu.Lock()
	defer t.listenersMu.Unlock()
	t.syncListeners[accountID] = append(t.syncListeners[accountID], listener)
}

func (t *Transport) RemoveSynchronizationListener(accountID string, listener transport.SynchronizationListener) {
	t.listenersMu.Lock()
	defer t.listenersMu.Unlock()
	list := t.syncListeners[accountID]
	for i, l := range list {
		if l == listener {
			t.syncListeners[accountID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

func (t *Transport) AddReconnectListener(accountID string, listener transport.ReconnectListener) {
	t.listenersMu.Lock()
	defer t.listenersMu.Unlock()
	t.reconnectListeners[accountID] = append(t.reconnectListeners[accountID], listener)
}

func (t *Transport) RemoveReconnectListener(accountID string, listener transport.ReconnectListener) {
	t.listenersMu.Lock()
	defer t.listenersMu.Unlock()
	list := t.reconnectListeners[accountID]
	for i, l := range list {
		if l == listener {
			t.reconnectListeners[accountID] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

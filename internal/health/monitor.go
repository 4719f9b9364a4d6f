// Package health implements the Health Monitor (C4): per-second uptime
// sampling over sliding windows and a quote-freshness heuristic, per
// spec.md §3 and §4.4.
package health

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"termbridge/internal/models"
	"termbridge/internal/transport"
)

const (
	oneHourSamples = 3600
	oneDaySamples  = 86400
	oneWeekSamples = 604800

	quoteFreshnessWindow = 60 * time.Second
	tickInterval         = 1 * time.Second
)

// Source is the capability interface the Health Monitor reads back
// through, avoiding the cyclic ownership spec.md §9 warns against: the
// Connection Facade owns the Health Monitor, and the Health Monitor reads
// facade state through this injected interface rather than a shared
// struct.
type Source interface {
	Connected() bool
	ConnectedToBroker() bool
	Synchronized() bool
	SubscribedSymbols() []string
	SymbolPrice(symbol string) *models.SymbolPrice
	SymbolSpecification(symbol string) *models.SymbolSpecification
}

type symbolFreshness struct {
	brokerTime time.Time
	observedAt time.Time
}

// Monitor ticks every second, samples the owning connection's four health
// flags, and appends a combined pass/fail bit to three ring buffers.
type Monitor struct {
	transport.BaseListener

	source Source

	mu         sync.RWMutex
	freshness  map[string]symbolFreshness
	hour, day, week *ring

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New builds a Monitor reading connection state through source.
func New(source Source) *Monitor {
	return &Monitor{
		source:    source,
		freshness: make(map[string]symbolFreshness),
		hour:      newRing(oneHourSamples),
		day:       newRing(oneDaySamples),
		week:      newRing(oneWeekSamples),
	}
}

// Start begins the per-second sampling task.
func (m *Monitor) Start() {
	m.mu.Lock()
	m.stopCh = make(chan struct{})
	stop := m.stopCh
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.tick()
			}
		}
	}()
}

// Stop cancels the sampling task.
func (m *Monitor) Stop() {
	m.mu.Lock()
	stop := m.stopCh
	m.stopCh = nil
	m.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	m.wg.Wait()
}

func (m *Monitor) tick() {
	sample := m.sample()
	m.mu.Lock()
	allHealthy := sample.AllHealthy()
	m.hour.push(allHealthy)
	m.day.push(allHealthy)
	m.week.push(allHealthy)
	m.mu.Unlock()
}

// sample takes the current {connected, connectedToBroker, synchronized,
// quotesHealthy} snapshot.
func (m *Monitor) sample() models.HealthSample {
	return models.HealthSample{
		Connected:         m.source.Connected(),
		ConnectedToBroker: m.source.ConnectedToBroker(),
		Synchronized:      m.source.Synchronized(),
		QuotesHealthy:     m.quotesHealthy(time.Now()),
	}
}

// quotesHealthy implements the quote-freshness heuristic of spec.md §3:
// a symbol counts if its latest price is in-session for its weekday and
// was observed within the last 60 seconds; quotes are healthy if no
// subscribed symbols exist, or at least one counts.
func (m *Monitor) quotesHealthy(now time.Time) bool {
	symbols := m.source.SubscribedSymbols()
	if len(symbols) == 0 {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, symbol := range symbols {
		f, ok := m.freshness[symbol]
		if !ok {
			continue
		}
		if now.Sub(f.observedAt) > quoteFreshnessWindow {
			continue
		}
		spec := m.source.SymbolSpecification(symbol)
		if spec != nil && spec.InSession(f.brokerTime) {
			return true
		}
	}
	return false
}

// OnSymbolPriceUpdated records the per-symbol last broker-time and last
// wall-clock used by the freshness heuristic.
func (m *Monitor) OnSymbolPriceUpdated(ctx context.Context, instanceIndex int, price *models.SymbolPrice) {
	if price == nil {
		return
	}
	m.mu.Lock()
	m.freshness[price.Symbol] = symbolFreshness{brokerTime: price.BrokerTime, observedAt: time.Now()}
	m.mu.Unlock()
}

// Uptime reports the rounded percent uptime over the three sliding
// windows.
func (m *Monitor) Uptime() models.Uptime {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return models.Uptime{
		OneHour: m.hour.meanPercent(),
		OneDay:  m.day.meanPercent(),
		OneWeek: m.week.meanPercent(),
	}
}

// HealthStatus reports the human-facing health report of spec.md §4.4.
func (m *Monitor) HealthStatus() models.HealthStatus {
	sample := m.sample()
	healthy := sample.AllHealthy()

	status := models.HealthStatus{
		Connected:             sample.Connected,
		ConnectedToBroker:     sample.ConnectedToBroker,
		Synchronized:          sample.Synchronized,
		QuoteStreamingHealthy: sample.QuotesHealthy,
		Healthy:               healthy,
	}

	if healthy {
		status.Message = "Connection to broker is stable. No health issues detected."
		return status
	}

	var reasons []string
	if !sample.Connected {
		reasons = append(reasons, "connection to API server is not established or lost")
	}
	if !sample.ConnectedToBroker {
		reasons = append(reasons, "connection to broker is not established or lost")
	}
	if !sample.Synchronized {
		reasons = append(reasons, "local terminal state is not synchronized to broker")
	}
	if !sample.QuotesHealthy {
		reasons = append(reasons, "quotes are not streamed from the broker within reasonable time")
	}
	status.Message = fmt.Sprintf("Connection is not healthy because %s.", strings.Join(reasons, " and "))
	return status
}

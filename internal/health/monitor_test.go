package health

import (
	"testing"
	"time"

	"termbridge/internal/models"
)

type fakeSource struct {
	connected, connectedToBroker, synchronized bool
	symbols                                    []string
	prices                                      map[string]*models.SymbolPrice
	specs                                        map[string]*models.SymbolSpecification
}

func (f *fakeSource) Connected() bool         { return f.connected }
func (f *fakeSource) ConnectedToBroker() bool { return f.connectedToBroker }
func (f *fakeSource) Synchronized() bool      { return f.synchronized }
func (f *fakeSource) SubscribedSymbols() []string { return f.symbols }
func (f *fakeSource) SymbolPrice(symbol string) *models.SymbolPrice {
	return f.prices[symbol]
}
func (f *fakeSource) SymbolSpecification(symbol string) *models.SymbolSpecification {
	return f.specs[symbol]
}

func allDaySpec() *models.SymbolSpecification {
	sessions := make(map[time.Weekday][]models.QuoteSession)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		sessions[wd] = []models.QuoteSession{{StartMinute: 0, EndMinute: 24 * 60}}
	}
	return &models.SymbolSpecification{Symbol: "EURUSD", QuoteSessions: sessions}
}

func TestHealthStatusAllHealthy(t *testing.T) {
	src := &fakeSource{
		connected: true, connectedToBroker: true, synchronized: true,
		symbols: []string{"EURUSD"},
		prices:  map[string]*models.SymbolPrice{},
		specs:   map[string]*models.SymbolSpecification{"EURUSD": allDaySpec()},
	}
	m := New(src)
	m.OnSymbolPriceUpdated(nil, 0, &models.SymbolPrice{Symbol: "EURUSD", BrokerTime: time.Now()})

	status := m.HealthStatus()
	if !status.Healthy {
		t.Fatalf("expected healthy status, got message: %s", status.Message)
	}
	if status.Message != "Connection to broker is stable. No health issues detected." {
		t.Fatalf("unexpected message: %s", status.Message)
	}
}

func TestHealthStatusNoSubscribedSymbolsIsVacuouslyHealthyForQuotes(t *testing.T) {
	src := &fakeSource{connected: true, connectedToBroker: true, synchronized: true}
	m := New(src)

	status := m.HealthStatus()
	if !status.QuoteStreamingHealthy {
		t.Fatalf("expected quotesHealthy true with no subscribed symbols")
	}
	if !status.Healthy {
		t.Fatalf("expected overall healthy")
	}
}

func TestHealthStatusMessageOrderingAndJoining(t *testing.T) {
	src := &fakeSource{connected: false, connectedToBroker: false, synchronized: false}
	m := New(src)

	status := m.HealthStatus()
	want := "Connection is not healthy because connection to API server is not established or lost and connection to broker is not established or lost and local terminal state is not synchronized to broker."
	if status.Message != want {
		t.Fatalf("unexpected message:\n got: %s\nwant: %s", status.Message, want)
	}
}

func TestQuotesUnhealthyWhenStale(t *testing.T) {
	src := &fakeSource{
		connected: true, connectedToBroker: true, synchronized: true,
		symbols: []string{"EURUSD"},
		specs:   map[string]*models.SymbolSpecification{"EURUSD": allDaySpec()},
	}
	m := New(src)
	m.OnSymbolPriceUpdated(nil, 0, &models.SymbolPrice{Symbol: "EURUSD", BrokerTime: time.Now()})
	m.mu.Lock()
	m.freshness["EURUSD"] = symbolFreshness{brokerTime: time.Now(), observedAt: time.Now().Add(-2 * time.Minute)}
	m.mu.Unlock()

	if m.quotesHealthy(time.Now()) {
		t.Fatalf("expected quotesHealthy false for a stale price")
	}
}

func TestUptimeReflectsTicks(t *testing.T) {
	src := &fakeSource{connected: true, connectedToBroker: true, synchronized: true}
	m := New(src)
	for i := 0; i < 4; i++ {
		m.tick()
	}
	uptime := m.Uptime()
	if uptime.OneHour != 100 {
		t.Fatalf("expected 100%% uptime with no subscribed symbols, got %d", uptime.OneHour)
	}
}

// Package quotesession derives a default per-symbol, per-weekday
// quote-session schedule from a trading calendar, used as the Terminal
// State's fallback when the server hasn't yet pushed an explicit
// specification for a symbol. Grounded on the teacher's
// src/utils/trading_calendar.go MIC-suffix mapping and
// src/utils/market_scheduler.go calendar cache.
package quotesession

import (
	"strings"
	"sync"
	"time"

	"github.com/scmhub/calendar"

	"termbridge/internal/models"
)

// suffixToMIC maps a common symbol suffix convention to an ISO 10383 MIC,
// mirroring the teacher's GetCalendar suffix table.
var suffixToMIC = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".BR": "xbru",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".CO": "xcse",
	".HE": "xhel",
	".VI": "xwbo",
	".SW": "xswx",
	".TO": "xtse",
	".V":  "xtsx",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".TW": "xtai",
	".SS": "xshg",
	".SZ": "xshe",
}

const defaultMIC = "xnys"

// Provider caches one *models.SymbolSpecification per distinct calendar,
// since many symbols share a MIC.
type Provider struct {
	mu    sync.Mutex
	cache map[string]*models.SymbolSpecification
}

// NewProvider builds an empty Provider.
func NewProvider() *Provider {
	return &Provider{cache: make(map[string]*models.SymbolSpecification)}
}

func micFor(symbol string) string {
	for suffix, mic := range suffixToMIC {
		if strings.HasSuffix(symbol, suffix) {
			return mic
		}
	}
	return defaultMIC
}

// Specification returns a calendar-derived quote-session schedule for
// symbol. If the calendar library has no data for the resolved MIC, the
// default (NYSE) calendar is used instead; the fixed Mon–Fri 09:30–16:00
// America/New_York schedule is returned only when neither calendar yields
// a weekday session.
func (p *Provider) Specification(symbol string) *models.SymbolSpecification {
	mic := micFor(symbol)

	p.mu.Lock()
	defer p.mu.Unlock()
	if spec, ok := p.cache[mic]; ok {
		return cloneForSymbol(spec, symbol)
	}

	spec := buildFromCalendar(mic)
	p.cache[mic] = spec
	return cloneForSymbol(spec, symbol)
}

func cloneForSymbol(spec *models.SymbolSpecification, symbol string) *models.SymbolSpecification {
	out := &models.SymbolSpecification{Symbol: symbol, QuoteSessions: spec.QuoteSessions}
	return out
}

func buildFromCalendar(mic string) *models.SymbolSpecification {
	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar(defaultMIC)
	}
	if cal == nil {
		return fallbackSpecification()
	}

	sessions := make(map[time.Weekday][]models.QuoteSession)
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		ref := nextWeekday(wd)
		if !cal.IsBusinessDay(ref) {
			continue
		}
		open, close, ok := sessionBounds(cal, ref)
		if !ok {
			continue
		}
		sessions[wd] = []models.QuoteSession{{StartMinute: open, EndMinute: close}}
	}
	if len(sessions) == 0 {
		return fallbackSpecification()
	}
	return &models.SymbolSpecification{QuoteSessions: sessions}
}

// sessionBounds samples the calendar's IsOpen predicate minute-by-minute
// over ref's day to recover an open/close window. The scmhub/calendar
// library exposes IsOpen(t time.Time) rather than a bulk schedule query,
// so the bounds are derived by scanning.
func sessionBounds(cal *calendar.Calendar, ref time.Time) (openMinute, closeMinute int, ok bool) {
	loc := cal.Loc
	if loc == nil {
		loc = time.UTC
	}
	dayStart := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc)

	first, last := -1, -1
	for m := 0; m < 24*60; m++ {
		t := dayStart.Add(time.Duration(m) * time.Minute)
		if cal.IsOpen(t) {
			if first == -1 {
				first = m
			}
			last = m
		}
	}
	if first == -1 {
		return 0, 0, false
	}
	return first, last + 1, true
}

func nextWeekday(wd time.Weekday) time.Time {
	now := time.Now().UTC()
	offset := (int(wd) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, offset)
}

// fallbackSpecification returns a Mon-Fri 09:30-16:00 window. Callers are
// expected to convert timestamps to America/New_York before calling
// SymbolSpecification.InSession, matching the teacher's TradingCalendar
// fallback contract.
func fallbackSpecification() *models.SymbolSpecification {
	session := []models.QuoteSession{{StartMinute: 9*60 + 30, EndMinute: 16 * 60}}
	sessions := make(map[time.Weekday][]models.QuoteSession)
	for _, wd := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday} {
		sessions[wd] = session
	}
	return &models.SymbolSpecification{QuoteSessions: sessions}
}

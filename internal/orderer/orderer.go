// Package orderer implements the packet orderer (C1): a per-instance
// buffer that reorders out-of-sequence frames from the streaming
// transport, prunes stale sessions, and emits a gap alert after a
// configurable silence. Grounded on the bounded-queue, periodic-sweep
// style of the teacher's src/server/hub.go broadcast loop and
// src/utils/ring_buffer.go fixed-capacity eviction.
package orderer

import (
	"sort"
	"sync"
	"time"

	"termbridge/internal/logger"
	"termbridge/internal/models"
)

// WaitListCapacity bounds the number of buffered future packets per
// (account, instance); excess entries are evicted from the low end.
const WaitListCapacity = 100

// DefaultOrderingTimeout is the silence duration after which a stuck
// wait-list head triggers a gap alert.
const DefaultOrderingTimeout = 60 * time.Second

// gapSweepInterval is the cadence of the periodic gap-alert task.
const gapSweepInterval = 1 * time.Second

// OutOfOrderHandler is invoked at most once per (accountID, instanceIndex)
// between successive synchronizationStarted packets, when the wait-list
// head has sat unconsumed longer than the ordering timeout.
type OutOfOrderHandler func(accountID string, instanceIndex int, expectedSequenceNumber, actualSequenceNumber int64, packet *models.Packet, receivedAt time.Time)

type waitEntry struct {
	packet     *models.Packet
	receivedAt time.Time
}

// Orderer reorders packets per spec.md §4.1. It never throws: a
// malformed packet without a sequence number passes straight through,
// and wait-list overflow silently drops the oldest buffered entries.
type Orderer struct {
	mu sync.Mutex

	expected          map[models.InstanceKey]int64
	lastSessionStart  map[models.InstanceKey]int64
	waitList          map[models.InstanceKey][]waitEntry
	outOfOrderEmitted map[models.InstanceKey]bool

	orderingTimeout time.Duration
	onOutOfOrder    OutOfOrderHandler
	log             *logger.Logger

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// New builds an Orderer. orderingTimeout defaults to DefaultOrderingTimeout
// when zero. onOutOfOrder may be nil.
func New(orderingTimeout time.Duration, onOutOfOrder OutOfOrderHandler, log *logger.Logger) *Orderer {
	if orderingTimeout <= 0 {
		orderingTimeout = DefaultOrderingTimeout
	}
	return &Orderer{
		expected:          make(map[models.InstanceKey]int64),
		lastSessionStart:  make(map[models.InstanceKey]int64),
		waitList:          make(map[models.InstanceKey][]waitEntry),
		outOfOrderEmitted: make(map[models.InstanceKey]bool),
		orderingTimeout:   orderingTimeout,
		onOutOfOrder:      onOutOfOrder,
		log:               log,
	}
}

// Start begins the periodic gap-alert sweep (the per-instance maps are
// created by New). Safe to call once per Orderer lifetime.
func (o *Orderer) Start() {
	o.mu.Lock()
	o.stopCh = make(chan struct{})
	stop := o.stopCh
	o.mu.Unlock()

	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(gapSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				o.sweepGaps()
			}
		}
	}()
}

// Stop cancels the periodic gap-alert task.
func (o *Orderer) Stop() {
	o.mu.Lock()
	stop := o.stopCh
	o.stopCh = nil
	o.mu.Unlock()

	if stop != nil {
		close(stop)
	}
	o.wg.Wait()
}

func keyFor(p *models.Packet) models.InstanceKey {
	return models.InstanceKey{AccountID: p.AccountID, InstanceIndex: p.InstanceIndex}
}

// RestoreOrder consumes one input packet and returns zero or more
// ready-to-dispatch packets in ascending sequence order, per spec.md
// §4.1.
func (o *Orderer) RestoreOrder(packet *models.Packet) []*models.Packet {
	if packet.SequenceNumber == nil {
		return []*models.Packet{packet}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	k := keyFor(packet)
	seq := *packet.SequenceNumber

	if packet.Type == models.PacketSynchronizationStarted && packet.SynchronizationID != "" {
		o.outOfOrderEmitted[k] = false
		o.expected[k] = seq
		o.lastSessionStart[k] = packet.SequenceTimestamp
		o.pruneStale(k)

		result := []*models.Packet{packet}
		result = append(result, o.drainConsecutiveLocked(k)...)
		return result
	}

	expected, hasExpected := o.expected[k]
	if !hasExpected {
		// No session has started yet for this key; buffer until one
		// does, same as any other future packet.
		o.bufferLocked(k, packet)
		return nil
	}

	lastStart := o.lastSessionStart[k]
	switch {
	case packet.SequenceTimestamp < lastStart:
		return nil // stale: belongs to a superseded session
	case seq == expected:
		return []*models.Packet{packet} // duplicate of the last delivered packet
	case seq == expected+1:
		o.expected[k] = seq
		result := []*models.Packet{packet}
		result = append(result, o.drainConsecutiveLocked(k)...)
		return result
	default:
		o.bufferLocked(k, packet)
		return nil
	}
}

// pruneStale drops wait-list entries whose SequenceTimestamp precedes the
// current session start, called right after a synchronizationStarted
// packet resets the session.
func (o *Orderer) pruneStale(k models.InstanceKey) {
	list := o.waitList[k]
	if len(list) == 0 {
		return
	}
	lastStart := o.lastSessionStart[k]
	kept := list[:0]
	for _, e := range list {
		if e.packet.SequenceTimestamp >= lastStart {
			kept = append(kept, e)
		}
	}
	if len(kept) == 0 {
		delete(o.waitList, k)
	} else {
		o.waitList[k] = kept
	}
}

// bufferLocked inserts packet into the wait-list sorted by sequence
// number, evicting from the low end once capacity is exceeded.
func (o *Orderer) bufferLocked(k models.InstanceKey, packet *models.Packet) {
	list := o.waitList[k]
	seq := *packet.SequenceNumber

	idx := sort.Search(len(list), func(i int) bool {
		return *list[i].packet.SequenceNumber >= seq
	})
	entry := waitEntry{packet: packet, receivedAt: packet.ReceivedAt}
	list = append(list, waitEntry{})
	copy(list[idx+1:], list[idx:])
	list[idx] = entry

	if len(list) > WaitListCapacity {
		list = list[len(list)-WaitListCapacity:]
	}
	o.waitList[k] = list
}

// drainConsecutiveLocked repeatedly takes the wait-list head while it is
// consecutive with the current expected sequence number, advancing
// expected as needed.
func (o *Orderer) drainConsecutiveLocked(k models.InstanceKey) []*models.Packet {
	var out []*models.Packet
	for {
		list := o.waitList[k]
		if len(list) == 0 {
			delete(o.waitList, k)
			return out
		}
		head := list[0]
		headSeq := *head.packet.SequenceNumber
		expected := o.expected[k]

		switch headSeq {
		case expected:
			out = append(out, head.packet)
			o.waitList[k] = list[1:]
		case expected + 1:
			o.expected[k] = headSeq
			out = append(out, head.packet)
			o.waitList[k] = list[1:]
		default:
			return out
		}

		if len(o.waitList[k]) == 0 {
			delete(o.waitList, k)
			return out
		}
	}
}

// sweepGaps fires onOutOfOrder for any key whose wait-list head has been
// stuck longer than the ordering timeout, at most once per key between
// successive synchronizationStarted events.
func (o *Orderer) sweepGaps() {
	type alert struct {
		accountID     string
		instanceIndex int
		expectedNext  int64
		actual        int64
		packet        *models.Packet
		receivedAt    time.Time
	}
	var alerts []alert
	now := time.Now()

	o.mu.Lock()
	for k, list := range o.waitList {
		if len(list) == 0 || o.outOfOrderEmitted[k] {
			continue
		}
		expected, hasExpected := o.expected[k]
		if !hasExpected {
			continue
		}
		head := list[0]
		if now.Sub(head.receivedAt) <= o.orderingTimeout {
			continue
		}
		o.outOfOrderEmitted[k] = true
		alerts = append(alerts, alert{
			accountID:     k.AccountID,
			instanceIndex: k.InstanceIndex,
			expectedNext:  expected + 1,
			actual:        *head.packet.SequenceNumber,
			packet:        head.packet,
			receivedAt:    head.receivedAt,
		})
	}
	o.mu.Unlock()

	if o.onOutOfOrder == nil {
		return
	}
	for _, a := range alerts {
		o.onOutOfOrder(a.accountID, a.instanceIndex, a.expectedNext, a.actual, a.packet, a.receivedAt)
	}
}

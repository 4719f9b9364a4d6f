package orderer

import (
	"testing"
	"time"

	"termbridge/internal/logger"
	"termbridge/internal/models"
)

func seqPacket(accountID string, seq int64, ts int64) *models.Packet {
	s := seq
	return &models.Packet{
		AccountID:         accountID,
		Type:              models.PacketPrices,
		SequenceNumber:    &s,
		SequenceTimestamp: ts,
	}
}

func startPacket(accountID string, seq int64, ts int64) *models.Packet {
	p := seqPacket(accountID, seq, ts)
	p.Type = models.PacketSynchronizationStarted
	p.SynchronizationID = "sync1"
	return p
}

func TestRestoreOrderInSequenceDelivery(t *testing.T) {
	o := New(0, nil, logger.New("test"))

	out := o.RestoreOrder(startPacket("a1", 1, 100))
	if len(out) != 1 {
		t.Fatalf("expected 1 packet, got %d", len(out))
	}

	out = o.RestoreOrder(seqPacket("a1", 2, 101))
	if len(out) != 1 {
		t.Fatalf("expected 1 packet, got %d", len(out))
	}
}

func TestRestoreOrderBuffersFuturePacket(t *testing.T) {
	o := New(0, nil, logger.New("test"))

	o.RestoreOrder(startPacket("a1", 1, 100))

	out := o.RestoreOrder(seqPacket("a1", 3, 102))
	if len(out) != 0 {
		t.Fatalf("expected future packet to be buffered, got %d delivered", len(out))
	}

	out = o.RestoreOrder(seqPacket("a1", 2, 101))
	if len(out) != 2 {
		t.Fatalf("expected gap-filling packet to drain buffered successor, got %d", len(out))
	}
	if *out[0].SequenceNumber != 2 || *out[1].SequenceNumber != 3 {
		t.Fatalf("unexpected delivery order: %v, %v", *out[0].SequenceNumber, *out[1].SequenceNumber)
	}
}

func TestRestoreOrderDuplicateDelivered(t *testing.T) {
	o := New(0, nil, logger.New("test"))

	o.RestoreOrder(startPacket("a1", 1, 100))
	out := o.RestoreOrder(seqPacket("a1", 1, 100))
	if len(out) != 1 {
		t.Fatalf("expected duplicate to be delivered, got %d", len(out))
	}
}

func TestRestoreOrderStalePacketDropped(t *testing.T) {
	o := New(0, nil, logger.New("test"))

	o.RestoreOrder(startPacket("a1", 10, 200))
	out := o.RestoreOrder(seqPacket("a1", 5, 50))
	if len(out) != 0 {
		t.Fatalf("expected stale packet to be dropped, got %d", len(out))
	}
}

func TestRestoreOrderMissingSequenceNumberPassesThrough(t *testing.T) {
	o := New(0, nil, logger.New("test"))
	p := &models.Packet{AccountID: "a1", Type: models.PacketAccountInformation}
	out := o.RestoreOrder(p)
	if len(out) != 1 || out[0] != p {
		t.Fatalf("expected packet without sequence number to pass through unchanged")
	}
}

func TestRestoreOrderEvictsLowEndPastCapacity(t *testing.T) {
	o := New(0, nil, logger.New("test"))
	o.RestoreOrder(startPacket("a1", 1, 100))

	for i := int64(0); i < WaitListCapacity+10; i++ {
		o.RestoreOrder(seqPacket("a1", 100+i, 100))
	}

	o.mu.Lock()
	key := models.InstanceKey{AccountID: "a1", InstanceIndex: 0}
	listLen := len(o.waitList[key])
	lowest := *o.waitList[key][0].packet.SequenceNumber
	o.mu.Unlock()

	if listLen != WaitListCapacity {
		t.Fatalf("expected wait-list capped at %d, got %d", WaitListCapacity, listLen)
	}
	if lowest != 110 {
		t.Fatalf("expected low end evicted, lowest retained sequence = %d", lowest)
	}
}

func TestSweepGapsEmitsOncePerKey(t *testing.T) {
	var calls int
	var lastExpected, lastActual int64

	o := New(20*time.Millisecond, func(accountID string, instanceIndex int, expected, actual int64, packet *models.Packet, receivedAt time.Time) {
		calls++
		lastExpected, lastActual = expected, actual
	}, logger.New("test"))

	o.RestoreOrder(startPacket("a1", 1, 100))
	stuck := seqPacket("a1", 5, 100)
	stuck.ReceivedAt = time.Now().Add(-time.Hour)
	o.mu.Lock()
	o.bufferLocked(keyFor(stuck), stuck)
	o.mu.Unlock()

	o.sweepGaps()
	o.sweepGaps()

	if calls != 1 {
		t.Fatalf("expected exactly one gap alert, got %d", calls)
	}
	if lastExpected != 2 || lastActual != 5 {
		t.Fatalf("unexpected gap alert args: expected=%d actual=%d", lastExpected, lastActual)
	}
}

func TestSynchronizationStartedResetsSession(t *testing.T) {
	o := New(0, nil, logger.New("test"))

	o.RestoreOrder(startPacket("a1", 1, 100))
	o.RestoreOrder(seqPacket("a1", 5, 100)) // buffered, future

	out := o.RestoreOrder(startPacket("a1", 50, 500))
	if len(out) != 1 {
		t.Fatalf("expected only the new session-start packet delivered, got %d", len(out))
	}

	key := models.InstanceKey{AccountID: "a1", InstanceIndex: 0}
	o.mu.Lock()
	_, buffered := o.waitList[key]
	o.mu.Unlock()
	if buffered {
		t.Fatalf("expected stale wait-list pruned on new session start")
	}
}

package history

import (
	"context"
	"testing"
	"time"

	"termbridge/internal/models"
)

func TestLastHistoryOrderTimeTracksMax(t *testing.T) {
	s := NewMemoryStorage()
	now := time.Now()

	s.RecordHistoryOrder(0, models.HistoryOrder{ID: "o1", DoneTime: now.Add(-time.Hour)})
	s.RecordHistoryOrder(0, models.HistoryOrder{ID: "o2", DoneTime: now})

	got, err := s.LastHistoryOrderTime(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("expected max time %v, got %v", now, got)
	}
}

func TestLastDealTimeEmptyReturnsZeroTime(t *testing.T) {
	s := NewMemoryStorage()
	got, err := s.LastDealTime(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero time for an instance with no deals, got %v", got)
	}
}

func TestClearWipesAllInstances(t *testing.T) {
	s := NewMemoryStorage()
	s.RecordDeal(0, models.Deal{ID: "d1", Time: time.Now()})
	s.RecordHistoryOrder(1, models.HistoryOrder{ID: "o1", DoneTime: time.Now()})

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if last, _ := s.LastDealTime(context.Background(), 0); !last.IsZero() {
		t.Fatalf("expected deals cleared")
	}
	if last, _ := s.LastHistoryOrderTime(context.Background(), 1); !last.IsZero() {
		t.Fatalf("expected history orders cleared")
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	s := NewMemoryStorage()
	now := time.Now()
	s.RecordDeal(0, models.Deal{ID: "d1", Time: now})

	if last, _ := s.LastDealTime(context.Background(), 1); !last.IsZero() {
		t.Fatalf("expected instance 1 unaffected by instance 0's deal")
	}
}

func TestOnHistoryOrderAddedAdvancesLastHistoryOrderTime(t *testing.T) {
	s := NewMemoryStorage()
	now := time.Now()

	s.OnHistoryOrderAdded(context.Background(), 0, &models.HistoryOrder{ID: "o1", DoneTime: now})

	got, err := s.LastHistoryOrderTime(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("expected lastHistoryOrderTime to advance to %v, got %v", now, got)
	}
}

func TestOnDealAddedAdvancesLastDealTime(t *testing.T) {
	s := NewMemoryStorage()
	now := time.Now()

	s.OnDealAdded(context.Background(), 0, &models.Deal{ID: "d1", Time: now})

	got, err := s.LastDealTime(context.Background(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(now) {
		t.Fatalf("expected lastDealTime to advance to %v, got %v", now, got)
	}
}

func TestOnHistoryOrderAddedIgnoresNil(t *testing.T) {
	s := NewMemoryStorage()
	s.OnHistoryOrderAdded(context.Background(), 0, nil)
	if got, _ := s.LastHistoryOrderTime(context.Background(), 0); !got.IsZero() {
		t.Fatalf("expected nil order to be ignored, got %v", got)
	}
}

package termstate

import (
	"context"
	"testing"

	"termbridge/internal/models"
)

func TestOnConnectedAndDisconnectedFlipFlags(t *testing.T) {
	s := New(nil)
	s.OnConnected(context.Background(), 0, 1)
	if !s.Connected() {
		t.Fatalf("expected Connected true after OnConnected")
	}

	s.OnSymbolPriceUpdated(context.Background(), 0, &models.SymbolPrice{Symbol: "EURUSD"})
	if !s.ConnectedToBroker() {
		t.Fatalf("expected ConnectedToBroker true after a price update")
	}

	s.OnDisconnected(context.Background(), 0)
	if s.Connected() || s.ConnectedToBroker() {
		t.Fatalf("expected both connectedness flags false after OnDisconnected")
	}
}

func TestSpecificationNilWithoutFallbackAndExplicitTakesPriority(t *testing.T) {
	s := New(nil)
	if spec := s.Specification("EURUSD"); spec != nil {
		t.Fatalf("expected nil specification with no fallback provider and none pushed")
	}

	pushed := &models.SymbolSpecification{Symbol: "EURUSD"}
	s.UpsertSpecification(pushed)
	if got := s.Specification("EURUSD"); got != pushed {
		t.Fatalf("expected explicit specification to take priority")
	}
}

func TestUpsertAndRemovePosition(t *testing.T) {
	s := New(nil)
	s.UpsertPosition(models.Position{ID: "p1", Symbol: "EURUSD"})
	if len(s.Positions()) != 1 {
		t.Fatalf("expected 1 position after upsert")
	}
	s.RemovePosition("p1")
	if len(s.Positions()) != 0 {
		t.Fatalf("expected 0 positions after remove")
	}
}

func TestAccountInformationUpdated(t *testing.T) {
	s := New(nil)
	if s.AccountInformation() != nil {
		t.Fatalf("expected nil account information before any update")
	}
	info := &models.AccountInformation{Broker: "Acme"}
	s.OnAccountInformationUpdated(context.Background(), 0, info)
	if s.AccountInformation() != info {
		t.Fatalf("expected account information to be recorded")
	}
}

package models

import "testing"

func TestValidateMarketOrderRequiresSymbol(t *testing.T) {
	req := &TradeRequest{ActionType: ActionBuy}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for market order missing symbol")
	}

	req.Symbol = "EURUSD"
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCommentClientIDCombinedLength(t *testing.T) {
	req := &TradeRequest{
		ActionType: ActionBuy,
		Symbol:     "EURUSD",
		Common:     CommonOptions{Comment: "0123456789", ClientID: "0123456789ABCDEFG"},
	}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for combined comment+clientId length > 26")
	}
}

func TestValidateNegativeSlippageRejected(t *testing.T) {
	slippage := -1.0
	req := &TradeRequest{ActionType: ActionBuy, Symbol: "EURUSD", Common: CommonOptions{Slippage: &slippage}}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for negative slippage")
	}
}

func TestValidatePendingOrderRequiresOpenPrice(t *testing.T) {
	req := &TradeRequest{ActionType: ActionBuyLimit, Symbol: "EURUSD"}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for pending order missing openPrice")
	}

	price := 1.1
	req.OpenPrice = &price
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStopLimitRequiresStopLimitPrice(t *testing.T) {
	price := 1.1
	req := &TradeRequest{ActionType: ActionBuyStopLimit, Symbol: "EURUSD", OpenPrice: &price}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for stop-limit order missing stopLimitPrice")
	}
}

func TestValidatePositionCloseByRequiresBothIDs(t *testing.T) {
	req := &TradeRequest{ActionType: ActionPositionCloseBy, PositionID: "p1"}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error when closeByPositionId is missing")
	}
	req.CloseByPositionID = "p2"
	if err := req.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateUnknownActionTypeRejected(t *testing.T) {
	req := &TradeRequest{ActionType: "BOGUS"}
	if err := req.Validate(); err == nil {
		t.Fatalf("expected error for an unrecognized action type")
	}
}

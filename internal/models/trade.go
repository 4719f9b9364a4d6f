package models

import "termbridge/internal/bridgeerr"

// ActionType discriminates the trade request union of spec.md §6.
type ActionType string

const (
	ActionBuy             ActionType = "ORDER_TYPE_BUY"
	ActionSell            ActionType = "ORDER_TYPE_SELL"
	ActionBuyLimit        ActionType = "ORDER_TYPE_BUY_LIMIT"
	ActionSellLimit       ActionType = "ORDER_TYPE_SELL_LIMIT"
	ActionBuyStop         ActionType = "ORDER_TYPE_BUY_STOP"
	ActionSellStop        ActionType = "ORDER_TYPE_SELL_STOP"
	ActionBuyStopLimit    ActionType = "ORDER_TYPE_BUY_STOP_LIMIT"
	ActionSellStopLimit   ActionType = "ORDER_TYPE_SELL_STOP_LIMIT"
	ActionPositionModify  ActionType = "POSITION_MODIFY"
	ActionPositionPartial ActionType = "POSITION_PARTIAL"
	ActionPositionCloseID ActionType = "POSITION_CLOSE_ID"
	ActionPositionCloseBy ActionType = "POSITION_CLOSE_BY"
	ActionPositionsCloseSymbol ActionType = "POSITIONS_CLOSE_SYMBOL"
	ActionOrderModify     ActionType = "ORDER_MODIFY"
	ActionOrderCancel     ActionType = "ORDER_CANCEL"
)

// ExpirationType is the pending-order expiration discriminator.
type ExpirationType string

const (
	ExpirationGTC       ExpirationType = "ORDER_TIME_GTC"
	ExpirationSpecified ExpirationType = "ORDER_TIME_SPECIFIED"
)

// Expiration describes a pending order's time-in-force.
type Expiration struct {
	Type ExpirationType
	Time *int64 // unix millis, required when Type == ExpirationSpecified
}

// CommonOptions are the fields shared by every trade request variant.
type CommonOptions struct {
	Comment  string
	ClientID string
	Magic    int32
	Slippage *float64 // must be >= 0 when set
}

// MarketOptions are additional fields for market-executed variants.
type MarketOptions struct {
	FillingModes []string
}

// PendingOptions are additional fields for pending-order variants.
type PendingOptions struct {
	Expiration *Expiration
}

// TradeRequest is the sum type over spec.md §6's actionType table. Only
// the fields relevant to ActionType are expected to be set; Validate
// checks the combination.
type TradeRequest struct {
	ActionType ActionType
	Common     CommonOptions

	// order-opening variants
	Symbol         string
	Volume         float64
	OpenPrice      *float64
	StopLimitPrice *float64
	StopLoss       *float64
	TakeProfit     *float64
	Market         *MarketOptions
	Pending        *PendingOptions

	// position/order targeting
	PositionID       string
	CloseByPositionID string
	OrderID          string
}

// Validate enforces the field combinations and limits of spec.md §6.
func (r *TradeRequest) Validate() error {
	if len(r.Common.Comment)+len(r.Common.ClientID) > 26 {
		return bridgeerr.NewValidationError("comment+clientId", "combined length must not exceed 26 characters")
	}
	if r.Common.Slippage != nil && *r.Common.Slippage < 0 {
		return bridgeerr.NewValidationError("slippage", "must be >= 0")
	}

	switch r.ActionType {
	case ActionBuy, ActionSell:
		if r.Symbol == "" {
			return bridgeerr.NewValidationError("symbol", "required for market order")
		}
	case ActionBuyLimit, ActionSellLimit, ActionBuyStop, ActionSellStop:
		if r.Symbol == "" || r.OpenPrice == nil {
			return bridgeerr.NewValidationError("openPrice", "required for pending order")
		}
	case ActionBuyStopLimit, ActionSellStopLimit:
		if r.Symbol == "" || r.OpenPrice == nil || r.StopLimitPrice == nil {
			return bridgeerr.NewValidationError("stopLimitPrice", "required for stop-limit order")
		}
	case ActionPositionModify:
		if r.PositionID == "" {
			return bridgeerr.NewValidationError("positionId", "required for POSITION_MODIFY")
		}
	case ActionPositionPartial:
		if r.PositionID == "" || r.Volume <= 0 {
			return bridgeerr.NewValidationError("volume", "required and > 0 for POSITION_PARTIAL")
		}
	case ActionPositionCloseID:
		if r.PositionID == "" {
			return bridgeerr.NewValidationError("positionId", "required for POSITION_CLOSE_ID")
		}
	case ActionPositionCloseBy:
		if r.PositionID == "" || r.CloseByPositionID == "" {
			return bridgeerr.NewValidationError("closeByPositionId", "required for POSITION_CLOSE_BY")
		}
	case ActionPositionsCloseSymbol:
		if r.Symbol == "" {
			return bridgeerr.NewValidationError("symbol", "required for POSITIONS_CLOSE_SYMBOL")
		}
	case ActionOrderModify:
		if r.OrderID == "" || r.OpenPrice == nil {
			return bridgeerr.NewValidationError("openPrice", "required for ORDER_MODIFY")
		}
	case ActionOrderCancel:
		if r.OrderID == "" {
			return bridgeerr.NewValidationError("orderId", "required for ORDER_CANCEL")
		}
	default:
		return bridgeerr.NewValidationError("actionType", "unknown action type")
	}
	return nil
}

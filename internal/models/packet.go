// Package models holds the data model shared by the synchronization core:
// streamed packets, the terminal replica's entities, trade requests and
// health samples.
package models

import "time"

// PacketType enumerates the frame types the packet orderer and the
// dispatch listeners care about. The transport may deliver other packet
// types (account information, position/order upserts, symbol spec
// updates); those pass straight through C1 and are handled by whichever
// listener recognizes Type — the orderer never inspects anything beyond
// the fields below.
type PacketType string

const (
	PacketSynchronizationStarted PacketType = "synchronizationStarted"
	PacketDealSynchronizationFinished PacketType = "dealSynchronizationFinished"
	PacketOrderSynchronizationFinished PacketType = "orderSynchronizationFinished"
	PacketPrices                 PacketType = "prices"
	PacketAccountInformation     PacketType = "accountInformation"
	PacketHistoryOrders          PacketType = "historyOrders"
	PacketDeals                  PacketType = "deals"
)

// Packet is one streamed frame from the transport. SequenceNumber is a
// pointer so its absence (nil) is distinguishable from zero, per spec.md
// §4.1 step 1.
type Packet struct {
	AccountID         string
	InstanceIndex     int
	Type              PacketType
	SequenceNumber    *int64
	SequenceTimestamp int64 // unix millis
	SynchronizationID string
	ReceivedAt        time.Time

	// Payload carries the fields specific to Type that C1 does not
	// interpret (account info, position/order upserts, prices, spec
	// updates). Listeners type-assert or re-decode as needed.
	Payload interface{}
}

// InstanceKey identifies one (account, replica) pair.
type InstanceKey struct {
	AccountID     string
	InstanceIndex int
}

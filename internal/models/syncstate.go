package models

// InstanceSyncState is the per-replica synchronization bookkeeping of
// spec.md §3. Every mutation happens under the owning Sync Controller's
// mutex — this struct itself has no internal locking.
type InstanceSyncState struct {
	InstanceIndex int

	LastSynchronizationID            string
	LastDisconnectedSynchronizationID string

	// ShouldSynchronize is the token of the currently-authoritative sync
	// attempt. A retry whose captured token no longer equals this value
	// must not reschedule itself or mutate state.
	ShouldSynchronize string

	OrdersSynchronized map[string]bool
	DealsSynchronized  map[string]bool

	SynchronizationRetryIntervalSeconds int

	Synchronized bool
	Disconnected bool
}

// NewInstanceSyncState returns a zeroed state for instanceIndex with its
// retry interval at the floor.
func NewInstanceSyncState(instanceIndex int) *InstanceSyncState {
	return &InstanceSyncState{
		InstanceIndex:                        instanceIndex,
		OrdersSynchronized:                   make(map[string]bool),
		DealsSynchronized:                    make(map[string]bool),
		SynchronizationRetryIntervalSeconds: 1,
	}
}

// IsSynchronized reports whether synchronizationID (or, if empty, this
// state's LastSynchronizationID) has completed both orders and deals
// synchronization.
func (s *InstanceSyncState) IsSynchronized(synchronizationID string) bool {
	sid := synchronizationID
	if sid == "" {
		sid = s.LastSynchronizationID
	}
	if sid == "" {
		return false
	}
	return s.OrdersSynchronized[sid] && s.DealsSynchronized[sid]
}

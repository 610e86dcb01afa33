package booking

import "sync"

// Tracker owns the "seen" sets used for notification surfacing.  Each
// owner gets an independent set of booking IDs that have already been
// shown in the dashboard notification dialog.  The sets are ephemeral:
// they start empty at process start and are never persisted, so every
// session re-surfaces pending bookings once.  All mutation goes
// through MarkSeen; there are no package-level globals.
type Tracker struct {
	mu   sync.Mutex
	seen map[uint64]map[uint64]struct{} // ownerID -> set of booking IDs
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[uint64]map[uint64]struct{})}
}

// MarkSeen adds booking IDs to the owner's seen set.  Marking an
// already-seen ID is a no-op.
func (t *Tracker) MarkSeen(ownerID uint64, bookingIDs ...uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.seen[ownerID]
	if !ok {
		set = make(map[uint64]struct{})
		t.seen[ownerID] = set
	}
	for _, id := range bookingIDs {
		set[id] = struct{}{}
	}
}

// Seen returns a copy of the owner's seen set.  A copy keeps callers
// from mutating tracker state outside MarkSeen.
func (t *Tracker) Seen(ownerID uint64) map[uint64]struct{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[uint64]struct{}, len(t.seen[ownerID]))
	for id := range t.seen[ownerID] {
		out[id] = struct{}{}
	}
	return out
}

package booking_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glutenfreeeats/booking-api/internal/booking"
)

func TestTrackerMarkSeen(t *testing.T) {
	tr := booking.NewTracker()

	require.Empty(t, tr.Seen(1))

	tr.MarkSeen(1, 10, 11)
	seen := tr.Seen(1)
	require.Len(t, seen, 2)
	require.Contains(t, seen, uint64(10))
	require.Contains(t, seen, uint64(11))

	// Marking again is a no-op.
	tr.MarkSeen(1, 10)
	require.Len(t, tr.Seen(1), 2)

	// Owners are independent.
	require.Empty(t, tr.Seen(2))
}

func TestTrackerSeenReturnsCopy(t *testing.T) {
	tr := booking.NewTracker()
	tr.MarkSeen(1, 10)

	seen := tr.Seen(1)
	delete(seen, 10)
	require.Len(t, tr.Seen(1), 1)
}

func TestTrackerConcurrentMarkSeen(t *testing.T) {
	tr := booking.NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			tr.MarkSeen(1, id)
		}(uint64(i))
	}
	wg.Wait()
	require.Len(t, tr.Seen(1), 50)
}

package racing

import (
	"sort"

	"github.com/absamad/pigeontracker/models"
)

// Rank sorts a race's full entry list and assigns dense 1-based positions.
// Order: entries with a trapping time first (velocity descending, elapsed
// seconds ascending on velocity ties), then entries still out, in registration
// order. The final id tiebreak makes the order total, so re-ranking an already
// ranked list is a no-op.
func Rank(entries []models.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entryLess(&entries[i], &entries[j])
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
}

func entryLess(a, b *models.Entry) bool {
	switch {
	case a.HasTrappingTime() && !b.HasTrappingTime():
		return true
	case !a.HasTrappingTime() && b.HasTrappingTime():
		return false
	case !a.HasTrappingTime() && !b.HasTrappingTime():
		return a.ID < b.ID
	}
	if a.Velocity != b.Velocity {
		return a.Velocity > b.Velocity
	}
	if a.Second != b.Second {
		return a.Second < b.Second
	}
	return a.ID < b.ID
}

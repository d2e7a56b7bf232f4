package racing

import (
	"errors"

	"github.com/google/uuid"

	"github.com/absamad/pigeontracker/models"
)

// CopyRace clones every entry of src into a brand-new race described by draft.
// Entries keep their loft, ring, culture, club, distance override and return
// status but get fresh ids, and every entry with a trapping time is recomputed
// against the new race's date, release time and distance. An entry whose old
// trapping time is invalid in the new context falls back to the undetermined
// sentinel instead of failing the copy; a bad distance still aborts. The
// returned race carries its full, ranked entry list so it can be persisted as
// one atomic unit.
func CopyRace(src *models.Race, draft RaceDraft) (*models.Race, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	out := &models.Race{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Date:        draft.Date,
		Location:    draft.Location,
		Distance:    draft.Distance,
		ReleaseTime: draft.ReleaseTime,
		Visibility:  draft.Visibility,
		Season:      draft.Season,
		Entries:     make([]models.Entry, len(src.Entries)),
	}

	for i := range src.Entries {
		entry := src.Entries[i]
		entry.ID = i + 1

		if entry.HasTrappingTime() {
			timing, err := ComputeTiming(out.Date, out.ReleaseTime, entry.TrappingTime, out.EffectiveDistance(&entry))
			switch {
			case err == nil:
				timing.apply(&entry)
			case errors.Is(err, ErrInvalidTiming):
				UndeterminedTiming().apply(&entry)
			default:
				return nil, err
			}
		} else {
			UndeterminedTiming().apply(&entry)
		}

		out.Entries[i] = entry
	}

	Rank(out.Entries)
	return out, nil
}

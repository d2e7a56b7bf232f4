package racing

import (
	"github.com/go-playground/validator/v10"

	"github.com/absamad/pigeontracker/models"
)

var validate = validator.New()

// EntryDraft is the editable subset of an entry, as submitted by the entry
// form. Derived fields are computed here, never accepted from the caller.
type EntryDraft struct {
	LoftName     string   `json:"loftName" validate:"required"`
	RingNumber   string   `json:"ringNumber" validate:"required"`
	Culture      string   `json:"culture" validate:"required"`
	Club         string   `json:"club" validate:"required"`
	Distance     *float64 `json:"distance,omitempty" validate:"omitempty,gt=0"`
	TrappingTime *string  `json:"trappingTime,omitempty"`
	ReturnStatus string   `json:"returnStatus" validate:"omitempty,oneof=registered returned not_returned"`
}

// RaceDraft is the race metadata submitted on race creation, metadata edits
// and race copies. It never carries entries.
type RaceDraft struct {
	Name        string  `json:"name" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Location    string  `json:"location" validate:"required"`
	Distance    float64 `json:"distance" validate:"required,gt=0"`
	ReleaseTime string  `json:"releaseTime" validate:"required,datetime=15:04"`
	Visibility  string  `json:"visibility"`
	Season      string  `json:"season"`
}

// Validate checks a race draft's required fields and formats.
func (d *RaceDraft) Validate() error {
	if err := validate.Struct(d); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	return nil
}

func (d *EntryDraft) check() error {
	if err := validate.Struct(d); err != nil {
		return &ValidationError{Msg: err.Error()}
	}
	if d.ReturnStatus == models.StatusReturned && (d.TrappingTime == nil || *d.TrappingTime == "") {
		return validationErrorf("trapping time is required when status is %q", models.StatusReturned)
	}
	return nil
}

func (d *EntryDraft) status() string {
	if d.ReturnStatus == "" {
		return models.StatusRegistered
	}
	return d.ReturnStatus
}

// nextEntryID returns an id one past the highest in use, so ids stay unique
// within the race and monotonic by creation time.
func nextEntryID(race *models.Race) int {
	max := 0
	for i := range race.Entries {
		if race.Entries[i].ID > max {
			max = race.Entries[i].ID
		}
	}
	return max + 1
}

// AddEntry validates the draft, computes the derived fields against the race's
// release time and effective distance, appends the entry and re-ranks. The
// race is unchanged on any error.
func AddEntry(race *models.Race, draft EntryDraft) (*models.Entry, error) {
	if err := draft.check(); err != nil {
		return nil, err
	}

	timing, err := ComputeTiming(race.Date, race.ReleaseTime, draft.TrappingTime, effectiveDistance(draft.Distance, race.Distance))
	if err != nil {
		return nil, err
	}

	entry := models.Entry{
		ID:           nextEntryID(race),
		Position:     len(race.Entries) + 1,
		LoftName:     draft.LoftName,
		RingNumber:   draft.RingNumber,
		Culture:      draft.Culture,
		Club:         draft.Club,
		Distance:     draft.Distance,
		TrappingTime: draft.TrappingTime,
		ReturnStatus: draft.status(),
	}
	timing.apply(&entry)

	race.Entries = append(race.Entries, entry)
	Rank(race.Entries)
	return race.FindEntry(entry.ID), nil
}

// UpdateEntry replaces the editable fields of an existing entry, recomputes
// the derived fields and re-ranks. The race is unchanged on any error.
func UpdateEntry(race *models.Race, id int, draft EntryDraft) (*models.Entry, error) {
	if race.FindEntry(id) == nil {
		return nil, ErrEntryNotFound
	}
	if err := draft.check(); err != nil {
		return nil, err
	}

	timing, err := ComputeTiming(race.Date, race.ReleaseTime, draft.TrappingTime, effectiveDistance(draft.Distance, race.Distance))
	if err != nil {
		return nil, err
	}

	entry := race.FindEntry(id)
	entry.LoftName = draft.LoftName
	entry.RingNumber = draft.RingNumber
	entry.Culture = draft.Culture
	entry.Club = draft.Club
	entry.Distance = draft.Distance
	entry.TrappingTime = draft.TrappingTime
	entry.ReturnStatus = draft.status()
	timing.apply(entry)

	Rank(race.Entries)
	return race.FindEntry(id), nil
}

// DeleteEntry removes the entry with the given id and re-ranks the remainder.
// Deleting an absent id degenerates to a plain re-rank.
func DeleteEntry(race *models.Race, id int) {
	kept := race.Entries[:0]
	for i := range race.Entries {
		if race.Entries[i].ID != id {
			kept = append(kept, race.Entries[i])
		}
	}
	race.Entries = kept
	Rank(race.Entries)
}

func effectiveDistance(override *float64, raceDistance float64) float64 {
	if override != nil {
		return *override
	}
	return raceDistance
}

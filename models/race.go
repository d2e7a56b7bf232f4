package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Race is a single race event together with its full entry list. Entries are
// stored inline as a JSON document so a race is always read and replaced as one
// unit, matching how entry mutations work (full re-rank, full rewrite).
type Race struct {
	bun.BaseModel `bun:"table:races,alias:rc"`

	ID          string  `bun:"id,pk" json:"id"`
	Name        string  `bun:"name,notnull" json:"name"`
	Date        string  `bun:"date,notnull,type:date" json:"date"`
	Location    string  `bun:"location,notnull" json:"location"`
	Distance    float64 `bun:"distance,notnull" json:"distance"`
	ReleaseTime string  `bun:"release_time,notnull" json:"releaseTime"`
	Visibility  string  `bun:"visibility" json:"visibility"`
	Season      string  `bun:"season" json:"season"`
	Entries     []Entry `bun:"entries,type:jsonb" json:"entries"`

	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// EffectiveDistance returns the entry's own distance override when set, else
// the race default.
func (r *Race) EffectiveDistance(e *Entry) float64 {
	if e.Distance != nil {
		return *e.Distance
	}
	return r.Distance
}

// FindEntry returns the entry with the given id, or nil.
func (r *Race) FindEntry(id int) *Entry {
	for i := range r.Entries {
		if r.Entries[i].ID == id {
			return &r.Entries[i]
		}
	}
	return nil
}

package models

// Return status values for an entry.
const (
	StatusRegistered  = "registered"
	StatusReturned    = "returned"
	StatusNotReturned = "not_returned"
)

// UndeterminedTime is the sentinel shown for entries without a computed
// elapsed time.
const UndeterminedTime = "--:--:--"

// Entry is one pigeon's participation record within a race. TotalTime, Second,
// Minute and Velocity are derived from the race's release time, the trapping
// time and the effective distance; they are never set directly.
type Entry struct {
	ID           int      `json:"id"`
	Position     int      `json:"position"`
	LoftName     string   `json:"loftName"`
	RingNumber   string   `json:"ringNumber"`
	Culture      string   `json:"culture"`
	Club         string   `json:"club"`
	Distance     *float64 `json:"distance,omitempty"`
	TrappingTime *string  `json:"trappingTime,omitempty"`
	ReturnStatus string   `json:"returnStatus"`
	TotalTime    string   `json:"totalTime"`
	Second       int      `json:"second"`
	Minute       int      `json:"minute"`
	Velocity     float64  `json:"velocity"`
}

// HasTrappingTime reports whether a trapping time has been recorded.
func (e *Entry) HasTrappingTime() bool {
	return e.TrappingTime != nil && *e.TrappingTime != ""
}

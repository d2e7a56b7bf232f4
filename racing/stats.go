package racing

import (
	"fmt"

	"github.com/absamad/pigeontracker/models"
)

// RaceStats is the summary block shown in the race header and on exports.
type RaceStats struct {
	RegisteredPigeons int    `json:"registeredPigeons"`
	ReturnedPigeons   int    `json:"returnedPigeons"`
	MissingPigeons    int    `json:"missingPigeons"`
	Participants      int    `json:"participants"`
	AvgTime           string `json:"avgTime"`
}

// Stats aggregates a race's entry list: total registrations, returned and
// missing counts, distinct loft count, and the average elapsed time "M:SS"
// over entries marked returned (or "--:--" when none have).
func Stats(race *models.Race) RaceStats {
	s := RaceStats{
		RegisteredPigeons: len(race.Entries),
		AvgTime:           "--:--",
	}

	lofts := map[string]struct{}{}
	totalSeconds := 0
	for i := range race.Entries {
		e := &race.Entries[i]
		lofts[e.LoftName] = struct{}{}
		switch e.ReturnStatus {
		case models.StatusReturned:
			s.ReturnedPigeons++
			totalSeconds += e.Second
		case models.StatusNotReturned:
			s.MissingPigeons++
		}
	}
	s.Participants = len(lofts)

	if s.ReturnedPigeons > 0 {
		avg := totalSeconds / s.ReturnedPigeons
		s.AvgTime = fmt.Sprintf("%d:%02d", avg/60, avg%60)
	}
	return s
}

package racing

import (
	"sort"
	"strings"

	"github.com/absamad/pigeontracker/models"
)

// RingMatch is one entry matched by a ring search, annotated with the race it
// was found in.
type RingMatch struct {
	models.Entry
	RaceName     string  `json:"raceName"`
	RaceDate     string  `json:"raceDate"`
	RaceLocation string  `json:"raceLocation"`
	RaceDistance float64 `json:"raceDistance"`
	RaceSeason   string  `json:"raceSeason"`
}

// PigeonSummary aggregates one pigeon's record across all races. Averages and
// best position are nil when no completed race exists to compute them from.
type PigeonSummary struct {
	RingNumber     string      `json:"ringNumber"`
	LoftName       string      `json:"loftName"`
	Culture        string      `json:"culture"`
	Club           string      `json:"club"`
	TotalRaces     int         `json:"totalRaces"`
	CompletedRaces int         `json:"completedRaces"`
	Top3Finishes   int         `json:"top3Finishes"`
	Top10Finishes  int         `json:"top10Finishes"`
	AvgPosition    *float64    `json:"avgPosition,omitempty"`
	AvgVelocity    *float64    `json:"avgVelocity,omitempty"`
	BestPosition   *int        `json:"bestPosition,omitempty"`
	Results        []RingMatch `json:"results"`
}

// SearchRing scans every entry of every race for ring numbers containing the
// query (case-insensitive) and groups the matches per pigeon. Groups keep
// first-seen order; each group's race history is most recent first.
func SearchRing(races []*models.Race, query string) []PigeonSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var order []string
	groups := map[string][]RingMatch{}

	for _, race := range races {
		for i := range race.Entries {
			entry := race.Entries[i]
			if !strings.Contains(strings.ToLower(entry.RingNumber), query) {
				continue
			}
			key := strings.ToLower(entry.RingNumber)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], RingMatch{
				Entry:        entry,
				RaceName:     race.Name,
				RaceDate:     race.Date,
				RaceLocation: race.Location,
				RaceDistance: race.EffectiveDistance(&entry),
				RaceSeason:   race.Season,
			})
		}
	}

	out := make([]PigeonSummary, 0, len(order))
	for _, key := range order {
		out = append(out, summarize(groups[key]))
	}
	return out
}

func summarize(matches []RingMatch) PigeonSummary {
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].RaceDate > matches[j].RaceDate
	})

	s := PigeonSummary{
		RingNumber: matches[0].RingNumber,
		LoftName:   matches[0].LoftName,
		Culture:    matches[0].Culture,
		Club:       matches[0].Club,
		TotalRaces: len(matches),
		Results:    matches,
	}

	positionSum, velocitySum := 0, 0.0
	velocityCount := 0
	for i := range matches {
		m := &matches[i]
		if m.Position <= 3 {
			s.Top3Finishes++
		}
		if m.Position <= 10 {
			s.Top10Finishes++
		}
		if m.HasTrappingTime() {
			s.CompletedRaces++
			positionSum += m.Position
			if s.BestPosition == nil || m.Position < *s.BestPosition {
				best := m.Position
				s.BestPosition = &best
			}
		}
		if m.Velocity > 0 {
			velocitySum += m.Velocity
			velocityCount++
		}
	}

	if s.CompletedRaces > 0 {
		avg := float64(positionSum) / float64(s.CompletedRaces)
		s.AvgPosition = &avg
	}
	if velocityCount > 0 {
		avg := velocitySum / float64(velocityCount)
		s.AvgVelocity = &avg
	}
	return s
}

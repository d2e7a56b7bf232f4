package racing

import (
	"fmt"
	"math"
	"time"

	"github.com/absamad/pigeontracker/models"
)

// kmhToYPM converts kilometres per hour to yards per minute.
const kmhToYPM = 18.2269

const (
	dateLayout        = "2006-01-02"
	releaseTimeLayout = "15:04"
	trapSecondsLayout = "15:04:05"
)

// Timing is the derived tuple for one entry.
type Timing struct {
	TotalTime string
	Second    int
	Minute    int
	Velocity  float64
}

// UndeterminedTiming is the sentinel used for entries that have not returned
// yet, or whose recomputation became invalid after a race copy.
func UndeterminedTiming() Timing {
	return Timing{TotalTime: models.UndeterminedTime}
}

// ComputeTiming derives elapsed time and velocity for a single entry.
// releaseTime is minute precision ("HH:MM", taken as HH:MM:00), trappingTime
// has seconds precision ("HH:MM:SS", "HH:MM" accepted). Both are taken on
// raceDate. distanceKm is the effective distance and must be a positive finite
// number; a nil or empty trappingTime yields the undetermined sentinel.
func ComputeTiming(raceDate, releaseTime string, trappingTime *string, distanceKm float64) (Timing, error) {
	if trappingTime == nil || *trappingTime == "" {
		return UndeterminedTiming(), nil
	}
	if !(distanceKm > 0) || math.IsInf(distanceKm, 0) {
		return UndeterminedTiming(), validationErrorf("distance must be a positive number, got %v", distanceKm)
	}

	release, err := parseClock(raceDate, releaseTime+":00")
	if err != nil {
		return UndeterminedTiming(), validationErrorf("invalid release time %q: %v", releaseTime, err)
	}
	trap, err := parseClock(raceDate, *trappingTime)
	if err != nil {
		return UndeterminedTiming(), validationErrorf("invalid trapping time %q: %v", *trappingTime, err)
	}

	elapsed := trap.Sub(release)
	if elapsed <= 0 {
		return UndeterminedTiming(), ErrInvalidTiming
	}

	ms := elapsed.Milliseconds()
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1_000

	velocityKmH := distanceKm / elapsed.Hours()

	return Timing{
		TotalTime: fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds),
		Second:    int(ms / 1_000),
		Minute:    int(ms / 60_000),
		Velocity:  velocityKmH * kmhToYPM,
	}, nil
}

// apply writes a derived timing tuple onto an entry.
func (t Timing) apply(e *models.Entry) {
	e.TotalTime = t.TotalTime
	e.Second = t.Second
	e.Minute = t.Minute
	e.Velocity = t.Velocity
}

func parseClock(date, clock string) (time.Time, error) {
	if ts, err := time.Parse(dateLayout+" "+trapSecondsLayout, date+" "+clock); err == nil {
		return ts, nil
	}
	return time.Parse(dateLayout+" "+releaseTimeLayout, date+" "+clock)
}

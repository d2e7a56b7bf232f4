// Package export renders ranked race results as downloadable documents. It
// consumes already-computed entry data and never recomputes anything.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/absamad/pigeontracker/models"
	"github.com/absamad/pigeontracker/racing"
)

const clubTitle = "CHAPAINAWABGANJ RACING PIGEON ASSOCIATION"

var tableHeader = []string{
	"Pos", "Loft's Name", "Ring No", "Culture", "Dist (KM)", "Release",
	"Trapping", "Status", "Total Time", "Second", "Minute", "Velocity (YPM)", "Club",
}

var colWidths = []float64{12, 42, 26, 18, 18, 16, 20, 22, 20, 16, 16, 26, 25}

// RacePDF renders the full result sheet for one race: a header with the race
// metadata and summary counts, then one row per entry in ranked order.
func RacePDF(race *models.Race) ([]byte, error) {
	stats := racing.Stats(race)

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 12)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetTextColor(102, 126, 234)
	pdf.CellFormat(0, 8, clubTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(220, 38, 38)
	season := race.Season
	if season == "" {
		season = fmt.Sprintf("%d", time.Now().Year())
	}
	pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s", race.Name, season), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 5, fmt.Sprintf(
		"Date: %s   Location: %s   Release Time: %s:00   Visibility: %s",
		race.Date, race.Location, race.ReleaseTime, race.Visibility,
	), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf(
		"Registered: %d   Returned: %d   Missing: %d   Participants: %d",
		stats.RegisteredPigeons, stats.ReturnedPigeons, stats.MissingPigeons, stats.Participants,
	), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(102, 126, 234)
	pdf.SetTextColor(255, 255, 255)
	for i, head := range tableHeader {
		pdf.CellFormat(colWidths[i], 6, head, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	for i := range race.Entries {
		entry := &race.Entries[i]
		fill := i%2 == 1
		pdf.SetFillColor(248, 250, 252)

		for col, cell := range entryRow(race, entry) {
			align := "C"
			if col == 1 {
				align = "L"
			}
			pdf.CellFormat(colWidths[col], 5.5, cell, "1", 0, align, fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func entryRow(race *models.Race, entry *models.Entry) []string {
	trapping := models.UndeterminedTime
	if entry.TrappingTime != nil {
		trapping = *entry.TrappingTime
	}

	velocity := "--"
	if entry.Velocity > 0 {
		velocity = fmt.Sprintf("%.4f", entry.Velocity)
	}

	return []string{
		fmt.Sprintf("%d", entry.Position),
		entry.LoftName,
		entry.RingNumber,
		entry.Culture,
		fmt.Sprintf("%g", race.EffectiveDistance(entry)),
		race.ReleaseTime,
		trapping,
		statusText(entry.ReturnStatus),
		entry.TotalTime,
		fmt.Sprintf("%d", entry.Second),
		fmt.Sprintf("%d", entry.Minute),
		velocity,
		entry.Club,
	}
}

func statusText(status string) string {
	switch status {
	case models.StatusReturned:
		return "Returned"
	case models.StatusNotReturned:
		return "Missing"
	default:
		return "Registered"
	}
}

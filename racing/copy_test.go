package racing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absamad/pigeontracker/models"
)

func copyDraft(releaseTime string) RaceDraft {
	return RaceDraft{
		Name:        "Winter Classic (Copy)",
		Date:        "2024-11-15",
		Location:    "Rajshahi",
		Distance:    70.35,
		ReleaseTime: releaseTime,
		Season:      "2024-2025",
	}
}

func sourceRace(t *testing.T) *models.Race {
	t.Helper()
	race := testRace()
	_, err := AddEntry(race, draft("24-52228-h", strptr("08:56:50")))
	require.NoError(t, err)
	_, err = AddEntry(race, draft("24-99001-k", strptr("09:56:50")))
	require.NoError(t, err)
	_, err = AddEntry(race, draft("24-77002-b", nil))
	require.NoError(t, err)
	return race
}

func TestCopyRaceRecomputesAgainstNewRelease(t *testing.T) {
	src := sourceRace(t)

	// New release 09:00 invalidates the 08:56:50 trap but not 09:56:50.
	copied, err := CopyRace(src, copyDraft("09:00"))
	require.NoError(t, err)

	require.Len(t, copied.Entries, 3)
	assert.Equal(t, "Winter Classic (Copy)", copied.Name)
	assert.NotEqual(t, src.ID, copied.ID)

	valid := copied.Entries[0]
	assert.Equal(t, "24-99001-k", valid.RingNumber)
	assert.Equal(t, 1, valid.Position)
	assert.Equal(t, 3410, valid.Second)

	// The now-invalid entry falls back to the sentinel and ranks behind the
	// valid one but, having a trapping time, ahead of the untrapped one.
	stale := copied.Entries[1]
	assert.Equal(t, "24-52228-h", stale.RingNumber)
	assert.Equal(t, models.UndeterminedTime, stale.TotalTime)
	assert.Zero(t, stale.Velocity)
	assert.Equal(t, 2, stale.Position)

	assert.Equal(t, "24-77002-b", copied.Entries[2].RingNumber)
	assert.Equal(t, 3, copied.Entries[2].Position)
}

func TestCopyRaceGeneratesFreshEntryIDs(t *testing.T) {
	src := sourceRace(t)
	copied, err := CopyRace(src, copyDraft("08:05"))
	require.NoError(t, err)

	seen := map[int]bool{}
	for i := range copied.Entries {
		assert.False(t, seen[copied.Entries[i].ID], "duplicate id %d", copied.Entries[i].ID)
		seen[copied.Entries[i].ID] = true
	}
}

func TestCopyRaceCopiesFieldsVerbatim(t *testing.T) {
	src := sourceRace(t)
	override := 68.2
	src.Entries[0].Distance = &override

	copied, err := CopyRace(src, copyDraft("08:05"))
	require.NoError(t, err)

	orig := src.Entries[0]
	var match *models.Entry
	for i := range copied.Entries {
		if copied.Entries[i].RingNumber == orig.RingNumber {
			match = &copied.Entries[i]
		}
	}
	require.NotNil(t, match)
	assert.Equal(t, orig.LoftName, match.LoftName)
	assert.Equal(t, orig.Culture, match.Culture)
	assert.Equal(t, orig.Club, match.Club)
	assert.Equal(t, orig.ReturnStatus, match.ReturnStatus)
	require.NotNil(t, match.Distance)
	assert.Equal(t, override, *match.Distance)
}

func TestCopyRaceUsesEntryDistanceOverride(t *testing.T) {
	src := testRace()
	d := draft("24-1", strptr("09:05:00"))
	override := 60.0
	d.Distance = &override
	_, err := AddEntry(src, d)
	require.NoError(t, err)

	// Same date and release; race-level distance differs from the override.
	copied, err := CopyRace(src, copyDraft("08:05"))
	require.NoError(t, err)

	assert.InDelta(t, 60*18.2269, copied.Entries[0].Velocity, 0.0001)
}

func TestCopyRaceLeavesSourceUntouched(t *testing.T) {
	src := sourceRace(t)
	before := make([]models.Entry, len(src.Entries))
	copy(before, src.Entries)

	_, err := CopyRace(src, copyDraft("09:00"))
	require.NoError(t, err)
	assert.Equal(t, before, src.Entries)
}

func TestCopyRaceRejectsInvalidDraft(t *testing.T) {
	src := sourceRace(t)
	bad := copyDraft("09:00")
	bad.Distance = 0

	_, err := CopyRace(src, bad)
	assert.True(t, IsValidation(err))
}

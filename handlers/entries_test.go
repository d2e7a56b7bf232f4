package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absamad/pigeontracker/models"
	"github.com/absamad/pigeontracker/racing"
	"github.com/absamad/pigeontracker/store"
)

// memStore is an in-memory RaceStore for handler tests.
type memStore struct {
	races map[string]*models.Race
}

func newMemStore(races ...*models.Race) *memStore {
	m := &memStore{races: map[string]*models.Race{}}
	for _, r := range races {
		m.races[r.ID] = r
	}
	return m
}

func (m *memStore) ListRaces(context.Context) ([]*models.Race, error) {
	out := make([]*models.Race, 0, len(m.races))
	for _, r := range m.races {
		out = append(out, r)
	}
	return out, nil
}

func (m *memStore) GetRace(_ context.Context, id string) (*models.Race, error) {
	r, ok := m.races[id]
	if !ok {
		return nil, store.ErrRaceNotFound
	}
	clone := *r
	clone.Entries = append([]models.Entry(nil), r.Entries...)
	return &clone, nil
}

func (m *memStore) CreateRace(_ context.Context, race *models.Race) (string, error) {
	if race.ID == "" {
		race.ID = "generated"
	}
	m.races[race.ID] = race
	return race.ID, nil
}

func (m *memStore) ReplaceRace(_ context.Context, id string, race *models.Race) error {
	if _, ok := m.races[id]; !ok {
		return store.ErrRaceNotFound
	}
	m.races[id] = race
	return nil
}

func (m *memStore) UpdateRaceMeta(_ context.Context, id string, meta racing.RaceDraft) error {
	r, ok := m.races[id]
	if !ok {
		return store.ErrRaceNotFound
	}
	r.Name = meta.Name
	r.Date = meta.Date
	r.Location = meta.Location
	r.Distance = meta.Distance
	r.ReleaseTime = meta.ReleaseTime
	r.Visibility = meta.Visibility
	r.Season = meta.Season
	return nil
}

func (m *memStore) DeleteRace(_ context.Context, id string) error {
	if _, ok := m.races[id]; !ok {
		return store.ErrRaceNotFound
	}
	delete(m.races, id)
	return nil
}

func (m *memStore) SubscribeRaces(context.Context, func([]*models.Race)) (func(), error) {
	return nil, store.ErrSubscribeUnsupported
}

func testRace() *models.Race {
	return &models.Race{
		ID:          "race-1",
		Name:        "Winter Classic",
		Date:        "2024-11-15",
		Location:    "Rajshahi",
		Distance:    70.35,
		ReleaseTime: "08:05",
		Entries:     []models.Entry{},
	}
}

func postEntry(t *testing.T, h *Handler, raceID, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/rp/races/"+raceID+"/entries", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rp/races/:id/entries")
	c.SetParamNames("id")
	c.SetParamValues(raceID)
	return rec, h.CreateEntry(c)
}

func TestCreateEntryPersistsRankedRace(t *testing.T) {
	st := newMemStore(testRace())
	h := New(nil, st, []byte("test-key"))

	rec, err := postEntry(t, h, "race-1",
		`{"loftName":"Samad Loft","ringNumber":"24-52228-h","culture":"blue","club":"CRPA","trappingTime":"08:56:50","returnStatus":"returned"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	saved := st.races["race-1"]
	require.Len(t, saved.Entries, 1)
	assert.Equal(t, 1, saved.Entries[0].Position)
	assert.Equal(t, "0:51:50", saved.Entries[0].TotalTime)
	assert.InDelta(t, 1484.29, saved.Entries[0].Velocity, 0.01)
}

func TestCreateEntryInvalidTimingRejected(t *testing.T) {
	st := newMemStore(testRace())
	h := New(nil, st, []byte("test-key"))

	_, err := postEntry(t, h, "race-1",
		`{"loftName":"Samad Loft","ringNumber":"24-1","culture":"blue","club":"CRPA","trappingTime":"08:00:00","returnStatus":"returned"}`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	assert.Empty(t, st.races["race-1"].Entries, "rejected entry must not be persisted")
}

func TestCreateEntryValidationFailure(t *testing.T) {
	st := newMemStore(testRace())
	h := New(nil, st, []byte("test-key"))

	_, err := postEntry(t, h, "race-1",
		`{"loftName":"","ringNumber":"24-1","culture":"blue","club":"CRPA"}`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateEntryRaceNotFound(t *testing.T) {
	st := newMemStore()
	h := New(nil, st, []byte("test-key"))

	_, err := postEntry(t, h, "missing", `{"loftName":"a","ringNumber":"b","culture":"c","club":"d"}`)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestDeleteEntryAbsentIDStillSucceeds(t *testing.T) {
	race := testRace()
	race.Entries = []models.Entry{{ID: 1, Position: 1, RingNumber: "24-1", ReturnStatus: models.StatusRegistered}}
	st := newMemStore(race)
	h := New(nil, st, []byte("test-key"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/rp/races/race-1/entries/999", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rp/races/:id/entries/:entryID")
	c.SetParamNames("id", "entryID")
	c.SetParamValues("race-1", "999")

	require.NoError(t, h.DeleteEntry(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, st.races["race-1"].Entries, 1)
}

func TestCopyRaceHandlerPersistsAtomically(t *testing.T) {
	trap := "08:56:50"
	race := testRace()
	race.Entries = []models.Entry{{
		ID: 1, Position: 1, LoftName: "Samad Loft", RingNumber: "24-52228-h",
		Culture: "blue", Club: "CRPA", TrappingTime: &trap,
		ReturnStatus: models.StatusReturned, TotalTime: "0:51:50",
		Second: 3110, Minute: 51, Velocity: 1484.2899,
	}}
	st := newMemStore(race)
	h := New(nil, st, []byte("test-key"))

	e := echo.New()
	body := `{"name":"Copy","date":"2024-11-15","location":"Rajshahi","distance":70.35,"releaseTime":"09:00"}`
	req := httptest.NewRequest(http.MethodPost, "/rp/races/race-1/copy", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/rp/races/:id/copy")
	c.SetParamNames("id")
	c.SetParamValues("race-1")

	require.NoError(t, h.CopyRace(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	require.Len(t, st.races, 2)
	for id, r := range st.races {
		if id == "race-1" {
			continue
		}
		// The 09:00 release invalidates the old trapping time: sentinel.
		require.Len(t, r.Entries, 1)
		assert.Equal(t, models.UndeterminedTime, r.Entries[0].TotalTime)
		assert.Zero(t, r.Entries[0].Velocity)
		assert.Equal(t, 1, r.Entries[0].Position)
	}
}

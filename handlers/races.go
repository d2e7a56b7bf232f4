package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/absamad/pigeontracker/models"
	"github.com/absamad/pigeontracker/racing"
)

// Races returns every race with its full ranked entry list, newest first.
func (h *Handler) Races(c echo.Context) error {
	races, err := h.store.ListRaces(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, races)
}

// Race returns a single race by id.
func (h *Handler) Race(c echo.Context) error {
	race, err := h.store.GetRace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, race)
}

// CreateRace creates a new race with an empty entry list.
func (h *Handler) CreateRace(c echo.Context) error {
	var draft racing.RaceDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := draft.Validate(); err != nil {
		return httpError(err)
	}

	race := &models.Race{
		Name:        draft.Name,
		Date:        draft.Date,
		Location:    draft.Location,
		Distance:    draft.Distance,
		ReleaseTime: draft.ReleaseTime,
		Visibility:  draft.Visibility,
		Season:      draft.Season,
		Entries:     []models.Entry{},
	}

	id, err := h.store.CreateRace(c.Request().Context(), race)
	if err != nil {
		return httpError(err)
	}
	race.ID = id
	return c.JSON(http.StatusCreated, race)
}

// UpdateRace patches race metadata. The entry list is never touched here, so
// a metadata edit cannot clobber entries saved by a concurrent entry write.
func (h *Handler) UpdateRace(c echo.Context) error {
	var draft racing.RaceDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := draft.Validate(); err != nil {
		return httpError(err)
	}

	if err := h.store.UpdateRaceMeta(c.Request().Context(), c.Param("id"), draft); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteRace removes a race and all its entries.
func (h *Handler) DeleteRace(c echo.Context) error {
	if err := h.store.DeleteRace(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RaceStats returns the header summary for one race.
func (h *Handler) RaceStats(c echo.Context) error {
	race, err := h.store.GetRace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, racing.Stats(race))
}

// CopyRace clones a race's entries into a new race described by the request
// body, recomputing every entry against the new release time and distance.
// The copy is persisted in one write with its entries already attached.
func (h *Handler) CopyRace(c echo.Context) error {
	var draft racing.RaceDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	src, err := h.store.GetRace(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	copied, err := racing.CopyRace(src, draft)
	if err != nil {
		return httpError(err)
	}

	if _, err := h.store.CreateRace(ctx, copied); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, copied)
}

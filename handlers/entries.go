package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/absamad/pigeontracker/racing"
)

// CreateEntry adds a pigeon to a race, computes its derived fields, re-ranks
// the race and persists the full entry list.
func (h *Handler) CreateEntry(c echo.Context) error {
	var draft racing.EntryDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	race, err := h.store.GetRace(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	entry, err := racing.AddEntry(race, draft)
	if err != nil {
		return httpError(err)
	}

	if err := h.store.ReplaceRace(ctx, race.ID, race); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, entry)
}

// UpdateEntry replaces an entry's editable fields, recomputes and re-ranks.
func (h *Handler) UpdateEntry(c echo.Context) error {
	entryID, err := strconv.Atoi(c.Param("entryID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry id")
	}

	var draft racing.EntryDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	race, err := h.store.GetRace(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	entry, err := racing.UpdateEntry(race, entryID, draft)
	if err != nil {
		return httpError(err)
	}

	if err := h.store.ReplaceRace(ctx, race.ID, race); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, entry)
}

// DeleteEntry removes an entry and re-ranks the rest. Deleting an id that is
// already gone still succeeds with a plain re-rank.
func (h *Handler) DeleteEntry(c echo.Context) error {
	entryID, err := strconv.Atoi(c.Param("entryID"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid entry id")
	}

	ctx := c.Request().Context()
	race, err := h.store.GetRace(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	racing.DeleteEntry(race, entryID)

	if err := h.store.ReplaceRace(ctx, race.ID, race); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/absamad/pigeontracker/racing"
)

// SearchPigeons scans every race for ring numbers containing the query and
// returns per-pigeon career summaries.
func (h *Handler) SearchPigeons(c echo.Context) error {
	ring := strings.TrimSpace(c.QueryParam("ring"))
	if ring == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing ring param")
	}

	races, err := h.store.ListRaces(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	summaries := racing.SearchRing(races, ring)
	if summaries == nil {
		summaries = []racing.PigeonSummary{}
	}
	return c.JSON(http.StatusOK, summaries)
}

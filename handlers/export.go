package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/absamad/pigeontracker/export"
)

// ExportRacePDF renders a race's ranked result sheet as a PDF download.
func (h *Handler) ExportRacePDF(c echo.Context) error {
	race, err := h.store.GetRace(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	doc, err := export.RacePDF(race)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", race.Name+"-results.pdf"))
	return c.Blob(http.StatusOK, "application/pdf", doc)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/absamad/pigeontracker/racing"
	"github.com/absamad/pigeontracker/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	store  store.RaceStore
	JWTKey []byte
}

// New creates a Handler with the given database connection, race store and
// JWT signing key.
func New(db *bun.DB, st store.RaceStore, jwtKey []byte) *Handler {
	return &Handler{db: db, store: st, JWTKey: jwtKey}
}

// httpError maps core and store errors onto HTTP statuses: rejected drafts
// and invalid timings are 400, missing races/entries 404, everything else is
// a persistence failure surfaced with the underlying message.
func httpError(err error) error {
	switch {
	case racing.IsValidation(err), errors.Is(err, racing.ErrInvalidTiming):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, racing.ErrEntryNotFound), errors.Is(err, store.ErrRaceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

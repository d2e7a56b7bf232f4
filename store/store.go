// Package store persists races and delivers change notifications. The same
// bun-backed implementation serves PostgreSQL (the hosted document store) and
// an embedded SQLite file (the local fallback, which has no subscriptions).
package store

import (
	"context"
	"errors"

	"github.com/absamad/pigeontracker/models"
	"github.com/absamad/pigeontracker/racing"
)

// ErrRaceNotFound is returned when an operation references a missing race.
var ErrRaceNotFound = errors.New("race not found")

// ErrSubscribeUnsupported is returned by backends without change
// notification, such as the SQLite fallback.
var ErrSubscribeUnsupported = errors.New("store: subscriptions not supported by this backend")

// RaceStore is the persistence boundary used by the handlers. ReplaceRace is
// a full-document overwrite used after any entry-list mutation; UpdateRaceMeta
// patches metadata only and never touches entries.
type RaceStore interface {
	ListRaces(ctx context.Context) ([]*models.Race, error)
	GetRace(ctx context.Context, id string) (*models.Race, error)
	CreateRace(ctx context.Context, race *models.Race) (string, error)
	ReplaceRace(ctx context.Context, id string, race *models.Race) error
	UpdateRaceMeta(ctx context.Context, id string, meta racing.RaceDraft) error
	DeleteRace(ctx context.Context, id string) error

	// SubscribeRaces calls fn with the full race list on every remote change
	// until the returned stop function is called.
	SubscribeRaces(ctx context.Context, fn func([]*models.Race)) (stop func(), err error)
}

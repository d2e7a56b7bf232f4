package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/absamad/pigeontracker/models"
	"github.com/absamad/pigeontracker/racing"
)

// racesChannel is the NOTIFY channel fired after every write.
const racesChannel = "races_changed"

// BunStore is the bun-backed RaceStore. notify is true only for PostgreSQL,
// where LISTEN/NOTIFY backs SubscribeRaces.
type BunStore struct {
	db     *bun.DB
	log    *zap.Logger
	notify bool
}

// New creates a BunStore. Pass notify=true for PostgreSQL backends.
func New(db *bun.DB, log *zap.Logger, notify bool) *BunStore {
	return &BunStore{db: db, log: log, notify: notify}
}

// ListRaces returns all races, newest first.
func (s *BunStore) ListRaces(ctx context.Context) ([]*models.Race, error) {
	var races []*models.Race
	err := s.db.NewSelect().Model(&races).OrderExpr("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return races, nil
}

// GetRace returns a single race by id.
func (s *BunStore) GetRace(ctx context.Context, id string) (*models.Race, error) {
	race := &models.Race{}
	err := s.db.NewSelect().Model(race).Where("rc.id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return race, nil
}

// CreateRace inserts a race with its entry list attached and returns its id.
func (s *BunStore) CreateRace(ctx context.Context, race *models.Race) (string, error) {
	if race.ID == "" {
		race.ID = uuid.NewString()
	}
	race.CreatedAt = time.Now().UTC()
	race.UpdatedAt = race.CreatedAt

	if _, err := s.db.NewInsert().Model(race).Exec(ctx); err != nil {
		return "", err
	}
	s.fireNotify(ctx)
	return race.ID, nil
}

// ReplaceRace overwrites the whole race document, entries included.
func (s *BunStore) ReplaceRace(ctx context.Context, id string, race *models.Race) error {
	race.UpdatedAt = time.Now().UTC()

	res, err := s.db.NewUpdate().Model(race).
		Column("name", "date", "location", "distance", "release_time", "visibility", "season", "entries", "updated_at").
		Where("rc.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrRaceNotFound
	}
	s.fireNotify(ctx)
	return nil
}

// UpdateRaceMeta patches race metadata, leaving the entry list untouched.
func (s *BunStore) UpdateRaceMeta(ctx context.Context, id string, meta racing.RaceDraft) error {
	res, err := s.db.NewUpdate().Model((*models.Race)(nil)).
		Set("name = ?", meta.Name).
		Set("date = ?", meta.Date).
		Set("location = ?", meta.Location).
		Set("distance = ?", meta.Distance).
		Set("release_time = ?", meta.ReleaseTime).
		Set("visibility = ?", meta.Visibility).
		Set("season = ?", meta.Season).
		Set("updated_at = ?", time.Now().UTC()).
		Where("rc.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrRaceNotFound
	}
	s.fireNotify(ctx)
	return nil
}

// DeleteRace removes a race and, with it, every entry it owns.
func (s *BunStore) DeleteRace(ctx context.Context, id string) error {
	res, err := s.db.NewDelete().Model((*models.Race)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrRaceNotFound
	}
	s.fireNotify(ctx)
	return nil
}

// SubscribeRaces listens on the NOTIFY channel and pushes the full race list
// to fn after every change. The SQLite fallback has no notification support.
func (s *BunStore) SubscribeRaces(ctx context.Context, fn func([]*models.Race)) (func(), error) {
	if !s.notify {
		return nil, ErrSubscribeUnsupported
	}

	ln := pgdriver.NewListener(s.db)
	if err := ln.Listen(ctx, racesChannel); err != nil {
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer func() { _ = ln.Close() }()
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-ln.Channel():
				if !ok {
					return
				}
				races, err := s.ListRaces(subCtx)
				if err != nil {
					if subCtx.Err() == nil {
						s.log.Warn("list races after notify failed", zap.Error(err))
					}
					continue
				}
				fn(races)
			}
		}
	}()

	return cancel, nil
}

func (s *BunStore) fireNotify(ctx context.Context) {
	if !s.notify {
		return
	}
	if err := pgdriver.Notify(ctx, s.db, racesChannel, ""); err != nil {
		s.log.Warn("notify failed", zap.Error(err))
	}
}

// cmd/migrate/main.go
// Imports a browser localStorage export of races (the old client kept all
// race data client-side as a single JSON array) into the database.
//
// Usage:
//
//	go run ./cmd/migrate -file races-export.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/absamad/pigeontracker/config"
	bundb "github.com/absamad/pigeontracker/db"
	"github.com/absamad/pigeontracker/logger"
	"github.com/absamad/pigeontracker/models"
	"github.com/absamad/pigeontracker/racing"
	"github.com/absamad/pigeontracker/store"
)

func main() {
	file := flag.String("file", "", "path to the races JSON export (required)")
	flag.Parse()

	if *file == "" {
		log.Fatal("-file is required")
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read export: %v", err)
	}

	var races []*models.Race
	if err := json.Unmarshal(raw, &races); err != nil {
		log.Fatalf("parse export: %v", err)
	}

	ctx := context.Background()
	cfg := config.Load()
	zlog, err := logger.New(cfg.Debug)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	raceStore := store.New(db, zlog, cfg.StoreDriver == config.DriverPostgres)

	imported := 0
	for _, race := range races {
		// Old local ids were millisecond timestamps; give imports real ids
		// and normalize rankings on the way in.
		race.ID = uuid.NewString()
		if race.Entries == nil {
			race.Entries = []models.Entry{}
		}
		racing.Rank(race.Entries)

		if _, err := raceStore.CreateRace(ctx, race); err != nil {
			log.Fatalf("import race %q: %v", race.Name, err)
		}
		imported++
	}

	log.Printf("imported %d races", imported)
}

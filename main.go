package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/absamad/pigeontracker/config"
	"github.com/absamad/pigeontracker/db"
	"github.com/absamad/pigeontracker/handlers"
	applog "github.com/absamad/pigeontracker/logger"
	mw "github.com/absamad/pigeontracker/middleware"
	"github.com/absamad/pigeontracker/store"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	raceStore := store.New(bdb, logger, cfg.StoreDriver == config.DriverPostgres)
	h := handlers.New(bdb, raceStore, cfg.JWTKey())

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public – viewing results needs no session
	e.POST("/rp/signin", h.Signin)
	e.GET("/rp/races", h.Races)
	e.GET("/rp/races/:id", h.Race)
	e.GET("/rp/races/:id/stats", h.RaceStats)
	e.GET("/rp/races/:id/export.pdf", h.ExportRacePDF)
	e.GET("/rp/pigeons", h.SearchPigeons)
	e.GET("/rp/live", h.Live)

	// Protected – every mutation requires a valid, unexpired session token
	rp := e.Group("/rp", mw.JWT(cfg.JWTKey()))
	rp.POST("/races", h.CreateRace)
	rp.PUT("/races/:id", h.UpdateRace)
	rp.DELETE("/races/:id", h.DeleteRace)
	rp.POST("/races/:id/copy", h.CopyRace)
	rp.POST("/races/:id/entries", h.CreateEntry)
	rp.PUT("/races/:id/entries/:entryID", h.UpdateEntry)
	rp.DELETE("/races/:id/entries/:entryID", h.DeleteEntry)
	rp.POST("/password-hash", h.PasswordHash)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

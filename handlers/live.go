package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/absamad/pigeontracker/models"
)

var upgrader = websocket.Upgrader{
	// The results page is served from other origins than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// Live streams the full race list to the client over a websocket: once on
// connect, then again after every store change. The client replaces its state
// wholesale on each message; there is no merging.
func (h *Handler) Live(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	send := func(races []*models.Race) {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(races); err != nil {
			_ = conn.Close()
		}
	}

	races, err := h.store.ListRaces(ctx)
	if err != nil {
		zap.L().Warn("initial race list for live feed failed", zap.Error(err))
		return nil
	}
	send(races)

	stop, err := h.store.SubscribeRaces(ctx, send)
	if err != nil {
		// Fallback store without subscriptions: leave the initial snapshot
		// and close.
		zap.L().Info("live updates unavailable", zap.Error(err))
		return nil
	}
	defer stop()

	// Block until the client goes away; reads also service close frames.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return nil
		}
	}
}

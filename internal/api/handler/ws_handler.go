package handler

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/mangrovewatch/guardian-system/internal/api/metrics"
	"github.com/mangrovewatch/guardian-system/internal/websocket"
	"github.com/mangrovewatch/guardian-system/pkg/logger"
)

// WSHandler upgrades /ws requests into live notification sessions.
type WSHandler struct {
	registry *websocket.Registry
	upgrader gorilla.Upgrader
}

func NewWSHandler(registry *websocket.Registry) *WSHandler {
	return &WSHandler{
		registry: registry,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens via the in-band identity frame, not the handshake,
			// so the upgrade itself accepts any origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Serve handles GET /ws.
func (h *WSHandler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := websocket.NewClient(h.registry, conn, logger.Get())
	client.Start()

	metrics.LiveSessionsActive.Inc()
	go func() {
		<-client.Done()
		metrics.LiveSessionsActive.Dec()
	}()
	return nil
}

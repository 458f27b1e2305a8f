package handler

import (
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/pkg/serverutils"
	internalWS "mycloud-drive/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// EventsHandler upgrades authenticated requests to the files_changed push socket.
type EventsHandler struct {
	hub    *internalWS.Hub
	auth   fiber.Handler
	logger logger.ILogger
}

// NewEventsHandler expects auth to accept the "token" query parameter, since
// browsers cannot set headers on a websocket handshake.
func NewEventsHandler(hub *internalWS.Hub, auth fiber.Handler, log logger.ILogger) *EventsHandler {
	return &EventsHandler{
		hub:    hub,
		auth:   auth,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *EventsHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	userID, err := serverutils.UserID(c)
	if err != nil {
		return err
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.session(conn, userID)
	})(c)
}

func (h *EventsHandler) session(conn *websocket.Conn, userID uuid.UUID) {
	h.logger.Info("EventsHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID.String()})
	internalWS.ServeWs(h.hub, conn, userID)
	h.logger.Info("EventsHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID.String()})
}

func (h *EventsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/events", h.auth, h.ServeWs)
}

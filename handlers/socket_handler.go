package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"staffly/models"
	"staffly/pkg/realtime"
)

type SocketHandler struct {
	hub *realtime.Hub
	log *zap.Logger
}

func NewSocketHandler(hub *realtime.Hub, log *zap.Logger) *SocketHandler {
	return &SocketHandler{hub: hub, log: log}
}

// Upgrade rejects plain HTTP requests on the socket route.
func (h *SocketHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve godoc
// @Summary Realtime events
// @Description Websocket carrying online_users, new_leave_request, leave_status_updated, candidate_moved and payroll_generated events. Pass the token as ?token= or a Bearer header.
// @Tags Realtime
// @Router /ws [get]
func (h *SocketHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		claims, ok := conn.Locals("user").(*models.Claims)
		if !ok || claims == nil {
			_ = conn.Close()
			return
		}

		client := realtime.NewClient(claims.UserID.Hex(), claims.CompanyID.Hex(), claims.IsAdmin())
		h.hub.Join(client)
		defer h.hub.Leave(client)
		h.log.Info("socket connected", zap.String("user_id", client.UserID))

		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				h.log.Info("socket disconnected", zap.String("user_id", client.UserID))
				return
			case ev, open := <-client.Events():
				if !open {
					return
				}
				if err := conn.WriteJSON(ev); err != nil {
					h.log.Warn("socket write failed", zap.String("user_id", client.UserID), zap.Error(err))
					return
				}
			}
		}
	})
}

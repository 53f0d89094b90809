package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/server/websocket"
)

type WebSocketHandler struct {
	hub      *websocket.WsHub
	upgrader gorillaws.Upgrader
	logger   zerolog.Logger
}

func NewWebSocketHandler(hub *websocket.WsHub, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// HandleConnection upgrades a dashboard connection and parks it in the hub.
// The merchant identity comes from the authenticated claims.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	merchantID := c.GetString("merchant_id")
	if merchantID == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "token has no merchant scope"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := &websocket.WsClient{MerchantID: merchantID, Conn: conn}
	h.hub.Register <- client

	go func() {
		defer func() {
			h.hub.Unregister <- client
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

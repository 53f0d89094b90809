package websocket

import (
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/rewardly/cbs/internal/domain"
)

// WsHub fans alert and campaign lifecycle events out to merchant dashboard
// connections. One merchant may hold several connections.
type WsHub struct {
	Clients    map[string]map[*websocket.Conn]bool
	Broadcast  chan WsMessage
	Register   chan *WsClient
	Unregister chan *WsClient
	Logger     zerolog.Logger
}

type WsClient struct {
	MerchantID string
	Conn       *websocket.Conn
}

type WsMessage struct {
	Type       string              `json:"type"`
	MerchantID string              `json:"merchant_id"`
	Alert      *domain.BudgetAlert `json:"alert,omitempty"`
	Campaigns  []*domain.Campaign  `json:"campaigns,omitempty"`
}

const (
	msgAlert            = "alert"
	msgCampaignsPaused  = "campaigns_paused"
	msgCampaignsResumed = "campaigns_resumed"
)

func NewWsHub(logger zerolog.Logger) *WsHub {
	return &WsHub{
		Clients:    make(map[string]map[*websocket.Conn]bool),
		Broadcast:  make(chan WsMessage, 100),
		Register:   make(chan *WsClient, 100),
		Unregister: make(chan *WsClient, 100),
		Logger:     logger,
	}
}

func (h *WsHub) Run() {
	for {
		select {
		case client := <-h.Register:
			if h.Clients[client.MerchantID] == nil {
				h.Clients[client.MerchantID] = make(map[*websocket.Conn]bool)
			}
			h.Clients[client.MerchantID][client.Conn] = true
			h.Logger.Info().
				Str("merchant_id", client.MerchantID).
				Int("connection_count", len(h.Clients[client.MerchantID])).
				Msg("WebSocket client registered")

		case client := <-h.Unregister:
			if clients, ok := h.Clients[client.MerchantID]; ok {
				delete(clients, client.Conn)
				if len(clients) == 0 {
					delete(h.Clients, client.MerchantID)
				}
				client.Conn.Close()
				h.Logger.Info().
					Str("merchant_id", client.MerchantID).
					Int("connection_count", len(clients)).
					Msg("WebSocket client unregistered")
			}

		case message := <-h.Broadcast:
			clients, ok := h.Clients[message.MerchantID]
			if !ok || message.MerchantID == "" {
				continue
			}
			for conn := range clients {
				if err := conn.WriteJSON(message); err != nil {
					h.Logger.Err(err).
						Str("merchant_id", message.MerchantID).
						Str("type", message.Type).
						Msg("Failed to send WebSocket message")
					conn.Close()
					delete(clients, conn)
				}
			}
			if len(clients) == 0 {
				delete(h.Clients, message.MerchantID)
			}
		}
	}
}

// NotifyAlert implements the monitor's notifier.
func (h *WsHub) NotifyAlert(merchantID string, alert *domain.BudgetAlert) {
	h.Broadcast <- WsMessage{
		Type:       msgAlert,
		MerchantID: merchantID,
		Alert:      alert,
	}
}

func (h *WsHub) NotifyCampaignsPaused(merchantID string, campaigns []*domain.Campaign) {
	h.Broadcast <- WsMessage{
		Type:       msgCampaignsPaused,
		MerchantID: merchantID,
		Campaigns:  campaigns,
	}
}

func (h *WsHub) NotifyCampaignsResumed(merchantID string, campaigns []*domain.Campaign) {
	h.Broadcast <- WsMessage{
		Type:       msgCampaignsResumed,
		MerchantID: merchantID,
		Campaigns:  campaigns,
	}
}

package websocket

import (
	"encoding/json"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

const (
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
	MessageTypeError = "error"
)

// WSMessage is the frame exchanged with clients in both directions.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	ChatID    string      `json:"chat_id,omitempty"`
	Timestamp string      `json:"timestamp"`
}

func newWSMessage(evt entity.Event) WSMessage {
	ts := evt.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return WSMessage{
		Type:      string(evt.Type),
		Data:      evt.Data,
		ChatID:    evt.SessionID,
		Timestamp: ts.Format(time.RFC3339),
	}
}

// HandleClientMessage processes a frame sent by a client. Chat traffic goes
// through the HTTP API; the socket only answers keep-alives.
func (m *Manager) HandleClientMessage(client *Client, raw []byte) {
	var msg WSMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		logger.Warn("WebSocket: malformed frame from %s: %v", client.UserID, err)
		m.sendToClient(client, WSMessage{Type: MessageTypeError, Data: map[string]string{"message": "Invalid message format"}})
		return
	}

	switch msg.Type {
	case MessageTypePing:
		m.sendToClient(client, WSMessage{Type: MessageTypePong, Data: map[string]string{"status": "alive"}})
	default:
		logger.Debug("WebSocket: unknown message type '%s' from %s", msg.Type, client.UserID)
		m.sendToClient(client, WSMessage{Type: MessageTypeError, Data: map[string]string{"message": "Unknown message type"}})
	}
}

func (m *Manager) sendToClient(client *Client, msg WSMessage) {
	if msg.Timestamp == "" {
		msg.Timestamp = time.Now().Format(time.RFC3339)
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	if _, ok := m.clients[client.UserID][client]; !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

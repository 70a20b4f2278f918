package entity

import "time"

type EventType string

const (
	EventNewMessage      EventType = "new_message"
	EventChatListUpdate  EventType = "chat_list_update"
	EventAssistantTyping EventType = "assistant_typing"
)

// Event is a realtime notification pushed to session participants.
type Event struct {
	Type      EventType   `json:"type"`
	SessionID string      `json:"chat_id,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

package entity

import "time"

type MessageAction string

const (
	ActionPaymentRequest   MessageAction = "PAYMENT_REQUEST"
	ActionPaymentComplete  MessageAction = "PAYMENT_COMPLETE"
	ActionInterviewRequest MessageAction = "INTERVIEW_REQUEST"
	ActionCallStart        MessageAction = "CALL_START"
	ActionCallEnd          MessageAction = "CALL_END"
)

func (a MessageAction) Valid() bool {
	switch a {
	case ActionPaymentRequest, ActionPaymentComplete, ActionInterviewRequest, ActionCallStart, ActionCallEnd:
		return true
	}
	return false
}

// IsNotice reports whether messages carrying a are shown as system notices
// rather than as chat bubbles.
func (a MessageAction) IsNotice() bool {
	return a == ActionCallStart || a == ActionCallEnd
}

// SystemID is the sender of notices the service writes into a transcript.
const SystemID = "system"

var blockedNotice = LocalizedText{Ko: "차단된 채팅입니다.", Zh: "该聊天已被屏蔽。", En: "This chat has been blocked."}

// BlockedNotice is the transcript entry written when a session is blocked.
func BlockedNotice(lang Language) string {
	return blockedNotice.Get(lang)
}

// Message is one entry of a session transcript. Messages are append-only.
type Message struct {
	ID             string        `json:"id" firestore:"id"`
	SessionID      string        `json:"session_id" firestore:"sessionId"`
	SenderID       string        `json:"sender_id" firestore:"senderId"`
	Text           string        `json:"text" firestore:"text"`
	TranslatedText string        `json:"translated_text,omitempty" firestore:"translatedText,omitempty"`
	Timestamp      time.Time     `json:"timestamp" firestore:"timestamp"`
	Seq            int64         `json:"seq" firestore:"seq"`
	IsSystem       bool          `json:"is_system,omitempty" firestore:"isSystem,omitempty"`
	ActionType     MessageAction `json:"action_type,omitempty" firestore:"actionType,omitempty"`
}

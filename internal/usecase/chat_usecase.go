package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/internal/domain/service"
	"github.com/langsb16-collab/chinafood0205/internal/infrastructure/ratelimit"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
)

const DefaultAssistantTimeout = 30 * time.Second

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	profiles    *ProfileUseCase
	assistant   Assistant
	notifier    Notifier
	rateLimiter RateLimiter
	timeout     time.Duration
	now         func() time.Time

	mu      sync.Mutex
	pending map[string]struct{}
}

// NewChatUseCase wires the chat flows. profiles may be nil, in which case
// counterparties see the caller's id instead of a display name.
func NewChatUseCase(
	chatRepo repository.ChatRepository,
	profiles *ProfileUseCase,
	assistant Assistant,
	notifier Notifier,
	rateLimiter RateLimiter,
	assistantTimeout time.Duration,
) *ChatUseCase {
	if assistantTimeout <= 0 {
		assistantTimeout = DefaultAssistantTimeout
	}
	return &ChatUseCase{
		chatRepo:    chatRepo,
		profiles:    profiles,
		assistant:   assistant,
		notifier:    notifier,
		rateLimiter: rateLimiter,
		timeout:     assistantTimeout,
		now:         time.Now,
		pending:     make(map[string]struct{}),
	}
}

type StartChatInput struct {
	CounterpartyID   string
	CounterpartyName string
	CounterpartyIcon string
	Type             entity.SessionType
	RelatedID        string
	Language         entity.Language
}

type SendMessageInput struct {
	SessionID   string
	Text        string
	ActionType  entity.MessageAction
	TranslateTo entity.Language
	Language    entity.Language
}

// SessionView is a session plus whether an assistant reply is in flight.
type SessionView struct {
	*entity.ChatSession
	AssistantPending bool `json:"assistant_pending"`
}

// StartChat opens the conversation with a counterparty, reusing the session
// that already matches (participants, type, related id). AI sessions always
// talk to the bot identity. The session is returned as seen by userID.
func (uc *ChatUseCase) StartChat(ctx context.Context, userID string, input StartChatInput) (*entity.ChatSession, bool, error) {
	if !input.Type.Valid() {
		return nil, false, errors.Validation("type", "must be one of: TRADE JOB REAL_ESTATE SUPPORT AI")
	}

	req := service.SessionRequest{
		CounterpartyID:   strings.TrimSpace(input.CounterpartyID),
		CounterpartyName: strings.TrimSpace(input.CounterpartyName),
		CounterpartyIcon: input.CounterpartyIcon,
		Type:             input.Type,
		RelatedID:        strings.TrimSpace(input.RelatedID),
	}
	if input.Type == entity.SessionAI {
		req.CounterpartyID = entity.BotID
		req.CounterpartyName = entity.BotName(languageOrDefault(input.Language))
		req.CounterpartyIcon = ""
		req.RelatedID = ""
	}

	if req.CounterpartyID == "" {
		return nil, false, errors.Validation("counterparty_id", "is required")
	}
	if req.CounterpartyID == userID {
		logger.Warn("StartChat Error: User %s attempted to chat with themselves", userID)
		return nil, false, errors.BadRequest("You cannot start a chat with yourself", nil)
	}
	if req.CounterpartyName == "" {
		req.CounterpartyName = req.CounterpartyID
	}

	existing, err := uc.findSession(ctx, userID, req)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing.ViewedBy(userID), false, nil
	}

	if err := uc.allow(userID, ratelimit.ActionCreateChat); err != nil {
		logger.Warn("StartChat Rate Limited: User %s", userID)
		return nil, false, err
	}

	uc.describeRequester(ctx, userID, &req)

	session, created, err := uc.chatRepo.FindOrCreate(ctx, userID, req)
	if err != nil {
		logger.Error("StartChat Error: Failed to open session for %s: %v", userID, err)
		return nil, false, err
	}

	if created {
		logger.Info("StartChat: created %s session %s for %s", session.Type, session.ID, userID)
		uc.publish(ctx, session, entity.Event{
			Type:      entity.EventChatListUpdate,
			SessionID: session.ID,
			Data:      summaryData(session.ID, session.LastMessage, session.UpdatedAt),
			Timestamp: session.UpdatedAt,
		})
	}
	return session.ViewedBy(userID), created, nil
}

// describeRequester fills the caller's own display name and avatar, which the
// counterparty sees for this session.
func (uc *ChatUseCase) describeRequester(ctx context.Context, userID string, req *service.SessionRequest) {
	if uc.profiles == nil {
		return
	}
	profile, err := uc.profiles.GetProfile(ctx, userID)
	if err != nil {
		logger.Warn("StartChat: no profile for %s: %v", userID, err)
		return
	}
	req.RequesterName = profile.Name
	req.RequesterIcon = profile.Avatar
}

// findSession looks for the matching session without taking a create token,
// so reopening a conversation is never rate limited.
func (uc *ChatUseCase) findSession(ctx context.Context, userID string, req service.SessionRequest) (*entity.ChatSession, error) {
	sessions, _, err := uc.chatRepo.ListByUserID(ctx, userID, req.Type, 0, 0)
	if err != nil {
		logger.Error("StartChat Error: Failed to list sessions of %s: %v", userID, err)
		return nil, err
	}
	return service.FindSession(sessions, userID, req), nil
}

// SendMessage appends the user's message and, in AI sessions, the assistant's
// reply to it. The returned messages are in transcript order.
func (uc *ChatUseCase) SendMessage(ctx context.Context, userID string, input SendMessageInput) ([]*entity.Message, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.BadRequest("Message text is required", nil)
	}
	if input.ActionType != "" && !input.ActionType.Valid() {
		return nil, errors.Validation("action_type", "is not a known message action")
	}
	if input.TranslateTo != "" && input.TranslateTo != entity.LangZH && input.TranslateTo != entity.LangEN {
		return nil, errors.Validation("translate_to", "must be one of: zh en")
	}

	session, err := uc.participantSession(ctx, userID, input.SessionID)
	if err != nil {
		logger.Warn("SendMessage Error: %v", err)
		return nil, err
	}
	if session.IsBlocked {
		return nil, errors.Forbidden("This chat has been blocked", nil)
	}

	if err := uc.allow(userID, ratelimit.ActionSendMessage); err != nil {
		logger.Warn("SendMessage Rate Limited: User %s", userID)
		return nil, err
	}

	isAI := session.Type == entity.SessionAI
	if isAI {
		if !uc.acquire(session.ID) {
			return nil, errors.Conflict("The assistant is still replying to the previous message")
		}
		defer uc.release(session.ID)
	}

	userMsg := &entity.Message{
		ID:         service.NewMessageID(),
		SenderID:   userID,
		Text:       input.Text,
		ActionType: input.ActionType,
		IsSystem:   input.ActionType.IsNotice(),
	}
	if input.TranslateTo != "" {
		userMsg.TranslatedText = uc.translate(ctx, input.Text, input.TranslateTo)
	}
	userMsg.Timestamp = uc.now()
	if err := uc.appendMessage(ctx, session, userMsg); err != nil {
		return nil, err
	}

	if !isAI {
		return []*entity.Message{userMsg}, nil
	}

	botMsg, err := uc.reply(ctx, session, input.Text, languageOrDefault(input.Language))
	if err != nil {
		return []*entity.Message{userMsg}, err
	}
	return []*entity.Message{userMsg, botMsg}, nil
}

// reply asks the assistant and appends its answer. The assistant call is
// bounded by the configured timeout; the append is not cancelled with the
// caller so the transcript always receives the reply.
func (uc *ChatUseCase) reply(ctx context.Context, session *entity.ChatSession, prompt string, lang entity.Language) (*entity.Message, error) {
	uc.publish(ctx, session, typingEvent(session.ID, true, uc.now()))
	defer func() {
		uc.publish(context.WithoutCancel(ctx), session, typingEvent(session.ID, false, uc.now()))
	}()

	askCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	text := uc.assistant.GenerateReply(askCtx, prompt, lang)
	cancel()

	botMsg := &entity.Message{
		ID:        service.NewMessageID(),
		SenderID:  entity.BotID,
		Text:      text,
		Timestamp: uc.now(),
	}
	if err := uc.appendMessage(context.WithoutCancel(ctx), session, botMsg); err != nil {
		return nil, err
	}
	return botMsg, nil
}

// translate renders Korean text in lang for the counterparty. The assistant
// never fails, so the result is either the translation or its fallback.
func (uc *ChatUseCase) translate(ctx context.Context, text string, lang entity.Language) string {
	askCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	tr := uc.assistant.Translate(askCtx, text)
	if lang == entity.LangEN {
		return tr.En
	}
	return tr.Zh
}

func (uc *ChatUseCase) appendMessage(ctx context.Context, session *entity.ChatSession, msg *entity.Message) error {
	if err := uc.chatRepo.AppendMessage(ctx, session.ID, msg); err != nil {
		logger.Error("SendMessage Error: Failed to append message to %s: %v", session.ID, err)
		return err
	}

	uc.publish(ctx, session, entity.Event{
		Type:      entity.EventNewMessage,
		SessionID: session.ID,
		Data:      msg,
		Timestamp: msg.Timestamp,
	})
	uc.publish(ctx, session, entity.Event{
		Type:      entity.EventChatListUpdate,
		SessionID: session.ID,
		Data:      summaryData(session.ID, msg.Text, msg.Timestamp),
		Timestamp: msg.Timestamp,
	})
	return nil
}

func (uc *ChatUseCase) ListSessions(ctx context.Context, userID string, sessionType entity.SessionType, limit, offset int) ([]*entity.ChatSession, int64, error) {
	if sessionType != "" && !sessionType.Valid() {
		return nil, 0, errors.Validation("type", "must be one of: TRADE JOB REAL_ESTATE SUPPORT AI")
	}
	sessions, total, err := uc.chatRepo.ListByUserID(ctx, userID, sessionType, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	views := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		views[i] = s.ViewedBy(userID)
	}
	return views, total, nil
}

func (uc *ChatUseCase) GetSession(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	session, err := uc.participantSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &SessionView{ChatSession: session.ViewedBy(userID), AssistantPending: uc.IsPending(sessionID)}, nil
}

func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, sessionID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.participantSession(ctx, userID, sessionID); err != nil {
		return nil, 0, err
	}
	return uc.chatRepo.ListMessages(ctx, sessionID, limit, offset)
}

// BlockSession stops any further messages in the session and leaves a notice
// in the transcript, written in lang.
func (uc *ChatUseCase) BlockSession(ctx context.Context, userID, sessionID string, lang entity.Language) error {
	session, err := uc.participantSession(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	if session.IsBlocked {
		return nil
	}
	if err := uc.chatRepo.SetBlocked(ctx, sessionID, true); err != nil {
		logger.Error("BlockSession Error: %v", err)
		return err
	}
	logger.Info("BlockSession: %s blocked session %s", userID, sessionID)

	notice := &entity.Message{
		ID:        service.NewMessageID(),
		SenderID:  entity.SystemID,
		Text:      entity.BlockedNotice(languageOrDefault(lang)),
		Timestamp: uc.now(),
		IsSystem:  true,
	}
	if err := uc.appendMessage(ctx, session, notice); err != nil {
		return err
	}

	session.IsBlocked = true
	uc.publish(ctx, session, entity.Event{
		Type:      entity.EventChatListUpdate,
		SessionID: sessionID,
		Data:      map[string]interface{}{"chat_id": sessionID, "is_blocked": true},
		Timestamp: uc.now(),
	})
	return nil
}

// IsPending reports whether an assistant reply is in flight for sessionID.
func (uc *ChatUseCase) IsPending(sessionID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	_, ok := uc.pending[sessionID]
	return ok
}

func (uc *ChatUseCase) acquire(sessionID string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if _, busy := uc.pending[sessionID]; busy {
		return false
	}
	uc.pending[sessionID] = struct{}{}
	return true
}

func (uc *ChatUseCase) release(sessionID string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	delete(uc.pending, sessionID)
}

func (uc *ChatUseCase) participantSession(ctx context.Context, userID, sessionID string) (*entity.ChatSession, error) {
	session, err := uc.chatRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.HasParticipant(userID) {
		return nil, errors.Forbidden(fmt.Sprintf("User %s is not a participant of this chat", userID), nil)
	}
	return session, nil
}

func (uc *ChatUseCase) allow(userID, action string) error {
	if uc.rateLimiter == nil {
		return nil
	}
	if ok, wait := uc.rateLimiter.Allow(userID, action); !ok {
		return errors.TooManyRequests(fmt.Sprintf("Rate limit exceeded. Please wait %v", wait.Round(time.Second)))
	}
	return nil
}

// publish sends evt to the human participants of session. Delivery is best
// effort: failures are logged only.
func (uc *ChatUseCase) publish(ctx context.Context, session *entity.ChatSession, evt entity.Event) {
	if uc.notifier == nil {
		return
	}
	recipients := make([]string, 0, len(session.Participants))
	for _, p := range session.Participants {
		if p != entity.BotID {
			recipients = append(recipients, p)
		}
	}
	if err := uc.notifier.Publish(ctx, evt, recipients...); err != nil {
		logger.Warn("publish %s for %s: %v", evt.Type, session.ID, err)
	}
}

func summaryData(sessionID, lastMessage string, updatedAt time.Time) map[string]interface{} {
	return map[string]interface{}{
		"chat_id":      sessionID,
		"last_message": lastMessage,
		"updated_at":   updatedAt,
	}
}

func typingEvent(sessionID string, pending bool, at time.Time) entity.Event {
	return entity.Event{
		Type:      entity.EventAssistantTyping,
		SessionID: sessionID,
		Data:      map[string]bool{"pending": pending},
		Timestamp: at,
	}
}

func languageOrDefault(lang entity.Language) entity.Language {
	if lang == "" {
		return entity.DefaultLanguage
	}
	return lang
}

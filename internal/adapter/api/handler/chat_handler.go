package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/usecase"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
	"github.com/langsb16-collab/chinafood0205/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startChatRequest struct {
	CounterpartyID   string `json:"counterparty_id" validate:"required_unless=Type AI"`
	CounterpartyName string `json:"counterparty_name"`
	CounterpartyIcon string `json:"counterparty_icon" validate:"omitempty,url"`
	Type             string `json:"type" validate:"required,oneof=TRADE JOB REAL_ESTATE SUPPORT AI"`
	RelatedID        string `json:"related_id"`
}

type sendMessageRequest struct {
	Text        string `json:"text" validate:"required"`
	ActionType  string `json:"action_type" validate:"omitempty,oneof=PAYMENT_REQUEST PAYMENT_COMPLETE INTERVIEW_REQUEST CALL_START CALL_END"`
	TranslateTo string `json:"translate_to" validate:"omitempty,oneof=zh en"`
}

// StartChat opens or reopens the conversation with a counterparty.
// 201 means a new session was created, 200 that an existing one matched.
func (h *ChatHandler) StartChat(c echo.Context) error {
	var req startChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	session, created, err := h.chatUseCase.StartChat(c.Request().Context(), userID, usecase.StartChatInput{
		CounterpartyID:   req.CounterpartyID,
		CounterpartyName: req.CounterpartyName,
		CounterpartyIcon: req.CounterpartyIcon,
		Type:             entity.SessionType(req.Type),
		RelatedID:        req.RelatedID,
		Language:         requestLanguage(c),
	})
	if err != nil {
		return response.Error(c, err)
	}

	if created {
		return response.Created(c, session)
	}
	return response.Success(c, session)
}

// GetUserChats lists the caller's sessions, newest first, optionally by type.
func (h *ChatHandler) GetUserChats(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	sessions, total, err := h.chatUseCase.ListSessions(
		c.Request().Context(),
		userID,
		entity.SessionType(c.QueryParam("type")),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, sessions, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) GetChatByID(c echo.Context) error {
	userID := c.Get("uid").(string)

	session, err := h.chatUseCase.GetSession(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, session)
}

// SendMessage appends a message; in AI sessions the reply comes back in the
// same response.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	messages, err := h.chatUseCase.SendMessage(c.Request().Context(), userID, usecase.SendMessageInput{
		SessionID:   c.Param("id"),
		Text:        req.Text,
		ActionType:  entity.MessageAction(req.ActionType),
		TranslateTo: entity.Language(req.TranslateTo),
		Language:    requestLanguage(c),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"messages": messages,
	})
}

// GetChatMessages returns the transcript in sequence order.
func (h *ChatHandler) GetChatMessages(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(
		c.Request().Context(),
		userID,
		c.Param("id"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) BlockChat(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.chatUseCase.BlockSession(c.Request().Context(), userID, c.Param("id"), requestLanguage(c)); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"chat_id":    c.Param("id"),
		"is_blocked": true,
	})
}

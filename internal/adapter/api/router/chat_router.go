package router

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
)

func SetupChatRouter(e *echo.Echo, chatHandler *handler.ChatHandler, authMiddleware *middleware.AuthMiddleware, penaltyMiddleware *middleware.PenaltyMiddleware) {
	chatGroup := e.Group("/v1/chats")
	chatGroup.Use(authMiddleware.Authenticate)

	chatGroup.POST("", chatHandler.StartChat, penaltyMiddleware.RejectBlocked) // POST /v1/chats - Open or reopen a session
	chatGroup.GET("", chatHandler.GetUserChats)                                // GET /v1/chats?type= - Sessions of the caller
	chatGroup.GET("/:id", chatHandler.GetChatByID)
	chatGroup.POST("/:id/block", chatHandler.BlockChat)

	chatGroup.POST("/:id/messages", chatHandler.SendMessage, penaltyMiddleware.RejectBlocked)
	chatGroup.GET("/:id/messages", chatHandler.GetChatMessages)
}

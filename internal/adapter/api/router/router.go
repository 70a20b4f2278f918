package router

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	penaltyMiddleware *middleware.PenaltyMiddleware,
	wsHandler *handler.WebSocketHandler,
) {
	SetupChatRouter(e, handler.GetChatHandler(), authMiddleware, penaltyMiddleware)
	SetupListingRouter(e, handler.GetListingHandler(), authMiddleware, penaltyMiddleware)
	SetupAssistantRouter(e, handler.GetAssistantHandler(), authMiddleware)
	SetupContentRouter(e, handler.GetContentHandler())
	SetupProfileRouter(e, handler.GetProfileHandler(), authMiddleware)
	SetupWebSocketRouter(e, wsHandler, authMiddleware)
	SetupHealthRouter(e)
}

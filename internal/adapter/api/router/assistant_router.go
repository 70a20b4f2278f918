package router

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
)

func SetupAssistantRouter(e *echo.Echo, assistantHandler *handler.AssistantHandler, authMiddleware *middleware.AuthMiddleware) {
	assistantGroup := e.Group("/v1/assistant")
	assistantGroup.Use(authMiddleware.Authenticate)

	assistantGroup.POST("/translate", assistantHandler.Translate)
	assistantGroup.POST("/ocr", assistantHandler.ExtractText) // multipart field "image"
}

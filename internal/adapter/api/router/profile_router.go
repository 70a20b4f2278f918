package router

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
)

func SetupProfileRouter(e *echo.Echo, profileHandler *handler.ProfileHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/v1/me", profileHandler.GetMe, authMiddleware.Authenticate)
}

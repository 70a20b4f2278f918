package router

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
)

func SetupContentRouter(e *echo.Echo, contentHandler *handler.ContentHandler) {
	contentGroup := e.Group("/v1/content")

	contentGroup.GET("/labels", contentHandler.GetLabels)
	contentGroup.GET("/labels/:key", contentHandler.GetLabel)
	contentGroup.GET("/faq", contentHandler.GetFAQ)
	contentGroup.GET("/notices", contentHandler.GetNotices)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/handler"
	"github.com/langsb16-collab/chinafood0205/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, listingHandler *handler.ListingHandler, authMiddleware *middleware.AuthMiddleware, penaltyMiddleware *middleware.PenaltyMiddleware) {
	// Public browsing
	listingGroup := e.Group("/v1/listings")
	listingGroup.GET("/:kind", listingHandler.ListListings) // kind: shops, trade, jobs, real-estate
	listingGroup.GET("/:kind/:id", listingHandler.GetListing)
	listingGroup.POST("/:kind", listingHandler.CreateListing, authMiddleware.Authenticate, penaltyMiddleware.RejectBlocked)

	e.GET("/v1/shops/:id/directions", listingHandler.GetDirections)

	myGroup := e.Group("/v1/my/listings")
	myGroup.Use(authMiddleware.Authenticate)
	myGroup.GET("/:kind", listingHandler.GetMyListings)
}

package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/logger"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
)

// APIRateLimit limits requests per client IP. It runs ahead of
// authentication; per-user quotas are enforced by the use cases. Rates below
// one request per second are raised to one.
func APIRateLimit(perSecond float64) echo.MiddlewareFunc {
	if perSecond < 1 {
		perSecond = 1
	}
	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(perSecond),
		Burst:     int(perSecond * 2),
		ExpiresIn: 3 * time.Minute,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.Error(c, errors.New("FORBIDDEN", "Unable to identify caller", http.StatusForbidden, err))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			logger.Warn("RATE LIMIT: denied request from %s", identifier)
			return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
		},
	})
}

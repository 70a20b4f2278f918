package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newLimitedServer(perSecond float64) *echo.Echo {
	e := echo.New()
	e.Use(APIRateLimit(perSecond))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	return e
}

func hit(e *echo.Echo, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestAPIRateLimit_PerClientIP(t *testing.T) {
	e := newLimitedServer(1)

	codes := []int{
		hit(e, "10.0.0.1:5000"),
		hit(e, "10.0.0.1:5001"),
		hit(e, "10.0.0.1:5002"),
		hit(e, "10.0.0.2:5000"),
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests, http.StatusOK}, codes)
}

func TestAPIRateLimit_ZeroRateStillServes(t *testing.T) {
	e := newLimitedServer(0)

	assert.Equal(t, http.StatusOK, hit(e, "10.0.0.9:5000"))
}

package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
)

// TokenVerifier turns an ID token into a uid.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// DevUserHeader lets local clients act as another user when no token
// verifier is configured.
const DevUserHeader = "X-Dev-User"

type AuthMiddleware struct {
	verifier  TokenVerifier
	devUserID string
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
	}
}

// NewDevAuthMiddleware authenticates every request as devUserID, or as the
// user named in the X-Dev-User header.
func NewDevAuthMiddleware(devUserID string) *AuthMiddleware {
	return &AuthMiddleware{
		devUserID: devUserID,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.verifier == nil {
			uid := strings.TrimSpace(c.Request().Header.Get(DevUserHeader))
			if uid == "" {
				uid = m.devUserID
			}
			c.Set("uid", uid)
			return next(c)
		}

		token, err := bearerToken(c)
		if err != nil {
			return response.Error(c, err)
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// bearerToken reads "Authorization: Bearer <token>", or the token query
// parameter for websocket upgrades where browsers cannot set headers.
func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		if token := c.QueryParam("token"); token != "" {
			return token, nil
		}
		return "", errors.Unauthorized("Authorization header is required", nil)
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", errors.Unauthorized("Invalid authorization format", nil)
	}
	return parts[1], nil
}

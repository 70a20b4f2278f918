package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/langsb16-collab/chinafood0205/internal/domain/entity"
	"github.com/langsb16-collab/chinafood0205/internal/domain/repository"
	"github.com/langsb16-collab/chinafood0205/pkg/errors"
	"github.com/langsb16-collab/chinafood0205/pkg/response"
)

// PenaltyMiddleware stops users under a BLOCKED penalty from writing.
type PenaltyMiddleware struct {
	userRepo repository.UserRepository
}

func NewPenaltyMiddleware(userRepo repository.UserRepository) *PenaltyMiddleware {
	return &PenaltyMiddleware{
		userRepo: userRepo,
	}
}

func (m *PenaltyMiddleware) RejectBlocked(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, ok := c.Get("uid").(string)
		if !ok || uid == "" {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		// Users without a stored profile carry no penalty.
		profile, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err == nil && profile.PenaltyLevel == entity.PenaltyBlocked {
			return response.Error(c, errors.Forbidden("Your account is blocked", nil))
		}

		return next(c)
	}
}

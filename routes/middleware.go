package routes

import (
	"strings"

	"autocatalog/models"
	"autocatalog/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userLocalsKey = "user"

var (
	errUnauthorized = fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	errForbidden    = fiber.NewError(fiber.StatusForbidden, "Forbidden")
)

// RequireUser rejects requests without a valid bearer token for an active
// user. It runs before any body parsing, so unauthenticated requests always
// get 401 no matter what they carry.
func (h *Handler) RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return errUnauthorized
		}

		claims, err := h.tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			h.log.Debug("token validation failed", zap.Error(err), zap.String("path", c.Path()))
			return errUnauthorized
		}
		userID, err := claims.UserID()
		if err != nil {
			return errUnauthorized
		}

		user, err := h.users.Get(c.UserContext(), userID)
		if services.IsNotFound(err) {
			return errUnauthorized
		}
		if err != nil {
			return err
		}
		if !user.IsActive {
			return errUnauthorized
		}

		c.Locals(userLocalsKey, user)
		return c.Next()
	}
}

// RequireSuperuser must run after RequireUser.
func (h *Handler) RequireSuperuser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := currentUser(c)
		if user == nil {
			return errUnauthorized
		}
		if !user.IsSuperuser {
			return errForbidden
		}
		return c.Next()
	}
}

// currentUser returns the user stored by RequireUser.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalsKey).(*models.User)
	return user
}

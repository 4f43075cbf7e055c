package routes

import (
	"errors"

	"autocatalog/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// login exchanges form credentials (username, password) for a bearer token.
func (h *Handler) login(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "username and password are required")
	}

	user, err := h.users.Authenticate(c.UserContext(), username, password)
	if errors.Is(err, services.ErrBadCredentials) {
		return fiber.NewError(fiber.StatusBadRequest, services.ErrBadCredentials.Error())
	}
	if err != nil {
		return err
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return err
	}
	h.log.Info("user logged in", zap.Uint("id", user.ID))

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// logout is a no-op for stateless tokens; the client drops its token.
func (h *Handler) logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

package routes

import (
	"autocatalog/models"

	"github.com/gofiber/fiber/v2"
)

// User handlers
func (h *Handler) me(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// updateMe lets a user change their own email or password.
func (h *Handler) updateMe(c *fiber.Ctx) error {
	var req models.UserUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), currentUser(c).ID, req, false)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req models.UserUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), id, req, true)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package routes

import (
	"autocatalog/models"

	"github.com/gofiber/fiber/v2"
)

// Vehicle handlers
func (h *Handler) createVehicle(c *fiber.Ctx) error {
	var req models.VehicleCreate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	vehicle, err := h.catalog.CreateVehicle(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(vehicle)
}

func (h *Handler) getVehicle(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	vehicle, err := h.catalog.GetVehicle(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(vehicle)
}

func (h *Handler) updateVehicle(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req models.VehicleUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	vehicle, err := h.catalog.UpdateVehicle(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(vehicle)
}

func (h *Handler) deleteVehicle(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteVehicle(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

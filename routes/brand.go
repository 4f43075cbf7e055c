package routes

import (
	"autocatalog/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Brand handlers
func (h *Handler) createBrand(c *fiber.Ctx) error {
	var req models.BrandCreate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	brand, err := h.catalog.CreateBrand(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(brand)
}

func (h *Handler) getBrand(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	brand, err := h.catalog.GetBrand(c.UserContext(), id)
	if err != nil {
		return err
	}
	h.log.Debug("got brand", zap.Uint("id", brand.ID))
	return c.JSON(brand)
}

func (h *Handler) getBrandVehicles(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	vehicles, err := h.catalog.ListBrandVehicles(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(vehicles)
}

func (h *Handler) updateBrand(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var req models.BrandUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	brand, err := h.catalog.UpdateBrand(c.UserContext(), id, req)
	if err != nil {
		return err
	}
	return c.JSON(brand)
}

func (h *Handler) deleteBrand(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.DeleteBrand(c.UserContext(), id); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

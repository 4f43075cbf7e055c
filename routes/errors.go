package routes

import (
	"errors"
	"fmt"
	"strings"

	"autocatalog/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// errorHandler is the single place where errors become HTTP responses.
func (h *Handler) errorHandler(c *fiber.Ctx, err error) error {
	var (
		notFound   *services.NotFoundError
		exists     *services.AlreadyExistsError
		invalid    *services.ValidationError
		fiberError *fiber.Error
	)

	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.As(err, &notFound):
		status, message = fiber.StatusNotFound, err.Error()
		h.log.Error("backend exception", zap.Error(err))
	case errors.As(err, &exists), errors.As(err, &invalid):
		status, message = fiber.StatusBadRequest, err.Error()
		h.log.Error("backend exception", zap.Error(err))
	case errors.As(err, &fiberError):
		status, message = fiberError.Code, fiberError.Message
	default:
		h.log.Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Any("request_id", c.Locals("requestid")),
		)
	}

	if status == fiber.StatusUnauthorized {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// parseBody decodes and validates the JSON body. Shape problems are 422.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid request body: "+err.Error())
	}
	if err := validate.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", jsonName(fe)))
		case "required_without":
			msgs = append(msgs, "year or name should be passed")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must not be empty", jsonName(fe)))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%s must be a valid email address", jsonName(fe)))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", jsonName(fe), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func jsonName(fe validator.FieldError) string {
	switch fe.Field() {
	case "BrandID":
		return "brand_id"
	default:
		return strings.ToLower(fe.Field())
	}
}

// paramID reads the :id path parameter. Non-integers are a 422 like any other
// malformed input.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusUnprocessableEntity, fmt.Sprintf("invalid id %q", c.Params("id")))
	}
	if id < 0 {
		return 0, &services.NotFoundError{What: fmt.Sprintf("id=%d", id)}
	}
	return uint(id), nil
}

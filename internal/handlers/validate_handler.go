package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

// ValidateStep godoc
// @Summary  Validate one signup wizard step
// @Tags     registration
// @Accept   json
// @Produce  json
// @Param    body  body  dto.StepValidationRequest  true  "Step fields"
// @Success  200  {object}  dto.Response
// @Router   /api/validate-step [post]
func ValidateStep(svc *services.ValidateService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.StepValidationRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("invalid request body"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.ValidateStep(ctx, req)
		return c.Status(status).JSON(payload)
	}
}

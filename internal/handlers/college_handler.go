package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

func ListColleges(svc *services.CollegeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.List(ctx)
		return c.Status(status).JSON(payload)
	}
}

// UpsertCollege godoc
// @Summary  Find or create a college by name
// @Description  Idempotent: the name is trimmed and matched case-insensitively.
// @Tags     colleges
// @Accept   json
// @Produce  json
// @Param    body  body  dto.CollegeUpsertRequest  true  "College name"
// @Success  200  {object}  dto.Response
// @Router   /api/colleges [post]
func UpsertCollege(svc *services.CollegeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.CollegeUpsertRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("invalid request body"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.Upsert(ctx, req)
		return c.Status(status).JSON(payload)
	}
}

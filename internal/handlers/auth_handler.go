package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body  dto.LoginRequest  true  "Credentials"
// @Success  200  {object}  dto.Response
// @Failure  401  {object}  dto.Response
// @Failure  403  {object}  dto.Response
// @Router   /api/auth/login [post]
func Login(svc *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("invalid request body"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.Login(ctx, req)
		return c.Status(status).JSON(payload)
	}
}

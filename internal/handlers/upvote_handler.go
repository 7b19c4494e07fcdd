package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/middleware"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

// ToggleUpvote godoc
// @Summary   Toggle an upvote on a registrant
// @Tags      upvotes
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  string  true  "Target user id"
// @Success   200  {object}  dto.Response
// @Failure   404  {object}  dto.Response
// @Router    /api/users/{id}/upvote [post]
func ToggleUpvote(svc *services.UpvoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		voterID, err := middleware.UIDObjectID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("authentication required"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()

		status, payload := svc.Toggle(ctx, voterID, c.Params("id"))
		return c.Status(status).JSON(payload)
	}
}

func GetUpvoteState(svc *services.UpvoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		voterID, err := middleware.UIDObjectID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("authentication required"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.State(ctx, voterID, c.Params("id"))
		return c.Status(status).JSON(payload)
	}
}

// SyncUpvotes godoc
// @Summary   Reconcile client-side optimistic upvotes
// @Tags      upvotes
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body  dto.SyncUpvotesRequest  true  "Actions to replay"
// @Success   200  {object}  dto.Response
// @Router    /api/users/sync-upvotes [post]
func SyncUpvotes(svc *services.UpvoteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		voterID, err := middleware.UIDObjectID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("authentication required"))
		}

		var req dto.SyncUpvotesRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("invalid request body"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()

		status, payload := svc.Sync(ctx, voterID, req)
		return c.Status(status).JSON(payload)
	}
}

package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/middleware"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

// ListUsers godoc
// @Summary  List active registrants
// @Description  Denormalized snapshots across all batches, deleted entries excluded.
// @Tags     users
// @Produce  json
// @Success  200  {object}  dto.Response
// @Router   /api/users [get]
func ListUsers(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()

		status, payload := svc.List(ctx)
		return c.Status(status).JSON(payload)
	}
}

func GetUser(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.Get(ctx, c.Params("id"))
		return c.Status(status).JSON(payload)
	}
}

// UpdateUser godoc
// @Summary   Update a profile
// @Description  Partial multipart update; the display name cannot change. Owner or admin only.
// @Tags      users
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     id  path  string  true  "User id"
// @Success   200  {object}  dto.Response
// @Failure   400  {object}  dto.Response
// @Failure   403  {object}  dto.Response
// @Router    /api/users/{id} [put]
func UpdateUser(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, err := middleware.UIDObjectID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("authentication required"))
		}

		form, err := c.MultipartForm()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("expected multipart form"))
		}

		var in dto.ProfileUpdateInput
		strField := func(key string) *string {
			if vs, ok := form.Value[key]; ok && len(vs) > 0 {
				v := vs[0]
				return &v
			}
			return nil
		}
		in.Name = strField("name")
		in.Gender = strField("gender")
		in.College = strField("college")
		in.Bio = strField("bio")
		in.LinkedIn = strField("linkedin")
		if vs, ok := form.Value["age"]; ok && len(vs) > 0 {
			age, err := strconv.Atoi(vs[0])
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Error("invalid age"))
			}
			in.Age = &age
		}

		if fhs, ok := form.File["resume"]; ok && len(fhs) > 0 {
			file, closeFn, err := fileFromForm(fhs[0])
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Error("could not read resume"))
			}
			defer closeFn()
			in.Resume = file
		}
		if fhs, ok := form.File["avatar"]; ok && len(fhs) > 0 {
			file, closeFn, err := fileFromForm(fhs[0])
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Error("could not read profile picture"))
			}
			defer closeFn()
			in.Avatar = file
		}

		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()

		status, payload := svc.Update(ctx, actorID, c.Params("id"), in)
		return c.Status(status).JSON(payload)
	}
}

// DeleteUser is admin-only (enforced by RequireAdmin on the route).
func DeleteUser(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
		defer cancel()

		status, payload := svc.Delete(ctx, c.Params("id"))
		return c.Status(status).JSON(payload)
	}
}

// SetUserStatus is admin-only (enforced by RequireAdmin on the route).
func SetUserStatus(svc *services.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.StatusUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Error("invalid request body"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.SetStatus(ctx, c.Params("id"), req.Status)
		return c.Status(status).JSON(payload)
	}
}

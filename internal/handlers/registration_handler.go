package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

// RegisterUser godoc
// @Summary      Register a contestant
// @Description  Multipart signup: profile fields plus a PDF resume (required) and an image profile picture (optional).
// @Tags         registration
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  true   "Display name"
// @Param        email     formData  string  true   "Email"
// @Param        phone     formData  string  true   "Phone"
// @Param        password  formData  string  true   "Password"
// @Param        resume    formData  file    true   "PDF resume, max 1MB"
// @Param        avatar    formData  file    false  "Profile picture, max 1MB"
// @Success      201  {object}  dto.Response
// @Failure      400  {object}  dto.Response
// @Failure      413  {object}  dto.Response
// @Router       /api/registration [post]
func RegisterUser(svc *services.RegistrationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		age, _ := strconv.Atoi(c.FormValue("age"))
		in := dto.RegistrationInput{
			Name:         c.FormValue("name"),
			Email:        c.FormValue("email"),
			Phone:        c.FormValue("phone"),
			Age:          age,
			Gender:       c.FormValue("gender"),
			College:      c.FormValue("college"),
			Bio:          c.FormValue("bio"),
			LinkedIn:     c.FormValue("linkedin"),
			Referral:     c.FormValue("referral"),
			Password:     c.FormValue("password"),
			CaptchaToken: c.FormValue("captchaToken"),
			RemoteIP:     c.IP(),
		}

		if fh, err := c.FormFile("resume"); err == nil {
			file, closeFn, err := fileFromForm(fh)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Error("could not read resume"))
			}
			defer closeFn()
			in.Resume = file
		}
		if fh, err := c.FormFile("avatar"); err == nil {
			file, closeFn, err := fileFromForm(fh)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.Error("could not read profile picture"))
			}
			defer closeFn()
			in.Avatar = file
		}

		ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
		defer cancel()

		status, payload := svc.Register(ctx, in)
		return c.Status(status).JSON(payload)
	}
}

// CheckRegistration godoc
// @Summary  Check whether an email or phone is already registered
// @Tags     registration
// @Produce  json
// @Param    email  query  string  false  "Email to check"
// @Param    phone  query  string  false  "Phone to check"
// @Success  200  {object}  dto.Response
// @Router   /api/registration [get]
func CheckRegistration(svc *services.RegistrationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		status, payload := svc.Exists(ctx, c.Query("email"), c.Query("phone"))
		return c.Status(status).JSON(payload)
	}
}

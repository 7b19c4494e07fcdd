package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/pbdsce/Zenith-sub000/internal/handlers"
	"github.com/pbdsce/Zenith-sub000/internal/middleware"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

type Deps struct {
	Store        *repository.Store
	Registration *services.RegistrationService
	Auth         *services.AuthService
	Profiles     *services.ProfileService
	Upvotes      *services.UpvoteService
	Colleges     *services.CollegeService
	Validate     *services.ValidateService
	Redis        *redis.Client
}

// Register wires every route. Public routes sit outside RequireAuth per the
// gateway allow-list; admin routes stack RequireAdmin on top.
func Register(app *fiber.App, d Deps) {
	api := app.Group("/api")

	// public
	api.Post("/registration",
		middleware.RateLimit(d.Redis, 10, time.Minute),
		handlers.RegisterUser(d.Registration))
	api.Get("/registration", handlers.CheckRegistration(d.Registration))

	api.Post("/auth/login",
		middleware.RateLimit(d.Redis, 20, time.Minute),
		handlers.Login(d.Auth))

	api.Get("/colleges", handlers.ListColleges(d.Colleges))
	api.Post("/colleges", handlers.UpsertCollege(d.Colleges))

	api.Post("/validate-step", handlers.ValidateStep(d.Validate))

	api.Get("/users", handlers.ListUsers(d.Profiles))
	api.Get("/users/:id", handlers.GetUser(d.Profiles))

	// authenticated
	api.Post("/users/sync-upvotes", middleware.RequireAuth(), handlers.SyncUpvotes(d.Upvotes))
	api.Put("/users/:id", middleware.RequireAuth(), handlers.UpdateUser(d.Profiles))
	api.Post("/users/:id/upvote", middleware.RequireAuth(), handlers.ToggleUpvote(d.Upvotes))
	api.Get("/users/:id/upvote", middleware.RequireAuth(), handlers.GetUpvoteState(d.Upvotes))

	// admin
	api.Delete("/users/:id", middleware.RequireAdmin(d.Store), handlers.DeleteUser(d.Profiles))
	api.Put("/users/:id/status", middleware.RequireAdmin(d.Store), handlers.SetUserStatus(d.Profiles))
}

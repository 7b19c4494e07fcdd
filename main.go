// @title Zenith Registration API
// @version 1.0
// @description Contest registration backend: profiles, batches, colleges and upvotes.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"

	"github.com/pbdsce/Zenith-sub000/bootstrap"
	"github.com/pbdsce/Zenith-sub000/config"
	"github.com/pbdsce/Zenith-sub000/database"
	_ "github.com/pbdsce/Zenith-sub000/docs"
	"github.com/pbdsce/Zenith-sub000/internal/captcha"
	"github.com/pbdsce/Zenith-sub000/internal/media"
	"github.com/pbdsce/Zenith-sub000/internal/middleware"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/internal/routes"
	"github.com/pbdsce/Zenith-sub000/internal/services"
)

func main() {
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if cfg.CloudinaryURL == "" {
		log.Fatal("CLOUDINARY_URL is required")
	}

	client := database.ConnectMongo(cfg.MongoURI)
	defer database.DisconnectMongo(client)

	if err := bootstrap.EnsureIndexes(client.Database(cfg.MongoDB)); err != nil {
		log.Fatalf("ensure indexes failed: %v", err)
	}

	store := repository.NewStore(client, cfg.MongoDB, cfg.BatchCapacity)

	uploader, err := media.NewCloudinary(cfg.CloudinaryURL, "zenith")
	if err != nil {
		log.Fatalf("media host init failed: %v", err)
	}

	var verifier captcha.Verifier
	if cfg.CaptchaSecret != "" {
		verifier = captcha.New(cfg.CaptchaEndpoint, cfg.CaptchaSecret)
	} else {
		log.Println("CAPTCHA_SECRET not set, captcha verification disabled")
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	} else {
		log.Println("REDIS_ADDR not set, rate limiting disabled")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadSize)*2 + 1<<20, // two files plus form overhead
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/docs/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	app.Use(middleware.JWTUidOnly(cfg.JWTSecret))

	routes.Register(app, routes.Deps{
		Store:        store,
		Registration: services.NewRegistrationService(store, uploader, verifier, cfg.ReferralCodes, cfg.MaxUploadSize),
		Auth:         services.NewAuthService(store, cfg.JWTSecret, cfg.AdminEmailDomain, cfg.AdminBootstrapSecret),
		Profiles:     services.NewProfileService(store, uploader, cfg.MaxUploadSize),
		Upvotes:      services.NewUpvoteService(store),
		Colleges:     services.NewCollegeService(store),
		Validate:     services.NewValidateService(store, cfg.ReferralCodes),
		Redis:        rdb,
	})

	log.Printf("listening on :%s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

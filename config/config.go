package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI string
	MongoDB  string
	Port     string

	JWTSecret string

	// Admin bootstrap: a login whose email carries AdminEmailDomain and whose
	// password equals AdminBootstrapSecret is promoted to admin. Both must be
	// set for the path to be active.
	AdminEmailDomain     string
	AdminBootstrapSecret string

	CloudinaryURL string

	CaptchaSecret   string
	CaptchaEndpoint string

	RedisAddr string

	ReferralCodes []string

	BatchCapacity int
	MaxUploadSize int64
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := Config{
		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:              getEnv("MONGO_DB", "zenith"),
		Port:                 getEnv("PORT", "8000"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		AdminEmailDomain:     os.Getenv("ADMIN_EMAIL_DOMAIN"),
		AdminBootstrapSecret: os.Getenv("ADMIN_BOOTSTRAP_SECRET"),
		CloudinaryURL:        os.Getenv("CLOUDINARY_URL"),
		CaptchaSecret:        os.Getenv("CAPTCHA_SECRET"),
		CaptchaEndpoint:      getEnv("CAPTCHA_ENDPOINT", "https://www.google.com/recaptcha/api/siteverify"),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		BatchCapacity:        getEnvInt("BATCH_CAPACITY", 400),
		MaxUploadSize:        int64(getEnvInt("MAX_UPLOAD_BYTES", 1<<20)),
	}

	if codes := getEnv("REFERRAL_CODES", ""); codes != "" {
		for _, c := range strings.Split(codes, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cfg.ReferralCodes = append(cfg.ReferralCodes, c)
			}
		}
	}

	return cfg
}

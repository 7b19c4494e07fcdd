package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/model"
)

type AuthClaims struct {
	UID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// JWTUidOnly parses a Bearer token when one is present and stores the uid
// in Locals. Requests without a token pass through; RequireAuth decides
// which routes actually need one.
func JWTUidOnly(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Next()
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims AuthClaims

		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, fiber.NewError(fiber.StatusUnauthorized, "unsupported alg")
				}
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("invalid token"))
		}

		uid := claims.UID
		if uid == "" {
			uid = claims.Subject
		}
		if uid == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("missing uid"))
		}

		c.Locals("user_id", uid)
		return c.Next()
	}
}

// RequireAuth guards routes outside the public allow-list.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := UIDObjectID(c); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("authentication required"))
		}
		return c.Next()
	}
}

// AdminChecker loads the acting user's profile; the profile's is_admin flag
// is authoritative, never the batch snapshot.
type AdminChecker interface {
	FindProfileByID(ctx context.Context, id bson.ObjectID) (model.User, error)
}

func RequireAdmin(store AdminChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, err := UIDObjectID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("authentication required"))
		}

		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		user, err := store.FindProfileByID(ctx, uid)
		if err != nil || !user.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error("admin access required"))
		}
		c.Locals("is_admin", true)
		return c.Next()
	}
}

// UIDObjectID reads the authenticated user id from Locals.
func UIDObjectID(c *fiber.Ctx) (bson.ObjectID, error) {
	s, ok := c.Locals("user_id").(string)
	if !ok || s == "" {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	oid, err := bson.ObjectIDFromHex(s)
	if err != nil {
		return bson.NilObjectID, fiber.ErrUnauthorized
	}
	return oid, nil
}

// IsAdmin reports whether RequireAdmin already vouched for this request.
func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals("is_admin").(bool)
	return v
}

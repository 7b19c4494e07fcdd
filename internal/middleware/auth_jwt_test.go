package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/model"
)

const testSecret = "middleware-test-secret"

func signTestToken(t *testing.T, secret, uid string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"sub": uid,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func newAuthApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(JWTUidOnly(testSecret))
	handlers := append(extra, func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		return c.JSON(fiber.Map{"uid": uid})
	})
	app.Get("/probe", handlers...)
	return app
}

func probe(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestJWTUidOnlyPassesAnonymous(t *testing.T) {
	app := newAuthApp()
	if resp := probe(t, app, ""); resp.StatusCode != fiber.StatusOK {
		t.Errorf("anonymous request blocked: %d", resp.StatusCode)
	}
}

func TestJWTUidOnlyRejectsBadToken(t *testing.T) {
	app := newAuthApp()
	if resp := probe(t, app, "not-a-jwt"); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("garbage token: %d, want 401", resp.StatusCode)
	}
	if resp := probe(t, app, signTestToken(t, "wrong-secret", bson.NewObjectID().Hex())); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("wrong secret: want 401")
	}
}

func TestRequireAuth(t *testing.T) {
	app := newAuthApp(RequireAuth())

	if resp := probe(t, app, ""); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous: %d, want 401", resp.StatusCode)
	}

	uid := bson.NewObjectID().Hex()
	resp := probe(t, app, signTestToken(t, testSecret, uid))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("valid token: %d, want 200", resp.StatusCode)
	}
}

type stubChecker struct {
	users map[bson.ObjectID]model.User
}

func (s stubChecker) FindProfileByID(_ context.Context, id bson.ObjectID) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func TestRequireAdmin(t *testing.T) {
	admin := bson.NewObjectID()
	regular := bson.NewObjectID()
	checker := stubChecker{users: map[bson.ObjectID]model.User{
		admin:   {ID: admin, IsAdmin: true},
		regular: {ID: regular},
	}}
	app := newAuthApp(RequireAdmin(checker))

	if resp := probe(t, app, ""); resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous: %d, want 401", resp.StatusCode)
	}
	if resp := probe(t, app, signTestToken(t, testSecret, regular.Hex())); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("non-admin: want 403")
	}
	if resp := probe(t, app, signTestToken(t, testSecret, bson.NewObjectID().Hex())); resp.StatusCode != fiber.StatusForbidden {
		t.Errorf("unknown uid: want 403")
	}
	if resp := probe(t, app, signTestToken(t, testSecret, admin.Hex())); resp.StatusCode != fiber.StatusOK {
		t.Errorf("admin: want 200")
	}
}

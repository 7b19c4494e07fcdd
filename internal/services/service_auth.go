package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/model"
)

const tokenTTL = 72 * time.Hour

type AuthStore interface {
	FindCredentialByEmail(ctx context.Context, email string) (model.Credential, error)
	InsertCredential(ctx context.Context, c model.Credential) error
	FindProfileByEmail(ctx context.Context, email string) (model.User, error)
	InsertProfile(ctx context.Context, u model.User) error
	SetProfileFields(ctx context.Context, id bson.ObjectID, fields map[string]any) error
	SetSnapshotFields(ctx context.Context, batchID, userID bson.ObjectID, fields map[string]any) error
	FindSnapshot(ctx context.Context, batchID, userID bson.ObjectID) (model.UserSnapshot, error)
}

type AuthService struct {
	store       AuthStore
	secret      string
	adminDomain string // e.g. "@pointblank.club"; empty disables the bootstrap
	adminSecret string
}

func NewAuthService(store AuthStore, secret, adminDomain, adminSecret string) *AuthService {
	return &AuthService{store: store, secret: secret, adminDomain: adminDomain, adminSecret: adminSecret}
}

// Login signs a user in. A login whose email carries the configured admin
// domain and whose password equals the bootstrap secret creates the account
// on a miss and force-promotes the profile to admin on a hit.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (int, any) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return fiber.StatusBadRequest, dto.Error("email and password are required")
	}

	adminAttempt := s.adminDomain != "" && s.adminSecret != "" &&
		strings.HasSuffix(email, s.adminDomain) && req.Password == s.adminSecret

	cred, err := s.store.FindCredentialByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		if adminAttempt {
			return s.bootstrapAdmin(ctx, email, req.Password)
		}
		return fiber.StatusUnauthorized, dto.Error("invalid credentials")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		return fiber.StatusUnauthorized, dto.Error("invalid credentials")
	}

	user, err := s.store.FindProfileByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		if adminAttempt {
			return s.createAdminProfile(ctx, email)
		}
		return fiber.StatusNotFound, dto.Error("profile not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("login failed")
	}

	if adminAttempt && !user.IsAdmin {
		if err := s.promote(ctx, &user); err != nil {
			return fiber.StatusInternalServerError, dto.Error("could not promote admin")
		}
	}

	// The batch snapshot carries the admin-set status; the profile copy is
	// the fallback for accounts that never went through registration.
	status := user.Status
	if !user.BatchID.IsZero() {
		if snap, err := s.store.FindSnapshot(ctx, user.BatchID, user.ID); err == nil {
			status = snap.Status
		}
	}
	if status == model.StatusSuspended || status == model.StatusDeactivated {
		return fiber.StatusForbidden, dto.Error("account is " + status)
	}

	token, err := s.signToken(user.ID.Hex())
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not sign token")
	}
	return fiber.StatusOK, dto.OK(dto.LoginResponse{User: user, Token: token})
}

func (s *AuthService) bootstrapAdmin(ctx context.Context, email, password string) (int, any) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not hash password")
	}
	err = s.store.InsertCredential(ctx, model.Credential{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return fiber.StatusInternalServerError, dto.Error("could not create account")
	}
	return s.createAdminProfile(ctx, email)
}

func (s *AuthService) createAdminProfile(ctx context.Context, email string) (int, any) {
	now := time.Now().UTC()
	user := model.User{
		ID:        bson.NewObjectID(),
		Name:      strings.SplitN(email, "@", 2)[0],
		Email:     email,
		IsAdmin:   true,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.InsertProfile(ctx, user); err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not create profile")
	}
	token, err := s.signToken(user.ID.Hex())
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not sign token")
	}
	return fiber.StatusCreated, dto.OK(dto.LoginResponse{User: user, Token: token})
}

// promote sets is_admin on the profile, which is authoritative, and mirrors
// it into the batch snapshot for list reads.
func (s *AuthService) promote(ctx context.Context, user *model.User) error {
	if err := s.store.SetProfileFields(ctx, user.ID, map[string]any{"is_admin": true}); err != nil {
		return err
	}
	user.IsAdmin = true
	if !user.BatchID.IsZero() {
		if err := s.store.SetSnapshotFields(ctx, user.BatchID, user.ID, map[string]any{"is_admin": true}); err != nil {
			log.Println("admin mirror update failed:", err)
		}
	}
	return nil
}

func (s *AuthService) signToken(uid string) (string, error) {
	claims := jwt.MapClaims{
		"uid": uid,
		"sub": uid,
		"exp": time.Now().Add(tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
}

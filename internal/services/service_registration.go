package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/captcha"
	"github.com/pbdsce/Zenith-sub000/internal/media"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/internal/utils"
	"github.com/pbdsce/Zenith-sub000/model"
)

// RegistrationStore is the slice of the store the registration flow needs.
type RegistrationStore interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	PhoneTaken(ctx context.Context, phone string) (bool, error)
	InsertCredential(ctx context.Context, c model.Credential) error
	ReserveBatchSlot(ctx context.Context) (model.Batch, error)
	AppendSnapshot(ctx context.Context, batchID bson.ObjectID, snap model.UserSnapshot) error
	InsertProfile(ctx context.Context, u model.User) error
	AdjustCollegeCount(ctx context.Context, name string, delta int64) error
}

type RegistrationService struct {
	store         RegistrationStore
	uploader      media.Uploader
	verifier      captcha.Verifier // nil disables captcha checks
	referralCodes []string
	maxUploadSize int64
}

func NewRegistrationService(store RegistrationStore, up media.Uploader, v captcha.Verifier, referralCodes []string, maxUploadSize int64) *RegistrationService {
	return &RegistrationService{
		store:         store,
		uploader:      up,
		verifier:      v,
		referralCodes: referralCodes,
		maxUploadSize: maxUploadSize,
	}
}

// Register runs the whole registration pipeline: field validation,
// duplicate pre-check, captcha, media uploads, credential creation, then
// the batch-append-plus-profile-insert transaction.
func (s *RegistrationService) Register(ctx context.Context, in dto.RegistrationInput) (int, any) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)

	if errs := s.validate(in); len(errs) > 0 {
		return fiber.StatusBadRequest, dto.Response{
			Status: "error", Message: "validation failed", Data: errs,
		}
	}

	if status, resp := s.checkFiles(in); status != 0 {
		return status, resp
	}

	taken, err := s.store.EmailTaken(ctx, in.Email)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not check email")
	}
	if taken {
		return fiber.StatusBadRequest, dto.Error("email already registered")
	}
	taken, err = s.store.PhoneTaken(ctx, in.Phone)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not check phone")
	}
	if taken {
		return fiber.StatusBadRequest, dto.Error("phone already registered")
	}

	if s.verifier != nil {
		if err := s.verifier.Verify(ctx, in.CaptchaToken, in.RemoteIP); err != nil {
			return fiber.StatusBadRequest, dto.Error(err.Error())
		}
	}

	var resumeAsset, avatarAsset media.Asset
	resumeAsset, err = s.uploader.Upload(ctx, in.Resume.Content, "resume_"+uuid.NewString(), media.KindRaw)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error(err.Error())
	}
	if in.Avatar != nil {
		avatarAsset, err = s.uploader.Upload(ctx, in.Avatar.Content, "avatar_"+uuid.NewString(), media.KindImage)
		if err != nil {
			return fiber.StatusInternalServerError, dto.Error(err.Error())
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not hash password")
	}
	err = s.store.InsertCredential(ctx, model.Credential{
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return fiber.StatusBadRequest, dto.Error("email already in use")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("could not create account")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:        bson.NewObjectID(),
		Name:      strings.TrimSpace(in.Name),
		Email:     in.Email,
		Phone:     in.Phone,
		Age:       in.Age,
		Gender:    in.Gender,
		College:   strings.TrimSpace(in.College),
		Bio:       in.Bio,
		LinkedIn:  in.LinkedIn,
		Referral:  in.Referral,
		ResumeURL: resumeAsset.URL,
		ResumeID:  resumeAsset.PublicID,
		AvatarURL: avatarAsset.URL,
		AvatarID:  avatarAsset.PublicID,
		Status:    model.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		batch, err := s.store.ReserveBatchSlot(ctx)
		if err != nil {
			return err
		}
		user.BatchID = batch.ID
		if err := s.store.InsertProfile(ctx, user); err != nil {
			return err
		}
		if err := s.store.AppendSnapshot(ctx, batch.ID, user.Snapshot()); err != nil {
			return err
		}
		return s.store.AdjustCollegeCount(ctx, user.College, 1)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return fiber.StatusBadRequest, dto.Error("email or phone already registered")
	}
	if err != nil {
		log.Println("registration transaction failed:", err)
		return fiber.StatusInternalServerError, dto.Error("registration failed")
	}

	return fiber.StatusCreated, dto.OK(dto.RegisteredUser{
		ID:        user.ID.Hex(),
		BatchID:   user.BatchID.Hex(),
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		College:   user.College,
		Status:    user.Status,
		ResumeURL: user.ResumeURL,
		AvatarURL: user.AvatarURL,
	})
}

// Exists answers the public email/phone existence check.
func (s *RegistrationService) Exists(ctx context.Context, email, phone string) (int, any) {
	if email == "" && phone == "" {
		return fiber.StatusBadRequest, dto.Error("email or phone is required")
	}
	var (
		taken bool
		err   error
	)
	if email != "" {
		taken, err = s.store.EmailTaken(ctx, strings.ToLower(strings.TrimSpace(email)))
	} else {
		taken, err = s.store.PhoneTaken(ctx, strings.TrimSpace(phone))
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}
	return fiber.StatusOK, dto.OK(fiber.Map{"exists": taken})
}

func (s *RegistrationService) validate(in dto.RegistrationInput) map[string]string {
	errs := map[string]string{}
	put := func(field string, err error) {
		if err != nil {
			errs[field] = err.Error()
		}
	}
	put("name", utils.ValidateName(in.Name))
	put("email", utils.ValidateEmail(in.Email))
	put("phone", utils.ValidatePhone(in.Phone))
	put("age", utils.ValidateAge(in.Age))
	put("bio", utils.ValidateBio(in.Bio))
	put("password", utils.ValidatePassword(in.Password))
	put("referral", utils.ValidateReferral(in.Referral, s.referralCodes))
	if in.LinkedIn != "" {
		put("linkedin", utils.ValidateURL(in.LinkedIn))
	}
	return errs
}

func (s *RegistrationService) checkFiles(in dto.RegistrationInput) (int, any) {
	if in.Resume == nil {
		return fiber.StatusBadRequest, dto.Error("resume is required")
	}
	if !strings.EqualFold(in.Resume.ContentType, "application/pdf") {
		return fiber.StatusBadRequest, dto.Error("resume must be a PDF")
	}
	if in.Resume.Size > s.maxUploadSize {
		return fiber.StatusRequestEntityTooLarge, dto.Error(fmt.Sprintf("resume exceeds %d bytes", s.maxUploadSize))
	}
	if in.Avatar != nil {
		if !strings.HasPrefix(strings.ToLower(in.Avatar.ContentType), "image/") {
			return fiber.StatusBadRequest, dto.Error("profile picture must be an image")
		}
		if in.Avatar.Size > s.maxUploadSize {
			return fiber.StatusRequestEntityTooLarge, dto.Error(fmt.Sprintf("profile picture exceeds %d bytes", s.maxUploadSize))
		}
	}
	return 0, nil
}

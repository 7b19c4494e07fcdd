package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/media"
	"github.com/pbdsce/Zenith-sub000/internal/repository"
	"github.com/pbdsce/Zenith-sub000/internal/utils"
	"github.com/pbdsce/Zenith-sub000/model"
)

type ProfileStore interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
	FindProfileByID(ctx context.Context, id bson.ObjectID) (model.User, error)
	SetProfileFields(ctx context.Context, id bson.ObjectID, fields map[string]any) error
	SetSnapshotFields(ctx context.Context, batchID, userID bson.ObjectID, fields map[string]any) error
	ListSnapshots(ctx context.Context) ([]model.UserSnapshot, error)
	DeleteProfile(ctx context.Context, id bson.ObjectID) error
	DeleteLegacyRegistration(ctx context.Context, id bson.ObjectID) error
	AdjustCollegeCount(ctx context.Context, name string, delta int64) error
}

type ProfileService struct {
	store         ProfileStore
	uploader      media.Uploader
	maxUploadSize int64
}

func NewProfileService(store ProfileStore, up media.Uploader, maxUploadSize int64) *ProfileService {
	return &ProfileService{store: store, uploader: up, maxUploadSize: maxUploadSize}
}

func (s *ProfileService) Get(ctx context.Context, idHex string) (int, any) {
	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return fiber.StatusBadRequest, dto.Error("invalid user id")
	}
	user, err := s.store.FindProfileByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.StatusNotFound, dto.Error("user not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}
	return fiber.StatusOK, dto.OK(user)
}

// List returns the non-deleted denormalized snapshots across all batches.
func (s *ProfileService) List(ctx context.Context) (int, any) {
	snaps, err := s.store.ListSnapshots(ctx)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("listing failed")
	}
	if snaps == nil {
		snaps = []model.UserSnapshot{}
	}
	return fiber.StatusOK, dto.OK(snaps)
}

// Update applies a partial profile edit. The display name is immutable;
// college changes move the popularity counters; file replacements destroy
// the old asset first, best effort.
func (s *ProfileService) Update(ctx context.Context, actorID bson.ObjectID, idHex string, in dto.ProfileUpdateInput) (int, any) {
	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return fiber.StatusBadRequest, dto.Error("invalid user id")
	}
	if id != actorID {
		actor, err := s.store.FindProfileByID(ctx, actorID)
		if err != nil || !actor.IsAdmin {
			return fiber.StatusForbidden, dto.Error("cannot update another user's profile")
		}
	}

	user, err := s.store.FindProfileByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.StatusNotFound, dto.Error("user not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != user.Name {
		return fiber.StatusBadRequest, dto.Error("name cannot be changed")
	}

	fields := map[string]any{}
	mirror := map[string]any{}

	if in.Age != nil {
		if err := utils.ValidateAge(*in.Age); err != nil {
			return fiber.StatusBadRequest, dto.Error(err.Error())
		}
		fields["age"] = *in.Age
	}
	if in.Gender != nil {
		fields["gender"] = *in.Gender
	}
	if in.Bio != nil {
		if err := utils.ValidateBio(*in.Bio); err != nil {
			return fiber.StatusBadRequest, dto.Error(err.Error())
		}
		fields["bio"] = *in.Bio
	}
	if in.LinkedIn != nil {
		if *in.LinkedIn != "" {
			if err := utils.ValidateURL(*in.LinkedIn); err != nil {
				return fiber.StatusBadRequest, dto.Error(err.Error())
			}
		}
		fields["linkedin"] = *in.LinkedIn
	}

	var oldCollege, newCollege string
	if in.College != nil {
		newCollege = strings.Join(strings.Fields(*in.College), " ")
		if utils.NormalizeCollege(newCollege) != utils.NormalizeCollege(user.College) {
			oldCollege = user.College
			fields["college"] = newCollege
			mirror["college"] = newCollege
		}
	}

	if in.Resume != nil {
		if status, resp := s.replaceFile(ctx, in.Resume, "application/pdf", media.KindRaw, user.ResumeID, "resume", fields); status != 0 {
			return status, resp
		}
	}
	if in.Avatar != nil {
		if status, resp := s.replaceFile(ctx, in.Avatar, "image/", media.KindImage, user.AvatarID, "avatar", fields); status != 0 {
			return status, resp
		}
		mirror["avatar_url"] = fields["avatar_url"]
	}

	if len(fields) == 0 {
		return fiber.StatusOK, dto.OKMessage("nothing to update", user)
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.SetProfileFields(ctx, id, fields); err != nil {
			return err
		}
		if len(mirror) > 0 && !user.BatchID.IsZero() {
			if err := s.store.SetSnapshotFields(ctx, user.BatchID, id, mirror); err != nil {
				return err
			}
		}
		// deactivated profiles are not in the counts; SetStatus moves them
		// back in against whatever college the profile then carries
		if in.College != nil && fields["college"] != nil && user.Status != model.StatusDeactivated {
			if err := s.store.AdjustCollegeCount(ctx, oldCollege, -1); err != nil {
				return err
			}
			if err := s.store.AdjustCollegeCount(ctx, newCollege, 1); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Println("profile update failed:", err)
		return fiber.StatusInternalServerError, dto.Error("update failed")
	}

	updated, err := s.store.FindProfileByID(ctx, id)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}
	return fiber.StatusOK, dto.OK(updated)
}

// Delete is the admin-only hard delete: remove the profile, mark the batch
// snapshot deleted, clear the legacy registrations copy.
func (s *ProfileService) Delete(ctx context.Context, idHex string) (int, any) {
	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return fiber.StatusBadRequest, dto.Error("invalid user id")
	}
	user, err := s.store.FindProfileByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.StatusNotFound, dto.Error("user not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteProfile(ctx, id); err != nil {
			return err
		}
		if !user.BatchID.IsZero() {
			if err := s.store.SetSnapshotFields(ctx, user.BatchID, id, map[string]any{"status": model.StatusDeleted}); err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}
		// a deactivated profile already left the count at SetStatus time
		if user.Status != model.StatusDeactivated {
			if err := s.store.AdjustCollegeCount(ctx, user.College, -1); err != nil {
				return err
			}
		}
		return s.store.DeleteLegacyRegistration(ctx, id)
	})
	if err != nil {
		log.Println("profile delete failed:", err)
		return fiber.StatusInternalServerError, dto.Error("delete failed")
	}
	return fiber.StatusOK, dto.OKMessage("user deleted", nil)
}

// SetStatus is the admin-only status change, written to the profile and its
// batch mirror together.
func (s *ProfileService) SetStatus(ctx context.Context, idHex, status string) (int, any) {
	switch status {
	case model.StatusPending, model.StatusActive, model.StatusSuspended, model.StatusDeactivated:
	default:
		return fiber.StatusBadRequest, dto.Error("invalid status")
	}
	id, err := bson.ObjectIDFromHex(idHex)
	if err != nil {
		return fiber.StatusBadRequest, dto.Error("invalid user id")
	}
	user, err := s.store.FindProfileByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return fiber.StatusNotFound, dto.Error("user not found")
	}
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("lookup failed")
	}

	err = s.store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.store.SetProfileFields(ctx, id, map[string]any{"status": status}); err != nil {
			return err
		}
		if !user.BatchID.IsZero() {
			if err := s.store.SetSnapshotFields(ctx, user.BatchID, id, map[string]any{"status": status}); err != nil {
				return err
			}
		}
		// keep the college counter tracking non-deactivated profiles
		wasOut := user.Status == model.StatusDeactivated
		isOut := status == model.StatusDeactivated
		if wasOut != isOut {
			delta := int64(-1)
			if wasOut {
				delta = 1
			}
			return s.store.AdjustCollegeCount(ctx, user.College, delta)
		}
		return nil
	})
	if err != nil {
		log.Println("status update failed:", err)
		return fiber.StatusInternalServerError, dto.Error("status update failed")
	}
	return fiber.StatusOK, dto.OKMessage("status updated", fiber.Map{"id": idHex, "status": status})
}

func (s *ProfileService) replaceFile(ctx context.Context, f *dto.FileUpload, wantType, kind, oldID, field string, fields map[string]any) (int, any) {
	matches := strings.EqualFold(f.ContentType, wantType)
	if strings.HasSuffix(wantType, "/") {
		matches = strings.HasPrefix(strings.ToLower(f.ContentType), wantType)
	}
	if !matches {
		return fiber.StatusBadRequest, dto.Error("unsupported " + field + " type")
	}
	if f.Size > s.maxUploadSize {
		return fiber.StatusRequestEntityTooLarge, dto.Error(field + " is too large")
	}
	if oldID != "" {
		if err := s.uploader.Destroy(ctx, oldID, kind); err != nil {
			log.Println("old asset cleanup failed:", err)
		}
	}
	asset, err := s.uploader.Upload(ctx, f.Content, field+"_"+uuid.NewString(), kind)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error(err.Error())
	}
	fields[field+"_url"] = asset.URL
	fields[field+"_id"] = asset.PublicID
	return 0, nil
}

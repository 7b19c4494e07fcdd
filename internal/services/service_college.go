package services

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/model"
)

type CollegeStore interface {
	UpsertCollege(ctx context.Context, name string) (model.College, error)
	ListColleges(ctx context.Context) ([]model.College, error)
}

type CollegeService struct {
	store CollegeStore
}

func NewCollegeService(store CollegeStore) *CollegeService {
	return &CollegeService{store: store}
}

func (s *CollegeService) List(ctx context.Context) (int, any) {
	colleges, err := s.store.ListColleges(ctx)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("listing failed")
	}
	if colleges == nil {
		colleges = []model.College{}
	}
	return fiber.StatusOK, dto.OK(colleges)
}

// Upsert is idempotent by normalized name: " MIT " and "mit" resolve to the
// same record, and the popularity counter is untouched.
func (s *CollegeService) Upsert(ctx context.Context, req dto.CollegeUpsertRequest) (int, any) {
	if strings.TrimSpace(req.Name) == "" {
		return fiber.StatusBadRequest, dto.Error("name is required")
	}
	college, err := s.store.UpsertCollege(ctx, req.Name)
	if err != nil {
		return fiber.StatusInternalServerError, dto.Error("upsert failed")
	}
	return fiber.StatusOK, dto.OK(college)
}

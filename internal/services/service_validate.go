package services

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pbdsce/Zenith-sub000/dto"
	"github.com/pbdsce/Zenith-sub000/internal/utils"
)

// Wizard steps, mirrored client-side.
const (
	StepAccount  = "account"
	StepPersonal = "personal"
	StepCollege  = "college"
	StepLinks    = "links"
)

// DupChecker is the duplicate-lookup slice of the store the account step
// needs.
type DupChecker interface {
	EmailTaken(ctx context.Context, email string) (bool, error)
	PhoneTaken(ctx context.Context, phone string) (bool, error)
}

type ValidateService struct {
	store         DupChecker
	referralCodes []string
}

func NewValidateService(store DupChecker, referralCodes []string) *ValidateService {
	return &ValidateService{store: store, referralCodes: referralCodes}
}

// ValidateStep runs the stateless field checks for one wizard page. The
// account step additionally runs the duplicate email/phone lookups.
func (s *ValidateService) ValidateStep(ctx context.Context, req dto.StepValidationRequest) (int, any) {
	errs := map[string]string{}
	put := func(field string, err error) {
		if err != nil {
			errs[field] = err.Error()
		}
	}

	switch req.Step {
	case StepAccount:
		put("email", utils.ValidateEmail(req.Email))
		put("phone", utils.ValidatePhone(req.Phone))
		put("password", utils.ValidatePassword(req.Password))
		if _, ok := errs["email"]; !ok {
			taken, err := s.store.EmailTaken(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
			if err != nil {
				return fiber.StatusInternalServerError, dto.Error("lookup failed")
			}
			if taken {
				errs["email"] = "email already registered"
			}
		}
		if _, ok := errs["phone"]; !ok {
			taken, err := s.store.PhoneTaken(ctx, strings.TrimSpace(req.Phone))
			if err != nil {
				return fiber.StatusInternalServerError, dto.Error("lookup failed")
			}
			if taken {
				errs["phone"] = "phone already registered"
			}
		}
	case StepPersonal:
		put("name", utils.ValidateName(req.Name))
		put("age", utils.ValidateAge(req.Age))
		put("bio", utils.ValidateBio(req.Bio))
	case StepCollege:
		if strings.TrimSpace(req.College) == "" {
			errs["college"] = "college is required"
		}
		put("referral", utils.ValidateReferral(req.Referral, s.referralCodes))
	case StepLinks:
		if req.LinkedIn != "" {
			put("linkedin", utils.ValidateURL(req.LinkedIn))
		}
	default:
		return fiber.StatusBadRequest, dto.Error("unknown step")
	}

	return fiber.StatusOK, dto.OK(dto.StepValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	})
}

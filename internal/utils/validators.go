package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{10,13}$`)
	urlRe      = regexp.MustCompile(`^https?://[^\s]+\.[^\s]+$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z][a-zA-Z .'\-]{1,63}$`)
	referralRe = regexp.MustCompile(`^[A-Z0-9]{4,12}$`)
)

const (
	MinAge = 13
	MaxAge = 99

	MaxBioLen = 300

	MinPasswordLen = 8
)

func ValidateEmail(email string) error {
	if !emailRe.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

func ValidateURL(raw string) error {
	if !urlRe.MatchString(raw) {
		return fmt.Errorf("invalid URL")
	}
	return nil
}

func ValidateName(name string) error {
	if !nameRe.MatchString(strings.TrimSpace(name)) {
		return fmt.Errorf("invalid name")
	}
	return nil
}

func ValidateAge(age int) error {
	if age < MinAge || age > MaxAge {
		return fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	return nil
}

func ValidateBio(bio string) error {
	if len(bio) > MaxBioLen {
		return fmt.Errorf("bio must be at most %d characters", MaxBioLen)
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// ValidateReferral checks the code's shape and, when an allow-list is
// configured, membership in it. An empty code is always accepted.
func ValidateReferral(code string, allowed []string) error {
	if code == "" {
		return nil
	}
	if !referralRe.MatchString(code) {
		return fmt.Errorf("invalid referral code")
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if code == a {
			return nil
		}
	}
	return fmt.Errorf("unknown referral code")
}

// NormalizeCollege trims and lower-cases a college name for use as the
// dedup key.
func NormalizeCollege(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

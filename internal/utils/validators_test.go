package utils

import (
	"strings"
	"testing"
)

func TestValidateEmail(t *testing.T) {
	good := []string{"a@b.co", "first.last+tag@sub.example.com", "x_y%z@host.io"}
	for _, e := range good {
		if err := ValidateEmail(e); err != nil {
			t.Errorf("ValidateEmail(%q) = %v", e, err)
		}
	}
	bad := []string{"", "plain", "a@b", "@host.com", "a b@host.com", "a@host."}
	for _, e := range bad {
		if err := ValidateEmail(e); err == nil {
			t.Errorf("ValidateEmail(%q) passed", e)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	good := []string{"9876543210", "+919876543210", "1234567890123"}
	for _, p := range good {
		if err := ValidatePhone(p); err != nil {
			t.Errorf("ValidatePhone(%q) = %v", p, err)
		}
	}
	bad := []string{"", "12345", "98765432101234", "98-76543210", "+"}
	for _, p := range bad {
		if err := ValidatePhone(p); err == nil {
			t.Errorf("ValidatePhone(%q) passed", p)
		}
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://linkedin.com/in/someone"); err != nil {
		t.Error(err)
	}
	if err := ValidateURL("http://example.org"); err != nil {
		t.Error(err)
	}
	for _, u := range []string{"", "ftp://example.org", "linkedin.com/in/x", "https://nospace .com"} {
		if err := ValidateURL(u); err == nil {
			t.Errorf("ValidateURL(%q) passed", u)
		}
	}
}

func TestValidateName(t *testing.T) {
	good := []string{"Alice Smith", "O'Brien", "Jean-Luc", "  Padded Name  "}
	for _, n := range good {
		if err := ValidateName(n); err != nil {
			t.Errorf("ValidateName(%q) = %v", n, err)
		}
	}
	bad := []string{"", "A", "1Numeric", "semi;colon", strings.Repeat("a", 65)}
	for _, n := range bad {
		if err := ValidateName(n); err == nil {
			t.Errorf("ValidateName(%q) passed", n)
		}
	}
}

func TestValidateAgeBounds(t *testing.T) {
	for _, age := range []int{MinAge, 21, MaxAge} {
		if err := ValidateAge(age); err != nil {
			t.Errorf("ValidateAge(%d) = %v", age, err)
		}
	}
	for _, age := range []int{0, MinAge - 1, MaxAge + 1, -5} {
		if err := ValidateAge(age); err == nil {
			t.Errorf("ValidateAge(%d) passed", age)
		}
	}
}

func TestValidateBio(t *testing.T) {
	if err := ValidateBio(strings.Repeat("x", MaxBioLen)); err != nil {
		t.Error(err)
	}
	if err := ValidateBio(strings.Repeat("x", MaxBioLen+1)); err == nil {
		t.Error("over-long bio passed")
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(strings.Repeat("p", MinPasswordLen)); err != nil {
		t.Error(err)
	}
	if err := ValidatePassword("short"); err == nil {
		t.Error("short password passed")
	}
}

func TestValidateReferral(t *testing.T) {
	allowed := []string{"ZEN2024", "EARLY99"}

	if err := ValidateReferral("", allowed); err != nil {
		t.Errorf("empty code should be accepted: %v", err)
	}
	if err := ValidateReferral("ZEN2024", allowed); err != nil {
		t.Errorf("listed code rejected: %v", err)
	}
	if err := ValidateReferral("OTHER123", nil); err != nil {
		t.Errorf("well-formed code with no allow-list rejected: %v", err)
	}
	if err := ValidateReferral("NOPE1234", allowed); err == nil {
		t.Error("unlisted code passed")
	}
	for _, c := range []string{"abc", "lower123", "TOOLONGCODE42", "AB"} {
		if err := ValidateReferral(c, nil); err == nil {
			t.Errorf("ValidateReferral(%q) passed", c)
		}
	}
}

func TestNormalizeCollege(t *testing.T) {
	cases := map[string]string{
		"  MIT  ":                        "mit",
		"Indian   Institute of  Science": "indian institute of science",
		"stanford":                       "stanford",
		"":                               "",
	}
	for in, want := range cases {
		if got := NormalizeCollege(in); got != want {
			t.Errorf("NormalizeCollege(%q) = %q, want %q", in, got, want)
		}
	}
}

package validation

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

var (
	// ErrEmailRequired is returned when an email address is missing.
	ErrEmailRequired = errors.New("email is required")

	// ErrEmailTooLong is returned when an email address exceeds 320 characters.
	ErrEmailTooLong = errors.New("email is too long")

	// ErrEmailInvalid is returned when an email address does not parse.
	ErrEmailInvalid = errors.New("invalid email address")

	// mcNumberRegex matches an optional MC- prefix followed by 5-8 digits.
	mcNumberRegex = regexp.MustCompile(`^(MC-?)?\d{5,8}$`)

	// dotNumberRegex matches 5-8 digits.
	dotNumberRegex = regexp.MustCompile(`^\d{5,8}$`)
)

// NormalizeEmail trims and validates an email address.
func NormalizeEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", ErrEmailRequired
	}
	if len(email) > 320 {
		return "", ErrEmailTooLong
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrEmailInvalid
	}
	return email, nil
}

// ValidMCNumber reports whether s looks like an FMCSA MC number.
// Empty strings are valid because the field is optional.
func ValidMCNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	return mcNumberRegex.MatchString(strings.ToUpper(s))
}

// ValidDOTNumber reports whether s looks like a USDOT number.
// Empty strings are valid because the field is optional.
func ValidDOTNumber(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	return dotNumberRegex.MatchString(s)
}

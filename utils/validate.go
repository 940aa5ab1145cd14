package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateEmail reports whether email is a well-formed address.
func ValidateEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}

// ValidatePassword enforces the shared password policy.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return NewValidationError("Please enter a strong password")
	}
	if len(password) > MaxPasswordLength {
		return NewValidationError("Password must be at most 72 bytes")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

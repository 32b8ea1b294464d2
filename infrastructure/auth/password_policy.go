package auth

import (
	"unicode"

	"keepstock/infrastructure/apperr"
)

const MinPasswordLength = 8

// ValidatePasswordPolicy applies to accounts added after startup. The
// static demo accounts predate it.
func ValidatePasswordPolicy(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return apperr.Validation("password must be at least %d characters", MinPasswordLength)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return apperr.Validation("password must include a letter and a digit")
	}
	return nil
}

package validation

import (
	"fmt"
	"regexp"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateEmail validates an email address format.
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password policy: at least 8
// characters with at least one letter and one digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
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
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidateRealName validates a profile display name (up to 120 characters).
func ValidateRealName(name string) error {
	if len(name) > 120 {
		return fmt.Errorf("real name must be at most 120 characters")
	}
	return nil
}

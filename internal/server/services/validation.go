package services

import (
	"strings"
	"unicode"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

// PasswordSymbols is the fixed punctuation set a password must draw its
// special character from. Keeping the set explicit makes the policy
// reproducible in tests.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

const passwordMinLength = 8

// ValidatePassword enforces the registration password policy: minimum
// length plus at least one letter, one digit, and one symbol from
// PasswordSymbols.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLength {
		return common.NewValidationError("Password must be at least 8 characters.")
	}

	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLetter || !hasDigit || !hasSymbol {
		return common.NewValidationError("Password must contain at least one number, letter, and special character.")
	}
	return nil
}

// TaskPolicy holds the configurable task validation rules. The defaults
// (both off) are the weakest variant: title required, description free-form.
type TaskPolicy struct {
	// RequireDescription makes the description mandatory and non-empty
	// after trimming.
	RequireDescription bool
	// TitleLettersOnly restricts titles to letters and whitespace.
	TitleLettersOnly bool
}

// ValidateTitle checks a task title against the policy. The title is
// always required and must be non-empty after trimming.
func (p TaskPolicy) ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return common.NewValidationError("Title is required")
	}
	if p.TitleLettersOnly {
		for _, r := range title {
			if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
				return common.NewValidationError("Title may only contain letters and spaces")
			}
		}
	}
	return nil
}

// ValidateDescription checks a task description against the policy.
func (p TaskPolicy) ValidateDescription(description *string) error {
	if !p.RequireDescription {
		return nil
	}
	if description == nil || strings.TrimSpace(*description) == "" {
		return common.NewValidationError("Description is required")
	}
	return nil
}

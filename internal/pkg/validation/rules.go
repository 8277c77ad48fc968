package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern, matches the advisory client-side check the
	// registration form performed
	EmailPattern = `^[\w.\-]+@([\w\-]+\.)+[\w\-]{2,4}$`

	// Password min length for login accounts
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 120
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// IsValidEmail reports whether the string has an acceptable email shape.
func IsValidEmail(email string) bool {
	return CompiledPatterns.Email.MatchString(email)
}

// Package phone normalizes Brazilian phone numbers for storage and lookup.
package phone

import (
	"strings"
)

// Normalize strips every non-digit character from the input. The result is
// the canonical form stored in the people table and used as the check-in
// lookup key. Normalize is idempotent.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPlausible reports whether the normalized number has a Brazilian
// area-code + subscriber digit count (10 or 11 digits).
func IsPlausible(digits string) bool {
	return len(digits) == 10 || len(digits) == 11
}

// Format renders bare digits in the display form used on registration
// screens, e.g. "41999998888" -> "(41) 99999-8888". Inputs that are not
// 10 or 11 digits are returned unchanged.
func Format(digits string) string {
	digits = Normalize(digits)
	switch len(digits) {
	case 10:
		return "(" + digits[:2] + ") " + digits[2:6] + "-" + digits[6:]
	case 11:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	default:
		return digits
	}
}

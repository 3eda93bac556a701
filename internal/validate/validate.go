package validate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank reports whether s is empty once surrounding whitespace is removed.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidEmail performs a shape check only: exactly one "@", a non-empty
// local part and a dot somewhere in the domain part. Not RFC 5322, on
// purpose — this guards a login form, it does not verify deliverability.
func IsValidEmail(s string) bool {
	local, domain, found := strings.Cut(s, "@")
	if !found || local == "" {
		return false
	}
	if strings.Contains(domain, "@") {
		return false
	}
	return strings.Contains(domain, ".")
}

// IsStrongPassword reports whether s is at least 8 characters long and
// contains at least one letter and one digit. Case and symbols don't count.
func IsStrongPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// NormalizeEmail trims whitespace and lowercases, the canonical form every
// email is stored and queried under.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

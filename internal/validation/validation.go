// Package validation holds the form-field predicates shared by signup, login
// and worker registration. Every function here is pure.
package validation

import "regexp"

const MinPasswordLength = 6

// MaxPasswordBytes is the longest password bcrypt can hash.
const MaxPasswordBytes = 72

var (
	emailRe = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phoneRe = regexp.MustCompile(`^03\d{9}$`)
	cnicRe  = regexp.MustCompile(`^\d{5}-\d{7}-\d$`)
)

const (
	MsgInvalidEmail    = "Please enter a valid email"
	MsgInvalidPhone    = "Please enter a valid phone number (e.g., 03123456789)"
	MsgInvalidCNIC     = "Please enter valid CNIC (xxxxx-xxxxxxx-x)"
	MsgPasswordTooWeak = "Password must be at least 6 characters"
	MsgPasswordTooLong = "Password must be at most 72 characters"
)

func IsValidEmail(s string) bool { return emailRe.MatchString(s) }

// IsValidLocalPhone accepts an 11 digit mobile number starting with 03.
func IsValidLocalPhone(s string) bool { return phoneRe.MatchString(s) }

// IsValidNationalID accepts a CNIC written as ddddd-ddddddd-d.
func IsValidNationalID(s string) bool { return cnicRe.MatchString(s) }

func PasswordMeetsMinimumLength(password string, min int) bool {
	if min <= 0 {
		min = MinPasswordLength
	}
	return len([]rune(password)) >= min
}

// PasswordWithinMaximumLength counts bytes, not runes.
func PasswordWithinMaximumLength(password string) bool {
	return len(password) <= MaxPasswordBytes
}

// CheckEmail returns a reason when s is not an email address, "" otherwise.
func CheckEmail(s string) string {
	if IsValidEmail(s) {
		return ""
	}
	return MsgInvalidEmail
}

func CheckLocalPhone(s string) string {
	if IsValidLocalPhone(s) {
		return ""
	}
	return MsgInvalidPhone
}

func CheckNationalID(s string) string {
	if IsValidNationalID(s) {
		return ""
	}
	return MsgInvalidCNIC
}

func CheckPassword(s string) string {
	if !PasswordMeetsMinimumLength(s, MinPasswordLength) {
		return MsgPasswordTooWeak
	}
	if !PasswordWithinMaximumLength(s) {
		return MsgPasswordTooLong
	}
	return ""
}

type Strength string

const (
	StrengthNone   Strength = "none"
	StrengthWeak   Strength = "weak"
	StrengthMedium Strength = "medium"
	StrengthStrong Strength = "strong"
)

func ClassifyPasswordStrength(password string) Strength {
	if password == "" {
		return StrengthNone
	}
	n := len([]rune(password))
	if n >= 10 && hasUpper(password) && hasDigit(password) {
		return StrengthStrong
	}
	if n >= MinPasswordLength {
		return StrengthMedium
	}
	return StrengthWeak
}

func hasUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}

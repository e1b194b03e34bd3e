package auth

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrPasswordTooShort    = errors.New("auth: password too short")
	ErrPasswordNoLowercase = errors.New("auth: password must contain lowercase letter")
	ErrPasswordNoUppercase = errors.New("auth: password must contain uppercase letter")
	ErrPasswordNoDigit     = errors.New("auth: password must contain digit")
	ErrPasswordNoSymbol    = errors.New("auth: password must contain special character")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// passwordSymbols is the punctuation set that satisfies the special
// character requirement.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// IdentifierKind classifies a raw sign-up credential.
type IdentifierKind int

const (
	IdentifierUnrecognized IdentifierKind = iota
	IdentifierPhone
	IdentifierEmail
)

func (k IdentifierKind) String() string {
	switch k {
	case IdentifierPhone:
		return "phone"
	case IdentifierEmail:
		return "email"
	default:
		return "unrecognized"
	}
}

// Identifier is a classified sign-up credential. The kind decides which
// user field the value lands in.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

// Local mobile numbers are exactly eight digits and start with 6-9.
var phoneRegex = regexp.MustCompile(`^[6-9]\d{7}$`)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ClassifyIdentifier decides whether a raw credential is a phone number,
// an email address, or neither. The input is trimmed before matching.
func ClassifyIdentifier(raw string) Identifier {
	raw = strings.TrimSpace(raw)
	switch {
	case phoneRegex.MatchString(raw):
		return Identifier{Kind: IdentifierPhone, Value: raw}
	case emailRegex.MatchString(raw):
		return Identifier{Kind: IdentifierEmail, Value: raw}
	default:
		return Identifier{Kind: IdentifierUnrecognized, Value: raw}
	}
}

// CheckPasswordStrength reports which strength rule a password violates,
// or nil when it satisfies all of them: minimum length, one lowercase,
// one uppercase, one digit, one symbol from passwordSymbols.
func CheckPasswordStrength(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		}
	}

	switch {
	case !hasLower:
		return ErrPasswordNoLowercase
	case !hasUpper:
		return ErrPasswordNoUppercase
	case !hasDigit:
		return ErrPasswordNoDigit
	case !hasSymbol:
		return ErrPasswordNoSymbol
	}
	return nil
}

// ValidatePasswordStrength is the boolean form of CheckPasswordStrength.
func ValidatePasswordStrength(password string) bool {
	return CheckPasswordStrength(password) == nil
}

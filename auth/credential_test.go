package auth

import (
	"errors"
	"testing"
)

func TestClassifyIdentifierPhone(t *testing.T) {
	cases := []struct {
		raw  string
		want IdentifierKind
	}{
		{"81234567", IdentifierPhone},
		{"99887766", IdentifierPhone},
		{"61112222", IdentifierPhone},
		{"  81234567  ", IdentifierPhone},
		{"51234567", IdentifierUnrecognized}, // leading digit outside 6-9
		{"8123456", IdentifierUnrecognized},  // too short
		{"812345678", IdentifierUnrecognized},
		{"8123456a", IdentifierUnrecognized},
		{"", IdentifierUnrecognized},
	}
	for _, tc := range cases {
		got := ClassifyIdentifier(tc.raw)
		if got.Kind != tc.want {
			t.Fatalf("ClassifyIdentifier(%q) = %v, want %v", tc.raw, got.Kind, tc.want)
		}
	}
}

func TestClassifyIdentifierEmail(t *testing.T) {
	cases := []struct {
		raw  string
		want IdentifierKind
	}{
		{"user@example.com", IdentifierEmail},
		{"a.b+c@sub.domain.org", IdentifierEmail},
		{"user@example", IdentifierUnrecognized},
		{"@example.com", IdentifierUnrecognized},
		{"user@.com", IdentifierUnrecognized},
		{"user example.com", IdentifierUnrecognized},
		{"user@ example.com", IdentifierUnrecognized},
	}
	for _, tc := range cases {
		got := ClassifyIdentifier(tc.raw)
		if got.Kind != tc.want {
			t.Fatalf("ClassifyIdentifier(%q) = %v, want %v", tc.raw, got.Kind, tc.want)
		}
	}
}

func TestClassifyIdentifierTrimsValue(t *testing.T) {
	id := ClassifyIdentifier("  81234567 ")
	if id.Value != "81234567" {
		t.Fatalf("expected trimmed value, got %q", id.Value)
	}
}

func TestCheckPasswordStrength(t *testing.T) {
	cases := []struct {
		password string
		want     error
	}{
		{"Abcdef1!", nil},
		{`Xy9"long enough`, nil},
		{"Ab1!xyz", ErrPasswordTooShort},
		{"ABCDEF1!", ErrPasswordNoLowercase},
		{"abcdef1!", ErrPasswordNoUppercase},
		{"Abcdefg!", ErrPasswordNoDigit},
		{"Abcdefg1", ErrPasswordNoSymbol},
		{"", ErrPasswordTooShort},
		{"Abcdef1-", ErrPasswordNoSymbol}, // '-' is outside the accepted set
	}
	for _, tc := range cases {
		got := CheckPasswordStrength(tc.password)
		if !errors.Is(got, tc.want) && !(got == nil && tc.want == nil) {
			t.Fatalf("CheckPasswordStrength(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestValidatePasswordStrengthNeverPanics(t *testing.T) {
	inputs := []string{"", "\x00", "ñÑ1!aaaa", "Abcdef1!", "日本語日本語日本語"}
	for _, in := range inputs {
		_ = ValidatePasswordStrength(in)
	}
}

func TestIdentifierKindString(t *testing.T) {
	if IdentifierPhone.String() != "phone" || IdentifierEmail.String() != "email" {
		t.Fatalf("unexpected kind strings")
	}
	if IdentifierUnrecognized.String() != "unrecognized" {
		t.Fatalf("unexpected zero-kind string")
	}
}

package upc

import (
	"errors"
	"strings"
	"unicode"
)

// Comic UPCs are a 12-digit product code plus a 5-digit supplemental
// code (issue number, variant, printing).
const (
	// Length is the full extended UPC length
	Length = 17

	// DefaultExtension is appended when a scanner returns only the
	// 12-digit product code. "001" issue + variant 1 + printing 1 is the
	// standard first-print cover.
	DefaultExtension = "00111"
)

var (
	ErrMissingInput       = errors.New("UPC is required")
	ErrNonDigitCharacters = errors.New("UPC must contain only digits")
	ErrWrongLength        = errors.New("UPC must be 17 digits")
)

// Sanitize strips all whitespace from raw, preserving digit order.
// Non-digit, non-whitespace characters are kept; Validate rejects them.
func Sanitize(raw string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// Validate checks a sanitized UPC string. Pure, no side effects.
// Phải chạy trước mọi external call.
func Validate(s string) error {
	if s == "" {
		return ErrMissingInput
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return ErrNonDigitCharacters
		}
	}

	if len(s) != Length {
		return ErrWrongLength
	}

	return nil
}

// Normalize sanitizes raw and validates the result.
func Normalize(raw string) (string, error) {
	s := Sanitize(raw)
	if err := Validate(s); err != nil {
		return "", err
	}
	return s, nil
}

// ExtendCode pads a short scanned product code to the full 17-digit
// form. A scanned extension wins; otherwise the static default applies.
// Codes already at full length pass through unchanged.
func ExtendCode(code, extension string) string {
	if len(code) >= Length {
		return code
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return code + extension
}

package upc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	assert.Equal(t, "03678550016700111", Sanitize(" 036 7855 00167 00111 "))
	assert.Equal(t, "03678550016700111", Sanitize("03678550016700111"))
	assert.Equal(t, "12a45", Sanitize("12a 45"), "non-digit characters survive sanitize")
	assert.Equal(t, "abc", Sanitize("\ta b\nc "))
	assert.Equal(t, "", Sanitize("   "))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"valid 17 digits", "03678550016700111", nil},
		{"empty", "", ErrMissingInput},
		{"letters mixed in", "12a4567890123456", ErrNonDigitCharacters},
		{"16 digits", "1234567890123456", ErrWrongLength},
		{"18 digits", "123456789012345678", ErrWrongLength},
		{"12-digit raw scan", "036785500167", ErrWrongLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.input)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(" 036 78550016 700111")
	assert.NoError(t, err)
	assert.Equal(t, "03678550016700111", got)

	// Non-digit check runs on the sanitized string, length check after
	_, err = Normalize("12a4 567890123456")
	assert.ErrorIs(t, err, ErrNonDigitCharacters)

	_, err = Normalize("   ")
	assert.ErrorIs(t, err, ErrMissingInput)
}

func TestExtendCode(t *testing.T) {
	// Scanner returned no extension: static default applies
	assert.Equal(t, "03678550016700111", ExtendCode("036785500167", ""))

	// Scanner extension wins over the default
	assert.Equal(t, "03678550016700521", ExtendCode("036785500167", "00521"))

	// Already full length passes through
	assert.Equal(t, "03678550016700111", ExtendCode("03678550016700111", "99999"))
}

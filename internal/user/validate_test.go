package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.c",
		"ayesha@example.com",
		"first.last@mail.example.org",
	}
	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}

	invalid := []string{
		"",
		"@b.c",       // starts with @
		"ab.c",       // no @
		"a@.c",       // dot right after @
		"a@bc",       // no dot after @
		"a@b.c@d.e",  // two @
		"ayesha@com", // no dot after @
		".a@b.com",   // starts with dot
		"a@b.com.",   // ends with dot
		"a@b.",       // ends with dot
		"ab@c",       // @ too close to the end
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{
		"1234567",
		"+880 171-100",
		"(02) 9999999",
		"123456789012345",
	}
	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}

	invalid := []string{
		"",
		"123456",           // too short
		"1234567890123456", // too long
		"12345ab",          // letters
		"+-() +-",          // not enough digits
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

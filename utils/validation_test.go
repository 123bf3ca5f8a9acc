package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("user_123"))
	assert.NoError(t, ValidateUsername("abc"))

	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("this_username_is_way_too_long"))
	assert.Error(t, ValidateUsername("có dấu"))
	assert.Error(t, ValidateUsername("user name"))
	assert.Error(t, ValidateUsername(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.NoError(t, ValidateEmail("a.b+c@sub.domain.vn"))

	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@tld"))
	assert.Error(t, ValidateEmail("@example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Passw0rd"))

	assert.Error(t, ValidatePassword("short1A"))
	assert.Error(t, ValidatePassword("alllowercase1"))
	assert.Error(t, ValidatePassword("ALLUPPERCASE1"))
	assert.Error(t, ValidatePassword("NoDigitsHere"))
}

func TestValidateLink(t *testing.T) {
	assert.NoError(t, ValidateLink("https://example.com/p/123"))
	assert.NoError(t, ValidateLink("http://sub.example.vn/profile"))

	assert.Error(t, ValidateLink("ftp://example.com/file"))
	assert.Error(t, ValidateLink("example.com/no-scheme"))
	assert.Error(t, ValidateLink("https://"))
	assert.Error(t, ValidateLink(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.NotContains(t, SanitizeString("<script>alert(1)</script>hi"), "<script>")
	assert.Equal(t, "xin chào", SanitizeString("xin chào"))
}

package utils

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	// Password validation regex patterns
	hasLower  = regexp.MustCompile(`[a-z]`)
	hasUpper  = regexp.MustCompile(`[A-Z]`)
	hasNumber = regexp.MustCompile(`[0-9]`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")

	return strings.TrimSpace(sanitized)
}

// ValidateUsername checks username format
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return FieldValidationErrors{{
			Field:   "username",
			Message: "Tên đăng nhập phải gồm 3-20 ký tự chữ, số hoặc gạch dưới",
		}}
	}
	return nil
}

// ValidateEmail checks email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return FieldValidationErrors{{
			Field:   "email",
			Message: "Địa chỉ email không hợp lệ",
		}}
	}
	return nil
}

// ValidatePassword enforces the password policy
func ValidatePassword(password string) error {
	var errs FieldValidationErrors
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		errs = append(errs, FieldValidationError{
			Field:   "password",
			Message: fmt.Sprintf("Mật khẩu phải từ %d đến %d ký tự", MinPasswordLength, MaxPasswordLength),
		})
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) || !hasNumber.MatchString(password) {
		errs = append(errs, FieldValidationError{
			Field:   "password",
			Message: "Mật khẩu phải chứa chữ hoa, chữ thường và chữ số",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidateLink checks that an order link is an absolute http(s) URL
func ValidateLink(link string) error {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return FieldValidationErrors{{
			Field:   "link",
			Message: "Liên kết không hợp lệ",
		}}
	}
	return nil
}

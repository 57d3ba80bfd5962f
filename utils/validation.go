package utils

import (
	"fmt"
	"html"
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
	hasLower      = regexp.MustCompile(`[a-z]`)
	hasUpper      = regexp.MustCompile(`[A-Z]`)
	hasNumber     = regexp.MustCompile(`[0-9]`)
	hasSpecial    = regexp.MustCompile(`[@$!%*?&]`)
	htmlTagRegex  = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")
	return strings.TrimSpace(sanitized)
}

// ValidateUsername checks username rules: 3-20 chars, alphanumeric and underscore
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return FieldValidationErrors{{
			Field:   "username",
			Message: "must be 3-20 characters, letters, numbers and underscore only",
		}}
	}
	return nil
}

// ValidateEmail checks that the email has a plausible format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return FieldValidationErrors{{Field: "email", Message: "invalid email address"}}
	}
	return nil
}

// ValidatePassword enforces minimum password complexity
func ValidatePassword(password string) error {
	var errs FieldValidationErrors
	if len(password) < 8 {
		errs = append(errs, FieldValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) {
		errs = append(errs, FieldValidationError{Field: "password", Message: "must contain upper and lower case letters"})
	}
	if !hasNumber.MatchString(password) {
		errs = append(errs, FieldValidationError{Field: "password", Message: "must contain a number"})
	}
	if !hasSpecial.MatchString(password) {
		errs = append(errs, FieldValidationError{Field: "password", Message: "must contain a special character (@$!%*?&)"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

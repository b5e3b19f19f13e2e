// Package validation provides declarative per-field input validation rules.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FieldError describes a single failed rule for a named field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Rule checks one field value and returns a failure message, or "" on pass.
type Rule func(value string) string

// MinLength requires the trimmed value to be at least n characters.
func MinLength(n int) Rule {
	return func(value string) string {
		if len(strings.TrimSpace(value)) < n {
			return fmt.Sprintf("Must be at least %d characters long", n)
		}
		return ""
	}
}

// NotEmpty requires the trimmed value to be non-empty.
func NotEmpty() Rule {
	return func(value string) string {
		if strings.TrimSpace(value) == "" {
			return "Must not be empty"
		}
		return ""
	}
}

// Email requires the value to look like an email address.
func Email() Rule {
	return func(value string) string {
		if !emailRegex.MatchString(value) {
			return "Please enter a valid email address."
		}
		return ""
	}
}

// Field binds a named value to its rules.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// Run evaluates every field against its rules and collects failures.
func Run(fields ...Field) []FieldError {
	var errs []FieldError
	for _, f := range fields {
		for _, rule := range f.Rules {
			if msg := rule(f.Value); msg != "" {
				errs = append(errs, FieldError{Field: f.Name, Message: msg})
			}
		}
	}
	return errs
}

// Signup validates the signup request fields.
func Signup(email, password, name string) []FieldError {
	return Run(
		Field{Name: "email", Value: email, Rules: []Rule{Email()}},
		Field{Name: "password", Value: password, Rules: []Rule{MinLength(5)}},
		Field{Name: "name", Value: name, Rules: []Rule{NotEmpty()}},
	)
}

// Post validates the title and content fields shared by post create and update.
func Post(title, content string) []FieldError {
	return Run(
		Field{Name: "title", Value: title, Rules: []Rule{MinLength(5)}},
		Field{Name: "content", Value: content, Rules: []Rule{MinLength(5)}},
	)
}

// Status validates the user status field.
func Status(status string) []FieldError {
	return Run(
		Field{Name: "status", Value: status, Rules: []Rule{NotEmpty()}},
	)
}

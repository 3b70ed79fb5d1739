// Package validation provides input validation utilities.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	maxUsernameLen = 30
	maxPasswordLen = 128
	MaxTitleLen    = 200
	MaxContentLen  = 50000
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateUsername checks username presence, length and character set.
func ValidateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username is required")
	}
	if len(username) > maxUsernameLen {
		return fmt.Errorf("username must not exceed %d characters", maxUsernameLen)
	}
	if !usernameRe.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits, '.', '-' and '_'")
	}
	return nil
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("email is not a valid address")
	}
	return nil
}

// ValidatePassword checks password presence and length bounds.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > maxPasswordLen {
		return fmt.Errorf("password must not exceed %d characters", maxPasswordLen)
	}
	return nil
}

// ValidateTitle checks a post title and returns it with surrounding
// whitespace trimmed.
func ValidateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", fmt.Errorf("title is required")
	}
	if len(trimmed) > MaxTitleLen {
		return "", fmt.Errorf("title too long (max %d characters)", MaxTitleLen)
	}
	return trimmed, nil
}

// ValidateContent checks body text after trimming surrounding whitespace.
func ValidateContent(content string) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return fmt.Errorf("content is required")
	}
	if len(trimmed) > MaxContentLen {
		return fmt.Errorf("content too long (max %d characters)", MaxContentLen)
	}
	return nil
}

// ValidatePublicationYear enforces the permissive year policy: a year is
// acceptable in [0, currentYear+1]. The +1 allowance covers items announced
// for the upcoming year.
func ValidatePublicationYear(year int) error {
	maxYear := time.Now().Year() + 1
	if year < 0 || year > maxYear {
		return fmt.Errorf("publication_year must be between 0 and %d", maxYear)
	}
	return nil
}

//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxUsernameLen = 255

// User is a local user-directory account. The identity engine never owns
// this record; it reads and writes accounts only through the directory port.
type User struct {
	ID        string    `json:"id"         db:"id"`
	Username  string    `json:"username"   db:"username"`
	Email     string    `json:"email"      db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ValidateNewUser checks the fields required to create an account.
func ValidateNewUser(username, email string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username is required")
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return errors.New("username exceeds maximum length")
	}
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}
	return nil
}

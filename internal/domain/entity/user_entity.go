package entity

import (
	"time"
)

// User is the aggregate root for the account domain.
// Email and Password are nullable: an account created through the Twitter
// OAuth flow may have neither a password nor an email. Passwords are stored
// as bcrypt hashes, never plaintext.
//
// Email uniqueness is a business rule enforced by lookup-before-insert in the
// application layer, not by a storage constraint.
type User struct {
	ID                   string
	Email                *string
	Password             *string
	Confirmed            bool
	ForgotPasswordLocked bool
	TwitterID            *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasPassword reports whether the account can be logged into with a password.
// OAuth-only accounts carry a null password.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// EmailOrEmpty returns the email value, or "" for accounts without one.
func (u *User) EmailOrEmpty() string {
	if u.Email == nil {
		return ""
	}
	return *u.Email
}

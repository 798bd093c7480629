// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. It is the only persistent entity in
// the system: created once at sign-up, read on every login attempt and on
// every session deserialization, never updated or deleted.
type User struct {
	ID           uuid.UUID // The unique identifier for the account, immutable once assigned.
	FirstName    string    // The user's given name.
	LastName     string    // The user's family name.
	Username     string    // The login identifier, unique across all accounts.
	Email        string    // The contact email, unique across all accounts.
	PasswordHash string    // The bcrypt hash of the password. The plaintext is never stored.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this row.
}

// FullName joins the first and last name for display in views.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

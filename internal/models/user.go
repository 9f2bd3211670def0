// Package models contains the domain structures shared between the HTTP
// layer, the business services and the storage layer, plus the request
// DTOs used to validate incoming JSON.
package models

// User represents a registered account.
type User struct {
	UUID         string // Unique account identifier
	Email        string // E-mail address, used for reminder mails
	Username     string // Unique login name
	PasswordHash string // bcrypt hash of the password
	Role         string // "admin" or "user"
}

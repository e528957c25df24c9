package models

import "time"

// User is an account holder. The password hash never leaves the
// process: it is excluded from every JSON encoding.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

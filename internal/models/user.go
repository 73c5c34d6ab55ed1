package models

import "time"

// User is a registered account. ID is a Mongo ObjectID hex string or a
// PostgreSQL UUID depending on the configured store.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialize
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the JSON body for POST /register and POST /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

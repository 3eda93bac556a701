package model

// User represents an account row in the usuarios table. Users are created on
// registration and never mutated afterwards.
type User struct {
	ID         int64
	Email      string
	Name       string
	Credential string
}

// Session represents a successful authentication. The token is an opaque
// marker the UI holds for the lifetime of the program; the profile fields are
// safe for display (no credential).
type Session struct {
	Token string
	Email string
	Name  string
}

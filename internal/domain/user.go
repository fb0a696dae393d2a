package domain

import "strings"

// User is a registered account. Passwords are kept exactly as submitted.
type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// Identity returns the session identity for the user. An empty name falls
// back to the email local part.
func (u *User) Identity() Identity {
	name := u.Name
	if name == "" {
		name, _, _ = strings.Cut(u.Email, "@")
	}
	return Identity{Email: u.Email, Name: name}
}

// Identity is the signed-in user carried by a session.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultUserName derives a display name from an email's local part.
func DefaultUserName(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return "Usuario"
	}
	return local
}

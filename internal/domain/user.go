package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
// Users are immutable once created.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// Profile is the public projection of a User.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Normalize trims surrounding whitespace and lowercases s. Usernames and
// emails are stored and compared in this form.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewUser creates a User with a fresh ID from an already hashed password.
// username and email are normalized before validation.
func NewUser(username, email, hashedPassword string) (*User, error) {
	user := &User{
		ID:             uuid.New(),
		Username:       Normalize(username),
		Email:          Normalize(email),
		HashedPassword: hashedPassword,
		CreatedAt:      time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks that the User has every required field.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if u.Username == "" {
		return NewValidationError("username", "is required", nil)
	}
	if u.Email == "" {
		return NewValidationError("email", "is required", nil)
	}
	if u.HashedPassword == "" {
		return NewValidationError("password", "hash cannot be empty", nil)
	}
	return nil
}

// Profile returns the public view of the user, without the password hash.
func (u *User) Profile() *Profile {
	return &Profile{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
	}
}

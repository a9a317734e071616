package models

import "time"

// Role is the authorization role of a user.
type Role string

const (
	RoleUser      Role = "user"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
	RoleAdmin     Role = "admin"
)

// DefaultPhoto is assigned to users that did not upload a photo.
const DefaultPhoto = "default.jpg"

// User represents an account entity used for authentication and authorization.
// Credential fields are never serialized.
type User struct {
	// ID is the unique identifier of the user.
	ID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique, lower-cased login of the user.
	Email string `json:"email"`

	// Photo is the file name of the user's avatar.
	Photo string `json:"photo"`

	// Role controls access to restricted routes.
	Role Role `json:"role"`

	// Password holds the bcrypt hash of the user's password.
	Password string `json:"-"`

	// PasswordChangedAt is set every time the password is changed after signup.
	PasswordChangedAt *time.Time `json:"-"`

	// Active is false for accounts deleted by their owners.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given moment, typically the issue time of a JWT.
func (u User) ChangedPasswordAfter(t time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}

	return u.PasswordChangedAt.Truncate(time.Second).After(t)
}

// HasRole reports whether the user has one of the given roles.
func (u User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// SignupRequest is the payload of a new account registration.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Photo           string `json:"photo"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// LoginRequest carries user credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdatePasswordRequest is used by logged-in users to change their password.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

// UserUpdate is a partial user update. Nil fields are left untouched.
type UserUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Photo *string `json:"photo,omitempty"`
	Role  *Role   `json:"role,omitempty"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return u == UserUpdate{}
}

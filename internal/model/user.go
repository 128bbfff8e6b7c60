package model

import "time"

// Role determines which actions a user may perform.
// Trust and verify are restricted to journalist, politician and admin.
type Role string

const (
	RoleNormal     Role = "normal"
	RoleJournalist Role = "journalist"
	RolePolitician Role = "politician"
	RoleAdmin      Role = "admin"
)

// CanModerate reports whether the role is allowed to trust or verify posts.
func (r Role) CanModerate() bool {
	switch r {
	case RoleJournalist, RolePolitician, RoleAdmin:
		return true
	}
	return false
}

// User is the account record returned by the API.
// Server-controlled fields (id, date_joined, is_banned, identity_confirmed)
// are never sent back on update.
type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email,omitempty"`
	FirstName         string    `json:"first_name,omitempty"`
	LastName          string    `json:"last_name,omitempty"`
	Role              Role      `json:"role"`
	ProfilePicture    string    `json:"profile_picture,omitempty"`
	IdentityConfirmed bool      `json:"identity_confirmed"`
	IsActive          bool      `json:"is_active"`
	DateJoined        time.Time `json:"date_joined"`
	IsBanned          bool      `json:"is_banned"`
}

// Profile pairs a user with their free-form bio.
type Profile struct {
	User User   `json:"user"`
	Bio  string `json:"bio,omitempty"`
}

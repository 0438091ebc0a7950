package model

import "time"

// Role values stored in users.role. The column is an ENUM so the database
// rejects anything else, but handlers validate before writing.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether r is one of the accepted role values.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// User mirrors the 'users' table. PasswordHash never leaves the repository
// layer; responses use PublicUser instead.
type User struct {
	ID           uint64
	Username     string
	Email        string
	PasswordHash string
	FullName     *string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicUser is the client-facing view of a user record.
type PublicUser struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips the password hash and update timestamp from a user row.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// Package models defines server-side data models persisted in the database.
package models

// Role is the access level carried in a user's tokens.
type Role string

const (
	RoleStandard Role = "standard"
	RoleDemo     Role = "demo"
)

// User is an account record. PasswordHash holds the credential digest and is
// never serialized; use View for anything that leaves the server.
type User struct {
	ID           string `json:"-"`
	Email        string `json:"-"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"-"`
	IsDemo       bool   `json:"-"`
}

// UserView is the sanitized user representation returned to clients.
type UserView struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	IsDemo bool   `json:"isDemo"`
}

// View returns the sanitized representation of u.
func (u *User) View() UserView {
	return UserView{
		ID:     u.ID,
		Email:  u.Email,
		Role:   u.Role,
		IsDemo: u.IsDemo,
	}
}

package user

import "time"

const Collection = "users"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Verified bool      `json:"verified"`
	Role     string    `json:"role"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

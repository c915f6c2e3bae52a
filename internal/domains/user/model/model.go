package model

import (
	"atrium/shared/constant"
	"atrium/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRole      = "role"
	FieldLastLogin = "last_login"
)

type User struct {
	ID        string  `db:"id"`
	Username  string  `db:"username"`
	Password  string  `db:"password"`
	Role      string  `db:"role"`
	LastLogin *string `db:"last_login"`
	model.Metadata
}

// IsAdmin reports whether the user holds the administrator role.
func (u User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin
}

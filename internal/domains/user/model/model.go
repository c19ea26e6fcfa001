package model

import (
	"kost/shared/model"
	"time"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldLevel      = "level"
	FieldFullName   = "full_name"
	FieldPhone      = "phone"
	FieldIsVerified = "is_verified"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"
)

// User is a tenant or an administrator of the boarding house.
type User struct {
	ID         string     `db:"id"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Level      string     `db:"level"`
	FullName   *string    `db:"full_name"`
	Phone      *string    `db:"phone"`
	IsVerified bool       `db:"is_verified"`
	LastLogin  *time.Time `db:"last_login"`
	Active     bool       `db:"active"`
	model.Metadata
}

// DisplayName falls back to the email when no full name is set.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}

	return u.Email
}

func (u User) PhoneNumber() string {
	if u.Phone == nil {
		return ""
	}

	return *u.Phone
}

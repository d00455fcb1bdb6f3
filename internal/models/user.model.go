package models

import (
	"time"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleStaff || r == RoleAdmin
}

// IsStaff reports whether the role carries staff-level access. Admins are a
// superset of staff everywhere in the application.
func (r Role) IsStaff() bool {
	return r == RoleStaff || r == RoleAdmin
}

// Next cycles customer -> staff -> admin -> customer, matching the admin
// users-table toggle.
func (r Role) Next() Role {
	switch r {
	case RoleCustomer:
		return RoleStaff
	case RoleStaff:
		return RoleAdmin
	default:
		return RoleCustomer
	}
}

type User struct {
	BaseUUIDModel
	FullName     string     `gorm:"type:text;not null"              json:"fullName"`
	Email        string     `gorm:"type:text;not null;uniqueIndex"  json:"email"`
	Phone        string     `gorm:"type:text"                       json:"phone"`
	PasswordHash string     `gorm:"type:text;not null"              json:"-"`
	Role         Role       `gorm:"type:text;not null;default:'customer';index" json:"role"`
	LastLoginAt  *time.Time `gorm:"type:timestamp"                  json:"lastLoginAt,omitempty"`
}

// UserProfile is the public projection of a User.
type UserProfile struct {
	ID          string     `json:"id"`
	FullName    string     `json:"fullName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Role        Role       `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func (u *User) ToProfile() UserProfile {
	return UserProfile{
		ID:          u.ID.String(),
		FullName:    u.FullName,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

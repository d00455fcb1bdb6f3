package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsStaff(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		expected bool
	}{
		{"customer is not staff", RoleCustomer, false},
		{"staff is staff", RoleStaff, true},
		{"admin counts as staff", RoleAdmin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.role.IsStaff())
		})
	}
}

func TestRole_Next(t *testing.T) {
	assert.Equal(t, RoleStaff, RoleCustomer.Next())
	assert.Equal(t, RoleAdmin, RoleStaff.Next())
	assert.Equal(t, RoleCustomer, RoleAdmin.Next())
}

func TestUser_ToProfile(t *testing.T) {
	user := &User{
		FullName: "Ada Obi",
		Email:    "ada@example.com",
		Phone:    "08030000000",
		Role:     RoleCustomer,
	}

	profile := user.ToProfile()

	assert.Equal(t, "Ada Obi", profile.FullName)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, RoleCustomer, profile.Role)
}

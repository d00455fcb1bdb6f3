// Package authz holds the single authorization policy table consulted by every
// route. Pages and API handlers never hand-roll role checks.
package authz

import (
	"freshfold/internal/models"
)

// Resource names a protected surface of the application.
type Resource string

const (
	ResourceCustomerDashboard Resource = "customer.dashboard"
	ResourceCustomerRequests  Resource = "customer.requests"
	ResourceAdminDashboard    Resource = "admin.dashboard"
	ResourceAdminOrders       Resource = "admin.orders"
	ResourceAdminMessages     Resource = "admin.messages"
	ResourceAdminUsers        Resource = "admin.users"
	ResourceCategories        Resource = "categories"
)

var policy = map[Resource][]models.Role{
	ResourceCustomerDashboard: {models.RoleCustomer},
	ResourceCustomerRequests:  {models.RoleCustomer},
	ResourceAdminDashboard:    {models.RoleStaff, models.RoleAdmin},
	ResourceAdminOrders:       {models.RoleStaff, models.RoleAdmin},
	ResourceAdminMessages:     {models.RoleStaff, models.RoleAdmin},
	ResourceAdminUsers:        {models.RoleAdmin},
	ResourceCategories:        {models.RoleCustomer, models.RoleStaff, models.RoleAdmin},
}

// Allows reports whether a role may access a resource. Unknown resources are
// denied for every role.
func Allows(role models.Role, resource Resource) bool {
	for _, allowed := range policy[resource] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Home returns the landing resource for a role, used when a principal reaches
// a surface its role does not allow.
func Home(role models.Role) Resource {
	if role.IsStaff() {
		return ResourceAdminDashboard
	}
	return ResourceCustomerDashboard
}

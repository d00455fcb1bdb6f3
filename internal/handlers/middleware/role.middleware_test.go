package middleware

import (
	"encoding/json"
	"freshfold/internal/authz"
	"freshfold/internal/models"
	"net/http/httptest"
	"testing"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp(resource authz.Resource, user *models.User) *fiber.App {
	m := &Middleware{log: logger.New("middlewareTest")}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if user != nil {
			c.Locals(UserKeyFiber, user)
		}
		return c.Next()
	})
	app.Get("/guarded", m.RequireResource(resource), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	return app
}

// The policy cuts both ways: customers are kept off the admin surface and
// staff are kept off the customer order routes.
func TestRequireResourceBlocksStaffOnCustomerRoutes(t *testing.T) {
	tests := []struct {
		name   string
		role   models.Role
		status int
	}{
		{"customer allowed", models.RoleCustomer, fiber.StatusOK},
		{"staff rejected", models.RoleStaff, fiber.StatusForbidden},
		{"admin rejected", models.RoleAdmin, fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardedApp(authz.ResourceCustomerRequests, &models.User{Role: tt.role})

			resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestRequireResourceBlocksCustomerOnAdminRoutes(t *testing.T) {
	app := newGuardedApp(authz.ResourceAdminOrders, &models.User{Role: models.RoleCustomer})

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireResourceRequiresAuthentication(t *testing.T) {
	app := newGuardedApp(authz.ResourceCustomerRequests, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireResourceNamesHomeSurface(t *testing.T) {
	app := newGuardedApp(authz.ResourceCustomerRequests, &models.User{Role: models.RoleStaff})

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(authz.ResourceAdminDashboard), body["home"])
}

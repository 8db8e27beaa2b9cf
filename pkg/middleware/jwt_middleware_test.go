package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   "6f1c7d9e-0000-4000-8000-000000000001",
		"phone":     "+77001234567",
		"user_role": role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func newTestApp(roles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{JWTProtected()}
	if len(roles) > 0 {
		handlers = append(handlers, RoleRequired(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/protected", handlers...)
	return app
}

func TestJWTProtectedMissingToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedWrongSignature(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newTestApp()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "x"})
	s, _ := token.SignedString([]byte("another-secret"))

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+s)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestJWTProtectedValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newTestApp()

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "customer"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRoleRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	tests := []struct {
		name     string
		allowed  []string
		role     string
		wantCode int
	}{
		{"matching role", []string{"admin"}, "admin", fiber.StatusOK},
		{"one of several", []string{"seller", "admin"}, "seller", fiber.StatusOK},
		{"role mismatch", []string{"admin"}, "customer", fiber.StatusForbidden},
		{"case insensitive", []string{"rental_owner"}, "Rental_Owner", fiber.StatusOK},
		{"empty role claim", []string{"admin"}, "", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.allowed...)
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, tt.role))
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

package controllers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ersultanb/carlink-backend/pkg/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id":   uuid.New().String(),
		"phone":     "+77001234567",
		"user_role": role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return s
}

func newBookingTestApp() *fiber.App {
	app := fiber.New()
	routes.RegisterRentalRoutes(app)
	routes.RegisterBookingRoutes(app)
	return app
}

// Requests with malformed or mis-ordered dates must be rejected before
// anything is persisted; these paths never reach the database.
func TestCreateBookingDateValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newBookingTestApp()
	token := signToken(t, "customer")
	rentalID := uuid.New().String()

	tests := []struct {
		name string
		body string
	}{
		{"missing dates", `{}`},
		{"missing end date", `{"startDate":"2024-06-01"}`},
		{"unparseable dates", `{"startDate":"June 1st","endDate":"June 5th"}`},
		{"end before start", `{"startDate":"2024-06-05","endDate":"2024-06-01"}`},
		{"end equals start", `{"startDate":"2024-06-01","endDate":"2024-06-01"}`},
		{"end equals start with client status", `{"startDate":"2024-06-01","endDate":"2024-06-01","status":"confirmed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/rental/"+rentalID+"/book", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+token)
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCreateBookingRequiresCustomerRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newBookingTestApp()
	rentalID := uuid.New().String()

	body := `{"startDate":"2024-06-01","endDate":"2024-06-05"}`
	req := httptest.NewRequest("POST", "/rental/"+rentalID+"/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "seller"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newBookingTestApp()

	req := httptest.NewRequest("POST", "/rental/"+uuid.New().String()+"/book", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newBookingTestApp()
	token := signToken(t, "rental_owner")

	for _, status := range []string{"pending", "cancelled", ""} {
		req := httptest.NewRequest("PUT", "/bookings/"+uuid.New().String()+"/status",
			strings.NewReader(`{"status":"`+status+`"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "status=%q", status)
	}
}

func TestUpdateBookingStatusRequiresOwnerRole(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newBookingTestApp()

	req := httptest.NewRequest("PUT", "/bookings/"+uuid.New().String()+"/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "customer"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateBookingStatusInvalidID(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	app := newBookingTestApp()

	req := httptest.NewRequest("PUT", "/bookings/not-a-uuid/status",
		strings.NewReader(`{"status":"confirmed"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signToken(t, "rental_owner"))
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

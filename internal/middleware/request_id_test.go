package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"legolelo/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		id, _ := c.Locals(middleware.RequestIDLocal).(string)
		return c.SendString(id)
	})
	return app
}

func TestRequestID_Generated(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	id := resp.Header.Get(middleware.RequestIDHeader)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestID_KeepsCallerID(t *testing.T) {
	app := newApp()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "trace-42", resp.Header.Get(middleware.RequestIDHeader))
}

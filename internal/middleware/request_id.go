package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocal is the c.Locals key holding the request id.
	RequestIDLocal = "request_id"
)

// RequestID is a Fiber middleware assigning every request an id. An id sent by
// the caller is kept, otherwise a new UUID is generated.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		// Store the id in Fiber context for the access log and handlers
		c.Locals(RequestIDLocal, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}

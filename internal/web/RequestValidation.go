// This file contains the actual validator implementation for incoming http requests.
//
// Request structs declare their constraints as validate tags; this helper parses the
// request into the struct based on HTTP method and then runs the validator over it.

package web

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest validates a request using a Fiber context and a request struct.
// It parses the request differently based on HTTP method.
func ValidateRequest(c *fiber.Ctx, req interface{}) error {
	method := c.Method()

	switch method {
	case "GET", "DELETE":
		// No body expected, only query and path parameters
		if err := c.QueryParser(req); err != nil {
			return err
		}
		if err := c.ParamsParser(req); err != nil {
			return err
		}
	case "POST", "PUT", "PATCH":
		// For requests with potential body content
		if err := c.BodyParser(req); err != nil {
			return err
		}
		// Also parse query parameters for these methods if needed
		if err := c.QueryParser(req); err != nil {
			return err
		}
	default:
		// Unsupported HTTP method
	}

	return validate.Struct(req)
}

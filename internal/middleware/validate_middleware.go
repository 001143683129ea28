package middleware

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Ad-Abhishek/product-api/internal/models"
)

// ProductPayloadKey is the Locals key the validated request body is stored
// under for the downstream handler.
const ProductPayloadKey = "product_payload"

// ValidateProductBody is a Fiber middleware that checks the shape of a
// product payload before a mutating handler runs. On failure it
// short-circuits with 400; on success it stores the parsed payload in
// Locals and continues the chain. Shape only: uniqueness and any other
// business validation stay with the service and store.
func ValidateProductBody() fiber.Handler {
	validate := validator.New()

	return func(c *fiber.Ctx) error {
		var req models.ProductRequest
		if err := c.BodyParser(&req); err != nil {
			log.Printf("Error parsing product request body: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid request body",
				"error":   err.Error(),
			})
		}

		if err := validate.Struct(req); err != nil {
			validationErrors := err.(validator.ValidationErrors)
			errorMessages := make(map[string]string)
			for _, e := range validationErrors {
				errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Validation failed",
				"errors":  errorMessages,
			})
		}

		// Hand the validated payload to the next handler in the chain.
		c.Locals(ProductPayloadKey, req)
		return c.Next()
	}
}

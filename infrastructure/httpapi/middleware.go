package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coshop-lab/auth"
)

// AuthCookieName holds the customer session JWT.
const AuthCookieName = "coshop_auth"

// GuestCookieName holds the delegated guest identity. The name and payload
// are fixed by the storefront script.
const GuestCookieName = "GuestCartAccess"

// LocalCustomerID is the Locals key downstream handlers read the principal
// from.
const LocalCustomerID = "customerID"

// CurrentCustomer extracts the authenticated principal from the session
// cookie. Returns uuid.Nil when the request is anonymous or the token is
// invalid; the caller decides whether that is fatal.
func CurrentCustomer(c *fiber.Ctx) uuid.UUID {
	cookie := c.Cookies(AuthCookieName)
	if cookie == "" {
		return uuid.Nil
	}
	claims, err := auth.ValidateToken(cookie)
	if err != nil {
		return uuid.Nil
	}
	customerID, err := uuid.Parse(claims.CustomerID)
	if err != nil {
		return uuid.Nil
	}
	return customerID
}

// RequireCustomer rejects anonymous requests and stores the principal in
// Locals for the handler.
func RequireCustomer(c *fiber.Ctx) error {
	customerID := CurrentCustomer(c)
	if customerID == uuid.Nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
	}
	c.Locals(LocalCustomerID, customerID)
	return c.Next()
}

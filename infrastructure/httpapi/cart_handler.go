package httpapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coshop-lab/errors"
	"coshop-lab/services"
)

type CartHandler struct {
	cartService services.ICartService
}

func NewCartHandler(cartService services.ICartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	customerID := c.Locals(LocalCustomerID).(uuid.UUID)

	cart, err := h.cartService.GetCart(customerID)
	if err != nil {
		return c.Status(errors.MapToHTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

type addToCartRequest struct {
	Code string `json:"code" form:"code"`
}

func (h *CartHandler) AddToCart(c *fiber.Ctx) error {
	customerID := c.Locals(LocalCustomerID).(uuid.UUID)

	var req addToCartRequest
	if err := c.BodyParser(&req); err != nil || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "product code required"})
	}

	cart, err := h.cartService.AddToCart(customerID, req.Code)
	if err != nil {
		return c.Status(errors.MapToHTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

type addToFriendsCartRequest struct {
	Email string `json:"email" form:"email"`
	Code  string `json:"code" form:"code"`
}

// AddToFriendsCart is the form target of the broadcast addToCart event.
// Audience clients post here unauthenticated, the email picks the target
// customer; this is where email and product code finally get validated.
func (h *CartHandler) AddToFriendsCart(c *fiber.Ctx) error {
	var req addToFriendsCartRequest
	if err := c.BodyParser(&req); err != nil || req.Email == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email and product code required"})
	}

	cart, err := h.cartService.AddToFriendsCart(req.Email, req.Code)
	if err != nil {
		return c.Status(errors.MapToHTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(cart)
}

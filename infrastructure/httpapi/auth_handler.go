package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"coshop-lab/errors"
	"coshop-lab/services"
)

type AuthHandler struct {
	authService   services.IAuthService
	tokenDuration time.Duration
}

func NewAuthHandler(authService services.IAuthService, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	token, err := h.authService.Register(req.Email, req.DisplayName, req.Password)
	if err != nil {
		return c.Status(errors.MapToHTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	h.setSessionCookie(c, token)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": "registered"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return c.Status(errors.MapToHTTPStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	h.setSessionCookie(c, token)
	return c.JSON(fiber.Map{"status": "ok"})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token services.Token) {
	c.Cookie(&fiber.Cookie{
		Name:     AuthCookieName,
		Value:    string(token),
		Expires:  time.Now().Add(h.tokenDuration),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

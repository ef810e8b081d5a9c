package httpapi

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coshop-lab/auth"
	"coshop-lab/domain"
)

// InviteHandler implements the invite-to-cart flow: the host produces a
// shareable join link, the guest follows it and receives the GuestCartAccess
// cookie, Leave expires it. Mail dispatch stays out of scope, the invite URL
// is returned to the caller and logged.
type InviteHandler struct {
	log     *slog.Logger
	baseURL string
}

func NewInviteHandler(log *slog.Logger, baseURL string) *InviteHandler {
	return &InviteHandler{log: log, baseURL: baseURL}
}

type inviteRequest struct {
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
}

func (h *InviteHandler) Invite(c *fiber.Ctx) error {
	customerID := c.Locals(LocalCustomerID).(uuid.UUID)

	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := auth.ValidateInvite(auth.InviteRequest{Name: req.Name, Email: req.Email}); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	joinURL := fmt.Sprintf("%s/cart/join?name=%s&guestOfCustomerId=%s",
		h.baseURL, url.QueryEscape(req.Name), customerID)

	h.log.Info("Cart invite issued", "to", req.Email, "host", customerID)

	return c.JSON(fiber.Map{"inviteUrl": joinURL})
}

// Join materializes the delegated identity as the GuestCartAccess cookie
// and sends the guest back to the storefront. The cookie is the full state,
// nothing is stored server-side.
func (h *InviteHandler) Join(c *fiber.Ctx) error {
	name := c.Query("name")
	hostID, err := uuid.Parse(c.Query("guestOfCustomerId"))
	if err != nil || name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and guestOfCustomerId required"})
	}

	value, err := domain.EncodeGuestAccess(name, hostID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not encode access token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     GuestCookieName,
		Value:    value,
		Expires:  time.Now().Add(24 * time.Hour),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.Redirect("/")
}

// Leave invalidates the delegated identity by expiring the cookie.
func (h *InviteHandler) Leave(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:    GuestCookieName,
		Value:   "",
		Expires: time.Now().Add(-time.Hour),
	})
	return c.Redirect("/")
}

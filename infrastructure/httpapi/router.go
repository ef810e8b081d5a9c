package httpapi

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"coshop-lab/infrastructure/ws"
)

// SetupRoutes mounts the HTTP surface and the websocket endpoint. The
// upgrade middleware resolves the principal before the connection leaves
// HTTP land, so the hub never touches cookies itself.
func SetupRoutes(app *fiber.App, authHandler *AuthHandler, cartHandler *CartHandler,
	inviteHandler *InviteHandler, coViewingHandler *ws.CoViewingHandler) {

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)

	api.Get("/cart", RequireCustomer, cartHandler.GetCart)
	api.Post("/cart/add", RequireCustomer, cartHandler.AddToCart)
	api.Post("/cart/add-to-friends-cart", cartHandler.AddToFriendsCart)

	api.Post("/invite", RequireCustomer, inviteHandler.Invite)
	app.Get("/cart/join", inviteHandler.Join)
	app.Get("/cart/leave", inviteHandler.Leave)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if customerID := CurrentCustomer(c); customerID != uuid.Nil {
			c.Locals(ws.LocalCustomerID, customerID)
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(coViewingHandler.Handle))
}

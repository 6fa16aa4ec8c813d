package route

import (
	"wallet-service/src/internal/delivery/http"
	"wallet-service/src/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
)

type RouteConfig struct {
	App              *fiber.App
	WalletController *http.WalletController
	AdminController  *http.AdminController
	AuthMiddleware   fiber.Handler
}

func (c *RouteConfig) Setup() {
	c.App.Use(middleware.NewLogger())
	c.App.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})
	c.SetupWalletRoute()
	c.SetupAdminRoute()
}

func (c *RouteConfig) SetupWalletRoute() {
	wallet := c.App.Group("/wallet/v1", c.AuthMiddleware)
	wallet.Get("/balance", c.WalletController.GetBalance)
	wallet.Get("/balance/check", c.WalletController.CheckBalance)
	wallet.Post("/requests", c.WalletController.SubmitRequest)
}

func (c *RouteConfig) SetupAdminRoute() {
	admin := c.App.Group("/admin/v1", c.AuthMiddleware, middleware.VerifyAdmin())
	admin.Get("/requests", c.AdminController.ListRequests)
	admin.Post("/requests/:id/approve", c.AdminController.ApproveRequest)
	admin.Post("/requests/:id/reject", c.AdminController.RejectRequest)
	admin.Get("/users/:userId/ledger", c.AdminController.UserLedger)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/ahsan-alam-500/tonycustom/controllers"
	"github.com/ahsan-alam-500/tonycustom/middleware"
	"github.com/ahsan-alam-500/tonycustom/services"
)

// Controllers bundles every handler the router mounts.
type Controllers struct {
	Auth        *controllers.AuthController
	Profile     *controllers.ProfileController
	Products    *controllers.ProductController
	Categories  *controllers.CategoryController
	Orders      *controllers.OrderController
	AdminOrders *controllers.AdminOrderController
	Payments    *controllers.PaymentController
	Contacts    *controllers.ContactController
	Subscribers *controllers.SubscriberController
	PreOrders   *controllers.PreOrderController
}

// Register mounts all API routes on the engine.
func Register(r *gin.Engine, tokens *services.TokenService, c Controllers) {
	// Public routes
	r.POST("/register", c.Auth.Register)
	r.POST("/login", c.Auth.Login)
	r.POST("/forgotpass", c.Auth.ForgotPassword)
	r.POST("/verify", c.Auth.VerifyOtp)
	r.POST("/resetpass", c.Auth.ResetPassword)

	r.GET("/shop", c.Products.Index)
	r.GET("/shop/:slug", c.Products.ShowBySlug)

	r.POST("/contact", c.Contacts.Store)
	r.POST("/subscribe", c.Subscribers.Store)

	// Checkout works for guests; a bearer token attributes the order.
	r.POST("/customer-orders", middleware.OptionalAuth(tokens), c.Orders.Store)

	// Authenticated routes
	auth := r.Group("/", middleware.RequireAuth(tokens))
	{
		auth.GET("/auth/me", c.Auth.Me)
		auth.POST("/auth/refresh", c.Auth.Refresh)
		auth.POST("/auth/logout", c.Auth.Logout)

		auth.GET("/profile/:id", c.Profile.Show)
		auth.PUT("/profile/:id", c.Profile.Update)

		auth.GET("/customer-orders", c.Orders.Index)
		auth.GET("/customer-orders/:id", c.Orders.Show)

		auth.POST("/preorders", c.PreOrders.Store)
		auth.GET("/preorders", c.PreOrders.Index)
		auth.GET("/preorders/:id", c.PreOrders.Show)
		auth.DELETE("/preorders/:id", c.PreOrders.Destroy)
	}

	// Admin routes
	admin := r.Group("/", middleware.RequireAuth(tokens), middleware.RequireRole(middleware.AdminRole))
	{
		admin.GET("/products", c.Products.Index)
		admin.POST("/products", c.Products.Store)
		admin.GET("/products/:id", c.Products.Show)
		admin.PUT("/products/:id", c.Products.Update)
		admin.DELETE("/products/:id", c.Products.Destroy)

		admin.GET("/categories", c.Categories.Index)
		admin.POST("/categories", c.Categories.Store)
		admin.GET("/categories/:id", c.Categories.Show)
		admin.PUT("/categories/:id", c.Categories.Update)
		admin.DELETE("/categories/:id", c.Categories.Destroy)

		admin.GET("/orders", c.AdminOrders.Index)
		admin.GET("/orders/:id", c.AdminOrders.Show)
		admin.PUT("/orders/:id", c.AdminOrders.Update)

		admin.GET("/payments", c.Payments.Index)
		admin.POST("/payments", c.Payments.Store)
		admin.GET("/payments/:id", c.Payments.Show)
		admin.PUT("/payments/:id", c.Payments.Update)
		admin.DELETE("/payments/:id", c.Payments.Destroy)

		admin.GET("/contacts", c.Contacts.Index)
		admin.GET("/contacts/:id", c.Contacts.Show)
		admin.DELETE("/contacts/:id", c.Contacts.Destroy)

		admin.GET("/subscribers", c.Subscribers.Index)
	}
}

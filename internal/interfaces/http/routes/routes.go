// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/domain/cart"
	"github.com/your-org/storefront-api/internal/domain/checkout"
	"github.com/your-org/storefront-api/internal/domain/order"
	"github.com/your-org/storefront-api/internal/domain/payment"
	"github.com/your-org/storefront-api/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-api/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-api/internal/pkg/email"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group.
func SetupRoutes(api *gin.RouterGroup, db *gorm.DB, cfg *config.Config, logger *logrus.Logger) {
	// Checkout dependencies. The email notifier is only attached when
	// SMTP is configured; a nil notifier skips confirmations entirely.
	gateway := payment.NewClient(cfg.External.Razorpay)

	var notifier checkout.Notifier
	if mailer := email.NewService(cfg); mailer.Enabled() {
		notifier = mailer
	}

	checkoutService := checkout.NewService(
		cart.NewService(db),
		order.NewService(db),
		gateway,
		notifier,
		logger,
	)

	authHandler := handlers.NewAuthHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	orderHandler := handlers.NewOrderHandler(db, checkoutService)
	wishlistHandler := handlers.NewWishlistHandler(db)
	newsletterHandler := handlers.NewNewsletterHandler(db)
	contentHandler := handlers.NewContentHandler(db)
	userAdminHandler := handlers.NewUserAdminHandler(db, cfg)

	// Public routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	products := api.Group("/products")
	{
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
		products.GET("/:id/related", productHandler.Related)
	}

	api.GET("/carousel", contentHandler.Carousel)
	api.POST("/contact", contentHandler.SubmitContact)
	api.POST("/newsletter/subscribe", newsletterHandler.Subscribe)

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/cart", cartHandler.GetCart)
		authed.DELETE("/cart", cartHandler.ClearCart)
		authed.POST("/cart/items", cartHandler.AddToCart)
		authed.PUT("/cart/items", cartHandler.UpdateCartItem)
		authed.DELETE("/cart/items", cartHandler.RemoveCartItem)

		authed.GET("/wishlist", wishlistHandler.List)
		authed.POST("/wishlist", wishlistHandler.Add)
		authed.DELETE("/wishlist/:id", wishlistHandler.Remove)

		authed.GET("/auth/me", authHandler.Me)

		authed.POST("/products/:id/reviews", productHandler.AddReview)

		authed.POST("/orders", orderHandler.PlaceOrder)
		authed.POST("/orders/payment-intent", orderHandler.CreatePaymentIntent)
		authed.POST("/orders/verify-payment", orderHandler.VerifyPayment)
		authed.GET("/orders", orderHandler.ListOrders)
		authed.GET("/orders/:id", orderHandler.GetOrder)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.AdminMiddleware())
	{
		admin.GET("/orders", orderHandler.ListAllOrders)
		admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)

		admin.GET("/products", productHandler.List)
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		admin.GET("/reviews", productHandler.ListReviews)
		admin.DELETE("/reviews/:id", productHandler.DeleteReview)

		admin.GET("/users", userAdminHandler.List)
		admin.PUT("/users/:id/role", userAdminHandler.UpdateRole)
		admin.DELETE("/users/:id", userAdminHandler.Delete)

		admin.GET("/newsletter", newsletterHandler.List)
		admin.DELETE("/newsletter/:id", newsletterHandler.Delete)

		admin.GET("/carousel", contentHandler.AllSlides)
		admin.POST("/carousel", contentHandler.CreateSlide)
		admin.PUT("/carousel/:id", contentHandler.UpdateSlide)
		admin.DELETE("/carousel/:id", contentHandler.DeleteSlide)

		admin.GET("/contacts", contentHandler.ListContacts)
		admin.DELETE("/contacts/:id", contentHandler.DeleteContact)
	}
}

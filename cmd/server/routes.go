package main

import (
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/handlers"
	"storefront/internal/middleware"

	"github.com/gin-gonic/gin"
)

type routeDeps struct {
	jwtService  *auth.JWTService
	chatLimiter *middleware.RateLimiter

	users   *handlers.UserHandler
	orders  *handlers.OrderHandler
	cart    *handlers.CartHandler
	catalog *handlers.CatalogHandler
	reviews *handlers.ReviewHandler
	chat    *handlers.ChatHandler
}

func registerRoutes(router *gin.Engine, d routeDeps) {
	requireAuth := middleware.RequireAuth(d.jwtService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	users := router.Group("/users/api")
	{
		users.POST("/register/", d.users.Register)
		users.POST("/login/", d.users.Login)
		users.GET("/me/", requireAuth, d.users.Me)
	}

	api := router.Group("/api")
	{
		api.GET("/category/tree/", d.catalog.CategoryTree)
		api.GET("/category/:slug/products/", d.catalog.CategoryProducts)
		api.GET("/products/search/", d.catalog.Search)
		api.GET("/products/:id/", d.catalog.GetProduct)
		api.POST("/products/", requireAuth, d.catalog.CreateProduct)
		api.PUT("/products/:id/", requireAuth, d.catalog.UpdateProduct)
		api.DELETE("/products/:id/", requireAuth, d.catalog.DeleteProduct)

		orders := api.Group("/orders", requireAuth)
		orders.GET("/", d.orders.MyOrders)
		orders.POST("/checkout/", d.orders.Checkout)
		orders.GET("/vendor-items/", d.orders.VendorItems)
		orders.PATCH("/vendor-items/:id/", d.orders.UpdateItemStatus)
		orders.GET("/check/:product_id/", d.orders.CheckOrdered)

		api.GET("/my-cart/", requireAuth, d.cart.GetCart)
		cart := api.Group("/cart", requireAuth)
		cart.GET("/", d.cart.GetCart)
		cart.POST("/add/", d.cart.AddItem)
		cart.POST("/bulk-add/", d.cart.BulkAdd)
		cart.PATCH("/update/:item_id/", d.cart.UpdateItem)
		cart.DELETE("/remove/:item_id/", d.cart.RemoveItem)
		cart.DELETE("/clear/", d.cart.Clear)

		api.POST("/chat/", middleware.OptionalAuth(d.jwtService), d.chatLimiter.Middleware(), d.chat.Chat)
		api.DELETE("/chat/", middleware.OptionalAuth(d.jwtService), d.chat.Reset)
	}

	comments := router.Group("/comment/api")
	{
		comments.GET("/:product_id", d.reviews.ListComments)
		comments.GET("/rate/:product_id", d.reviews.ListRatings)
		comments.POST("/", requireAuth, d.reviews.AddComment)
		comments.POST("/rate", requireAuth, d.reviews.Rate)
	}
}

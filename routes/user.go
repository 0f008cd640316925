package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/Zeeshan2604/hotwheels-api/controllers/cart"
	userControllers "github.com/Zeeshan2604/hotwheels-api/controllers/user"
	wishlistControllers "github.com/Zeeshan2604/hotwheels-api/controllers/wishlist"
)

// SetupUserRoutes registers the authenticated user surface. The access gate
// has already verified the token and attached the caller identity by the
// time these handlers run.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	// ──────────────── User Profile ────────────────
	r.GET("/user", userControllers.GetUser(d.DB))
	r.PUT("/user", userControllers.UpdateUser(d.DB))

	// ──────────────── Shopping Cart ────────────────
	r.GET("/cart", cartControllers.GetCart(d.DB))
	r.POST("/cart", cartControllers.AddCartItem(d.DB))
	r.PUT("/cart/:product_id", cartControllers.SetCartItemQuantity(d.DB))
	r.DELETE("/cart/:product_id", cartControllers.DeleteCartItem(d.DB))
	r.DELETE("/cart", cartControllers.ClearCart(d.DB))

	// ──────────────── Wishlist ────────────────
	r.GET("/wishlist", wishlistControllers.ListWishlist(d.DB))
	r.POST("/wishlist", wishlistControllers.AddWishlistItem(d.DB))
	r.DELETE("/wishlist/:id", wishlistControllers.RemoveWishlistItem(d.DB))
}

package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Zeeshan2604/hotwheels-api/controllers/order"
)

func SetupOrderRoutes(r *gin.Engine, d Deps) {
	orders := r.Group("/orders")
	{
		// Checkout: cart intent becomes a persisted order snapshot
		orders.POST("", orderControllers.PlaceOrder(d.DB, d.Verifier, d.Hub))

		// Caller's own orders, newest first
		orders.GET("/user", orderControllers.GetMyOrders(d.DB))

		// websocket endpoint for real-time order updates (public)
		orders.GET("/ws", d.Hub.Handler)

		// Single order (owner or admin)
		orders.GET("/:id", orderControllers.GetOrderByID(d.DB))

		// Status transition (owner or admin)
		orders.PUT("/:id", orderControllers.UpdateOrderStatus(d.DB, d.Cfg.Orders, d.Hub))

		// Delete an order and its lines (owner or admin)
		orders.DELETE("/:id", orderControllers.DeleteOrder(d.DB))
	}
}

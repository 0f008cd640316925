package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/Zeeshan2604/hotwheels-api/controllers/order"
	productControllers "github.com/Zeeshan2604/hotwheels-api/controllers/product"
	"github.com/Zeeshan2604/hotwheels-api/middleware"
)

// SetupAdminRoutes registers the "/admin/*" endpoints, gated on the admin
// claim carried in the session token.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	admin := r.Group("/admin")
	admin.Use(middleware.RequireAdmin)
	{
		admin.GET("/orders", orderControllers.GetAllOrders(d.DB))
		admin.GET("/orders/export", orderControllers.ExportOrdersToExcel(d.DB))

		admin.POST("/products", productControllers.CreateProduct(d.DB))
		admin.PUT("/products/:id", productControllers.UpdateProduct(d.DB))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(d.DB))
	}
}

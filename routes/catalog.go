package routes

import (
	"github.com/gin-gonic/gin"

	productControllers "github.com/Zeeshan2604/hotwheels-api/controllers/product"
)

// SetupCatalogRoutes registers the public browse endpoints. These match the
// access gate's public-route table, so no token is required.
func SetupCatalogRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productControllers.GetProducts(d.DB))
	r.GET("/products/:id", productControllers.GetProductByID(d.DB))
	r.GET("/collections", productControllers.GetCollections(d.DB))
	r.GET("/collections/:id", productControllers.GetCollectionByID(d.DB))
}

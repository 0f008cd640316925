package productControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/models"
)

// GET /collections
func GetCollections(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var collections []models.Collection
		if err := db.Order("name asc").Find(&collections).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collections"})
			return
		}
		c.JSON(http.StatusOK, collections)
	}
}

// GET /collections/:id — the collection plus its products.
func GetCollectionByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid collection ID"})
			return
		}

		var collection models.Collection
		if err := db.First(&collection, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Collection not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve collection"})
			}
			return
		}

		var products []models.Product
		if err := db.
			Joins("JOIN product_collections pc ON pc.product_id = products.id").
			Where("pc.collection_id = ?", collection.ID).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch collection products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"collection": collection, "products": products})
	}
}

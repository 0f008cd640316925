package wishlistControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Zeeshan2604/hotwheels-api/middleware"
	"github.com/Zeeshan2604/hotwheels-api/models"
)

type AddWishlistInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Note      string `json:"note"`
}

// WishlistLine is a wishlist entry with catalog fields joined for display.
type WishlistLine struct {
	ID        uint      `json:"id"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Image     string    `json:"image"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// POST /wishlist
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, _ := middleware.CallerIdentity(c)

		var input AddWishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		var existing models.WishlistItem
		err := db.Where("user_id = ? AND product_id = ?", ident.UserID, input.ProductID).
			First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is already in the wishlist"})
			return
		}
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check wishlist"})
			return
		}

		item := models.WishlistItem{
			UserID:    ident.UserID,
			ProductID: input.ProductID,
			Note:      input.Note,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			// The unique (user, product) index catches the race the
			// pre-check above cannot.
			c.JSON(http.StatusConflict, gin.H{"error": "Product is already in the wishlist"})
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// GET /wishlist
func ListWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, _ := middleware.CallerIdentity(c)

		lines := []WishlistLine{}
		err := db.Table("wishlist_items").
			Select("wishlist_items.id, wishlist_items.product_id, products.name, products.price, products.image, wishlist_items.note, wishlist_items.created_at").
			Joins("JOIN products ON products.id = wishlist_items.product_id").
			Where("wishlist_items.user_id = ?", ident.UserID).
			Order("wishlist_items.created_at DESC").
			Scan(&lines).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist"})
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

// DELETE /wishlist/:id
//
// The entry's owner is re-checked against the caller; knowing an entry id is
// not enough to delete it. A foreign entry reads as not found so ids are not
// probeable.
func RemoveWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, _ := middleware.CallerIdentity(c)

		entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wishlist entry ID"})
			return
		}

		var item models.WishlistItem
		if err := db.First(&item, "id = ?", entryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist entry not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wishlist entry"})
			return
		}

		if item.UserID != ident.UserID && !ident.IsAdmin {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist entry not found"})
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete wishlist entry"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist entry deleted"})
	}
}

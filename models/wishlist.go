package models

import "time"

// WishlistItem is one (user, product) pair; the unique index keeps a product
// from appearing twice in the same wishlist.
type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index:idx_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"index:idx_user_product,unique" json:"product_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

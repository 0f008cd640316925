package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string       `gorm:"not null" json:"name"`
	Description string       `json:"description"`
	Price       float64      `gorm:"not null" json:"price"`
	Image       string       `json:"image"`
	Model3D     string       `gorm:"column:model_3d" json:"model_3d"` // URL to the viewer asset, served elsewhere
	Collections []Collection `gorm:"many2many:product_collections;" json:"collections"`
	Stock       int          `json:"stock"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

type Collection struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Picture      string    `json:"picture"`
	Provider     string    `json:"provider"` // "local" or "google"
	PasswordHash *string   `json:"-"`        // nil for federated-only accounts
	IsAdmin      bool      `json:"is_admin"`
	Address      Address   `gorm:"embedded" json:"address"`
	CreatedAt    time.Time `json:"created_at"`
}

// Address holds the user's shipping profile, embedded in User.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

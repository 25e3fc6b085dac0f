package models

import "time"

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	Phone        string `json:"phone"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	Role         string `gorm:"type:VARCHAR(10);default:'user'" json:"role"` // "user" or "admin"
	Favorites    []Favorite     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favorites"`
	Addresses    []UserAddress  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	SavedCards   []SavedCard    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"saved_cards"`
	Measurements *BodyProfile   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"measurements"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

type Favorite struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index:idx_fav_user_product,unique" json:"user_id"`
	ProductID uint   `gorm:"index:idx_fav_user_product,unique" json:"product_id"`
}

type UserAddress struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     string `gorm:"index" json:"user_id"`
	Title      string `json:"title"` // "Home", "Office"
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	ZipCode    string `json:"zip_code"`
	Country    string `json:"country"`
	IsDefault  bool   `json:"is_default"`
}

// SavedCard stores only the gateway token and a masked pan, never card data.
type SavedCard struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    string `gorm:"index" json:"user_id"`
	CardToken string `gorm:"not null" json:"-"`
	MaskedPan string `json:"masked_pan"` // e.g. "5400 **** **** 1234"
	Label     string `json:"label"`
}

// BodyProfile holds the optional measurement set used by made-to-measure orders.
type BodyProfile struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	UserID   string  `gorm:"uniqueIndex" json:"user_id"`
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
	Chest    float64 `json:"chest"`
	Waist    float64 `json:"waist"`
	Hips     float64 `json:"hips"`
}

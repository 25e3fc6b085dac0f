package models

import "time"

// Cart is keyed by a browser-held session id. The server stores the lines;
// concurrent writers for the same session are last-writer-wins.
type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	SessionID string     `gorm:"uniqueIndex" json:"session_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem carries a denormalized snapshot of the product at add time.
// Line identity is (ProductID, Size).
type CartItem struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	CartID             uint      `gorm:"index" json:"cart_id"`
	ProductID          uint      `json:"product_id"`
	ProductNameTR      string    `json:"product_name_tr"`
	ProductNameEN      string    `json:"product_name_en"`
	ProductImage       string    `json:"product_image"`
	ProductCategory    string    `json:"product_category"`
	UnitPrice          float64   `json:"unit_price"`
	Size               string    `json:"size"`
	Quantity           int       `json:"quantity"`
	SpecialRequests    string    `json:"special_requests"`
	GiftWrapping       bool      `json:"gift_wrapping"`
	GiftMessage        string    `json:"gift_message"`
	CustomMeasurements string    `json:"custom_measurements"` // free-form JSON from the measurement form
	AddedAt            time.Time `json:"added_at"`
}

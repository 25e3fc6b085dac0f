package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses. Forward-only except cancellation.
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderNumber   string        `gorm:"uniqueIndex;not null" json:"order_number"` // MEA<unix-millis>
	UserID        string        `gorm:"index" json:"user_id"`                     // empty for guest orders
	GuestEmail    string        `gorm:"index" json:"guest_email"`
	GuestPhone    string        `json:"guest_phone"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	Discount      float64       `json:"discount"`
	ShippingCost  float64       `json:"shipping_cost"`
	TotalAmount   float64       `json:"total_amount"` // subtotal - discount + shipping
	CouponCode    string        `json:"coupon_code"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentID     string        `json:"payment_id"`      // gateway payment reference
	ConversationID string       `gorm:"index" json:"conversation_id"`
	ShippingAddress OrderAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  OrderAddress `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
}

// OrderItem is a frozen copy of a cart line at checkout time.
type OrderItem struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	OrderID            uint    `gorm:"index" json:"order_id"`
	ProductID          uint    `json:"product_id"`
	ProductNameTR      string  `json:"product_name_tr"`
	ProductNameEN      string  `json:"product_name_en"`
	ProductImage       string  `json:"product_image"`
	UnitPrice          float64 `json:"unit_price"`
	Size               string  `json:"size"`
	Quantity           int     `json:"quantity"`
	SpecialRequests    string  `json:"special_requests"`
	GiftWrapping       bool    `json:"gift_wrapping"`
	GiftMessage        string  `json:"gift_message"`
	CustomMeasurements string  `json:"custom_measurements"`
}

type PendingOrderStatus string

const (
	PendingOrderAwaiting  PendingOrderStatus = "awaiting_payment"
	PendingOrderAbandoned PendingOrderStatus = "abandoned"
)

// PendingOrder is the server-side checkout draft, written before the
// cardholder is handed to the bank and consumed by the finalize step.
// Keyed by the gateway conversation id.
type PendingOrder struct {
	ID             uint               `gorm:"primaryKey" json:"id"`
	ConversationID string             `gorm:"uniqueIndex;not null" json:"conversation_id"`
	UserID         string             `json:"user_id"`
	GuestEmail     string             `json:"guest_email"`
	GuestPhone     string             `json:"guest_phone"`
	ItemsJSON      string             `gorm:"type:text" json:"-"` // serialized []OrderItem
	Subtotal       float64            `json:"subtotal"`
	Discount       float64            `json:"discount"`
	ShippingCost   float64            `json:"shipping_cost"`
	TotalAmount    float64            `json:"total_amount"`
	CouponCode     string             `json:"coupon_code"`
	ShippingAddress OrderAddress      `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  OrderAddress      `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	Status         PendingOrderStatus `gorm:"type:VARCHAR(20);default:'awaiting_payment'" json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

package models

import "time"

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

type Coupon struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Code        string       `gorm:"uniqueIndex;not null" json:"code"`
	Type        DiscountType `gorm:"type:VARCHAR(12);not null" json:"type"`
	Value       float64      `gorm:"not null" json:"value"` // percent or fixed TRY amount
	MinPurchase float64      `json:"min_purchase"`          // 0 = no threshold
	ExpiresAt   *time.Time   `json:"expires_at"`            // nil = never expires
	UsageCount  int          `json:"usage_count"`
	UsageLimit  int          `json:"usage_limit"` // 0 = unlimited
	UserID      string       `gorm:"index" json:"user_id"` // non-empty binds the coupon to one user
	Active      bool         `gorm:"default:true" json:"active"`
	CreatedAt   time.Time    `json:"created_at"`
}

// UserCoupon links a coupon granted to a specific user's account.
type UserCoupon struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	UserID   string     `gorm:"index" json:"user_id"`
	CouponID uint       `json:"coupon_id"`
	Coupon   Coupon     `gorm:"foreignKey:CouponID" json:"coupon"`
	UsedAt   *time.Time `json:"used_at"`
}

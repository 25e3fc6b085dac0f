package couponControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/pricing"
)

var (
	ErrCouponNotFound  = errors.New("coupon not found")
	ErrCouponInactive  = errors.New("coupon is not active")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
	ErrCouponMinOrder  = errors.New("order total below coupon minimum")
	ErrCouponWrongUser = errors.New("coupon belongs to another user")
)

// Validate checks a coupon against a subtotal and optional user and returns
// the discount it would yield.
func Validate(db *gorm.DB, code string, subtotal float64, userID string) (*models.Coupon, float64, error) {
	var coupon models.Coupon
	err := db.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&coupon).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrCouponNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	if !coupon.Active {
		return nil, 0, ErrCouponInactive
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return nil, 0, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsageCount >= coupon.UsageLimit {
		return nil, 0, ErrCouponExhausted
	}
	if coupon.MinPurchase > 0 && subtotal < coupon.MinPurchase {
		return nil, 0, ErrCouponMinOrder
	}
	if coupon.UserID != "" && coupon.UserID != userID {
		return nil, 0, ErrCouponWrongUser
	}

	return &coupon, pricing.CouponDiscount(coupon, subtotal), nil
}

// Redeem increments a coupon's usage with a single conditional UPDATE so two
// concurrent checkouts cannot push it past its limit. Zero rows affected
// means the limit was hit (or the coupon vanished) in the meantime.
func Redeem(db *gorm.DB, code string) (bool, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	result := db.Model(&models.Coupon{}).
		Where("code = ? AND active = ? AND (usage_limit = 0 OR usage_count < usage_limit)", code, true).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ---- handlers ----

type validateInput struct {
	Code     string  `json:"code" binding:"required"`
	Subtotal float64 `json:"subtotal" binding:"required"`
	UserID   string  `json:"user_id"`
}

// POST /coupons/validate
func ValidateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in validateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		coupon, discount, err := Validate(db, in.Code, in.Subtotal, in.UserID)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code":     coupon.Code,
			"type":     coupon.Type,
			"value":    coupon.Value,
			"discount": discount,
		})
	}
}

type createCouponInput struct {
	Code        string     `json:"code" binding:"required"`
	Type        string     `json:"type" binding:"required,oneof=percentage fixed"`
	Value       float64    `json:"value" binding:"required,gt=0"`
	MinPurchase float64    `json:"min_purchase"`
	ExpiresAt   *time.Time `json:"expires_at"`
	UsageLimit  int        `json:"usage_limit"`
	UserID      string     `json:"user_id"`
}

// POST /admin/coupons
func CreateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in createCouponInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		coupon := models.Coupon{
			Code:        strings.ToUpper(strings.TrimSpace(in.Code)),
			Type:        models.DiscountType(in.Type),
			Value:       in.Value,
			MinPurchase: in.MinPurchase,
			ExpiresAt:   in.ExpiresAt,
			UsageLimit:  in.UsageLimit,
			UserID:      in.UserID,
			Active:      true,
		}
		if err := db.Create(&coupon).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create coupon"})
			return
		}
		c.JSON(http.StatusCreated, coupon)
	}
}

// GET /admin/coupons
func ListCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var coupons []models.Coupon
		if err := db.Order("created_at DESC").Find(&coupons).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, coupons)
	}
}

// PUT /admin/coupons/:id/deactivate
func DeactivateCoupon(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Model(&models.Coupon{}).Where("id = ?", c.Param("id")).Update("active", false)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate coupon"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Coupon not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Coupon deactivated"})
	}
}

package orderControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrBackwardsStatus   = errors.New("order status can only move forward")
	ErrCancelDelivered   = errors.New("delivered orders cannot be cancelled")
	ErrInvalidPayStatus  = errors.New("invalid payment status")
	ErrPaymentTransition = errors.New("invalid payment status transition")
)

// statusRank orders the forward-only lifecycle. Cancelled sits outside the
// ranking and is handled separately.
var statusRank = map[models.OrderStatus]int{
	models.OrderStatusPending:    1,
	models.OrderStatusProcessing: 2,
	models.OrderStatusShipped:    3,
	models.OrderStatusDelivered:  4,
}

func parseOrderStatus(s string) (models.OrderStatus, error) {
	status := models.OrderStatus(strings.ToLower(s))
	switch status {
	case models.OrderStatusPending, models.OrderStatusProcessing,
		models.OrderStatusShipped, models.OrderStatusDelivered, models.OrderStatusCancelled:
		return status, nil
	}
	return "", ErrInvalidStatus
}

func parsePaymentStatus(s string) (models.PaymentStatus, error) {
	status := models.PaymentStatus(strings.ToLower(s))
	switch status {
	case models.PaymentStatusPending, models.PaymentStatusPaid,
		models.PaymentStatusFailed, models.PaymentStatusRefunded:
		return status, nil
	}
	return "", ErrInvalidPayStatus
}

// ValidateTransition enforces monotonic progression with cancellation as the
// only escape hatch.
func ValidateTransition(from, to models.OrderStatus) error {
	if to == models.OrderStatusCancelled {
		if from == models.OrderStatusDelivered {
			return ErrCancelDelivered
		}
		return nil
	}
	if from == models.OrderStatusCancelled {
		return ErrBackwardsStatus
	}
	if statusRank[to] < statusRank[from] {
		return ErrBackwardsStatus
	}
	return nil
}

// ValidatePaymentTransition allows pending -> paid|failed and paid -> refunded.
func ValidatePaymentTransition(from, to models.PaymentStatus) error {
	if from == to {
		return nil
	}
	switch from {
	case models.PaymentStatusPending:
		if to == models.PaymentStatusPaid || to == models.PaymentStatusFailed {
			return nil
		}
	case models.PaymentStatusPaid:
		if to == models.PaymentStatusRefunded {
			return nil
		}
	case models.PaymentStatusFailed:
		if to == models.PaymentStatusPaid {
			return nil
		}
	}
	return ErrPaymentTransition
}

// GetOrderByNumber is the guest tracking lookup: exact order number plus a
// contact that must match the guest email, or failing that the guest phone.
// A miss is (nil, nil), not an error.
func GetOrderByNumber(db *gorm.DB, orderNumber, contact string) (*models.Order, error) {
	var order models.Order
	err := db.Preload("Items").
		Where("order_number = ? AND guest_email = ?", orderNumber, contact).
		First(&order).Error
	if err == nil {
		return &order, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	err = db.Preload("Items").
		Where("order_number = ? AND guest_phone = ?", orderNumber, contact).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ---- handlers ----

// GET /orders/track?order_number=MEA...&contact=a@b.com
func TrackOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Query("order_number")
		contact := c.Query("contact")
		if orderNumber == "" || contact == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order_number and contact are required"})
			return
		}
		order, err := GetOrderByNumber(db, orderNumber, contact)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up order"})
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		q := db.Preload("Items").Order("created_at DESC")
		if status := c.Query("status"); status != "" {
			q = q.Where("status = ?", status)
		}
		if err := q.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /user/orders
func GetUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var orders []models.Order
		if err := db.Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /admin/orders/:orderID — by numeric id or order number
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? OR order_number = ?", id, id).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := parseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if err := ValidateTransition(order.Status, newStatus); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated"})
	}
}

type updatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// PUT /admin/orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := parsePaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("orderID")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		if err := ValidatePaymentTransition(order.PaymentStatus, newStatus); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}

		if err := db.Model(&order).Update("payment_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated"})
	}
}

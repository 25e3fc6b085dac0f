package cartControllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/pricing"
)

type AddItemInput struct {
	ProductID          uint   `json:"product_id" binding:"required"`
	Size               string `json:"size" binding:"required"`
	Quantity           int    `json:"quantity"`
	SpecialRequests    string `json:"special_requests"`
	GiftWrapping       bool   `json:"gift_wrapping"`
	GiftMessage        string `json:"gift_message"`
	CustomMeasurements string `json:"custom_measurements"`
}

type UpdateQuantityInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// getOrCreateCart loads the session's cart, creating it on first use.
func getOrCreateCart(db *gorm.DB, sessionID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Where("session_id = ?", sessionID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{SessionID: sessionID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart merges into an existing line on the same (product, size) by
// summing quantities, otherwise appends a new line with a product snapshot.
func AddToCart(db *gorm.DB, sessionID string, product models.Product, in AddItemInput) (*models.CartItem, error) {
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	cart, err := getOrCreateCart(db, sessionID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.CartID, product.ID, in.Size).
		First(&item).Error
	if err == nil {
		item.Quantity += in.Quantity
		item.AddedAt = time.Now()
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}
	item = models.CartItem{
		CartID:             cart.CartID,
		ProductID:          product.ID,
		ProductNameTR:      product.NameTR,
		ProductNameEN:      product.NameEN,
		ProductImage:       image,
		ProductCategory:    product.Category,
		UnitPrice:          product.Price,
		Size:               in.Size,
		Quantity:           in.Quantity,
		SpecialRequests:    in.SpecialRequests,
		GiftWrapping:       in.GiftWrapping,
		GiftMessage:        in.GiftMessage,
		CustomMeasurements: in.CustomMeasurements,
		AddedAt:            time.Now(),
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveFromCart deletes the line matching (product, size). Reports whether
// a line was actually removed.
func RemoveFromCart(db *gorm.DB, sessionID string, productID uint, size string) (bool, error) {
	var cart models.Cart
	if err := db.Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	result := db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.CartID, productID, size).
		Delete(&models.CartItem{})
	return result.RowsAffected > 0, result.Error
}

// UpdateQuantity sets the quantity of a line; zero or negative behaves as remove.
func UpdateQuantity(db *gorm.DB, sessionID string, in UpdateQuantityInput) error {
	if in.Quantity <= 0 {
		_, err := RemoveFromCart(db, sessionID, in.ProductID, in.Size)
		return err
	}

	var cart models.Cart
	if err := db.Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		return err
	}
	var item models.CartItem
	if err := db.Where("cart_id = ? AND product_id = ? AND size = ?", cart.CartID, in.ProductID, in.Size).
		First(&item).Error; err != nil {
		return err
	}
	item.Quantity = in.Quantity
	item.AddedAt = time.Now()
	return db.Save(&item).Error
}

// ClearCart removes every line of the session's cart.
func ClearCart(db *gorm.DB, sessionID string) error {
	var cart models.Cart
	if err := db.Where("session_id = ?", sessionID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
}

// ---- handlers ----

// GET /cart/:session_id
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := getOrCreateCart(db, c.Param("session_id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"cart":  cart,
			"total": pricing.Subtotal(cart.Items),
			"count": pricing.ItemCount(cart.Items),
		})
	}
}

// POST /cart/:session_id/items
func AddItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in AddItemInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var product models.Product
		if err := db.Preload("Images").First(&product, "id = ?", in.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		item, err := AddToCart(db, c.Param("session_id"), product, in)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /cart/:session_id/items
func UpdateItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in UpdateQuantityInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if err := UpdateQuantity(db, c.Param("session_id"), in); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
	}
}

// DELETE /cart/:session_id/items/:product_id?size=M
func DeleteItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		removed, err := RemoveFromCart(db, c.Param("session_id"), uint(productID), c.Query("size"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart/:session_id
func Clear(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ClearCart(db, c.Param("session_id")); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

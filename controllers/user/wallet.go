package userControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

type savedCardInput struct {
	CardToken string `json:"card_token" binding:"required"`
	MaskedPan string `json:"masked_pan" binding:"required"`
	Label     string `json:"label"`
}

// SaveCard stores a gateway card token for one-click checkout. Only the
// token and a masked pan ever touch this database.
func SaveCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var in savedCardInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !strings.Contains(in.MaskedPan, "*") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "masked_pan must be masked"})
			return
		}
		card := models.SavedCard{
			UserID:    userID,
			CardToken: in.CardToken,
			MaskedPan: in.MaskedPan,
			Label:     in.Label,
		}
		if err := db.Create(&card).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save card"})
			return
		}
		c.JSON(http.StatusCreated, card)
	}
}

func ListSavedCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var cards []models.SavedCard
		if err := db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cards"})
			return
		}
		c.JSON(http.StatusOK, cards)
	}
}

func DeleteSavedCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result := db.Where("user_id = ?", userID).
			Delete(&models.SavedCard{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Card deleted"})
	}
}

// ListMyCoupons returns the coupons granted to the signed-in user's account,
// including ones already used so the history stays visible.
func ListMyCoupons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var grants []models.UserCoupon
		if err := db.Preload("Coupon").Where("user_id = ?", userID).Find(&grants).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch coupons"})
			return
		}
		c.JSON(http.StatusOK, grants)
	}
}

package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/middleware"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

func currentUserID(c *gin.Context) (string, bool) {
	p, ok := middleware.Principal(c)
	if !ok || p.ID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return "", false
	}
	return p.ID, true
}

// GetProfile returns the signed-in user with favorites, addresses and
// measurements preloaded.
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var user models.User
		err := db.Preload("Favorites").Preload("Addresses").Preload("SavedCards").
			Preload("Measurements").First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

type profileInput struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Picture string `json:"picture"`
}

// UpdateProfile edits name, phone and picture. Email and role are not
// client-editable.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var in profileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result := db.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"name":    in.Name,
				"phone":   in.Phone,
				"picture": in.Picture,
			})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
	}
}

// ---- favorites ----

// AddFavorite is idempotent: favoriting the same product twice is a no-op.
func AddFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var product models.Product
		if err := db.First(&product, uint(productID)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		fav := models.Favorite{UserID: userID, ProductID: uint(productID)}
		var existing models.Favorite
		err = db.Where("user_id = ? AND product_id = ?", userID, uint(productID)).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusOK, existing)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}
		if err := db.Create(&fav).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add favorite"})
			return
		}
		c.JSON(http.StatusCreated, fav)
	}
}

func RemoveFavorite(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		result := db.Where("user_id = ? AND product_id = ?", userID, uint(productID)).
			Delete(&models.Favorite{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favorite not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Favorite removed"})
	}
}

// ListFavorites resolves favorites to full product records.
func ListFavorites(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var favorites []models.Favorite
		if err := db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
			return
		}
		productIDs := make([]uint, 0, len(favorites))
		for _, f := range favorites {
			productIDs = append(productIDs, f.ProductID)
		}
		var products []models.Product
		if len(productIDs) > 0 {
			if err := db.Preload("Images").Preload("Sizes").
				Where("id IN ?", productIDs).Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch favorites"})
				return
			}
		}
		c.JSON(http.StatusOK, products)
	}
}

// ---- addresses ----

type addressInput struct {
	Title     string `json:"title"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	ZipCode   string `json:"zip_code"`
	Country   string `json:"country"`
	IsDefault bool   `json:"is_default"`
}

func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var in addressInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		addr := models.UserAddress{
			UserID:    userID,
			Title:     in.Title,
			FirstName: in.FirstName,
			LastName:  in.LastName,
			Address:   in.Address,
			City:      in.City,
			ZipCode:   in.ZipCode,
			Country:   in.Country,
			IsDefault: in.IsDefault,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if in.IsDefault {
				// only one default address per user
				if err := tx.Model(&models.UserAddress{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&addr).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, addr)
	}
}

func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		result := db.Where("user_id = ?", userID).
			Delete(&models.UserAddress{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}

// ---- body profile ----

type bodyProfileInput struct {
	HeightCM float64 `json:"height_cm"`
	WeightKG float64 `json:"weight_kg"`
	Chest    float64 `json:"chest"`
	Waist    float64 `json:"waist"`
	Hips     float64 `json:"hips"`
}

// UpsertBodyProfile creates or replaces the single measurement set per user.
func UpsertBodyProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var in bodyProfileInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		profile := models.BodyProfile{
			UserID:   userID,
			HeightCM: in.HeightCM,
			WeightKG: in.WeightKG,
			Chest:    in.Chest,
			Waist:    in.Waist,
			Hips:     in.Hips,
		}
		var existing models.BodyProfile
		err := db.Where("user_id = ?", userID).First(&existing).Error
		switch {
		case err == nil:
			profile.ID = existing.ID
			err = db.Save(&profile).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			err = db.Create(&profile).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save measurements"})
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

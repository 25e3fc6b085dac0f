package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/auth"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

type exchangeInput struct {
	ID      string `json:"id"`
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Picture string `json:"picture"`
}

// ExchangeIdentity trades an identity already verified by the storefront's
// auth frontend for an API session token. The route is protected by the
// shared exchange key, so the identity payload is trusted as-is: the user is
// upserted by email and a session issued for them.
func ExchangeIdentity(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in exchangeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		user := models.User{
			ID:      in.ID,
			Email:   in.Email,
			Name:    in.Name,
			Phone:   in.Phone,
			Picture: in.Picture,
		}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "picture", "updated_at"}),
		}).Create(&user).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upsert user"})
			return
		}

		// re-read so the principal carries the stored ID and role
		var stored models.User
		if err := db.Where("email = ?", in.Email).First(&stored).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}

		token, err := auth.IssueToken(auth.PrincipalForUser(stored))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": stored})
	}
}

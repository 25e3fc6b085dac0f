package adminControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/auth"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/middleware"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// LoginHandler signs an admin in against the static credential list and
// returns a session token.
func LoginHandler(provider auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var creds auth.Credentials
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		principal, err := provider.Authenticate(c.Request.Context(), creds)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		token, err := auth.IssueToken(principal)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		log.Info().Str("admin", principal.Name).Str("provider", principal.Provider).Msg("admin login")
		c.JSON(http.StatusOK, gin.H{"token": token, "principal": principal})
	}
}

// ElevateHandler upgrades the session of a signed-in storefront user whose
// account carries the admin role. The identity was already verified when the
// session was issued; this only re-checks the role in the user store.
func ElevateHandler(db *gorm.DB) gin.HandlerFunc {
	provider := &auth.DBRoleProvider{DB: db}
	return func(c *gin.Context) {
		p, ok := middleware.Principal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
			return
		}

		elevated, err := provider.Authenticate(c.Request.Context(), auth.Credentials{Username: p.Email})
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Elevation failed"})
			return
		}

		token, err := auth.IssueToken(elevated)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "principal": elevated})
	}
}

// ListUsersHandler returns every registered user for the back-office.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.Order("created_at DESC").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

type setRoleInput struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// SetUserRoleHandler grants or revokes the admin role on a user account.
func SetUserRoleHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in setRoleInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result := db.Model(&models.User{}).Where("id = ?", c.Param("id")).
			Update("role", in.Role)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
	}
}

// DashboardHandler aggregates the counters shown on the back-office landing
// screen.
func DashboardHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			orderCount     int64
			pendingOrders  int64
			productCount   int64
			userCount      int64
			pendingComment int64
		)
		db.Model(&models.Order{}).Count(&orderCount)
		db.Model(&models.Order{}).Where("status = ?", models.OrderStatusProcessing).Count(&pendingOrders)
		db.Model(&models.Product{}).Count(&productCount)
		db.Model(&models.User{}).Count(&userCount)
		db.Model(&models.BlogComment{}).Where("status = ?", models.CommentStatusPending).Count(&pendingComment)

		c.JSON(http.StatusOK, gin.H{
			"orders":           orderCount,
			"orders_open":      pendingOrders,
			"products":         productCount,
			"users":            userCount,
			"comments_pending": pendingComment,
		})
	}
}

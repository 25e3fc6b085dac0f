package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/gateway"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// SetupRoutes is the single entry point that wires every route group.
// notifyOrder is called once per finalized order (websocket push + email).
func SetupRoutes(r *gin.Engine, db *gorm.DB, gw *gateway.Client, notifyOrder func(models.Order)) {
	SetupPublicRoutes(r, db)
	SetupAuthRoutes(r, db)
	SetupCartRoutes(r, db)
	SetupCheckoutRoutes(r, db, gw, notifyOrder)
	SetupOrderRoutes(r, db)
	SetupBlogRoutes(r, db)
	SetupAdminRoutes(r, db)
}

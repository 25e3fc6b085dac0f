package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/cart"
)

// SetupCartRoutes wires the server-side cart, keyed by session id so guests
// and signed-in users share the same surface.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/api/cart/:session_id")
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/items", cartControllers.AddItem(db))
		cart.PUT("/items", cartControllers.UpdateItem(db))
		cart.DELETE("/items/:product_id", cartControllers.DeleteItem(db))
		cart.DELETE("", cartControllers.Clear(db))
	}
}

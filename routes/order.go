package routes

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	orderControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/order"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/middleware"
)

// SetupOrderRoutes wires guest order tracking and the signed-in order
// history. Tracking is rate limited because it is enumerable by design
// (order number + contact).
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	api.GET("/orders/track",
		middleware.RateLimitPerIP(rate.Limit(0.5), 5),
		orderControllers.TrackOrderHandler(db))

	api.GET("/orders/mine",
		middleware.RequireSession,
		orderControllers.GetUserOrdersHandler(db))
}

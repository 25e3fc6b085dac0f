package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	checkoutControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/checkout"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/gateway"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// SetupCheckoutRoutes wires the 3-D Secure payment saga. The callback accepts
// both GET and POST because banks differ in how they return the shopper.
func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, gw *gateway.Client, notifyOrder func(models.Order)) {
	ct := &checkoutControllers.Controller{DB: db, Gateway: gw, NotifyOrder: notifyOrder}

	checkout := r.Group("/api/checkout")
	{
		checkout.POST("/initiate", ct.Initiate)
		checkout.GET("/callback", ct.Callback)
		checkout.POST("/callback", ct.Callback)
		checkout.POST("/finalize", ct.Finalize)
	}
}

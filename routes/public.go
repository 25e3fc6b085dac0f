package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	couponControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/coupon"
	productControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/product"
	sitemapControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/sitemap"
	tryonControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/tryon"
)

// SetupPublicRoutes wires everything a guest can reach without a session.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		api.GET("/products", productControllers.GetProducts(db))
		api.GET("/products/:id", productControllers.GetProductByID(db))
		api.GET("/categories", productControllers.GetCategories(db))

		api.POST("/coupons/validate", couponControllers.ValidateHandler(db))

		api.POST("/tryon", tryonControllers.Handler())
	}

	r.GET("/sitemap.xml", sitemapControllers.Handler(db))
}

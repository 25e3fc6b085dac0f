package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/admin"
	blogControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/blog"
	couponControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/coupon"
	orderControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/order"
	productControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/product"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/middleware"
)

// SetupAdminRoutes wires the back-office. Every route requires a session
// whose principal carries the admin role, whichever provider issued it.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/api/admin", middleware.RequireSession, middleware.RequireAdmin)
	{
		admin.GET("/dashboard", adminControllers.DashboardHandler(db))

		admin.GET("/users", adminControllers.ListUsersHandler(db))
		admin.PUT("/users/:id/role", adminControllers.SetUserRoleHandler(db))

		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))
		admin.POST("/products/import", productControllers.ImportProductsFromExcel(db))
		admin.GET("/products/export", productControllers.ExportProductsToExcel(db))

		admin.POST("/categories", productControllers.CreateCategory(db))
		admin.PUT("/categories/:id", productControllers.UpdateCategory(db))
		admin.DELETE("/categories/:id", productControllers.DeleteCategory(db))

		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

		admin.POST("/coupons", couponControllers.CreateCoupon(db))
		admin.GET("/coupons", couponControllers.ListCoupons(db))
		admin.PUT("/coupons/:id/deactivate", couponControllers.DeactivateCoupon(db))

		admin.GET("/blog", blogControllers.ListAllPosts(db))
		admin.POST("/blog", blogControllers.CreatePostHandler(db))
		admin.PUT("/blog/:id", blogControllers.UpdatePostHandler(db))
		admin.DELETE("/blog/:id", blogControllers.DeletePostHandler(db))
		admin.POST("/blog/categories", blogControllers.CreateBlogCategoryHandler(db))
		admin.GET("/blog/comments", blogControllers.ListCommentsForModerationHandler(db))
		admin.PUT("/blog/comments/:id", blogControllers.ModerateCommentHandler(db))
		admin.DELETE("/blog/comments/:id", blogControllers.DeleteCommentHandler(db))
	}

	// live order feed for the back-office
	r.GET("/ws/orders", orderControllers.OrderWebSocketHandler)
}

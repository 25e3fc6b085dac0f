package routes

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	blogControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/blog"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/middleware"
)

// SetupBlogRoutes wires the public blog surface. Comment creation is rate
// limited to slow spam before it reaches the moderation queue.
func SetupBlogRoutes(r *gin.Engine, db *gorm.DB) {
	blog := r.Group("/api/blog")
	{
		blog.GET("", blogControllers.ListPublishedPosts(db))
		blog.GET("/categories", blogControllers.ListBlogCategoriesHandler(db))
		blog.GET("/:slug", blogControllers.GetPostBySlug(db))
		blog.GET("/:slug/comments", blogControllers.ListApprovedCommentsHandler(db))
		blog.POST("/:slug/comments",
			middleware.RateLimitPerIP(rate.Limit(0.2), 3),
			blogControllers.CreateCommentHandler(db))
	}
}

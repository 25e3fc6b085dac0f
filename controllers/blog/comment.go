package blogControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

type commentInput struct {
	AuthorName      string `json:"author_name" binding:"required"`
	AuthorEmail     string `json:"author_email"`
	Content         string `json:"content" binding:"required"`
	ParentCommentID *uint  `json:"parent_comment_id"`
}

// POST /blog/:slug/comments — every comment starts pending; nothing is
// public until an admin approves it.
func CreateCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var post models.BlogPost
		err := db.Where("slug = ? AND status = ?", c.Param("slug"), models.BlogStatusPublished).
			First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			return
		}

		var in commentInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if in.ParentCommentID != nil {
			// single-level threading: the parent must be a top-level comment
			var parent models.BlogComment
			if err := db.First(&parent, "id = ? AND post_id = ?", *in.ParentCommentID, post.ID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment not found"})
				return
			}
			if parent.ParentCommentID != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Replies cannot be nested further"})
				return
			}
		}

		comment := models.BlogComment{
			PostID:          post.ID,
			AuthorName:      in.AuthorName,
			AuthorEmail:     in.AuthorEmail,
			Content:         in.Content,
			ParentCommentID: in.ParentCommentID,
			Status:          models.CommentStatusPending,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
			return
		}
		c.JSON(http.StatusCreated, comment)
	}
}

// GET /blog/:slug/comments — approved comments only
func ListApprovedCommentsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var post models.BlogPost
		err := db.Where("slug = ?", c.Param("slug")).First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			return
		}

		var comments []models.BlogComment
		if err := db.Where("post_id = ? AND status = ?", post.ID, models.CommentStatusApproved).
			Order("created_at ASC").
			Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

// GET /admin/blog/comments?status=pending — the moderation queue
func ListCommentsForModerationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.DefaultQuery("status", string(models.CommentStatusPending))
		var comments []models.BlogComment
		if err := db.Where("status = ?", status).
			Order("created_at ASC").
			Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

type moderateInput struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// PUT /admin/blog/comments/:id — moderation is admin-reversible: any status
// can be re-set directly.
func ModerateCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in moderateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result := db.Model(&models.BlogComment{}).
			Where("id = ?", c.Param("id")).
			Update("status", models.CommentStatus(in.Status))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate comment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment moderated"})
	}
}

// DELETE /admin/blog/comments/:id — permanent, allowed from any state
func DeleteCommentHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.BlogComment{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
	}
}

// ---- blog categories ----

type blogCategoryInput struct {
	NameTR string `json:"name_tr" binding:"required"`
	NameEN string `json:"name_en"`
}

// POST /admin/blog/categories
func CreateBlogCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in blogCategoryInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		category := models.BlogCategory{
			NameTR: in.NameTR,
			NameEN: in.NameEN,
			Slug:   MakeSlug(in.NameTR),
		}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// GET /blog/categories
func ListBlogCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.BlogCategory
		if err := db.Order("name_tr ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

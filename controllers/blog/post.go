package blogControllers

import (
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

var ErrScheduleInPast = errors.New("scheduledFor must be in the future")

// MakeSlug derives the URL slug from the Turkish title: lowercased,
// locale-aware ASCII folding, hyphenated. Computed once at creation and
// never changed afterwards, so post URLs stay stable across edits.
func MakeSlug(title string) string {
	return slug.MakeLang(title, "tr")
}

// ReadTime estimates reading minutes at 200 words per minute.
func ReadTime(content string) int {
	words := len(strings.Fields(content))
	return int(math.Ceil(float64(words) / 200.0))
}

type postInput struct {
	TitleTR      string     `json:"title_tr" binding:"required"`
	TitleEN      string     `json:"title_en"`
	ExcerptTR    string     `json:"excerpt_tr"`
	ExcerptEN    string     `json:"excerpt_en"`
	ContentTR    string     `json:"content_tr"`
	ContentEN    string     `json:"content_en"`
	CategoryID   *uint      `json:"category_id"`
	CoverImage   string     `json:"cover_image"`
	Featured     bool       `json:"featured"`
	Publish      bool       `json:"publish"`       // publish immediately
	ScheduledFor *time.Time `json:"scheduled_for"` // or schedule for later
}

// CreatePost writes a new post as draft, published, or scheduled.
func CreatePost(db *gorm.DB, in postInput) (*models.BlogPost, error) {
	post := models.BlogPost{
		TitleTR:    in.TitleTR,
		TitleEN:    in.TitleEN,
		ExcerptTR:  in.ExcerptTR,
		ExcerptEN:  in.ExcerptEN,
		ContentTR:  in.ContentTR,
		ContentEN:  in.ContentEN,
		Slug:       MakeSlug(in.TitleTR),
		CategoryID: in.CategoryID,
		CoverImage: in.CoverImage,
		Featured:   in.Featured,
		Status:     models.BlogStatusDraft,
		ReadTime:   ReadTime(in.ContentTR),
	}

	switch {
	case in.Publish:
		now := time.Now()
		post.Status = models.BlogStatusPublished
		post.PublishedAt = &now
	case in.ScheduledFor != nil:
		if !in.ScheduledFor.After(time.Now()) {
			return nil, ErrScheduleInPast
		}
		post.Status = models.BlogStatusScheduled
		post.ScheduledFor = in.ScheduledFor
	}

	if err := db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost edits a post in place. The slug never changes; read time is
// recomputed whenever the content does.
func UpdatePost(db *gorm.DB, post *models.BlogPost, in postInput) error {
	contentChanged := post.ContentTR != in.ContentTR

	post.TitleTR = in.TitleTR
	post.TitleEN = in.TitleEN
	post.ExcerptTR = in.ExcerptTR
	post.ExcerptEN = in.ExcerptEN
	post.ContentTR = in.ContentTR
	post.ContentEN = in.ContentEN
	post.CategoryID = in.CategoryID
	post.CoverImage = in.CoverImage
	post.Featured = in.Featured
	if contentChanged {
		post.ReadTime = ReadTime(in.ContentTR)
	}

	if in.Publish && post.Status != models.BlogStatusPublished {
		now := time.Now()
		post.Status = models.BlogStatusPublished
		post.PublishedAt = &now
		post.ScheduledFor = nil
	} else if in.ScheduledFor != nil && post.Status == models.BlogStatusDraft {
		if !in.ScheduledFor.After(time.Now()) {
			return ErrScheduleInPast
		}
		post.Status = models.BlogStatusScheduled
		post.ScheduledFor = in.ScheduledFor
	}

	return db.Save(post).Error
}

// IncrementViews bumps the view counter without blocking the request.
// Duplicate counts on refresh are acceptable.
func IncrementViews(db *gorm.DB, postID uint) {
	go func() {
		if err := db.Model(&models.BlogPost{}).
			Where("id = ?", postID).
			UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
			log.Warn().Err(err).Uint("post_id", postID).Msg("view counter increment failed")
		}
	}()
}

// ---- handlers ----

// GET /blog — published posts only
func ListPublishedPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []models.BlogPost
		q := db.Where("status = ?", models.BlogStatusPublished).Order("published_at DESC")
		if c.Query("featured") == "true" {
			q = q.Where("featured = ?", true)
		}
		if category := c.Query("category_id"); category != "" {
			q = q.Where("category_id = ?", category)
		}
		if err := q.Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GET /blog/:slug — published post by slug; counts the view
func GetPostBySlug(db *gorm.DB) gin.HandlerFunc {
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
		IncrementViews(db, post.ID)
		c.JSON(http.StatusOK, post)
	}
}

// GET /admin/blog — every post, any status
func ListAllPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []models.BlogPost
		if err := db.Order("created_at DESC").Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// POST /admin/blog
func CreatePostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in postInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		post, err := CreatePost(db, in)
		if err != nil {
			if errors.Is(err, ErrScheduleInPast) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// PUT /admin/blog/:id
func UpdatePostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var post models.BlogPost
		if err := db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
			return
		}

		var in postInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := UpdatePost(db, &post, in); err != nil {
			if errors.Is(err, ErrScheduleInPast) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DELETE /admin/blog/:id — soft delete
func DeletePostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.BlogPost{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
	}
}

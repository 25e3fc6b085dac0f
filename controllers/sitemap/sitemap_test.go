package sitemapControllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

func TestSitemap(t *testing.T) {
	t.Setenv("SITE_URL", "https://example.com")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.BlogPost{}))

	require.NoError(t, db.Create(&models.Product{NameTR: "Elbise", Price: 100}).Error)
	require.NoError(t, db.Create(&models.BlogPost{
		TitleTR: "Yayında", Slug: "yayinda", Status: models.BlogStatusPublished,
	}).Error)
	require.NoError(t, db.Create(&models.BlogPost{
		TitleTR: "Taslak", Slug: "taslak", Status: models.BlogStatusDraft,
	}).Error)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	Handler(db)(c)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "<urlset")
	assert.Contains(t, body, "https://example.com/products/1")
	assert.Contains(t, body, "https://example.com/blog/yayinda")
	// drafts never leak into the sitemap
	assert.NotContains(t, body, "taslak")
}

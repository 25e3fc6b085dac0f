package sitemapControllers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	XMLNS   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

func siteURL() string {
	if v := os.Getenv("SITE_URL"); v != "" {
		return v
	}
	return "https://www.meaculpadesigns.com"
}

var staticPages = []struct {
	path       string
	changeFreq string
	priority   string
}{
	{"/", "daily", "1.0"},
	{"/collections", "daily", "0.9"},
	{"/blog", "weekly", "0.7"},
	{"/about", "monthly", "0.5"},
	{"/contact", "monthly", "0.5"},
}

// Handler renders the storefront sitemap: static pages, the live catalog and
// every published blog post.
func Handler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := siteURL()
		set := urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}

		for _, page := range staticPages {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        base + page.path,
				ChangeFreq: page.changeFreq,
				Priority:   page.priority,
			})
		}

		var products []models.Product
		if err := db.Select("id", "updated_at").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sitemap"})
			return
		}
		for _, p := range products {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        fmt.Sprintf("%s/products/%d", base, p.ID),
				LastMod:    p.UpdatedAt.Format(time.RFC3339),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}

		var posts []models.BlogPost
		if err := db.Select("slug", "updated_at").
			Where("status = ?", models.BlogStatusPublished).
			Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sitemap"})
			return
		}
		for _, p := range posts {
			set.URLs = append(set.URLs, urlEntry{
				Loc:        fmt.Sprintf("%s/blog/%s", base, p.Slug),
				LastMod:    p.UpdatedAt.Format(time.RFC3339),
				ChangeFreq: "monthly",
				Priority:   "0.6",
			})
		}

		c.Header("Content-Type", "application/xml; charset=utf-8")
		c.String(http.StatusOK, xml.Header)
		out, err := xml.MarshalIndent(set, "", "  ")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build sitemap"})
			return
		}
		_, _ = c.Writer.Write(out)
	}
}

package productControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

var (
	ErrNegativePrice = errors.New("price must be zero or positive")
	ErrNoSizes       = errors.New("at least one size is required")
)

type sizeInput struct {
	Code     string `json:"code" binding:"required"`
	InStock  bool   `json:"in_stock"`
	PreOrder bool   `json:"pre_order"`
}

type imageInput struct {
	URL      string `json:"url" binding:"required"`
	Position int    `json:"position"`
}

type productInput struct {
	NameTR        string       `json:"name_tr" binding:"required"`
	NameEN        string       `json:"name_en"`
	DescriptionTR string       `json:"description_tr"`
	DescriptionEN string       `json:"description_en"`
	StoryTR       string       `json:"story_tr"`
	StoryEN       string       `json:"story_en"`
	Price         float64      `json:"price"`
	PriceUSD      float64      `json:"price_usd"`
	PriceEUR      float64      `json:"price_eur"`
	Category      string       `json:"category"`
	SubCategory   string       `json:"sub_category"`
	ThirdCategory string       `json:"third_category"`
	Featured      bool         `json:"featured"`
	Images        []imageInput `json:"images"`
	Sizes         []sizeInput  `json:"sizes"`
}

func (in productInput) validate() error {
	if in.Price < 0 || in.PriceUSD < 0 || in.PriceEUR < 0 {
		return ErrNegativePrice
	}
	if len(in.Sizes) == 0 {
		return ErrNoSizes
	}
	return nil
}

func (in productInput) toModel() models.Product {
	p := models.Product{
		NameTR:        in.NameTR,
		NameEN:        in.NameEN,
		DescriptionTR: in.DescriptionTR,
		DescriptionEN: in.DescriptionEN,
		StoryTR:       in.StoryTR,
		StoryEN:       in.StoryEN,
		Price:         in.Price,
		PriceUSD:      in.PriceUSD,
		PriceEUR:      in.PriceEUR,
		Category:      in.Category,
		SubCategory:   in.SubCategory,
		ThirdCategory: in.ThirdCategory,
		Featured:      in.Featured,
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, models.ProductImage{URL: img.URL, Position: img.Position})
	}
	for _, s := range in.Sizes {
		p.Sizes = append(p.Sizes, models.ProductSize{Code: s.Code, InStock: s.InStock, PreOrder: s.PreOrder})
	}
	return p
}

// CreateProduct creates a product together with its images and size rows.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in productInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := in.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		product := in.toModel()
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct replaces the product and its child rows wholesale. Partial
// updates are not supported; the admin panel always sends the full record.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Images").Preload("Sizes").First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}

		var in productInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := in.validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updated := in.toModel()
		updated.ID = product.ID

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSize{}).Error; err != nil {
				return err
			}
			return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&updated).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// GetProducts lists products with search, taxonomy, price and sort filters.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		category := c.Query("category")
		subCategory := c.Query("sub_category")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		switch sortBy {
		case "created_at", "price", "name_tr", "name_en":
		default:
			sortBy = "created_at"
		}

		query := db.Model(&models.Product{}).Preload("Images").Preload("Sizes")

		if search != "" {
			like := "%" + search + "%"
			query = query.Where(
				"name_tr LIKE ? OR name_en LIKE ? OR description_tr LIKE ? OR description_en LIKE ?",
				like, like, like, like)
		}
		if category != "" {
			query = query.Where("category = ?", category)
		}
		if subCategory != "" {
			query = query.Where("sub_category = ?", subCategory)
		}
		if c.Query("featured") == "true" {
			query = query.Where("featured = ?", true)
		}
		if minPriceStr != "" {
			mp, err := strconv.ParseFloat(minPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("price >= ?", mp)
		}
		if maxPriceStr != "" {
			mp, err := strconv.ParseFloat(maxPriceStr, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("price <= ?", mp)
		}

		var products []models.Product
		if err := query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// GetProductByID fetches a single product with its images and sizes.
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		err := db.Preload("Images").Preload("Sizes").First(&product, "id = ?", c.Param("id")).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct soft deletes; the product stays resolvable for order history.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Product{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

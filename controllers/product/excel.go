package productControllers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

// ImportProductsFromExcel bulk creates or updates products from an uploaded
// sheet. Rows with an existing ID update that product; rows without create a
// new one. Sizes are a comma list of codes, all marked in stock.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			nameTR := get(1)
			nameEN := get(2)
			descTR := get(3)
			descEN := get(4)
			price, err1 := strconv.ParseFloat(get(5), 64)
			priceUSD, _ := strconv.ParseFloat(get(6), 64)
			priceEUR, _ := strconv.ParseFloat(get(7), 64)
			category := get(8)
			subCategory := get(9)
			sizesStr := get(10)
			imagesStr := get(11)

			if nameTR == "" || err1 != nil || price < 0 {
				skippedCount++
				continue
			}

			var sizes []models.ProductSize
			for _, code := range strings.Split(sizesStr, ",") {
				if code = strings.TrimSpace(code); code != "" {
					sizes = append(sizes, models.ProductSize{Code: code, InStock: true})
				}
			}
			if len(sizes) == 0 {
				skippedCount++
				continue
			}

			var images []models.ProductImage
			for pos, url := range strings.Split(imagesStr, ",") {
				if url = strings.TrimSpace(url); url != "" {
					images = append(images, models.ProductImage{URL: url, Position: pos})
				}
			}

			product := models.Product{
				NameTR:        nameTR,
				NameEN:        nameEN,
				DescriptionTR: descTR,
				DescriptionEN: descEN,
				Price:         price,
				PriceUSD:      priceUSD,
				PriceEUR:      priceEUR,
				Category:      category,
				SubCategory:   subCategory,
				Sizes:         sizes,
				Images:        images,
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.First(&existing, id).Error; err == nil {
						product.ID = existing.ID
						err := db.Transaction(func(tx *gorm.DB) error {
							if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ProductImage{}).Error; err != nil {
								return err
							}
							if err := tx.Where("product_id = ?", existing.ID).Delete(&models.ProductSize{}).Error; err != nil {
								return err
							}
							return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&product).Error
						})
						if err == nil {
							updatedCount++
						} else {
							skippedCount++
						}
						continue
					}
				}
			}

			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

// ExportProductsToExcel streams the whole catalog as an .xlsx download in the
// same column layout the importer reads.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Images").Preload("Sizes").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "NameTR", "NameEN", "DescriptionTR", "DescriptionEN",
			"Price", "PriceUSD", "PriceEUR", "Category", "SubCategory",
			"Sizes", "Images", "Featured", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.NameTR)
			row.AddCell().SetValue(p.NameEN)
			row.AddCell().SetValue(p.DescriptionTR)
			row.AddCell().SetValue(p.DescriptionEN)
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.PriceUSD)
			row.AddCell().SetValue(p.PriceEUR)
			row.AddCell().SetValue(p.Category)
			row.AddCell().SetValue(p.SubCategory)

			var sizeCodes []string
			for _, s := range p.Sizes {
				sizeCodes = append(sizeCodes, s.Code)
			}
			row.AddCell().SetValue(strings.Join(sizeCodes, ","))

			var urls []string
			for _, img := range p.Images {
				urls = append(urls, img.URL)
			}
			row.AddCell().SetValue(strings.Join(urls, ","))

			row.AddCell().SetValue(p.Featured)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "products.xlsx"))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

package productControllers

import (
	"bytes"
	"encoding/json"
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

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.ProductImage{}, &models.ProductSize{}, &models.Category{},
	))
	return db
}

func jsonRequest(t *testing.T, handler gin.HandlerFunc, method, target string, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	return w
}

func validProduct() productInput {
	return productInput{
		NameTR:   "İpek Elbise",
		NameEN:   "Silk Dress",
		Price:    2400,
		Category: "elbise",
		Sizes:    []sizeInput{{Code: "S", InStock: true}, {Code: "M", InStock: true}},
		Images:   []imageInput{{URL: "/img/ipek-elbise-1.jpg", Position: 0}},
	}
}

func TestCreateProduct(t *testing.T) {
	db := testDB(t)

	w := jsonRequest(t, CreateProduct(db), http.MethodPost, "/products", validProduct(), nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Product
	require.NoError(t, db.Preload("Sizes").Preload("Images").First(&created).Error)
	assert.Equal(t, "İpek Elbise", created.NameTR)
	assert.Len(t, created.Sizes, 2)
	assert.Len(t, created.Images, 1)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	db := testDB(t)

	in := validProduct()
	in.Price = -1
	w := jsonRequest(t, CreateProduct(db), http.MethodPost, "/products", in, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProductRequiresSizes(t *testing.T) {
	db := testDB(t)

	in := validProduct()
	in.Sizes = nil
	w := jsonRequest(t, CreateProduct(db), http.MethodPost, "/products", in, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateProductReplacesChildren(t *testing.T) {
	db := testDB(t)

	w := jsonRequest(t, CreateProduct(db), http.MethodPost, "/products", validProduct(), nil)
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Product
	require.NoError(t, db.First(&created).Error)

	in := validProduct()
	in.NameTR = "İpek Elbise Yeni"
	in.Sizes = []sizeInput{{Code: "L", InStock: true}}
	w = jsonRequest(t, UpdateProduct(db), http.MethodPut, "/products/1", in,
		gin.Params{{Key: "id", Value: "1"}})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Product
	require.NoError(t, db.Preload("Sizes").First(&updated, created.ID).Error)
	assert.Equal(t, "İpek Elbise Yeni", updated.NameTR)
	require.Len(t, updated.Sizes, 1)
	assert.Equal(t, "L", updated.Sizes[0].Code)
}

func TestGetProductsFilters(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.Create(&models.Product{NameTR: "İpek Elbise", Price: 2400, Category: "elbise", Featured: true}).Error)
	require.NoError(t, db.Create(&models.Product{NameTR: "Keten Pantolon", Price: 1200, Category: "pantolon"}).Error)

	w := jsonRequest(t, GetProducts(db), http.MethodGet, "/products?category=elbise", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "İpek Elbise", got[0].NameTR)

	w = jsonRequest(t, GetProducts(db), http.MethodGet, "/products?min_price=2000", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)

	w = jsonRequest(t, GetProducts(db), http.MethodGet, "/products?featured=true", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
}

func TestDeleteProductSoft(t *testing.T) {
	db := testDB(t)

	require.NoError(t, db.Create(&models.Product{NameTR: "Silinecek", Price: 100}).Error)

	w := jsonRequest(t, DeleteProduct(db), http.MethodDelete, "/products/1", nil,
		gin.Params{{Key: "id", Value: "1"}})
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// still present with Unscoped for order history
	db.Unscoped().Model(&models.Product{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

package checkoutControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/gateway"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.PendingOrder{},
		&models.Coupon{},
	))
	return db
}

func validRequest() InitiateRequest {
	return InitiateRequest{
		Card: CardInput{
			CardHolderName: "Ayse Yilmaz", CardNumber: "5528790000000008",
			ExpireMonth: "12", ExpireYear: "2030", CVC: "123",
		},
		Buyer: BuyerInput{
			Name: "Ayse", Surname: "Yilmaz", Email: "a@b.com", Phone: "+905551112233",
			Address: "Nisantasi", City: "Istanbul", ZipCode: "34365",
		},
		ShippingAddress: AddressInput{
			FirstName: "Ayse", LastName: "Yilmaz", Address: "Nisantasi", City: "Istanbul", ZipCode: "34365",
		},
		BillingAddress: AddressInput{
			FirstName: "Ayse", LastName: "Yilmaz", Address: "Nisantasi", City: "Istanbul", ZipCode: "34365",
		},
		BasketItems: []gateway.BasketItem{
			{ID: "1", Name: "Keten Elbise", Category: "Elbise", ItemType: "PHYSICAL", Price: 2000},
		},
		Total: 2000,
	}
}

func TestValidateInitiateEnumeratesMissingFields(t *testing.T) {
	req := validRequest()
	assert.Empty(t, ValidateInitiate(req))

	req.Buyer.Email = ""
	req.Buyer.ZipCode = ""
	req.Card.CVC = ""
	req.BasketItems = nil
	missing := ValidateInitiate(req)
	assert.ElementsMatch(t, []string{"buyer.email", "buyer.zipCode", "card.cvc", "basketItems"}, missing)

	empty := InitiateRequest{}
	missing = ValidateInitiate(empty)
	// 5 card + 7 buyer + 5 shipping + 5 billing + basketItems + total
	assert.Len(t, missing, 24)
}

func gatewayStub(t *testing.T, initStatus, authStatus string) *gateway.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/payment/3dsecure/initialize":
			json.NewEncoder(w).Encode(gateway.InitializeResponse{
				Status:             initStatus,
				ThreeDSHTMLContent: "<html>bank challenge</html>",
				ErrorCode:          "5152",
				ErrorMessage:       "Kart limiti yetersiz",
			})
		case "/payment/3dsecure/auth":
			json.NewEncoder(w).Encode(gateway.AuthResponse{
				Status:       authStatus,
				PaymentID:    "pay-1",
				ErrorMessage: "3DS dogrulamasi basarisiz",
			})
		}
	}))
	t.Cleanup(srv.Close)
	return &gateway.Client{APIKey: "k", SecretKey: "s", BaseURL: srv.URL, HTTP: srv.Client()}
}

func doJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestInitiateMissingFieldsReturns400(t *testing.T) {
	ct := &Controller{DB: testDB(t), Gateway: gatewayStub(t, "success", "success")}

	req := validRequest()
	req.Buyer.Phone = ""
	w := doJSON(t, ct.Initiate, http.MethodPost, "/checkout/initiate", req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		MissingFields []string `json:"missing_fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"buyer.phone"}, resp.MissingFields)
}

func TestInitiatePersistsDraftAndReturns3DSContent(t *testing.T) {
	db := testDB(t)
	ct := &Controller{DB: db, Gateway: gatewayStub(t, "success", "success")}

	w := doJSON(t, ct.Initiate, http.MethodPost, "/checkout/initiate", validRequest())
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		ConversationID     string `json:"conversationId"`
		ThreeDSHTMLContent string `json:"threeDSHtmlContent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "<html>bank challenge</html>", resp.ThreeDSHTMLContent)

	var pending models.PendingOrder
	require.NoError(t, db.Where("conversation_id = ?", resp.ConversationID).First(&pending).Error)
	assert.Equal(t, 2000.0, pending.Subtotal)
	assert.Equal(t, 175.0, pending.ShippingCost)
	assert.Equal(t, 2175.0, pending.TotalAmount)
	assert.Equal(t, models.PendingOrderAwaiting, pending.Status)
}

func TestInitiateGatewayFailurePassesErrorThrough(t *testing.T) {
	ct := &Controller{DB: testDB(t), Gateway: gatewayStub(t, "failure", "success")}

	w := doJSON(t, ct.Initiate, http.MethodPost, "/checkout/initiate", validRequest())
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Kart limiti yetersiz", resp.Error)
	assert.Equal(t, "5152", resp.Code)
}

func callbackForm(t *testing.T, ct *Controller, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/checkout/callback", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ct.Callback(c)
	return w
}

func TestCallbackSuccessRedirectsToSuccessURL(t *testing.T) {
	ct := &Controller{DB: testDB(t), Gateway: gatewayStub(t, "success", "success")}

	w := callbackForm(t, ct, url.Values{"paymentId": {"pay-1"}, "conversationId": {"conv-1"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "window.top.location.href")
	assert.Contains(t, body, "/checkout/success")
	assert.Contains(t, body, "paymentId=pay-1")
	assert.Contains(t, body, "conversationId=conv-1")
}

func TestCallbackFailureRedirectsToFailureURLNeverErrors(t *testing.T) {
	ct := &Controller{DB: testDB(t), Gateway: gatewayStub(t, "success", "failure")}

	w := callbackForm(t, ct, url.Values{"paymentId": {"pay-1"}, "conversationId": {"conv-1"}})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/checkout/failed")

	// missing identifiers also degrade to the failure redirect
	w = callbackForm(t, ct, url.Values{})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/checkout/failed")
}

func seedPending(t *testing.T, db *gorm.DB, conversationID, coupon string) {
	t.Helper()
	items, _ := json.Marshal([]models.OrderItem{
		{ProductID: 1, ProductNameTR: "Keten Elbise", UnitPrice: 1000, Size: "M", Quantity: 2},
	})
	require.NoError(t, db.Create(&models.PendingOrder{
		ConversationID: conversationID,
		GuestEmail:     "a@b.com",
		GuestPhone:     "+905551112233",
		ItemsJSON:      string(items),
		Subtotal:       2000,
		ShippingCost:   175,
		TotalAmount:    2175,
		CouponCode:     coupon,
		Status:         models.PendingOrderAwaiting,
	}).Error)
}

func TestFinalizeCreatesPaidProcessingOrder(t *testing.T) {
	db := testDB(t)
	ct := &Controller{DB: db, Gateway: gatewayStub(t, "success", "success")}
	seedPending(t, db, "conv-1", "")

	notified := make(chan models.Order, 1)
	ct.NotifyOrder = func(o models.Order) { notified <- o }

	w := doJSON(t, ct.Finalize, http.MethodPost, "/checkout/complete",
		finalizeInput{ConversationID: "conv-1", PaymentID: "pay-1"})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("conversation_id = ?", "conv-1").First(&order).Error)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "MEA"))
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	assert.Equal(t, "pay-1", order.PaymentID)
	assert.Equal(t, 2175.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	// draft is consumed
	var count int64
	db.Model(&models.PendingOrder{}).Where("conversation_id = ?", "conv-1").Count(&count)
	assert.Zero(t, count)

	select {
	case o := <-notified:
		assert.Equal(t, order.OrderNumber, o.OrderNumber)
	case <-time.After(time.Second):
		t.Fatal("order notification was not dispatched")
	}
}

func TestFinalizeRedeemsCoupon(t *testing.T) {
	db := testDB(t)
	ct := &Controller{DB: db, Gateway: gatewayStub(t, "success", "success")}
	require.NoError(t, db.Create(&models.Coupon{Code: "WELCOME10", Type: models.DiscountPercentage, Value: 10, Active: true, UsageLimit: 5}).Error)
	seedPending(t, db, "conv-2", "WELCOME10")

	w := doJSON(t, ct.Finalize, http.MethodPost, "/checkout/complete",
		finalizeInput{ConversationID: "conv-2", PaymentID: "pay-2"})
	require.Equal(t, http.StatusCreated, w.Code)

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "WELCOME10").First(&coupon).Error)
	assert.Equal(t, 1, coupon.UsageCount)
}

func TestFinalizeMissingDraftIsTerminal404(t *testing.T) {
	ct := &Controller{DB: testDB(t), Gateway: gatewayStub(t, "success", "success")}

	w := doJSON(t, ct.Finalize, http.MethodPost, "/checkout/complete",
		finalizeInput{ConversationID: "conv-gone", PaymentID: "pay-3"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "contact support")
}

func TestSweepAbandonedDrafts(t *testing.T) {
	db := testDB(t)
	seedPending(t, db, "conv-old", "")
	require.NoError(t, db.Model(&models.PendingOrder{}).
		Where("conversation_id = ?", "conv-old").
		Update("created_at", time.Now().Add(-3*time.Hour)).Error)
	seedPending(t, db, "conv-new", "")

	swept, err := SweepAbandonedDrafts(db, 2*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	var old models.PendingOrder
	require.NoError(t, db.Where("conversation_id = ?", "conv-old").First(&old).Error)
	assert.Equal(t, models.PendingOrderAbandoned, old.Status)

	var fresh models.PendingOrder
	require.NoError(t, db.Where("conversation_id = ?", "conv-new").First(&fresh).Error)
	assert.Equal(t, models.PendingOrderAwaiting, fresh.Status)
}

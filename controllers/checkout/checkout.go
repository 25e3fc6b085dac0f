package checkoutControllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/gateway"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/pricing"
	couponControllers "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/controllers/coupon"
)

// Controller orchestrates the three-step checkout saga: initiate (persist a
// pending order, hand the cardholder to the bank), callback (verify the
// challenge result, bounce the browser back), finalize (materialize the
// order from the server-side draft).
type Controller struct {
	DB      *gorm.DB
	Gateway *gateway.Client

	// NotifyOrder runs after an order is created. Best-effort; called in a
	// goroutine, failures must be handled inside.
	NotifyOrder func(models.Order)
}

func appURL() string {
	u := os.Getenv("APP_URL")
	if u == "" {
		u = "http://localhost:3000"
	}
	return strings.TrimRight(u, "/")
}

func successURL() string {
	if u := os.Getenv("CHECKOUT_SUCCESS_URL"); u != "" {
		return u
	}
	return appURL() + "/checkout/success"
}

func failureURL() string {
	if u := os.Getenv("CHECKOUT_FAILURE_URL"); u != "" {
		return u
	}
	return appURL() + "/checkout/failed"
}

// POST /checkout/initiate
func (ct *Controller) Initiate(c *gin.Context) {
	var req InitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if missing := ValidateInitiate(req); len(missing) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":          "missing required fields",
			"missing_fields": missing,
		})
		return
	}

	// The gateway-facing price is the basket sum; the client-displayed
	// subtotal must match it.
	price := decimal.Zero
	for _, item := range req.BasketItems {
		price = price.Add(decimal.NewFromFloat(item.Price))
	}
	subtotal, _ := price.Float64()

	var discount float64
	if req.CouponCode != "" {
		_, d, err := couponControllers.Validate(ct.DB, req.CouponCode, subtotal, req.UserID)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		discount = d
	}
	paidPrice := pricing.OrderTotal(subtotal, discount, 0)

	conversationID := uuid.NewString()

	items, err := ct.draftItems(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to snapshot cart"})
		return
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to snapshot cart"})
		return
	}

	shipping := pricing.ShippingCost(subtotal)
	pending := models.PendingOrder{
		ConversationID: conversationID,
		UserID:         req.UserID,
		GuestEmail:     req.Buyer.Email,
		GuestPhone:     req.Buyer.Phone,
		ItemsJSON:      string(itemsJSON),
		Subtotal:       subtotal,
		Discount:       discount,
		ShippingCost:   shipping,
		TotalAmount:    pricing.OrderTotal(subtotal, discount, shipping),
		CouponCode:     req.CouponCode,
		ShippingAddress: orderAddress(req.ShippingAddress),
		BillingAddress:  orderAddress(req.BillingAddress),
		Status:         models.PendingOrderAwaiting,
	}

	// The draft must exist before the bank redirect: if the browser session
	// dies mid-challenge, finalize can still reconstruct the order.
	if err := ct.DB.Create(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store checkout draft"})
		return
	}

	resp, err := ct.Gateway.Initialize3DS(gateway.InitializeRequest{
		ConversationID: conversationID,
		Price:          subtotal,
		PaidPrice:      paidPrice,
		Currency:       req.Currency,
		Installment:    req.Installment,
		PaymentCard: gateway.Card{
			CardHolderName: req.Card.CardHolderName,
			CardNumber:     req.Card.CardNumber,
			ExpireMonth:    req.Card.ExpireMonth,
			ExpireYear:     req.Card.ExpireYear,
			CVC:            req.Card.CVC,
		},
		Buyer: gateway.Buyer{
			ID:      buyerID(req),
			Name:    req.Buyer.Name,
			Surname: req.Buyer.Surname,
			Email:   req.Buyer.Email,
			Phone:   req.Buyer.Phone,
			Address: req.Buyer.Address,
			City:    req.Buyer.City,
			Country: defaultCountry(req.Buyer.Country),
			ZipCode: req.Buyer.ZipCode,
			IP:      c.ClientIP(),
		},
		ShippingAddress: gatewayAddress(req.ShippingAddress),
		BillingAddress:  gatewayAddress(req.BillingAddress),
		BasketItems:     req.BasketItems,
		CallbackURL:     appURL() + "/api/checkout/callback",
	})
	if err != nil {
		var gerr *gateway.GatewayError
		if errors.As(err, &gerr) {
			// surface the gateway's own message and code verbatim
			c.JSON(http.StatusBadGateway, gin.H{"error": gerr.Message, "code": gerr.Code})
			return
		}
		log.Error().Err(err).Str("conversation_id", conversationID).Msg("3DS initialize failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment gateway unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversationId":     conversationID,
		"threeDSHtmlContent": resp.ThreeDSHTMLContent,
	})
}

// Callback handles the bank's browser redirect. It must accept GET or form
// POST (urlencoded or multipart) and must always answer with an HTML
// redirect, never an error payload the bank page would render.
func (ct *Controller) Callback(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("panic in payment callback")
			ct.redirectHTML(c, failureURL(), url.Values{"error": {"Ödeme doğrulanamadı"}})
		}
	}()

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		_ = c.Request.ParseMultipartForm(1 << 20)
	}
	paymentID := c.Request.FormValue("paymentId")
	conversationID := c.Request.FormValue("conversationId")
	conversationData := c.Request.FormValue("conversationData")
	if conversationID == "" {
		conversationID = conversationData
	}

	if paymentID == "" || conversationID == "" {
		ct.redirectHTML(c, failureURL(), url.Values{"error": {"Eksik ödeme bilgisi"}})
		return
	}

	_, err := ct.Gateway.Auth3DS(gateway.AuthRequest{
		ConversationID:   conversationID,
		PaymentID:        paymentID,
		ConversationData: conversationData,
	})
	if err != nil {
		msg := "Ödeme doğrulanamadı"
		var gerr *gateway.GatewayError
		if errors.As(err, &gerr) && gerr.Message != "" {
			msg = gerr.Message
		}
		log.Warn().Err(err).Str("conversation_id", conversationID).Msg("3DS verification failed")
		ct.redirectHTML(c, failureURL(), url.Values{"error": {msg}})
		return
	}

	ct.redirectHTML(c, successURL(), url.Values{
		"paymentId":      {paymentID},
		"conversationId": {conversationID},
	})
}

// redirectHTML emits the top-level-window redirect the bank iframe needs.
func (ct *Controller) redirectHTML(c *gin.Context, target string, params url.Values) {
	html := fmt.Sprintf(
		`<!DOCTYPE html><html><body><script>window.top.location.href = %q;</script></body></html>`,
		target+"?"+params.Encode(),
	)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

type finalizeInput struct {
	ConversationID string `json:"conversationId" binding:"required"`
	PaymentID      string `json:"paymentId" binding:"required"`
}

// POST /checkout/complete
func (ct *Controller) Finalize(c *gin.Context) {
	var in finalizeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var pending models.PendingOrder
	err := ct.DB.Where("conversation_id = ? AND status = ?", in.ConversationID, models.PendingOrderAwaiting).
		First(&pending).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Terminal: the money has moved but the draft is gone. Log loudly
		// for manual reconciliation, there is no automatic retry.
		log.Error().
			Str("conversation_id", in.ConversationID).
			Str("payment_id", in.PaymentID).
			Msg("PAID ORDER WITHOUT DRAFT: checkout draft missing at finalize, manual reconciliation required")
		c.JSON(http.StatusNotFound, gin.H{"error": "Checkout session not found. Please contact support with your payment reference."})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load checkout draft"})
		return
	}

	var items []models.OrderItem
	if err := json.Unmarshal([]byte(pending.ItemsJSON), &items); err != nil {
		log.Error().Err(err).Str("conversation_id", in.ConversationID).Msg("corrupt checkout draft")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Checkout draft is corrupt. Please contact support."})
		return
	}

	order := models.Order{
		OrderNumber:    GenerateOrderNumber(),
		UserID:         pending.UserID,
		GuestEmail:     pending.GuestEmail,
		GuestPhone:     pending.GuestPhone,
		Items:          items,
		Subtotal:       pending.Subtotal,
		Discount:       pending.Discount,
		ShippingCost:   pending.ShippingCost,
		TotalAmount:    pending.TotalAmount,
		CouponCode:     pending.CouponCode,
		Status:         models.OrderStatusProcessing,
		PaymentStatus:  models.PaymentStatusPaid,
		PaymentID:      in.PaymentID,
		ConversationID: pending.ConversationID,
		ShippingAddress: pending.ShippingAddress,
		BillingAddress:  pending.BillingAddress,
	}

	err = ct.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if pending.CouponCode != "" {
			redeemed, err := couponControllers.Redeem(tx, pending.CouponCode)
			if err != nil {
				return err
			}
			if !redeemed {
				// Payment already succeeded; honor the order, flag the coupon.
				log.Warn().
					Str("coupon", pending.CouponCode).
					Str("order_number", order.OrderNumber).
					Msg("coupon limit exceeded at finalize, order kept")
			}
		}
		return tx.Delete(&pending).Error
	})
	if err != nil {
		log.Error().Err(err).
			Str("conversation_id", in.ConversationID).
			Str("payment_id", in.PaymentID).
			Msg("PAID ORDER NOT PERSISTED: order creation failed after gateway success, manual reconciliation required")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order could not be created. Please contact support with your payment reference."})
		return
	}

	if ct.NotifyOrder != nil {
		go ct.NotifyOrder(order)
	}

	c.JSON(http.StatusCreated, order)
}

// GenerateOrderNumber yields the customer-facing order token, e.g.
// "MEA1700000000000".
func GenerateOrderNumber() string {
	return fmt.Sprintf("MEA%d", time.Now().UnixMilli())
}

// draftItems freezes the order lines: from the server-side cart when a
// session id is given, otherwise from the gateway basket list.
func (ct *Controller) draftItems(req InitiateRequest) ([]models.OrderItem, error) {
	if req.CartSessionID != "" {
		var cart models.Cart
		err := ct.DB.Preload("Items").Where("session_id = ?", req.CartSessionID).First(&cart).Error
		if err == nil && len(cart.Items) > 0 {
			items := make([]models.OrderItem, 0, len(cart.Items))
			for _, line := range cart.Items {
				items = append(items, models.OrderItem{
					ProductID:          line.ProductID,
					ProductNameTR:      line.ProductNameTR,
					ProductNameEN:      line.ProductNameEN,
					ProductImage:       line.ProductImage,
					UnitPrice:          line.UnitPrice,
					Size:               line.Size,
					Quantity:           line.Quantity,
					SpecialRequests:    line.SpecialRequests,
					GiftWrapping:       line.GiftWrapping,
					GiftMessage:        line.GiftMessage,
					CustomMeasurements: line.CustomMeasurements,
				})
			}
			return items, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	items := make([]models.OrderItem, 0, len(req.BasketItems))
	for _, item := range req.BasketItems {
		items = append(items, models.OrderItem{
			ProductNameTR: item.Name,
			UnitPrice:     item.Price,
			Quantity:      1,
		})
	}
	return items, nil
}

func orderAddress(in AddressInput) models.OrderAddress {
	return models.OrderAddress{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		City:      in.City,
		ZipCode:   in.ZipCode,
		Country:   defaultCountry(in.Country),
	}
}

func gatewayAddress(in AddressInput) gateway.Address {
	return gateway.Address{
		ContactName: strings.TrimSpace(in.FirstName + " " + in.LastName),
		Address:     in.Address,
		City:        in.City,
		Country:     defaultCountry(in.Country),
		ZipCode:     in.ZipCode,
	}
}

func defaultCountry(country string) string {
	if country == "" {
		return "Turkey"
	}
	return country
}

func buyerID(req InitiateRequest) string {
	if req.UserID != "" {
		return req.UserID
	}
	return "guest-" + uuid.NewString()
}

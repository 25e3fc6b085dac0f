package gateway

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
)

const (
	initializePath = "/payment/3dsecure/initialize"
	authPath       = "/payment/3dsecure/auth"
)

// Client talks to the iyzico REST API. Requests are signed with
// HMAC-SHA256(secretKey, nonce + path + body), sent base64-encoded as
// "Authorization: IYZWSv2 <apiKey>:<signature>" plus an x-iyzi-rnd nonce.
type Client struct {
	APIKey    string
	SecretKey string
	BaseURL   string
	HTTP      *http.Client
}

// NewClientFromEnv builds a client from IYZICO_* environment variables.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("IYZICO_API_KEY")
	secretKey := os.Getenv("IYZICO_SECRET_KEY")
	baseURL := os.Getenv("IYZICO_BASE_URL")
	if baseURL == "" {
		baseURL = "https://sandbox-api.iyzipay.com"
	}
	if apiKey == "" || secretKey == "" {
		return nil, fmt.Errorf("iyzico configuration missing")
	}
	return &Client{
		APIKey:    apiKey,
		SecretKey: secretKey,
		BaseURL:   baseURL,
		HTTP:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// ---- request / response shapes ----

type Buyer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	Phone     string `json:"gsmNumber"`
	Address   string `json:"registrationAddress"`
	City      string `json:"city"`
	Country   string `json:"country"`
	ZipCode   string `json:"zipCode"`
	IP        string `json:"ip"`
}

type Address struct {
	ContactName string `json:"contactName"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	ZipCode     string `json:"zipCode"`
}

type BasketItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category1"`
	ItemType string  `json:"itemType"` // PHYSICAL
	Price    float64 `json:"price,string"`
}

type Card struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpireMonth    string `json:"expireMonth"`
	ExpireYear     string `json:"expireYear"`
	CVC            string `json:"cvc"`
}

type InitializeRequest struct {
	Locale          string       `json:"locale"`
	ConversationID  string       `json:"conversationId"`
	Price           float64      `json:"price,string"`
	PaidPrice       float64      `json:"paidPrice,string"`
	Currency        string       `json:"currency"`
	Installment     int          `json:"installment"`
	PaymentCard     Card         `json:"paymentCard"`
	Buyer           Buyer        `json:"buyer"`
	ShippingAddress Address      `json:"shippingAddress"`
	BillingAddress  Address      `json:"billingAddress"`
	BasketItems     []BasketItem `json:"basketItems"`
	CallbackURL     string       `json:"callbackUrl"`
}

type InitializeResponse struct {
	Status             string `json:"status"` // "success" or "failure"
	ThreeDSHTMLContent string `json:"threeDSHtmlContent"`
	PaymentID          string `json:"paymentId"`
	ConversationID     string `json:"conversationId"`
	ErrorCode          string `json:"errorCode"`
	ErrorMessage       string `json:"errorMessage"`
}

type AuthRequest struct {
	Locale           string `json:"locale"`
	ConversationID   string `json:"conversationId"`
	PaymentID        string `json:"paymentId"`
	ConversationData string `json:"conversationData,omitempty"`
}

type AuthResponse struct {
	Status         string `json:"status"`
	PaymentID      string `json:"paymentId"`
	PaymentStatus  string `json:"paymentStatus"`
	ConversationID string `json:"conversationId"`
	ErrorCode      string `json:"errorCode"`
	ErrorMessage   string `json:"errorMessage"`
}

// GatewayError carries the gateway's own code and message through to callers.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

// Sign computes the request signature: base64(HMAC-SHA256(secret, nonce+path+body)).
func Sign(secretKey, nonce, path string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(nonce))
	mac.Write([]byte(path))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (c *Client) post(path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	nonce := uuid.NewString()
	signature := Sign(c.SecretKey, nonce, path, body)

	req, err := http.NewRequest(http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("IYZWSv2 %s:%s", c.APIKey, signature))
	req.Header.Set("x-iyzi-rnd", nonce)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment gateway: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(respBody))
	}
	return json.Unmarshal(respBody, out)
}

// Initialize3DS starts a 3-D Secure transaction. On success the response
// carries the HTML payload the browser must render to reach the bank page.
func (c *Client) Initialize3DS(req InitializeRequest) (*InitializeResponse, error) {
	if req.Locale == "" {
		req.Locale = "tr"
	}
	if req.Currency == "" {
		req.Currency = "TRY"
	}
	if req.Installment == 0 {
		req.Installment = 1
	}

	var resp InitializeResponse
	if err := c.post(initializePath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, &GatewayError{Code: resp.ErrorCode, Message: resp.ErrorMessage}
	}
	if resp.ThreeDSHTMLContent == "" {
		return nil, &GatewayError{Message: "gateway returned empty 3DS content"}
	}
	return &resp, nil
}

// Auth3DS verifies a 3-D Secure challenge result after the bank redirect.
func (c *Client) Auth3DS(req AuthRequest) (*AuthResponse, error) {
	if req.Locale == "" {
		req.Locale = "tr"
	}

	var resp AuthResponse
	if err := c.post(authPath, req, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "success" {
		return nil, &GatewayError{Code: resp.ErrorCode, Message: resp.ErrorMessage}
	}
	return &resp, nil
}

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignKnownAnswer(t *testing.T) {
	body := []byte(`{"conversationId":"abc"}`)
	got := Sign("secret", "nonce-1", "/payment/3dsecure/initialize", body)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("nonce-1" + "/payment/3dsecure/initialize"))
	mac.Write(body)
	want := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, got)
}

func TestInitialize3DSSignsAndParses(t *testing.T) {
	var gotAuth, gotNonce string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotNonce = r.Header.Get("x-iyzi-rnd")
		assert.Equal(t, "/payment/3dsecure/initialize", r.URL.Path)
		json.NewEncoder(w).Encode(InitializeResponse{
			Status:             "success",
			ThreeDSHTMLContent: "<html>bank</html>",
			ConversationID:     "conv-1",
		})
	}))
	defer srv.Close()

	c := &Client{APIKey: "api", SecretKey: "secret", BaseURL: srv.URL, HTTP: srv.Client()}
	resp, err := c.Initialize3DS(InitializeRequest{ConversationID: "conv-1", Price: 2000, PaidPrice: 2000})
	require.NoError(t, err)
	assert.Equal(t, "<html>bank</html>", resp.ThreeDSHTMLContent)
	assert.NotEmpty(t, gotNonce)
	assert.Contains(t, gotAuth, fmt.Sprintf("IYZWSv2 %s:", "api"))
}

func TestInitialize3DSFailurePassesGatewayErrorThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(InitializeResponse{
			Status:       "failure",
			ErrorCode:    "5152",
			ErrorMessage: "Kart limiti yetersiz",
		})
	}))
	defer srv.Close()

	c := &Client{APIKey: "api", SecretKey: "secret", BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := c.Initialize3DS(InitializeRequest{ConversationID: "conv-1"})
	require.Error(t, err)

	var gerr *GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "5152", gerr.Code)
	assert.Equal(t, "Kart limiti yetersiz", gerr.Message)
}

func TestAuth3DSSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/3dsecure/auth", r.URL.Path)
		json.NewEncoder(w).Encode(AuthResponse{Status: "success", PaymentID: "pay-9", PaymentStatus: "SUCCESS"})
	}))
	defer srv.Close()

	c := &Client{APIKey: "api", SecretKey: "secret", BaseURL: srv.URL, HTTP: srv.Client()}
	resp, err := c.Auth3DS(AuthRequest{ConversationID: "conv-1", PaymentID: "pay-9"})
	require.NoError(t, err)
	assert.Equal(t, "pay-9", resp.PaymentID)
}

package checkoutControllers

import "github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/gateway"

type CardInput struct {
	CardHolderName string `json:"cardHolderName"`
	CardNumber     string `json:"cardNumber"`
	ExpireMonth    string `json:"expireMonth"`
	ExpireYear     string `json:"expireYear"`
	CVC            string `json:"cvc"`
}

type BuyerInput struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type AddressInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

type InitiateRequest struct {
	Card            CardInput            `json:"card"`
	Buyer           BuyerInput           `json:"buyer"`
	ShippingAddress AddressInput         `json:"shippingAddress"`
	BillingAddress  AddressInput         `json:"billingAddress"`
	BasketItems     []gateway.BasketItem `json:"basketItems"`
	Total           float64              `json:"total"`
	CouponCode      string               `json:"couponCode"`
	CartSessionID   string               `json:"cartSessionId"`
	UserID          string               `json:"userId"`
	Currency        string               `json:"currency"`
	Installment     int                  `json:"installment"`
}

// ValidateInitiate returns the exact list of required fields absent from the
// request. An empty list means the request may proceed.
func ValidateInitiate(req InitiateRequest) []string {
	var missing []string

	check := func(value, name string) {
		if value == "" {
			missing = append(missing, name)
		}
	}

	check(req.Card.CardHolderName, "card.cardHolderName")
	check(req.Card.CardNumber, "card.cardNumber")
	check(req.Card.ExpireMonth, "card.expireMonth")
	check(req.Card.ExpireYear, "card.expireYear")
	check(req.Card.CVC, "card.cvc")

	check(req.Buyer.Name, "buyer.name")
	check(req.Buyer.Surname, "buyer.surname")
	check(req.Buyer.Email, "buyer.email")
	check(req.Buyer.Phone, "buyer.phone")
	check(req.Buyer.Address, "buyer.address")
	check(req.Buyer.City, "buyer.city")
	check(req.Buyer.ZipCode, "buyer.zipCode")

	check(req.ShippingAddress.FirstName, "shippingAddress.firstName")
	check(req.ShippingAddress.LastName, "shippingAddress.lastName")
	check(req.ShippingAddress.Address, "shippingAddress.address")
	check(req.ShippingAddress.City, "shippingAddress.city")
	check(req.ShippingAddress.ZipCode, "shippingAddress.zipCode")

	check(req.BillingAddress.FirstName, "billingAddress.firstName")
	check(req.BillingAddress.LastName, "billingAddress.lastName")
	check(req.BillingAddress.Address, "billingAddress.address")
	check(req.BillingAddress.City, "billingAddress.city")
	check(req.BillingAddress.ZipCode, "billingAddress.zipCode")

	if len(req.BasketItems) == 0 {
		missing = append(missing, "basketItems")
	}
	if req.Total <= 0 {
		missing = append(missing, "total")
	}

	return missing
}

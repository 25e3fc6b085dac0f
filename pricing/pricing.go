package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meaculpadesigns-sketch/meaculpa-ecommerce-sub001/models"
)

const (
	// Shipping is a flat fee below the free-shipping threshold, free at or above it.
	FreeShippingThreshold = 4500.0
	FlatShippingFee       = 175.0
)

// LineTotal returns unit price times quantity for a single cart line.
func LineTotal(item models.CartItem) float64 {
	total := decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity)))
	f, _ := total.Float64()
	return f
}

// Subtotal sums line totals over all cart lines.
func Subtotal(items []models.CartItem) float64 {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(decimal.NewFromFloat(item.UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	f, _ := sum.Float64()
	return f
}

// ItemCount sums quantities over all cart lines.
func ItemCount(items []models.CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// ShippingCost is 0 once the subtotal reaches the free-shipping threshold.
func ShippingCost(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// CouponDiscount computes the discount a coupon yields on a subtotal.
// Returns 0 when the subtotal is under the coupon's minimum-purchase threshold.
func CouponDiscount(coupon models.Coupon, subtotal float64) float64 {
	if coupon.MinPurchase > 0 && subtotal < coupon.MinPurchase {
		return 0
	}
	sub := decimal.NewFromFloat(subtotal)
	var discount decimal.Decimal
	switch coupon.Type {
	case models.DiscountPercentage:
		discount = sub.Mul(decimal.NewFromFloat(coupon.Value)).Div(decimal.NewFromInt(100))
	case models.DiscountFixed:
		discount = decimal.NewFromFloat(coupon.Value)
	default:
		return 0
	}
	if discount.GreaterThan(sub) {
		discount = sub
	}
	f, _ := discount.Round(2).Float64()
	return f
}

// OrderTotal = subtotal - discount + shipping.
func OrderTotal(subtotal, discount, shipping float64) float64 {
	total := decimal.NewFromFloat(subtotal).
		Sub(decimal.NewFromFloat(discount)).
		Add(decimal.NewFromFloat(shipping))
	f, _ := total.Round(2).Float64()
	return f
}

// PriceFor picks the display price for a currency. USD/EUR use the product's
// explicit override when set, otherwise convert from the TRY base price.
func PriceFor(p models.Product, currency string, tryPerUSD, tryPerEUR float64) float64 {
	switch currency {
	case "USD":
		if p.PriceUSD > 0 {
			return p.PriceUSD
		}
		if tryPerUSD > 0 {
			f, _ := decimal.NewFromFloat(p.Price).Div(decimal.NewFromFloat(tryPerUSD)).Round(2).Float64()
			return f
		}
	case "EUR":
		if p.PriceEUR > 0 {
			return p.PriceEUR
		}
		if tryPerEUR > 0 {
			f, _ := decimal.NewFromFloat(p.Price).Div(decimal.NewFromFloat(tryPerEUR)).Round(2).Float64()
			return f
		}
	}
	return p.Price
}

// Format renders an amount with its currency symbol, e.g. "₺2.175,00" style
// is left to the frontend; the API uses a plain "<amount> <code>" form.
func Format(amount float64, currency string) string {
	return fmt.Sprintf("%.2f %s", amount, currency)
}

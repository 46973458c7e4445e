package metrics

import (
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
)

// OrderSummary is the price breakdown in rupees.
type OrderSummary struct {
	Subtotal     float64 `json:"subtotal"`
	DeliveryFee  float64 `json:"deliveryFee"`
	PackagingFee float64 `json:"packagingFee"`
	Total        float64 `json:"total"`
}

// DeliveryFee is 0 for green, 25 for balanced and 50 for fast delivery.
func DeliveryFee(opt cart.DeliveryOption) float64 {
	switch opt {
	case cart.DeliveryGreen:
		return 0
	case cart.DeliveryBalanced:
		return 25
	default:
		return 50
	}
}

// PackagingFee is 12 for biodegradable packaging, otherwise free.
func PackagingFee(opt cart.PackagingOption) float64 {
	if opt == cart.PackagingBiodegradable {
		return 12
	}
	return 0
}

// Subtotal is the sum of price x quantity.
func Subtotal(items []cart.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Summarize prices the cart with the chosen delivery and packaging.
func Summarize(items []cart.CartItem, delivery cart.DeliveryOption, packaging cart.PackagingOption) OrderSummary {
	s := OrderSummary{
		Subtotal:     Subtotal(items),
		DeliveryFee:  DeliveryFee(delivery),
		PackagingFee: PackagingFee(packaging),
	}
	s.Total = s.Subtotal + s.DeliveryFee + s.PackagingFee
	return s
}

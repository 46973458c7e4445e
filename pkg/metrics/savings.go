package metrics

import (
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
)

// Savings breaks down the CO₂ saved by the shopper's choices, in kg.
type Savings struct {
	Product         float64 `json:"product"`
	Delivery        float64 `json:"delivery"`
	Packaging       float64 `json:"packaging"`
	Total           float64 `json:"total"`
	HasGreenChoices bool    `json:"hasGreenChoices"`
}

// Breakdown labels, in display order.
const (
	LabelProductSavings   = "Product Alternative Switch"
	LabelDeliverySavings  = "Delivery Optimization"
	LabelPackagingSavings = "Packaging Choice"
)

// SavingsLine is one component of a saving.
type SavingsLine struct {
	Label string
	Kg    float64
}

// Breakdown returns the non-zero components: product, delivery, packaging.
func (s Savings) Breakdown() []SavingsLine {
	lines := make([]SavingsLine, 0, 3)
	for _, l := range []SavingsLine{
		{LabelProductSavings, s.Product},
		{LabelDeliverySavings, s.Delivery},
		{LabelPackagingSavings, s.Packaging},
	} {
		if l.Kg > 0 {
			lines = append(lines, l)
		}
	}
	return lines
}

// DeliverySavings is 1.6 kg for green, 0.8 kg for balanced and 0 for fast.
func DeliverySavings(opt cart.DeliveryOption) float64 {
	switch opt {
	case cart.DeliveryGreen:
		return 1.6
	case cart.DeliveryBalanced:
		return 0.8
	default:
		return 0
	}
}

// PackagingSavings is 0.4 kg for biodegradable packaging.
func PackagingSavings(opt cart.PackagingOption) float64 {
	if opt == cart.PackagingBiodegradable {
		return 0.4
	}
	return 0
}

// ProductSavings sums CarbonSavings over cart items whose current id is the
// id of a catalog alternative, i.e. items that were swapped in.
func ProductSavings(items []cart.CartItem, catalog []cart.Alternative) float64 {
	byID := make(map[string]float64, len(catalog))
	for _, alt := range catalog {
		if _, ok := byID[alt.ID]; !ok {
			byID[alt.ID] = alt.CarbonSavings
		}
	}

	total := 0.0
	for _, item := range items {
		if saved, ok := byID[item.ID]; ok {
			total += saved
		}
	}
	return total
}

// ComputeSavings combines product, delivery and packaging savings.
func ComputeSavings(items []cart.CartItem, catalog []cart.Alternative, delivery cart.DeliveryOption, packaging cart.PackagingOption) Savings {
	s := Savings{
		Product:   ProductSavings(items, catalog),
		Delivery:  DeliverySavings(delivery),
		Packaging: PackagingSavings(packaging),
	}
	s.Total = s.Product + s.Delivery + s.Packaging
	s.HasGreenChoices = s.Total > 0
	return s
}

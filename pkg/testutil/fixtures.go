// Package testutil provides testing utilities for ecocart
package testutil

import (
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
)

// Seed returns the three-item demo cart with two alternatives:
// item "1" (score 75) -> "alt-1", item "3" (score 68) -> "alt-2".
// Item "2" (score 15) has no alternative.
func Seed() cart.Seed {
	return cart.Seed{
		Items: []cart.CartItem{
			{
				ID:           "1",
				Name:         "Kuber Industries Strong Plastic Bathroom Bucket 13 LTR (Green)",
				Price:        199,
				Quantity:     1,
				CarbonScore:  75,
				CarbonReason: "Emits 4.2 kg CO₂ due to plastic manufacturing",
				Description:  "Durable and lightweight 13L plastic bucket.",
				Image:        "https://m.media-amazon.com/images/I/61kqgK5hkoL._SX679_.jpg",
			},
			{
				ID:           "2",
				Name:         "Go Store Large Non-Slip Wooden Bamboo Cutting Board",
				Price:        599,
				Quantity:     1,
				CarbonScore:  15,
				CarbonReason: "Low emissions from sustainable bamboo sourcing",
				Description:  "Premium bamboo cutting board.",
				Image:        "https://m.media-amazon.com/images/I/71mxX1AtmWL._SX679_.jpg",
			},
			{
				ID:           "3",
				Name:         "Synthetic Yoga Mat for Men & Women | 6mm TPE Cushioning",
				Price:        899,
				Quantity:     1,
				CarbonScore:  68,
				CarbonReason: "High CO₂ from petroleum-based PVC materials",
				Description:  "High-grip synthetic yoga mat with excellent cushioning.",
				Image:        "https://m.media-amazon.com/images/I/41F2uwP7PpL._SX300_SY300_QL70_FMwebp_.jpg",
			},
		},
		Alternatives: []cart.Alternative{
			{
				ID:              "alt-1",
				Name:            "Recycled Steel Storage Container",
				Price:           249,
				CarbonScore:     25,
				DurabilityIndex: "3x more durable",
				CarbonSavings:   2.8,
				OriginalItemID:  "1",
				Image:           "https://m.media-amazon.com/images/I/31eHkZLh36L._SX300_SY300_QL70_FMwebp_.jpg",
			},
			{
				ID:              "alt-2",
				Name:            "Natural Cork Yoga Mat",
				Price:           1299,
				CarbonScore:     22,
				DurabilityIndex: "2x more durable",
				CarbonSavings:   3.1,
				OriginalItemID:  "3",
				Image:           "https://m.media-amazon.com/images/I/71qjBFs7ncL._SX679_.jpg",
			},
		},
	}
}

// Item returns the seeded item with the given id, or panics.
func Item(id string) cart.CartItem {
	for _, item := range Seed().Items {
		if item.ID == id {
			return item
		}
	}
	panic("testutil: no seeded item " + id)
}

// Alternative returns the seeded alternative with the given id, or panics.
func Alternative(id string) cart.Alternative {
	for _, alt := range Seed().Alternatives {
		if alt.ID == id {
			return alt
		}
	}
	panic("testutil: no seeded alternative " + id)
}

// SwappedItem returns what the cart line of originalID looks like after it
// has been swapped to altID.
func SwappedItem(originalID, altID string) cart.CartItem {
	orig := Item(originalID)
	alt := Alternative(altID)
	return cart.CartItem{
		ID:           alt.ID,
		Name:         alt.Name,
		Price:        alt.Price,
		Quantity:     orig.Quantity,
		CarbonScore:  alt.CarbonScore,
		CarbonReason: cart.EcoAlternativeReason,
		Description:  orig.Description,
		Image:        alt.Image,
	}
}

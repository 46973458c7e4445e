// Package metrics derives the carbon and order figures shown at checkout.
// Everything here is a pure function of a cart snapshot.
package metrics

import (
	"math"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
)

// EmissionFactor converts carbon score x quantity into kg CO₂.
const EmissionFactor = 0.1

// TotalEmissions is the estimated footprint of the cart in kg CO₂.
// It is not rounded; round at display time.
func TotalEmissions(items []cart.CartItem) float64 {
	total := 0.0
	for _, item := range items {
		total += item.CarbonScore * float64(item.Quantity) * EmissionFactor
	}
	return total
}

// ItemEmissions is the footprint of a single cart line.
func ItemEmissions(item cart.CartItem) float64 {
	return item.CarbonScore * float64(item.Quantity) * EmissionFactor
}

const (
	carRideKmPerKg  = 5.6
	bulbMonthsPerKg = 0.8

	// RewardThresholdKg is the saving at which the green reward unlocks.
	RewardThresholdKg = 3.0
	// RewardDiscountPercent is the discount granted on the next order.
	RewardDiscountPercent = 10
)

// CarRideKm is the length of car ride skipped by saving totalSavings kg.
func CarRideKm(totalSavings float64) int {
	return int(math.Round(totalSavings * carRideKmPerKg))
}

// BulbMonths is how long an LED bulb runs on the saving.
func BulbMonths(totalSavings float64) int {
	return int(math.Round(totalSavings * bulbMonthsPerKg))
}

// RewardUnlocked reports whether the saving earns the green reward.
func RewardUnlocked(totalSavings float64) bool {
	return totalSavings >= RewardThresholdKg
}

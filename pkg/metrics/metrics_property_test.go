package metrics_test

import (
	"math"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/testutil"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestTotalEmissionsLinearInQuantity verifies emissions scale with quantity.
// Property: TotalEmissions(q*k) == k * TotalEmissions(q) and is never negative
func TestTotalEmissionsLinearInQuantity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("emissions are non-negative and linear in quantity", prop.ForAll(
		func(score float64, qty int, k int) bool {
			base := []cart.CartItem{{ID: "x", CarbonScore: score, Quantity: qty}}
			scaled := []cart.CartItem{{ID: "x", CarbonScore: score, Quantity: qty * k}}

			e1 := metrics.TotalEmissions(base)
			e2 := metrics.TotalEmissions(scaled)
			if e1 < 0 || e2 < 0 {
				return false
			}
			return math.Abs(e2-float64(k)*e1) <= 1e-9*math.Max(1, e2)
		},
		gen.Float64Range(0, 150),
		gen.IntRange(1, 100),
		gen.IntRange(1, 20),
	))

	properties.TestingRun(t)
}

// TestTotalEmissionsAdditive verifies the cart total is the sum of its lines.
func TestTotalEmissionsAdditive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("total equals sum of item emissions", prop.ForAll(
		func(scores []float64) bool {
			items := make([]cart.CartItem, len(scores))
			sum := 0.0
			for i, s := range scores {
				items[i] = cart.CartItem{ID: string(rune('a' + i%26)), CarbonScore: s, Quantity: 1 + i%3}
				sum += metrics.ItemEmissions(items[i])
			}
			return math.Abs(metrics.TotalEmissions(items)-sum) <= 1e-9*math.Max(1, sum)
		},
		gen.SliceOf(gen.Float64Range(0, 150)),
	))

	properties.TestingRun(t)
}

// TestNoGreenChoicesWithoutSwaps verifies fast delivery, standard packaging
// and an unswapped cart never report savings, whatever the quantities.
func TestNoGreenChoicesWithoutSwaps(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("no savings without green choices", prop.ForAll(
		func(q1, q2, q3 int) bool {
			seed := testutil.Seed()
			seed.Items[0].Quantity = q1
			seed.Items[1].Quantity = q2
			seed.Items[2].Quantity = q3
			s := metrics.ComputeSavings(seed.Items, seed.Alternatives, cart.DeliveryFast, cart.PackagingStandard)
			return s.Total == 0 && !s.HasGreenChoices
		},
		gen.IntRange(1, 50),
		gen.IntRange(1, 50),
		gen.IntRange(1, 50),
	))

	properties.TestingRun(t)
}

// TestOrderTotalIsSubtotalPlusFees verifies the summary arithmetic for every choice.
func TestOrderTotalIsSubtotalPlusFees(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("total = subtotal + delivery + packaging", prop.ForAll(
		func(d, p int, qty int) bool {
			items := testutil.Seed().Items
			items[0].Quantity = qty
			s := metrics.Summarize(items, cart.DeliveryOptions[d], cart.PackagingOptions[p])
			return s.Total == s.Subtotal+s.DeliveryFee+s.PackagingFee && s.Total >= s.Subtotal
		},
		gen.IntRange(0, len(cart.DeliveryOptions)-1),
		gen.IntRange(0, len(cart.PackagingOptions)-1),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

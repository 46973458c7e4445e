/* pkg/tui/plain.go */

package tui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/route"
)

// The plain writers render the same facts as the interactive views for
// pipes, scripts and terminals where the full-screen UI is unavailable.

// WriteSummary prints the cart, choices, footprint and order summary.
func WriteSummary(w io.Writer, items []cart.CartItem, r metrics.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "CART")
	for _, item := range items {
		fmt.Fprintf(tw, "  %s\t%s\t%s × %d\t%g (%s)\n",
			item.ID, item.Name, metrics.Rupees(item.Price), item.Quantity,
			item.CarbonScore, cart.BandFor(item.CarbonScore))
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Delivery:\t%s, %s\n", r.Choices.Delivery.Label(), r.Choices.Delivery.Detail())
	fmt.Fprintf(tw, "Packaging:\t%s\n", r.Choices.Packaging.Label())

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Total cart emissions:\t%s\n", metrics.Kg(r.EmissionsKg))
	if !r.Savings.HasGreenChoices {
		fmt.Fprintln(tw, aheadNote)
		fmt.Fprintln(tw, nudgeNote)
	} else {
		fmt.Fprintln(tw, "Carbon Savings Breakdown:")
		for _, l := range r.Savings.Breakdown() {
			fmt.Fprintf(tw, "  %s:\t-%s\n", l.Label, metrics.Kg(l.Kg))
		}
		fmt.Fprintf(tw, "Total CO₂ Saved:\t%.1fkg\n", r.Savings.Total)
		fmt.Fprintln(tw, carRideLine(r.Equivalents.CarRideKm))
		fmt.Fprintln(tw, bulbLine(r.Equivalents.BulbMonths))
	}
	if r.RewardUnlocked {
		fmt.Fprintf(tw, "Green Reward Unlocked!\t%s\n", rewardLine(r.Savings.Total))
	}

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Subtotal\t%s\n", metrics.Rupees(r.Order.Subtotal))
	fmt.Fprintf(tw, "Delivery\t%s\n", metrics.FeeLabel(r.Order.DeliveryFee))
	fmt.Fprintf(tw, "Packaging\t%s\n", metrics.FeeLabel(r.Order.PackagingFee))
	fmt.Fprintf(tw, "Total\t%s\n", metrics.Rupees(r.Order.Total))
	return tw.Flush()
}

// WriteCatalog prints the seeded items and their alternatives.
func WriteCatalog(w io.Writer, seed cart.Seed) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tCARBON\tALTERNATIVE")
	for _, item := range seed.Items {
		altID := "-"
		for _, alt := range seed.Alternatives {
			if alt.OriginalItemID == item.ID {
				altID = alt.ID
				break
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g (%s)\t%s\n",
			item.ID, item.Name, metrics.Rupees(item.Price), item.CarbonScore, cart.BandFor(item.CarbonScore), altID)
	}

	if len(seed.Alternatives) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "ALTERNATIVE\tNAME\tPRICE\tCARBON\tSAVES\tDURABILITY")
		for _, alt := range seed.Alternatives {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%g\t%s\t%s\n",
				alt.ID, alt.Name, metrics.Rupees(alt.Price), alt.CarbonScore, metrics.Kg(alt.CarbonSavings), alt.DurabilityIndex)
		}
	}
	return tw.Flush()
}

// WriteRoute prints the fast vs. green route comparison.
func WriteRoute(w io.Writer, c route.Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\t%s\t%s\n", c.Fast.Name, c.Green.Name)
	fmt.Fprintf(tw, "Distance\t%d km\t%d km\n", c.Fast.DistanceKm, c.Green.DistanceKm)
	fmt.Fprintf(tw, "Delivery Time\t%s\t%s\n", c.Fast.DeliveryTime, c.Green.DeliveryTime)
	fmt.Fprintf(tw, "CO₂ Emissions\t%.1f kg\t%.1f kg\n", c.Fast.EmissionsKg, c.Green.EmissionsKg)
	fmt.Fprintf(tw, "Deliveries Batched\t%s\t%s\n", c.Fast.Batched, c.Green.Batched)

	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Environmental Impact:\t%.1fkg CO₂ Saved by choosing green delivery\n", c.Impact.SavedKg)
	fmt.Fprintf(tw, "Orders Batched\t%d\n", c.Impact.OrdersBatched)
	fmt.Fprintf(tw, "Distance Saved\t%dkm\n", c.Impact.DistanceSavedKm)
	fmt.Fprintf(tw, "Fuel Saved\t%s\n", c.Impact.FuelSaved)
	return tw.Flush()
}

// Package cart holds the checkout session state: the ordered cart items, the
// immutable catalog of eco-friendly alternatives, the delivery and packaging
// choices, and which items are expanded or mid-swap.
package cart

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	cerr "github.com/cockroachdb/errors"
)

// EcoAlternativeReason replaces the carbon reason of an item after a swap.
const EcoAlternativeReason = "Eco-friendly alternative with reduced carbon footprint"

// CartItem is one line of the cart. ID is unique among the current items.
type CartItem struct {
	ID           string  `json:"id" yaml:"id" validate:"required"`
	Name         string  `json:"name" yaml:"name" validate:"required"`
	Price        float64 `json:"price" yaml:"price" validate:"gt=0"`
	Quantity     int     `json:"quantity" yaml:"quantity" validate:"gte=1"`
	CarbonScore  float64 `json:"carbonScore" yaml:"carbonScore" validate:"gte=0"`
	CarbonReason string  `json:"carbonReason" yaml:"carbonReason"`
	Description  string  `json:"description" yaml:"description"`
	Image        string  `json:"image" yaml:"image" validate:"omitempty,url"`
}

// Alternative is a lower-carbon substitute for the item named by OriginalItemID.
type Alternative struct {
	ID              string  `json:"id" yaml:"id" validate:"required"`
	Name            string  `json:"name" yaml:"name" validate:"required"`
	Price           float64 `json:"price" yaml:"price" validate:"gt=0"`
	CarbonScore     float64 `json:"carbonScore" yaml:"carbonScore" validate:"gte=0"`
	DurabilityIndex string  `json:"durabilityIndex" yaml:"durabilityIndex"`
	CarbonSavings   float64 `json:"carbonSavings" yaml:"carbonSavings" validate:"gt=0"`
	OriginalItemID  string  `json:"originalItemId" yaml:"originalItemId" validate:"required"`
	Image           string  `json:"image" yaml:"image" validate:"omitempty,url"`
}

// Seed is the dataset a session starts from.
type Seed struct {
	Items        []CartItem    `json:"items" yaml:"items" validate:"required,min=1,dive"`
	Alternatives []Alternative `json:"alternatives" yaml:"alternatives" validate:"dive"`
}

// CarbonBand buckets a carbon score for display.
type CarbonBand int

const (
	BandLow CarbonBand = iota
	BandMedium
	BandHigh
)

// BandFor returns low for scores up to 30, medium up to 60, high above.
func BandFor(score float64) CarbonBand {
	switch {
	case score <= 30:
		return BandLow
	case score <= 60:
		return BandMedium
	default:
		return BandHigh
	}
}

func (b CarbonBand) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMedium:
		return "medium"
	default:
		return "high"
	}
}

// DeliveryOption is the delivery method picked at checkout.
type DeliveryOption string

const (
	DeliveryGreen    DeliveryOption = "green"
	DeliveryBalanced DeliveryOption = "balanced"
	DeliveryFast     DeliveryOption = "fast"
)

// DeliveryOptions lists the options in display order.
var DeliveryOptions = []DeliveryOption{DeliveryGreen, DeliveryBalanced, DeliveryFast}

func (d DeliveryOption) String() string { return string(d) }

// Label is the human-readable name shown next to the radio choice.
func (d DeliveryOption) Label() string {
	switch d {
	case DeliveryGreen:
		return "Green Option (Free)"
	case DeliveryBalanced:
		return "Balanced Option (₹25)"
	case DeliveryFast:
		return "Fast Option (₹50)"
	default:
		return string(d)
	}
}

// Detail describes the arrival time and fee policy.
func (d DeliveryOption) Detail() string {
	switch d {
	case DeliveryGreen:
		return "Arrives in 2 days, ₹0 delivery fee"
	case DeliveryBalanced:
		return "Arrives in 1 day, 50% delivery fee waiver"
	case DeliveryFast:
		return "Arrives today, full fee applies"
	default:
		return ""
	}
}

// Next cycles green -> balanced -> fast -> green.
func (d DeliveryOption) Next() DeliveryOption {
	for i, opt := range DeliveryOptions {
		if opt == d {
			return DeliveryOptions[(i+1)%len(DeliveryOptions)]
		}
	}
	return DeliveryGreen
}

// ParseDeliveryOption accepts green, balanced or fast (case-insensitive).
func ParseDeliveryOption(s string) (DeliveryOption, error) {
	opt := DeliveryOption(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DeliveryOptions {
		if opt == known {
			return opt, nil
		}
	}
	return "", cart_err.NewValidationError(
		"unknown delivery option",
		cerr.Newf("%q", s),
		"Use one of: green, balanced, fast",
	)
}

// PackagingOption is the packaging type picked at checkout.
type PackagingOption string

const (
	PackagingStandard      PackagingOption = "standard"
	PackagingBiodegradable PackagingOption = "biodegradable"
)

// PackagingOptions lists the options in display order.
var PackagingOptions = []PackagingOption{PackagingStandard, PackagingBiodegradable}

func (p PackagingOption) String() string { return string(p) }

func (p PackagingOption) Label() string {
	switch p {
	case PackagingStandard:
		return "Standard Packaging (Free)"
	case PackagingBiodegradable:
		return "Biodegradable Packaging (₹12)"
	default:
		return string(p)
	}
}

// Toggle flips between standard and biodegradable.
func (p PackagingOption) Toggle() PackagingOption {
	if p == PackagingBiodegradable {
		return PackagingStandard
	}
	return PackagingBiodegradable
}

// ParsePackagingOption accepts standard or biodegradable (case-insensitive).
func ParsePackagingOption(s string) (PackagingOption, error) {
	opt := PackagingOption(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PackagingOptions {
		if opt == known {
			return opt, nil
		}
	}
	return "", cart_err.NewValidationError(
		"unknown packaging option",
		cerr.Newf("%q", s),
		"Use one of: standard, biodegradable",
	)
}

// Choices are the two independent checkout selections.
type Choices struct {
	Delivery  DeliveryOption  `json:"delivery"`
	Packaging PackagingOption `json:"packaging"`
}

// DefaultChoices starts with green delivery and standard packaging.
func DefaultChoices() Choices {
	return Choices{Delivery: DeliveryGreen, Packaging: PackagingStandard}
}

// Snapshot is an immutable copy of the state the metrics are derived from.
type Snapshot struct {
	Items        []CartItem
	Alternatives []Alternative
	Choices      Choices
}

package route

// Route is one side of the fast vs. green comparison.
type Route struct {
	Name         string  `json:"name"`
	DistanceKm   int     `json:"distanceKm"`
	DeliveryTime string  `json:"deliveryTime"`
	EmissionsKg  float64 `json:"emissionsKg"`
	Batched      string  `json:"batched"`
}

// Impact summarises what choosing the green route saves.
type Impact struct {
	SavedKg         float64 `json:"savedKg"`
	OrdersBatched   int     `json:"ordersBatched"`
	DistanceSavedKm int     `json:"distanceSavedKm"`
	FuelSaved       string  `json:"fuelSaved"`
}

// Comparison is the static content of the route details view.
type Comparison struct {
	Fast   Route  `json:"fast"`
	Green  Route  `json:"green"`
	Impact Impact `json:"impact"`
}

// StaticComparison returns the fixed figures shown after the animation.
// They do not depend on the cart.
func StaticComparison() Comparison {
	return Comparison{
		Fast: Route{
			Name:         "Fast Route (High Carbon)",
			DistanceKm:   147,
			DeliveryTime: "Same Day",
			EmissionsKg:  4.2,
			Batched:      "1 (yours only)",
		},
		Green: Route{
			Name:         "Green Route (Optimized)",
			DistanceKm:   298,
			DeliveryTime: "2 Days",
			EmissionsKg:  2.6,
			Batched:      "5 orders",
		},
		Impact: Impact{
			SavedKg:         1.6,
			OrdersBatched:   5,
			DistanceSavedKm: 49,
			FuelSaved:       "2hrs",
		},
	}
}

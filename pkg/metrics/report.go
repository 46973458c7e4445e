package metrics

import (
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
)

// Equivalents are the everyday comparisons shown for a saving.
type Equivalents struct {
	CarRideKm  int `json:"carRideKm"`
	BulbMonths int `json:"bulbMonths"`
}

// Report is everything derived for one render of the checkout.
type Report struct {
	Choices        cart.Choices `json:"choices"`
	EmissionsKg    float64      `json:"emissionsKg"`
	Savings        Savings      `json:"savings"`
	Equivalents    Equivalents  `json:"equivalents"`
	RewardUnlocked bool         `json:"rewardUnlocked"`
	Order          OrderSummary `json:"order"`
}

// Evaluate derives the full report from a snapshot.
func Evaluate(snap cart.Snapshot) Report {
	savings := ComputeSavings(snap.Items, snap.Alternatives, snap.Choices.Delivery, snap.Choices.Packaging)
	return Report{
		Choices:     snap.Choices,
		EmissionsKg: TotalEmissions(snap.Items),
		Savings:     savings,
		Equivalents: Equivalents{
			CarRideKm:  CarRideKm(savings.Total),
			BulbMonths: BulbMonths(savings.Total),
		},
		RewardUnlocked: RewardUnlocked(savings.Total),
		Order:          Summarize(snap.Items, snap.Choices.Delivery, snap.Choices.Packaging),
	}
}

// Engine memoises Evaluate on the store version so repeated renders of an
// unchanged cart reuse the last report.
type Engine struct {
	store   *cart.Store
	version uint64
	cached  *Report
}

// NewEngine binds an engine to a store.
func NewEngine(store *cart.Store) *Engine {
	return &Engine{store: store}
}

// Report returns the current report, recomputing only after a change.
func (e *Engine) Report() Report {
	v := e.store.Version()
	if e.cached != nil && e.version == v {
		return *e.cached
	}
	r := Evaluate(e.store.Snapshot())
	e.cached = &r
	e.version = v
	return r
}

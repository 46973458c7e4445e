package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultSwapDelay is how long a swap stays in flight before it is committed.
const DefaultSwapDelay = 800 * time.Millisecond

var (
	// ErrAlternativeNotFound is returned when a swap names an alternative that is not in the catalog.
	ErrAlternativeNotFound = cerr.New("alternative not found")
	// ErrSwapInFlight is returned when a swap is requested for an item that is already being swapped.
	ErrSwapInFlight = cerr.New("swap already in progress")
	// ErrDuplicateItemID marks a seed or cart whose item ids are not unique.
	ErrDuplicateItemID = cerr.New("duplicate cart item id")
)

// Store is the session state container. It is safe for concurrent use.
type Store struct {
	mu sync.Mutex

	items    []CartItem
	catalog  []Alternative
	choices  Choices
	expanded map[string]struct{}
	inFlight map[string]struct{}
	version  uint64

	swapDelay time.Duration
	log       *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. A development logger turns invariant
// violations into panics.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSwapDelay overrides DefaultSwapDelay. Negative values are treated as zero.
func WithSwapDelay(d time.Duration) Option {
	return func(s *Store) {
		if d < 0 {
			d = 0
		}
		s.swapDelay = d
	}
}

// WithChoices sets the initial delivery and packaging selection.
func WithChoices(c Choices) Option {
	return func(s *Store) {
		s.choices = c
	}
}

// NewStore seeds a session. The seed is copied; item ids must be unique.
func NewStore(seed Seed, opts ...Option) (*Store, error) {
	if dup, ok := firstDuplicateID(seed.Items); ok {
		return nil, cart_err.NewValidationError(
			fmt.Sprintf("seed contains item id %q more than once", dup),
			ErrDuplicateItemID,
			"Give every cart item a unique id",
		)
	}

	s := &Store{
		items:     append([]CartItem(nil), seed.Items...),
		catalog:   append([]Alternative(nil), seed.Alternatives...),
		choices:   DefaultChoices(),
		expanded:  make(map[string]struct{}),
		inFlight:  make(map[string]struct{}),
		swapDelay: DefaultSwapDelay,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("cart")
	return s, nil
}

// Items returns a copy of the cart in display order.
func (s *Store) Items() []CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartItem(nil), s.items...)
}

// Alternatives returns a copy of the catalog.
func (s *Store) Alternatives() []Alternative {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Alternative(nil), s.catalog...)
}

// Item returns the cart item with the given id.
func (s *Store) Item(id string) (CartItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return CartItem{}, false
}

// AlternativeFor returns the catalog entry whose OriginalItemID is itemID.
func (s *Store) AlternativeFor(itemID string) (Alternative, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, alt := range s.catalog {
		if alt.OriginalItemID == itemID {
			return alt, true
		}
	}
	return Alternative{}, false
}

// LookupAlternative resolves an alternative by its own id.
func (s *Store) LookupAlternative(altID string) (Alternative, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookupLocked(altID)
}

func (s *Store) lookupLocked(altID string) (Alternative, bool) {
	for _, alt := range s.catalog {
		if alt.ID == altID {
			return alt, true
		}
	}
	return Alternative{}, false
}

// Choices returns the current delivery and packaging selection.
func (s *Store) Choices() Choices {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.choices
}

func (s *Store) SetDelivery(opt DeliveryOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.choices.Delivery != opt {
		s.choices.Delivery = opt
		s.version++
	}
}

func (s *Store) SetPackaging(opt PackagingOption) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.choices.Packaging != opt {
		s.choices.Packaging = opt
		s.version++
	}
}

// ToggleAlternative expands or collapses the alternative panel of an item
// and returns whether it is now expanded.
func (s *Store) ToggleAlternative(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expanded[itemID]; ok {
		delete(s.expanded, itemID)
		return false
	}
	s.expanded[itemID] = struct{}{}
	return true
}

func (s *Store) IsExpanded(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.expanded[itemID]
	return ok
}

// IsSwapping reports whether a swap for itemID is in flight.
func (s *Store) IsSwapping(itemID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.inFlight[itemID]
	return ok
}

// SwapDelay is the configured in-flight duration of a swap.
func (s *Store) SwapDelay() time.Duration {
	return s.swapDelay
}

// Version increments whenever items or choices change.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot copies everything the metrics engine needs.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Items:        append([]CartItem(nil), s.items...),
		Alternatives: append([]Alternative(nil), s.catalog...),
		Choices:      s.choices,
	}
}

func (s *Store) indexOf(id string) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// PendingSwap is a swap that has been accepted and is waiting to be committed.
type PendingSwap struct {
	OriginalID  string
	Alternative Alternative
	RequestedAt time.Time
}

// SwapResult describes what a committed swap changed.
type SwapResult struct {
	OriginalID string
	Item       CartItem
	Position   int
	Applied    bool
}

// BeginSwap validates a swap request and marks originalID in flight.
//
// The alternative is resolved by its own id only; its OriginalItemID is not
// compared with originalID. An unknown alternative or an item that already
// has a swap in flight is rejected without changing any state.
func (s *Store) BeginSwap(originalID, altID string) (PendingSwap, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	alt, ok := s.lookupLocked(altID)
	if !ok {
		s.log.Warn("Swap requested for unknown alternative",
			zap.String("item_id", originalID),
			zap.String("alternative_id", altID))
		return PendingSwap{}, cart_err.NewExpectedError(cart_err.NewLookupError(
			fmt.Sprintf("alternative %q is not in the catalog", altID),
			ErrAlternativeNotFound,
			"List available alternatives with: ecocart read catalog",
		))
	}

	if _, busy := s.inFlight[originalID]; busy {
		s.log.Debug("Swap already in flight", zap.String("item_id", originalID))
		return PendingSwap{}, cart_err.NewExpectedError(cart_err.NewConflictError(
			fmt.Sprintf("item %q is already being swapped", originalID),
			ErrSwapInFlight,
		))
	}

	s.inFlight[originalID] = struct{}{}
	s.log.Info("Swap started",
		zap.String("item_id", originalID),
		zap.String("alternative_id", alt.ID))

	return PendingSwap{OriginalID: originalID, Alternative: alt, RequestedAt: time.Now()}, nil
}

// CommitSwap replaces the item at p.OriginalID with the alternative and
// clears the in-flight marker. A swap that was cancelled, or whose item is no
// longer in the cart, commits as a no-op.
func (s *Store) CommitSwap(p PendingSwap) SwapResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := SwapResult{OriginalID: p.OriginalID, Position: -1}

	if _, ok := s.inFlight[p.OriginalID]; !ok {
		s.log.Debug("Ignoring commit for swap that is no longer in flight", zap.String("item_id", p.OriginalID))
		return result
	}
	delete(s.inFlight, p.OriginalID)

	i := s.indexOf(p.OriginalID)
	if i < 0 {
		s.log.Warn("Swap target not in cart", zap.String("item_id", p.OriginalID))
		return result
	}

	prev := s.items[i]
	next := CartItem{
		ID:           p.Alternative.ID,
		Name:         p.Alternative.Name,
		Price:        p.Alternative.Price,
		Quantity:     prev.Quantity,
		CarbonScore:  p.Alternative.CarbonScore,
		CarbonReason: EcoAlternativeReason,
		Description:  prev.Description,
		Image:        p.Alternative.Image,
	}
	s.items[i] = next
	s.version++

	if dup, ok := firstDuplicateID(s.items); ok {
		// DPanic panics under a development logger and only logs otherwise.
		s.log.DPanic("Cart item ids are no longer unique",
			zap.String("duplicate_id", dup),
			zap.String("item_id", p.OriginalID),
			zap.Error(ErrDuplicateItemID))
	}

	s.log.Info("Swap committed",
		zap.String("item_id", p.OriginalID),
		zap.String("alternative_id", next.ID),
		zap.Int("position", i),
		zap.Duration("elapsed", time.Since(p.RequestedAt)))

	result.Item = next
	result.Position = i
	result.Applied = true
	return result
}

// CancelSwap clears the in-flight marker without touching the cart.
func (s *Store) CancelSwap(p PendingSwap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[p.OriginalID]; ok {
		delete(s.inFlight, p.OriginalID)
		s.log.Info("Swap cancelled", zap.String("item_id", p.OriginalID))
	}
}

// CancelAll clears every in-flight marker and returns the affected item ids.
func (s *Store) CancelAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.inFlight))
	for id := range s.inFlight {
		ids = append(ids, id)
		delete(s.inFlight, id)
	}
	if len(ids) > 0 {
		s.log.Info("Pending swaps cancelled", zap.Strings("item_ids", ids))
	}
	return ids
}

// Swap replaces originalID with the alternative altID after the swap delay.
// Cancelling ctx during the delay abandons the swap.
func (s *Store) Swap(ctx context.Context, originalID, altID string) (SwapResult, error) {
	ctx, span := telemetry.Start(ctx, "cart.Swap",
		attribute.String("item_id", originalID),
		attribute.String("alternative_id", altID))
	defer span.End()

	p, err := s.BeginSwap(originalID, altID)
	if err != nil {
		span.RecordError(err)
		telemetry.RecordSwap(ctx, cart_err.CategoryOf(err).String())
		return SwapResult{OriginalID: originalID, Position: -1}, err
	}

	timer := time.NewTimer(s.swapDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		s.CancelSwap(p)
		telemetry.RecordSwap(ctx, "cancelled")
		return SwapResult{OriginalID: originalID, Position: -1}, cerr.Wrapf(ctx.Err(), "swap of item %q", originalID)
	case <-timer.C:
	}

	result := s.CommitSwap(p)
	if result.Applied {
		telemetry.RecordSwap(ctx, "applied")
	} else {
		telemetry.RecordSwap(ctx, "noop")
	}
	return result, nil
}

func firstDuplicateID(items []CartItem) (string, bool) {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return item.ID, true
		}
		seen[item.ID] = struct{}{}
	}
	return "", false
}

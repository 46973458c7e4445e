package cart_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStore(t *testing.T, opts ...cart.Option) *cart.Store {
	t.Helper()
	opts = append([]cart.Option{cart.WithSwapDelay(0)}, opts...)
	s, err := cart.NewStore(testutil.Seed(), opts...)
	require.NoError(t, err)
	return s
}

func TestNewStore_RejectsDuplicateIDs(t *testing.T) {
	t.Parallel()
	seed := testutil.Seed()
	seed.Items[2].ID = "1"

	_, err := cart.NewStore(seed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cart.ErrDuplicateItemID))
	assert.Equal(t, cart_err.CategoryValidation, cart_err.CategoryOf(err))
}

func TestNewStore_CopiesSeed(t *testing.T) {
	t.Parallel()
	seed := testutil.Seed()
	s, err := cart.NewStore(seed)
	require.NoError(t, err)

	seed.Items[0].Name = "mutated"
	item, ok := s.Item("1")
	require.True(t, ok)
	assert.NotEqual(t, "mutated", item.Name)

	items := s.Items()
	items[0].Name = "mutated again"
	item, _ = s.Item("1")
	assert.NotEqual(t, "mutated again", item.Name)

	assert.Equal(t, cart.DefaultChoices(), s.Choices())
	assert.Equal(t, cart.DefaultSwapDelay, s.SwapDelay())
}

func TestSwap_ReplacesItemInPlace(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	before := s.Items()

	result, err := s.Swap(context.Background(), "3", "alt-2")
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 2, result.Position)

	after := s.Items()
	require.Len(t, after, len(before))
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[1], after[1])
	assert.Equal(t, testutil.SwappedItem("3", "alt-2"), after[2])

	assert.Equal(t, "alt-2", after[2].ID)
	assert.Equal(t, float64(22), after[2].CarbonScore)
	assert.Equal(t, before[2].Quantity, after[2].Quantity)
	assert.Equal(t, before[2].Description, after[2].Description)
	assert.Equal(t, cart.EcoAlternativeReason, after[2].CarbonReason)
	assert.False(t, s.IsSwapping("3"))
}

func TestSwap_CarriesQuantity(t *testing.T) {
	t.Parallel()
	seed := testutil.Seed()
	seed.Items[0].Quantity = 4
	s, err := cart.NewStore(seed, cart.WithSwapDelay(0))
	require.NoError(t, err)

	result, err := s.Swap(context.Background(), "1", "alt-1")
	require.NoError(t, err)
	assert.Equal(t, 4, result.Item.Quantity)
}

func TestSwap_UnknownAlternativeIsReportedNoOp(t *testing.T) {
	t.Parallel()
	log, logs := testutil.ObservedLogger()
	s := newStore(t, cart.WithLogger(log))
	before := s.Items()
	version := s.Version()

	result, err := s.Swap(context.Background(), "3", "alt-404")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cart.ErrAlternativeNotFound))
	assert.True(t, cart_err.IsExpectedUserError(err))
	assert.Equal(t, cart_err.CategoryLookup, cart_err.CategoryOf(err))
	assert.False(t, result.Applied)

	assert.Equal(t, before, s.Items())
	assert.Equal(t, version, s.Version())
	assert.False(t, s.IsSwapping("3"))
	assert.Equal(t, 1, logs.FilterMessage("Swap requested for unknown alternative").Len())
}

func TestSwap_MissingOriginalIsNoOp(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	before := s.Items()

	result, err := s.Swap(context.Background(), "99", "alt-2")
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.Equal(t, -1, result.Position)
	assert.Equal(t, before, s.Items())
	assert.False(t, s.IsSwapping("99"))
}

func TestSwap_DoesNotCheckOriginalItemLink(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	// alt-1 belongs to item "1", but the swap resolves it by id only.
	result, err := s.Swap(context.Background(), "2", "alt-1")
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, "alt-1", s.Items()[1].ID)
}

func TestSwap_DuplicateIDsLoggedInRelease(t *testing.T) {
	t.Parallel()
	log, logs := testutil.ObservedLogger()
	s := newStore(t, cart.WithLogger(log))

	_, err := s.Swap(context.Background(), "3", "alt-2")
	require.NoError(t, err)
	result, err := s.Swap(context.Background(), "1", "alt-2")
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, logs.FilterMessage("Cart item ids are no longer unique").Len())
}

func TestCommitSwap_DuplicateIDsPanicInDebug(t *testing.T) {
	t.Parallel()
	log, _ := testutil.DevelopmentObservedLogger()
	s := newStore(t, cart.WithLogger(log))

	_, err := s.Swap(context.Background(), "3", "alt-2")
	require.NoError(t, err)

	p, err := s.BeginSwap("1", "alt-2")
	require.NoError(t, err)
	assert.Panics(t, func() { s.CommitSwap(p) })
}

func TestBeginSwap_RejectsSecondRequestWhileInFlight(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	p, err := s.BeginSwap("3", "alt-2")
	require.NoError(t, err)
	assert.True(t, s.IsSwapping("3"))

	_, err = s.BeginSwap("3", "alt-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cart.ErrSwapInFlight))
	assert.Equal(t, cart_err.CategoryConflict, cart_err.CategoryOf(err))

	// Other items are not blocked.
	other, err := s.BeginSwap("1", "alt-1")
	require.NoError(t, err)
	s.CancelSwap(other)

	result := s.CommitSwap(p)
	assert.True(t, result.Applied)
	assert.False(t, s.IsSwapping("3"))
}

func TestCommitSwap_AfterCancelIsNoOp(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	before := s.Items()

	p, err := s.BeginSwap("3", "alt-2")
	require.NoError(t, err)
	s.CancelSwap(p)
	assert.False(t, s.IsSwapping("3"))

	result := s.CommitSwap(p)
	assert.False(t, result.Applied)
	assert.Equal(t, before, s.Items())
}

func TestCancelAll(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	_, err := s.BeginSwap("1", "alt-1")
	require.NoError(t, err)
	_, err = s.BeginSwap("3", "alt-2")
	require.NoError(t, err)

	ids := s.CancelAll()
	assert.ElementsMatch(t, []string{"1", "3"}, ids)
	assert.False(t, s.IsSwapping("1"))
	assert.False(t, s.IsSwapping("3"))
	assert.Empty(t, s.CancelAll())
}

func TestSwap_ContextCancelledDuringDelay(t *testing.T) {
	t.Parallel()
	s := newStore(t, cart.WithSwapDelay(time.Hour))
	before := s.Items()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := s.Swap(ctx, "3", "alt-2")
		done <- err
	}()

	testutil.Eventually(t, func() bool { return s.IsSwapping("3") }, time.Second, time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
	case <-time.After(2 * time.Second):
		t.Fatal("swap did not observe cancellation")
	}
	assert.Equal(t, before, s.Items())
	assert.False(t, s.IsSwapping("3"))
}

func TestSwap_ConcurrentRequestsCommitOnce(t *testing.T) {
	t.Parallel()
	s := newStore(t, cart.WithSwapDelay(50*time.Millisecond), cart.WithLogger(zap.NewNop()))

	const workers = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		applied  int
		rejected int
	)
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			result, err := s.Swap(context.Background(), "3", "alt-2")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil && result.Applied:
				applied++
			case errors.Is(err, cart.ErrSwapInFlight):
				rejected++
			}
		}()
	}
	close(start)
	wg.Wait()

	// Late arrivals after the commit find item "3" gone and commit as no-ops.
	assert.Equal(t, 1, applied)
	assert.LessOrEqual(t, rejected, workers-1)
	assert.Equal(t, "alt-2", s.Items()[2].ID)
}

func TestToggleAlternative(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	assert.False(t, s.IsExpanded("1"))
	assert.True(t, s.ToggleAlternative("1"))
	assert.True(t, s.ToggleAlternative("3"))
	assert.True(t, s.IsExpanded("1"))
	assert.True(t, s.IsExpanded("3"))

	assert.False(t, s.ToggleAlternative("1"))
	assert.False(t, s.IsExpanded("1"))
	assert.True(t, s.IsExpanded("3"))
}

func TestChoices(t *testing.T) {
	t.Parallel()
	s := newStore(t)
	v := s.Version()

	s.SetDelivery(cart.DeliveryFast)
	s.SetPackaging(cart.PackagingBiodegradable)
	assert.Equal(t, cart.Choices{Delivery: cart.DeliveryFast, Packaging: cart.PackagingBiodegradable}, s.Choices())
	assert.Equal(t, v+2, s.Version())

	s.SetDelivery(cart.DeliveryFast)
	assert.Equal(t, v+2, s.Version(), "setting the same value is not a change")

	snap := s.Snapshot()
	assert.Equal(t, s.Choices(), snap.Choices)
	assert.Len(t, snap.Items, 3)
	assert.Len(t, snap.Alternatives, 2)
}

func TestLookups(t *testing.T) {
	t.Parallel()
	s := newStore(t)

	alt, ok := s.AlternativeFor("3")
	require.True(t, ok)
	assert.Equal(t, "alt-2", alt.ID)

	_, ok = s.AlternativeFor("2")
	assert.False(t, ok)

	alt, ok = s.LookupAlternative("alt-1")
	require.True(t, ok)
	assert.Equal(t, "1", alt.OriginalItemID)

	_, ok = s.LookupAlternative("1")
	assert.False(t, ok)
	_, ok = s.Item("alt-1")
	assert.False(t, ok)
}

package cart_test

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/testutil"
	"github.com/cucumber/godog"
)

type checkoutTestContext struct {
	store *cart.Store
	err   error
}

func (c *checkoutTestContext) theDemoCart() error {
	store, err := cart.NewStore(testutil.Seed(), cart.WithSwapDelay(0))
	c.store, c.err = store, nil
	return err
}

func (c *checkoutTestContext) iSwapItemFor(itemID, altID string) error {
	_, c.err = c.store.Swap(context.Background(), itemID, altID)
	return nil
}

func (c *checkoutTestContext) iChooseDelivery(name string) error {
	opt, err := cart.ParseDeliveryOption(name)
	if err != nil {
		return err
	}
	c.store.SetDelivery(opt)
	return nil
}

func (c *checkoutTestContext) iChoosePackaging(name string) error {
	opt, err := cart.ParsePackagingOption(name)
	if err != nil {
		return err
	}
	c.store.SetPackaging(opt)
	return nil
}

func (c *checkoutTestContext) theCartHasItems(n int) error {
	if got := len(c.store.Items()); got != n {
		return fmt.Errorf("expected %d items, got %d", n, got)
	}
	return nil
}

func (c *checkoutTestContext) item(pos int) (cart.CartItem, error) {
	items := c.store.Items()
	if pos < 1 || pos > len(items) {
		return cart.CartItem{}, fmt.Errorf("no item at position %d", pos)
	}
	return items[pos-1], nil
}

func (c *checkoutTestContext) itemInTheCartIs(pos int, name string) error {
	item, err := c.item(pos)
	if err != nil {
		return err
	}
	if item.Name != name {
		return fmt.Errorf("expected %q at position %d, got %q", name, pos, item.Name)
	}
	return nil
}

func (c *checkoutTestContext) itemInTheCartHasID(pos int, id string) error {
	item, err := c.item(pos)
	if err != nil {
		return err
	}
	if item.ID != id {
		return fmt.Errorf("expected id %q at position %d, got %q", id, pos, item.ID)
	}
	return nil
}

func (c *checkoutTestContext) theSwapIsRejected() error {
	if c.err == nil {
		return fmt.Errorf("expected the swap to be rejected")
	}
	return nil
}

func (c *checkoutTestContext) report() metrics.Report {
	return metrics.Evaluate(c.store.Snapshot())
}

func (c *checkoutTestContext) totalEmissionsAre(kg float64) error {
	return approx("emissions", c.report().EmissionsKg, kg)
}

func (c *checkoutTestContext) totalSavingsAre(kg float64) error {
	return approx("savings", c.report().Savings.Total, kg)
}

func (c *checkoutTestContext) theRewardIs(state string) error {
	want := state == "unlocked"
	if got := c.report().RewardUnlocked; got != want {
		return fmt.Errorf("expected reward %s, got unlocked=%v", state, got)
	}
	return nil
}

func (c *checkoutTestContext) theOrderTotalIs(rupees float64) error {
	return approx("order total", c.report().Order.Total, rupees)
}

func approx(what string, got, want float64) error {
	if math.Abs(got-want) > 1e-9 {
		return fmt.Errorf("expected %s %.2f, got %.2f", what, want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	c := &checkoutTestContext{}

	ctx.Step(`^the demo cart$`, c.theDemoCart)
	ctx.Step(`^I swap item "([^"]*)" for "([^"]*)"$`, c.iSwapItemFor)
	ctx.Step(`^I choose "([^"]*)" delivery$`, c.iChooseDelivery)
	ctx.Step(`^I choose "([^"]*)" packaging$`, c.iChoosePackaging)
	ctx.Step(`^the cart has (\d+) items$`, c.theCartHasItems)
	ctx.Step(`^item (\d+) in the cart is "([^"]*)"$`, c.itemInTheCartIs)
	ctx.Step(`^item (\d+) in the cart has id "([^"]*)"$`, c.itemInTheCartHasID)
	ctx.Step(`^the swap is rejected$`, c.theSwapIsRejected)
	ctx.Step(`^total emissions are ([\d.]+) kg$`, c.totalEmissionsAre)
	ctx.Step(`^total savings are ([\d.]+) kg$`, c.totalSavingsAre)
	ctx.Step(`^the reward is (locked|unlocked)$`, c.theRewardIs)
	ctx.Step(`^the order total is (\d+) rupees$`, c.theOrderTotalIs)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

// cmd/read/summary.go

package read

import (
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_cli"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/catalog"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type summaryOutput struct {
	Items []cart.CartItem `json:"items"`
	metrics.Report
}

func newSummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the order summary and carbon savings",
		Long: `Print the order summary for the seed cart after applying the given
delivery, packaging and swap choices.

Examples:
  ecocart read summary
  ecocart read summary --delivery green --packaging biodegradable
  ecocart read summary --swap 1=alt-1 --swap 3=alt-3 --json`,
		Args: cobra.NoArgs,
		RunE: cart_cli.Wrap(runSummary),
	}
	cmd.Flags().String("delivery", string(cart.DefaultChoices().Delivery), "Delivery option: green, balanced or fast")
	cmd.Flags().String("packaging", string(cart.DefaultChoices().Packaging), "Packaging option: standard or biodegradable")
	cmd.Flags().StringArray("swap", nil, "Swap ITEM_ID=ALTERNATIVE_ID before summarising (repeatable)")
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func runSummary(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	cfg := config.FromContext(rc.Ctx)
	log := rc.Logger()

	deliveryFlag, _ := cmd.Flags().GetString("delivery")
	packagingFlag, _ := cmd.Flags().GetString("packaging")
	swaps, _ := cmd.Flags().GetStringArray("swap")
	asJSON, _ := cmd.Flags().GetBool("json")

	delivery, err := cart.ParseDeliveryOption(deliveryFlag)
	if err != nil {
		return err
	}
	packaging, err := cart.ParsePackagingOption(packagingFlag)
	if err != nil {
		return err
	}
	pairs, err := parseSwaps(swaps)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(rc.Ctx, cfg.Seed,
		cart.WithLogger(rc.Log),
		cart.WithSwapDelay(0),
		cart.WithChoices(cart.Choices{Delivery: delivery, Packaging: packaging}),
	)
	if err != nil {
		return err
	}

	for _, p := range pairs {
		res, err := store.Swap(rc.Ctx, p.itemID, p.altID)
		switch {
		case err != nil && cart_err.IsExpectedUserError(err):
			log.Warn("Swap skipped", zap.String("item_id", p.itemID), zap.String("alternative_id", p.altID), zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  Skipped swap %s=%s: %s\n", p.itemID, p.altID, cart_err.UserMessage(err))
		case err != nil:
			return err
		case !res.Applied:
			fmt.Fprintf(cmd.ErrOrStderr(), "⚠️  Skipped swap %s=%s: item %q is not in the cart\n", p.itemID, p.altID, p.itemID)
		}
	}
	rc.Attributes["swaps"] = fmt.Sprint(len(pairs))

	items := store.Items()
	report := metrics.Evaluate(store.Snapshot())
	log.Info("Order summarised",
		zap.Float64("emissions_kg", report.EmissionsKg),
		zap.Float64("savings_kg", report.Savings.Total),
		zap.Bool("reward", report.RewardUnlocked),
	)

	if asJSON {
		return writeJSON(cmd.OutOrStdout(), summaryOutput{Items: items, Report: report})
	}
	return tui.WriteSummary(cmd.OutOrStdout(), items, report)
}

type swapPair struct {
	itemID string
	altID  string
}

func parseSwaps(raw []string) ([]swapPair, error) {
	pairs := make([]swapPair, 0, len(raw))
	for _, s := range raw {
		item, alt, ok := strings.Cut(s, "=")
		item, alt = strings.TrimSpace(item), strings.TrimSpace(alt)
		if !ok || item == "" || alt == "" {
			return nil, cart_err.NewValidationError(
				fmt.Sprintf("invalid --swap value %q", s), nil,
				"use ITEM_ID=ALTERNATIVE_ID, for example --swap 1=alt-1")
		}
		pairs = append(pairs, swapPair{itemID: item, altID: alt})
	}
	return pairs, nil
}

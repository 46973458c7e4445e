// cmd/checkout/checkout.go

package checkout

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_cli"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/catalog"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/learnmore"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/metrics"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// AnnotationConsole set to "off" keeps log output off the terminal while
// the full-screen UI owns it.
const AnnotationConsole = "ecocart.log.console"

func NewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Open the interactive sustainable checkout",
		Long: `Open the interactive checkout.

Move with ↑/↓, press tab to see a greener option for an item and s to swap
it in. d cycles delivery (green, balanced, fast), p toggles biodegradable
packaging, r shows the optimised delivery route and ? lists every key.

When stdout is not a terminal the order summary is printed instead.

Examples:
  ecocart checkout
  ecocart checkout --seed ./my-cart.yaml --swap-delay 300ms`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{AnnotationConsole: "off"},
		RunE:        cart_cli.Wrap(runCheckout),
	}
}

func runCheckout(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	cfg := config.FromContext(rc.Ctx)
	log := rc.Logger()

	store, err := catalog.NewStore(rc.Ctx, cfg.Seed,
		cart.WithLogger(rc.Log),
		cart.WithSwapDelay(cfg.SwapDelay),
	)
	if err != nil {
		return err
	}
	rc.Attributes["seed"] = seedName(cfg.Seed)

	if !isTerminal(cmd) {
		log.Info("Not a terminal, printing summary instead of the interactive checkout")
		return tui.WriteSummary(cmd.OutOrStdout(), store.Items(), metrics.Evaluate(store.Snapshot()))
	}

	log.Info("Starting interactive checkout",
		zap.Int("items", len(store.Items())),
		zap.Duration("swap_delay", store.SwapDelay()),
	)
	return tui.Run(rc.Ctx, store, tui.Options{
		Logger:       rc.Log,
		Opener:       learnmore.NewSystemOpener(learnmore.WithLogger(rc.Log)),
		LearnMoreURL: cfg.LearnMoreURL,
		RouteTick:    cfg.RouteTick,
	})
}

func isTerminal(cmd *cobra.Command) bool {
	out, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(out.Fd()))
}

func seedName(path string) string {
	if path == "" {
		return catalog.DefaultName
	}
	return path
}

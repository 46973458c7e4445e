// cmd/read/route.go

package read

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_cli"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/route"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/tui"
	"github.com/spf13/cobra"
)

func newRouteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Compare the fast and green delivery routes",
		Long: `Print the fast versus green delivery route comparison and the
environmental impact of batching. --animate runs the route analysis
progress first, one step per --route-tick.`,
		Args: cobra.NoArgs,
		RunE: cart_cli.Wrap(runRoute),
	}
	cmd.Flags().Bool("animate", false, "Show route analysis progress before the comparison")
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

func runRoute(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	cfg := config.FromContext(rc.Ctx)
	out := cmd.OutOrStdout()

	if animate, _ := cmd.Flags().GetBool("animate"); animate {
		var sim route.Simulation
		err := sim.Run(rc.Ctx, cfg.RouteTick, func(progress int) {
			fmt.Fprintf(cmd.ErrOrStderr(), "\rAnalyzing %d delivery points... %3d%%", progress/10, progress)
		})
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}

	comparison := route.StaticComparison()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return writeJSON(out, comparison)
	}
	return tui.WriteRoute(out, comparison)
}

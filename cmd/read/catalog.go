// cmd/read/catalog.go

package read

import (
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_cli"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/catalog"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/tui"
	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the validated seed catalog",
		Long: `Load and validate the seed catalog, then print its items and their
greener alternatives. Use --seed to check a custom catalog file.`,
		Args: cobra.NoArgs,
		RunE: cart_cli.Wrap(func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(rc.Ctx)
			seed, err := catalog.Load(rc.Ctx, cfg.Seed)
			if err != nil {
				return err
			}
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), seed)
			}
			return tui.WriteCatalog(cmd.OutOrStdout(), seed)
		}),
	}
	cmd.Flags().Bool("json", false, "Output JSON")
	return cmd
}

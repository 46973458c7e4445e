// cmd/read/read.go

package read

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// NewCmd returns the read command group. Read commands never prompt and
// are safe to pipe.
func NewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "read",
		Aliases: []string{"inspect", "show"},
		Short:   "Print the cart, catalog or delivery route without the interactive UI",
		Long: `Print checkout information for scripts and pipelines.

Subcommands:
  summary   Order summary and carbon savings for a set of choices
  catalog   Seed items and their greener alternatives
  route     Fast versus green delivery route comparison`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newSummaryCmd(), newCatalogCmd(), newRouteCmd())
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// pkg/cart_cli/wrap.go

package cart_cli

import (
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap adapts a handler to cobra's RunE with panic recovery, a per-run span
// and lifecycle logging.
func Wrap(fn func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := cart_io.NewContext(cmd.Context(), cmd.CommandPath())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !cart_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}

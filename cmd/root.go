/* cmd/root.go */

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CodeMonkeyCybersecurity/ecocart/cmd/checkout"
	"github.com/CodeMonkeyCybersecurity/ecocart/cmd/read"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_cli"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/config"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/route"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

// NewRootCmd builds the ecocart command tree. Each call returns an
// independent tree with its own configuration.
func NewRootCmd() *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:   "ecocart",
		Short: "Sustainable shopping cart checkout for the terminal",
		Long: `ecocart is a checkout that shows the carbon footprint of your cart,
suggests lower-carbon alternatives, and rewards greener delivery and
packaging choices.

Run 'ecocart checkout' for the interactive checkout, or the 'read'
commands for script-friendly output.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(cmd, v)
		},
		RunE: cart_cli.Wrap(func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			return cmd.Help()
		}),
	}

	pf := root.PersistentFlags()
	pf.String("seed", "", "Seed catalog YAML file (default: built-in demo cart)")
	pf.Duration("swap-delay", cart.DefaultSwapDelay, "Simulated delay before a swap is applied")
	pf.Duration("route-tick", route.DefaultTick, "Interval between route animation steps")
	pf.String("learn-more-url", config.DefaultLearnMoreURL, "Page opened by 'learn more'")
	pf.Bool("debug", false, "Enable debug logging; invariant violations abort")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-path", "", "Log file (default: first writable platform path)")
	pf.Bool("telemetry", false, "Write trace spans to ~/.ecocart/telemetry")

	root.AddCommand(checkout.NewCmd(), read.NewCmd())
	return root
}

func setup(cmd *cobra.Command, v *viper.Viper) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	if err := config.BindFlagsToViper(cmd.Flags(), v); err != nil {
		return cart_err.NewInternalError("could not bind flags", err)
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	cart_err.SetDebugMode(cfg.Debug)
	path := logger.InitializeWithFallback(logger.Options{
		Level:   cfg.LogLevel,
		Path:    cfg.LogPath,
		Console: cmd.Annotations[checkout.AnnotationConsole] != "off",
		Debug:   cfg.Debug,
	})
	if err := telemetry.Init("ecocart", cfg.Telemetry, ""); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	logger.L().Debug("Configuration resolved",
		zap.String("command", cmd.CommandPath()),
		zap.String("config_file", v.ConfigFileUsed()),
		zap.String("log_path", path),
		zap.String("seed", cfg.Seed),
		zap.Duration("swap_delay", cfg.SwapDelay),
	)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(config.WithContext(ctx, cfg))
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)

	defer logger.Sync()
	if shutdownErr := telemetry.Shutdown(context.Background()); shutdownErr != nil {
		logger.L().Warn("Failed to flush telemetry", zap.Error(shutdownErr))
	}

	if err != nil {
		if ctx.Err() != nil && !cart_err.IsExpectedUserError(err) {
			err = cart_err.NewUserCancelledError("ecocart")
		}
		cart_err.PrintError("ecocart", err)
	}
	return cart_err.GetExitCode(err)
}

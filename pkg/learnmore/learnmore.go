// Package learnmore opens the carbon-footprint explainer in the user's browser.
package learnmore

import (
	"context"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultInterval is the minimum gap between two browser launches.
	DefaultInterval = 2 * time.Second
	launchTimeout   = 5 * time.Second
)

var ErrRateLimited = cerr.New("learn more was opened moments ago")

// Opener opens a URL outside the application.
type Opener interface {
	Open(ctx context.Context, url string) error
}

// Runner starts an external command and waits for it.
type Runner func(ctx context.Context, name string, args ...string) error

// SystemOpener launches the platform browser command.
type SystemOpener struct {
	limiter *rate.Limiter
	run     Runner
	goos    string
	log     *zap.Logger
}

type Option func(*SystemOpener)

func WithLogger(log *zap.Logger) Option {
	return func(o *SystemOpener) {
		if log != nil {
			o.log = log
		}
	}
}

// WithRunner replaces process execution, mainly for tests.
func WithRunner(run Runner) Option {
	return func(o *SystemOpener) { o.run = run }
}

// WithInterval sets the minimum gap between launches. Zero disables limiting.
func WithInterval(d time.Duration) Option {
	return func(o *SystemOpener) {
		if d <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		o.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithGOOS picks the browser command for another platform.
func WithGOOS(goos string) Option {
	return func(o *SystemOpener) { o.goos = goos }
}

func NewSystemOpener(opts ...Option) *SystemOpener {
	o := &SystemOpener{
		limiter: rate.NewLimiter(rate.Every(DefaultInterval), 1),
		run:     execRunner,
		goos:    runtime.GOOS,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.log = o.log.Named("learnmore")
	return o
}

// Open launches the browser at target. Launches closer together than the
// configured interval are refused with an expected ErrRateLimited.
func (o *SystemOpener) Open(ctx context.Context, target string) error {
	if err := ValidateURL(target); err != nil {
		return err
	}
	if !o.limiter.Allow() {
		o.log.Debug("Learn more suppressed by rate limit", zap.String("url", target))
		return cart_err.NewExpectedError(ErrRateLimited)
	}

	ctx, span := telemetry.Start(ctx, "learnmore.Open", attribute.String("url", target))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, launchTimeout)
	defer cancel()

	name, args := BrowserCommand(o.goos, target)
	if err := o.run(ctx, name, args...); err != nil {
		span.RecordError(err)
		o.log.Warn("Could not open browser", zap.String("command", name), zap.String("url", target), zap.Error(err))
		return cerr.WithHintf(cerr.Wrapf(err, "open %s", target), "Visit %s manually", target)
	}
	o.log.Info("Opened learn more page", zap.String("url", target))
	return nil
}

// BrowserCommand returns the command that opens target on goos.
func BrowserCommand(goos, target string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{target}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	default:
		return "xdg-open", []string{target}
	}
}

// ValidateURL accepts absolute http and https URLs only.
func ValidateURL(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return cart_err.NewValidationError("invalid learn more URL", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return cart_err.NewValidationError("invalid learn more URL", cerr.Newf("%q is not an http(s) URL", target),
			"Set learn_more_url to an absolute https:// address")
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

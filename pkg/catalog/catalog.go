// Package catalog loads the seed dataset a checkout session starts from and
// validates it before the cart sees it.
package catalog

import (
	"context"
	_ "embed"
	"errors"
	"os"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/verify"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultName labels the embedded seed in logs and errors.
const DefaultName = "builtin:seed.yaml"

var (
	//go:embed seed.yaml
	defaultSeed []byte

	//go:embed catalog.cue
	schemaSource string

	//go:embed catalog.rego
	policySource string
)

// Pipeline is the validation every seed passes before use.
var Pipeline = verify.Pipeline{
	Schema:     schemaSource,
	Definition: "#Seed",
	Policy: verify.Policy{
		Name:   "catalog.rego",
		Source: policySource,
		Query:  "data.ecocart.catalog.deny",
	},
}

// Default returns the embedded demo seed. It panics if the embedded file
// does not decode, which would be a build defect.
func Default() cart.Seed {
	seed, err := decode(defaultSeed)
	if err != nil {
		panic(cerr.Wrap(err, "embedded seed"))
	}
	return seed
}

// DefaultYAML returns the raw embedded seed.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultSeed))
	copy(out, defaultSeed)
	return out
}

// Load reads the seed at path, or the embedded default when path is empty,
// and validates it.
func Load(ctx context.Context, path string) (cart.Seed, error) {
	ctx, span := telemetry.Start(ctx, "catalog.Load", attribute.String("path", path))
	defer span.End()
	log := otelzap.Ctx(ctx)

	name, raw := DefaultName, defaultSeed
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return cart.Seed{}, cart_err.NewLookupError("seed file not found", err,
					"Check the --seed flag or the ECOCART_SEED environment variable",
					"Omit --seed to use the built-in catalog")
			}
			return cart.Seed{}, cerr.Wrapf(err, "read seed %s", path)
		}
		name, raw = path, data
	}

	seed, err := Parse(ctx, name, raw)
	if err != nil {
		return cart.Seed{}, err
	}

	log.Debug("Seed loaded",
		zap.String("source", name),
		zap.Int("items", len(seed.Items)),
		zap.Int("alternatives", len(seed.Alternatives)),
	)
	return seed, nil
}

// Parse decodes and validates seed YAML. name is used in error messages.
func Parse(ctx context.Context, name string, raw []byte) (cart.Seed, error) {
	seed, err := decode(raw)
	if err != nil {
		return cart.Seed{}, cart_err.NewValidationError("seed "+name+" is not valid YAML", err)
	}

	if err := Pipeline.VerifyAll(ctx, seed, name, raw); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			return cart.Seed{}, cart_err.NewValidationError("seed "+name+" failed validation",
				cart_err.WrapValidationError(err),
				"Fix the fields listed above",
				"Run 'ecocart read catalog' to compare with the built-in catalog")
		}
		return cart.Seed{}, cart_err.NewInternalError("catalog policy could not be evaluated", cart_err.WrapPolicyError(err))
	}
	return seed, nil
}

func decode(raw []byte) (cart.Seed, error) {
	var seed cart.Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return cart.Seed{}, cerr.Wrap(err, "decode seed yaml")
	}
	return seed, nil
}

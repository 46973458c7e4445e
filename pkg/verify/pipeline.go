// pkg/verify/pipeline.go

package verify

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Pipeline runs the three validation stages over one document: struct tags,
// a CUE schema, then a Rego policy. Stages with an empty source are skipped.
type Pipeline struct {
	Schema     string // CUE source
	Definition string // CUE definition the document must satisfy
	Policy     Policy
}

// VerifyAll validates obj (decoded from raw) through every stage and
// aggregates all failures into a single error.
func (p Pipeline) VerifyAll(ctx context.Context, obj any, filename string, raw []byte) error {
	log := otelzap.Ctx(ctx)
	var result *multierror.Error

	if err := Struct(obj); err != nil {
		log.Warn("Struct validation failed", zap.String("file", filename), zap.Error(err))
		result = multierror.Append(result, err)
	}

	if p.Schema != "" {
		if err := ValidateYAMLWithCUE(p.Schema, p.Definition, filename, raw); err != nil {
			log.Warn("CUE validation failed", zap.String("file", filename), zap.Error(err))
			result = multierror.Append(result, err)
		}
	}

	if p.Policy.Source != "" {
		denies, err := EnforcePolicy(ctx, p.Policy, obj)
		if err != nil {
			return err
		}
		for _, deny := range denies {
			result = multierror.Append(result, fmt.Errorf("policy denied: %s", deny))
		}
	}

	return result.ErrorOrNil()
}

// pkg/verify/policy.go

package verify

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	rego "github.com/open-policy-agent/opa/v1/rego"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Policy is a Rego module plus the query that yields its deny messages.
type Policy struct {
	Name   string // module file name, e.g. "catalog.rego"
	Source string
	Query  string // e.g. "data.ecocart.catalog.deny"
}

// EnforcePolicy evaluates p against input and returns the deny messages,
// sorted. An empty slice means the input is allowed.
func EnforcePolicy(ctx context.Context, p Policy, input any) ([]string, error) {
	ctx, span := telemetry.Start(ctx, "verify.EnforcePolicy",
		attribute.String("policy", p.Name),
	)
	defer span.End()

	doc, err := toDocument(input)
	if err != nil {
		return nil, err
	}

	rs, err := rego.New(
		rego.Query(p.Query),
		rego.Module(p.Name, p.Source),
		rego.Input(doc),
	).Eval(ctx)
	if err != nil {
		otelzap.Ctx(ctx).Error("Policy evaluation failed", zap.String("policy", p.Name), zap.Error(err))
		return nil, cerr.Wrapf(err, "policy %s evaluation failed", p.Name)
	}

	var messages []string
	for _, result := range rs {
		for _, expr := range result.Expressions {
			values, ok := expr.Value.([]any)
			if !ok {
				return nil, cerr.Newf("policy %s returned %T, want a set of messages", p.Name, expr.Value)
			}
			for _, v := range values {
				msg, ok := v.(string)
				if !ok {
					return nil, cerr.Newf("policy %s returned non-string message %v", p.Name, v)
				}
				messages = append(messages, msg)
			}
		}
	}
	sort.Strings(messages)

	if len(messages) > 0 {
		otelzap.Ctx(ctx).Debug("Policy denied input",
			zap.String("policy", p.Name),
			zap.Strings("reasons", messages),
		)
	}
	return messages, nil
}

// toDocument turns input into plain JSON values so policies see the json
// field names rather than Go field names.
func toDocument(input any) (any, error) {
	raw, err := json.Marshal(input)
	if err != nil {
		return nil, cerr.Wrap(err, "encode policy input")
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, cerr.Wrap(err, "decode policy input")
	}
	return doc, nil
}

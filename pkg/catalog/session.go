package catalog

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
)

// NewStore loads the seed at path (or the embedded default) and builds a
// cart store over it.
func NewStore(ctx context.Context, path string, opts ...cart.Option) (*cart.Store, error) {
	seed, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return cart.NewStore(seed, opts...)
}

// pkg/testutil/mocks.go

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockOpener is a testify mock for learnmore.Opener.
type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

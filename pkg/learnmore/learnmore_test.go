package learnmore

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func recorder(calls *[]call, err error) Runner {
	return func(_ context.Context, name string, args ...string) error {
		*calls = append(*calls, call{name: name, args: args})
		return err
	}
}

const target = "https://ecocart.cybermonkey.net.au/carbon-footprint"

func TestBrowserCommand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		goos string
		name string
		args []string
	}{
		{goos: "linux", name: "xdg-open", args: []string{target}},
		{goos: "freebsd", name: "xdg-open", args: []string{target}},
		{goos: "darwin", name: "open", args: []string{target}},
		{goos: "windows", name: "rundll32", args: []string{"url.dll,FileProtocolHandler", target}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			t.Parallel()
			name, args := BrowserCommand(tt.goos, target)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestOpen_LaunchesBrowser(t *testing.T) {
	t.Parallel()
	var calls []call
	o := NewSystemOpener(WithRunner(recorder(&calls, nil)), WithGOOS("darwin"))

	require.NoError(t, o.Open(context.Background(), target))
	require.Len(t, calls, 1)
	assert.Equal(t, "open", calls[0].name)
}

func TestOpen_RateLimited(t *testing.T) {
	t.Parallel()
	var calls []call
	o := NewSystemOpener(WithRunner(recorder(&calls, nil)))

	require.NoError(t, o.Open(context.Background(), target))
	err := o.Open(context.Background(), target)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.True(t, cart_err.IsExpectedUserError(err))
	assert.Len(t, calls, 1)
}

func TestOpen_NoLimit(t *testing.T) {
	t.Parallel()
	var calls []call
	o := NewSystemOpener(WithRunner(recorder(&calls, nil)), WithInterval(0))

	for i := 0; i < 3; i++ {
		require.NoError(t, o.Open(context.Background(), target))
	}
	assert.Len(t, calls, 3)
}

func TestOpen_RunnerFailure(t *testing.T) {
	t.Parallel()
	boom := errors.New("no browser")
	var calls []call
	o := NewSystemOpener(WithRunner(recorder(&calls, boom)))

	err := o.Open(context.Background(), target)
	assert.ErrorIs(t, err, boom)
}

func TestOpen_RejectsBadURL(t *testing.T) {
	t.Parallel()
	var calls []call
	o := NewSystemOpener(WithRunner(recorder(&calls, nil)))

	for _, bad := range []string{"", "/carbon-footprint", "file:///etc/passwd", "javascript:alert(1)"} {
		err := o.Open(context.Background(), bad)
		require.Error(t, err, bad)
		assert.Equal(t, cart_err.CategoryValidation, cart_err.CategoryOf(err))
	}
	assert.Empty(t, calls)
}

// pkg/cart_cli/wrap_test.go

package cart_cli

import (
	"context"
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_io"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("command failed")

	tests := []struct {
		name     string
		fn       func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error
		wantErr  bool
		errorMsg string
		expected bool
	}{
		{
			name: "successful execution",
			fn: func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
				assert.NotNil(t, rc.Ctx)
				assert.NotNil(t, rc.Log)
				assert.Equal(t, []string{"a", "b"}, args)
				return nil
			},
		},
		{
			name: "command returns error",
			fn: func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
				return sentinel
			},
			wantErr:  true,
			errorMsg: "command failed",
		},
		{
			name: "panic recovery",
			fn: func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
				panic("test panic")
			},
			wantErr:  true,
			errorMsg: "panic: test panic",
		},
		{
			name: "expected error is passed through",
			fn: func(rc *cart_io.RuntimeContext, cmd *cobra.Command, args []string) error {
				return cart_err.NewExpectedError(sentinel)
			},
			wantErr:  true,
			errorMsg: "command failed",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cmd := &cobra.Command{Use: "test-cmd"}
			cmd.SetContext(context.Background())

			err := Wrap(tt.fn)(cmd, []string{"a", "b"})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
			assert.Equal(t, tt.expected, cart_err.IsExpectedUserError(err))
		})
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	t.Parallel()
	sentinel := errors.New("root cause")
	cmd := &cobra.Command{Use: "test-cmd"}

	err := Wrap(func(*cart_io.RuntimeContext, *cobra.Command, []string) error {
		return sentinel
	})(cmd, nil)
	assert.ErrorIs(t, err, sentinel)
}

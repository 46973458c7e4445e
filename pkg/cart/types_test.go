package cart_test

import (
	"testing"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeliveryOption(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    cart.DeliveryOption
		wantErr bool
	}{
		{in: "green", want: cart.DeliveryGreen},
		{in: "Balanced", want: cart.DeliveryBalanced},
		{in: " fast ", want: cart.DeliveryFast},
		{in: "express", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := cart.ParseDeliveryOption(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, cart_err.CategoryValidation, cart_err.CategoryOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePackagingOption(t *testing.T) {
	t.Parallel()
	got, err := cart.ParsePackagingOption("BIODEGRADABLE")
	require.NoError(t, err)
	assert.Equal(t, cart.PackagingBiodegradable, got)

	_, err = cart.ParsePackagingOption("plastic")
	assert.Error(t, err)
}

func TestOptionCycling(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cart.DeliveryBalanced, cart.DeliveryGreen.Next())
	assert.Equal(t, cart.DeliveryFast, cart.DeliveryBalanced.Next())
	assert.Equal(t, cart.DeliveryGreen, cart.DeliveryFast.Next())
	assert.Equal(t, cart.PackagingBiodegradable, cart.PackagingStandard.Toggle())
	assert.Equal(t, cart.PackagingStandard, cart.PackagingBiodegradable.Toggle())
}

func TestBandFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, cart.BandLow, cart.BandFor(15))
	assert.Equal(t, cart.BandLow, cart.BandFor(30))
	assert.Equal(t, cart.BandMedium, cart.BandFor(31))
	assert.Equal(t, cart.BandMedium, cart.BandFor(60))
	assert.Equal(t, cart.BandHigh, cart.BandFor(75))
	assert.Equal(t, "high", cart.BandFor(68).String())
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/cart_err"
	"github.com/CodeMonkeyCybersecurity/ecocart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs a fresh command tree in an isolated working directory.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("ECOCART_LOG_PATH", filepath.Join(dir, "ecocart.log"))

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRoot_Help(t *testing.T) {
	out, _, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "checkout")
	assert.Contains(t, out, "read")
}

func TestReadSummary_Default(t *testing.T) {
	out, _, err := execute(t, "read", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "15.8kg CO₂")
	assert.Contains(t, out, "₹1,697")
}

func TestReadSummary_JSONWithSwap(t *testing.T) {
	out, _, err := execute(t, "read", "summary",
		"--delivery", "green", "--packaging", "biodegradable",
		"--swap", "3=alt-2", "--json")
	require.NoError(t, err)

	var got struct {
		Items []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"items"`
		Savings struct {
			Total float64 `json:"total"`
		} `json:"savings"`
		RewardUnlocked bool `json:"rewardUnlocked"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Items, 3)
	assert.Equal(t, "alt-2", got.Items[2].ID)
	assert.Equal(t, "Natural Cork Yoga Mat", got.Items[2].Name)
	assert.InDelta(t, 5.1, got.Savings.Total, 1e-9)
	assert.True(t, got.RewardUnlocked)
}

func TestReadSummary_UnknownAlternativeIsSkipped(t *testing.T) {
	out, stderr, err := execute(t, "read", "summary", "--swap", "1=alt-404")
	require.NoError(t, err)
	assert.Contains(t, stderr, `Skipped swap 1=alt-404: alternative "alt-404" is not in the catalog`)
	assert.NotContains(t, stderr, "How to fix")
	assert.Contains(t, out, "15.8kg CO₂")
}

func TestReadSummary_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"delivery", []string{"--delivery", "teleport"}},
		{"packaging", []string{"--packaging", "foil"}},
		{"swap syntax", []string{"--swap", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, append([]string{"read", "summary"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, cart_err.CategoryValidation, cart_err.CategoryOf(err))
			assert.Equal(t, 2, cart_err.GetExitCode(err))
		})
	}
}

func TestReadCatalog(t *testing.T) {
	out, _, err := execute(t, "read", "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Natural Cork Yoga Mat")
	assert.Contains(t, out, "alt-1")
}

func TestReadCatalog_CustomSeed(t *testing.T) {
	seed := testutil.WriteSeedFile(t, `items:
  - id: "x"
    name: Reusable Bottle
    price: 350
    quantity: 2
    carbonScore: 10
    carbonReason: Stainless steel, reused for years
`)
	out, _, err := execute(t, "read", "catalog", "--seed", seed, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"Reusable Bottle"`)
}

func TestReadCatalog_MissingSeed(t *testing.T) {
	_, _, err := execute(t, "read", "catalog", "--seed", "/nonexistent/seed.yaml")
	require.Error(t, err)
	assert.Equal(t, cart_err.CategoryLookup, cart_err.CategoryOf(err))
}

func TestReadRoute(t *testing.T) {
	out, stderr, err := execute(t, "read", "route", "--animate", "--route-tick", "1ms")
	require.NoError(t, err)
	assert.Contains(t, stderr, "100%")
	assert.Contains(t, out, "147 km")
	assert.Contains(t, out, "1.6kg CO₂ Saved")
}

func TestReadRoute_JSON(t *testing.T) {
	out, _, err := execute(t, "read", "route", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"distanceKm": 298`)
}

func TestCheckout_NotATerminalPrintsSummary(t *testing.T) {
	out, _, err := execute(t, "checkout")
	require.NoError(t, err)
	assert.Contains(t, out, "15.8kg CO₂")
}

func TestConfig_InvalidValueRejected(t *testing.T) {
	_, _, err := execute(t, "read", "summary", "--route-tick", "0s")
	require.Error(t, err)
	assert.Equal(t, cart_err.CategoryValidation, cart_err.CategoryOf(err))
}

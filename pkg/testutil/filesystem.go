package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CreateTestFile creates a test file with specified content and permissions
func CreateTestFile(t *testing.T, dir, filename, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteSeedFile writes a YAML seed into a fresh temp dir and returns its path.
func WriteSeedFile(t *testing.T, content string) string {
	t.Helper()
	return CreateTestFile(t, t.TempDir(), "seed.yaml", content, 0o644)
}

// Eventually runs a function repeatedly until it succeeds or times out
func Eventually(t *testing.T, condition func() bool, timeout time.Duration, interval time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(interval)
	}

	t.Fatalf("condition was not met within %v", timeout)
}

package testutil

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/bradleyjkemp/cupaloy/v2"
)

// GoldenFile snapshots rendered views and printed summaries under
// testdata/golden. A missing or differing snapshot fails the test; pass
// -update to record it.
type GoldenFile struct {
	t           *testing.T
	snapshotter *cupaloy.Config
}

func NewGolden(t *testing.T) *GoldenFile {
	t.Helper()

	dir := filepath.Join("testdata", "golden")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create golden directory: %v", err)
	}

	return &GoldenFile{
		t: t,
		snapshotter: cupaloy.New(
			cupaloy.SnapshotSubdirectory(dir),
			cupaloy.FailOnUpdate(!updateRequested()),
			cupaloy.ShouldUpdate(updateRequested),
		),
	}
}

// Assert compares got with the snapshot named after the running test.
func (g *GoldenFile) Assert(got any) {
	g.t.Helper()
	g.compare(g.t.Name(), got)
}

// AssertWithName is Assert for tests that keep several snapshots.
func (g *GoldenFile) AssertWithName(name string, got any) {
	g.t.Helper()
	g.compare(g.t.Name()+"/"+name, got)
}

func (g *GoldenFile) compare(name string, got any) {
	g.t.Helper()
	if err := g.snapshotter.SnapshotWithName(snapshotName(name), got); err != nil {
		g.t.Fatalf("snapshot %s differs: %v\n\nrerun with: go test -update", name, err)
	}
}

func updateRequested() bool {
	return slices.Contains(os.Args, "-update") || slices.Contains(os.Args, "-test.update")
}

func snapshotName(name string) string {
	return strings.NewReplacer("/", "-", " ", "_").Replace(name)
}

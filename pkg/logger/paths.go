/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	appName     = "ecocart"
	logFileName = "ecocart.log"
)

// PlatformLogPaths returns candidate log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	var paths []string
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			paths = append(paths, filepath.Join(dir, appName, logFileName))
		}
	default:
		if state := os.Getenv("XDG_STATE_HOME"); state != "" {
			paths = append(paths, filepath.Join(state, appName, logFileName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, ".local", "state", appName, logFileName))
		}
	}
	return append(paths,
		filepath.Join(".", logFileName),
		filepath.Join(os.TempDir(), appName, logFileName),
	)
}

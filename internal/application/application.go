package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName names the data directory and the CLI binary.
	AppName = "consultas"

	// Version is reported by the version command
	Version = "0.1.0"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns where the appointment database and
// config.ini live. CONSULTAS_HOME wins when set; otherwise it is "consultas"
// under the user config directory, or under the local app data directory on
// Windows. The result is resolved once per process.
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	return appDir, errDir
}

func lazyLoad() {
	if dir := os.Getenv("CONSULTAS_HOME"); dir != "" {
		appDir = dir

		return
	}

	var (
		baseDir string
		err     error
	)

	switch runtime.GOOS {
	case "windows":
		baseDir, err = os.UserCacheDir()
	default:
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		errDir = fmt.Errorf("failed to resolve data directory: %w", err)

		return
	}

	appDir = filepath.Join(baseDir, AppName)
}

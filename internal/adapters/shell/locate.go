package shell

import (
	"os"
	"os/exec"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
)

// BundledBinDir returns the bin directory next to the running kiln executable,
// or "" when the executable path cannot be determined.
func BundledBinDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), domain.BundledBinDirName)
}

// Locate finds an executable, checking binDir before PATH.
func Locate(name, binDir string) (string, bool) {
	if binDir != "" {
		candidate := filepath.Join(binDir, name)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	if path, err := exec.LookPath(name); err == nil {
		return path, true
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode()&0o111 != 0
}

package secrets

import (
	"os"
	"runtime"
	"strings"
)

// needsFileBackend reports whether the desktop keyring daemons are unlikely
// to be reachable: WSL, or Linux without a display server.
func needsFileBackend() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return underWSL() || !hasDisplay()
}

func underWSL() bool {
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	v := strings.ToLower(string(data))
	return strings.Contains(v, "microsoft") || strings.Contains(v, "wsl")
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

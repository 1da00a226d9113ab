package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user directories.
const AppName = "pwcipher"

// ConfigDir returns the XDG-compliant config directory for pwcipher
// Typically ~/.config/pwcipher/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// KeyDir returns the default directory holding the key file.
// It is the config directory, so the key sits next to config.json5.
func KeyDir() string {
	return ConfigDir()
}

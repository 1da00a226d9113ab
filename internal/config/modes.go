package config

import (
	"fmt"
	"sort"
)

// ModeInfo describes a vault mode for users.
type ModeInfo struct {
	Description string
	Encrypts    bool // whether encrypt/decrypt work in this mode
}

// Modes maps vault mode names to their descriptions
var Modes = map[string]ModeInfo{
	"local": {
		Description: "Key file on local disk",
		Encrypts:    true,
	},
	"keyring": {
		Description: "Key stored in the OS keyring",
		Encrypts:    true,
	},
	"vault": {
		Description: "Remote secret manager (reserved, not implemented)",
	},
	"vault_local": {
		Description: "Remote secret manager with local key file (reserved, not implemented)",
	},
}

// GetMode returns the description of the named mode
func GetMode(name string) (ModeInfo, error) {
	info, ok := Modes[name]
	if !ok {
		return ModeInfo{}, fmt.Errorf("unknown mode: %s", name)
	}
	return info, nil
}

// ValidModes returns a sorted list of mode names
func ValidModes() []string {
	modes := make([]string, 0, len(Modes))
	for name := range Modes {
		modes = append(modes, name)
	}
	sort.Strings(modes)
	return modes
}

package cipher

import "fmt"

// Mode selects where the key lives.
type Mode string

const (
	// ModeLocal keeps the key in a file on local disk.
	ModeLocal Mode = "local"
	// ModeKeyring keeps the key in the OS keyring.
	ModeKeyring Mode = "keyring"
	// ModeVault is reserved for a remote secret manager.
	ModeVault Mode = "vault"
	// ModeVaultLocal is reserved for a remote secret manager with a local cache.
	ModeVaultLocal Mode = "vault_local"
)

// ParseMode validates a mode name. The empty string means ModeLocal.
func ParseMode(name string) (Mode, error) {
	switch m := Mode(name); m {
	case "":
		return ModeLocal, nil
	case ModeLocal, ModeKeyring, ModeVault, ModeVaultLocal:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// HasKey reports whether a Cipher in this mode loads a key and can encrypt.
func (m Mode) HasKey() bool {
	return m == ModeLocal || m == ModeKeyring
}

func (m Mode) String() string {
	return string(m)
}

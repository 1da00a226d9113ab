package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/semmy-space/pwcipher/internal/cipher"
	"github.com/semmy-space/pwcipher/internal/config"
	"github.com/semmy-space/pwcipher/internal/output"
)

// SetupCmd implements the interactive setup wizard
type SetupCmd struct{}

// Run executes the setup wizard
func (cmd *SetupCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	if globals.NoInput {
		return &output.CLIError{
			Message:  "setup is interactive and cannot run with --no-input",
			ExitCode: output.ExitUsage,
		}
	}

	reader := bufio.NewReader(stdin)

	fmt.Fprintf(stderr, "\n  pwcipher setup\n")
	fmt.Fprintf(stderr, "  ==============\n\n")

	// Step 1: mode
	fmt.Fprintf(stderr, "  Step 1: Choose where the key lives\n\n")
	for _, name := range config.ValidModes() {
		info, _ := config.GetMode(name)
		fmt.Fprintf(stderr, "    %-12s %s\n", name, info.Description)
	}
	fmt.Fprintln(stderr)

	mode := firstNonEmpty(cfg.Mode, string(cipher.ModeLocal))
	if answer := prompt(reader, fmt.Sprintf("  Mode [%s]: ", mode)); answer != "" {
		mode = answer
	}
	if _, err := config.GetMode(mode); err != nil {
		return (&output.CLIError{
			Message:  fmt.Sprintf("Invalid mode: %s", mode),
			ExitCode: output.ExitUsage,
		}).WithHint("Run: pwcipher modes")
	}

	// Step 2: key location
	baseDir := firstNonEmpty(cfg.BaseDir, config.KeyDir())
	keyFile := firstNonEmpty(cfg.KeyFile, cipher.DefaultKeyFile)
	if mode != string(cipher.ModeKeyring) {
		fmt.Fprintf(stderr, "\n  Step 2: Key file location\n\n")
		if answer := prompt(reader, fmt.Sprintf("  Directory [%s]: ", baseDir)); answer != "" {
			baseDir = answer
		}
	}
	if answer := prompt(reader, fmt.Sprintf("  Key name [%s]: ", keyFile)); answer != "" {
		keyFile = answer
	}

	cfg.Mode = mode
	cfg.BaseDir = baseDir
	cfg.KeyFile = keyFile
	if err := cfg.Save(); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to save config: %v", err),
			ExitCode: output.ExitConfigError,
			Err:      err,
		}
	}

	// Step 3: key
	km, err := cipher.NewKeyManager(cipher.Options{BaseDir: baseDir, KeyFile: keyFile, Mode: cipher.Mode(mode)})
	if err != nil {
		return output.FromError(err)
	}

	_, err = km.LoadKey()
	switch {
	case err == nil:
		fmt.Fprintf(stderr, "\n  Existing key found at %s, keeping it.\n", km.Location())
	case errors.Is(err, cipher.ErrKeyFileNotFound), errors.Is(err, cipher.ErrKeyFileEmpty):
		if _, err := km.SaveKey(nil); err != nil {
			return output.FromError(err)
		}
		fmt.Fprintf(stderr, "\n  ✓ New key written to %s\n", km.Location())
	default:
		return output.FromError(err)
	}

	fmt.Fprintf(stderr, "\n  Setup complete!\n\n")
	fmt.Fprintf(stderr, "    Config: %s\n\n", cfg.Path())
	fmt.Fprintf(stderr, "  Try it out:\n\n")
	fmt.Fprintf(stderr, "    pwcipher generate\n")
	fmt.Fprintf(stderr, "    pwcipher encrypt\n\n")

	return nil
}

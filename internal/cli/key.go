package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/semmy-space/pwcipher/internal/cipher"
	"github.com/semmy-space/pwcipher/internal/config"
	"github.com/semmy-space/pwcipher/internal/output"
)

// KeyCreateCmd generates a key and stores it
// An existing usable key is only replaced with --force.
type KeyCreateCmd struct{}

// Run executes the key create command
func (cmd *KeyCreateCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	km, err := cipher.NewKeyManager(globals.CipherOptions(cfg))
	if err != nil {
		return output.FromError(err)
	}

	if !globals.Force {
		if key, err := km.LoadKey(); err == nil && key.Validate() == nil {
			return (&output.CLIError{
				Message:  fmt.Sprintf("A key already exists at %s", km.Location()),
				ExitCode: output.ExitConflict,
			}).WithHint("Replacing it makes existing tokens undecryptable. Re-run with --force to overwrite")
		}
	}

	if _, err := km.SaveKey(nil); err != nil {
		return output.FromError(err)
	}
	slog.Debug("key saved", slog.String("location", km.Location()), slog.String("mode", km.Mode().String()))

	fmt.Fprintf(stderr, "✓ Key written\n")
	return fp.Formatter.Print(km.Location())
}

// KeyDeleteCmd deletes the key and leaves an empty key file in its place
type KeyDeleteCmd struct{}

// Run executes the key delete command
func (cmd *KeyDeleteCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	km, err := cipher.NewKeyManager(globals.CipherOptions(cfg))
	if err != nil {
		return output.FromError(err)
	}

	if !globals.Force {
		if globals.NoInput {
			return &output.CLIError{
				Message:  "Deleting the key requires --force when prompts are disabled",
				ExitCode: output.ExitUsage,
			}
		}
		answer := prompt(bufio.NewReader(stdin), fmt.Sprintf("Delete key at %s? Tokens encrypted with it become unreadable. [y/N]: ", km.Location()))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			fmt.Fprintln(stderr, "Aborted")
			return nil
		}
	}

	if err := km.DeleteKey(); err != nil {
		return output.FromError(err)
	}

	fmt.Fprintf(stderr, "✓ Key deleted; %s is now empty\n", km.Location())
	return nil
}

// KeyStatusCmd reports on the stored key
type KeyStatusCmd struct{}

// Run executes the key status command
func (cmd *KeyStatusCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	km, err := cipher.NewKeyManager(globals.CipherOptions(cfg))
	if err != nil {
		return output.FromError(err)
	}

	st := km.Status()
	return fp.Formatter.Print(struct {
		Mode     string
		Location string
		Exists   bool
		Size     int
		Valid    bool
		Encrypts bool
	}{
		Mode:     st.Mode.String(),
		Location: st.Location,
		Exists:   st.Exists,
		Size:     st.Size,
		Valid:    st.Valid,
		Encrypts: st.Valid && st.Mode.HasKey(),
	})
}

// KeyPathCmd prints the key location
type KeyPathCmd struct{}

// Run executes the key path command
func (cmd *KeyPathCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	km, err := cipher.NewKeyManager(globals.CipherOptions(cfg))
	if err != nil {
		return output.FromError(err)
	}

	if err := fp.Formatter.Print(km.Location()); err != nil {
		return err
	}

	_, err = km.LoadKey()
	switch {
	case errors.Is(err, cipher.ErrKeyFileNotFound):
		fmt.Fprintln(stderr, "(no key yet - run: pwcipher key create)")
	case errors.Is(err, cipher.ErrKeyFileEmpty):
		fmt.Fprintln(stderr, "(key file is empty)")
	}
	return nil
}

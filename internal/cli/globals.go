package cli

import (
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/semmy-space/pwcipher/internal/cipher"
	"github.com/semmy-space/pwcipher/internal/config"
)

// Standard streams, swapped out in tests
var (
	stdin  io.Reader = os.Stdin
	stderr io.Writer = os.Stderr

	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// Globals holds global flags available to all commands
type Globals struct {
	ConfigFile string `help:"Config file path" name:"config-file" type:"path" predictor:"path" env:"PWCIPHER_CONFIG"`
	BaseDir    string `help:"Directory holding the key file" name:"base-dir" type:"path" predictor:"path" env:"PWCIPHER_BASE_DIR"`
	KeyFile    string `help:"Key file name (keyring item name in keyring mode)" name:"key-file" env:"PWCIPHER_KEY_FILE"`
	Mode       string `help:"Vault mode" default:"" enum:"local,keyring,vault,vault_local," env:"PWCIPHER_MODE"`
	Output     string `help:"Output format" default:"auto" enum:"json,plain,rich,auto" short:"o" env:"PWCIPHER_OUTPUT"`
	Verbose    bool   `help:"Verbose output" short:"v" env:"PWCIPHER_VERBOSE"`
	NoInput    bool   `help:"Disable interactive prompts (fail instead)" name:"no-input" env:"PWCIPHER_NO_INPUT"`
	Force      bool   `help:"Skip confirmation prompts and overwrite an existing key" short:"f" env:"PWCIPHER_FORCE"`
}

// ResolvedOutput returns the effective output mode
// "auto" falls back to the configured default, then detects TTY:
// if stdout is TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput(cfg *config.Config) string {
	if g.Output != "auto" && g.Output != "" {
		return g.Output
	}
	if cfg != nil && cfg.DefaultOutput != "" && cfg.DefaultOutput != "auto" {
		return cfg.DefaultOutput
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}

// CipherOptions resolves key location and mode: flag/env > config > default
func (g *Globals) CipherOptions(cfg *config.Config) cipher.Options {
	return cipher.Options{
		BaseDir: firstNonEmpty(g.BaseDir, cfg.BaseDir),
		KeyFile: firstNonEmpty(g.KeyFile, cfg.KeyFile),
		Mode:    cipher.Mode(firstNonEmpty(g.Mode, cfg.Mode)),
	}
}

// newLogger builds the process-wide logger: text on stderr, debug when verbose
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

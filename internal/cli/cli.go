package cli

import (
	"fmt"
	"log/slog"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/pwcipher/internal/config"
	"github.com/semmy-space/pwcipher/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Key        KeyCmd                       `cmd:"" help:"Manage the encryption key"`
	Encrypt    EncryptCmd                   `cmd:"" help:"Encrypt a password"`
	Decrypt    DecryptCmd                   `cmd:"" help:"Decrypt a token"`
	Generate   GenerateCmd                  `cmd:"" help:"Generate random passwords"`
	Config     ConfigCmd                    `cmd:"" help:"Configuration commands"`
	Modes      ModesCmd                     `cmd:"" help:"List vault modes"`
	Setup      SetupCmd                     `cmd:"" help:"Interactive first-time setup"`
	Completion kongplete.InstallCompletions `cmd:"" help:"Install shell completions"`
	Version    VersionCmd                   `cmd:"" help:"Show version information"`
}

// AfterApply runs once flags are parsed, before any command executes.
// It loads config, sets up logging, creates the formatter, and binds dependencies
func (c *CLI) AfterApply(ctx *kong.Context) error {
	path := c.ConfigFile
	if path == "" {
		path = config.ConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return &output.CLIError{
			Message:  err.Error(),
			ExitCode: output.ExitConfigError,
			Err:      err,
		}
	}

	slog.SetDefault(newLogger(stderr, c.Verbose))
	slog.Debug("loaded config", slog.String("path", cfg.Path()))

	formatter := &FormatterProvider{
		Formatter: output.New(c.ResolvedOutput(cfg)),
	}

	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)

	return nil
}

// KeyCmd holds key lifecycle subcommands
type KeyCmd struct {
	Create KeyCreateCmd `cmd:"" help:"Generate and store a new key"`
	Delete KeyDeleteCmd `cmd:"" help:"Delete the key, leaving an empty key file"`
	Status KeyStatusCmd `cmd:"" help:"Show where the key lives and whether it is usable"`
	Path   KeyPathCmd   `cmd:"" help:"Show the key location"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// ModesCmd lists the vault modes
type ModesCmd struct{}

// Run executes the modes command
func (cmd *ModesCmd) Run(fp *FormatterProvider) error {
	type modeRow struct {
		Mode        string
		Encrypts    bool
		Description string
	}

	rows := make([]modeRow, 0, len(config.Modes))
	for _, name := range config.ValidModes() {
		info, _ := config.GetMode(name)
		rows = append(rows, modeRow{Mode: name, Encrypts: info.Encrypts, Description: info.Description})
	}

	return fp.Formatter.PrintList(rows, []output.Column{
		{Name: "Mode", Key: "Mode"},
		{Name: "Encrypts", Key: "Encrypts"},
		{Name: "Description", Key: "Description"},
	})
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	fmt.Fprintln(ctx.Stdout, "pwcipher version "+version)
	return nil
}

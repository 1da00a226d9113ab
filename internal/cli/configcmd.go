package cli

import (
	"fmt"
	"os"

	"github.com/semmy-space/pwcipher/internal/config"
	"github.com/semmy-space/pwcipher/internal/output"
)

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., mode, key_file)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	value, err := cfg.Get(cmd.Key)
	if err != nil {
		return unknownKey(cmd.Key, output.ExitNotFound)
	}

	return fp.Formatter.Print(value)
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := cfg.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key, output.ExitUsage)
	}

	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		cliErr := &output.CLIError{
			Message:  fmt.Sprintf("Failed to set config: %v", err),
			ExitCode: output.ExitUsage,
			Err:      err,
		}
		if cmd.Key == "mode" {
			cliErr.WithHint("Run: pwcipher modes")
		}
		return cliErr
	}

	if cmd.Key == "mode" {
		if info, _ := config.GetMode(cmd.Value); !info.Encrypts {
			fmt.Fprintf(stderr, "Note: mode %s is reserved; encrypt and decrypt are unavailable in it.\n", cmd.Value)
		}
	}

	fmt.Fprintf(stderr, "Set %s = %s\n", cmd.Key, cmd.Value)
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	if _, err := cfg.Get(cmd.Key); err != nil {
		return unknownKey(cmd.Key, output.ExitUsage)
	}

	if err := cfg.Unset(cmd.Key); err != nil {
		return &output.CLIError{
			Message:  fmt.Sprintf("Failed to unset config: %v", err),
			ExitCode: output.ExitGeneral,
			Err:      err,
		}
	}

	fmt.Fprintf(stderr, "Unset %s\n", cmd.Key)
	return nil
}

// ConfigListConfigCmd implements config list command
type ConfigListConfigCmd struct{}

// Run executes the list command
func (cmd *ConfigListConfigCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	type ConfigItem struct {
		Key   string
		Value string
	}

	keys := config.Keys()
	items := make([]ConfigItem, 0, len(keys))
	for _, key := range keys {
		value, _ := cfg.Get(key)
		items = append(items, ConfigItem{Key: key, Value: value})
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value", Width: 60},
	}

	return fp.Formatter.PrintList(items, cols)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	path := cfg.Path()

	if err := fp.Formatter.Print(path); err != nil {
		return err
	}

	// Existence hint goes to stderr so stdout stays scriptable
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(stderr, "(file does not exist yet - will be created on first write)\n")
	} else {
		fmt.Fprintf(stderr, "(file exists)\n")
	}

	return nil
}

func unknownKey(key string, code int) *output.CLIError {
	return &output.CLIError{
		Message:  fmt.Sprintf("Unknown config key: %s", key),
		ExitCode: code,
	}
}

package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/semmy-space/pwcipher/internal/cipher"
	"github.com/semmy-space/pwcipher/internal/config"
	"github.com/semmy-space/pwcipher/internal/output"
)

// EncryptCmd encrypts a password with the stored key
type EncryptCmd struct {
	Secret string `arg:"" optional:"" help:"Password to encrypt (prompted for, or read from stdin, if omitted)"`
}

// Run executes the encrypt command
func (cmd *EncryptCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	c, err := cipher.New(globals.CipherOptions(cfg))
	if err != nil {
		return output.FromError(err)
	}

	secret := cmd.Secret
	if secret == "" {
		secret, err = readSecret(globals, "Password: ")
		if err != nil {
			return err
		}
	}

	token, err := c.Encrypt(secret)
	if err != nil {
		return output.FromError(err)
	}
	slog.Debug("encrypted", slog.Int("token_bytes", len(token)))

	return fp.Formatter.Print(string(token))
}

// DecryptCmd decrypts a token with the stored key
type DecryptCmd struct {
	Token string        `arg:"" optional:"" help:"Token to decrypt (read from stdin if omitted)"`
	TTL   time.Duration `name:"ttl" help:"Reject tokens older than this (e.g. 24h)"`
}

// Run executes the decrypt command
func (cmd *DecryptCmd) Run(cfg *config.Config, fp *FormatterProvider, globals *Globals) error {
	c, err := cipher.New(globals.CipherOptions(cfg))
	if err != nil {
		return output.FromError(err)
	}

	token := cmd.Token
	if token == "" {
		token, err = readLine(bufio.NewReader(stdin))
		if err != nil {
			return err
		}
	}

	plain, err := c.DecryptWithTTL([]byte(strings.TrimSpace(token)), cmd.TTL)
	if err != nil {
		return output.FromError(err)
	}

	return fp.Formatter.Print(plain)
}

// GenerateCmd prints random passwords
type GenerateCmd struct {
	Length *int `help:"Password length (default: config password_length, else 12)" short:"l"`
	Count  int  `help:"Number of passwords" short:"n" default:"1"`
}

// Run executes the generate command
func (cmd *GenerateCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	length := cipher.DefaultPasswordLength
	if cfg.PasswordLength > 0 {
		length = cfg.PasswordLength
	}
	if cmd.Length != nil {
		length = *cmd.Length
	}

	if cmd.Count < 1 {
		return &output.CLIError{
			Message:  "--count must be at least 1",
			ExitCode: output.ExitUsage,
		}
	}

	passwords := make([]string, 0, cmd.Count)
	for i := 0; i < cmd.Count; i++ {
		pw, err := cipher.GeneratePassword(length)
		if err != nil {
			return output.FromError(err)
		}
		passwords = append(passwords, pw)
	}

	if len(passwords) == 1 {
		return fp.Formatter.Print(passwords[0])
	}
	return fp.Formatter.Print(strings.Join(passwords, "\n"))
}

// readSecret reads a password without echo on a terminal, or one line from
// piped stdin otherwise
func readSecret(globals *Globals, label string) (string, error) {
	if !stdinIsTerminal() {
		return readLine(bufio.NewReader(stdin))
	}
	if globals.NoInput {
		return "", &output.CLIError{
			Message:  "No password given and prompts are disabled",
			ExitCode: output.ExitUsage,
		}
	}

	fmt.Fprint(stderr, label)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(data), nil
}

// readLine returns the next line without its line ending
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", &output.CLIError{
			Message:  "No input on stdin",
			ExitCode: output.ExitUsage,
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// prompt prints a prompt and reads a line of input
func prompt(reader *bufio.Reader, text string) string {
	fmt.Fprint(stderr, text)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

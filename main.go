package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/posener/complete"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/pwcipher/internal/cli"
	"github.com/semmy-space/pwcipher/internal/output"
)

var (
	version = "dev"
)

func main() {
	// A project-local .env may set PWCIPHER_* variables; absence is fine
	_ = godotenv.Load()

	cliInstance := &cli.CLI{}
	parser := kong.Must(cliInstance,
		kong.Name("pwcipher"),
		kong.Description("Encrypt, decrypt and generate passwords with a locally stored key"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Answers shell completion requests and exits when COMP_LINE is set
	kongplete.Complete(parser,
		kongplete.WithPredictor("path", complete.PredictFiles("*")),
	)

	ctx, err := parser.Parse(os.Args[1:])
	if err == nil {
		err = ctx.Run()
	}
	if err == nil {
		return
	}

	var cliErr *output.CLIError
	if errors.As(err, &cliErr) {
		formatter := output.New("plain")
		formatter.PrintError(cliErr)
		if cliErr.Hint != "" {
			formatter.PrintHint(cliErr.Hint)
		}
		os.Exit(cliErr.ExitCode)
	}

	// Parse errors and anything unmapped
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	var parseErr *kong.ParseError
	if errors.As(err, &parseErr) {
		os.Exit(output.ExitUsage)
	}
	os.Exit(output.ExitGeneral)
}

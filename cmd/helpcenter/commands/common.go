// Package commands implements the helpcenter command line.
package commands

import (
	"io"
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/studio27se/ehub/internal/config"
	"github.com/studio27se/ehub/internal/foundation/errors"
	"github.com/studio27se/ehub/internal/version"
)

// Global carries process-wide state into subcommands.
type Global struct {
	Logger *slog.Logger
	Stdout io.Writer
	Stderr io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: helpcenter.yaml when present)"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" help:"Generate help-center.json from the outline and articles"`
	Validate ValidateCmd `cmd:"" help:"Validate the outline and articles"`
	Init     InitCmd     `cmd:"" help:"Create a starter outline, article and configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	g.Logger = slog.New(slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(g.Logger)
	return nil
}

// loadConfig loads the configured project file, or defaults when none exists.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.Config)
}

// Execute parses args, runs the selected command and returns the exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	g := &Global{Logger: slog.Default(), Stdout: stdout, Stderr: stderr}

	parser, err := kong.New(&cli,
		kong.Name("helpcenter"),
		kong.Description("Generate and validate a help center from a YAML outline and Markdown articles."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
		kong.Bind(g),
	)
	if err != nil {
		_, _ = io.WriteString(stderr, "Error: "+err.Error()+"\n")
		return errors.ExitInternal
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		parser.Errorf("%s", err)
		return errors.ExitConfig
	}

	code := errors.ExitOK
	adapter := errors.NewCLIErrorAdapter(cli.Verbose, g.Logger).
		WithOutput(stderr).
		WithExit(func(c int) { code = c })
	adapter.HandleError(ctx.Run(&cli))
	return code
}

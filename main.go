package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gerunddev/mdjson/internal/commands"
	"github.com/gerunddev/mdjson/internal/config"
	"github.com/gerunddev/mdjson/internal/logger"
	"github.com/gerunddev/mdjson/internal/styles"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("mdjson v%s\n", version)
		return
	case "help", "-h", "--help":
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}

	log, cleanup, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
	log.ConfigLoaded(config.ConfigPath(), cfg.IndentSize, cfg.MaxDepth)

	r := commands.NewRunner(cfg, log)
	args := os.Args[2:]

	switch command {
	case "to-md", "j2m":
		err = r.ToMarkdown(args)
	case "to-json", "m2j":
		err = r.ToJSON(args)
	case "roundtrip", "rt":
		err = r.Roundtrip(args)
	case "config":
		err = r.ShowConfig(args)
	default:
		cleanup()
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}

	code := exitCode(err)
	cleanup()
	os.Exit(code)
}

func newLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if cfg.LogFile == "" {
		return logger.NewWithLevel(os.Stderr, level), func() {}, nil
	}
	return logger.NewFileLogger(cfg.LogFile, level)
}

func exitCode(err error) int {
	switch {
	case err == nil, errors.Is(err, pflag.ErrHelp):
		return 0
	case errors.Is(err, commands.ErrFatal), errors.Is(err, commands.ErrNotFaithful):
		// Already reported by the command
		return 1
	}
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
	return 1
}

func printUsage() {
	usage := fmt.Sprintf(`mdjson - Convert structured data to Markdown and back

Usage:
  mdjson <command> [flags] [file]

Reads from stdin when no file (or "-") is given.

Commands:
  to-md, j2m        Convert JSON (or YAML with --from yaml) to Markdown
  to-json, m2j      Convert Markdown to JSON (or YAML with --to yaml)
  roundtrip, rt     Show what a JSON -> Markdown -> JSON trip changes
  config            Show the effective configuration (--init writes it)
  version           Show version information
  help              Show this help message

Examples:
  mdjson to-md data.json
  mdjson to-md --tables --numbered data.json
  cat notes.md | mdjson to-json --camel-case
  mdjson to-json --to yaml notes.md
  mdjson roundtrip --markdown data.json
  mdjson config --init

Run 'mdjson <command> --help' for command flags.

Configuration:
  Config file: %s
`, config.ConfigPath())
	fmt.Print(usage)
}

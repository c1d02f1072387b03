package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/mcncl/swiftyper/internal/config"
	"github.com/mcncl/swiftyper/internal/converter"
	"github.com/mcncl/swiftyper/internal/errors"
	"github.com/mcncl/swiftyper/internal/logging"
	"github.com/mcncl/swiftyper/internal/watch"
	"github.com/rs/zerolog"
)

// CLI defines the command-line interface
var CLI struct {
	Files         []string `arg:"" optional:"" help:"JSON files to convert. If none are given, reads from stdin." type:"path"`
	Output        string   `help:"Path to output Swift file. If not specified, writes to stdout." short:"o" type:"path"`
	OutDir        string   `help:"Write <name>.swift for every input file into this directory." type:"path"`
	Config        string   `help:"Path to a settings file. Defaults to the nearest .swiftyper.yml." short:"c" type:"path"`
	RootName      string   `help:"Name for the root struct." short:"r"`
	Declaration   string   `help:"Declaration keyword for properties: let or var."`
	Unwrap        string   `help:"Type unwrapping for properties: forced (!) or optional (?)."`
	NoKeys        bool     `help:"Do not generate the Key struct."`
	DefaultValues bool     `help:"Give every property a default value."`
	NoInit        bool     `help:"Do not generate init(dictionary:) and dictionary()."`
	Tabs          bool     `help:"Indent with tabs instead of spaces."`
	IndentWidth   int      `help:"Number of spaces per indentation level."`
	Fragment      string   `help:"Part of the output to print: all, keys, types, properties or init." short:"f"`
	Parallel      int      `help:"Maximum number of files converted at once (0 = one per CPU)." short:"j"`
	Watch         bool     `help:"Regenerate whenever an input file changes." short:"w"`
	LogLevel      string   `help:"Log level: trace, debug, info, warn or error."`
	LogFile       string   `help:"Write logs to this file instead of stderr." type:"path"`
	Debug         bool     `help:"Enable debug logging." short:"d"`
	Version       bool     `help:"Show version information." short:"v"`
	Interactive   bool     `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger zerolog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// StdinIsTerminal is true when nobody is piping data into stdin.
	StdinIsTerminal bool
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("swiftyper"),
		kong.Description("A tool to convert JSON to Swift model declarations"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("swiftyper version %s\n", Version)
		return
	}

	stdinIsTerminal := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	// With no arguments at all on a terminal, fall back to interactive mode
	if len(os.Args) == 1 && stdinIsTerminal {
		CLI.Interactive = true
	}

	cfg, err := loadConfig()
	if err != nil {
		exitWithError(err)
	}

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		exitWithError(errors.NewConfigError("invalid logging configuration", err))
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	app := &Context{
		Debug:           CLI.Debug,
		Config:          cfg,
		Logger:          logger,
		Stdin:           os.Stdin,
		Stdout:          os.Stdout,
		Stderr:          os.Stderr,
		StdinIsTerminal: stdinIsTerminal,
	}
	if err := run(ctx, app); err != nil {
		logger.Debug().Err(err).Msg("swiftyper failed")
		_ = closeLog()
		exitWithError(err)
	}
}

func exitWithError(err error) {
	// Use our custom error handling to provide user-friendly error messages
	fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

	// Show help on error
	fmt.Fprintf(os.Stderr, "\nFor help, run: swiftyper --help\n")

	os.Exit(1)
}

// loadConfig layers command-line flags over the settings file.
func loadConfig() (*config.Config, error) {
	overrides := config.Overrides{
		RootName:      CLI.RootName,
		Declaration:   CLI.Declaration,
		Unwrapping:    CLI.Unwrap,
		Fragment:      CLI.Fragment,
		LogLevel:      CLI.LogLevel,
		LogFile:       CLI.LogFile,
		NoKeys:        CLI.NoKeys,
		DefaultValues: CLI.DefaultValues,
		NoInit:        CLI.NoInit,
		Tabs:          CLI.Tabs,
		IndentWidth:   CLI.IndentWidth,
	}
	if CLI.Debug {
		overrides.LogLevel = "debug"
	}

	cfg, err := config.LoadConfigWithCLI(CLI.Config, overrides)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, console io.Writer) (zerolog.Logger, func() error, error) {
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.FilePath = cfg.Logging.File
	return logging.New(logCfg, console)
}

// run executes the main program logic
func run(ctx context.Context, app *Context) error {
	opts := converter.OptionsFromConfig(app.Config)
	opts.Parallelism = CLI.Parallel

	conv, err := converter.New(opts)
	if err != nil {
		return err
	}

	if CLI.Output != "" && (len(CLI.Files) > 1 || CLI.OutDir != "") {
		return errors.NewInputError("--output takes a single input file; use --out-dir for several", errors.ErrInvalidFilePath)
	}
	if CLI.Watch && len(CLI.Files) == 0 {
		return errors.NewInputError("--watch needs at least one input file", errors.ErrNoInput)
	}

	if err := convertInputs(ctx, app, conv); err != nil {
		return err
	}
	if CLI.Watch {
		return watchInputs(ctx, app, conv)
	}
	return nil
}

// convertInputs runs one conversion of stdin, a single file or a batch.
func convertInputs(ctx context.Context, app *Context, conv *converter.Converter) error {
	switch {
	case len(CLI.Files) == 0:
		data, err := readInput(app)
		if err != nil {
			return err
		}
		code, err := conv.Convert(ctx, data)
		if err != nil {
			return err
		}
		return writeOutput(app, code)

	case len(CLI.Files) == 1 && CLI.OutDir == "":
		code, err := conv.ConvertFile(ctx, CLI.Files[0])
		if err != nil {
			return err
		}
		return writeOutput(app, code)

	default:
		results, err := conv.ConvertFiles(ctx, CLI.Files, CLI.OutDir)
		if err != nil {
			return err
		}
		for _, result := range results {
			fmt.Fprintf(app.Stderr, "Generated Swift code written to %s\n", result.Output)
		}
		return nil
	}
}

// watchInputs regenerates on every change until ctx is cancelled. Failed
// regenerations are logged and watching continues.
func watchInputs(ctx context.Context, app *Context, conv *converter.Converter) error {
	logger := zerolog.Ctx(ctx)
	fmt.Fprintln(app.Stderr, "Watching for changes. Press Ctrl+C to stop.")

	regenerate := func(path string) {
		logger.Info().Str("path", path).Msg("regenerating")
		if err := convertChanged(ctx, app, conv, path); err != nil {
			logger.Error().Err(err).Msg(errors.UserFriendlyError(err))
		}
	}

	if len(CLI.Files) == 1 {
		return watch.Watch(ctx, CLI.Files[0], regenerate)
	}

	fw, err := watch.NewFileWatcher(CLI.Files, regenerate)
	if err != nil {
		return errors.NewInputError("failed to watch input files", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Start(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// convertChanged regenerates the output of the one input file at path. A
// single input keeps its --output or stdout destination; in batch mode the
// file next to the input (or in --out-dir) is rewritten.
func convertChanged(ctx context.Context, app *Context, conv *converter.Converter, path string) error {
	code, err := conv.ConvertFile(ctx, path)
	if err != nil {
		return err
	}
	if len(CLI.Files) == 1 && CLI.OutDir == "" {
		return writeOutput(app, code)
	}

	output := converter.OutputPath(path, CLI.OutDir)
	if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
		return errors.WithFile(errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", output), err), path)
	}
	fmt.Fprintf(app.Stderr, "Generated Swift code written to %s\n", output)
	return nil
}

// readInput reads JSON from stdin, prompting first in interactive mode
func readInput(app *Context) ([]byte, error) {
	if app.StdinIsTerminal {
		if !CLI.Interactive {
			// No data provided on stdin and not in interactive mode
			return nil, errors.NewInputError("no input provided", errors.ErrNoInput)
		}
		fmt.Fprintln(app.Stderr, "Swiftyper Interactive Mode")
		fmt.Fprintln(app.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")
	}

	// Read all input until EOF (Ctrl+D)
	data, err := io.ReadAll(app.Stdin)
	if err != nil {
		return nil, errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	if app.StdinIsTerminal {
		fmt.Fprintln(app.Stderr, "\nProcessing JSON...")
	}
	return data, nil
}

// writeOutput writes code to file or stdout
func writeOutput(app *Context, code string) error {
	if CLI.Output != "" {
		// Write to file
		if err := os.WriteFile(CLI.Output, []byte(code), 0o644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", CLI.Output), err)
		}
		fmt.Fprintf(app.Stderr, "Generated Swift code written to %s\n", CLI.Output)
		return nil
	}

	// Write to stdout
	if _, err := io.WriteString(app.Stdout, code); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

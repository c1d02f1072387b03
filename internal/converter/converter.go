// Package converter runs the parse, analyze, render and format pipeline on
// single documents and on batches of files.
package converter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mcncl/swiftyper/internal/analyzer"
	"github.com/mcncl/swiftyper/internal/config"
	"github.com/mcncl/swiftyper/internal/errors"
	"github.com/mcncl/swiftyper/internal/formatter"
	"github.com/mcncl/swiftyper/internal/generator"
	"github.com/mcncl/swiftyper/internal/models"
	"github.com/mcncl/swiftyper/internal/parser"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// OutputExtension is appended to the base name of each converted file.
const OutputExtension = ".swift"

// Options controls a Converter.
type Options struct {
	Configuration config.Configuration
	Indent        config.Indent
	RootName      string
	Header        string
	// Fragment is one of all, keys, types, properties, init.
	Fragment string
	// Parallelism bounds ConvertFiles; zero means one worker per CPU.
	Parallelism int
}

// OptionsFromConfig builds Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Configuration: cfg.Snapshot(),
		Indent:        cfg.Indent(),
		RootName:      cfg.RootName,
		Header:        cfg.Output.FileHeader,
		Fragment:      cfg.Output.Fragment,
	}
}

// Converter turns JSON documents into Swift source. It is safe for
// concurrent use.
type Converter struct {
	opts      Options
	fragment  generator.Fragment
	analyzer  *analyzer.Analyzer
	generator *generator.Generator
	formatter *formatter.Formatter
}

// Result pairs an input file with the file written for it.
type Result struct {
	Input  string
	Output string
}

// New validates opts and creates a Converter.
func New(opts Options) (*Converter, error) {
	fragment, err := generator.ParseFragment(opts.Fragment)
	if err != nil {
		return nil, errors.NewConfigError(err.Error(), err)
	}
	if opts.RootName == "" {
		opts.RootName = config.NewConfig().RootName
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}

	return &Converter{
		opts:      opts,
		fragment:  fragment,
		analyzer:  analyzer.NewAnalyzer(),
		generator: generator.NewGenerator(opts.Configuration, opts.Indent),
		formatter: formatter.NewFormatter(),
	}, nil
}

// Convert parses data and renders the configured fragment.
func (c *Converter) Convert(ctx context.Context, data []byte) (string, error) {
	zerolog.Ctx(ctx).Debug().Int("bytes", len(data)).Msg("parsing JSON")

	root, err := parser.ParseString(string(data))
	if err != nil {
		return "", err
	}
	return c.ConvertValue(ctx, root)
}

// ConvertValue renders an already parsed document.
func (c *Converter) ConvertValue(ctx context.Context, root models.JSONValue) (string, error) {
	logger := zerolog.Ctx(ctx)

	property, err := c.analyzer.Analyze(root)
	if err != nil {
		return "", err
	}
	logger.Debug().
		Str("kind", root.Kind.String()).
		Int("properties", len(property.Children)).
		Int("keys", len(analyzer.AllKeys(property))).
		Msg("analyzed JSON structure")

	code := c.generator.Render(property, c.fragment, c.opts.RootName, c.opts.Header)
	code = c.formatter.Format(code)
	logger.Debug().Str("fragment", string(c.fragment)).Int("bytes", len(code)).Msg("generated Swift")

	return code, nil
}

// ConvertFile converts the JSON file at path.
func (c *Converter) ConvertFile(ctx context.Context, path string) (string, error) {
	root, err := parser.ParseFile(path)
	if err != nil {
		return "", err
	}
	code, err := c.ConvertValue(ctx, root)
	if err != nil {
		return "", errors.WithFile(err, path)
	}
	return code, nil
}

// ConvertFiles converts each path concurrently and writes the result to
// OutputPath(path, outDir). The first failure cancels the remaining work.
func (c *Converter) ConvertFiles(ctx context.Context, paths []string, outDir string) ([]Result, error) {
	logger := zerolog.Ctx(ctx)

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, errors.NewOutputError(fmt.Sprintf("failed to create output directory '%s'", outDir), err)
		}
	}

	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Parallelism)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			code, err := c.ConvertFile(ctx, path)
			if err != nil {
				return err
			}

			output := OutputPath(path, outDir)
			if err := os.WriteFile(output, []byte(code), 0o644); err != nil {
				return errors.WithFile(errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", output), err), path)
			}

			logger.Info().Str("input", path).Str("output", output).Msg("converted")
			results[i] = Result{Input: path, Output: output}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// OutputPath returns where the Swift source for input is written: next to
// the input, or inside outDir when one is given.
func OutputPath(input, outDir string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + OutputExtension
	if outDir == "" {
		return filepath.Join(filepath.Dir(input), name)
	}
	return filepath.Join(outDir, name)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"

	"github.com/aieuren/coordfinder/internal/config"
	"github.com/aieuren/coordfinder/internal/export"
	"github.com/aieuren/coordfinder/internal/finder"
	"github.com/aieuren/coordfinder/internal/logger"
	"github.com/aieuren/coordfinder/internal/processor"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file, defaults are used if empty"`
	Input      []string `short:"i" long:"in" description:"Input file path, may be repeated. Reads from stdin if empty"`
	Output     string   `short:"o" long:"out" description:"Output file path. Writes to stdout if empty"`
	OutputDir  string   `short:"d" long:"out-dir" description:"Write one output file per input into this directory"`
	Format     string   `short:"f" long:"format" description:"Output format: json, yaml, geojson or text (overrides config)"`
	Rating     float64  `short:"r" long:"rating" description:"Minimum point rating 0..1 (overrides config)" default:"-1"`
	Style      string   `short:"s" long:"style" description:"Position style: plain, degrees, degreesandminutes or degreesminutesandseconds (overrides config)"`
	Grouping   bool     `short:"g" long:"grouping" description:"Report points in groups of adjacent lines"`
	Minify     bool     `long:"minify" description:"Minify JSON and GeoJSON output"`
	ParseLog   bool     `long:"log-parse" description:"Include the parse log in the output"`
	Jobs       int      `short:"j" long:"jobs" env:"JOBS" description:"Number of files parsed concurrently" default:"4"`
	Force      bool     `long:"force" description:"Overwrite existing files in the output directory"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, opts, os.Stdin, os.Stdout)
	stop()

	if closeErr := opts.Logger.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error closing log file: %v\n", closeErr)
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to find coordinates")
		os.Exit(1)
	}
}

// loadConfig reads the configuration file, if any, and applies the command
// line overrides on top of it.
func loadConfig(opts Options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	if opts.Format != "" {
		cfg.Output = opts.Format
	}
	if opts.Rating >= 0 {
		cfg.Rating = opts.Rating
	}
	if opts.Style != "" {
		cfg.Format.Style = opts.Style
	}
	if opts.Grouping {
		cfg.Grouping = true
	}
	if opts.Minify {
		cfg.Minify = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, opts Options, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	f, err := cfg.Finder()
	if err != nil {
		return err
	}

	exportOpts := cfg.ExportOptions()
	exportOpts.ParseLog = opts.ParseLog

	if len(opts.Input) > 1 || opts.OutputDir != "" {
		return runBatch(ctx, opts, f, exportOpts, stdout)
	}

	var data []byte
	if len(opts.Input) == 1 {
		data, err = os.ReadFile(opts.Input[0])
		if err != nil {
			return fmt.Errorf("read input file: %w", err)
		}
	} else {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	res := f.Parse(string(data))

	if opts.Output != "" {
		if err := export.WriteFile(opts.Output, res, exportOpts); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
		log.Info().
			Int("points", len(res.Points(exportOpts.Rating))).
			Str("output", opts.Output).
			Str("format", exportOpts.Format).
			Msg("Successfully saved points")
		return nil
	}

	return export.Write(stdout, res, exportOpts)
}

func runBatch(ctx context.Context, opts Options, f *finder.Finder, exportOpts export.Options, stdout io.Writer) error {
	if len(opts.Input) == 0 {
		return errors.New("--out-dir needs at least one --in file")
	}

	results := processor.ParseFiles(ctx, f, opts.Input, opts.Jobs)

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			log.Error().Err(r.Err).Str("path", r.Path).Msg("Failed to parse file")
			errs = append(errs, r.Err)
		}
	}

	if opts.OutputDir != "" {
		if err := processor.SaveAll(results, opts.OutputDir, exportOpts, opts.Force); err != nil {
			errs = append(errs, err)
		}
		return errors.Join(errs...)
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if exportOpts.Format == export.FormatText {
			fmt.Fprintf(stdout, "==> %s <==\n", r.Path)
		}
		if err := export.Write(stdout, r.Result, exportOpts); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

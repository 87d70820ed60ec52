// Package processor parses many input files concurrently and stores their
// exports next to each other.
package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/aieuren/coordfinder/internal/export"
	"github.com/aieuren/coordfinder/internal/finder"
)

// FileResult is the outcome of parsing one input file.
type FileResult struct {
	Result *finder.Result
	Err    error
	Path   string
}

type job struct {
	Path  string
	Index int
}

// ParseFiles parses every path with f using up to concurrency workers.
// Results are returned in the order of paths. Files not yet started when
// ctx is cancelled report the context error.
func ParseFiles(ctx context.Context, f *finder.Finder, paths []string, concurrency int) []FileResult {
	if concurrency < 1 {
		concurrency = 1
	}

	jobs := make(chan job, len(paths))
	results := make([]FileResult, len(paths))

	go func() {
		for i, p := range paths {
			jobs <- job{Path: p, Index: i}
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				// each worker owns distinct indexes
				results[j.Index] = parseFile(ctx, f, j.Path)
			}
		}()
	}
	wg.Wait()

	return results
}

func parseFile(ctx context.Context, f *finder.Finder, path string) FileResult {
	if err := ctx.Err(); err != nil {
		return FileResult{Path: path, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to read input")
		return FileResult{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	start := time.Now()
	res := f.Parse(string(data))

	log.Debug().
		Str("path", path).
		Int("points", len(res.AllPoints())).
		Dur("took", time.Since(start)).
		Msg("Parsed file")

	return FileResult{Path: path, Result: res}
}

// OutputPath returns where the export of input goes inside dir. The input
// extension is replaced by one matching format.
func OutputPath(dir, input, format string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	ext := "." + format
	if format == export.FormatText {
		ext = ".txt"
	}

	return filepath.Join(dir, base+ext)
}

// OutputPaths returns OutputPath for every input. Inputs sharing a base
// name after the first get their 1-based position appended, so no two
// inputs of one batch write the same file.
func OutputPaths(dir string, inputs []string, format string) []string {
	out := make([]string, len(inputs))
	taken := make(map[string]bool, len(inputs))

	for i, input := range inputs {
		dest := OutputPath(dir, input, format)
		if taken[dest] {
			ext := filepath.Ext(dest)
			stem := strings.TrimSuffix(dest, ext)
			for n := i + 1; taken[dest]; n++ {
				dest = fmt.Sprintf("%s-%d%s", stem, n, ext)
			}
			log.Warn().
				Str("input", input).
				Str("output", dest).
				Msg("Output name already used in this batch, renamed")
		}
		taken[dest] = true
		out[i] = dest
	}

	return out
}

// SaveAll writes each successful result into dir. Existing files are kept
// unless force is set. The first write error is returned after all files
// were attempted.
func SaveAll(results []FileResult, dir string, opts export.Options, force bool) error {
	var firstErr error

	inputs := make([]string, len(results))
	for i, r := range results {
		inputs[i] = r.Path
	}
	dests := OutputPaths(dir, inputs, opts.Format)

	for i, r := range results {
		if r.Err != nil {
			continue
		}

		dest := dests[i]
		if _, err := os.Stat(dest); err == nil && !force {
			log.Info().Str("path", dest).Msg("Output file exists, skipping")
			continue
		}

		if err := export.WriteFile(dest, r.Result, opts); err != nil {
			log.Error().Err(err).Str("path", dest).Msg("Failed to write output")
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		log.Info().
			Str("input", r.Path).
			Str("output", dest).
			Int("points", len(r.Result.Points(opts.Rating))).
			Msg("Saved points")
	}

	return firstErr
}

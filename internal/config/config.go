// Package config handles configuration loading for the commands.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aieuren/coordfinder/internal/export"
	"github.com/aieuren/coordfinder/internal/finder"
	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/pattern"
)

// Config represents the root configuration file structure.
type Config struct {
	Format   Format   `yaml:"format" json:"format"`
	Context  Context  `yaml:"context" json:"context"`
	Output   string   `yaml:"output" json:"output"`
	RefSys   []string `yaml:"refsys,omitempty" json:"refsys,omitempty"`   // catalogue names to keep
	Patterns []string `yaml:"patterns,omitempty" json:"patterns,omitempty"` // recognizer names to keep
	Rating   float64  `yaml:"rating" json:"rating"`
	Grouping bool     `yaml:"grouping" json:"grouping"`
	Minify   bool     `yaml:"minify" json:"minify"`
}

// Format holds the text rendering options of points.
type Format struct {
	Style     string `yaml:"style" json:"style"`
	Direction string `yaml:"direction" json:"direction"`
	Decimals  int    `yaml:"decimals" json:"decimals"` // -1 auto, -2 about one meter
	Symbols   bool   `yaml:"symbols" json:"symbols"`
	Compact   bool   `yaml:"compact" json:"compact"`
	Localized bool   `yaml:"localized" json:"localized"`
}

// Context limits the text reported around each point.
type Context struct {
	MaxChars int  `yaml:"max_chars" json:"max_chars"`
	Ellipsis bool `yaml:"ellipsis" json:"ellipsis"`
}

// Output formats understood by the export package.
var outputs = []string{export.FormatJSON, export.FormatYAML, export.FormatGeoJSON, export.FormatText}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Rating: finder.DefaultRating,
		Output: export.FormatJSON,
		Context: Context{
			MaxChars: 50,
			Ellipsis: true,
		},
		Format: Format{
			Style:     finder.StylePlain.String(),
			Direction: finder.LetterBefore.String(),
			Decimals:  finder.DecimalsAuto,
		},
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Rating < 0 || c.Rating > 1 {
		errs = append(errs, fmt.Errorf("rating must be within 0..1, got %g", c.Rating))
	}
	if c.Context.MaxChars < 0 {
		errs = append(errs, fmt.Errorf("context.max_chars must not be negative, got %d", c.Context.MaxChars))
	}
	if c.Format.Decimals < finder.DecimalsMeter {
		errs = append(errs, fmt.Errorf("format.decimals must be -2, -1 or a count, got %d", c.Format.Decimals))
	}
	if _, err := finder.ParseStyle(c.Format.Style); err != nil {
		errs = append(errs, err)
	}
	if _, err := finder.ParsePlacement(c.Format.Direction); err != nil {
		errs = append(errs, err)
	}

	known := false
	for _, o := range outputs {
		if o == c.Output {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("unknown output %q", c.Output))
	}

	if _, err := geo.DefaultCatalogue().Only(c.RefSys...); err != nil {
		errs = append(errs, err)
	}
	if len(c.Patterns) > 0 {
		if _, err := pattern.Default().Only(c.Patterns...); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// FormatOptions converts the format section. The section must be valid.
func (c *Config) FormatOptions() finder.FormatOptions {
	style, _ := finder.ParseStyle(c.Format.Style)
	placement, _ := finder.ParsePlacement(c.Format.Direction)

	return finder.FormatOptions{
		Style:     style,
		Letter:    placement,
		Symbols:   c.Format.Symbols,
		Compact:   c.Format.Compact,
		Decimals:  c.Format.Decimals,
		Localized: c.Format.Localized,
	}
}

// ContextOptions converts the context section.
func (c *Config) ContextOptions() finder.ContextOptions {
	return finder.ContextOptions{MaxChars: c.Context.MaxChars, Ellipsis: c.Context.Ellipsis}
}

// ExportOptions converts the output related settings.
func (c *Config) ExportOptions() export.Options {
	return export.Options{
		Format:   c.Output,
		Rating:   c.Rating,
		Grouping: c.Grouping,
		Minify:   c.Minify,
		Text:     c.FormatOptions(),
		Context:  c.ContextOptions(),
	}
}

// Finder builds a finder restricted to the configured reference systems
// and recognizers.
func (c *Config) Finder() (*finder.Finder, error) {
	f := finder.New()

	cat, err := geo.DefaultCatalogue().Only(c.RefSys...)
	if err != nil {
		return nil, err
	}
	f.Catalogue = cat

	if len(c.Patterns) > 0 {
		lib, err := pattern.Default().Only(c.Patterns...)
		if err != nil {
			return nil, err
		}
		f.Library = lib
	}

	return f, nil
}

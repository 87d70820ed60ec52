package server

import (
	"fmt"
	"hash/fnv"

	"github.com/rs/zerolog/log"

	"github.com/aieuren/coordfinder/assets"
	"github.com/aieuren/coordfinder/internal/config"
	"github.com/aieuren/coordfinder/internal/finder"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Finder    *finder.Finder
	IndexHTML []byte
	IndexETag string
	Favicon   []byte
}

// NewServerContext builds the finder described by cfg and renders the
// web page. cfg must be valid.
func NewServerContext(cfg *config.Config) (*ServerContext, error) {
	log.Info().
		Strs("refsys", cfg.RefSys).
		Strs("patterns", cfg.Patterns).
		Msg("Initializing server context")

	f, err := cfg.Finder()
	if err != nil {
		return nil, fmt.Errorf("build finder: %w", err)
	}

	index, err := assets.Index(cfg.Rating, cfg.Grouping)
	if err != nil {
		return nil, fmt.Errorf("render index: %w", err)
	}
	icon, err := assets.Icon()
	if err != nil {
		return nil, fmt.Errorf("render icon: %w", err)
	}

	h := fnv.New64a()
	_, _ = h.Write(index)

	log.Info().
		Int("refsys_count", len(f.Catalogue)).
		Int("patterns_count", len(f.Library.Patterns())).
		Int("index_bytes", len(index)).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Finder:    f,
		IndexHTML: index,
		IndexETag: fmt.Sprintf(`"%x"`, h.Sum64()),
		Favicon:   icon,
	}, nil
}

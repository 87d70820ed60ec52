// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/aieuren/coordfinder/internal/export"
)

// MaxBodyBytes limits the text accepted by the parse endpoint.
const MaxBodyBytes = 1 << 20

// HandleParse finds the coordinates in the request body. The query may
// override the configured rating, grouping and output format.
func (s *ServerContext) HandleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opts, err := s.exportOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		http.Error(w, "request body too large or unreadable", http.StatusRequestEntityTooLarge)
		return
	}

	res := s.Finder.Parse(string(body))

	data, err := export.Marshal(res, opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render parse result")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	log.Debug().
		Int("bytes", len(body)).
		Int("points", len(res.Points(opts.Rating))).
		Str("format", opts.Format).
		Msg("Parsed request text")

	w.Header().Set("Content-Type", export.MIME(opts.Format))
	_, _ = w.Write(data)
}

func (s *ServerContext) exportOptions(r *http.Request) (export.Options, error) {
	opts := s.Config.ExportOptions()

	q := r.URL.Query()

	if v := q.Get("rating"); v != "" {
		rating, err := strconv.ParseFloat(v, 64)
		if err != nil || rating < 0 || rating > 1 {
			return opts, fmt.Errorf("rating must be a number within 0..1, got %q", v)
		}
		opts.Rating = rating
	}

	if v := q.Get("grouping"); v != "" {
		grouping, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("grouping must be a boolean, got %q", v)
		}
		opts.Grouping = grouping
	}

	if v := q.Get("format"); v != "" {
		switch v {
		case export.FormatJSON, export.FormatGeoJSON, export.FormatYAML, export.FormatText:
			opts.Format = v
		default:
			return opts, fmt.Errorf("unknown format %q", v)
		}
	}

	if v := q.Get("log"); v != "" {
		opts.ParseLog, _ = strconv.ParseBool(v)
	}

	return opts, nil
}

// HandleRefSys serves the JSON list of reference systems in priority order.
func (s *ServerContext) HandleRefSys(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(s.Finder.Catalogue)
}

// HandleFavicon serves the site icon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(s.Favicon)
}

// HandleIndex serves the web page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if match := r.Header.Get("If-None-Match"); match == s.IndexETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", s.IndexETag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// Routes registers the handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/parse", s.HandleParse)
	mux.HandleFunc("/api/refsys", s.HandleRefSys)
	mux.HandleFunc("/favicon.svg", s.HandleFavicon)
	mux.HandleFunc("/", s.HandleIndex)
	return mux
}

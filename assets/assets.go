// Package assets embeds the web page of the HTTP service and minifies it
// when the service starts.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

//go:embed index.html.tpl style.css script.js icon.svg
var files embed.FS

// PageData fills the index template.
type PageData struct {
	CSS      string
	JS       string
	SVG      string
	Rating   float64
	Grouping bool
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}

func minified(m *minify.M, mime, name string) (string, error) {
	raw, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	out, err := m.String(mime, string(raw))
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", name, err)
	}
	return out, nil
}

// Icon returns the minified SVG icon.
func Icon() ([]byte, error) {
	out, err := minified(newMinifier(), "image/svg+xml", "icon.svg")
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Index renders the minified index page with the form defaults set to
// rating and grouping.
func Index(rating float64, grouping bool) ([]byte, error) {
	m := newMinifier()

	data := PageData{Rating: rating, Grouping: grouping}
	var err error
	if data.CSS, err = minified(m, "text/css", "style.css"); err != nil {
		return nil, err
	}
	if data.JS, err = minified(m, "text/javascript", "script.js"); err != nil {
		return nil, err
	}
	if data.SVG, err = minified(m, "image/svg+xml", "icon.svg"); err != nil {
		return nil, err
	}

	raw, err := files.ReadFile("index.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("read index template: %w", err)
	}
	tmpl, err := template.New("index").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render index template: %w", err)
	}

	out, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify index: %w", err)
	}
	return out, nil
}

package export

import (
	"github.com/aieuren/coordfinder/internal/finder"
)

// PointRecord is the serialized form of a found point.
type PointRecord struct {
	Text        string   `json:"text" yaml:"text"`
	Original    string   `json:"original" yaml:"original"`
	Context     string   `json:"context,omitempty" yaml:"context,omitempty"`
	RefSys      string   `json:"refsys" yaml:"refsys"`
	Unit        string   `json:"unit" yaml:"unit"`
	Diagnostics []string `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Latitude    float64  `json:"lat" yaml:"lat"`
	Longitude   float64  `json:"lon" yaml:"lon"`
	North       float64  `json:"north" yaml:"north"`
	East        float64  `json:"east" yaml:"east"`
	Rating      float64  `json:"rating" yaml:"rating"`
	MaxErrorN   float64  `json:"max_error_n" yaml:"max_error_n"`
	MaxErrorE   float64  `json:"max_error_e" yaml:"max_error_e"`
	Code        int      `json:"epsg,omitempty" yaml:"epsg,omitempty"`
	Line        int      `json:"line" yaml:"line"`
	Offset      int      `json:"offset" yaml:"offset"`
}

// UnusedRecord is a coordinate that did not end up in any point.
type UnusedRecord struct {
	Text   string  `json:"text" yaml:"text"`
	Reason string  `json:"reason" yaml:"reason"`
	Axis   string  `json:"axis" yaml:"axis"`
	Value  float64 `json:"value" yaml:"value"`
	Line   int     `json:"line" yaml:"line"`
}

// Report is the JSON and YAML document of one parsed text.
type Report struct {
	Points []PointRecord   `json:"points,omitempty" yaml:"points,omitempty"`
	Groups [][]PointRecord `json:"groups,omitempty" yaml:"groups,omitempty"`
	Unused []UnusedRecord  `json:"unused,omitempty" yaml:"unused,omitempty"`
	Log    string          `json:"log,omitempty" yaml:"log,omitempty"`
}

// NewPointRecord flattens a point. Positions are given both in the native
// reference system and in WGS84.
func NewPointRecord(p *finder.Point, opts Options) PointRecord {
	errN, errE := p.MaxErrors()

	rec := PointRecord{
		Text:        p.AsText(opts.Text),
		Original:    p.OriginalText(),
		Context:     p.Context(opts.Context),
		RefSys:      p.RefSys.Name,
		Code:        p.RefSys.Code,
		Unit:        p.RefSys.Unit.String(),
		Latitude:    p.Latitude(),
		Longitude:   p.Longitude(),
		Rating:      p.Rating(),
		MaxErrorN:   errN,
		MaxErrorE:   errE,
		Line:        p.Line(),
		Offset:      p.Offset(),
		Diagnostics: p.Diagnostics(),
	}
	if p.N != nil {
		rec.North = p.N.Value
	}
	if p.E != nil {
		rec.East = p.E.Value
	}

	return rec
}

// NewReport collects the points at or above opts.Rating. With grouping the
// points are reported per group instead of as a flat list.
func NewReport(res *finder.Result, opts Options) Report {
	var rep Report

	if opts.Grouping {
		for _, g := range res.Groups(opts.Rating) {
			records := make([]PointRecord, 0, len(g))
			for _, p := range g {
				records = append(records, NewPointRecord(p, opts))
			}
			rep.Groups = append(rep.Groups, records)
		}
	} else {
		for _, p := range res.Points(opts.Rating) {
			rep.Points = append(rep.Points, NewPointRecord(p, opts))
		}
	}

	for _, c := range res.UnusedCoords() {
		rep.Unused = append(rep.Unused, UnusedRecord{
			Text:   c.OriginalText(),
			Reason: c.FailReason,
			Axis:   c.Axis.String(),
			Value:  c.Value,
			Line:   c.Line(),
		})
	}

	if opts.ParseLog {
		rep.Log = res.Log()
	}

	return rep
}

package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aieuren/coordfinder/internal/geo"
)

func TestBoundingBox_Covers(t *testing.T) {
	box := geo.NewBoundingBox(49, 0, 75, 32)

	tests := []struct {
		name string
		n, e float64
		want bool
	}{
		{name: "inside", n: 58.8, e: 10.9, want: true},
		{name: "south-west corner", n: 49, e: 0, want: true},
		{name: "north-east corner", n: 75, e: 32, want: true},
		{name: "too far south", n: 48.99, e: 10, want: false},
		{name: "too far east", n: 60, e: 32.01, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, box.Covers(tt.n, tt.e))
		})
	}
}

func TestBoundingBox_Scale(t *testing.T) {
	box := geo.NewBoundingBox(0, 0, 100, 200).Scale(1.1, 1.25)

	assert.InDelta(t, -5, box.Nmin, 1e-9)
	assert.InDelta(t, 105, box.Nmax, 1e-9)
	assert.InDelta(t, -25, box.Emin, 1e-9)
	assert.InDelta(t, 225, box.Emax, 1e-9)
}

func TestBoundingBox_AsLatLngArray(t *testing.T) {
	corners := geo.NewBoundingBox(1, 2, 3, 4).AsLatLngArray()
	require.Len(t, corners, 4)
	assert.Equal(t, [2]float64{1, 2}, corners[0])
	assert.Equal(t, [2]float64{3, 4}, corners[2])
}

func TestCatalogue_MatchPriority(t *testing.T) {
	cat := geo.DefaultCatalogue()

	tests := []struct {
		name    string
		n, e    float64
		want    string
		ordered bool
		swapped bool
	}{
		{name: "northern europe before global", n: 58.8, e: 10.9, want: "WGS84 in northern Europe", ordered: true},
		{name: "global fallback", n: -33.9, e: 151.2, want: "WGS84", ordered: true},
		{name: "sweref", n: 6533947, e: 270746, want: "SWEREF99 TM", ordered: true},
		{name: "rt90", n: 6535000, e: 1270000, want: "RT90 2.5 gon V", ordered: true},
		{name: "swapped when unordered", n: 270746, e: 6533947, want: "SWEREF99 TM", swapped: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, swapped, ok := cat.Match(
				geo.AxisValue{Value: tt.n},
				geo.AxisValue{Value: tt.e},
				tt.ordered,
			)
			require.True(t, ok)
			assert.Equal(t, tt.want, rs.Name)
			assert.Equal(t, tt.swapped, swapped)
		})
	}
}

func TestCatalogue_MatchRejectsOutOfRange(t *testing.T) {
	_, _, ok := geo.DefaultCatalogue().Match(
		geo.AxisValue{Value: 95},
		geo.AxisValue{Value: 200},
		false,
	)
	assert.False(t, ok)
}

func TestCatalogue_MatchHonoursKnownAxes(t *testing.T) {
	cat := geo.DefaultCatalogue()

	_, _, ok := cat.Match(
		geo.AxisValue{Value: 10.9, Axis: geo.AxisEasting},
		geo.AxisValue{Value: 58.8, Axis: geo.AxisNorthing},
		true,
	)
	assert.False(t, ok)

	rs, swapped, ok := cat.Match(
		geo.AxisValue{Value: 10.9, Axis: geo.AxisEasting},
		geo.AxisValue{Value: 58.8, Axis: geo.AxisNorthing},
		false,
	)
	require.True(t, ok)
	assert.True(t, swapped)
	assert.Equal(t, geo.WGS84NorthernEurope.Name, rs.Name)
}

func TestCatalogue_Only(t *testing.T) {
	cat, err := geo.DefaultCatalogue().Only("wgs84", "SWEREF99 TM")
	require.NoError(t, err)
	require.Len(t, cat, 2)
	assert.Equal(t, "SWEREF99 TM", cat[0].Name)
	assert.Equal(t, "WGS84", cat[1].Name)

	_, err = geo.DefaultCatalogue().Only("EPSG:9999")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want geo.CoordDirection
	}{
		{"N", geo.DirectionNorth},
		{"nord", geo.DirectionNorth},
		{"s", geo.DirectionSouth},
		{"Söder", geo.DirectionSouth},
		{"Ö", geo.DirectionEast},
		{"ø", geo.DirectionEast},
		{"East", geo.DirectionEast},
		{"V", geo.DirectionWest},
		{"väst", geo.DirectionWest},
		{"", geo.DirectionUnknown},
		{"Q", geo.DirectionUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d := geo.ParseDirection(tt.in)
			assert.Equal(t, tt.want, d)
		})
	}

	assert.Equal(t, geo.AxisNorthing, geo.DirectionSouth.Axis())
	assert.Equal(t, geo.AxisEasting, geo.DirectionWest.Axis())
	assert.Equal(t, -1.0, geo.DirectionWest.Sign())
	assert.Equal(t, 1.0, geo.DirectionNorth.Sign())
}

func TestFormatUnit(t *testing.T) {
	assert.Equal(t, geo.UnitMeters, geo.FormatMeters.Unit())
	assert.Equal(t, geo.UnitDegrees, geo.FormatDegreesMinutesSeconds.Unit())
	assert.Equal(t, geo.UnitUnknown, geo.FormatPlain.Unit())
}

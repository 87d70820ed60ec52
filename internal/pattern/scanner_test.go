package pattern_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aieuren/coordfinder/internal/geo"
	"github.com/aieuren/coordfinder/internal/pattern"
	"github.com/aieuren/coordfinder/internal/textpos"
)

func scan(t *testing.T, text string) []*pattern.Snippet {
	t.Helper()

	snippets, _, err := pattern.Default().Scan(textpos.New(text))
	require.NoError(t, err)
	return snippets
}

type single struct {
	text    string
	pattern string
	value   float64
	letter  string
}

func TestScan_SingleAxis(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []single
	}{
		{
			name: "trailing attached letters",
			in:   "58.8N 10.9E",
			want: []single{
				{text: "58.8N", pattern: "degrees", value: 58.8, letter: "N"},
				{text: "10.9E", pattern: "degrees", value: 10.9, letter: "E"},
			},
		},
		{
			name: "leading attached letters",
			in:   "N58.8 E10.9",
			want: []single{
				{text: "N58.8", pattern: "degrees", value: 58.8, letter: "N"},
				{text: "E10.9", pattern: "degrees", value: 10.9, letter: "E"},
			},
		},
		{
			name: "leading letters keep to their own number",
			in:   "N 58.8 E 10.9",
			want: []single{
				{text: "N 58.8", pattern: "degrees", value: 58.8, letter: "N"},
				{text: "E 10.9", pattern: "degrees", value: 10.9, letter: "E"},
			},
		},
		{
			name: "comma decimals",
			in:   "58,8 och 10,9",
			want: []single{
				{text: "58,8", pattern: "degrees", value: 58.8},
				{text: "10,9", pattern: "degrees", value: 10.9},
			},
		},
		{
			name: "degrees and minutes with dash",
			in:   "57-43N 11-58E",
			want: []single{
				{text: "57-43N", pattern: "dm-dash", value: 57 + 43.0/60, letter: "N"},
				{text: "11-58E", pattern: "dm-dash", value: 11 + 58.0/60, letter: "E"},
			},
		},
		{
			name: "degrees and decimal minutes",
			in:   "58°54,0'N, 011°00,0'E",
			want: []single{
				{text: "58°54,0'N", pattern: "dm", value: 58.9, letter: "N"},
				{text: "011°00,0'E", pattern: "dm", value: 11, letter: "E"},
			},
		},
		{
			name: "degrees minutes seconds",
			in:   `59° 19' 44.2" N 18° 3' 53.7" E`,
			want: []single{
				{text: `59° 19' 44.2" N`, pattern: "dms", value: 59 + 19.0/60 + 44.2/3600, letter: "N"},
				{text: `18° 3' 53.7" E`, pattern: "dms", value: 18 + 3.0/60 + 53.7/3600, letter: "E"},
			},
		},
		{
			name: "degree symbol only",
			in:   "45°S 10°E",
			want: []single{
				{text: "45°S", pattern: "degrees-symbol", value: 45, letter: "S"},
				{text: "10°E", pattern: "degrees-symbol", value: 10, letter: "E"},
			},
		},
		{
			name: "semicolon separator",
			in:   "59.32894; 18.06491",
			want: []single{
				{text: "59.32894;", pattern: "degrees-semicolon", value: 59.32894},
				{text: "18.06491", pattern: "degrees", value: 18.06491},
			},
		},
		{
			name: "grid numbers",
			in:   "6533947, 270746",
			want: []single{
				{text: "6533947", pattern: "plain", value: 6533947},
				{text: "270746", pattern: "plain", value: 270746},
			},
		},
		{
			name: "grid prefix uses swedish axes",
			in:   "X: 6580000",
			want: []single{
				{text: "X: 6580000", pattern: "grid-single", value: 6580000, letter: "N"},
			},
		},
		{
			name: "negative after separator",
			in:   "-33.86, 151.21",
			want: []single{
				{text: "-33.86", pattern: "degrees", value: -33.86},
				{text: "151.21", pattern: "degrees", value: 151.21},
			},
		},
		{
			name: "letters inside words are ignored",
			in:   "is 58.8 as 10.9",
			want: []single{
				{text: "58.8", pattern: "degrees", value: 58.8},
				{text: "10.9", pattern: "degrees", value: 10.9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(t, tt.in)
			require.Len(t, got, len(tt.want))

			for i, w := range tt.want {
				s := got[i]
				assert.False(t, s.Dual)
				assert.Equal(t, w.text, s.Text)
				assert.Equal(t, w.pattern, s.Pattern)
				assert.InDelta(t, w.value, s.Value.Value, 1e-9)
				assert.Equal(t, w.letter, s.Value.Letter)
			}
		})
	}
}

func TestScan_DualAxis(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		pattern string
		north   float64
		east    float64
	}{
		{name: "compact dms", in: "591944N0180354E", pattern: "compact-dms", north: 59 + 19.0/60 + 44.0/3600, east: 18 + 3.0/60 + 54.0/3600},
		{name: "compact dm", in: "5830N01245E", pattern: "compact-dm", north: 58.5, east: 12.75},
		{name: "compact ddmm with decimals", in: "5930.5N-01815.2E", pattern: "compact-ddmm", north: 59 + 30.5/60, east: 18 + 15.2/60},
		{name: "plain ddmm", in: "5930 1815", pattern: "plain-ddmm", north: 59.5, east: 18.25},
		{name: "ddmm dash pair", in: "6230-1545", pattern: "dm-dash", north: 62.5, east: 15.75},
		{name: "wkt", in: "POINT(18.06491 59.32894)", pattern: "wkt", north: 59.32894, east: 18.06491},
		{name: "geojson", in: `{"type":"Point","coordinates":[18.06491,59.32894]}`, pattern: "geojson", north: 59.32894, east: 18.06491},
		{name: "gml pos", in: "<gml:pos>59.32894 18.06491</gml:pos>", pattern: "gml-pos", north: 59.32894, east: 18.06491},
		{name: "gml coordinates", in: "<gml:coordinates>18.06491,59.32894</gml:coordinates>", pattern: "gml-coordinates", north: 59.32894, east: 18.06491},
		{name: "map url", in: "https://www.google.com/maps/@59.32894,18.06491,15z", pattern: "url", north: 59.32894, east: 18.06491},
		{name: "url params", in: "karta?y=6580821&x=674032", pattern: "url-params", north: 6580821, east: 674032},
		{name: "grid pair", in: "N: 6504089 E: 278978", pattern: "grid-pair", north: 6504089, east: 278978},
		{name: "grid pair swedish x y", in: "Y: 1570600, X: 7546077", pattern: "grid-pair", north: 7546077, east: 1570600},
		{name: "lat long labels", in: "Lat: 59.32894 Long: 18.06491", pattern: "lat-long", north: 59.32894, east: 18.06491},
		{name: "verbal", in: "Norr 59 grader 19,8 minuter Öst 18 grader 3,9 minuter", pattern: "verbal", north: 59.33, east: 18.065},
		{name: "verbal west", in: "North 40 degrees 30 minutes West 73 degrees 15 minutes", pattern: "verbal", north: 40.5, east: -73.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scan(t, tt.in)
			require.Len(t, got, 1)

			s := got[0]
			assert.True(t, s.Dual)
			assert.Equal(t, tt.pattern, s.Pattern)
			assert.InDelta(t, tt.north, s.North.Value, 1e-9)
			assert.InDelta(t, tt.east, s.East.Value, 1e-9)
		})
	}
}

func TestScan_NonCoordinates(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "empty", in: ""},
		{name: "iso date", in: "2024-01-15"},
		{name: "phone number", in: "08-123 45 67"},
		{name: "short integers", in: "123 456 789"},
		{name: "temperature", in: "It was 21°C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, scan(t, tt.in))
		})
	}
}

func TestScan_RejectedMatchesAreReported(t *testing.T) {
	_, rejected, err := pattern.Default().Scan(textpos.New("08-123 45 67"))
	require.NoError(t, err)
	require.NotEmpty(t, rejected)
	assert.Equal(t, "dm-dash", rejected[0].Pattern)
	assert.Equal(t, 0, rejected[0].Offset)
}

func TestScan_MinutesOutOfRange(t *testing.T) {
	_, rejected, err := pattern.Default().Scan(textpos.New("1990-2000"))
	require.NoError(t, err)
	require.NotEmpty(t, rejected)
}

func TestScan_PositionsAgainstOriginalText(t *testing.T) {
	text := "Start\r\n  Pos:   59.1   18.2\nEnd"
	got := scan(t, text)
	require.Len(t, got, 2)

	assert.Equal(t, "59.1", got[0].Text)
	assert.Equal(t, 16, got[0].Offset)
	assert.Equal(t, 20, got[0].End)
	assert.Equal(t, 1, got[0].Line)
	assert.Equal(t, "Pos:", got[0].TextBefore(0, false))
	assert.Equal(t, "18.2", got[0].TextAfter(0, false))
	assert.Equal(t, "59.1   18.2", got[0].Source(got[0].Offset, got[1].End))
}

func TestScan_StructuredBeatsGenericOverlap(t *testing.T) {
	got := scan(t, "Geometry POINT(313096 6353860) here")
	require.Len(t, got, 1)
	assert.Equal(t, "wkt", got[0].Pattern)
	assert.Equal(t, "meters", got[0].Format.String())
}

func TestLibrary_Only(t *testing.T) {
	lib, err := pattern.Default().Only("plain", "degrees")
	require.NoError(t, err)

	names := make([]string, 0, 2)
	for _, p := range lib.Patterns() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"degrees", "plain"}, names)

	_, err = pattern.Default().Only("nope")
	assert.Error(t, err)
}

func TestLibrary_DefaultOrder(t *testing.T) {
	patterns := pattern.Default().Patterns()
	require.NotEmpty(t, patterns)
	assert.Equal(t, "url", patterns[0].Name)
	assert.Equal(t, "plain", patterns[len(patterns)-1].Name)
}

func TestSnippet_DebugText(t *testing.T) {
	got := scan(t, "N 58.8")
	require.Len(t, got, 1)
	assert.Contains(t, got[0].DebugText("  "), "text: 'N 58.8'")
	assert.Contains(t, got[0].DebugText(""), "direction: N")
}

func slashPair(groups []string) (pattern.Component, pattern.Component, error) {
	n, err := strconv.ParseFloat(groups[1], 64)
	if err != nil {
		return pattern.Component{}, pattern.Component{}, err
	}
	e, err := strconv.ParseFloat(groups[2], 64)
	if err != nil {
		return pattern.Component{}, pattern.Component{}, err
	}
	if e == 0 {
		return pattern.Component{}, pattern.Component{}, errors.New("zero easting")
	}
	return pattern.Component{Value: n}, pattern.Component{Value: e}, nil
}

func TestLibrary_With(t *testing.T) {
	lib, err := new(pattern.Library).With(pattern.Custom{
		Name:   "slash",
		Format: geo.FormatDecimalDegrees,
		Expr:   `Q(\d+)/(\d+)`,
		Decode: slashPair,
	})
	require.NoError(t, err)

	snippets, rejected, err := lib.Scan(textpos.New("at Q58/11 and Q59/0"))
	require.NoError(t, err)
	require.Len(t, snippets, 1)

	s := snippets[0]
	assert.Equal(t, "Q58/11", s.Text)
	assert.Equal(t, "slash", s.Pattern)
	assert.True(t, s.Dual)
	assert.InDelta(t, 58, s.North.Value, 1e-9)
	assert.InDelta(t, 11, s.East.Value, 1e-9)

	require.Len(t, rejected, 1)
	assert.Equal(t, "Q59/0", rejected[0].Text)
}

func TestLibrary_WithErrors(t *testing.T) {
	tests := []struct {
		name   string
		custom pattern.Custom
	}{
		{name: "duplicate name", custom: pattern.Custom{Name: "url", Expr: `x`, Decode: slashPair}},
		{name: "no decoder", custom: pattern.Custom{Name: "slash", Expr: `x`}},
		{name: "bad expression", custom: pattern.Custom{Name: "slash", Expr: `(`, Decode: slashPair}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pattern.Default().With(tt.custom)
			assert.Error(t, err)
		})
	}
}

func TestLibrary_ScanFuncDeliversInOrder(t *testing.T) {
	var texts []string
	_, err := pattern.Default().ScanFunc(textpos.New("N 58.8 E 10.9"), func(s *pattern.Snippet) {
		texts = append(texts, s.Text)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"N 58.8", "E 10.9"}, texts)
}

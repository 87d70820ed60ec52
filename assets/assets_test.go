package assets

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	page, err := Index(0.7, true)
	require.NoError(t, err)

	html := string(page)
	assert.Contains(t, html, "Coordinate finder")
	assert.Contains(t, html, "/api/parse")
	assert.Contains(t, html, "0.7")
	assert.NotContains(t, html, "{{")
	assert.NotContains(t, html, "map pin")

	raw, err := files.ReadFile("index.html.tpl")
	require.NoError(t, err)
	assert.Less(t, strings.Count(html, "\n"), strings.Count(string(raw), "\n"))
}

func TestIndex_Grouping(t *testing.T) {
	grouped, err := Index(0.5, true)
	require.NoError(t, err)
	flat, err := Index(0.5, false)
	require.NoError(t, err)

	assert.Greater(t, len(grouped), len(flat))
}

func TestIcon(t *testing.T) {
	icon, err := Icon()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(icon), "<svg"))
	assert.NotContains(t, string(icon), "<!--")
}

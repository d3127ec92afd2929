package site

import (
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_RenderPage(t *testing.T) {
	tpl, err := Templates()
	require.NoError(t, err)

	content := DefaultContent("Avuncular Group", "A thoughtful collective.", "info@avunculargroup.com")
	page := NewPage(content, "https://avunculargroup.com", 2026, Form{
		Endpoint: "/api/contact",
		Rules:    `[{"field":"name","type":"min","min":2,"message":"Please share your name."}]`,
	})

	var sb strings.Builder
	require.NoError(t, tpl.ExecuteTemplate(&sb, "index.html", page))
	html := sb.String()

	assert.Contains(t, html, "<title>Avuncular Group</title>")
	assert.Contains(t, html, `<link rel="canonical" href="https://avunculargroup.com/">`)
	assert.Contains(t, html, `content="https://avunculargroup.com/static/ag-preview.png"`)
	assert.Contains(t, html, `<meta name="twitter:card" content="summary_large_image">`)
	assert.Contains(t, html, `<meta name="apple-mobile-web-app-title" content="Avuncular">`)
	assert.Contains(t, html, "Bitcoin Treasury Solutions")
	assert.Contains(t, html, "Aussie Bitcoin Merchants")
	assert.Contains(t, html, "BoltBar")
	assert.Contains(t, html, "&copy; 2026 Avuncular Group. All rights reserved.")
	// JSON attributes are entity-escaped
	assert.Contains(t, html, `data-rules="[{&#34;field&#34;:&#34;name&#34;`)
}

func TestStatic_ServesAssets(t *testing.T) {
	for _, name := range []string{"/contact.js", "/styles.css", "/ag-preview.png"} {
		f, err := Static().Open(name)
		require.NoError(t, err, name)
		data, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.NotEmpty(t, data, name)
		require.NoError(t, f.Close())
	}
}

func TestManifest_IsValidJSON(t *testing.T) {
	var m struct {
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
		StartURL  string `json:"start_url"`
	}
	require.NoError(t, json.Unmarshal(Manifest(), &m))
	assert.Equal(t, "Avuncular Group", m.Name)
	assert.Equal(t, "Avuncular", m.ShortName)
	assert.Equal(t, "/", m.StartURL)
}

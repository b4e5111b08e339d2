package brand

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigNotFound))
	assert.False(t, errors.Is(err, ErrConfigParse))

	var ce *ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Contains(t, ce.Path, "missing.json")
}

func TestLoadParseError(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"json", "brand.json", `{"colors": [`},
		{"yaml", "brand.yaml", "colors: [unclosed"},
		{"json wrong type", "brand.json", `{"colors": 3}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigParse))

			var ce *ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, path, ce.Path)
		})
	}
}

func TestLoadResolvesLogoPaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "white.png")
	path := writeFile(t, dir, "brand.json", `{
		"colors": {"navy": "#022791"},
		"logo_assets": {
			"colored_horizontal_png": "assets/logo.png",
			"white_horizontal_png": "`+filepath.ToSlash(abs)+`"
		}
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	wantDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wantDir, "assets", "logo.png"), cfg.LogoAssets["colored_horizontal_png"])
	assert.Equal(t, abs, cfg.LogoAssets["white_horizontal_png"])
}

func TestLoadYAMLAliases(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brand.yml", `
colors:
  navy: "#022791"
type_scale:
  h1: 40
spacing:
  margin: 0.5
button_style:
  text_size: body
typography:
  headline_font: Inter
identity:
  name: Acme
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "#022791", cfg.Colors["navy"])
	assert.Equal(t, 40.0, cfg.TypeScalePt["h1"])
	assert.Equal(t, 0.5, cfg.SpacingInches["margin"])
	assert.Equal(t, SizeRef{Name: "body"}, cfg.ButtonStyle.TextSize)
	assert.Equal(t, "Inter", cfg.Typography.HeadlineFont)
	assert.Equal(t, "Acme", cfg.Identity.Name)
}

func TestLoadPrefersLongKeys(t *testing.T) {
	cfg, err := Parse([]byte(`{"type_scale_pt": {"h1": 50}, "type_scale": {"h1": 10}}`), FormatJSON, "")
	require.NoError(t, err)
	assert.Equal(t, 50.0, cfg.TypeScalePt["h1"])
}

func TestSizeRefJSON(t *testing.T) {
	tests := []struct {
		in   string
		want SizeRef
	}{
		{`{"button_style": {"text_size": 13}}`, SizeRef{Pt: 13}},
		{`{"button_style": {"text_size": "15"}}`, SizeRef{Pt: 15}},
		{`{"button_style": {"text_size": "small"}}`, SizeRef{Name: "small"}},
		{`{"button_style": {}}`, SizeRef{}},
	}
	for _, tt := range tests {
		cfg, err := Parse([]byte(tt.in), FormatJSON, "")
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, cfg.ButtonStyle.TextSize, tt.in)
	}

	_, err := Parse([]byte(`{"button_style": {"text_size": [1]}}`), FormatJSON, "")
	assert.True(t, errors.Is(err, ErrConfigParse))
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("a/b.YAML"))
	assert.Equal(t, FormatYAML, FormatFromPath("b.yml"))
	assert.Equal(t, FormatJSON, FormatFromPath("b.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("brand"))
}

// Package brand loads brand token files and resolves them into an
// immutable Theme.
package brand

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the raw brand token set as authored. It is not mutated after
// Load returns.
type Config struct {
	Colors          map[string]string       `json:"colors" yaml:"colors"`
	ColorRoles      map[string]string       `json:"color_roles" yaml:"color_roles"`
	Gradient        map[string]GradientSpec `json:"gradient" yaml:"gradient"`
	Typography      Typography              `json:"typography" yaml:"typography"`
	TypeScalePt     map[string]float64      `json:"type_scale_pt" yaml:"type_scale_pt"`
	SpacingInches   map[string]float64      `json:"spacing_inches" yaml:"spacing_inches"`
	CardStyle       CardStyleSpec           `json:"card_style" yaml:"card_style"`
	ButtonStyle     ButtonStyleSpec         `json:"button_style" yaml:"button_style"`
	LogoRules       LogoRules               `json:"logo_rules" yaml:"logo_rules"`
	LogoAssets      map[string]string       `json:"logo_assets" yaml:"logo_assets"`
	WebsiteCues     map[string]any          `json:"website_cues" yaml:"website_cues"`
	SlideDimensions SlideDimensions         `json:"slide_dimensions" yaml:"slide_dimensions"`
	AccentRotation  []string                `json:"accent_rotation" yaml:"accent_rotation"`
	Identity        Identity                `json:"identity" yaml:"identity"`
}

// GradientSpec is a named two-stop gradient. From and To are color names
// or literal hex values.
type GradientSpec struct {
	From  string  `json:"from" yaml:"from"`
	To    string  `json:"to" yaml:"to"`
	Angle float64 `json:"angle" yaml:"angle"`
}

type Typography struct {
	HeadlineFont string `json:"headline_font" yaml:"headline_font"`
	BodyFont     string `json:"body_font" yaml:"body_font"`
	UtilityFont  string `json:"utility_font" yaml:"utility_font"`
	Fallback     string `json:"fallback" yaml:"fallback"`
}

type CardStyleSpec struct {
	RadiusPt         *float64 `json:"radius_pt" yaml:"radius_pt"`
	ShadowAlphaPct   *float64 `json:"shadow_alpha_pct" yaml:"shadow_alpha_pct"`
	ShadowBlurPt     *float64 `json:"shadow_blur_pt" yaml:"shadow_blur_pt"`
	ShadowDistancePt *float64 `json:"shadow_distance_pt" yaml:"shadow_distance_pt"`
	FillColor        string   `json:"fill_color" yaml:"fill_color"`
}

type ButtonStyleSpec struct {
	RadiusPt  *float64 `json:"radius_pt" yaml:"radius_pt"`
	FillColor string   `json:"fill_color" yaml:"fill_color"`
	TextColor string   `json:"text_color" yaml:"text_color"`
	TextSize  SizeRef  `json:"text_size" yaml:"text_size"`
}

type LogoRules struct {
	AllowedPlacements   []string `json:"allowed_placements" yaml:"allowed_placements"`
	ForbiddenPlacements []string `json:"forbidden_placements" yaml:"forbidden_placements"`
	MinWidthInches      *float64 `json:"min_width_inches" yaml:"min_width_inches"`
	ClearspaceUnit      string   `json:"clearspace_unit" yaml:"clearspace_unit"`
}

type SlideDimensions struct {
	WidthInches  *float64 `json:"width_inches" yaml:"width_inches"`
	HeightInches *float64 `json:"height_inches" yaml:"height_inches"`
	Aspect       string   `json:"aspect" yaml:"aspect"`
}

// Identity is the organisation the deck speaks for.
type Identity struct {
	Name         string `json:"name" yaml:"name"`
	Website      string `json:"website" yaml:"website"`
	ContactEmail string `json:"contact_email" yaml:"contact_email"`
}

// SizeRef is a point size given either as a number or as the name of a
// type-scale entry.
type SizeRef struct {
	Name string
	Pt   float64
}

// IsZero reports whether the reference was left unset.
func (s SizeRef) IsZero() bool { return s.Name == "" && s.Pt == 0 }

func (s *SizeRef) set(raw string) {
	raw = strings.TrimSpace(raw)
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		*s = SizeRef{Pt: v}
		return
	}
	*s = SizeRef{Name: raw}
}

func (s *SizeRef) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case float64:
		*s = SizeRef{Pt: t}
	case string:
		s.set(t)
	case nil:
		*s = SizeRef{}
	default:
		return fmt.Errorf("text size must be a number or a type-scale name, got %s", data)
	}
	return nil
}

func (s *SizeRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: text size must be a scalar", node.Line)
	}
	s.set(node.Value)
	return nil
}

// rawConfig accepts the short aliases of the scale and spacing tables.
type rawConfig struct {
	Config    `yaml:",inline"`
	TypeScale map[string]float64 `json:"type_scale" yaml:"type_scale"`
	Spacing   map[string]float64 `json:"spacing" yaml:"spacing"`
}

// Format selects the decoder for a configuration source.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads and parses the configuration at path. Relative logo asset
// paths are resolved against the directory holding the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ConfigError{Path: path, Kind: ErrConfigNotFound}
		}
		return nil, &ConfigError{Path: path, Kind: ErrConfigParse, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Kind: ErrConfigParse, Err: err}
	}
	cfg, err := Parse(data, FormatFromPath(path), filepath.Dir(abs))
	if err != nil {
		var ce *ConfigError
		if errors.As(err, &ce) {
			ce.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes an in-memory configuration. baseDir anchors relative logo
// asset paths; an empty baseDir leaves them as written.
func Parse(data []byte, format Format, baseDir string) (*Config, error) {
	var raw rawConfig
	var err error
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(false)
		err = dec.Decode(&raw)
	default:
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, &ConfigError{Path: "<memory>", Kind: ErrConfigParse, Err: err}
	}

	cfg := raw.Config
	if cfg.TypeScalePt == nil && raw.TypeScale != nil {
		cfg.TypeScalePt = raw.TypeScale
	}
	if cfg.SpacingInches == nil && raw.Spacing != nil {
		cfg.SpacingInches = raw.Spacing
	}

	if len(cfg.LogoAssets) > 0 {
		resolved := make(map[string]string, len(cfg.LogoAssets))
		for key, p := range cfg.LogoAssets {
			if p != "" && baseDir != "" && !filepath.IsAbs(p) {
				p = filepath.Join(baseDir, filepath.FromSlash(p))
			}
			resolved[key] = p
		}
		cfg.LogoAssets = resolved
	}
	return &cfg, nil
}

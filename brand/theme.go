package brand

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/VantageDataChat/brandeck/primitive"
)

// Semantic color roles.
const (
	RolePrimary         = "primary"
	RoleSecondary       = "secondary"
	RoleAccentWarm      = "accent_warm"
	RoleAccentHighlight = "accent_highlight"
	RoleTextHeading     = "text_heading"
	RoleTextBody        = "text_body"
	RoleTextDark        = "text_dark"
	RoleTextInverse     = "text_inverse"
	RoleBackground      = "background"
	RoleBackgroundTint  = "background_tint"
	RolePlaceholderTint = "placeholder_tint"
	RoleSurface         = "surface"
)

// defaultRoles maps each role to a palette name or literal hex.
var defaultRoles = map[string]string{
	RolePrimary:         "night_navy",
	RoleSecondary:       "day_blue",
	RoleAccentWarm:      "salmon",
	RoleAccentHighlight: "yellow",
	RoleTextHeading:     "night_navy",
	RoleTextBody:        "gray",
	RoleTextDark:        "black",
	RoleTextInverse:     "white",
	RoleBackground:      "white",
	RoleBackgroundTint:  "#F7F8FC",
	RolePlaceholderTint: "#E8EDFB",
	RoleSurface:         "white",
}

// canonicalAccents is the default accent cycle.
var canonicalAccents = []string{RoleSecondary, RolePrimary, RoleAccentHighlight, RoleAccentWarm}

var defaultTypography = Typography{
	HeadlineFont: "Inter Tight",
	BodyFont:     "Inter Tight",
	UtilityFont:  "Roboto",
	Fallback:     "Arial",
}

var defaultTypeScale = map[string]float64{
	"h1": 44, "h2": 32, "h3": 24, "h4": 18,
	"body": 14, "body_lg": 18, "small": 11, "caption": 10,
}

var defaultSpacing = map[string]float64{
	"margin": 0.6, "gutter": 0.35, "section_pad": 0.5,
}

// DefaultPlacements are the logo placements allowed when the brand does
// not list its own.
var DefaultPlacements = []Placement{UpperLeft, LowerLeft, UpperCenter, LowerCenter}

// Placement is a logo anchor position such as "upper-left".
type Placement string

const (
	UpperLeft   Placement = "upper-left"
	LowerLeft   Placement = "lower-left"
	UpperCenter Placement = "upper-center"
	LowerCenter Placement = "lower-center"
	UpperRight  Placement = "upper-right"
	LowerRight  Placement = "lower-right"
)

// IsRightAligned reports whether p anchors to the right edge, which the
// brand never permits for logos.
func (p Placement) IsRightAligned() bool {
	return strings.Contains(strings.ToLower(string(p)), "right")
}

// IsBottom reports whether p anchors to the bottom edge.
func (p Placement) IsBottom() bool {
	return strings.HasPrefix(strings.ToLower(string(p)), "lower")
}

// IsCentered reports whether p is horizontally centered.
func (p Placement) IsCentered() bool {
	return strings.HasSuffix(strings.ToLower(string(p)), "center")
}

// Fonts are the resolved typeface names.
type Fonts struct {
	Headline string
	Body     string
	Utility  string
	Fallback string
}

// Spacing is the layout rhythm, in inches.
type Spacing struct {
	Margin     float64
	Gutter     float64
	SectionPad float64
}

// CardStyle is the resolved card preset.
type CardStyle struct {
	RadiusPt         float64
	ShadowAlphaPct   float64
	ShadowBlurPt     float64
	ShadowDistancePt float64
	Fill             primitive.RGB
}

// ButtonStyle is the resolved button preset.
type ButtonStyle struct {
	RadiusPt float64
	Fill     primitive.RGB
	Text     primitive.RGB
	TextSize int
}

// Gradient is a resolved two-stop gradient preset.
type Gradient struct {
	From, To primitive.RGB
	Angle    float64
}

// Theme is the fully resolved, read-only rendering configuration. It has
// no mutators; every accessor returns a copy.
type Theme struct {
	palette      map[string]primitive.RGB
	roles        map[string]primitive.RGB
	fonts        Fonts
	typeScale    map[string]int
	spacing      Spacing
	card         CardStyle
	button       ButtonStyle
	gradients    map[string]Gradient
	placements   []Placement
	minLogoWidth float64
	logoAssets   map[string]string
	slideW       float64
	slideH       float64
	identity     Identity
	accents      []primitive.RGB
	websiteCues  map[string]any
}

type buildOptions struct {
	log zerolog.Logger
}

// Option configures BuildTheme.
type Option func(*buildOptions)

// WithLogger routes resolution diagnostics to log.
func WithLogger(log zerolog.Logger) Option {
	return func(o *buildOptions) { o.log = log }
}

// resolver resolves references against the palette and roles built so
// far.
type resolver struct {
	palette map[string]primitive.RGB
	roles   map[string]primitive.RGB
	log     zerolog.Logger
}

// color resolves a literal hex value, a palette name, or a role name, in
// that order.
func (r *resolver) color(ref, usedBy string) (primitive.RGB, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "#") {
		c, err := primitive.ParseHex(ref)
		if err != nil {
			r.log.Debug().Err(err).Str("ref", usedBy).Msg("malformed color, using black")
		}
		return c, nil
	}
	if c, ok := r.palette[ref]; ok {
		return c, nil
	}
	if c, ok := r.roles[ref]; ok {
		return c, nil
	}
	return primitive.Black, &MissingTokenError{Category: "color", Name: ref, Ref: usedBy}
}

// BuildTheme resolves cfg into a Theme. A reference to a color, font,
// type-scale entry or gradient that does not exist fails with a
// *MissingTokenError. Malformed hex values degrade to black.
func BuildTheme(cfg *Config, opts ...Option) (*Theme, error) {
	o := buildOptions{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With().Str("component", "brand").Logger()

	r := &resolver{
		palette: make(map[string]primitive.RGB, len(cfg.Colors)),
		roles:   make(map[string]primitive.RGB),
		log:     log,
	}
	for _, name := range sortedKeys(cfg.Colors) {
		c, err := primitive.ParseHex(cfg.Colors[name])
		if err != nil {
			log.Debug().Err(err).Str("color", name).Msg("malformed color, using black")
		}
		r.palette[name] = c
	}

	t := &Theme{palette: r.palette, roles: r.roles}

	roleRefs := make(map[string]string, len(defaultRoles)+len(cfg.ColorRoles))
	for k, v := range defaultRoles {
		roleRefs[k] = v
	}
	for k, v := range cfg.ColorRoles {
		roleRefs[k] = v
	}
	for _, role := range sortedKeys(roleRefs) {
		ref := roleRefs[role]
		if strings.HasPrefix(ref, "#") {
			c, _ := r.color(ref, "color_roles."+role)
			r.roles[role] = c
			continue
		}
		c, ok := r.palette[ref]
		if !ok {
			return nil, &MissingTokenError{Category: "color", Name: ref, Ref: "color_roles." + role}
		}
		r.roles[role] = c
	}

	t.fonts = resolveFonts(cfg.Typography)
	var err error

	t.typeScale = make(map[string]int, len(defaultTypeScale))
	for k, v := range merged(defaultTypeScale, cfg.TypeScalePt) {
		t.typeScale[k] = int(math.Round(v))
	}
	sp := merged(defaultSpacing, cfg.SpacingInches)
	t.spacing = Spacing{Margin: sp["margin"], Gutter: sp["gutter"], SectionPad: sp["section_pad"]}

	if t.card, err = resolveCard(r, cfg.CardStyle); err != nil {
		return nil, err
	}
	if t.button, err = resolveButton(r, cfg.ButtonStyle, t.typeScale); err != nil {
		return nil, err
	}

	specs := map[string]GradientSpec{"hero": {From: RolePrimary, To: RoleSecondary, Angle: 135}}
	for k, v := range cfg.Gradient {
		specs[k] = v
	}
	t.gradients = make(map[string]Gradient, len(specs))
	for _, name := range sortedKeys(specs) {
		g := specs[name]
		from, err := r.color(g.From, "gradient."+name+".from")
		if err != nil {
			return nil, err
		}
		to, err := r.color(g.To, "gradient."+name+".to")
		if err != nil {
			return nil, err
		}
		t.gradients[name] = Gradient{From: from, To: to, Angle: g.Angle}
	}

	t.placements = resolvePlacements(cfg.LogoRules, log)
	t.minLogoWidth = deref(cfg.LogoRules.MinWidthInches, 1.04)

	t.logoAssets = make(map[string]string, len(cfg.LogoAssets))
	for k, v := range cfg.LogoAssets {
		t.logoAssets[k] = v
	}

	t.slideW = deref(cfg.SlideDimensions.WidthInches, 13.333)
	t.slideH = deref(cfg.SlideDimensions.HeightInches, 7.5)
	t.identity = cfg.Identity

	accentRefs := cfg.AccentRotation
	if len(accentRefs) == 0 {
		accentRefs = canonicalAccents
	}
	for i, ref := range accentRefs {
		c, err := r.color(ref, fmt.Sprintf("accent_rotation[%d]", i))
		if err != nil {
			return nil, err
		}
		t.accents = append(t.accents, c)
	}

	t.websiteCues = make(map[string]any, len(cfg.WebsiteCues))
	for k, v := range cfg.WebsiteCues {
		t.websiteCues[k] = v
	}

	log.Debug().
		Int("colors", len(t.palette)).
		Int("accents", len(t.accents)).
		Str("headline_font", t.fonts.Headline).
		Msg("theme built")
	return t, nil
}

// resolveFonts applies the fallback chain. An omitted typography block
// takes the built-in fonts; built-in names close the chain otherwise.
func resolveFonts(ty Typography) Fonts {
	f := Fonts{
		Headline: strings.TrimSpace(ty.HeadlineFont),
		Body:     strings.TrimSpace(ty.BodyFont),
		Utility:  strings.TrimSpace(ty.UtilityFont),
		Fallback: strings.TrimSpace(ty.Fallback),
	}
	if f == (Fonts{}) {
		return Fonts{
			Headline: defaultTypography.HeadlineFont,
			Body:     defaultTypography.BodyFont,
			Utility:  defaultTypography.UtilityFont,
			Fallback: defaultTypography.Fallback,
		}
	}
	if f.Fallback == "" {
		f.Fallback = defaultTypography.Fallback
	}
	if f.Headline == "" {
		f.Headline = f.Fallback
	}
	if f.Body == "" {
		f.Body = f.Fallback
	}
	if f.Utility == "" {
		f.Utility = f.Body
	}
	return f
}

func resolveCard(r *resolver, spec CardStyleSpec) (CardStyle, error) {
	card := CardStyle{
		RadiusPt:         deref(spec.RadiusPt, 12),
		ShadowAlphaPct:   deref(spec.ShadowAlphaPct, 15),
		ShadowBlurPt:     deref(spec.ShadowBlurPt, 12),
		ShadowDistancePt: deref(spec.ShadowDistancePt, 3),
	}
	ref := spec.FillColor
	if ref == "" {
		ref = RoleSurface
	}
	fill, err := r.color(ref, "card_style.fill_color")
	card.Fill = fill
	return card, err
}

func resolveButton(r *resolver, spec ButtonStyleSpec, scale map[string]int) (ButtonStyle, error) {
	b := ButtonStyle{RadiusPt: deref(spec.RadiusPt, 20), TextSize: 13}
	fillRef, textRef := spec.FillColor, spec.TextColor
	if fillRef == "" {
		fillRef = RoleSecondary
	}
	if textRef == "" {
		textRef = RoleTextInverse
	}
	var err error
	if b.Fill, err = r.color(fillRef, "button_style.fill_color"); err != nil {
		return b, err
	}
	if b.Text, err = r.color(textRef, "button_style.text_color"); err != nil {
		return b, err
	}
	switch {
	case spec.TextSize.Name != "":
		size, ok := scale[spec.TextSize.Name]
		if !ok {
			return b, &MissingTokenError{Category: "type_scale", Name: spec.TextSize.Name, Ref: "button_style.text_size"}
		}
		b.TextSize = size
	case spec.TextSize.Pt > 0:
		b.TextSize = int(math.Round(spec.TextSize.Pt))
	}
	return b, nil
}

func resolvePlacements(rules LogoRules, log zerolog.Logger) []Placement {
	forbidden := make(map[Placement]bool, len(rules.ForbiddenPlacements))
	for _, p := range rules.ForbiddenPlacements {
		forbidden[Placement(strings.ToLower(strings.TrimSpace(p)))] = true
	}
	candidates := DefaultPlacements
	if rules.AllowedPlacements != nil {
		candidates = make([]Placement, 0, len(rules.AllowedPlacements))
		for _, p := range rules.AllowedPlacements {
			candidates = append(candidates, Placement(strings.ToLower(strings.TrimSpace(p))))
		}
	}
	out := make([]Placement, 0, len(candidates))
	for _, p := range candidates {
		switch {
		case p.IsRightAligned():
			log.Warn().Str("placement", string(p)).Msg("right-aligned logo placement ignored")
		case forbidden[p]:
			log.Warn().Str("placement", string(p)).Msg("placement is both allowed and forbidden, ignoring")
		default:
			out = append(out, p)
		}
	}
	return out
}

func merged(defaults, overrides map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func deref(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// --- accessors ---

// Role returns the color bound to a semantic role, or black when the role
// is unknown.
func (t *Theme) Role(role string) primitive.RGB {
	return t.roles[role]
}

// Color resolves a literal hex, palette name or role name.
func (t *Theme) Color(ref string) (primitive.RGB, bool) {
	r := &resolver{palette: t.palette, roles: t.roles, log: zerolog.Nop()}
	c, err := r.color(ref, "")
	return c, err == nil
}

// Palette returns a copy of the named brand colors.
func (t *Theme) Palette() map[string]primitive.RGB {
	out := make(map[string]primitive.RGB, len(t.palette))
	for k, v := range t.palette {
		out[k] = v
	}
	return out
}

// Roles returns a copy of the role table.
func (t *Theme) Roles() map[string]primitive.RGB {
	out := make(map[string]primitive.RGB, len(t.roles))
	for k, v := range t.roles {
		out[k] = v
	}
	return out
}

func (t *Theme) Fonts() Fonts        { return t.fonts }
func (t *Theme) Spacing() Spacing    { return t.spacing }
func (t *Theme) Card() CardStyle     { return t.card }
func (t *Theme) Button() ButtonStyle { return t.button }
func (t *Theme) Identity() Identity  { return t.identity }

// TypeSize returns the point size of a type-scale entry, or 0.
func (t *Theme) TypeSize(name string) int {
	return t.typeScale[name]
}

// TypeScale returns a copy of the type scale.
func (t *Theme) TypeScale() map[string]int {
	out := make(map[string]int, len(t.typeScale))
	for k, v := range t.typeScale {
		out[k] = v
	}
	return out
}

// Gradient returns a named gradient preset.
func (t *Theme) Gradient(name string) (Gradient, bool) {
	g, ok := t.gradients[name]
	return g, ok
}

// AllowedPlacements returns the permitted logo placements.
func (t *Theme) AllowedPlacements() []Placement {
	return append([]Placement(nil), t.placements...)
}

// PlacementAllowed reports whether the brand permits p.
func (t *Theme) PlacementAllowed(p Placement) bool {
	for _, a := range t.placements {
		if a == p {
			return true
		}
	}
	return false
}

// MinLogoWidthInches is the smallest width a logo may be drawn at.
func (t *Theme) MinLogoWidthInches() float64 { return t.minLogoWidth }

// logoAliases lists the asset keys tried for each logo variant.
var logoAliases = map[string][]string{
	"colored":       {"colored", "colored_horizontal", "colored_horizontal_png"},
	"white":         {"white", "white_horizontal", "white_horizontal_png"},
	"black":         {"black", "black_horizontal", "black_horizontal_png"},
	"favicon":       {"favicon", "favicon_colored", "favicon_colored_png"},
	"favicon_white": {"favicon_white", "favicon_white_png"},
	"vertical":      {"vertical", "colored_vertical", "colored_vertical_png"},
}

// LogoAsset returns the absolute path of a logo variant, or "".
func (t *Theme) LogoAsset(variant string) string {
	keys, ok := logoAliases[variant]
	if !ok {
		keys = []string{variant}
	}
	for _, k := range keys {
		if p := t.logoAssets[k]; p != "" {
			return p
		}
	}
	return ""
}

// SlideSize returns the slide width and height in inches.
func (t *Theme) SlideSize() (width, height float64) { return t.slideW, t.slideH }

// Accents returns a copy of the accent cycle.
func (t *Theme) Accents() []primitive.RGB {
	return append([]primitive.RGB(nil), t.accents...)
}

// WebsiteCues returns a shallow copy of the free-form website cues.
func (t *Theme) WebsiteCues() map[string]any {
	out := make(map[string]any, len(t.websiteCues))
	for k, v := range t.websiteCues {
		out[k] = v
	}
	return out
}

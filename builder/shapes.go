package builder

import (
	"math"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/primitive"
)

// addRect creates a borderless preset shape.
func addRect(slide *brandeck.Slide, geom brandeck.AutoShapeType, x, y, w, h int64) *brandeck.AutoShape {
	s := slide.CreateAutoShape().SetAutoShapeType(geom)
	s.SetPosition(x, y)
	s.SetSize(w, h)
	primitive.SetNoBorder(s)
	return s
}

// AddGradientPanel places a borderless rectangle filled with g.
func (b *Builder) AddGradientPanel(slide *brandeck.Slide, x, y, w, h int64, g brand.Gradient) *brandeck.AutoShape {
	s := addRect(slide, brandeck.AutoShapeRectangle, x, y, w, h)
	s.SetName("Gradient Panel")
	primitive.SetGradient(s, g.From, g.To, g.Angle)
	return s
}

// AddAccentBar places a thin filled rectangle, secondary-colored unless a
// color is given.
func (b *Builder) AddAccentBar(slide *brandeck.Slide, x, y, w, h int64, color ...primitive.RGB) *brandeck.AutoShape {
	c := b.theme.Role(brand.RoleSecondary)
	if len(color) > 0 {
		c = color[0]
	}
	s := addRect(slide, brandeck.AutoShapeRectangle, x, y, w, h)
	s.SetName("Accent Bar")
	primitive.SetFill(s, c)
	return s
}

type cardConfig struct {
	fill     primitive.RGB
	border   *primitive.RGB
	noShadow bool
}

// CardOption adjusts AddCard.
type CardOption func(*cardConfig)

// CardFill overrides the card style fill.
func CardFill(c primitive.RGB) CardOption {
	return func(cc *cardConfig) { cc.fill = c }
}

// CardBorder draws a 1pt border.
func CardBorder(c primitive.RGB) CardOption {
	return func(cc *cardConfig) { cc.border = &c }
}

// CardNoShadow drops the drop shadow.
func CardNoShadow() CardOption {
	return func(cc *cardConfig) { cc.noShadow = true }
}

// AddCard places a rounded rectangle styled by the brand card preset.
func (b *Builder) AddCard(slide *brandeck.Slide, x, y, w, h int64, opts ...CardOption) *brandeck.AutoShape {
	style := b.theme.Card()
	cc := cardConfig{fill: style.Fill}
	for _, opt := range opts {
		opt(&cc)
	}

	s := addRect(slide, brandeck.AutoShapeRoundedRect, x, y, w, h)
	s.SetName("Card")
	primitive.SetRoundedRadius(s, brandeck.Point(style.RadiusPt))
	primitive.SetFill(s, cc.fill)
	if cc.border != nil {
		primitive.SetBorder(s, *cc.border, brandeck.Point(1))
	}
	if !cc.noShadow {
		primitive.SetShadow(s, primitive.Shadow{
			BlurEMU:      brandeck.Point(style.ShadowBlurPt),
			DistanceEMU:  brandeck.Point(style.ShadowDistancePt),
			DirectionDeg: 90,
			AlphaPct:     style.ShadowAlphaPct,
			Color:        primitive.Black,
		})
	}
	return s
}

type buttonConfig struct {
	w, h int64
	fill primitive.RGB
	text primitive.RGB
	size int
}

// ButtonOption adjusts AddButton.
type ButtonOption func(*buttonConfig)

// ButtonSize sets the minimum button size in EMU.
func ButtonSize(w, h int64) ButtonOption {
	return func(c *buttonConfig) { c.w, c.h = w, h }
}

func ButtonFill(c primitive.RGB) ButtonOption {
	return func(bc *buttonConfig) { bc.fill = c }
}

func ButtonTextColor(c primitive.RGB) ButtonOption {
	return func(bc *buttonConfig) { bc.text = c }
}

var buttonPadding = brandeck.Inch(0.3)

// AddButton places a pill-shaped call to action. The button widens to fit
// its label.
func (b *Builder) AddButton(slide *brandeck.Slide, label string, x, y int64, opts ...ButtonOption) *brandeck.AutoShape {
	style := b.theme.Button()
	bc := buttonConfig{
		w:    brandeck.Inch(2.2),
		h:    brandeck.Inch(0.55),
		fill: style.Fill,
		text: style.Text,
		size: style.TextSize,
	}
	for _, opt := range opts {
		opt(&bc)
	}
	fontName := b.theme.Fonts().Body
	if need := b.measure(label, fontName, bc.size, true) + 2*buttonPadding; need > bc.w {
		bc.w = need
	}

	s := addRect(slide, brandeck.AutoShapeRoundedRect, x, y, bc.w, bc.h)
	s.SetName("Button")
	primitive.SetRoundedRadius(s, bc.h/2)
	primitive.SetFill(s, bc.fill)
	s.SetWordWrap(false)
	s.SetInsets(0, 0, 0, 0)
	primitive.CenterText(s)

	c := textConfig{size: bc.size, color: bc.text, bold: true, align: brandeck.HorizontalCenter, font: fontName}
	writeLines(&s.TextFrame, label, c)
	return s
}

// measure returns the advance width of text in EMU.
func (b *Builder) measure(text, name string, sizePt int, bold bool) int64 {
	if b.fonts != nil {
		if face := b.fonts.GetMeasureFace(name, float64(sizePt), bold, false); face != nil {
			// faces are created at 72 DPI, so one pixel is one point
			adv := font.MeasureString(face, text)
			return brandeck.Point(float64(adv) / 64)
		}
	}
	// basicfont is 7px wide at 13px; scale the advance to the requested size.
	face := basicfont.Face7x13
	perRune := float64(face.Advance) * float64(sizePt) / float64(face.Height)
	return brandeck.Point(math.Ceil(perRune * float64(utf8.RuneCountInString(text))))
}

// AddPlaceholderImage places a tinted, shadowless card labeled
// "[ label ]" where a picture belongs.
func (b *Builder) AddPlaceholderImage(slide *brandeck.Slide, x, y, w, h int64, label string) *brandeck.AutoShape {
	s := b.AddCard(slide, x, y, w, h, CardFill(b.theme.Role(brand.RolePlaceholderTint)), CardNoShadow())
	s.SetName("Placeholder")
	primitive.CenterText(s)
	c := textConfig{
		size:  12,
		color: b.theme.Role(brand.RoleSecondary),
		align: brandeck.HorizontalCenter,
		font:  b.theme.Fonts().Utility,
	}
	writeLines(&s.TextFrame, "[ "+label+" ]", c)
	return s
}

// AddMetricCard places a card with an accent top bar, a large value and a
// label under it.
func (b *Builder) AddMetricCard(slide *brandeck.Slide, x, y, w, h int64, value, label string, accent primitive.RGB) *brandeck.AutoShape {
	card := b.AddCard(slide, x, y, w, h)
	b.AddAccentBar(slide, x, y, w, brandeck.Inch(0.06), accent)

	pad := brandeck.Inch(0.2)
	fonts := b.theme.Fonts()
	b.addText(slide, value, textConfig{
		x: x + pad, y: y + brandeck.Inch(0.25), w: w - 2*pad, h: brandeck.Inch(0.7),
		size: 36, bold: true, font: fonts.Headline,
		color: b.theme.Role(brand.RolePrimary), align: brandeck.HorizontalLeft,
	}).SetName("Metric Value")
	b.addText(slide, label, textConfig{
		x: x + pad, y: y + brandeck.Inch(0.95), w: w - 2*pad, h: brandeck.Inch(0.5),
		size: 12, font: fonts.Body,
		color: b.theme.Role(brand.RoleTextBody), align: brandeck.HorizontalLeft,
	}).SetName("Metric Label")
	return card
}

// AddBadge places a filled circle with a centered label drawn in whichever
// of black or white reads better on the fill.
func (b *Builder) AddBadge(slide *brandeck.Slide, x, y, size int64, fill primitive.RGB, label string, fontSize int) *brandeck.AutoShape {
	s := addRect(slide, brandeck.AutoShapeEllipse, x, y, size, size)
	s.SetName("Badge")
	primitive.SetFill(s, fill)
	if label == "" {
		return s
	}
	s.SetWordWrap(false)
	s.SetInsets(0, 0, 0, 0)
	primitive.CenterText(s)
	writeLines(&s.TextFrame, label, textConfig{
		size:  fontSize,
		color: primitive.AutoTextColor(fill),
		bold:  true,
		align: brandeck.HorizontalCenter,
		font:  b.theme.Fonts().Headline,
	})
	return s
}

// AddDot places a decorative circle, translucent below 100% opacity.
func (b *Builder) AddDot(slide *brandeck.Slide, x, y, size int64, color primitive.RGB, opacityPct float64) *brandeck.AutoShape {
	s := addRect(slide, brandeck.AutoShapeEllipse, x, y, size, size)
	s.SetName("Dot")
	primitive.SetFill(s, color)
	if opacityPct < 100 {
		primitive.SetAlpha(s, opacityPct)
	}
	return s
}

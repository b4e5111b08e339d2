package builder

import (
	"math"
	"strings"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/primitive"
)

const bulletGlyph = "●  "

type textConfig struct {
	x, y, w, h  int64
	size        int
	color       primitive.RGB
	bold        bool
	italic      bool
	align       brandeck.HorizontalAlignment
	anchor      brandeck.TextAnchorType
	lineSpacing float64
	spaceAfter  float64 // points
	font        string
	noWrap      bool
}

// TextOption overrides one default of a text element.
type TextOption func(*textConfig)

// At places the box's top-left corner, in EMU.
func At(x, y int64) TextOption {
	return func(c *textConfig) { c.x, c.y = x, y }
}

// Size sets the box size, in EMU.
func Size(w, h int64) TextOption {
	return func(c *textConfig) { c.w, c.h = w, h }
}

func FontSize(pt int) TextOption {
	return func(c *textConfig) { c.size = pt }
}

func Color(rgb primitive.RGB) TextOption {
	return func(c *textConfig) { c.color = rgb }
}

func Bold(bold bool) TextOption {
	return func(c *textConfig) { c.bold = bold }
}

func Italic(italic bool) TextOption {
	return func(c *textConfig) { c.italic = italic }
}

func Align(a brandeck.HorizontalAlignment) TextOption {
	return func(c *textConfig) { c.align = a }
}

// Anchor sets the vertical anchor of the text body.
func Anchor(a brandeck.TextAnchorType) TextOption {
	return func(c *textConfig) { c.anchor = a }
}

// LineSpacing sets the line height as a multiple of single spacing.
func LineSpacing(f float64) TextOption {
	return func(c *textConfig) { c.lineSpacing = f }
}

// Font sets the typeface name.
func Font(name string) TextOption {
	return func(c *textConfig) { c.font = name }
}

// NoWrap keeps each paragraph on one line.
func NoWrap() TextOption {
	return func(c *textConfig) { c.noWrap = true }
}

func (b *Builder) textDefaults() textConfig {
	return textConfig{
		x:     b.m,
		y:     b.m,
		w:     b.w - 2*b.m,
		h:     brandeck.Inch(1),
		size:  b.theme.TypeSize("body"),
		color: b.theme.Role(brand.RoleTextBody),
		align: brandeck.HorizontalLeft,
		font:  b.theme.Fonts().Body,
	}
}

func (c *textConfig) apply(opts []TextOption) {
	for _, opt := range opts {
		opt(c)
	}
}

func (c *textConfig) runFont() *brandeck.Font {
	return brandeck.NewFont().
		SetName(c.font).
		SetSize(c.size).
		SetBold(c.bold).
		SetItalic(c.italic).
		SetColor(c.color.Color())
}

func (c *textConfig) styleParagraph(p *brandeck.Paragraph) {
	p.SetAlignment(brandeck.NewAlignment().SetHorizontal(c.align))
	if c.lineSpacing > 0 {
		p.SetLineSpacing(int(math.Round(c.lineSpacing * 100000)))
	}
	if c.spaceAfter > 0 {
		p.SetSpaceAfter(int(math.Round(c.spaceAfter * 100)))
	}
}

// newTextBox creates an empty text box laid out from c.
func newTextBox(slide *brandeck.Slide, c textConfig) *brandeck.RichTextShape {
	tb := slide.CreateRichTextShape()
	tb.SetPosition(c.x, c.y)
	tb.SetSize(c.w, c.h)
	tb.SetWordWrap(!c.noWrap)
	if c.anchor != brandeck.TextAnchorNone {
		tb.SetTextAnchor(c.anchor)
	}
	return tb
}

// writeLines fills a text frame with one paragraph per line of text.
func writeLines(tf *brandeck.TextFrame, text string, c textConfig) {
	for i, line := range strings.Split(text, "\n") {
		p := tf.GetActiveParagraph()
		if i > 0 {
			p = tf.CreateParagraph()
		}
		c.styleParagraph(p)
		p.CreateTextRun(line).SetFont(c.runFont())
	}
}

func (b *Builder) addText(slide *brandeck.Slide, text string, c textConfig) *brandeck.RichTextShape {
	tb := newTextBox(slide, c)
	writeLines(&tb.TextFrame, text, c)
	return tb
}

// AddText places free text in the body style.
func (b *Builder) AddText(slide *brandeck.Slide, text string, opts ...TextOption) *brandeck.RichTextShape {
	c := b.textDefaults()
	c.apply(opts)
	return b.addText(slide, text, c)
}

// AddTitle places a bold headline in the primary color.
func (b *Builder) AddTitle(slide *brandeck.Slide, text string, opts ...TextOption) *brandeck.RichTextShape {
	c := b.textDefaults()
	c.font = b.theme.Fonts().Headline
	c.size = b.theme.TypeSize("h1")
	c.color = b.theme.Role(brand.RolePrimary)
	c.bold = true
	c.apply(opts)
	tb := b.addText(slide, text, c)
	tb.SetName("Title")
	return tb
}

// AddSubtitle places a subtitle in the secondary color.
func (b *Builder) AddSubtitle(slide *brandeck.Slide, text string, opts ...TextOption) *brandeck.RichTextShape {
	c := b.textDefaults()
	c.y = brandeck.Inch(1.6)
	c.h = brandeck.Inch(0.8)
	c.size = b.theme.TypeSize("h3")
	c.color = b.theme.Role(brand.RoleSecondary)
	c.apply(opts)
	tb := b.addText(slide, text, c)
	tb.SetName("Subtitle")
	return tb
}

// defaultBodySpacing sizes the gap after body paragraphs. Line height is
// only set when the caller passes LineSpacing.
const defaultBodySpacing = 1.4

// AddBody places running text, one paragraph per line, with extra space
// after each paragraph proportional to the line spacing.
func (b *Builder) AddBody(slide *brandeck.Slide, text string, opts ...TextOption) *brandeck.RichTextShape {
	c := b.textDefaults()
	c.y = brandeck.Inch(2.5)
	c.h = brandeck.Inch(3)
	c.apply(opts)
	spacing := c.lineSpacing
	if spacing <= 0 {
		spacing = defaultBodySpacing
	}
	c.spaceAfter = float64(c.size) * (spacing - 1)
	tb := b.addText(slide, text, c)
	tb.SetName("Body")
	return tb
}

// AddBulletList places one paragraph per item, each led by a round bullet
// in the secondary color two points smaller than the text.
func (b *Builder) AddBulletList(slide *brandeck.Slide, items []string, opts ...TextOption) *brandeck.RichTextShape {
	c := b.textDefaults()
	c.y = brandeck.Inch(2.5)
	c.h = brandeck.Inch(3.5)
	c.apply(opts)
	c.spaceAfter = 8

	bullet := c
	bullet.size = max(c.size-2, 1)
	bullet.color = b.theme.Role(brand.RoleSecondary)
	bullet.bold = false

	tb := newTextBox(slide, c)
	tb.SetName("Bullets")
	for i, item := range items {
		p := tb.GetActiveParagraph()
		if i > 0 {
			p = tb.CreateParagraph()
		}
		c.styleParagraph(p)
		p.CreateTextRun(bulletGlyph).SetFont(bullet.runFont())
		p.CreateTextRun(item).SetFont(c.runFont())
	}
	return tb
}

// AddQuoteMark places an oversized opening quotation mark.
func (b *Builder) AddQuoteMark(slide *brandeck.Slide, x, y, w, h int64, color primitive.RGB) *brandeck.RichTextShape {
	c := b.textDefaults()
	c.x, c.y, c.w, c.h = x, y, w, h
	c.font = b.theme.Fonts().Headline
	c.size = 160
	c.color = color
	c.bold = true
	tb := b.addText(slide, "“", c)
	tb.SetName("Quote Mark")
	return tb
}

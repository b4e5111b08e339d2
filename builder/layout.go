package builder

import (
	"fmt"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/primitive"
)

type footerConfig struct {
	text   *string
	bar    *primitive.RGB
	noMark bool
}

// FooterOption adjusts AddFooter.
type FooterOption func(*footerConfig)

// FooterText replaces the default copyright line.
func FooterText(s string) FooterOption {
	return func(c *footerConfig) { c.text = &s }
}

// FooterBar fills the footer band.
func FooterBar(c primitive.RGB) FooterOption {
	return func(fc *footerConfig) { fc.bar = &c }
}

// FooterNoMark omits the brand mark at the trailing edge.
func FooterNoMark() FooterOption {
	return func(c *footerConfig) { c.noMark = true }
}

var footerHeight = brandeck.Inch(0.5)

// DefaultFooterText is "© YEAR NAME  |  WEBSITE", without the website part
// when the brand has none.
func (b *Builder) DefaultFooterText() string {
	id := b.theme.Identity()
	s := fmt.Sprintf("© %d %s", b.now().Year(), id.Name)
	if id.Website != "" {
		s += "  |  " + id.Website
	}
	return s
}

// AddFooter places the footer band along the bottom edge.
func (b *Builder) AddFooter(slide *brandeck.Slide, opts ...FooterOption) {
	var fc footerConfig
	for _, opt := range opts {
		opt(&fc)
	}
	top := b.h - footerHeight

	ground := b.backgroundOf(slide)
	if fc.bar != nil {
		bar := addRect(slide, brandeck.AutoShapeRectangle, 0, top, b.w, footerHeight)
		bar.SetName("Footer Bar")
		primitive.SetFill(bar, *fc.bar)
		ground = *fc.bar
	}

	text := b.DefaultFooterText()
	if fc.text != nil {
		text = *fc.text
	}
	markSize := brandeck.Inch(0.3)
	if text != "" {
		tb := b.addText(slide, text, textConfig{
			x: b.m, y: top, w: b.w - 2*b.m - markSize - b.g, h: footerHeight,
			size:   b.theme.TypeSize("caption"),
			color:  primitive.AutoTextColor(ground),
			align:  brandeck.HorizontalLeft,
			anchor: brandeck.TextAnchorMiddle,
			font:   b.theme.Fonts().Utility,
		})
		tb.SetName("Footer")
	}

	if fc.noMark {
		return
	}
	pic := b.loadPicture(LogoFavicon)
	if pic == nil {
		return
	}
	w, h := fit(b.logoSize(pic.GetPath(), pic.GetImageData()), markSize, markSize, 0)
	pic.SetPosition(b.w-b.m-w, top+(footerHeight-h)/2)
	pic.SetSize(w, h)
	pic.SetName("Footer Mark")
	slide.AddShape(pic)
}

// AddSectionHeader fills the slide with bg (primary when nil) and places
// an accent bar, a large title and an optional subtitle, all colored to
// stay readable on bg.
func (b *Builder) AddSectionHeader(slide *brandeck.Slide, title, subtitle string, bg *primitive.RGB) {
	t := b.theme
	ground := t.Role(brand.RolePrimary)
	if bg != nil {
		ground = *bg
	}
	b.SetBackground(slide, ground)

	bar := t.Role(brand.RoleSecondary)
	if ground == bar {
		bar = t.Role(brand.RoleAccentHighlight)
	}
	b.AddAccentBar(slide, b.m, brandeck.Inch(2.8), brandeck.Inch(0.8), brandeck.Inch(0.06), bar)

	b.AddTitle(slide, title,
		At(b.m, brandeck.Inch(3.0)),
		Size(b.w-2*b.m, brandeck.Inch(1.2)),
		Color(primitive.AutoTextColor(ground)),
	)
	if subtitle == "" {
		return
	}

	sub := t.Role(brand.RolePrimary)
	if primitive.Luminance(ground) < 0.3 {
		sub = t.Role(brand.RoleSecondary)
	}
	if primitive.ContrastRatio(sub, ground) < 3 {
		sub = primitive.AutoTextColor(ground)
	}
	b.AddSubtitle(slide, subtitle,
		At(b.m, brandeck.Inch(4.2)),
		Size(b.w-2*b.m, brandeck.Inch(0.8)),
		Color(sub),
	)
}

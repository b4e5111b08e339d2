package builder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/primitive"
)

var fixedNow = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

func writePNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 2, G: 39, B: 145, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// newTestBuilder returns a builder over the default brand, with a 400x100
// colored logo and a square favicon on disk.
func newTestBuilder(t *testing.T, mutate ...func(*brand.Config)) *Builder {
	t.Helper()
	dir := t.TempDir()
	cfg := brand.Default()
	cfg.LogoAssets = map[string]string{
		"colored_horizontal_png": writePNG(t, dir, "logo.png", 400, 100),
		"white_horizontal_png":   writePNG(t, dir, "white.png", 400, 100),
		"favicon_colored_png":    writePNG(t, dir, "favicon.png", 64, 64),
	}
	for _, m := range mutate {
		m(cfg)
	}
	theme, err := brand.BuildTheme(cfg)
	require.NoError(t, err)
	b, err := New(brandeck.New(), theme, WithClock(fixedNow))
	require.NoError(t, err)
	return b
}

func firstRun(t *testing.T, tf *brandeck.TextFrame) *brandeck.TextRun {
	t.Helper()
	paras := tf.GetParagraphs()
	require.NotEmpty(t, paras)
	require.NotEmpty(t, paras[0].GetElements())
	run, ok := paras[0].GetElements()[0].(*brandeck.TextRun)
	require.True(t, ok)
	return run
}

func shapeNamed(slide *brandeck.Slide, name string) brandeck.Shape {
	for _, s := range slide.GetShapes() {
		if s.GetName() == name {
			return s
		}
	}
	return nil
}

func TestNewAppliesTheme(t *testing.T) {
	b := newTestBuilder(t)
	layout := b.Deck().GetLayout()
	assert.Equal(t, brandeck.Inch(13.333), layout.CX)
	assert.Equal(t, brandeck.Inch(7.5), layout.CY)
	assert.Equal(t, brandeck.Inch(0.6), b.Margin())
	assert.Equal(t, brandeck.Inch(0.35), b.Gutter())

	dt := b.Deck().GetTheme()
	assert.Equal(t, "Brandeck", dt.Name)
	assert.Equal(t, "Inter Tight", dt.Fonts.Major)
	assert.Equal(t, "022791", dt.Colors.Dark2.RGB())
	assert.Equal(t, "4D75FE", dt.Colors.Accents[0].RGB())
	assert.Equal(t, "4D75FE", dt.Colors.Accents[4].RGB())
}

func TestNewSlide(t *testing.T) {
	b := newTestBuilder(t)
	b.NewSlide()
	b.NewSlide()
	assert.Equal(t, 2, b.Deck().GetSlideCount())
}

func TestAccentWraps(t *testing.T) {
	b := newTestBuilder(t)
	acc := b.Accents()
	require.Len(t, acc, 4)
	assert.Equal(t, acc[0], b.Accent(4))
	assert.Equal(t, acc[3], b.Accent(-1))

	acc[0] = primitive.Black
	assert.NotEqual(t, primitive.Black, b.Accent(0))
}

func TestAddTitleDefaults(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	tb := b.AddTitle(slide, "Hello")

	assert.Equal(t, b.Margin(), tb.GetOffsetX())
	assert.Equal(t, b.Margin(), tb.GetOffsetY())
	assert.Equal(t, b.Width()-2*b.Margin(), tb.GetWidth())
	assert.Equal(t, brandeck.Inch(1), tb.GetHeight())

	f := firstRun(t, &tb.TextFrame).GetFont()
	assert.Equal(t, "Inter Tight", f.Name)
	assert.Equal(t, 44, f.Size)
	assert.True(t, f.Bold)
	assert.Equal(t, b.Role(brand.RolePrimary).Color(), f.Color)
	assert.Equal(t, brandeck.HorizontalLeft, tb.GetParagraphs()[0].GetAlignment().Horizontal)
}

func TestAddTitleOptions(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	tb := b.AddTitle(slide, "Two\nLines",
		At(10, 20), Size(30, 40), FontSize(48), Bold(false),
		Align(brandeck.HorizontalCenter), Color(primitive.White))

	assert.Equal(t, int64(10), tb.GetOffsetX())
	assert.Equal(t, int64(40), tb.GetHeight())
	require.Len(t, tb.GetParagraphs(), 2)
	f := firstRun(t, &tb.TextFrame).GetFont()
	assert.Equal(t, 48, f.Size)
	assert.False(t, f.Bold)
	assert.Equal(t, primitive.White.Color(), f.Color)
	assert.Equal(t, brandeck.HorizontalCenter, tb.GetParagraphs()[1].GetAlignment().Horizontal)
}

func TestAddSubtitleDefaults(t *testing.T) {
	b := newTestBuilder(t)
	tb := b.AddSubtitle(b.NewSlide(), "Sub")
	assert.Equal(t, brandeck.Inch(1.6), tb.GetOffsetY())
	f := firstRun(t, &tb.TextFrame).GetFont()
	assert.Equal(t, 24, f.Size)
	assert.False(t, f.Bold)
	assert.Equal(t, b.Role(brand.RoleSecondary).Color(), f.Color)
}

func TestAddBody(t *testing.T) {
	b := newTestBuilder(t)
	tb := b.AddBody(b.NewSlide(), "one\ntwo\nthree")

	paras := tb.GetParagraphs()
	require.Len(t, paras, 3)
	for _, p := range paras {
		assert.Zero(t, p.GetLineSpacing())
		assert.Equal(t, 560, p.GetSpaceAfter()) // 14pt * 0.4
	}
	assert.Equal(t, brandeck.Inch(2.5), tb.GetOffsetY())
	assert.Equal(t, "one\ntwo\nthree", tb.PlainText())
	assert.Equal(t, b.Role(brand.RoleTextBody).Color(), firstRun(t, &tb.TextFrame).GetFont().Color)
}

func TestAddBodySpacing(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()

	tests := []struct {
		name        string
		opts        []TextOption
		lineSpacing int
		spaceAfter  int
	}{
		{"default", []TextOption{FontSize(13)}, 0, 520},
		{"explicit", []TextOption{FontSize(10), LineSpacing(1.5)}, 150000, 500},
		{"single", []TextOption{LineSpacing(1)}, 100000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := b.AddBody(slide, "one\ntwo", tt.opts...)
			for _, p := range tb.GetParagraphs() {
				assert.Equal(t, tt.lineSpacing, p.GetLineSpacing())
				assert.Equal(t, tt.spaceAfter, p.GetSpaceAfter())
			}
		})
	}
}

func TestAddBulletList(t *testing.T) {
	b := newTestBuilder(t)
	tb := b.AddBulletList(b.NewSlide(), []string{"alpha", "beta"}, FontSize(15))

	paras := tb.GetParagraphs()
	require.Len(t, paras, 2)
	for _, p := range paras {
		els := p.GetElements()
		require.Len(t, els, 2)
		glyph := els[0].(*brandeck.TextRun)
		item := els[1].(*brandeck.TextRun)
		assert.Equal(t, bulletGlyph, glyph.GetText())
		assert.Equal(t, 13, glyph.GetFont().Size)
		assert.Equal(t, b.Role(brand.RoleSecondary).Color(), glyph.GetFont().Color)
		assert.Equal(t, 15, item.GetFont().Size)
		assert.Equal(t, 800, p.GetSpaceAfter())
	}
	assert.Equal(t, "beta", paras[1].GetElements()[1].(*brandeck.TextRun).GetText())
}

func TestAddCard(t *testing.T) {
	b := newTestBuilder(t)
	card := b.AddCard(b.NewSlide(), 0, 0, brandeck.Inch(4), brandeck.Inch(2))

	p := card.ShapeProperties()
	geom, adj := brandeck.GeometryOf(p)
	assert.Equal(t, brandeck.AutoShapeRoundedRect, geom)
	assert.Equal(t, primitive.RadiusGuide(brandeck.Point(12), brandeck.Inch(4), brandeck.Inch(2)), adj)

	paint := brandeck.PaintOf(p)
	require.Equal(t, brandeck.PaintSolid, paint.Kind)
	assert.Equal(t, "FFFFFF", paint.Colors[0].RGB())

	_, _, hasLine := brandeck.OutlineOf(p)
	assert.False(t, hasLine)

	shdw := p.FindElement("a:effectLst/a:outerShdw")
	require.NotNil(t, shdw)
	assert.Equal(t, "152400", shdw.SelectAttrValue("blurRad", ""))
	assert.Equal(t, "38100", shdw.SelectAttrValue("dist", ""))
	assert.Equal(t, "5400000", shdw.SelectAttrValue("dir", ""))
	assert.Equal(t, "15000", shdw.FindElement("a:srgbClr/a:alpha").SelectAttrValue("val", ""))
}

func TestAddCardOptions(t *testing.T) {
	b := newTestBuilder(t)
	card := b.AddCard(b.NewSlide(), 0, 0, 100, 100,
		CardFill(primitive.Black), CardBorder(primitive.White), CardNoShadow())
	p := card.ShapeProperties()
	assert.Nil(t, p.FindElement("a:effectLst/a:outerShdw"))
	c, w, ok := brandeck.OutlineOf(p)
	require.True(t, ok)
	assert.Equal(t, "FFFFFF", c.RGB())
	assert.Equal(t, brandeck.Point(1), w)
	assert.Equal(t, "000000", brandeck.PaintOf(p).Colors[0].RGB())
}

func TestAddButton(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()

	short := b.AddButton(slide, "Go", 0, 0)
	assert.Equal(t, brandeck.Inch(2.2), short.GetWidth())
	assert.Equal(t, brandeck.Inch(0.55), short.GetHeight())
	_, adj := brandeck.GeometryOf(short.ShapeProperties())
	assert.Equal(t, 50000, adj)
	assert.False(t, short.GetWordWrap())
	assert.Equal(t, brandeck.TextAnchorMiddle, short.GetTextAnchor())

	f := firstRun(t, &short.TextFrame).GetFont()
	assert.Equal(t, 13, f.Size)
	assert.True(t, f.Bold)
	assert.Equal(t, primitive.White.Color(), f.Color)
	assert.Equal(t, "4D75FE", brandeck.PaintOf(short.ShapeProperties()).Colors[0].RGB())

	long := b.AddButton(slide, "Schedule a very long onboarding conversation today", 0, 0)
	assert.Greater(t, long.GetWidth(), brandeck.Inch(2.2))
}

func TestAddButtonMeasuresWithFontCache(t *testing.T) {
	theme, err := brand.BuildTheme(brand.Default())
	require.NoError(t, err)
	b, err := New(brandeck.New(), theme, WithFontCache(brandeck.NewFontCache()))
	require.NoError(t, err)

	narrow := b.measure("ii", "Inter Tight", 13, true)
	wide := b.measure("WWWWWWWW", "Inter Tight", 13, true)
	assert.Greater(t, narrow, int64(0))
	assert.Greater(t, wide, narrow)
}

func TestAddPlaceholderImage(t *testing.T) {
	b := newTestBuilder(t)
	ph := b.AddPlaceholderImage(b.NewSlide(), 0, 0, 100, 100, "Visual")
	assert.Equal(t, "[ Visual ]", ph.GetText())
	assert.Nil(t, ph.ShapeProperties().FindElement("a:effectLst"))
	assert.Equal(t, "E8EDFB", brandeck.PaintOf(ph.ShapeProperties()).Colors[0].RGB())
	f := firstRun(t, &ph.TextFrame).GetFont()
	assert.Equal(t, 12, f.Size)
	assert.Equal(t, "Roboto", f.Name)
}

func TestAddBadgeUsesReadableText(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()

	dark := b.AddBadge(slide, 0, 0, 100, b.Role(brand.RolePrimary), "1", 16)
	assert.Equal(t, brandeck.AutoShapeEllipse, dark.GetAutoShapeType())
	assert.Equal(t, primitive.White.Color(), firstRun(t, &dark.TextFrame).GetFont().Color)

	light := b.AddBadge(slide, 0, 0, 100, b.Role(brand.RoleAccentHighlight), "2", 16)
	assert.Equal(t, primitive.Black.Color(), firstRun(t, &light.TextFrame).GetFont().Color)
}

func TestAddDotAlpha(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	faint := b.AddDot(slide, 0, 0, 10, primitive.White, 15)
	assert.Equal(t, "15000", faint.ShapeProperties().FindElement("a:solidFill/a:srgbClr/a:alpha").SelectAttrValue("val", ""))

	solid := b.AddDot(slide, 0, 0, 10, primitive.White, 100)
	assert.Nil(t, solid.ShapeProperties().FindElement("a:solidFill/a:srgbClr/a:alpha"))
}

func TestAddMetricCard(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	b.AddMetricCard(slide, 0, 0, brandeck.Inch(2.7), brandeck.Inch(1.6), "98%", "Uptime", b.Accent(2))

	require.Len(t, slide.GetShapes(), 4)
	bar := shapeNamed(slide, "Accent Bar")
	require.NotNil(t, bar)
	assert.Equal(t, brandeck.Inch(0.06), bar.GetHeight())
	assert.Equal(t, "FAA944", brandeck.PaintOf(bar.ShapeProperties()).Colors[0].RGB())

	value := shapeNamed(slide, "Metric Value").(*brandeck.RichTextShape)
	f := firstRun(t, &value.TextFrame).GetFont()
	assert.Equal(t, 36, f.Size)
	assert.True(t, f.Bold)
}

func TestAddSectionHeader(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	b.AddSectionHeader(slide, "Part One", "Why it matters", nil)

	bg := brandeck.PaintOf(slide.BackgroundProperties())
	assert.Equal(t, "022791", bg.Colors[0].RGB())

	bar := shapeNamed(slide, "Accent Bar")
	assert.Equal(t, "4D75FE", brandeck.PaintOf(bar.ShapeProperties()).Colors[0].RGB())

	title := shapeNamed(slide, "Title").(*brandeck.RichTextShape)
	assert.Equal(t, brandeck.Inch(3.0), title.GetOffsetY())
	assert.Equal(t, primitive.White.Color(), firstRun(t, &title.TextFrame).GetFont().Color)

	sub := shapeNamed(slide, "Subtitle").(*brandeck.RichTextShape)
	assert.Equal(t, brandeck.Inch(4.2), sub.GetOffsetY())
	assert.Equal(t, b.Role(brand.RoleSecondary).Color(), firstRun(t, &sub.TextFrame).GetFont().Color)
}

func TestAddSectionHeaderOnSecondary(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	bg := b.Role(brand.RoleSecondary)
	b.AddSectionHeader(slide, "Part Two", "Subtitle", &bg)

	bar := shapeNamed(slide, "Accent Bar")
	assert.Equal(t, "FAA944", brandeck.PaintOf(bar.ShapeProperties()).Colors[0].RGB())

	sub := shapeNamed(slide, "Subtitle").(*brandeck.RichTextShape)
	got := firstRun(t, &sub.TextFrame).GetFont().Color
	assert.Equal(t, primitive.AutoTextColor(bg).Color(), got)
}

func TestAddFooter(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	b.AddFooter(slide)

	footer := shapeNamed(slide, "Footer").(*brandeck.RichTextShape)
	assert.Equal(t, "© 2026 Brandeck  |  brandeck.dev", footer.PlainText())
	assert.Equal(t, b.Height()-brandeck.Inch(0.5), footer.GetOffsetY())
	f := firstRun(t, &footer.TextFrame).GetFont()
	assert.Equal(t, 10, f.Size)
	assert.Equal(t, "Roboto", f.Name)
	assert.Equal(t, primitive.Black.Color(), f.Color)

	mark := shapeNamed(slide, "Footer Mark")
	require.NotNil(t, mark)
	assert.Equal(t, brandeck.Inch(0.3), mark.GetWidth())
	assert.Equal(t, b.Width()-b.Margin()-brandeck.Inch(0.3), mark.GetOffsetX())
}

func TestAddFooterOnBar(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	b.AddFooter(slide, FooterBar(b.Role(brand.RolePrimary)), FooterText("Confidential"), FooterNoMark())

	require.NotNil(t, shapeNamed(slide, "Footer Bar"))
	assert.Nil(t, shapeNamed(slide, "Footer Mark"))
	footer := shapeNamed(slide, "Footer").(*brandeck.RichTextShape)
	assert.Equal(t, "Confidential", footer.PlainText())
	assert.Equal(t, primitive.White.Color(), firstRun(t, &footer.TextFrame).GetFont().Color)
}

func TestAddFooterFollowsBackground(t *testing.T) {
	b := newTestBuilder(t)
	slide := b.NewSlide()
	b.SetBackground(slide, b.Role(brand.RolePrimary))
	b.AddFooter(slide)
	footer := shapeNamed(slide, "Footer").(*brandeck.RichTextShape)
	assert.Equal(t, primitive.White.Color(), firstRun(t, &footer.TextFrame).GetFont().Color)
}

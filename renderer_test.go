package brandeck

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestSlideToImage_BlankSlide(t *testing.T) {
	p := New()
	p.CreateSlide()
	img, err := p.SlideToImage(0, nil)
	require.NoError(t, err)
	assert.Equal(t, 960, img.Bounds().Dx())
	assert.Equal(t, 540, img.Bounds().Dy())
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgbaAt(img, 10, 10))
}

func TestSlideToImage_OutOfRange(t *testing.T) {
	p := New()
	p.CreateSlide()
	_, err := p.SlideToImage(5, nil)
	assert.ErrorIs(t, err, ErrSlideIndex)
}

func TestSlideToImage_SolidBackground(t *testing.T) {
	p := New()
	addSolidFill(p.CreateSlide().BackgroundProperties(), "102030")
	img, err := p.SlideToImage(0, &RenderOptions{Width: 320})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 255}, rgbaAt(img, 100, 100))
}

func TestSlideToImage_GradientBackground(t *testing.T) {
	p := New()
	bg := p.CreateSlide().BackgroundProperties()
	grad := bg.CreateElement("a:gradFill")
	gsLst := grad.CreateElement("a:gsLst")
	for _, stop := range []struct{ pos, val string }{{"0", "000000"}, {"100000", "FFFFFF"}} {
		gs := gsLst.CreateElement("a:gs")
		gs.CreateAttr("pos", stop.pos)
		gs.CreateElement("a:srgbClr").CreateAttr("val", stop.val)
	}
	grad.CreateElement("a:lin").CreateAttr("ang", "0")

	img, err := p.SlideToImage(0, &RenderOptions{Width: 200})
	require.NoError(t, err)
	left := rgbaAt(img, 1, 50)
	right := rgbaAt(img, 198, 50)
	assert.Less(t, left.R, uint8(10))
	assert.Greater(t, right.R, uint8(245))
}

func TestSlideToImage_EllipseFillAndCorners(t *testing.T) {
	p := New()
	p.GetLayout().SetCustomLayout(Inch(10), Inch(10))
	slide := p.CreateSlide()
	circle := slide.CreateAutoShape().SetAutoShapeType(AutoShapeEllipse)
	circle.SetPosition(0, 0).SetSize(Inch(10), Inch(10))
	addSolidFill(circle.ShapeProperties(), "FF0000")

	img, err := p.SlideToImage(0, &RenderOptions{Width: 100})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), rgbaAt(img, 50, 50).R)
	assert.Equal(t, uint8(0), rgbaAt(img, 50, 50).G)
	// Corners lie outside the ellipse.
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgbaAt(img, 1, 1))
}

func TestSlideToImage_AlphaBlends(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	box := slide.CreateAutoShape()
	box.SetSize(p.GetLayout().CX, p.GetLayout().CY)
	props := box.ShapeProperties()
	fill := etree.NewElement("a:solidFill")
	clr := fill.CreateElement("a:srgbClr")
	clr.CreateAttr("val", "000000")
	clr.CreateElement("a:alpha").CreateAttr("val", "50000")
	props.AddChild(fill)

	img, err := p.SlideToImage(0, &RenderOptions{Width: 100})
	require.NoError(t, err)
	got := rgbaAt(img, 50, 20)
	assert.InDelta(t, 128, int(got.R), 3)
}

func TestSlideToImage_Picture(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	pic := slide.CreateDrawingShape()
	pic.SetImageData(solidPNG(t, 2, 2, color.RGBA{G: 255, A: 255}), "")
	pic.SetSize(p.GetLayout().CX, p.GetLayout().CY)

	img, err := p.SlideToImage(0, &RenderOptions{Width: 64})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), rgbaAt(img, 32, 16).G)
}

func TestSlideToImage_TextIsDrawn(t *testing.T) {
	p := New()
	slide := p.CreateSlide()
	tb := slide.CreateRichTextShape()
	tb.SetSize(p.GetLayout().CX, p.GetLayout().CY)
	tb.SetTextAnchor(TextAnchorMiddle)
	tb.GetActiveParagraph().SetAlignment(NewAlignment().SetHorizontal(HorizontalCenter))
	tb.CreateTextRun("MMMMMMMM").SetFont(NewFont().SetSize(60).SetColor(ColorBlack))

	img, err := p.SlideToImage(0, &RenderOptions{Width: 480, FontDirs: []string{t.TempDir()}})
	require.NoError(t, err)

	dark := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if rgbaAt(img, x, y).R < 100 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 100)
}

func TestGenerateThumbnail(t *testing.T) {
	p := New()
	addSolidFill(p.CreateSlide().BackgroundProperties(), "336699")
	require.NoError(t, p.GenerateThumbnail(256, nil))
	data := p.GetPresentationProperties().GetThumbnailData()
	require.NotEmpty(t, data)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2])
}

func TestSaveSlidesAsImages(t *testing.T) {
	p := New()
	p.CreateSlide()
	p.CreateSlide()
	dir := t.TempDir()
	require.NoError(t, p.SaveSlidesAsImages(filepath.Join(dir, "slide_%d.png"), &RenderOptions{Width: 64}))
	assert.FileExists(t, filepath.Join(dir, "slide_1.png"))
	assert.FileExists(t, filepath.Join(dir, "slide_2.png"))
}

func TestFontCache_FallsBackToBundledFonts(t *testing.T) {
	fc := NewFontCache(t.TempDir())
	fc.dirs = []string{t.TempDir()}
	face := fc.GetFace("No Such Typeface", 12, true, false)
	require.NotNil(t, face)
	assert.Same(t, face, fc.GetFace("no such typeface", 12, true, false))
	assert.NotSame(t, face, fc.GetMeasureFace("No Such Typeface", 12, true, false))
}

package brandeck

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

// ImageFormat represents the output image format.
type ImageFormat int

const (
	ImageFormatPNG ImageFormat = iota
	ImageFormatJPEG
)

// RenderOptions configures slide-to-image rendering.
type RenderOptions struct {
	// Width is the output width in pixels; height follows the slide aspect
	// ratio. Default: 960.
	Width int
	// Format is the output image format (PNG or JPEG).
	Format ImageFormat
	// JPEGQuality is the JPEG quality (1-100). Default: 90.
	JPEGQuality int
	// BackgroundColor overrides the slide background when set.
	BackgroundColor *color.RGBA
	// FontDirs are searched for fonts in addition to the system directories.
	FontDirs []string
	// FontCache allows sharing a FontCache across renders. If nil, a new
	// FontCache is created using FontDirs.
	FontCache *FontCache
}

// DefaultRenderOptions returns default rendering options.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Width:       960,
		Format:      ImageFormatPNG,
		JPEGQuality: 90,
	}
}

// SlideToImage renders a single slide to an image. The preview honours
// solid and gradient fills, alpha, outlines, rounded corners, ellipses,
// drop shadows, pictures and wrapped text.
func (p *Presentation) SlideToImage(slideIndex int, opts *RenderOptions) (image.Image, error) {
	if slideIndex < 0 || slideIndex >= len(p.slides) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrSlideIndex, slideIndex, len(p.slides))
	}
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	width := opts.Width
	if width <= 0 {
		width = 960
	}

	slide := p.slides[slideIndex]
	slideW := float64(p.layout.CX)
	slideH := float64(p.layout.CY)
	imgH := int(float64(width) * slideH / slideW)

	img := image.NewRGBA(image.Rect(0, 0, width, imgH))
	r := &renderer{
		img:       img,
		scaleX:    float64(width) / slideW,
		scaleY:    float64(imgH) / slideH,
		fontCache: opts.FontCache,
	}
	if r.fontCache == nil {
		r.fontCache = NewFontCache(opts.FontDirs...)
	}

	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)
	if opts.BackgroundColor != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(*opts.BackgroundColor), image.Point{}, draw.Src)
	} else if slide.background != nil {
		r.paint(img.Bounds(), PaintOf(slide.background), nil)
	}

	for _, shape := range slide.shapes {
		r.renderShape(shape)
	}
	return img, nil
}

// SlidesToImages renders all slides to images.
func (p *Presentation) SlidesToImages(opts *RenderOptions) ([]image.Image, error) {
	images := make([]image.Image, len(p.slides))
	for i := range p.slides {
		img, err := p.SlideToImage(i, opts)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		images[i] = img
	}
	return images, nil
}

// SaveSlideAsImage renders a slide and saves it to a file.
func (p *Presentation) SaveSlideAsImage(slideIndex int, path string, opts *RenderOptions) error {
	img, err := p.SlideToImage(slideIndex, opts)
	if err != nil {
		return err
	}
	return saveImage(img, path, opts)
}

// SaveSlidesAsImages renders all slides and saves them to files. The
// pattern should contain %d for the 1-based slide number.
func (p *Presentation) SaveSlidesAsImages(pattern string, opts *RenderOptions) error {
	for i := range p.slides {
		path := fmt.Sprintf(pattern, i+1)
		if err := p.SaveSlideAsImage(i, path, opts); err != nil {
			return fmt.Errorf("slide %d: %w", i+1, err)
		}
	}
	return nil
}

// GenerateThumbnail renders the first slide as a JPEG and stores it as the
// package thumbnail.
func (p *Presentation) GenerateThumbnail(width int, fonts *FontCache) error {
	opts := DefaultRenderOptions()
	opts.Width = width
	opts.FontCache = fonts
	img, err := p.SlideToImage(0, opts)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	p.presentationProperties.SetThumbnailData(buf.Bytes())
	return nil
}

func saveImage(img image.Image, path string, opts *RenderOptions) error {
	if opts == nil {
		opts = DefaultRenderOptions()
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	switch opts.Format {
	case ImageFormatJPEG:
		quality := opts.JPEGQuality
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	default:
		return png.Encode(f, img)
	}
}

// --- renderer ---

type renderer struct {
	img       *image.RGBA
	scaleX    float64
	scaleY    float64
	fontCache *FontCache
}

func (r *renderer) renderShape(shape Shape) {
	switch s := shape.(type) {
	case *RichTextShape:
		r.renderBox(&s.BaseShape)
		r.drawTextFrame(&s.TextFrame, r.shapeRect(&s.BaseShape))
	case *AutoShape:
		r.renderBox(&s.BaseShape)
		r.drawTextFrame(&s.TextFrame, r.shapeRect(&s.BaseShape))
	case *DrawingShape:
		r.renderDrawing(s)
	}
}

func (r *renderer) emuToPixelX(emu int64) int {
	return int(math.Round(float64(emu) * r.scaleX))
}

func (r *renderer) emuToPixelY(emu int64) int {
	return int(math.Round(float64(emu) * r.scaleY))
}

func (r *renderer) shapeRect(b *BaseShape) image.Rectangle {
	x := r.emuToPixelX(b.offsetX)
	y := r.emuToPixelY(b.offsetY)
	return image.Rect(x, y, x+r.emuToPixelX(b.width), y+r.emuToPixelY(b.height))
}

func argbToNRGBA(c Color) color.NRGBA {
	return color.NRGBA{R: c.GetRed(), G: c.GetGreen(), B: c.GetBlue(), A: c.GetAlpha()}
}

// renderBox paints the shadow, fill and outline of a shape's property tree.
func (r *renderer) renderBox(b *BaseShape) {
	if b.spPr == nil {
		return
	}
	rect := r.shapeRect(b)
	if rect.Empty() {
		return
	}
	geom, adj := GeometryOf(b.spPr)
	mask := newShapeMask(geom, adj, rect)

	if shadow, ok := shadowOf(b.spPr); ok {
		dx := r.emuToPixelX(int64(float64(shadow.dist) * math.Cos(shadow.dir)))
		dy := r.emuToPixelY(int64(float64(shadow.dist) * math.Sin(shadow.dir)))
		shifted := newShapeMask(geom, adj, rect.Add(image.Pt(dx, dy)))
		r.paint(shifted.rect, Paint{Kind: PaintSolid, Colors: []Color{shadow.color}}, shifted)
	}

	r.paint(rect, PaintOf(b.spPr), mask)

	if c, w, ok := OutlineOf(b.spPr); ok {
		pw := int(math.Round(float64(w) * r.scaleX))
		if pw < 1 {
			pw = 1
		}
		r.paint(rect, Paint{Kind: PaintSolid, Colors: []Color{c}}, &ringMask{outer: mask, inner: mask.inset(pw)})
	}
}

// paint composites p over rect through mask; a nil mask covers rect.
func (r *renderer) paint(rect image.Rectangle, p Paint, mask image.Image) {
	var src image.Image
	switch p.Kind {
	case PaintSolid:
		src = image.NewUniform(argbToNRGBA(p.Colors[0]))
	case PaintGradient:
		src = newLinearGradient(rect, p)
	default:
		return
	}
	if mask == nil {
		draw.Draw(r.img, rect, src, rect.Min, draw.Over)
		return
	}
	draw.DrawMask(r.img, rect, src, rect.Min, mask, rect.Min, draw.Over)
}

func (r *renderer) renderDrawing(s *DrawingShape) {
	rect := r.shapeRect(&s.BaseShape)
	if len(s.data) == 0 || rect.Empty() {
		return
	}
	src, _, err := image.Decode(bytes.NewReader(s.data))
	if err != nil {
		r.paint(rect, Paint{Kind: PaintSolid, Colors: []Color{NewColor("C8C8C8")}}, &ringMask{
			outer: newShapeMask(AutoShapeRectangle, -1, rect),
			inner: newShapeMask(AutoShapeRectangle, -1, rect.Inset(1)),
		})
		return
	}
	draw.CatmullRom.Scale(r.img, rect, src, src.Bounds(), draw.Over, nil)
}

// --- Geometry masks ---

// shapeMask is an alpha mask for a rect, roundRect or ellipse preset.
type shapeMask struct {
	geom   AutoShapeType
	rect   image.Rectangle
	radius float64
}

func newShapeMask(geom AutoShapeType, adj int, rect image.Rectangle) *shapeMask {
	m := &shapeMask{geom: geom, rect: rect}
	if geom == AutoShapeRoundedRect {
		if adj < 0 {
			adj = 16667 // PowerPoint's default roundRect guide
		}
		minDim := math.Min(float64(rect.Dx()), float64(rect.Dy()))
		m.radius = float64(adj) / 100000 * minDim
	}
	return m
}

func (m *shapeMask) inset(n int) *shapeMask {
	return &shapeMask{geom: m.geom, rect: m.rect.Inset(n), radius: math.Max(m.radius-float64(n), 0)}
}

func (m *shapeMask) ColorModel() color.Model { return color.AlphaModel }
func (m *shapeMask) Bounds() image.Rectangle { return m.rect }

func (m *shapeMask) At(x, y int) color.Color {
	if m.contains(float64(x)+0.5, float64(y)+0.5) {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}

func (m *shapeMask) contains(px, py float64) bool {
	minX, minY := float64(m.rect.Min.X), float64(m.rect.Min.Y)
	maxX, maxY := float64(m.rect.Max.X), float64(m.rect.Max.Y)
	if px < minX || px >= maxX || py < minY || py >= maxY {
		return false
	}
	switch m.geom {
	case AutoShapeEllipse:
		rx, ry := (maxX-minX)/2, (maxY-minY)/2
		dx, dy := (px-minX-rx)/rx, (py-minY-ry)/ry
		return dx*dx+dy*dy <= 1
	case AutoShapeRoundedRect:
		rad := m.radius
		if rad <= 0 {
			return true
		}
		cx := math.Min(math.Max(px, minX+rad), maxX-rad)
		cy := math.Min(math.Max(py, minY+rad), maxY-rad)
		dx, dy := px-cx, py-cy
		return dx*dx+dy*dy <= rad*rad
	default:
		return true
	}
}

// ringMask covers outer minus inner, which strokes the outline.
type ringMask struct {
	outer, inner *shapeMask
}

func (m *ringMask) ColorModel() color.Model { return color.AlphaModel }
func (m *ringMask) Bounds() image.Rectangle { return m.outer.rect }

func (m *ringMask) At(x, y int) color.Color {
	px, py := float64(x)+0.5, float64(y)+0.5
	if m.outer.contains(px, py) && !m.inner.contains(px, py) {
		return color.Alpha{A: 0xFF}
	}
	return color.Alpha{}
}

// --- Gradient ---

// linearGradient evaluates a DrawingML linear gradient over rect. An angle
// of 0 runs left to right and 90 runs top to bottom.
type linearGradient struct {
	rect       image.Rectangle
	stops      []color.NRGBA
	cos, sin   float64
	halfExtent float64
}

func newLinearGradient(rect image.Rectangle, p Paint) *linearGradient {
	g := &linearGradient{rect: rect}
	for _, c := range p.Colors {
		g.stops = append(g.stops, argbToNRGBA(c))
	}
	rad := p.Angle * math.Pi / 180
	g.cos, g.sin = math.Cos(rad), math.Sin(rad)
	g.halfExtent = (math.Abs(float64(rect.Dx())*g.cos) + math.Abs(float64(rect.Dy())*g.sin)) / 2
	return g
}

func (g *linearGradient) ColorModel() color.Model { return color.NRGBAModel }
func (g *linearGradient) Bounds() image.Rectangle { return g.rect }

func (g *linearGradient) At(x, y int) color.Color {
	if len(g.stops) == 1 || g.halfExtent == 0 {
		return g.stops[0]
	}
	cx := float64(g.rect.Min.X+g.rect.Max.X) / 2
	cy := float64(g.rect.Min.Y+g.rect.Max.Y) / 2
	proj := (float64(x)+0.5-cx)*g.cos + (float64(y)+0.5-cy)*g.sin
	t := math.Min(math.Max((proj/g.halfExtent+1)/2, 0), 1)

	seg := t * float64(len(g.stops)-1)
	i := int(seg)
	if i >= len(g.stops)-1 {
		return g.stops[len(g.stops)-1]
	}
	f := seg - float64(i)
	a, b := g.stops[i], g.stops[i+1]
	lerp := func(u, v uint8) uint8 { return uint8(math.Round(float64(u) + (float64(v)-float64(u))*f)) }
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

// --- Shadow ---

type shadowSpec struct {
	dist  int64
	dir   float64 // radians
	color Color
}

// shadowOf reads the first <a:outerShdw> of a property tree.
func shadowOf(props *etree.Element) (shadowSpec, bool) {
	eff := props.SelectElement("a:effectLst")
	if eff == nil {
		return shadowSpec{}, false
	}
	sh := eff.SelectElement("a:outerShdw")
	if sh == nil {
		return shadowSpec{}, false
	}
	c, ok := colorOf(sh)
	if !ok {
		c = NewColor("66000000")
	}
	dist, _ := strconv.ParseInt(sh.SelectAttrValue("dist", "0"), 10, 64)
	dir, _ := strconv.Atoi(sh.SelectAttrValue("dir", "0"))
	return shadowSpec{dist: dist, dir: float64(dir) / 60000 * math.Pi / 180, color: c}, true
}

// --- Text rendering ---

// getFace returns a face for f scaled to the output resolution.
func (r *renderer) getFace(f *Font) font.Face {
	if f == nil {
		f = NewFont()
	}
	sizePt := float64(f.Size)
	if sizePt <= 0 {
		sizePt = 10
	}
	scaledPt := sizePt * 12700 * r.scaleY
	name := f.Name
	if name == "" {
		name = "Calibri"
	}
	return r.fontCache.GetFace(name, scaledPt, f.Bold, f.Italic)
}

// textRun holds rendering info for a single text run.
type textRun struct {
	text  string
	face  font.Face
	color color.NRGBA
}

// textLine holds a wrapped line of text runs.
type textLine struct {
	runs      []textRun
	width     int
	height    int
	alignment HorizontalAlignment
}

func buildTextLine(runs []textRun, align HorizontalAlignment) textLine {
	totalW := 0
	maxH := 0
	for _, r := range runs {
		totalW += font.MeasureString(r.face, r.text).Ceil()
		if h := r.face.Metrics().Height.Ceil(); h > maxH {
			maxH = h
		}
	}
	if maxH <= 0 {
		maxH = 14
	}
	return textLine{runs: runs, width: totalW, height: maxH, alignment: align}
}

// drawTextFrame lays out a text frame inside rect, applying the insets,
// the vertical anchor and word wrap.
func (r *renderer) drawTextFrame(tf *TextFrame, rect image.Rectangle) {
	if len(tf.paragraphs) == 0 || tf.PlainText() == "" {
		return
	}
	// DrawingML default insets are 0.1" horizontally and 0.05" vertically.
	l, t, rt, b := int64(91440), int64(45720), int64(91440), int64(45720)
	if tf.insetsSet {
		l, t, rt, b = tf.insetLeft, tf.insetTop, tf.insetRight, tf.insetBottom
	}
	inner := image.Rect(
		rect.Min.X+r.emuToPixelX(l), rect.Min.Y+r.emuToPixelY(t),
		rect.Max.X-r.emuToPixelX(rt), rect.Max.Y-r.emuToPixelY(b),
	)

	wrapWidth := inner.Dx()
	if !tf.wordWrap {
		wrapWidth = 0
	}
	lines := r.layoutParagraphs(tf.paragraphs, wrapWidth)

	total := 0
	for _, line := range lines {
		total += line.height
	}
	curY := inner.Min.Y
	switch tf.textAnchor {
	case TextAnchorMiddle:
		curY += (inner.Dy() - total) / 2
	case TextAnchorBottom:
		curY = inner.Max.Y - total
	}

	for _, line := range lines {
		curY += line.height
		drawX := inner.Min.X
		switch line.alignment {
		case HorizontalCenter:
			drawX += (inner.Dx() - line.width) / 2
		case HorizontalRight:
			drawX = inner.Max.X - line.width
		}
		descent := 0
		if len(line.runs) > 0 {
			descent = line.runs[0].face.Metrics().Descent.Ceil()
		}
		for _, run := range line.runs {
			d := &font.Drawer{
				Dst:  r.img,
				Src:  image.NewUniform(run.color),
				Face: run.face,
				Dot:  fixed.P(drawX, curY-descent),
			}
			d.DrawString(run.text)
			drawX += font.MeasureString(run.face, run.text).Ceil()
		}
	}
}

func (r *renderer) layoutParagraphs(paragraphs []*Paragraph, wrapWidth int) []textLine {
	var allLines []textLine
	for _, para := range paragraphs {
		align := HorizontalLeft
		if para.alignment != nil {
			align = para.alignment.Horizontal
		}
		start := len(allLines)

		var runs []textRun
		for _, elem := range para.elements {
			switch e := elem.(type) {
			case *TextRun:
				tc := color.NRGBA{A: 255}
				if e.font != nil {
					tc = argbToNRGBA(e.font.Color)
				}
				runs = append(runs, textRun{text: e.text, face: r.getFace(e.font), color: tc})
			case *BreakElement:
				allLines = append(allLines, r.flush(runs, align, wrapWidth)...)
				runs = nil
			}
		}
		allLines = append(allLines, r.flush(runs, align, wrapWidth)...)

		if para.lineSpacing > 0 {
			for i := start; i < len(allLines); i++ {
				allLines[i].height = allLines[i].height * para.lineSpacing / 100000
			}
		}
		if para.spaceBefore > 0 && start < len(allLines) {
			allLines[start].height += r.emuToPixelY(int64(para.spaceBefore) * 127)
		}
		if para.spaceAfter > 0 && len(allLines) > start {
			allLines[len(allLines)-1].height += r.emuToPixelY(int64(para.spaceAfter) * 127)
		}
	}
	return allLines
}

func (r *renderer) flush(runs []textRun, align HorizontalAlignment, wrapWidth int) []textLine {
	if len(runs) == 0 {
		return []textLine{{height: 14, alignment: align}}
	}
	line := buildTextLine(runs, align)
	if wrapWidth <= 0 || line.width <= wrapWidth {
		return []textLine{line}
	}
	return wrapRunLine(line, wrapWidth)
}

// wrapRunLine wraps a textLine into multiple lines that fit within maxWidth.
func wrapRunLine(line textLine, maxWidth int) []textLine {
	type styledWord struct {
		word  string
		face  font.Face
		color color.NRGBA
	}

	var words []styledWord
	for ri, run := range line.runs {
		for i, w := range strings.Fields(run.text) {
			if i > 0 || (ri > 0 && strings.HasPrefix(run.text, " ")) {
				w = " " + w
			}
			words = append(words, styledWord{word: w, face: run.face, color: run.color})
		}
	}
	if len(words) == 0 {
		return []textLine{line}
	}

	var result []textLine
	var curRuns []textRun
	curWidth := 0
	for _, sw := range words {
		ww := font.MeasureString(sw.face, sw.word).Ceil()
		if curWidth+ww > maxWidth && curWidth > 0 {
			result = append(result, buildTextLine(curRuns, line.alignment))
			curRuns = nil
			curWidth = 0
			sw.word = strings.TrimLeft(sw.word, " ")
			ww = font.MeasureString(sw.face, sw.word).Ceil()
		}
		curRuns = append(curRuns, textRun{text: sw.word, face: sw.face, color: sw.color})
		curWidth += ww
	}
	if len(curRuns) > 0 {
		result = append(result, buildTextLine(curRuns, line.alignment))
	}
	return result
}

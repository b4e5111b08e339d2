package brandeck

import (
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"
)

// Shape is the interface that all shapes implement.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	GetRotation() int
	// ShapeProperties returns the shape's <p:spPr> markup tree.
	ShapeProperties() *etree.Element
	// base returns the underlying BaseShape (unexported, internal use only).
	base() *BaseShape
}

// ShapeType represents the type of shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeAutoShape
)

// AutoShapeType is a DrawingML preset geometry name.
type AutoShapeType string

const (
	AutoShapeRectangle   AutoShapeType = "rect"
	AutoShapeRoundedRect AutoShapeType = "roundRect"
	AutoShapeEllipse     AutoShapeType = "ellipse"
)

// BaseShape contains common shape properties.
type BaseShape struct {
	name           string
	description    string
	offsetX        int64 // in EMU
	offsetY        int64 // in EMU
	width          int64 // in EMU
	height         int64 // in EMU
	rotation       int   // in degrees
	flipHorizontal bool
	flipVertical   bool
	geometry       AutoShapeType
	spPr           *etree.Element
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) GetRotation() int  { return b.rotation }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetOffsetX(x int64) *BaseShape { b.offsetX = x; return b }
func (b *BaseShape) SetOffsetY(y int64) *BaseShape { b.offsetY = y; return b }
func (b *BaseShape) SetWidth(w int64) *BaseShape   { b.width = w; return b }
func (b *BaseShape) SetHeight(h int64) *BaseShape  { b.height = h; return b }
func (b *BaseShape) SetName(n string) *BaseShape   { b.name = n; return b }
func (b *BaseShape) SetRotation(r int) *BaseShape  { b.rotation = ((r % 360) + 360) % 360; return b }

// SetPosition sets both offset X and Y in EMU.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX = x
	b.offsetY = y
	return b
}

// SetSize sets both width and height in EMU.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width = w
	b.height = h
	return b
}

// SetFlipHorizontal controls horizontal flipping.
func (b *BaseShape) SetFlipHorizontal(flip bool) *BaseShape {
	b.flipHorizontal = flip
	return b
}

// SetFlipVertical controls vertical flipping.
func (b *BaseShape) SetFlipVertical(flip bool) *BaseShape {
	b.flipVertical = flip
	return b
}

func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

// GetGeometry returns the preset geometry.
func (b *BaseShape) GetGeometry() AutoShapeType { return b.geometry }

// ShapeProperties returns the <p:spPr> tree, materializing it from the
// shape geometry on first use. Once materialized the tree is authoritative
// for fill, outline and effects; position and size are re-synced from the
// shape fields when the slide is written.
func (b *BaseShape) ShapeProperties() *etree.Element {
	if b.spPr == nil {
		b.spPr = newShapeProperties(b)
	}
	return b.spPr
}

func (b *BaseShape) setGeometry(t AutoShapeType) {
	if t == b.geometry {
		return
	}
	b.geometry = t
	if b.spPr == nil {
		return
	}
	geom := b.spPr.SelectElement("a:prstGeom")
	if geom == nil {
		return
	}
	geom.CreateAttr("prst", string(t))
	// Guides belong to the previous preset.
	for _, av := range geom.SelectElements("a:avLst") {
		geom.RemoveChild(av)
	}
	geom.CreateElement("a:avLst")
}

// TextAnchorType represents the vertical anchoring of text within a shape.
type TextAnchorType string

const (
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
	TextAnchorNone   TextAnchorType = ""
)

// AutoFitType represents the auto-fit behavior.
type AutoFitType int

const (
	AutoFitNone AutoFitType = iota
	AutoFitNormal
	AutoFitShape
)

// TextFrame is the text body shared by text boxes and preset shapes.
type TextFrame struct {
	paragraphs      []*Paragraph
	activeParagraph int
	wordWrap        bool
	textAnchor      TextAnchorType
	autoFit         AutoFitType
	// Text insets (padding) in EMU, written only when insetsSet.
	insetLeft   int64
	insetRight  int64
	insetTop    int64
	insetBottom int64
	insetsSet   bool
}

// GetActiveParagraph returns the active paragraph.
func (t *TextFrame) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.activeParagraph = 0
	}
	return t.paragraphs[t.activeParagraph]
}

// CreateParagraph creates a new paragraph and makes it active.
func (t *TextFrame) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.activeParagraph = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns all paragraphs.
func (t *TextFrame) GetParagraphs() []*Paragraph {
	return t.paragraphs
}

// CreateTextRun creates a text run in the active paragraph.
func (t *TextFrame) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// CreateBreak creates a line break in the active paragraph.
func (t *TextFrame) CreateBreak() *BreakElement {
	return t.GetActiveParagraph().CreateBreak()
}

// PlainText joins the text of all runs, one line per paragraph.
func (t *TextFrame) PlainText() string {
	lines := make([]string, 0, len(t.paragraphs))
	for _, p := range t.paragraphs {
		var sb strings.Builder
		for _, e := range p.elements {
			switch el := e.(type) {
			case *TextRun:
				sb.WriteString(el.text)
			case *BreakElement:
				sb.WriteByte('\n')
			}
		}
		lines = append(lines, sb.String())
	}
	return strings.Join(lines, "\n")
}

// SetWordWrap sets word wrap.
func (t *TextFrame) SetWordWrap(wrap bool) { t.wordWrap = wrap }

// GetWordWrap returns word wrap setting.
func (t *TextFrame) GetWordWrap() bool { return t.wordWrap }

// SetTextAnchor sets the vertical position of text within the shape.
func (t *TextFrame) SetTextAnchor(anchor TextAnchorType) { t.textAnchor = anchor }

// GetTextAnchor returns the text anchoring type.
func (t *TextFrame) GetTextAnchor() TextAnchorType { return t.textAnchor }

// SetAutoFit sets the auto-fit type.
func (t *TextFrame) SetAutoFit(fit AutoFitType) { t.autoFit = fit }

// GetAutoFit returns the auto-fit type.
func (t *TextFrame) GetAutoFit() AutoFitType { return t.autoFit }

// SetInsets sets the text padding in EMU.
func (t *TextFrame) SetInsets(left, top, right, bottom int64) {
	t.insetLeft, t.insetTop, t.insetRight, t.insetBottom = left, top, right, bottom
	t.insetsSet = true
}

// RichTextShape represents a text box.
type RichTextShape struct {
	BaseShape
	TextFrame
}

func (r *RichTextShape) GetType() ShapeType { return ShapeTypeRichText }

// NewRichTextShape creates a new text box with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{
		BaseShape: BaseShape{geometry: AutoShapeRectangle},
		TextFrame: TextFrame{paragraphs: []*Paragraph{NewParagraph()}, wordWrap: true},
	}
}

// SetHeight sets the height and returns the shape for chaining.
func (r *RichTextShape) SetHeight(h int64) *RichTextShape {
	r.height = h
	return r
}

// SetWidth sets the width and returns the shape for chaining.
func (r *RichTextShape) SetWidth(w int64) *RichTextShape {
	r.width = w
	return r
}

// SetOffsetX sets the X offset and returns the shape for chaining.
func (r *RichTextShape) SetOffsetX(x int64) *RichTextShape {
	r.offsetX = x
	return r
}

// SetOffsetY sets the Y offset and returns the shape for chaining.
func (r *RichTextShape) SetOffsetY(y int64) *RichTextShape {
	r.offsetY = y
	return r
}

// Paragraph represents a text paragraph.
type Paragraph struct {
	elements    []ParagraphElement
	alignment   *Alignment
	lineSpacing int // spcPct in thousandths of a percent; 0 means single
	spaceBefore int // in hundredths of a point
	spaceAfter  int // in hundredths of a point
}

// ParagraphElement is the interface for paragraph content.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates a new paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{
		elements:  make([]ParagraphElement, 0),
		alignment: NewAlignment(),
	}
}

// GetAlignment returns the paragraph alignment.
func (p *Paragraph) GetAlignment() *Alignment { return p.alignment }

// SetAlignment sets the paragraph alignment.
func (p *Paragraph) SetAlignment(a *Alignment) { p.alignment = a }

// GetLineSpacing returns the line spacing in thousandths of a percent.
func (p *Paragraph) GetLineSpacing() int { return p.lineSpacing }

// SetLineSpacing sets the line spacing in thousandths of a percent
// (140000 is 1.4 lines).
func (p *Paragraph) SetLineSpacing(spacing int) { p.lineSpacing = spacing }

// GetElements returns all paragraph elements.
func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// GetSpaceBefore returns the space before the paragraph.
func (p *Paragraph) GetSpaceBefore() int { return p.spaceBefore }

// SetSpaceBefore sets the space before the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceBefore(v int) { p.spaceBefore = v }

// GetSpaceAfter returns the space after the paragraph.
func (p *Paragraph) GetSpaceAfter() int { return p.spaceAfter }

// SetSpaceAfter sets the space after the paragraph in hundredths of a point.
func (p *Paragraph) SetSpaceAfter(v int) { p.spaceAfter = v }

// CreateTextRun creates a new text run.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{
		text: text,
		font: NewFont(),
	}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak creates a line break element.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// TextRun represents a run of text with formatting.
type TextRun struct {
	text string
	font *Font
}

func (tr *TextRun) GetElementType() string { return "textrun" }

// GetText returns the text content.
func (tr *TextRun) GetText() string { return tr.text }

// SetText sets the text content.
func (tr *TextRun) SetText(text string) { tr.text = text }

// GetFont returns the font properties.
func (tr *TextRun) GetFont() *Font { return tr.font }

// SetFont sets the font properties.
func (tr *TextRun) SetFont(f *Font) { tr.font = f }

// BreakElement represents a line break.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }

// DrawingShape represents a picture.
type DrawingShape struct {
	BaseShape
	path     string // file path
	data     []byte // raw image data
	mimeType string
}

func (d *DrawingShape) GetType() ShapeType { return ShapeTypeDrawing }

// NewDrawingShape creates a new picture.
func NewDrawingShape() *DrawingShape {
	return &DrawingShape{BaseShape: BaseShape{geometry: AutoShapeRectangle}}
}

// GetPath returns the file the image was loaded from, if any.
func (d *DrawingShape) GetPath() string { return d.path }

// SetImageData sets the raw image data. An empty mimeType is detected
// from the data.
func (d *DrawingShape) SetImageData(data []byte, mimeType string) *DrawingShape {
	if mimeType == "" {
		mimeType = mimetype.Detect(data).String()
	}
	d.data = data
	d.mimeType = mimeType
	return d
}

// GetImageData returns the raw image data.
func (d *DrawingShape) GetImageData() []byte { return d.data }

// GetMimeType returns the image MIME type.
func (d *DrawingShape) GetMimeType() string { return d.mimeType }

// maxImageFileSize is the maximum allowed size for an image file loaded from disk.
const maxImageFileSize = 50 << 20 // 50 MB

// SetImageFromFile loads an image from a file path and sets the data and
// the MIME type sniffed from its content.
// Returns an error if the file exceeds maxImageFileSize or cannot be read.
func (d *DrawingShape) SetImageFromFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat image file: %w", err)
	}
	if info.Size() > maxImageFileSize {
		return fmt.Errorf("image file too large: %d bytes (max %d)", info.Size(), maxImageFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image file: %w", err)
	}
	d.path = path
	d.data = data
	d.mimeType = mimetype.Detect(data).String()
	return nil
}

// SetHeight sets the height and returns for chaining.
func (d *DrawingShape) SetHeight(h int64) *DrawingShape {
	d.height = h
	return d
}

// SetWidth sets the width and returns for chaining.
func (d *DrawingShape) SetWidth(w int64) *DrawingShape {
	d.width = w
	return d
}

// SetOffsetX sets the X offset and returns for chaining.
func (d *DrawingShape) SetOffsetX(x int64) *DrawingShape {
	d.offsetX = x
	return d
}

// SetOffsetY sets the Y offset and returns for chaining.
func (d *DrawingShape) SetOffsetY(y int64) *DrawingShape {
	d.offsetY = y
	return d
}

// AutoShape represents a preset shape (rectangle, ellipse, etc.) with an
// optional text body.
type AutoShape struct {
	BaseShape
	TextFrame
}

func (a *AutoShape) GetType() ShapeType { return ShapeTypeAutoShape }

// NewAutoShape creates a new rectangle without text.
func NewAutoShape() *AutoShape {
	return &AutoShape{
		BaseShape: BaseShape{geometry: AutoShapeRectangle},
		TextFrame: TextFrame{wordWrap: true},
	}
}

// SetAutoShapeType sets the preset geometry.
func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape {
	a.setGeometry(t)
	return a
}

// GetAutoShapeType returns the preset geometry.
func (a *AutoShape) GetAutoShapeType() AutoShapeType {
	return a.geometry
}

// SetText replaces the text body with a single run and returns it.
func (a *AutoShape) SetText(text string) *TextRun {
	a.paragraphs = []*Paragraph{NewParagraph()}
	a.activeParagraph = 0
	return a.paragraphs[0].CreateTextRun(text)
}

// GetText returns the text content.
func (a *AutoShape) GetText() string {
	return a.PlainText()
}

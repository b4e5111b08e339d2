// Package audit checks a rendered presentation against the brand it was
// rendered for.
package audit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/primitive"
)

// logoName is the shape name the builder gives placed logos.
const logoName = "Logo"

// rightEdgeLimit is the share of the slide width a logo may start at
// before it counts as right-aligned.
const rightEdgeLimit = 0.75

// Finding is one brand rule violation. Slide is 1-based; zero means the
// finding is about the document itself.
type Finding struct {
	Slide   int
	Shape   string
	Message string
}

func (f Finding) String() string {
	switch {
	case f.Slide == 0:
		return f.Message
	case f.Shape == "":
		return fmt.Sprintf("slide %d: %s", f.Slide, f.Message)
	default:
		return fmt.Sprintf("slide %d, %s: %s", f.Slide, f.Shape, f.Message)
	}
}

type options struct {
	log zerolog.Logger
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger used to report the audit summary.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

type auditor struct {
	theme    *brand.Theme
	colors   map[string]bool
	fonts    map[string]bool
	width    int64
	findings []Finding
}

// Run audits every slide of p and returns the findings in slide order.
func Run(p *brandeck.Presentation, theme *brand.Theme, opts ...Option) []Finding {
	o := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With().Str("component", "audit").Logger()

	a := &auditor{theme: theme, colors: allowedColors(theme), fonts: allowedFonts(theme)}
	a.checkSize(p.GetLayout())
	for i, slide := range p.GetAllSlides() {
		a.checkSlide(i+1, slide)
	}

	log.Debug().Int("slides", p.GetSlideCount()).Int("findings", len(a.findings)).Msg("audit complete")
	return a.findings
}

func allowedColors(t *brand.Theme) map[string]bool {
	set := map[string]bool{
		primitive.Black.Hex(): true,
		primitive.White.Hex(): true,
	}
	add := func(c primitive.RGB) { set[c.Hex()] = true }
	for _, c := range t.Palette() {
		add(c)
	}
	for _, c := range t.Roles() {
		add(c)
	}
	add(t.Card().Fill)
	add(t.Button().Fill)
	add(t.Button().Text)
	if g, ok := t.Gradient("hero"); ok {
		add(g.From)
		add(g.To)
	}
	return set
}

func allowedFonts(t *brand.Theme) map[string]bool {
	f := t.Fonts()
	set := make(map[string]bool)
	for _, name := range []string{f.Headline, f.Body, f.Utility, f.Fallback} {
		if name != "" {
			set[name] = true
		}
	}
	return set
}

func (a *auditor) add(slide int, shape, format string, args ...any) {
	a.findings = append(a.findings, Finding{Slide: slide, Shape: shape, Message: fmt.Sprintf(format, args...)})
}

func (a *auditor) checkSize(l *brandeck.DocumentLayout) {
	w, h := a.theme.SlideSize()
	a.width = brandeck.Inch(w)
	if l == nil {
		a.add(0, "", "document has no layout")
		return
	}
	if l.CX != brandeck.Inch(w) || l.CY != brandeck.Inch(h) {
		a.add(0, "", "slide size %dx%d EMU, brand requires %dx%d",
			l.CX, l.CY, brandeck.Inch(w), brandeck.Inch(h))
	}
	if l.CX > 0 {
		a.width = l.CX
	}
}

func (a *auditor) checkSlide(idx int, slide *brandeck.Slide) {
	if slide.HasBackground() {
		a.checkPaint(idx, "background", slide.BackgroundProperties())
	}
	for _, shape := range slide.GetShapes() {
		name := shape.GetName()
		a.checkPaint(idx, name, shape.ShapeProperties())
		if c, _, ok := brandeck.OutlineOf(shape.ShapeProperties()); ok {
			a.checkColor(idx, name, "outline", c)
		}
		for _, para := range paragraphsOf(shape) {
			a.checkRuns(idx, name, para)
		}
		if name == logoName {
			a.checkLogo(idx, shape)
		}
	}
}

func (a *auditor) checkPaint(idx int, name string, props *etree.Element) {
	paint := brandeck.PaintOf(props)
	what := "fill"
	if paint.Kind == brandeck.PaintGradient {
		what = "gradient stop"
	}
	for _, c := range paint.Colors {
		a.checkColor(idx, name, what, c)
	}
}

func (a *auditor) checkColor(idx int, name, what string, c brandeck.Color) {
	if !a.colors[c.RGB()] {
		a.add(idx, name, "%s color #%s is not in the brand palette", what, c.RGB())
	}
}

func (a *auditor) checkRuns(idx int, name string, para *brandeck.Paragraph) {
	for _, el := range para.GetElements() {
		run, ok := el.(*brandeck.TextRun)
		if !ok || run.GetFont() == nil {
			continue
		}
		font := run.GetFont()
		if !a.fonts[font.Name] {
			a.add(idx, name, "font %q is not a brand font (%s)", font.Name, strings.Join(a.fontList(), ", "))
		}
		a.checkColor(idx, name, "text", font.Color)
	}
}

func (a *auditor) fontList() []string {
	out := make([]string, 0, len(a.fonts))
	for f := range a.fonts {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func (a *auditor) checkLogo(idx int, shape brandeck.Shape) {
	x, w := shape.GetOffsetX(), shape.GetWidth()
	if float64(x) > rightEdgeLimit*float64(a.width) || (x > 0 && x+w >= a.width) {
		a.add(idx, shape.GetName(), "logo is right-aligned at x=%.2fin", float64(x)/float64(brandeck.Inch(1)))
	}
}

func paragraphsOf(shape brandeck.Shape) []*brandeck.Paragraph {
	if tf, ok := shape.(interface{ GetParagraphs() []*brandeck.Paragraph }); ok {
		return tf.GetParagraphs()
	}
	return nil
}

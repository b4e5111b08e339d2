package render

import (
	"archive/zip"
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/builder"
	"github.com/VantageDataChat/brandeck/spec"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 77, G: 117, B: 254, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newBuilder(t *testing.T) *builder.Builder {
	t.Helper()
	dir := t.TempDir()
	cfg := brand.Default()
	cfg.LogoAssets = map[string]string{}
	for key, size := range map[string][2]int{
		"colored_horizontal_png": {400, 100},
		"white_horizontal_png":   {400, 100},
		"favicon_colored_png":    {32, 32},
	} {
		path := filepath.Join(dir, key+".png")
		writePNG(t, path, size[0], size[1])
		cfg.LogoAssets[key] = path
	}
	theme, err := brand.BuildTheme(cfg)
	require.NoError(t, err)
	b, err := builder.New(brandeck.New(), theme,
		builder.WithClock(func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }))
	require.NoError(t, err)
	return b
}

func countNamed(slide *brandeck.Slide, name string) int {
	n := 0
	for _, s := range slide.GetShapes() {
		if s.GetName() == name {
			n++
		}
	}
	return n
}

func texts(slide *brandeck.Slide) []string {
	var out []string
	for _, s := range slide.GetShapes() {
		switch sh := s.(type) {
		case *brandeck.RichTextShape:
			out = append(out, sh.PlainText())
		case *brandeck.AutoShape:
			if txt := sh.GetText(); txt != "" {
				out = append(out, txt)
			}
		}
	}
	return out
}

func render(t *testing.T, slides ...spec.Slide) (*builder.Builder, Report) {
	t.Helper()
	b := newBuilder(t)
	rep := NewEngine().Render(b, &spec.Deck{Slides: slides})
	return b, rep
}

func TestDefaultRegistryCoversEveryKind(t *testing.T) {
	r := DefaultRegistry()
	assert.Len(t, r.Kinds(), len(spec.Kinds()))
	for _, k := range spec.Kinds() {
		fn, err := r.Lookup(k)
		assert.NoError(t, err, k)
		assert.NotNil(t, fn, k)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := DefaultRegistry().Lookup("timeline")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownSlideType))
	var ue *UnknownSlideTypeError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, spec.Kind("timeline"), ue.Kind)
}

func TestOneSlidePerMinimalSpec(t *testing.T) {
	for _, kind := range spec.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			d, err := spec.Parse([]byte(`{"slides": [{"type": "`+string(kind)+`"}]}`), spec.FormatJSON)
			require.NoError(t, err)

			b := newBuilder(t)
			rep := NewEngine().Render(b, d)
			assert.NoError(t, rep.Err())
			assert.Equal(t, 1, rep.Rendered)
			assert.Equal(t, 1, b.Deck().GetSlideCount())
			assert.NoError(t, b.Deck().Validate())
		})
	}
}

func TestTeamIsCapped(t *testing.T) {
	members := make([]spec.Member, 10)
	for i := range members {
		members[i] = spec.Member{Name: "Person", Role: "Role"}
	}
	b, rep := render(t, spec.Team{Members: members})
	require.NoError(t, rep.Err())

	slide, err := b.Deck().GetSlide(0)
	require.NoError(t, err)
	assert.Equal(t, 6, countNamed(slide, "Card"))
	require.Len(t, rep.Notices, 1)
	assert.Equal(t, 1, rep.Notices[0].Index)
	assert.Contains(t, rep.Notices[0].Message, "6 of 10")
}

func TestTeamCapOverride(t *testing.T) {
	b := newBuilder(t)
	members := make([]spec.Member, 5)
	rep := NewEngine(WithMaxTeamMembers(3)).Render(b, &spec.Deck{Slides: []spec.Slide{spec.Team{Members: members}}})
	slide, _ := b.Deck().GetSlide(0)
	assert.Equal(t, 3, countNamed(slide, "Card"))
	require.Len(t, rep.Notices, 1)
	assert.Contains(t, rep.Notices[0].Message, "3 of 5")
}

func TestTeamDefaults(t *testing.T) {
	b, rep := render(t, spec.Team{})
	require.NoError(t, rep.Err())
	assert.Empty(t, rep.Notices)
	slide, _ := b.Deck().GetSlide(0)
	assert.Equal(t, 4, countNamed(slide, "Card"))
	assert.Contains(t, texts(slide), "Team Member 3")
	assert.Contains(t, texts(slide), "TM")
}

func TestUnknownKindIsSkipped(t *testing.T) {
	var logs bytes.Buffer
	b := newBuilder(t)
	deck := &spec.Deck{Slides: []spec.Slide{
		spec.Cover{Title: "A"},
		spec.Unknown{Type: "timeline"},
		spec.Blank{},
	}}
	rep := NewEngine(WithLogger(zerolog.New(&logs))).Render(b, deck)

	assert.Equal(t, 2, rep.Rendered)
	assert.Equal(t, 2, b.Deck().GetSlideCount())
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, 2, rep.Failures[0].Index)
	assert.Equal(t, spec.Kind("timeline"), rep.Failures[0].Kind)
	assert.True(t, errors.Is(rep.Err(), ErrUnknownSlideType))
	assert.Contains(t, logs.String(), "skipping slide")
	assert.Contains(t, logs.String(), `"slide":2`)
}

func TestRendererFailuresAreIsolated(t *testing.T) {
	boom := errors.New("boom")
	r := DefaultRegistry()
	r.Register(spec.KindQuote, func(f *Frame, _ spec.Slide) error {
		f.NewSlide()
		panic("bad layout")
	})
	r.Register(spec.KindAgenda, func(f *Frame, _ spec.Slide) error {
		f.NewSlide()
		return boom
	})

	b := newBuilder(t)
	rep := NewEngine(WithRegistry(r)).Render(b, &spec.Deck{Slides: []spec.Slide{
		spec.Quote{}, spec.Agenda{}, spec.Blank{},
	}})

	assert.Equal(t, 1, rep.Rendered)
	// Partially built slides stay in the document.
	assert.Equal(t, 3, b.Deck().GetSlideCount())
	require.Len(t, rep.Failures, 2)
	assert.True(t, errors.Is(rep.Failures[0], ErrRendererPanic))
	assert.Contains(t, rep.Failures[0].Error(), "bad layout")
	assert.True(t, errors.Is(rep.Failures[1], boom))

	err := rep.Err()
	assert.True(t, errors.Is(err, boom))
	assert.True(t, errors.Is(err, ErrRendererPanic))
}

func TestNilSlideIsAFailure(t *testing.T) {
	b, rep := render(t, nil, spec.Blank{})
	assert.Equal(t, 1, b.Deck().GetSlideCount())
	require.Len(t, rep.Failures, 1)
	assert.True(t, errors.Is(rep.Failures[0], ErrUnknownSlideType))
}

func TestReportErrNil(t *testing.T) {
	assert.NoError(t, Report{Rendered: 3}.Err())
}

func readZip(t *testing.T, path string) map[string][]byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	parts := make(map[string][]byte)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		parts[f.Name] = data
	}
	return parts
}

func TestDemoDeckRoundTrip(t *testing.T) {
	b := newBuilder(t)
	demo := spec.DemoDeck()
	rep := NewEngine().Render(b, demo)
	require.NoError(t, rep.Err())
	assert.Equal(t, 10, rep.Rendered)
	assert.Empty(t, rep.Notices)
	assert.Equal(t, demo.Title, b.Deck().GetDocumentProperties().Title)

	path := filepath.Join(t.TempDir(), "demo.pptx")
	require.NoError(t, b.Deck().Save(path))
	parts := readZip(t, path)

	slideParts := 0
	for name := range parts {
		if strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml") {
			slideParts++
		}
	}
	assert.Equal(t, 10, slideParts)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(parts["ppt/presentation.xml"]))
	sz := doc.FindElement("//p:sldSz")
	require.NotNil(t, sz)
	assert.Equal(t, brandeck.Inch(13.333), mustInt(t, sz.SelectAttrValue("cx", "")))
	assert.Equal(t, brandeck.Inch(7.5), mustInt(t, sz.SelectAttrValue("cy", "")))
	ratio := float64(b.Width()) / float64(b.Height())
	assert.InDelta(t, 16.0/9.0, ratio, 0.01)

	// Slide order follows the deck: the cover title comes first, the
	// closing title last.
	first := etree.NewDocument()
	require.NoError(t, first.ReadFromBytes(parts["ppt/slides/slide1.xml"]))
	assert.Contains(t, allText(first), "Presentation Title")
	last := etree.NewDocument()
	require.NoError(t, last.ReadFromBytes(parts["ppt/slides/slide10.xml"]))
	assert.Contains(t, allText(last), "Thank You")
}

func allText(doc *etree.Document) string {
	var sb strings.Builder
	for _, el := range doc.FindElements("//a:t") {
		sb.WriteString(el.Text())
		sb.WriteString("\n")
	}
	return sb.String()
}

func mustInt(t *testing.T, s string) int64 {
	t.Helper()
	n, err := strconv.ParseInt(s, 10, 64)
	require.NoError(t, err)
	return n
}

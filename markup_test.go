package brandeck

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseFragment(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	return doc.Root()
}

func TestPaintOf(t *testing.T) {
	const ns = `xmlns:a="a" xmlns:p="p"`
	tests := []struct {
		name   string
		xml    string
		kind   PaintKind
		colors []string
		angle  float64
	}{
		{
			name: "none",
			xml:  `<p:spPr ` + ns + `><a:xfrm/></p:spPr>`,
			kind: PaintNone,
		},
		{
			name:   "solid",
			xml:    `<p:spPr ` + ns + `><a:solidFill><a:srgbClr val="1A73E8"/></a:solidFill></p:spPr>`,
			kind:   PaintSolid,
			colors: []string{"FF1A73E8"},
		},
		{
			name:   "solid with alpha",
			xml:    `<p:spPr ` + ns + `><a:solidFill><a:srgbClr val="000000"><a:alpha val="50000"/></a:srgbClr></a:solidFill></p:spPr>`,
			kind:   PaintSolid,
			colors: []string{"7F000000"},
		},
		{
			name: "gradient",
			xml: `<p:bgPr ` + ns + `><a:gradFill rotWithShape="1"><a:gsLst>` +
				`<a:gs pos="0"><a:srgbClr val="FF0000"/></a:gs>` +
				`<a:gs pos="100000"><a:srgbClr val="0000FF"/></a:gs>` +
				`</a:gsLst><a:lin ang="8100000" scaled="1"/></a:gradFill></p:bgPr>`,
			kind:   PaintGradient,
			colors: []string{"FFFF0000", "FF0000FF"},
			angle:  135,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaintOf(parseFragment(t, tt.xml))
			assert.Equal(t, tt.kind, p.Kind)
			var got []string
			for _, c := range p.Colors {
				got = append(got, c.ARGB)
			}
			assert.Equal(t, tt.colors, got)
			assert.InDelta(t, tt.angle, p.Angle, 1e-9)
		})
	}
	assert.Equal(t, PaintNone, PaintOf(nil).Kind)
}

func TestOutlineOf(t *testing.T) {
	props := parseFragment(t, `<p:spPr xmlns:a="a" xmlns:p="p"><a:ln w="25400"><a:solidFill><a:srgbClr val="DDDDDD"/></a:solidFill></a:ln></p:spPr>`)
	c, w, ok := OutlineOf(props)
	require.True(t, ok)
	assert.Equal(t, "DDDDDD", c.RGB())
	assert.Equal(t, int64(25400), w)

	_, _, ok = OutlineOf(parseFragment(t, `<p:spPr xmlns:a="a" xmlns:p="p"><a:ln><a:noFill/></a:ln></p:spPr>`))
	assert.False(t, ok)
}

func TestGeometryOf(t *testing.T) {
	props := parseFragment(t, `<p:spPr xmlns:a="a" xmlns:p="p"><a:prstGeom prst="roundRect"><a:avLst><a:gd name="adj" fmla="val 25000"/></a:avLst></a:prstGeom></p:spPr>`)
	geom, adj := GeometryOf(props)
	assert.Equal(t, AutoShapeRoundedRect, geom)
	assert.Equal(t, 25000, adj)

	geom, adj = GeometryOf(NewAutoShape().ShapeProperties())
	assert.Equal(t, AutoShapeRectangle, geom)
	assert.Equal(t, -1, adj)
}

func TestShapeProperties_Materialization(t *testing.T) {
	s := NewAutoShape()
	s.SetPosition(Inch(1), Inch(1)).SetSize(Inch(2), Inch(1))
	s.SetRotation(-90)
	s.SetFlipHorizontal(true)

	spPr := s.ShapeProperties()
	require.Same(t, spPr, s.ShapeProperties())

	xfrm := spPr.SelectElement("a:xfrm")
	require.NotNil(t, xfrm)
	assert.Equal(t, "16200000", xfrm.SelectAttrValue("rot", ""))
	assert.Equal(t, "1", xfrm.SelectAttrValue("flipH", ""))
	assert.Equal(t, "1828800", xfrm.SelectElement("a:ext").SelectAttrValue("cx", ""))

	// Changing the preset drops guides of the old one.
	geom := spPr.SelectElement("a:prstGeom")
	geom.SelectElement("a:avLst").CreateElement("a:gd").CreateAttr("name", "adj")
	s.SetAutoShapeType(AutoShapeEllipse)
	assert.Equal(t, "ellipse", geom.SelectAttrValue("prst", ""))
	assert.Empty(t, geom.SelectElement("a:avLst").ChildElements())
}

func TestValidate(t *testing.T) {
	p := New()
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one slide")

	slide := p.CreateSlide()
	slide.BackgroundProperties()
	pic := slide.CreateDrawingShape()
	pic.SetHeight(-1)

	err = p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slide 1: background has no fill")
	assert.Contains(t, err.Error(), "slide 1: shape 1: height is negative")
	assert.Contains(t, err.Error(), "slide 1: shape 1: drawing shape has no image data")
}

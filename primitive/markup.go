package primitive

import (
	"math"
	"strconv"

	"github.com/VantageDataChat/brandeck"
	"github.com/beevik/etree"
)

// childRank orders the children of <p:spPr> and <p:bgPr> as the schema
// requires.
var childRank = map[string]int{
	"xfrm":      0,
	"custGeom":  1,
	"prstGeom":  1,
	"noFill":    2,
	"solidFill": 2,
	"gradFill":  2,
	"blipFill":  2,
	"pattFill":  2,
	"grpFill":   2,
	"ln":        3,
	"effectLst": 4,
	"effectDag": 4,
	"scene3d":   5,
	"sp3d":      6,
	"extLst":    7,
}

var fillTags = []string{"noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill"}

// insertOrdered adds child to parent after every sibling of lower or equal
// rank.
func insertOrdered(parent, child *etree.Element) {
	rank, ok := childRank[child.Tag]
	if !ok {
		parent.AddChild(child)
		return
	}
	for _, sib := range parent.ChildElements() {
		if r, ok := childRank[sib.Tag]; ok && r > rank {
			parent.InsertChildAt(sib.Index(), child)
			return
		}
	}
	parent.AddChild(child)
}

func removeChildren(parent *etree.Element, tags ...string) {
	for _, tag := range tags {
		for _, el := range parent.SelectElements("a:" + tag) {
			parent.RemoveChild(el)
		}
	}
}

func props(shape brandeck.Shape) *etree.Element {
	if shape == nil {
		panic("primitive: nil shape")
	}
	return shape.ShapeProperties()
}

func srgb(parent *etree.Element, c RGB) *etree.Element {
	clr := parent.CreateElement("a:srgbClr")
	clr.CreateAttr("val", c.Hex())
	return clr
}

func solidFill(c RGB) *etree.Element {
	fill := etree.NewElement("a:solidFill")
	srgb(fill, c)
	return fill
}

func gradFill(from, to RGB, angleDeg float64) *etree.Element {
	grad := etree.NewElement("a:gradFill")
	grad.CreateAttr("rotWithShape", "1")
	gsLst := grad.CreateElement("a:gsLst")
	for i, c := range []RGB{from, to} {
		gs := gsLst.CreateElement("a:gs")
		gs.CreateAttr("pos", strconv.Itoa(i*100000))
		srgb(gs, c)
	}
	lin := grad.CreateElement("a:lin")
	lin.CreateAttr("ang", strconv.Itoa(int(math.Round(angleDeg*60000))))
	lin.CreateAttr("scaled", "1")
	return grad
}

func replaceFill(parent, fill *etree.Element) {
	removeChildren(parent, fillTags...)
	insertOrdered(parent, fill)
}

// SetFill replaces the shape fill with a solid color.
func SetFill(shape brandeck.Shape, c RGB) {
	replaceFill(props(shape), solidFill(c))
}

// SetNoBorder removes the outline.
func SetNoBorder(shape brandeck.Shape) {
	p := props(shape)
	removeChildren(p, "ln")
	ln := etree.NewElement("a:ln")
	ln.CreateElement("a:noFill")
	insertOrdered(p, ln)
}

// SetBorder sets a solid outline of widthEMU.
func SetBorder(shape brandeck.Shape, c RGB, widthEMU int64) {
	p := props(shape)
	removeChildren(p, "ln")
	ln := etree.NewElement("a:ln")
	if widthEMU < 0 {
		widthEMU = 0
	}
	ln.CreateAttr("w", strconv.FormatInt(widthEMU, 10))
	ln.AddChild(solidFill(c))
	insertOrdered(p, ln)
}

// RadiusGuide returns the roundRect "adj" guide for a corner radius on a
// w x h shape. The radius is clamped to [0, min(w,h)/2].
func RadiusGuide(radiusEMU, w, h int64) int {
	minDim := w
	if h < minDim {
		minDim = h
	}
	if minDim <= 0 || radiusEMU <= 0 {
		return 0
	}
	frac := math.Min(float64(radiusEMU)/(float64(minDim)/2), 1)
	return int(frac * 50000)
}

// SetRoundedRadius sets the corner radius of a rounded rectangle.
func SetRoundedRadius(shape brandeck.Shape, radiusEMU int64) {
	p := props(shape)
	geom := p.SelectElement("a:prstGeom")
	if geom == nil {
		return
	}
	av := geom.SelectElement("a:avLst")
	if av == nil {
		av = geom.CreateElement("a:avLst")
	}
	for _, gd := range av.ChildElements() {
		av.RemoveChild(gd)
	}
	gd := av.CreateElement("a:gd")
	gd.CreateAttr("name", "adj")
	gd.CreateAttr("fmla", "val "+strconv.Itoa(RadiusGuide(radiusEMU, shape.GetWidth(), shape.GetHeight())))
}

// SetGradient replaces the shape fill with a two-stop linear gradient.
// angleDeg follows DrawingML: 0 runs left to right, 90 top to bottom.
func SetGradient(shape brandeck.Shape, from, to RGB, angleDeg float64) {
	replaceFill(props(shape), gradFill(from, to, angleDeg))
}

// SetAlpha sets the opacity of every color in the current solid or
// gradient fill. opacityPct is clamped to [0,100].
func SetAlpha(shape brandeck.Shape, opacityPct float64) {
	applyAlpha(props(shape), opacityPct)
}

func applyAlpha(parent *etree.Element, opacityPct float64) {
	opacityPct = math.Max(0, math.Min(100, opacityPct))
	val := strconv.Itoa(int(math.Round(opacityPct * 1000)))

	var colors []*etree.Element
	if solid := parent.SelectElement("a:solidFill"); solid != nil {
		colors = append(colors, solid.SelectElements("a:srgbClr")...)
	}
	if grad := parent.SelectElement("a:gradFill"); grad != nil {
		if gsLst := grad.SelectElement("a:gsLst"); gsLst != nil {
			for _, gs := range gsLst.SelectElements("a:gs") {
				colors = append(colors, gs.SelectElements("a:srgbClr")...)
			}
		}
	}
	for _, clr := range colors {
		for _, old := range clr.SelectElements("a:alpha") {
			clr.RemoveChild(old)
		}
		clr.CreateElement("a:alpha").CreateAttr("val", val)
	}
}

// Shadow describes an outer drop shadow.
type Shadow struct {
	BlurEMU      int64
	DistanceEMU  int64
	DirectionDeg float64
	AlphaPct     float64
	Color        RGB
}

// DefaultShadow is a soft black shadow falling straight down.
var DefaultShadow = Shadow{
	BlurEMU:      152400,
	DistanceEMU:  38100,
	DirectionDeg: 90,
	AlphaPct:     15,
	Color:        Black,
}

// SetShadow replaces the shape's effects with a single outer shadow.
func SetShadow(shape brandeck.Shape, s Shadow) {
	p := props(shape)
	removeChildren(p, "effectLst", "effectDag")

	eff := etree.NewElement("a:effectLst")
	sh := eff.CreateElement("a:outerShdw")
	sh.CreateAttr("blurRad", strconv.FormatInt(s.BlurEMU, 10))
	sh.CreateAttr("dist", strconv.FormatInt(s.DistanceEMU, 10))
	sh.CreateAttr("dir", strconv.Itoa(int(math.Round(s.DirectionDeg*60000))))
	sh.CreateAttr("algn", "tl")
	sh.CreateAttr("rotWithShape", "0")
	alpha := math.Max(0, math.Min(100, s.AlphaPct))
	srgb(sh, s.Color).CreateElement("a:alpha").CreateAttr("val", strconv.Itoa(int(math.Round(alpha*1000))))
	insertOrdered(p, eff)
}

// SetBackground fills the slide background with a solid color.
func SetBackground(slide *brandeck.Slide, c RGB) {
	replaceFill(slide.BackgroundProperties(), solidFill(c))
}

// SetBackgroundGradient fills the slide background with a linear gradient.
func SetBackgroundGradient(slide *brandeck.Slide, from, to RGB, angleDeg float64) {
	replaceFill(slide.BackgroundProperties(), gradFill(from, to, angleDeg))
}

// Anchorable is a shape with a text body.
type Anchorable interface {
	SetTextAnchor(brandeck.TextAnchorType)
}

// CenterText anchors the text body at the vertical middle.
func CenterText(shape Anchorable) {
	shape.SetTextAnchor(brandeck.TextAnchorMiddle)
}

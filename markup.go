package brandeck

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// newShapeProperties builds a <p:spPr> holding the transform and preset
// geometry. Fills, outlines and effects are added later by callers.
func newShapeProperties(b *BaseShape) *etree.Element {
	spPr := etree.NewElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	xfrm.CreateElement("a:off")
	xfrm.CreateElement("a:ext")
	syncTransform(spPr, b)
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", string(b.geometry))
	geom.CreateElement("a:avLst")
	return spPr
}

// syncTransform copies the shape's position, size, rotation and flip into
// the <a:xfrm> child of spPr.
func syncTransform(spPr *etree.Element, b *BaseShape) {
	xfrm := spPr.SelectElement("a:xfrm")
	if xfrm == nil {
		xfrm = etree.NewElement("a:xfrm")
		spPr.InsertChildAt(0, xfrm)
	}
	xfrm.RemoveAttr("rot")
	xfrm.RemoveAttr("flipH")
	xfrm.RemoveAttr("flipV")
	if b.rotation != 0 {
		xfrm.CreateAttr("rot", strconv.Itoa(b.rotation*60000))
	}
	if b.flipHorizontal {
		xfrm.CreateAttr("flipH", "1")
	}
	if b.flipVertical {
		xfrm.CreateAttr("flipV", "1")
	}
	off := xfrm.SelectElement("a:off")
	if off == nil {
		off = xfrm.CreateElement("a:off")
	}
	off.CreateAttr("x", strconv.FormatInt(b.offsetX, 10))
	off.CreateAttr("y", strconv.FormatInt(b.offsetY, 10))
	ext := xfrm.SelectElement("a:ext")
	if ext == nil {
		ext = xfrm.CreateElement("a:ext")
	}
	ext.CreateAttr("cx", strconv.FormatInt(b.width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(b.height, 10))
}

// markupString serializes an element without indentation.
func markupString(el *etree.Element) string {
	var sb strings.Builder
	el.WriteTo(&sb, &etree.WriteSettings{})
	return sb.String()
}

// PaintKind classifies the fill found in a property tree.
type PaintKind int

const (
	PaintNone PaintKind = iota
	PaintSolid
	PaintGradient
)

// Paint describes a solid or linear gradient fill read back from markup.
// Colors carry the markup alpha in their ARGB alpha byte.
type Paint struct {
	Kind   PaintKind
	Colors []Color
	Angle  float64 // gradient angle in degrees
}

// PaintOf reads the fill of a <p:spPr> or <p:bgPr> element.
func PaintOf(props *etree.Element) Paint {
	if props == nil {
		return Paint{}
	}
	if solid := props.SelectElement("a:solidFill"); solid != nil {
		if c, ok := colorOf(solid); ok {
			return Paint{Kind: PaintSolid, Colors: []Color{c}}
		}
		return Paint{}
	}
	grad := props.SelectElement("a:gradFill")
	if grad == nil {
		return Paint{}
	}
	p := Paint{Kind: PaintGradient}
	if gsLst := grad.SelectElement("a:gsLst"); gsLst != nil {
		for _, gs := range gsLst.SelectElements("a:gs") {
			if c, ok := colorOf(gs); ok {
				p.Colors = append(p.Colors, c)
			}
		}
	}
	if lin := grad.SelectElement("a:lin"); lin != nil {
		if ang, err := strconv.Atoi(lin.SelectAttrValue("ang", "0")); err == nil {
			p.Angle = float64(ang) / 60000
		}
	}
	if len(p.Colors) == 0 {
		return Paint{}
	}
	return p
}

// OutlineOf reads the <a:ln> of a property tree. It reports false when the
// outline is absent or explicitly unfilled.
func OutlineOf(props *etree.Element) (Color, int64, bool) {
	if props == nil {
		return Color{}, 0, false
	}
	ln := props.SelectElement("a:ln")
	if ln == nil {
		return Color{}, 0, false
	}
	solid := ln.SelectElement("a:solidFill")
	if solid == nil {
		return Color{}, 0, false
	}
	c, ok := colorOf(solid)
	if !ok {
		return Color{}, 0, false
	}
	w, _ := strconv.ParseInt(ln.SelectAttrValue("w", "12700"), 10, 64)
	return c, w, true
}

// GeometryOf returns the preset geometry and its "adj" guide (in
// 1/100000 of the shorter side), or -1 when no guide is set.
func GeometryOf(props *etree.Element) (AutoShapeType, int) {
	if props == nil {
		return AutoShapeRectangle, -1
	}
	geom := props.SelectElement("a:prstGeom")
	if geom == nil {
		return AutoShapeRectangle, -1
	}
	adj := -1
	if av := geom.SelectElement("a:avLst"); av != nil {
		for _, gd := range av.SelectElements("a:gd") {
			if gd.SelectAttrValue("name", "") != "adj" {
				continue
			}
			fmla := strings.TrimPrefix(gd.SelectAttrValue("fmla", ""), "val ")
			if v, err := strconv.Atoi(fmla); err == nil {
				adj = v
			}
		}
	}
	return AutoShapeType(geom.SelectAttrValue("prst", string(AutoShapeRectangle))), adj
}

// colorOf reads an <a:srgbClr> child, folding an <a:alpha> into ARGB.
func colorOf(parent *etree.Element) (Color, bool) {
	clr := parent.SelectElement("a:srgbClr")
	if clr == nil {
		return Color{}, false
	}
	c := NewColor(clr.SelectAttrValue("val", "000000"))
	if alpha := clr.SelectElement("a:alpha"); alpha != nil {
		if v, err := strconv.Atoi(alpha.SelectAttrValue("val", "100000")); err == nil {
			if v < 0 {
				v = 0
			}
			if v > 100000 {
				v = 100000
			}
			c = Color{ARGB: fmt.Sprintf("%02X%s", v*255/100000, c.RGB())}
		}
	}
	return c, true
}

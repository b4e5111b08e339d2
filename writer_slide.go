package brandeck

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/unicode/norm"
)

// collectMedia returns every picture with image data, in slide order. The
// position in the result is the media part number minus one.
func (w *PPTXWriter) collectMedia() []*DrawingShape {
	var result []*DrawingShape
	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			if ds, ok := shape.(*DrawingShape); ok && len(ds.data) > 0 {
				result = append(result, ds)
			}
		}
	}
	return result
}

func (w *PPTXWriter) mediaIndex(target *DrawingShape) int {
	for i, ds := range w.media {
		if ds == target {
			return i + 1
		}
	}
	return 0
}

// slideImageRels assigns relationship IDs to the pictures of one slide.
// rId1 is always the slide layout.
func slideImageRels(slide *Slide) map[*DrawingShape]string {
	m := make(map[*DrawingShape]string)
	relIdx := 2
	for _, shape := range slide.shapes {
		if ds, ok := shape.(*DrawingShape); ok && len(ds.data) > 0 {
			m[ds] = fmt.Sprintf("rId%d", relIdx)
			relIdx++
		}
	}
	return m
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	imageRels := slideImageRels(slide)

	var shapesXML strings.Builder
	shapeID := 2 // 1 is reserved for the group shape

	for _, shape := range slide.shapes {
		switch s := shape.(type) {
		case *RichTextShape:
			shapesXML.WriteString(w.writeTextShapeXML(&s.BaseShape, &s.TextFrame, true, &shapeID))
		case *AutoShape:
			shapesXML.WriteString(w.writeTextShapeXML(&s.BaseShape, &s.TextFrame, false, &shapeID))
		case *DrawingShape:
			rid, ok := imageRels[s]
			if !ok {
				continue
			}
			shapesXML.WriteString(w.writeDrawingShapeXML(s, rid, &shapeID))
		}
	}

	bgXML := ""
	if slide.background != nil {
		bgXML = "    <p:bg>" + backgroundXML(slide.background) + "</p:bg>\n"
	}

	nameAttr := ""
	if slide.name != "" {
		nameAttr = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, nameAttr, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

// backgroundXML serializes a <p:bgPr>, adding the effect list the schema
// requires when the caller left it out.
func backgroundXML(bgPr *etree.Element) string {
	if bgPr.SelectElement("a:effectLst") == nil && bgPr.SelectElement("a:effectDag") == nil {
		bgPr = bgPr.Copy()
		bgPr.CreateElement("a:effectLst")
	}
	return markupString(bgPr)
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slide *Slide, slideNum int) error {
	var rels strings.Builder
	fmt.Fprintf(&rels, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>`, nsRelationships, relTypeSlideLayout)

	imageRels := slideImageRels(slide)
	for _, shape := range slide.shapes {
		ds, ok := shape.(*DrawingShape)
		if !ok {
			continue
		}
		rid, ok := imageRels[ds]
		if !ok {
			continue
		}
		fmt.Fprintf(&rels, `
  <Relationship Id="%s" Type="%s" Target="../media/image%d.%s"/>`,
			rid, relTypeImage, w.mediaIndex(ds), imageExtension(ds))
	}

	rels.WriteString(`
</Relationships>`)
	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), rels.String())
}

// shapePropertiesXML serializes the shape's property tree with the
// transform re-synced from the shape fields.
func shapePropertiesXML(b *BaseShape) string {
	spPr := b.ShapeProperties().Copy()
	syncTransform(spPr, b)
	return markupString(spPr)
}

// --- Text and preset shapes ---

func (w *PPTXWriter) writeTextShapeXML(b *BaseShape, tf *TextFrame, txBox bool, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := b.name
	if name == "" {
		if txBox {
			name = fmt.Sprintf("TextBox %d", id)
		} else {
			name = fmt.Sprintf("Shape %d", id)
		}
	}

	descrAttr := ""
	if b.description != "" {
		descrAttr = fmt.Sprintf(` descr="%s"`, xmlEscape(b.description))
	}

	cNvSpPr := "<p:cNvSpPr/>"
	if txBox {
		cNvSpPr = `<p:cNvSpPr txBox="1"/>`
	}

	textXML := ""
	if len(tf.paragraphs) > 0 {
		textXML = w.writeTextBodyXML(tf)
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="%s"%s/>
          %s
          <p:nvPr/>
        </p:nvSpPr>
        %s%s
      </p:sp>
`, id, xmlEscape(name), descrAttr, cNvSpPr, shapePropertiesXML(b), textXML)
}

func (w *PPTXWriter) writeTextBodyXML(tf *TextFrame) string {
	var paragraphsXML strings.Builder
	for _, para := range tf.paragraphs {
		paragraphsXML.WriteString(w.writeParagraphXML(para))
	}
	return fmt.Sprintf(`
        <p:txBody>
          <a:bodyPr wrap="%s" rtlCol="0"%s%s>%s</a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>`,
		boolToWrap(tf.wordWrap), insetAttrs(tf), textAnchorAttr(tf.textAnchor),
		autoFitXML(tf.autoFit), paragraphsXML.String())
}

func boolToWrap(wrap bool) string {
	if wrap {
		return "square"
	}
	return "none"
}

func insetAttrs(tf *TextFrame) string {
	if !tf.insetsSet {
		return ""
	}
	return fmt.Sprintf(` lIns="%d" tIns="%d" rIns="%d" bIns="%d"`,
		tf.insetLeft, tf.insetTop, tf.insetRight, tf.insetBottom)
}

// textAnchorAttr returns the anchor attribute string for <a:bodyPr>.
func textAnchorAttr(anchor TextAnchorType) string {
	if anchor == TextAnchorNone {
		return ""
	}
	return fmt.Sprintf(` anchor="%s"`, string(anchor))
}

func autoFitXML(fit AutoFitType) string {
	switch fit {
	case AutoFitNormal:
		return "<a:normAutofit/>"
	case AutoFitShape:
		return "<a:spAutoFit/>"
	default:
		return ""
	}
}

func (w *PPTXWriter) writeParagraphXML(para *Paragraph) string {
	algn := ""
	if para.alignment != nil && para.alignment.Horizontal != "" {
		algn = fmt.Sprintf(` algn="%s"`, para.alignment.Horizontal)
	}

	var elementsXML strings.Builder
	for _, elem := range para.elements {
		switch e := elem.(type) {
		case *TextRun:
			elementsXML.WriteString(w.writeTextRunXML(e))
		case *BreakElement:
			elementsXML.WriteString("            <a:br/>\n")
		}
	}

	spacing := ""
	if para.lineSpacing > 0 {
		spacing = fmt.Sprintf(`<a:lnSpc><a:spcPct val="%d"/></a:lnSpc>`, para.lineSpacing)
	}
	if para.spaceBefore > 0 {
		spacing += fmt.Sprintf(`<a:spcBef><a:spcPts val="%d"/></a:spcBef>`, para.spaceBefore)
	}
	if para.spaceAfter > 0 {
		spacing += fmt.Sprintf(`<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, para.spaceAfter)
	}

	return fmt.Sprintf(`          <a:p>
            <a:pPr%s>%s</a:pPr>
%s          </a:p>
`, algn, spacing, elementsXML.String())
}

func (w *PPTXWriter) writeTextRunXML(tr *TextRun) string {
	font := tr.font
	if font == nil {
		font = NewFont()
	}
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, font.Size*100)
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}

	solidFill := ""
	if font.Color.ARGB != "" {
		solidFill = fmt.Sprintf(`<a:solidFill><a:srgbClr val="%s"/></a:solidFill>`, font.Color.RGB())
	}

	latin := ""
	if font.Name != "" {
		latin = fmt.Sprintf(`<a:latin typeface="%[1]s"/><a:cs typeface="%[1]s"/>`, xmlEscape(font.Name))
	}

	return fmt.Sprintf(`            <a:r>
              <a:rPr%s>%s%s</a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, attrs, solidFill, latin, xmlEscape(norm.NFC.String(tr.text)))
}

// --- Pictures ---

func (w *PPTXWriter) writeDrawingShapeXML(s *DrawingShape, relID string, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Picture %d", id)
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          <p:cNvPr id="%d" name="%s" descr="%s"/>
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s"/>
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        %s
      </p:pic>
`, id, xmlEscape(name), xmlEscape(s.description), relID, shapePropertiesXML(&s.BaseShape))
}

// --- Media ---

func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for i, ds := range w.media {
		path := fmt.Sprintf("ppt/media/image%d.%s", i+1, imageExtension(ds))
		fw, err := zw.Create(path)
		if err != nil {
			return fmt.Errorf("create %s in zip: %w", path, err)
		}
		if _, err := fw.Write(ds.data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

package brandeck

import (
	"archive/zip"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

func (w *PPTXWriter) hasThumbnail() bool {
	pp := w.presentation.presentationProperties
	return pp != nil && len(pp.thumbnailData) > 0
}

func (w *PPTXWriter) writeThumbnail(zw *zip.Writer) error {
	if !w.hasThumbnail() {
		return nil
	}
	fw, err := zw.Create("docProps/thumbnail.jpeg")
	if err != nil {
		return fmt.Errorf("create thumbnail in zip: %w", err)
	}
	_, err = fw.Write(w.presentation.presentationProperties.thumbnailData)
	return err
}

func (w *PPTXWriter) writePresentation(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := doc.CreateElement("p:presentation")
	root.CreateAttr("xmlns:a", nsDrawingML)
	root.CreateAttr("xmlns:r", nsOfficeDocRels)
	root.CreateAttr("xmlns:p", nsPresentationML)
	root.CreateAttr("saveSubsetFonts", "1")

	masters := root.CreateElement("p:sldMasterIdLst")
	master := masters.CreateElement("p:sldMasterId")
	master.CreateAttr("id", "2147483648")
	master.CreateAttr("r:id", "rId1")

	if len(w.presentation.slides) > 0 {
		ids := root.CreateElement("p:sldIdLst")
		for i := range w.presentation.slides {
			sid := ids.CreateElement("p:sldId")
			sid.CreateAttr("id", strconv.Itoa(256+i))
			sid.CreateAttr("r:id", w.slideRelID(i+1))
		}
	}

	layout := w.presentation.layout
	sz := root.CreateElement("p:sldSz")
	sz.CreateAttr("cx", strconv.FormatInt(layout.CX, 10))
	sz.CreateAttr("cy", strconv.FormatInt(layout.CY, 10))
	if t := layout.sldSzType(); t != "custom" {
		sz.CreateAttr("type", t)
	}

	notes := root.CreateElement("p:notesSz")
	notes.CreateAttr("cx", "6858000")
	notes.CreateAttr("cy", "9144000")

	root.CreateElement("p:defaultTextStyle")

	doc.Indent(2)
	content, err := doc.WriteToString()
	if err != nil {
		return fmt.Errorf("marshal presentation.xml: %w", err)
	}
	return writeRawXMLToZip(zw, "ppt/presentation.xml", content)
}

func (w *PPTXWriter) writePresProps(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"/>`, nsDrawingML, nsOfficeDocRels, nsPresentationML)
	return writeRawXMLToZip(zw, "ppt/presProps.xml", content)
}

func (w *PPTXWriter) writeViewProps(zw *zip.Writer) error {
	zoom := 1.0
	if pp := w.presentation.presentationProperties; pp != nil {
		zoom = pp.zoom
	}
	scale := int(zoom * 100)
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:normalViewPr>
    <p:restoredLeft sz="15620"/>
    <p:restoredTop sz="94660"/>
  </p:normalViewPr>
  <p:slideViewPr>
    <p:cSldViewPr>
      <p:cViewPr varScale="1">
        <p:scale>
          <a:sx n="%[4]d" d="100"/>
          <a:sy n="%[4]d" d="100"/>
        </p:scale>
        <p:origin x="0" y="0"/>
      </p:cViewPr>
    </p:cSldViewPr>
  </p:slideViewPr>
  <p:gridSpacing cx="76200" cy="76200"/>
</p:viewPr>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, scale)
	return writeRawXMLToZip(zw, "ppt/viewProps.xml", content)
}

func (w *PPTXWriter) writeTableStyles(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, nsDrawingML)
	return writeRawXMLToZip(zw, "ppt/tableStyles.xml", content)
}

const emptySpTree = `<p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr/>
    </p:spTree>`

func (w *PPTXWriter) writeSlideMaster(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:bg>
      <p:bgRef idx="1001">
        <a:schemeClr val="bg1"/>
      </p:bgRef>
    </p:bg>
    %s
  </p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>
    <p:sldLayoutId id="2147483649" r:id="rId1"/>
  </p:sldLayoutIdLst>
  <p:txStyles>
    <p:titleStyle>
      <a:lvl1pPr><a:defRPr sz="4400"><a:latin typeface="+mj-lt"/></a:defRPr></a:lvl1pPr>
    </p:titleStyle>
    <p:bodyStyle>
      <a:lvl1pPr><a:defRPr sz="2800"><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr>
    </p:bodyStyle>
    <p:otherStyle>
      <a:lvl1pPr><a:defRPr sz="1800"><a:latin typeface="+mn-lt"/></a:defRPr></a:lvl1pPr>
    </p:otherStyle>
  </p:txStyles>
</p:sldMaster>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, emptySpTree)
	if err := writeRawXMLToZip(zw, "ppt/slideMasters/slideMaster1.xml", content); err != nil {
		return err
	}

	rels := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideLayouts/slideLayout1.xml"/>
  <Relationship Id="rId2" Type="%s" Target="../theme/theme1.xml"/>
</Relationships>`, nsRelationships, relTypeSlideLayout, relTypeTheme)
	return writeRawXMLToZip(zw, "ppt/slideMasters/_rels/slideMaster1.xml.rels", rels)
}

func (w *PPTXWriter) writeSlideLayout(zw *zip.Writer) error {
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="blank" preserve="1">
  <p:cSld name="Blank">
    %s
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sldLayout>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, emptySpTree)
	if err := writeRawXMLToZip(zw, "ppt/slideLayouts/slideLayout1.xml", content); err != nil {
		return err
	}

	rels := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="%s">
  <Relationship Id="rId1" Type="%s" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`, nsRelationships, relTypeSlideMaster)
	return writeRawXMLToZip(zw, "ppt/slideLayouts/_rels/slideLayout1.xml.rels", rels)
}

func (w *PPTXWriter) writeTheme(zw *zip.Writer) error {
	theme := w.presentation.theme
	if theme == nil {
		theme = NewDocumentTheme()
	}
	cs := theme.Colors

	var colors strings.Builder
	slot := func(tag string, c Color) {
		fmt.Fprintf(&colors, "\n        <a:%s><a:srgbClr val=\"%s\"/></a:%s>", tag, c.RGB(), tag)
	}
	colors.WriteString("\n        <a:dk1><a:sysClr val=\"windowText\" lastClr=\"" + cs.Dark1.RGB() + "\"/></a:dk1>")
	colors.WriteString("\n        <a:lt1><a:sysClr val=\"window\" lastClr=\"" + cs.Light1.RGB() + "\"/></a:lt1>")
	slot("dk2", cs.Dark2)
	slot("lt2", cs.Light2)
	for i, c := range cs.Accents {
		slot(fmt.Sprintf("accent%d", i+1), c)
	}
	slot("hlink", cs.Hyperlink)
	slot("folHlink", cs.FollowedHyperlink)

	fs := theme.Fonts
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="%s" name="%s">
  <a:themeElements>
    <a:clrScheme name="%s">%s
    </a:clrScheme>
    <a:fontScheme name="%s">
      <a:majorFont>
        <a:latin typeface="%s"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:majorFont>
      <a:minorFont>
        <a:latin typeface="%s"/>
        <a:ea typeface=""/>
        <a:cs typeface=""/>
      </a:minorFont>
    </a:fontScheme>
    <a:fmtScheme name="Office">
      <a:fillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:fillStyleLst>
      <a:lnStyleLst>
        <a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
        <a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
      </a:lnStyleLst>
      <a:effectStyleLst>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
        <a:effectStyle><a:effectLst/></a:effectStyle>
      </a:effectStyleLst>
      <a:bgFillStyleLst>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
        <a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
      </a:bgFillStyleLst>
    </a:fmtScheme>
  </a:themeElements>
  <a:objectDefaults/>
  <a:extraClrSchemeLst/>
</a:theme>`, nsDrawingML, xmlEscape(theme.Name), xmlEscape(cs.Name), colors.String(),
		xmlEscape(fs.Name), xmlEscape(fs.Major), xmlEscape(fs.Minor))
	return writeRawXMLToZip(zw, "ppt/theme/theme1.xml", content)
}

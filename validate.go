package brandeck

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for structural issues and returns an error
// describing all problems found, or nil if the presentation is valid.
func (p *Presentation) Validate() error {
	var errs []string

	if p.properties == nil {
		errs = append(errs, "document properties are nil")
	}
	if p.presentationProperties == nil {
		errs = append(errs, "presentation properties are nil")
	}
	if p.theme == nil {
		errs = append(errs, "document theme is nil")
	}
	if p.layout == nil {
		errs = append(errs, "document layout is nil")
	} else {
		if p.layout.CX <= 0 {
			errs = append(errs, "layout width (CX) must be positive")
		}
		if p.layout.CY <= 0 {
			errs = append(errs, "layout height (CY) must be positive")
		}
	}
	if len(p.slides) == 0 {
		errs = append(errs, "presentation must have at least one slide")
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		for _, e := range validateSlide(slide) {
			errs = append(errs, prefix+": "+e)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("validation failed:\n  %s", strings.Join(errs, "\n  "))
}

func validateSlide(s *Slide) []string {
	var errs []string
	if s.background != nil && PaintOf(s.background).Kind == PaintNone && s.background.SelectElement("a:noFill") == nil {
		errs = append(errs, "background has no fill")
	}
	for j, shape := range s.shapes {
		prefix := fmt.Sprintf("shape %d", j+1)
		if shape == nil {
			errs = append(errs, prefix+": shape is nil")
			continue
		}
		if shape.GetWidth() < 0 {
			errs = append(errs, prefix+": width is negative")
		}
		if shape.GetHeight() < 0 {
			errs = append(errs, prefix+": height is negative")
		}
		if b := shape.base(); b.spPr != nil && b.spPr.Tag != "spPr" {
			errs = append(errs, prefix+": shape properties root is <"+b.spPr.FullTag()+">")
		}

		switch sh := shape.(type) {
		case *DrawingShape:
			if len(sh.data) == 0 {
				errs = append(errs, prefix+": drawing shape has no image data")
			}
			if sh.mimeType != "" && !isValidImageMime(sh.mimeType) {
				errs = append(errs, prefix+": unsupported image MIME type: "+sh.mimeType)
			}
		case *RichTextShape:
			if len(sh.paragraphs) == 0 {
				errs = append(errs, prefix+": rich text shape has no paragraphs")
			}
			errs = append(errs, validateParagraphs(sh.paragraphs, prefix)...)
		case *AutoShape:
			errs = append(errs, validateParagraphs(sh.paragraphs, prefix)...)
		}
	}
	return errs
}

// validateParagraphs checks paragraph elements for common issues.
func validateParagraphs(paragraphs []*Paragraph, prefix string) []string {
	var errs []string
	for i, para := range paragraphs {
		if para == nil {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d is nil", prefix, i+1))
			continue
		}
		if para.alignment == nil {
			errs = append(errs, fmt.Sprintf("%s: paragraph %d has nil alignment", prefix, i+1))
		}
		for k, elem := range para.elements {
			if elem == nil {
				errs = append(errs, fmt.Sprintf("%s: paragraph %d element %d is nil", prefix, i+1, k+1))
				continue
			}
			if tr, ok := elem.(*TextRun); ok && tr.font == nil {
				errs = append(errs, fmt.Sprintf("%s: paragraph %d text run %d has nil font", prefix, i+1, k+1))
			}
		}
	}
	return errs
}

// isValidImageMime checks if a MIME type is a supported image format.
func isValidImageMime(mime string) bool {
	switch mime {
	case "image/png", "image/jpeg", "image/gif", "image/bmp", "image/tiff", "image/webp", "image/svg+xml":
		return true
	}
	return false
}

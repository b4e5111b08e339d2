// Package brandeck is the host document model for brand-driven decks: an
// in-memory PowerPoint presentation with slides, text boxes, preset shapes
// and pictures, serialized as Office Open XML (.pptx).
//
// Shape properties are kept as a DrawingML markup tree (see
// BaseShape.ShapeProperties) so that callers can apply gradients,
// transparency, rounded corners and shadows that the typed API does not
// model. The writer serializes that tree verbatim.
package brandeck

import (
	"errors"
	"time"
)

// ErrSlideIndex is returned for slide lookups outside the slide list.
var ErrSlideIndex = errors.New("slide index out of range")

// Presentation represents an in-memory PowerPoint presentation.
type Presentation struct {
	properties             *DocumentProperties
	presentationProperties *PresentationProperties
	slides                 []*Slide
	layout                 *DocumentLayout
	theme                  *DocumentTheme
}

// New creates a new, empty Presentation with a 16:9 layout.
func New() *Presentation {
	layout := NewDocumentLayout()
	layout.SetLayout(LayoutScreen16x9)
	return &Presentation{
		properties:             NewDocumentProperties(),
		presentationProperties: NewPresentationProperties(),
		slides:                 make([]*Slide, 0),
		layout:                 layout,
		theme:                  NewDocumentTheme(),
	}
}

// GetDocumentProperties returns the document properties.
func (p *Presentation) GetDocumentProperties() *DocumentProperties {
	return p.properties
}

// GetPresentationProperties returns the presentation properties.
func (p *Presentation) GetPresentationProperties() *PresentationProperties {
	return p.presentationProperties
}

// GetLayout returns the document layout.
func (p *Presentation) GetLayout() *DocumentLayout {
	return p.layout
}

// SetLayout sets the document layout.
func (p *Presentation) SetLayout(layout *DocumentLayout) {
	p.layout = layout
}

// GetTheme returns the document theme written to ppt/theme/theme1.xml.
func (p *Presentation) GetTheme() *DocumentTheme {
	return p.theme
}

// CreateSlide creates a new slide and appends it to the presentation.
func (p *Presentation) CreateSlide() *Slide {
	slide := newSlide()
	p.slides = append(p.slides, slide)
	return slide
}

// GetSlide returns a slide by index.
func (p *Presentation) GetSlide(index int) (*Slide, error) {
	if index < 0 || index >= len(p.slides) {
		return nil, ErrSlideIndex
	}
	return p.slides[index], nil
}

// GetAllSlides returns all slides.
func (p *Presentation) GetAllSlides() []*Slide {
	return p.slides
}

// GetSlideCount returns the number of slides.
func (p *Presentation) GetSlideCount() int {
	return len(p.slides)
}

// DocumentProperties holds the core and extended document properties.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Revision       string
}

// NewDocumentProperties creates new document properties with defaults.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now()
	return &DocumentProperties{
		Creator:        "brandeck",
		LastModifiedBy: "brandeck",
		Created:        now,
		Modified:       now,
		Revision:       "1",
	}
}

package brandeck

import "github.com/beevik/etree"

// Slide is an unordered collection of shapes plus an optional background.
type Slide struct {
	name       string
	shapes     []Shape
	background *etree.Element // <p:bgPr>, nil until requested
}

func newSlide() *Slide {
	return &Slide{shapes: make([]Shape, 0)}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name, written as the cSld name attribute.
func (s *Slide) SetName(name string) { s.name = name }

// GetShapes returns the shapes in z-order.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// AddShape appends a shape on top of the existing ones.
func (s *Slide) AddShape(shape Shape) Shape {
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateRichTextShape creates a text box and adds it to the slide.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	rt := NewRichTextShape()
	s.shapes = append(s.shapes, rt)
	return rt
}

// CreateAutoShape creates a preset shape and adds it to the slide.
func (s *Slide) CreateAutoShape() *AutoShape {
	as := NewAutoShape()
	s.shapes = append(s.shapes, as)
	return as
}

// CreateDrawingShape creates a picture and adds it to the slide.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	ds := NewDrawingShape()
	s.shapes = append(s.shapes, ds)
	return ds
}

// BackgroundProperties returns the slide's <p:bgPr> element, creating an
// empty one on first use. Callers add the fill and effect list.
func (s *Slide) BackgroundProperties() *etree.Element {
	if s.background == nil {
		s.background = etree.NewElement("p:bgPr")
	}
	return s.background
}

// HasBackground reports whether a background has been requested.
func (s *Slide) HasBackground() bool {
	return s.background != nil
}

package brandeck

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer is the interface for presentation writers.
type Writer interface {
	Save(path string) error
	WriteTo(w io.Writer) error
}

// WriterType represents the output format.
type WriterType string

const (
	WriterPowerPoint2007 WriterType = "PowerPoint2007"
)

// NewWriter creates a writer for the given format.
func NewWriter(p *Presentation, format WriterType) (Writer, error) {
	switch format {
	case WriterPowerPoint2007:
		return &PPTXWriter{presentation: p}, nil
	default:
		return nil, fmt.Errorf("unsupported writer format: %s", format)
	}
}

// Save validates the presentation and writes it as .pptx to path.
func (p *Presentation) Save(path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return (&PPTXWriter{presentation: p}).Save(path)
}

// PPTXWriter writes presentations in PPTX format.
type PPTXWriter struct {
	presentation *Presentation
	media        []*DrawingShape // pictures in part order, filled per write
}

// Save writes the presentation to a file.
func (w *PPTXWriter) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	writeErr := w.WriteTo(f)
	closeErr := f.Close()

	if writeErr != nil {
		// Do not leave a truncated package behind.
		os.Remove(path)
		return writeErr
	}
	return closeErr
}

// WriteTo writes the presentation to a writer.
func (w *PPTXWriter) WriteTo(writer io.Writer) error {
	if w.presentation == nil {
		return fmt.Errorf("presentation is nil")
	}

	zw := zip.NewWriter(writer)
	w.media = w.collectMedia()

	steps := []func(*zip.Writer) error{
		w.writeContentTypes,
		w.writeRootRels,
		w.writeAppProperties,
		w.writeCoreProperties,
		w.writeThumbnail,
		w.writePresentation,
		w.writePresentationRels,
		w.writePresProps,
		w.writeViewProps,
		w.writeTableStyles,
		w.writeSlideMaster,
		w.writeSlideLayout,
		w.writeTheme,
	}
	for _, step := range steps {
		if err := step(zw); err != nil {
			return err
		}
	}

	for i, slide := range w.presentation.slides {
		if err := w.writeSlide(zw, slide, i+1); err != nil {
			return err
		}
		if err := w.writeSlideRels(zw, slide, i+1); err != nil {
			return err
		}
	}

	if err := w.writeMedia(zw); err != nil {
		return err
	}

	return zw.Close()
}

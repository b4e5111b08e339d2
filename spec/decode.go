package spec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSpec is returned for documents that are not a slide deck.
var ErrInvalidSpec = errors.New("invalid slide spec")

// Format selects the decoder.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Sniff guesses the format of data: JSON when the first non-space byte
// opens an object, YAML otherwise.
func Sniff(data []byte) Format {
	if t := bytes.TrimSpace(data); len(t) > 0 && t[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

type decoder struct {
	json func([]byte) (Slide, error)
	yaml func(*yaml.Node) (Slide, error)
}

func variant[T Slide]() decoder {
	return decoder{
		json: func(data []byte) (Slide, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
		yaml: func(n *yaml.Node) (Slide, error) {
			var v T
			err := n.Decode(&v)
			return v, err
		},
	}
}

var decoders = map[Kind]decoder{
	KindCover:          variant[Cover](),
	KindSectionDivider: variant[SectionDivider](),
	KindAgenda:         variant[Agenda](),
	KindContent:        variant[Content](),
	KindTwoColumn:      variant[TwoColumn](),
	KindQuote:          variant[Quote](),
	KindMetrics:        variant[Metrics](),
	KindTeam:           variant[Team](),
	KindCaseStudy:      variant[CaseStudy](),
	KindClosing:        variant[Closing](),
	KindBlank:          variant[Blank](),
}

type header struct {
	Type string `json:"type" yaml:"type"`
}

// UnmarshalJSON decodes {"title": ..., "slides": [...]}.
func (d *Deck) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title  string            `json:"title"`
		Slides []json.RawMessage `json:"slides"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Slides == nil {
		return fmt.Errorf("%w: no slides array", ErrInvalidSpec)
	}
	slides := make([]Slide, 0, len(raw.Slides))
	for i, msg := range raw.Slides {
		var h header
		if err := json.Unmarshal(msg, &h); err != nil {
			return fmt.Errorf("%w: slide %d: %v", ErrInvalidSpec, i+1, err)
		}
		dec, ok := decoders[Kind(h.Type)]
		if !ok {
			u := Unknown{Type: h.Type}
			_ = json.Unmarshal(msg, &u.Fields)
			slides = append(slides, u)
			continue
		}
		s, err := dec.json(msg)
		if err != nil {
			return fmt.Errorf("%w: slide %d (%s): %v", ErrInvalidSpec, i+1, h.Type, err)
		}
		slides = append(slides, s)
	}
	d.Title, d.Slides = raw.Title, slides
	return nil
}

// UnmarshalYAML decodes the YAML form of the deck.
func (d *Deck) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Title  string      `yaml:"title"`
		Slides []yaml.Node `yaml:"slides"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Slides == nil {
		return fmt.Errorf("%w: no slides list", ErrInvalidSpec)
	}
	slides := make([]Slide, 0, len(raw.Slides))
	for i := range raw.Slides {
		n := &raw.Slides[i]
		var h header
		if err := n.Decode(&h); err != nil {
			return fmt.Errorf("%w: slide %d: %v", ErrInvalidSpec, i+1, err)
		}
		dec, ok := decoders[Kind(h.Type)]
		if !ok {
			u := Unknown{Type: h.Type}
			_ = n.Decode(&u.Fields)
			slides = append(slides, u)
			continue
		}
		s, err := dec.yaml(n)
		if err != nil {
			return fmt.Errorf("%w: slide %d (%s): %v", ErrInvalidSpec, i+1, h.Type, err)
		}
		slides = append(slides, s)
	}
	d.Title, d.Slides = raw.Title, slides
	return nil
}

// Parse decodes a deck in the given format.
func Parse(data []byte, format Format) (*Deck, error) {
	var d Deck
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &d)
	default:
		err = json.Unmarshal(data, &d)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidSpec) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSpec, err)
	}
	return &d, nil
}

// Read decodes a deck from r, sniffing its format.
func Read(r io.Reader) (*Deck, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read slide spec: %w", err)
	}
	return Parse(data, Sniff(data))
}

// Load decodes the deck at path. .yaml and .yml files are YAML; anything
// else is JSON.
func Load(path string) (*Deck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read slide spec: %w", err)
	}
	format := FormatJSON
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return Parse(data, format)
}

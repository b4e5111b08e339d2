package render

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/VantageDataChat/brandeck/builder"
	"github.com/VantageDataChat/brandeck/spec"
)

// DefaultMaxTeamMembers caps the cards drawn on a team slide.
const DefaultMaxTeamMembers = 6

// ErrRendererPanic wraps a panic recovered from a renderer.
var ErrRendererPanic = errors.New("renderer panicked")

// Failure is a slide that could not be rendered, or only partly.
type Failure struct {
	Index int // 1-based
	Kind  spec.Kind
	Err   error
}

func (f Failure) Error() string {
	return fmt.Sprintf("slide %d (%s): %v", f.Index, f.Kind, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

// Notice is a non-fatal remark a renderer made about a slide.
type Notice struct {
	Index   int
	Kind    spec.Kind
	Message string
}

func (n Notice) String() string {
	return fmt.Sprintf("slide %d (%s): %s", n.Index, n.Kind, n.Message)
}

// Report summarizes one Render call.
type Report struct {
	Rendered int
	Failures []Failure
	Notices  []Notice
}

// Err joins the failures, or returns nil when every slide rendered.
func (r Report) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// Engine renders decks through a registry. It keeps no per-deck state.
type Engine struct {
	registry       *Registry
	log            zerolog.Logger
	maxTeamMembers int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

func WithRegistry(r *Registry) EngineOption {
	return func(e *Engine) { e.registry = r }
}

func WithLogger(log zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = log }
}

// WithMaxTeamMembers overrides DefaultMaxTeamMembers.
func WithMaxTeamMembers(n int) EngineOption {
	return func(e *Engine) { e.maxTeamMembers = n }
}

// NewEngine returns an engine over DefaultRegistry unless configured
// otherwise.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{log: zerolog.Nop(), maxTeamMembers: DefaultMaxTeamMembers}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.maxTeamMembers <= 0 {
		e.maxTeamMembers = DefaultMaxTeamMembers
	}
	e.log = e.log.With().Str("component", "render").Logger()
	return e
}

// Render draws every slide of deck in order. A slide of unknown kind is
// skipped; a slide whose renderer fails or panics keeps whatever it drew.
// Both are reported as failures and rendering continues.
func (e *Engine) Render(b *builder.Builder, deck *spec.Deck) Report {
	var rep Report
	if deck.Title != "" {
		b.Deck().GetDocumentProperties().Title = deck.Title
	}

	for i, s := range deck.Slides {
		idx := i + 1
		var kind spec.Kind
		if s != nil {
			kind = s.Kind()
		}
		log := e.log.With().Int("slide", idx).Str("kind", string(kind)).Logger()

		fn, err := e.registry.Lookup(kind)
		if err != nil {
			log.Warn().Err(err).Msg("skipping slide")
			rep.Failures = append(rep.Failures, Failure{Index: idx, Kind: kind, Err: err})
			continue
		}

		f := &Frame{Builder: b, Index: idx, Kind: kind, maxTeamMembers: e.maxTeamMembers, log: log}
		if err := renderSafely(f, fn, s); err != nil {
			log.Error().Err(err).Msg("slide failed")
			rep.Failures = append(rep.Failures, Failure{Index: idx, Kind: kind, Err: err})
		} else {
			rep.Rendered++
			log.Debug().Msg("slide rendered")
		}
		for _, msg := range f.notices {
			log.Warn().Msg(msg)
			rep.Notices = append(rep.Notices, Notice{Index: idx, Kind: kind, Message: msg})
		}
	}

	e.log.Info().
		Int("rendered", rep.Rendered).
		Int("failed", len(rep.Failures)).
		Int("slides", b.Deck().GetSlideCount()).
		Msg("deck rendered")
	return rep
}

func renderSafely(f *Frame, fn RenderFunc, s spec.Slide) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrRendererPanic, r)
		}
	}()
	return fn(f, s)
}

// Package builder is the layout facade the slide renderers draw with. A
// Builder binds one document to one brand theme and turns brand-level
// requests ("a card", "a footer", "the logo upper-left") into shapes and
// markup edits on that document.
package builder

import (
	"errors"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/primitive"
)

// ErrForbiddenPlacement is returned when a logo is asked for at a
// right-aligned position.
var ErrForbiddenPlacement = errors.New("logo placement is forbidden")

const defaultLogoCacheSize = 32

// Builder draws brand elements onto one presentation. It is not safe for
// concurrent use; the logo dimension cache it holds is.
type Builder struct {
	deck  *brandeck.Presentation
	theme *brand.Theme
	log   zerolog.Logger
	now   func() time.Time
	fonts *brandeck.FontCache
	logos *lru.Cache

	// background color per slide, for contrast decisions
	backgrounds map[*brandeck.Slide]primitive.RGB

	w, h, m, g int64
}

type options struct {
	log       zerolog.Logger
	now       func() time.Time
	cacheSize int
	fonts     *brandeck.FontCache
}

// Option configures a Builder.
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithClock overrides the time source used for footer years.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogoCacheSize bounds the number of probed logo dimensions kept.
func WithLogoCacheSize(n int) Option {
	return func(o *options) { o.cacheSize = n }
}

// WithFontCache measures button labels with real font metrics instead of
// the fixed-width estimate.
func WithFontCache(fc *brandeck.FontCache) Option {
	return func(o *options) { o.fonts = fc }
}

// New binds deck to theme. It sets the slide size from the theme and
// writes the brand palette and fonts into the document theme.
func New(deck *brandeck.Presentation, theme *brand.Theme, opts ...Option) (*Builder, error) {
	o := options{log: zerolog.Nop(), now: time.Now, cacheSize: defaultLogoCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.cacheSize <= 0 {
		o.cacheSize = defaultLogoCacheSize
	}
	logos, err := lru.New(o.cacheSize)
	if err != nil {
		return nil, err
	}

	wIn, hIn := theme.SlideSize()
	sp := theme.Spacing()
	b := &Builder{
		deck:        deck,
		theme:       theme,
		log:         o.log.With().Str("component", "builder").Logger(),
		now:         o.now,
		fonts:       o.fonts,
		logos:       logos,
		backgrounds: make(map[*brandeck.Slide]primitive.RGB),
		w:           brandeck.Inch(wIn),
		h:           brandeck.Inch(hIn),
		m:           brandeck.Inch(sp.Margin),
		g:           brandeck.Inch(sp.Gutter),
	}
	deck.GetLayout().SetCustomLayout(b.w, b.h)
	b.applyDocumentTheme()
	return b, nil
}

func (b *Builder) applyDocumentTheme() {
	t := b.theme
	dt := b.deck.GetTheme()
	dt.Name = "Brand"
	if id := t.Identity(); id.Name != "" {
		dt.Name = id.Name
	}
	dt.Colors.Name = dt.Name
	dt.Colors.Dark1 = brandeck.ColorBlack
	dt.Colors.Light1 = brandeck.ColorWhite
	dt.Colors.Dark2 = t.Role(brand.RolePrimary).Color()
	dt.Colors.Light2 = t.Role(brand.RoleBackgroundTint).Color()
	accents := t.Accents()
	for i := range dt.Colors.Accents {
		dt.Colors.Accents[i] = accents[i%len(accents)].Color()
	}
	dt.Colors.Hyperlink = t.Role(brand.RoleSecondary).Color()
	dt.Colors.FollowedHyperlink = t.Role(brand.RolePrimary).Color()

	fonts := t.Fonts()
	dt.Fonts.Name = dt.Name
	dt.Fonts.Major = fonts.Headline
	dt.Fonts.Minor = fonts.Body
}

// Deck returns the document being built.
func (b *Builder) Deck() *brandeck.Presentation { return b.deck }

// Theme returns the bound theme.
func (b *Builder) Theme() *brand.Theme { return b.theme }

// Width and Height are the slide size in EMU.
func (b *Builder) Width() int64  { return b.w }
func (b *Builder) Height() int64 { return b.h }

// Margin is the outer slide margin in EMU.
func (b *Builder) Margin() int64 { return b.m }

// Gutter is the gap between columns in EMU.
func (b *Builder) Gutter() int64 { return b.g }

// Now returns the builder's current time.
func (b *Builder) Now() time.Time { return b.now() }

// NewSlide appends an empty slide.
func (b *Builder) NewSlide() *brandeck.Slide {
	return b.deck.CreateSlide()
}

// SetBackground fills the slide background with a solid color.
func (b *Builder) SetBackground(slide *brandeck.Slide, c primitive.RGB) {
	primitive.SetBackground(slide, c)
	b.backgrounds[slide] = c
}

// SetBackgroundGradient fills the slide background with a gradient preset.
func (b *Builder) SetBackgroundGradient(slide *brandeck.Slide, g brand.Gradient) {
	primitive.SetBackgroundGradient(slide, g.From, g.To, g.Angle)
	b.backgrounds[slide] = g.From
}

// backgroundOf returns the color the slide background was last set to,
// or the theme background.
func (b *Builder) backgroundOf(slide *brandeck.Slide) primitive.RGB {
	if c, ok := b.backgrounds[slide]; ok {
		return c
	}
	return b.theme.Role(brand.RoleBackground)
}

// Accents returns a copy of the accent cycle.
func (b *Builder) Accents() []primitive.RGB { return b.theme.Accents() }

// Accent returns the i-th accent of the cycle, wrapping around.
func (b *Builder) Accent(i int) primitive.RGB {
	acc := b.theme.Accents()
	n := len(acc)
	return acc[((i%n)+n)%n]
}

// Role is a shorthand for the theme role color.
func (b *Builder) Role(role string) primitive.RGB { return b.theme.Role(role) }

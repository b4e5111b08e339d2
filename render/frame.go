package render

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/VantageDataChat/brandeck/builder"
	"github.com/VantageDataChat/brandeck/spec"
)

// Frame is what a renderer sees while drawing one slide: the shared
// builder plus the slide's position in the deck and its notices.
type Frame struct {
	*builder.Builder

	// Index is the 1-based position of the slide in the deck.
	Index int
	Kind  spec.Kind

	maxTeamMembers int
	log            zerolog.Logger
	notices        []string
}

// Notice records a non-fatal remark about the current slide.
func (f *Frame) Notice(format string, args ...any) {
	f.notices = append(f.notices, fmt.Sprintf(format, args...))
}

// Log returns the slide-scoped logger.
func (f *Frame) Log() zerolog.Logger { return f.log }

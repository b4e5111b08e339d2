// Package primitive holds the low-level drawing operations: color parsing,
// WCAG contrast math, and the fill, outline, radius, gradient, alpha,
// shadow and background edits applied directly to shape markup.
package primitive

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/VantageDataChat/brandeck"
)

// ErrMalformedColor is returned by ParseHex for input that is not six hex
// digits with an optional leading '#'.
var ErrMalformedColor = errors.New("malformed color value")

// RGB is an opaque 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

var (
	Black = RGB{}
	White = RGB{R: 0xFF, G: 0xFF, B: 0xFF}
)

// ParseHex parses "#RRGGBB" or "RRGGBB", case-insensitively.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Black, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}
	var v [3]uint8
	for i := 0; i < 3; i++ {
		hi, lo := hexDigit(h[2*i]), hexDigit(h[2*i+1])
		if hi < 0 || lo < 0 {
			return Black, fmt.Errorf("%w: %q", ErrMalformedColor, s)
		}
		v[i] = uint8(hi<<4 | lo)
	}
	return RGB{R: v[0], G: v[1], B: v[2]}, nil
}

// HexToColor is ParseHex with malformed input mapped to Black.
func HexToColor(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		return Black
	}
	return c
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// Hex returns the upper-case "RRGGBB" form used in markup.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// String returns "#RRGGBB".
func (c RGB) String() string {
	return "#" + c.Hex()
}

// Color converts c to an opaque document color.
func (c RGB) Color() brandeck.Color {
	return brandeck.NewColor(c.Hex())
}

// Luminance returns the WCAG 2.x relative luminance in [0,1].
func Luminance(c RGB) float64 {
	lin := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.04045 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*lin(c.R) + 0.7152*lin(c.G) + 0.0722*lin(c.B)
}

// ContrastRatio returns the WCAG contrast ratio of a and b, in [1,21].
func ContrastRatio(a, b RGB) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// AutoTextColor returns White or Black, whichever contrasts more with bg.
// Ties go to Black.
func AutoTextColor(bg RGB) RGB {
	if ContrastRatio(bg, White) > ContrastRatio(bg, Black) {
		return White
	}
	return Black
}

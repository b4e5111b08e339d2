package builder

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
)

// Logo variants.
const (
	LogoColored      = "colored"
	LogoWhite        = "white"
	LogoBlack        = "black"
	LogoFavicon      = "favicon"
	LogoFaviconWhite = "favicon_white"
	LogoVertical     = "vertical"
)

// fallbackLogoSize is the aspect assumed for logos that cannot be probed.
var fallbackLogoSize = image.Point{X: 1841, Y: 483}

// logoSize returns the pixel size of the image at path, cached by path.
func (b *Builder) logoSize(path string, data []byte) image.Point {
	if v, ok := b.logos.Get(path); ok {
		return v.(image.Point)
	}
	size := fallbackLogoSize
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width <= 0 || cfg.Height <= 0 {
		b.log.Debug().Err(err).Str("path", path).Msg("logo dimensions unavailable, assuming default aspect")
	} else {
		size = image.Point{X: cfg.Width, Y: cfg.Height}
		b.log.Debug().Str("path", path).Str("format", format).Int("width", cfg.Width).Int("height", cfg.Height).Msg("logo probed")
	}
	b.logos.Add(path, size)
	return size
}

// loadPicture reads a logo variant. It returns nil when the asset is not
// configured or cannot be read.
func (b *Builder) loadPicture(variant string) *brandeck.DrawingShape {
	path := b.theme.LogoAsset(variant)
	if path == "" {
		b.log.Debug().Str("variant", variant).Msg("logo asset not configured, skipping")
		return nil
	}
	pic := brandeck.NewDrawingShape()
	if err := pic.SetImageFromFile(path); err != nil {
		b.log.Debug().Err(err).Str("variant", variant).Msg("logo asset unavailable, skipping")
		return nil
	}
	return pic
}

// fit scales a natural size into maxW x maxH, keeping the aspect, and
// then widens to minW if needed.
func fit(natural image.Point, maxW, maxH, minW int64) (int64, int64) {
	aspect := float64(natural.X) / float64(natural.Y)
	w := float64(maxW)
	h := w / aspect
	if h > float64(maxH) {
		h = float64(maxH)
		w = h * aspect
	}
	if w < float64(minW) {
		w = float64(minW)
		h = w / aspect
	}
	return int64(w), int64(h)
}

// AddLogo places a logo variant no larger than maxW x maxH at placement.
// Right-aligned placements fail with ErrForbiddenPlacement; placements the
// brand does not list fall back to upper-left. A missing asset is not an
// error: AddLogo returns nil, nil.
func (b *Builder) AddLogo(slide *brandeck.Slide, variant string, placement brand.Placement, maxW, maxH int64) (*brandeck.DrawingShape, error) {
	if placement.IsRightAligned() {
		return nil, fmt.Errorf("%w: %s", ErrForbiddenPlacement, placement)
	}
	if !b.theme.PlacementAllowed(placement) {
		b.log.Debug().Str("placement", string(placement)).Msg("placement not allowed by brand, using upper-left")
		placement = brand.UpperLeft
	}

	pic := b.loadPicture(variant)
	if pic == nil {
		return nil, nil
	}
	minW := brandeck.Inch(b.theme.MinLogoWidthInches())
	w, h := fit(b.logoSize(pic.GetPath(), pic.GetImageData()), maxW, maxH, minW)

	x := b.m
	if placement.IsCentered() {
		x = (b.w - w) / 2
	}
	inset := int64(float64(b.m) * 0.6)
	y := inset
	if placement.IsBottom() {
		y = b.h - h - inset
	}

	pic.SetPosition(x, y)
	pic.SetSize(w, h)
	pic.SetName("Logo")
	slide.AddShape(pic)
	return pic, nil
}

// AddMotif places a decorative brand mark of at most size x size centered
// on (cx, cy). Like AddLogo, a missing asset yields nil.
func (b *Builder) AddMotif(slide *brandeck.Slide, variant string, cx, cy, size int64) *brandeck.DrawingShape {
	pic := b.loadPicture(variant)
	if pic == nil {
		return nil
	}
	w, h := fit(b.logoSize(pic.GetPath(), pic.GetImageData()), size, size, 0)
	pic.SetPosition(cx-w/2, cy-h/2)
	pic.SetSize(w, h)
	pic.SetName("Motif")
	slide.AddShape(pic)
	return pic
}

package brandeck

// DocumentTheme is the OOXML theme part: the color scheme and font scheme
// that PowerPoint offers in its theme pickers.
type DocumentTheme struct {
	Name   string
	Colors ColorScheme
	Fonts  FontScheme
}

// ColorScheme maps the twelve theme color slots.
type ColorScheme struct {
	Name              string
	Dark1             Color
	Light1            Color
	Dark2             Color
	Light2            Color
	Accents           [6]Color
	Hyperlink         Color
	FollowedHyperlink Color
}

// FontScheme names the major (headings) and minor (body) latin typefaces.
type FontScheme struct {
	Name  string
	Major string
	Minor string
}

// NewDocumentTheme returns the stock Office-like theme.
func NewDocumentTheme() *DocumentTheme {
	return &DocumentTheme{
		Name: "Office Theme",
		Colors: ColorScheme{
			Name:   "Office",
			Dark1:  ColorBlack,
			Light1: ColorWhite,
			Dark2:  NewColor("44546A"),
			Light2: NewColor("E7E6E6"),
			Accents: [6]Color{
				NewColor("4472C4"), NewColor("ED7D31"), NewColor("A5A5A5"),
				NewColor("FFC000"), NewColor("5B9BD5"), NewColor("70AD47"),
			},
			Hyperlink:         NewColor("0563C1"),
			FollowedHyperlink: NewColor("954F72"),
		},
		Fonts: FontScheme{Name: "Office", Major: "Calibri Light", Minor: "Calibri"},
	}
}

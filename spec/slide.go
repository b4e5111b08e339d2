// Package spec is the slide specification model: a deck title plus an
// ordered list of typed slides, decoded from JSON or YAML.
package spec

// Kind is the "type" discriminator of a slide.
type Kind string

const (
	KindCover          Kind = "cover"
	KindSectionDivider Kind = "section_divider"
	KindAgenda         Kind = "agenda"
	KindContent        Kind = "content"
	KindTwoColumn      Kind = "two_column"
	KindQuote          Kind = "quote"
	KindMetrics        Kind = "metrics"
	KindTeam           Kind = "team"
	KindCaseStudy      Kind = "case_study"
	KindClosing        Kind = "closing"
	KindBlank          Kind = "blank"
)

// Kinds lists the known slide kinds in presentation order.
func Kinds() []Kind {
	return []Kind{
		KindCover, KindSectionDivider, KindAgenda, KindContent, KindTwoColumn,
		KindQuote, KindMetrics, KindTeam, KindCaseStudy, KindClosing, KindBlank,
	}
}

// Slide is one of the slide variants below.
type Slide interface {
	Kind() Kind
}

// Deck is a titled, ordered list of slides.
type Deck struct {
	Title  string
	Slides []Slide
}

// Optional fields whose explicit empty value suppresses a default are
// pointers; nil slices mean "use the sample content".

type Cover struct {
	Title    string  `json:"title" yaml:"title"`
	Subtitle string  `json:"subtitle" yaml:"subtitle"`
	Date     string  `json:"date" yaml:"date"`
	CTAText  *string `json:"cta_text" yaml:"cta_text"`
}

type SectionDivider struct {
	Title    string `json:"title" yaml:"title"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
	// BgColor is a literal hex, palette name or role name.
	BgColor string `json:"bg_color" yaml:"bg_color"`
}

type Agenda struct {
	Title string   `json:"title" yaml:"title"`
	Items []string `json:"items" yaml:"items"`
}

type Content struct {
	Title            string   `json:"title" yaml:"title"`
	Body             string   `json:"body" yaml:"body"`
	BulletItems      []string `json:"bullet_items" yaml:"bullet_items"`
	ImagePlaceholder *string  `json:"image_placeholder" yaml:"image_placeholder"`
}

type TwoColumn struct {
	Title      string `json:"title" yaml:"title"`
	LeftTitle  string `json:"left_title" yaml:"left_title"`
	LeftBody   string `json:"left_body" yaml:"left_body"`
	RightTitle string `json:"right_title" yaml:"right_title"`
	RightBody  string `json:"right_body" yaml:"right_body"`
}

type Quote struct {
	Text        string `json:"text" yaml:"text"`
	Attribution string `json:"attribution" yaml:"attribution"`
}

type Metric struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

type Metrics struct {
	Title            string   `json:"title" yaml:"title"`
	Metrics          []Metric `json:"metrics" yaml:"metrics"`
	ChartPlaceholder *string  `json:"chart_placeholder" yaml:"chart_placeholder"`
}

type Member struct {
	Name string `json:"name" yaml:"name"`
	Role string `json:"role" yaml:"role"`
	Bio  string `json:"bio" yaml:"bio"`
}

type Team struct {
	Title   string   `json:"title" yaml:"title"`
	Members []Member `json:"members" yaml:"members"`
}

type CaseStudy struct {
	Title     string `json:"title" yaml:"title"`
	Challenge string `json:"challenge" yaml:"challenge"`
	Solution  string `json:"solution" yaml:"solution"`
	Results   string `json:"results" yaml:"results"`
}

type Closing struct {
	Title    string  `json:"title" yaml:"title"`
	Subtitle *string `json:"subtitle" yaml:"subtitle"`
	CTAText  string  `json:"cta_text" yaml:"cta_text"`
	Contact  *string `json:"contact" yaml:"contact"`
}

type Blank struct{}

// Unknown keeps a slide whose type is not recognized, so the renderer
// can report it in place.
type Unknown struct {
	Type   string
	Fields map[string]any
}

func (Cover) Kind() Kind          { return KindCover }
func (SectionDivider) Kind() Kind { return KindSectionDivider }
func (Agenda) Kind() Kind         { return KindAgenda }
func (Content) Kind() Kind        { return KindContent }
func (TwoColumn) Kind() Kind      { return KindTwoColumn }
func (Quote) Kind() Kind          { return KindQuote }
func (Metrics) Kind() Kind        { return KindMetrics }
func (Team) Kind() Kind           { return KindTeam }
func (CaseStudy) Kind() Kind      { return KindCaseStudy }
func (Closing) Kind() Kind        { return KindClosing }
func (Blank) Kind() Kind          { return KindBlank }
func (u Unknown) Kind() Kind      { return Kind(u.Type) }

// String returns a pointer to s, for the optional fields.
func String(s string) *string { return &s }

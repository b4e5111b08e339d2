package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/spec"
)

func only(t *testing.T, b interface{ Deck() *brandeck.Presentation }) *brandeck.Slide {
	t.Helper()
	require.Equal(t, 1, b.Deck().GetSlideCount())
	s, err := b.Deck().GetSlide(0)
	require.NoError(t, err)
	return s
}

func fillOf(s brandeck.Shape) string {
	p := brandeck.PaintOf(s.ShapeProperties())
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0].RGB()
}

func TestCoverLayout(t *testing.T) {
	b, rep := render(t, spec.Cover{Title: "Launch", Subtitle: "Tagline", Date: "May 2026"})
	require.NoError(t, rep.Err())
	slide := only(t, b)

	assert.Equal(t, 1, countNamed(slide, "Gradient Panel"))
	assert.Equal(t, 1, countNamed(slide, "Motif"))
	assert.Equal(t, 1, countNamed(slide, "Logo"))
	assert.Equal(t, 1, countNamed(slide, "Button"))
	assert.Zero(t, countNamed(slide, "Dot"))
	assert.Zero(t, countNamed(slide, "Footer Mark"))

	txt := texts(slide)
	assert.Contains(t, txt, "Launch")
	assert.Contains(t, txt, "Tagline\nMay 2026")
	assert.Contains(t, txt, "Get Started")
	assert.Contains(t, txt, "Confidential  |  © 2026 Brandeck")
}

func TestCoverExplicitEmptyCTA(t *testing.T) {
	b, _ := render(t, spec.Cover{CTAText: spec.String("")})
	assert.Zero(t, countNamed(only(t, b), "Button"))
}

func TestSectionDividerBackground(t *testing.T) {
	b, rep := render(t, spec.SectionDivider{Title: "Part", BgColor: "day_blue"})
	require.NoError(t, rep.Err())
	slide := only(t, b)
	assert.Equal(t, "4D75FE", brandeck.PaintOf(slide.BackgroundProperties()).Colors[0].RGB())
	assert.Empty(t, rep.Notices)

	b, rep = render(t, spec.SectionDivider{BgColor: "plum"})
	require.Len(t, rep.Notices, 1)
	assert.Contains(t, rep.Notices[0].Message, "plum")
	assert.Equal(t, "022791", brandeck.PaintOf(only(t, b).BackgroundProperties()).Colors[0].RGB())
}

func TestAgendaRows(t *testing.T) {
	b, _ := render(t, spec.Agenda{})
	slide := only(t, b)
	assert.Equal(t, 3, countNamed(slide, "Badge"))
	txt := texts(slide)
	assert.Contains(t, txt, "Agenda")
	assert.Contains(t, txt, "Topic 3")

	var badges []brandeck.Shape
	for _, s := range slide.GetShapes() {
		if s.GetName() == "Badge" {
			badges = append(badges, s)
		}
	}
	assert.Equal(t, brandeck.Inch(2.4), badges[0].GetOffsetY())
	assert.Equal(t, brandeck.Inch(2.4+0.85), badges[1].GetOffsetY())
	assert.Equal(t, "4D75FE", fillOf(badges[0]))
	assert.Equal(t, "022791", fillOf(badges[1]))

	b, _ = render(t, spec.Agenda{Items: []string{}})
	assert.Zero(t, countNamed(only(t, b), "Badge"))
}

func TestContentPrefersBullets(t *testing.T) {
	b, _ := render(t, spec.Content{Body: "ignored", BulletItems: []string{"one", "two"}})
	slide := only(t, b)
	assert.Equal(t, 1, countNamed(slide, "Bullets"))
	assert.Zero(t, countNamed(slide, "Body"))
	assert.Equal(t, 1, countNamed(slide, "Placeholder"))
	assert.Contains(t, texts(slide), "[ Visual / Image ]")

	b, _ = render(t, spec.Content{ImagePlaceholder: spec.String("")})
	slide = only(t, b)
	assert.Zero(t, countNamed(slide, "Placeholder"))
	assert.Contains(t, texts(slide), "Add your key points here.")
}

func TestTwoColumnAccents(t *testing.T) {
	b, _ := render(t, spec.TwoColumn{LeftBody: "l", RightBody: "r"})
	slide := only(t, b)
	assert.Equal(t, 2, countNamed(slide, "Card"))
	var bars []string
	for _, s := range slide.GetShapes() {
		if s.GetName() == "Accent Bar" && s.GetHeight() == brandeck.Inch(0.06) && s.GetWidth() == brandeck.Inch(5.8) {
			bars = append(bars, fillOf(s))
		}
	}
	assert.Equal(t, []string{"4D75FE", "022791"}, bars)
}

func TestQuote(t *testing.T) {
	b, _ := render(t, spec.Quote{Text: "Ship it", Attribution: "Ada"})
	slide := only(t, b)
	assert.Equal(t, "022791", brandeck.PaintOf(slide.BackgroundProperties()).Colors[0].RGB())
	assert.Contains(t, texts(slide), "— Ada")
	assert.Equal(t, 2, countNamed(slide, "Dot"))
	assert.Equal(t, 1, countNamed(slide, "Quote Mark"))
}

func TestMetricsLayout(t *testing.T) {
	b, _ := render(t, spec.Metrics{})
	slide := only(t, b)
	assert.Equal(t, 4, countNamed(slide, "Metric Value"))
	assert.Equal(t, 1, countNamed(slide, "Placeholder"))

	b, _ = render(t, spec.Metrics{Metrics: []spec.Metric{}})
	slide = only(t, b)
	assert.Zero(t, countNamed(slide, "Metric Value"))
	assert.Zero(t, countNamed(slide, "Placeholder"))
	assert.Zero(t, countNamed(slide, "Footer"))
}

func TestMetricsCardWidth(t *testing.T) {
	metrics := make([]spec.Metric, 6)
	b, _ := render(t, spec.Metrics{Metrics: metrics, ChartPlaceholder: spec.String("")})
	slide := only(t, b)
	for _, s := range slide.GetShapes() {
		if s.GetName() == "Card" {
			want := (b.Width() - 2*b.Margin() - 5*brandeck.Inch(0.35)) / 6
			assert.Equal(t, want, s.GetWidth())
		}
	}
	assert.Zero(t, countNamed(slide, "Placeholder"))
}

func TestTeamRowFitsSlide(t *testing.T) {
	for _, n := range []int{1, 4, 6} {
		b, _ := render(t, spec.Team{Members: make([]spec.Member, n)})
		slide := only(t, b)
		var cards []brandeck.Shape
		for _, s := range slide.GetShapes() {
			if s.GetName() == "Card" {
				cards = append(cards, s)
			}
		}
		require.Len(t, cards, n)
		last := cards[n-1]
		assert.LessOrEqual(t, last.GetOffsetX()+last.GetWidth(), b.Width()-b.Margin(), "%d members", n)
		assert.LessOrEqual(t, cards[0].GetWidth(), brandeck.Inch(2.7))
	}
}

func TestCaseStudyAccents(t *testing.T) {
	b, _ := render(t, spec.CaseStudy{})
	slide := only(t, b)
	var bars []string
	for _, s := range slide.GetShapes() {
		if s.GetName() == "Accent Bar" && s.GetHeight() == brandeck.Inch(0.07) {
			bars = append(bars, fillOf(s))
		}
	}
	assert.Equal(t, []string{"FF8A69", "4D75FE", "FAA944"}, bars)
	assert.Contains(t, texts(slide), "Describe the results.")
}

func TestClosingDefaults(t *testing.T) {
	b, rep := render(t, spec.Closing{})
	require.NoError(t, rep.Err())
	slide := only(t, b)
	txt := texts(slide)
	assert.Contains(t, txt, "Thank You")
	assert.Contains(t, txt, "Questions? Let's discuss.")
	assert.Contains(t, txt, "Contact Us")
	assert.Contains(t, txt, "hello@brandeck.dev  |  brandeck.dev")
	assert.Equal(t, 3, countNamed(slide, "Dot"))

	for _, s := range slide.GetShapes() {
		if s.GetName() == "Button" {
			assert.Equal(t, (b.Width()-brandeck.Inch(2.8))/2, s.GetOffsetX())
			assert.Equal(t, "FFFFFF", fillOf(s))
		}
		if s.GetName() == "Logo" {
			assert.Equal(t, (b.Width()-s.GetWidth())/2, s.GetOffsetX())
		}
	}
}

func TestClosingExplicitEmpty(t *testing.T) {
	b, _ := render(t, spec.Closing{Subtitle: spec.String(""), Contact: spec.String("")})
	txt := texts(only(t, b))
	assert.NotContains(t, txt, "Questions? Let's discuss.")
	assert.NotContains(t, txt, "hello@brandeck.dev  |  brandeck.dev")
}

func TestBlank(t *testing.T) {
	b, _ := render(t, spec.Blank{})
	slide := only(t, b)
	require.Len(t, slide.GetShapes(), 1)
	assert.Equal(t, "Logo", slide.GetShapes()[0].GetName())
	assert.Equal(t, "FFFFFF", brandeck.PaintOf(slide.BackgroundProperties()).Colors[0].RGB())
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", initials("ada lovelace byron"))
	assert.Equal(t, "É", initials("élodie"))
	assert.Equal(t, "", initials("  "))
}

func TestHeroGradientAngle(t *testing.T) {
	b := newBuilder(t)
	f := &Frame{Builder: b}
	g := heroGradient(f)
	assert.Equal(t, 135.0, g.Angle)
	assert.Equal(t, b.Role(brand.RolePrimary), g.From)
}

package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/builder"
	"github.com/VantageDataChat/brandeck/primitive"
	"github.com/VantageDataChat/brandeck/spec"
)

func in(v float64) int64 { return brandeck.Inch(v) }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// optional resolves a field where nil means def and "" means omit.
func optional(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// heroGradient is the brand hero preset, always drawn at 135 degrees.
func heroGradient(f *Frame) brand.Gradient {
	g, ok := f.Theme().Gradient("hero")
	if !ok {
		g = brand.Gradient{From: f.Role(brand.RolePrimary), To: f.Role(brand.RoleSecondary)}
	}
	g.Angle = 135
	return g
}

func (f *Frame) whiteSlide() *brandeck.Slide {
	slide := f.NewSlide()
	f.SetBackground(slide, f.Role(brand.RoleBackground))
	return slide
}

func (f *Frame) cornerLogo(slide *brandeck.Slide) error {
	_, err := f.AddLogo(slide, builder.LogoColored, brand.UpperLeft, in(1.8), in(0.45))
	return err
}

// sectionTitle draws the accent bar and h2 title shared by content-like
// slides.
func (f *Frame) sectionTitle(slide *brandeck.Slide, title string, barY, titleY float64) {
	f.AddAccentBar(slide, f.Margin(), in(barY), in(0.8), in(0.06))
	f.AddTitle(slide, title, builder.At(f.Margin(), in(titleY)), builder.FontSize(f.Theme().TypeSize("h2")))
}

func renderCover(f *Frame, s spec.Cover) error {
	slide := f.whiteSlide()
	f.AddGradientPanel(slide, in(7.5), 0, in(5.833), f.Height(), heroGradient(f))
	f.AddMotif(slide, builder.LogoFavicon, in(9.0), in(3.75), in(3.5))
	if _, err := f.AddLogo(slide, builder.LogoColored, brand.UpperLeft, in(2.4), in(0.65)); err != nil {
		return err
	}

	m := f.Margin()
	f.AddTitle(slide, orDefault(s.Title, "Presentation Title"),
		builder.At(m, in(2.4)), builder.Size(in(6.5), in(1.8)), builder.FontSize(48))

	var sub []string
	for _, part := range []string{s.Subtitle, s.Date} {
		if part != "" {
			sub = append(sub, part)
		}
	}
	if len(sub) > 0 {
		f.AddBody(slide, strings.Join(sub, "\n"),
			builder.At(m, in(4.3)), builder.Size(in(6), in(1.2)),
			builder.FontSize(20), builder.Color(f.Role(brand.RoleSecondary)))
	}

	if cta := optional(s.CTAText, "Get Started"); cta != "" {
		f.AddButton(slide, cta, m, in(5.8))
	}

	id := f.Theme().Identity()
	f.AddFooter(slide,
		builder.FooterText(fmt.Sprintf("Confidential  |  © %d %s", f.Now().Year(), id.Name)),
		builder.FooterNoMark())
	return nil
}

func renderSectionDivider(f *Frame, s spec.SectionDivider) error {
	slide := f.NewSlide()
	var bg *primitive.RGB
	if s.BgColor != "" {
		if c, ok := f.Theme().Color(s.BgColor); ok {
			bg = &c
		} else {
			f.Notice("unknown bg_color %q, using primary", s.BgColor)
		}
	}
	f.AddSectionHeader(slide, orDefault(s.Title, "Section Title"), s.Subtitle, bg)
	_, err := f.AddLogo(slide, builder.LogoWhite, brand.LowerLeft, in(1.8), in(0.45))
	return err
}

func renderAgenda(f *Frame, s spec.Agenda) error {
	slide := f.whiteSlide()
	f.sectionTitle(slide, orDefault(s.Title, "Agenda"), 0.9, 1.1)

	items := s.Items
	if items == nil {
		items = []string{"Topic 1", "Topic 2", "Topic 3"}
	}
	m := f.Margin()
	for i, item := range items {
		y := in(2.4 + float64(i)*0.85)
		f.AddBadge(slide, m, y, in(0.5), f.Accent(i), strconv.Itoa(i+1), 16)
		f.AddText(slide, item,
			builder.At(m+in(0.75), y+in(0.05)), builder.Size(in(10), in(0.5)),
			builder.FontSize(18))
	}

	f.AddFooter(slide)
	return f.cornerLogo(slide)
}

func renderContent(f *Frame, s spec.Content) error {
	slide := f.whiteSlide()
	if err := f.cornerLogo(slide); err != nil {
		return err
	}
	f.sectionTitle(slide, orDefault(s.Title, "Content Slide Title"), 1.2, 1.4)

	box := []builder.TextOption{
		builder.At(f.Margin(), in(2.5)), builder.Size(in(5.5), in(3.5)), builder.FontSize(15),
	}
	switch {
	case len(s.BulletItems) > 0:
		f.AddBulletList(slide, s.BulletItems, box...)
	case s.Body != "":
		f.AddBody(slide, s.Body, box...)
	default:
		f.AddBody(slide, "Add your key points here.", box...)
	}

	if label := optional(s.ImagePlaceholder, "Visual / Image"); label != "" {
		f.AddPlaceholderImage(slide, in(7.0), in(1.4), in(5.7), in(4.8), label)
	}
	f.AddFooter(slide)
	return nil
}

func renderTwoColumn(f *Frame, s spec.TwoColumn) error {
	slide := f.whiteSlide()
	if err := f.cornerLogo(slide); err != nil {
		return err
	}
	f.sectionTitle(slide, orDefault(s.Title, "Two-Column Layout"), 1.2, 1.4)

	colW := in(5.8)
	columns := []struct{ title, body string }{
		{orDefault(s.LeftTitle, "Left Column"), s.LeftBody},
		{orDefault(s.RightTitle, "Right Column"), s.RightBody},
	}
	for i, col := range columns {
		x := f.Margin() + int64(i)*(colW+f.Gutter())
		f.AddCard(slide, x, in(2.5), colW, in(4.0))
		f.AddAccentBar(slide, x, in(2.5), colW, in(0.06), f.Accent(i))
		f.AddText(slide, col.title,
			builder.At(x+in(0.3), in(2.7)), builder.Size(colW-in(0.6), in(0.5)),
			builder.FontSize(20), builder.Bold(true), builder.Color(f.Role(brand.RolePrimary)))
		if col.body != "" {
			f.AddBody(slide, col.body,
				builder.At(x+in(0.3), in(3.3)), builder.Size(colW-in(0.6), in(2.5)),
				builder.FontSize(14))
		}
	}
	f.AddFooter(slide)
	return nil
}

func renderQuote(f *Frame, s spec.Quote) error {
	slide := f.NewSlide()
	f.SetBackground(slide, f.Role(brand.RolePrimary))

	f.AddQuoteMark(slide, f.Margin(), in(1.0), in(2), in(2), f.Role(brand.RoleSecondary))
	f.AddTitle(slide, orDefault(s.Text, "A bold statement that captures\nyour key message in one line."),
		builder.At(in(1.2), in(2.8)), builder.Size(in(10.5), in(2.0)),
		builder.FontSize(36), builder.Color(f.Role(brand.RoleTextInverse)))
	if s.Attribution != "" {
		f.AddText(slide, "— "+s.Attribution,
			builder.At(in(1.2), in(5.0)), builder.Size(in(8), in(0.6)),
			builder.FontSize(16), builder.Color(f.Role(brand.RoleSecondary)))
	}

	f.AddDot(slide, in(11.5), in(5.5), in(0.25), f.Role(brand.RoleAccentHighlight), 100)
	f.AddDot(slide, in(12.0), in(5.0), in(0.25), f.Role(brand.RoleAccentWarm), 100)

	_, err := f.AddLogo(slide, builder.LogoWhite, brand.LowerLeft, in(1.8), in(0.45))
	return err
}

var sampleMetrics = []spec.Metric{
	{Value: "98%", Label: "Metric 1"},
	{Value: "3.5x", Label: "Metric 2"},
	{Value: "500+", Label: "Metric 3"},
	{Value: "24/7", Label: "Metric 4"},
}

func renderMetrics(f *Frame, s spec.Metrics) error {
	slide := f.NewSlide()
	f.SetBackground(slide, f.Role(brand.RoleBackgroundTint))
	if err := f.cornerLogo(slide); err != nil {
		return err
	}
	f.sectionTitle(slide, orDefault(s.Title, "Key Metrics"), 1.1, 1.3)

	metrics := s.Metrics
	if metrics == nil {
		metrics = sampleMetrics
	}
	n := int64(len(metrics))
	if n == 0 {
		return nil
	}

	gap := in(0.35)
	cardW := min((f.Width()-2*f.Margin()-gap*(n-1))/n, in(2.7))
	for i, m := range metrics {
		x := f.Margin() + int64(i)*(cardW+gap)
		f.AddMetricCard(slide, x, in(2.3), cardW, in(1.6), orDefault(m.Value, "—"), m.Label, f.Accent(i))
	}

	if label := optional(s.ChartPlaceholder, "Chart / Data Visualization"); label != "" {
		f.AddPlaceholderImage(slide, f.Margin(), in(4.3), in(11.8), in(2.5), label)
	}
	f.AddFooter(slide)
	return nil
}

// initials returns up to two leading letters of name, for avatars.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		out = append(out, r[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

func renderTeam(f *Frame, s spec.Team) error {
	slide := f.whiteSlide()
	if err := f.cornerLogo(slide); err != nil {
		return err
	}
	f.sectionTitle(slide, orDefault(s.Title, "Our Team"), 1.1, 1.3)

	members := s.Members
	if members == nil {
		for i := 1; i <= 4; i++ {
			members = append(members, spec.Member{Name: fmt.Sprintf("Team Member %d", i), Role: "Role / Title", Bio: "Brief bio."})
		}
	}
	if limit := f.maxTeamMembers; len(members) > limit {
		f.Notice("showing %d of %d team members", limit, len(members))
		members = members[:limit]
	}

	n := int64(len(members))
	inset, cardH, gap := in(0.3), in(4.2), in(0.35)
	cardW := in(2.7)
	if n > 0 {
		cardW = min((f.Width()-2*f.Margin()-2*inset-gap*(n-1))/n, cardW)
	}
	avatar := min(in(1.4), cardW-in(0.2))
	y := in(2.3)
	for i, m := range members {
		x := f.Margin() + inset + int64(i)*(cardW+gap)
		accent := f.Accent(i)
		name := orDefault(m.Name, fmt.Sprintf("Team Member %d", i+1))

		f.AddCard(slide, x, y, cardW, cardH)
		f.AddBadge(slide, x+(cardW-avatar)/2, y+in(0.4), avatar, accent, initials(name), 28)

		textX, textW := x+in(0.2), cardW-in(0.4)
		center := builder.Align(brandeck.HorizontalCenter)
		f.AddText(slide, name,
			builder.At(textX, y+in(2.1)), builder.Size(textW, in(0.4)), center,
			builder.FontSize(16), builder.Bold(true), builder.Color(f.Role(brand.RolePrimary)))
		f.AddText(slide, orDefault(m.Role, "Role / Title"),
			builder.At(textX, y+in(2.6)), builder.Size(textW, in(0.3)), center,
			builder.FontSize(12), builder.Color(f.Role(brand.RoleSecondary)))
		if m.Bio != "" {
			f.AddText(slide, m.Bio,
				builder.At(textX, y+in(3.1)), builder.Size(textW, in(0.8)), center,
				builder.FontSize(11))
		}
	}
	f.AddFooter(slide)
	return nil
}

func renderCaseStudy(f *Frame, s spec.CaseStudy) error {
	slide := f.whiteSlide()
	if err := f.cornerLogo(slide); err != nil {
		return err
	}
	f.sectionTitle(slide, orDefault(s.Title, "Case Study: Client Name"), 1.1, 1.3)

	columns := []struct {
		label, body string
		accent      primitive.RGB
	}{
		{"Challenge", orDefault(s.Challenge, "Describe the challenge."), f.Role(brand.RoleAccentWarm)},
		{"Solution", orDefault(s.Solution, "Describe the solution."), f.Role(brand.RoleSecondary)},
		{"Results", orDefault(s.Results, "Describe the results."), f.Role(brand.RoleAccentHighlight)},
	}
	colW, colH, gap := in(3.7), in(4.0), in(0.4)
	y := in(2.5)
	for i, col := range columns {
		x := f.Margin() + in(0.15) + int64(i)*(colW+gap)
		f.AddCard(slide, x, y, colW, colH)
		f.AddAccentBar(slide, x, y, colW, in(0.07), col.accent)
		f.AddBadge(slide, x+in(0.3), y+in(0.4), in(0.6), col.accent, strconv.Itoa(i+1), 18)
		f.AddText(slide, col.label,
			builder.At(x+in(0.3), y+in(1.2)), builder.Size(colW-in(0.6), in(0.4)),
			builder.FontSize(20), builder.Bold(true), builder.Color(f.Role(brand.RolePrimary)))
		f.AddBody(slide, col.body,
			builder.At(x+in(0.3), y+in(1.8)), builder.Size(colW-in(0.6), in(1.8)),
			builder.FontSize(13))
	}
	f.AddFooter(slide)
	return nil
}

// defaultContact is "email  |  website" from the brand identity.
func defaultContact(id brand.Identity) string {
	var parts []string
	for _, p := range []string{id.ContactEmail, id.Website} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "  |  ")
}

func renderClosing(f *Frame, s spec.Closing) error {
	slide := f.NewSlide()
	hero := heroGradient(f)
	f.SetBackground(slide, hero.From)
	f.AddGradientPanel(slide, 0, 0, f.Width(), f.Height(), hero)

	for _, d := range []struct {
		x, y, size float64
		role       string
		opacity    float64
	}{
		{1.5, 1.0, 1.5, brand.RoleAccentHighlight, 15},
		{10.5, 5.5, 2.0, brand.RoleAccentWarm, 12},
		{11.0, 1.5, 0.8, brand.RoleSecondary, 20},
	} {
		f.AddDot(slide, in(d.x), in(d.y), in(d.size), f.Role(d.role), d.opacity)
	}

	m := f.Margin()
	inverse := f.Role(brand.RoleTextInverse)
	center := builder.Align(brandeck.HorizontalCenter)
	f.AddTitle(slide, orDefault(s.Title, "Thank You"),
		builder.At(m, in(2.0)), builder.Size(in(12), in(1.5)), center,
		builder.FontSize(56), builder.Color(inverse))
	if sub := optional(s.Subtitle, "Questions? Let's discuss."); sub != "" {
		f.AddText(slide, sub,
			builder.At(m, in(3.6)), builder.Size(in(12), in(0.8)), center,
			builder.FontSize(22), builder.Color(f.Role(brand.RoleSecondary)))
	}

	btnW := in(2.8)
	f.AddButton(slide, orDefault(s.CTAText, "Contact Us"), (f.Width()-btnW)/2, in(4.8),
		builder.ButtonSize(btnW, in(0.55)),
		builder.ButtonFill(primitive.White),
		builder.ButtonTextColor(f.Role(brand.RolePrimary)))

	if contact := optional(s.Contact, defaultContact(f.Theme().Identity())); contact != "" {
		f.AddText(slide, contact,
			builder.At(m, in(5.8)), builder.Size(in(12), in(0.5)), center,
			builder.FontSize(14), builder.Color(inverse))
	}

	_, err := f.AddLogo(slide, builder.LogoWhite, brand.LowerCenter, in(2.2), in(0.55))
	return err
}

func renderBlank(f *Frame, _ spec.Blank) error {
	return f.cornerLogo(f.whiteSlide())
}

package spec

// DemoDeck returns the ten-slide demonstration deck: one slide of every
// kind except blank, in presentation order.
func DemoDeck() *Deck {
	member := func(n string) Member {
		return Member{Name: "Team Member " + n, Role: "Role / Title", Bio: "Brief bio or expertise\narea description."}
	}
	return &Deck{
		Title: "Brand Template Demo",
		Slides: []Slide{
			Cover{
				Title:    "Presentation Title",
				Subtitle: "Subtitle or tagline goes here",
				Date:     "Month Year",
			},
			SectionDivider{
				Title:    "Section Title",
				Subtitle: "Brief description of this section",
			},
			Agenda{Items: []string{
				"Introduction & Context",
				"Problem Statement",
				"Our Approach & Solution",
				"Key Results & Metrics",
				"Next Steps & Discussion",
			}},
			Content{
				Title: "Content Slide Title",
				Body: "Add your key points here. The template uses generous whitespace\n" +
					"and brand-consistent typography for a clean, modern look.\n\n" +
					"Use this layout for text-heavy slides that need a supporting visual.",
				ImagePlaceholder: String("Visual / Image"),
			},
			TwoColumn{
				Title:      "Two-Column Layout",
				LeftTitle:  "Left Column",
				LeftBody:   "Supporting text for the first column. Use for\ncomparisons, features, or parallel content.",
				RightTitle: "Right Column",
				RightBody:  "Supporting text for the second column.\nMaintain visual balance between columns.",
			},
			Quote{
				Text:        "A bold statement that captures\nyour key message in one line.",
				Attribution: "Speaker Name, Title",
			},
			Metrics{
				Title: "Key Metrics",
				Metrics: []Metric{
					{Value: "98%", Label: "Customer Satisfaction"},
					{Value: "3.5x", Label: "ROI Improvement"},
					{Value: "500+", Label: "Active Projects"},
					{Value: "24/7", Label: "Global Support"},
				},
			},
			Team{
				Title:   "Our Team",
				Members: []Member{member("1"), member("2"), member("3"), member("4")},
			},
			CaseStudy{
				Title:     "Case Study: Client Name",
				Challenge: "Describe the client's\nchallenge or pain point\nthat needed addressing.",
				Solution:  "Explain the approach\nand how the solution\nwas implemented.",
				Results:   "Share quantifiable\noutcomes and the\nimpact delivered.",
			},
			Closing{
				Title:    "Thank You",
				Subtitle: String("Questions? Let's discuss."),
				CTAText:  "Contact Us",
			},
		},
	}
}

package brand

// Default returns the built-in brand used when no configuration file is
// given. Each call returns a fresh Config.
func Default() *Config {
	return &Config{
		Colors: map[string]string{
			"night_navy": "#022791",
			"day_blue":   "#4D75FE",
			"salmon":     "#FF8A69",
			"yellow":     "#FAA944",
			"black":      "#0C0C0C",
			"gray":       "#262626",
			"white":      "#FFFFFF",
		},
		Gradient: map[string]GradientSpec{
			"hero": {From: "night_navy", To: "day_blue", Angle: 135},
		},
		Typography: defaultTypography,
		LogoRules: LogoRules{
			AllowedPlacements:   []string{"upper-left", "lower-left", "upper-center", "lower-center"},
			ForbiddenPlacements: []string{"upper-right", "lower-right"},
			ClearspaceUnit:      "favicon_height",
		},
		SlideDimensions: SlideDimensions{Aspect: "16:9"},
		Identity: Identity{
			Name:         "Brandeck",
			Website:      "brandeck.dev",
			ContactEmail: "hello@brandeck.dev",
		},
	}
}

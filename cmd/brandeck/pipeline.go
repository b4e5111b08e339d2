package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/brand"
	"github.com/VantageDataChat/brandeck/builder"
	"github.com/VantageDataChat/brandeck/render"
	"github.com/VantageDataChat/brandeck/spec"
)

// rendered is a deck drawn into memory, ready to save, preview or audit.
type rendered struct {
	name    string
	builder *builder.Builder
	fonts   *brandeck.FontCache
	report  render.Report
}

func (a *app) loadTheme() (*brand.Theme, error) {
	cfg := brand.Default()
	if a.brand != "" {
		var err error
		if cfg, err = brand.Load(a.brand); err != nil {
			return nil, err
		}
	}
	return brand.BuildTheme(cfg, brand.WithLogger(a.log))
}

// loadDeck reads the spec named by args: a path, "-" or nothing for stdin,
// or the demo deck when --demo is set.
func (a *app) loadDeck(cmd *cobra.Command, args []string) (*spec.Deck, string, error) {
	switch {
	case a.demo:
		if len(args) > 0 {
			return nil, "", errors.New("--demo does not take a spec argument")
		}
		return spec.DemoDeck(), "demo", nil
	case len(args) == 0 || args[0] == "-":
		deck, err := spec.Read(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read spec from stdin: %w", err)
		}
		return deck, "deck", nil
	default:
		deck, err := spec.Load(args[0])
		if err != nil {
			return nil, "", err
		}
		base := filepath.Base(args[0])
		return deck, strings.TrimSuffix(base, filepath.Ext(base)), nil
	}
}

func (a *app) render(cmd *cobra.Command, args []string) (*rendered, error) {
	theme, err := a.loadTheme()
	if err != nil {
		return nil, err
	}
	deck, name, err := a.loadDeck(cmd, args)
	if err != nil {
		return nil, err
	}

	fonts := brandeck.NewFontCache(a.cfg.FontDirs...)
	b, err := builder.New(brandeck.New(), theme,
		builder.WithLogger(a.log),
		builder.WithLogoCacheSize(a.cfg.LogoCacheSize),
		builder.WithFontCache(fonts))
	if err != nil {
		return nil, err
	}

	engine := render.NewEngine(
		render.WithLogger(a.log),
		render.WithMaxTeamMembers(a.cfg.MaxTeamMembers))
	rep := engine.Render(b, deck)
	printReport(cmd.ErrOrStderr(), rep)

	if b.Deck().GetSlideCount() == 0 {
		if err := rep.Err(); err != nil {
			return nil, fmt.Errorf("no slides rendered: %w", err)
		}
		return nil, errors.New("spec has no slides")
	}
	return &rendered{name: name, builder: b, fonts: fonts, report: rep}, nil
}

func printReport(w io.Writer, rep render.Report) {
	for _, n := range rep.Notices {
		fmt.Fprintf(w, "notice: %s\n", n)
	}
	for _, f := range rep.Failures {
		fmt.Fprintf(w, "failed: %v\n", f)
	}
}

package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/VantageDataChat/brandeck"
	"github.com/VantageDataChat/brandeck/internal/config"
	"github.com/VantageDataChat/brandeck/internal/logger"
)

// app carries the settings shared by every subcommand.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	verbose bool
	brand   string
	demo    bool
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	a := &app{cfg: cfg, log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "brandeck",
		Short: "Render slide specs into brand-compliant PowerPoint decks",
		Long: `brandeck renders a JSON or YAML slide spec into a .pptx deck that
follows a brand: palette, typography, spacing and logo rules.

Examples:
  brandeck generate deck.yaml -o out/deck.pptx
  brandeck generate --demo
  cat deck.json | brandeck generate - --brand brand.yaml
  brandeck preview deck.yaml --width 1920
  brandeck audit deck.yaml`,
		Version:       brandeck.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			level := cfg.LogLevel
			if a.verbose {
				level = "debug"
			}
			log, err := logger.New(cmd.ErrOrStderr(), level, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.log = log
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&a.brand, "brand", cfg.BrandConfig, "Brand config file (JSON or YAML); built-in brand when empty")
	flags.BoolVar(&a.demo, "demo", false, "Render the built-in demonstration deck instead of a spec")

	root.AddCommand(a.generateCmd(), a.previewCmd(), a.auditCmd(), versionCmd())
	return root
}

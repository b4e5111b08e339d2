package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/brandeck/audit"
)

func (a *app) auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit [spec.json|spec.yaml|-]",
		Short: "Render a slide spec and check it against the brand rules",
		Long: `Render a slide spec in memory and report colors, fonts, slide size and
logo placements that break the brand. Exits non-zero when anything is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.render(cmd, args)
			if err != nil {
				return err
			}
			findings := audit.Run(r.builder.Deck(), r.builder.Theme(), audit.WithLogger(a.log))

			out := cmd.OutOrStdout()
			for _, f := range findings {
				fmt.Fprintln(out, f)
			}
			if len(findings) > 0 {
				return fmt.Errorf("%d brand findings", len(findings))
			}
			fmt.Fprintf(out, "%s: no brand findings in %d slides\n", r.name, r.builder.Deck().GetSlideCount())
			return nil
		},
	}
}

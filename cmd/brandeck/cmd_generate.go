package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

const thumbnailWidth = 480

func (a *app) generateCmd() *cobra.Command {
	var (
		output    string
		thumbnail bool
	)
	cmd := &cobra.Command{
		Use:   "generate [spec.json|spec.yaml|-]",
		Short: "Render a slide spec into a .pptx deck",
		Long: `Render a slide spec into a .pptx deck. The spec is read from the given
file, or from stdin when the argument is "-" or missing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := a.render(cmd, args)
			if err != nil {
				return err
			}
			deck := r.builder.Deck()

			if output == "" {
				output = filepath.Join(a.cfg.OutputDir, r.name+".pptx")
			}
			if thumbnail {
				if err := deck.GenerateThumbnail(thumbnailWidth, r.fonts); err != nil {
					a.log.Warn().Err(err).Msg("thumbnail skipped")
				}
			}
			if err := deck.Save(output); err != nil {
				return fmt.Errorf("save %s: %w", output, err)
			}

			a.log.Info().Str("path", output).Int("slides", deck.GetSlideCount()).Msg("deck written")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d slides)\n", output, deck.GetSlideCount())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output .pptx path (default <output-dir>/<spec name>.pptx)")
	cmd.Flags().BoolVar(&thumbnail, "thumbnail", a.cfg.Thumbnail, "Embed a JPEG thumbnail of the first slide")
	return cmd
}

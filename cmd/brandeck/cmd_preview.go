package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/brandeck"
)

func (a *app) previewCmd() *cobra.Command {
	var (
		outDir string
		width  int
	)
	cmd := &cobra.Command{
		Use:   "preview [spec.json|spec.yaml|-]",
		Short: "Render a slide spec to one PNG per slide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 {
				return fmt.Errorf("--width must be positive, got %d", width)
			}
			r, err := a.render(cmd, args)
			if err != nil {
				return err
			}

			if outDir == "" {
				outDir = filepath.Join(a.cfg.OutputDir, r.name+"_preview")
			}
			if err := os.MkdirAll(outDir, 0750); err != nil {
				return fmt.Errorf("create preview directory: %w", err)
			}

			opts := brandeck.DefaultRenderOptions()
			opts.Width = width
			opts.FontCache = r.fonts
			deck := r.builder.Deck()
			if err := deck.SaveSlidesAsImages(filepath.Join(outDir, "slide%02d.png"), opts); err != nil {
				return fmt.Errorf("render preview: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "rendered %d slides to %s\n", deck.GetSlideCount(), outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for the PNG files (default <output-dir>/<spec name>_preview)")
	cmd.Flags().IntVar(&width, "width", a.cfg.PreviewWidth, "Image width in pixels")
	return cmd
}

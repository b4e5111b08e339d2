package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VantageDataChat/brandeck"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the brandeck version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "brandeck %s\n", brandeck.Version)
		},
	}
}

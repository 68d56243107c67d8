package main

import (
	"fmt"

	"github.com/aretw0/lumina"
	"github.com/aretw0/lumina/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lumina",
	RunE: func(cmd *cobra.Command, args []string) error {
		banner, _ := cmd.Flags().GetBool("banner")
		if banner {
			tui.New(cmd.OutOrStdout()).PrintBanner(lumina.Version)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "lumina version %s\n", lumina.Version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner")
}

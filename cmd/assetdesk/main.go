package main

import (
	"os"

	"github.com/spf13/cobra"

	"assetdesk/internal/interfaces/cli/migrate"
	"assetdesk/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "assetdesk",
		Short: "AssetDesk - IT asset and maintenance ticketing backend",
		Long:  `AssetDesk tracks IT equipment, routes maintenance work orders, and runs patrol inspections for an internal IT support team.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

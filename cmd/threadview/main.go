package main

import (
	"os"

	"github.com/spf13/cobra"

	"flow-ai/threadview/internal/app"
)

var rootCmd = &cobra.Command{
	Use:          "threadview",
	Short:        "Store agent threads and render them into views",
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP service",
	Long:  `Serves the thread API. Configuration comes from .env and the environment (APP_PORT, DATABASE_PATH, REDIS_ADDR, ...).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(app.Run())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(renderCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

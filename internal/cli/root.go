package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cogwatt",
	Short: "Cognitive energy budgeting and forecasting",
	Long:  "Cogwatt tracks per-domain cognitive energy spend, forecasts the day's energy curve, and suggests restorative breaks. Single Go binary, local SQLite state.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(suggestCmd)
}

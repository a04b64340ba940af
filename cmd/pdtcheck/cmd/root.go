package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pdtcheck",
	Short: "Pattern-day-trading compliance checks and trade signal math",
	Long: `pdtcheck runs the day-trading compliance engine and indicator
calculations offline.

It provides tools for:
  - Replaying an order log through the PDT compliance engine
  - Computing indicators (SMA, EMA, RSI, Bollinger, MACD) from price CSVs
  - Risk metrics: Sharpe ratio, position sizing, risk/reward
  - Journaling detected day trades to CSV or SQLite`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finlock/daytrade/indicators"
	"github.com/finlock/daytrade/market"
	"github.com/finlock/daytrade/risk"
)

var (
	indPricesPath string
	indSMAPeriod  int
	indEMAPeriod  int
	indRSIPeriod  int
	indAccount    float64
	indRiskPct    float64
	indEntry      float64
	indStop       float64
	indTarget     float64
)

var indicatorsCmd = &cobra.Command{
	Use:   "indicators",
	Short: "Compute indicators and risk metrics from a price CSV",
	Long: `Indicators reads a close-price series from a CSV file
(time,price[,volume[,bid,ask]]) and prints the latest indicator values:
SMA, EMA, RSI, Bollinger Bands, MACD, and the annualized Sharpe ratio of
the series returns.

With --entry and --stop it also prints position sizing and risk/reward
for a candidate trade.`,
	RunE: runIndicators,
}

func init() {
	indicatorsCmd.Flags().StringVar(&indPricesPath, "prices", "", "price CSV file")
	indicatorsCmd.Flags().IntVar(&indSMAPeriod, "sma", 20, "SMA period")
	indicatorsCmd.Flags().IntVar(&indEMAPeriod, "ema", 20, "EMA period")
	indicatorsCmd.Flags().IntVar(&indRSIPeriod, "rsi", indicators.DefaultRSIPeriod, "RSI period")
	indicatorsCmd.Flags().Float64Var(&indAccount, "account-value", 0, "account value for position sizing")
	indicatorsCmd.Flags().Float64Var(&indRiskPct, "risk-pct", 1, "risk percent for position sizing")
	indicatorsCmd.Flags().Float64Var(&indEntry, "entry", 0, "candidate entry price")
	indicatorsCmd.Flags().Float64Var(&indStop, "stop", 0, "candidate stop-loss price")
	indicatorsCmd.Flags().Float64Var(&indTarget, "target", 0, "candidate take-profit price")
	indicatorsCmd.MarkFlagRequired("prices")
	rootCmd.AddCommand(indicatorsCmd)
}

func runIndicators(cmd *cobra.Command, args []string) error {
	series, err := market.LoadCSV(indPricesPath)
	if err != nil {
		return err
	}
	closes := series.Closes()
	fmt.Printf("%d samples\n", len(closes))

	if sma := indicators.SMA(closes, indSMAPeriod); len(sma) > 0 {
		fmt.Printf("SMA(%d):  %.4f\n", indSMAPeriod, sma[len(sma)-1])
	}
	if ema := indicators.EMA(closes, indEMAPeriod); len(ema) > 0 {
		fmt.Printf("EMA(%d):  %.4f\n", indEMAPeriod, ema[len(ema)-1])
	}
	fmt.Printf("RSI(%d):  %.2f\n", indRSIPeriod, indicators.RSI(closes, indRSIPeriod))

	bands := indicators.Bollinger(closes, indicators.DefaultBollingerPeriod, indicators.DefaultBollingerMult)
	if n := len(bands.Middle); n > 0 {
		fmt.Printf("Bollinger(%d,%.0f): upper %.4f middle %.4f lower %.4f\n",
			indicators.DefaultBollingerPeriod, indicators.DefaultBollingerMult,
			bands.Upper[n-1], bands.Middle[n-1], bands.Lower[n-1])
	}

	macd := indicators.MACD(closes, indicators.DefaultMACDFast, indicators.DefaultMACDSlow, indicators.DefaultMACDSignal)
	if n := len(macd.MACD); n > 0 {
		fmt.Printf("MACD(%d,%d,%d): macd %.4f signal %.4f histogram %.4f\n",
			indicators.DefaultMACDFast, indicators.DefaultMACDSlow, indicators.DefaultMACDSignal,
			macd.MACD[n-1], macd.Signal[n-1], macd.Histogram[n-1])
	}

	sharpe := risk.SharpeRatio(series.Returns(), risk.DefaultRiskFreeRate, risk.DefaultTradingDaysPerYear)
	fmt.Printf("Sharpe:   %.3f\n", sharpe)

	if indEntry != 0 && indStop != 0 {
		if indAccount > 0 {
			size := risk.PositionSize(indAccount, indRiskPct, indEntry, indStop)
			fmt.Printf("Position size (%.1f%% of %.2f): %d shares\n", indRiskPct, indAccount, size)
		}
		if indTarget != 0 {
			fmt.Printf("Risk/reward: %.2f\n", risk.RiskReward(indEntry, indStop, indTarget))
		}
	}

	return nil
}

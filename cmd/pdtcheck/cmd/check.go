package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/finlock/daytrade/compliance"
	"github.com/finlock/daytrade/config"
	"github.com/finlock/daytrade/journal"
	"github.com/finlock/daytrade/pkg/id"
)

var (
	checkConfigPath string
	checkOrdersPath string
	checkEquity     float64
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Replay an order log through the PDT compliance engine",
	Long: `Check reads orders from a CSV file and evaluates each one against the
Pattern Day Trading rule, printing a decision per order and a per-account
summary at the end.

The orders file has columns:

  account_id,symbol,side,quantity,submitted_at[,order_id]

submitted_at is RFC3339. Orders without an id are assigned a ULID. When
the config names a journal, prior day trades are replayed before the
first order of each account and new decisions are recorded back.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkConfigPath, "config", "", "config file (YAML or JSON)")
	checkCmd.Flags().StringVar(&checkOrdersPath, "orders", "", "orders CSV file")
	checkCmd.Flags().Float64Var(&checkEquity, "equity", 0, "account equity pushed to the engine")
	checkCmd.MarkFlagRequired("orders")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Default()
	if checkConfigPath != "" {
		var err error
		if cfg, err = config.LoadFromFile(checkConfigPath); err != nil {
			return err
		}
	}

	engCfg, err := cfg.Compliance.EngineConfig()
	if err != nil {
		return err
	}
	cal, err := cfg.Compliance.Calendar()
	if err != nil {
		return err
	}

	// The clock follows order timestamps so historical logs replay with
	// the window boundaries they had at the time.
	clock := &compliance.FixedClock{}
	eng := compliance.NewEngine(engCfg, cal, clock)

	var jnl journal.Journal
	switch cfg.Journal.Type {
	case "csv":
		jnl, err = journal.NewCSV(cfg.Journal.Path)
	case "sqlite":
		jnl, err = journal.NewSQLite(cfg.Journal.DBPath)
	}
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if jnl != nil {
		defer jnl.Close()
	}

	orders, err := loadOrders(checkOrdersPath)
	if err != nil {
		return err
	}

	seen := map[string]bool{}
	for _, o := range orders {
		clock.Set(o.SubmittedAt)

		if !seen[o.AccountID] {
			seen[o.AccountID] = true
			if jnl != nil {
				if err := journal.Replay(jnl, eng, o.AccountID, checkEquity, time.Time{}); err != nil {
					return err
				}
			} else if err := eng.SetEquity(o.AccountID, checkEquity); err != nil {
				return err
			}
		}

		dec, err := eng.Evaluate(o)
		if err != nil {
			logger.Error().Err(err).Str("order", o.ID).Msg("order rejected")
			continue
		}

		ev := logger.Info().
			Str("order", o.ID).
			Str("account", o.AccountID).
			Str("symbol", o.Symbol).
			Str("side", string(o.Side)).
			Int("quantity", o.Quantity)
		switch {
		case !dec.Accepted:
			ev.Str("reason", string(dec.Reason)).
				Str("next_eligible", dec.NextEligible.Format("2006-01-02")).
				Msg("blocked")
		case dec.DayTrade != nil:
			ev.Str("paired_with", dec.DayTrade.OpenOrderID).Msg("accepted, day trade recorded")
		default:
			ev.Msg("accepted")
		}

		if jnl != nil {
			if err := journal.Record(jnl, o, dec); err != nil {
				return fmt.Errorf("journal: %w", err)
			}
		}
	}

	accounts := make([]string, 0, len(seen))
	for a := range seen {
		accounts = append(accounts, a)
	}
	sort.Strings(accounts)

	for _, a := range accounts {
		count := eng.DayTradeCount(a)
		remaining, unlimited := eng.RemainingDayTrades(a)
		fmt.Printf("account %s: %d day trade(s) in window", a, count)
		if unlimited {
			fmt.Printf(", unlimited (equity above threshold)\n")
			continue
		}
		fmt.Printf(", %d remaining", remaining)
		if next, blocked := eng.NextEligibleDate(a); blocked {
			fmt.Printf(", next eligible %s", next.Format("2006-01-02"))
		}
		fmt.Println()
	}

	return nil
}

func loadOrders(path string) ([]compliance.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("load orders %s: %w", path, err)
	}

	var out []compliance.Order
	for i, row := range rows {
		if i == 0 && len(row) > 0 && row[0] == "account_id" {
			continue
		}
		if len(row) < 5 {
			return nil, fmt.Errorf("load orders %s: row %d has %d columns, want at least 5", path, i+1, len(row))
		}

		side, err := compliance.ParseSide(row[2])
		if err != nil {
			return nil, fmt.Errorf("load orders %s: row %d: %w", path, i+1, err)
		}
		qty, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, fmt.Errorf("load orders %s: row %d: bad quantity %q", path, i+1, row[3])
		}
		at, err := time.Parse(time.RFC3339, row[4])
		if err != nil {
			return nil, fmt.Errorf("load orders %s: row %d: bad timestamp %q", path, i+1, row[4])
		}

		o := compliance.Order{
			AccountID:   row[0],
			Symbol:      row[1],
			Side:        side,
			Quantity:    qty,
			SubmittedAt: at,
		}
		if len(row) > 5 && row[5] != "" {
			o.ID = row[5]
		} else {
			o.ID = id.New()
		}
		out = append(out, o)
	}
	return out, nil
}

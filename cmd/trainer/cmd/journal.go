package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxtrainer/journal"
	"github.com/rustyeddy/fxtrainer/pkg/id"
	"github.com/rustyeddy/fxtrainer/view"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the trade journal",
	Long: `Query and display trade journal records from the SQLite database.

Subcommands:
  trade    - Show one trade of a session
  today    - List trades closed today
  day      - List trades closed on a specific day
  session  - List the trades and equity curve of a session

Examples:
  trainer journal trade 01HZX3Q8N2 3
  trainer journal today
  trainer journal day 2024-01-15
  trainer journal session 01HZX3Q8N2 --equity`,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <session-id> <position-id>",
	Short: "Show details of a specific trade",
	Args:  cobra.ExactArgs(2),
	RunE:  runJournalTrade,
}

var journalTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE:  runJournalToday,
}

var journalDayCmd = &cobra.Command{
	Use:   "day <YYYY-MM-DD>",
	Short: "List trades closed on a specific day",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalDay,
}

var journalSessionCmd = &cobra.Command{
	Use:   "session <session-id>",
	Short: "List the trades of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalSession,
}

var (
	journalDBPath string
	journalTable  bool
	journalEquity bool
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalTodayCmd)
	journalCmd.AddCommand(journalDayCmd)
	journalCmd.AddCommand(journalSessionCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "", "path to SQLite journal DB (default from config)")
	journalCmd.PersistentFlags().BoolVar(&journalTable, "table", false, "print a table instead of org entries")
	journalSessionCmd.Flags().BoolVar(&journalEquity, "equity", false, "also print the equity curve")
}

func openJournal() (*journal.SQLite, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	path := journalDBPath
	if path == "" {
		path = cfg.Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func printTrades(cmd *cobra.Command, recs []journal.TradeRecord) {
	out := cmd.OutOrStdout()
	if journalTable {
		view.RenderTradeSummary(out, recs)
		return
	}
	fmt.Fprintln(out, journal.FormatTradesOrg(recs))
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	positionID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("position id: %w", err)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(args[0], positionID)
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalToday(cmd *cobra.Command, args []string) error {
	return listDay(cmd, time.Now().In(time.Local).Format("2006-01-02"))
}

func runJournalDay(cmd *cobra.Command, args []string) error {
	return listDay(cmd, args[0])
}

func listDay(cmd *cobra.Command, day string) error {
	start, end, err := dayBounds(time.Local, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListTradesClosedBetween(start, end)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	printTrades(cmd, recs)
	return nil
}

func runJournalSession(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListTradesBySession(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	if started, err := id.Time(args[0]); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Session %s started %s\n", args[0], started.Format("2006-01-02 15:04:05 MST"))
	}
	printTrades(cmd, recs)

	if !journalEquity {
		return nil
	}
	snaps, err := j.ListEquityBySession(args[0])
	if err != nil {
		return fmt.Errorf("query equity: %w", err)
	}
	view.RenderEquity(cmd.OutOrStdout(), snaps)
	return nil
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1), nil
}

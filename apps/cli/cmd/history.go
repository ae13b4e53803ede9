package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/config"
	"github.com/abdul-hamid-achik/jsonspec/packages/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show recorded check runs",
	Long: `Show runs recorded with --history, newest first. With a run id,
show that run's individual checks.

Examples:
  jsonspec history --db runs.db
  jsonspec history --db runs.db --limit 5
  jsonspec history --db runs.db 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.MaximumNArgs(1),
	RunE: historyCommand,
}

var (
	historyDBFlag    string
	historyLimitFlag int
)

func init() {
	historyCmd.Flags().StringVar(&historyDBFlag, "db", getEnvString("JSONSPEC_HISTORY", ""), "History database path (env: JSONSPEC_HISTORY)")
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 10, "Maximum runs to show")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	dbPath := historyDBFlag
	if dbPath == "" {
		fileConfig, err := config.LoadConfig("")
		if err != nil {
			return err
		}
		dbPath = fileConfig.HistoryPath
	}
	if dbPath == "" {
		return fmt.Errorf("no history database (use --db or set historyPath in .jsonspec.yaml)")
	}

	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if len(args) == 1 {
		checks, err := store.RunChecks(args[0])
		if err != nil {
			return err
		}
		if len(checks) == 0 {
			return fmt.Errorf("no run with id %s", args[0])
		}
		for _, c := range checks {
			mark := "✓"
			if !c.Passed {
				mark = "✗"
			}
			fmt.Fprintf(out, "%s %s", mark, c.Name)
			if c.Message != "" {
				fmt.Fprintf(out, " (%s)", c.Message)
			}
			fmt.Fprintln(out)
		}
		return nil
	}

	runs, err := store.RecentRuns(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded runs.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %s  %s against %s  %d passed, %d failed, %d errored  %dms\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.ID,
			r.Document, r.Suite,
			r.Passed, r.Failed, r.Errored,
			r.Duration.Milliseconds())
	}
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/jsonspec/packages/bench"
	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

var benchCmd = &cobra.Command{
	Use:   "bench <document.json> <suite.yaml>",
	Short: "Measure suite latency against a document",
	Long: `Run a suite against a document repeatedly and report latency
percentiles.

Examples:
  jsonspec bench user.json checks.yaml --iterations 1000
  jsonspec bench user.json checks.yaml -n 1000 --rate 100`,
	Args: cobra.ExactArgs(2),
	RunE: benchCommand,
}

var (
	benchIterationsFlag int
	benchRateFlag       float64
)

func init() {
	benchCmd.Flags().IntVarP(&benchIterationsFlag, "iterations", "n", 100, "Number of iterations")
	benchCmd.Flags().Float64VarP(&benchRateFlag, "rate", "r", 0, "Target iterations per second (0 = unpaced)")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	body, err := readDocument(args[0])
	if err != nil {
		return err
	}
	s, err := suite.Load(args[1])
	if err != nil {
		return err
	}
	schemas, err := loadSchemas(s, filepath.Dir(args[1]))
	if err != nil {
		return err
	}

	// Stop gracefully on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping...")
		cancel()
	}()

	report, err := bench.Run(ctx, body, s, bench.Options{
		Iterations: benchIterationsFlag,
		Rate:       benchRateFlag,
		Schemas:    schemas,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Format())

	if report.Failures > 0 {
		os.Exit(ExitCheckFailure)
	}
	return nil
}

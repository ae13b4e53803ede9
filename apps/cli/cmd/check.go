package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/jsonspec/packages/assertions"
	"github.com/abdul-hamid-achik/jsonspec/packages/core/config"
	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
	"github.com/abdul-hamid-achik/jsonspec/packages/history"
	"github.com/abdul-hamid-achik/jsonspec/packages/output"
)

var checkCmd = &cobra.Command{
	Use:   "check <document.json> <suite.yaml>",
	Short: "Check a JSON document against a suite of assertions",
	Long: `Check a JSON document against the checks in a YAML suite file.

The document argument may be - to read the document from stdin.

Examples:
  jsonspec check user.json checks.yaml
  curl -s https://api.example.com/user | jsonspec check - checks.yaml
  jsonspec check user.json checks.yaml --output json
  jsonspec check user.json checks.yaml --watch
  jsonspec check user.json checks.yaml --history runs.db`,
	Args: cobra.ExactArgs(2),
	RunE: checkCommand,
}

var (
	configFlag     string
	outputFlag     string
	outputFileFlag string
	verboseFlag    int
	quietFlag      bool
	noColorFlag    bool
	bailFlag       bool
	watchFlag      bool
	historyFlag    string
)

func init() {
	checkCmd.Flags().StringVar(&configFlag, "config", getEnvString("JSONSPEC_CONFIG", ""), "Path to config file (env: JSONSPEC_CONFIG)")
	checkCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("JSONSPEC_OUTPUT", ""), "Output format: console, json, junit, tap (env: JSONSPEC_OUTPUT)")
	checkCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("JSONSPEC_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: JSONSPEC_OUTPUT_FILE)")
	checkCmd.Flags().CountVarP(&verboseFlag, "verbose", "v", "Verbose output (full failure messages)")
	checkCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("JSONSPEC_QUIET", false), "Only report failures and the summary (env: JSONSPEC_QUIET)")
	checkCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("JSONSPEC_NO_COLOR", false), "Disable colored output (env: JSONSPEC_NO_COLOR)")
	checkCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("JSONSPEC_BAIL", false), "Stop on first failed check (env: JSONSPEC_BAIL)")
	checkCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the document and suite for changes and re-check")
	checkCmd.Flags().StringVar(&historyFlag, "history", getEnvString("JSONSPEC_HISTORY", ""), "Record runs into this sqlite database (env: JSONSPEC_HISTORY)")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *suite.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that accumulate results and emit
// them in one document
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// newFormatter builds the formatter for the chosen output format. A nil
// writer means stdout.
func newFormatter(format string, w io.Writer, verbose, noColor, quiet bool) Formatter {
	switch strings.ToLower(format) {
	case "json":
		opts := []output.JSONOption{}
		if w != nil {
			opts = append(opts, output.JSONWithWriter(w))
		}
		return output.NewJSONFormatter(opts...)
	case "junit":
		opts := []output.JUnitOption{}
		if w != nil {
			opts = append(opts, output.JUnitWithWriter(w))
		}
		return output.NewJUnitFormatter(opts...)
	case "tap":
		opts := []output.TAPOption{}
		if w != nil {
			opts = append(opts, output.TAPWithWriter(w))
		}
		return output.NewTAPFormatter(opts...)
	default: // "console"
		opts := []output.ConsoleOption{
			output.WithVerbose(verbose),
			output.WithNoColor(noColor || quiet),
			output.WithQuiet(quiet),
		}
		if w != nil {
			opts = append(opts, output.WithWriter(w))
		}
		return output.NewConsoleFormatter(opts...)
	}
}

// readDocument loads the JSON document, from stdin when path is "-".
func readDocument(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", path, err)
	}
	return string(data), nil
}

// loadSchemas reads every schema the suite references, resolving relative
// references against baseDir. The returned map is keyed by the reference
// as written in the suite.
func loadSchemas(s *suite.Suite, baseDir string) (map[string]string, error) {
	refs := s.SchemaPaths()
	if len(refs) == 0 {
		return nil, nil
	}
	schemas := make(map[string]string, len(refs))
	for _, ref := range refs {
		path := ref
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot access schema %s: %w", path, err)
		}
		schemas[ref] = string(data)
	}
	return schemas, nil
}

// suiteLabel names a suite for reporting: the declared name when present,
// the file name otherwise.
func suiteLabel(s *suite.Suite, path string) string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(path)
}

// documentLabel names the document for reporting and history.
func documentLabel(arg string) string {
	if arg == "-" {
		return "stdin"
	}
	return arg
}

// exitCodeFor maps a run outcome to the process exit code.
func exitCodeFor(result *suite.RunResult) int {
	if result.Failed+result.Errored > 0 {
		return ExitCheckFailure
	}
	return ExitSuccess
}

func checkCommand(cmd *cobra.Command, args []string) error {
	docArg, suitePath := args[0], args[1]

	if watchFlag && docArg == "-" {
		return fmt.Errorf("cannot watch when the document comes from stdin")
	}

	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return err
	}

	outFormat := outputFlag
	if outFormat == "" {
		outFormat = fileConfig.Output
	}
	noColor := noColorFlag || fileConfig.GetNoColor()
	quiet := quietFlag || fileConfig.GetQuiet()
	bail := bailFlag || fileConfig.GetBail()

	historyPath := historyFlag
	if historyPath == "" {
		historyPath = fileConfig.HistoryPath
	}

	var outWriter io.Writer
	if outputFileFlag != "" {
		f, err := os.Create(outputFileFlag)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		outWriter = f
	}

	var store *history.Store
	if historyPath != "" {
		store, err = history.Open(historyPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	// runOnce re-reads the document and suite so watch re-runs pick up
	// the changed files.
	runOnce := func(formatter Formatter) (*suite.RunResult, error) {
		body, err := readDocument(docArg)
		if err != nil {
			return nil, err
		}
		s, err := suite.Load(suitePath)
		if err != nil {
			return nil, err
		}
		schemas, err := loadSchemas(s, filepath.Dir(suitePath))
		if err != nil {
			return nil, err
		}

		start := time.Now()
		a, err := assertions.NewAsserter(body)
		if err != nil {
			return nil, err
		}

		var results []suite.CheckResult
		for i := range s.Checks {
			r := suite.RunCheck(a, &s.Checks[i], schemas)
			results = append(results, r)
			if bail && (r.Err != nil || !r.Passed) {
				break
			}
		}

		result := suite.Summarize(documentLabel(docArg), suiteLabel(s, suitePath), results, time.Since(start))
		formatter.FormatResult(result)
		if flushable, ok := formatter.(Flushable); ok {
			if err := flushable.Flush(result.Duration); err != nil {
				return nil, fmt.Errorf("error writing output: %w", err)
			}
		}

		if store != nil {
			if _, err := store.RecordRun(result); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to record history: %v\n", err)
			}
		}
		return result, nil
	}

	formatter := newFormatter(outFormat, outWriter, verboseFlag > 0, noColor, quiet)
	formatter.FormatHeader(version)

	result, err := runOnce(formatter)
	if err != nil {
		formatter.FormatError(err)
		return err
	}

	if !watchFlag {
		if code := exitCodeFor(result); code != ExitSuccess {
			os.Exit(code)
		}
		return nil
	}

	// Watch mode: re-run when the document, suite, or a referenced
	// schema changes.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	targets := watchTargets(docArg, suitePath)
	watchedDirs := make(map[string]bool)
	for t := range targets {
		dir := filepath.Dir(t)
		if !watchedDirs[dir] {
			if err := watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			watchedDirs[dir] = true
		}
	}

	debounce := time.Duration(fileConfig.WatchDebounceMs) * time.Millisecond
	if debounce <= 0 {
		debounce = config.DefaultWatchDebounceMs * time.Millisecond
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	// Debounce timer for rapid file changes
	var debounceTimer *time.Timer

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Write) && targets[filepath.Clean(event.Name)] {
				// Debounce: reset timer on each event
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-checking...\n\n", event.Name)

					// Fresh formatter per run; the accumulating
					// formats need clean state.
					f := newFormatter(outFormat, outWriter, verboseFlag > 0, noColor, quiet)
					if _, err := runOnce(f); err != nil {
						f.FormatError(err)
					}

					fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n")
				})
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

// watchTargets resolves the files whose writes re-trigger a run: the
// document, the suite, and every schema the suite currently references.
func watchTargets(docPath, suitePath string) map[string]bool {
	targets := map[string]bool{
		filepath.Clean(docPath):   true,
		filepath.Clean(suitePath): true,
	}
	s, err := suite.Load(suitePath)
	if err != nil {
		return targets
	}
	baseDir := filepath.Dir(suitePath)
	for _, ref := range s.SchemaPaths() {
		p := ref
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		targets[filepath.Clean(p)] = true
	}
	return targets
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

var validateCmd = &cobra.Command{
	Use:   "validate <suite.yaml>...",
	Short: "Validate suite files for syntax errors",
	Long: `Validate suite files without running them.

Examples:
  jsonspec validate checks.yaml
  jsonspec validate suites/*.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	hasErrors := false
	for _, file := range args {
		s, err := suite.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s (%d checks)\n", file, len(s.Checks))
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/jsonspec/packages/core/suite"
)

var listCmd = &cobra.Command{
	Use:   "list <suite.yaml>...",
	Short: "List the checks in suite files",
	Long: `List every check defined in the given suite files.

Examples:
  jsonspec list checks.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	for _, file := range args {
		s, err := suite.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", file)
		for i := range s.Checks {
			c := &s.Checks[i]
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (%s)\n", c.Name, describeCheck(c))
		}
	}

	return nil
}

// describeCheck names the assertion a check carries, for listings.
func describeCheck(c *suite.Check) string {
	switch {
	case c.ContainsJSON != nil:
		return "containsJson"
	case c.DontContainsJSON != nil:
		return "dontContainsJson"
	case c.JSONType != nil:
		if c.JSONPath != "" {
			return fmt.Sprintf("jsonType at %s", c.JSONPath)
		}
		return "jsonType"
	case c.DontJSONType != nil:
		if c.JSONPath != "" {
			return fmt.Sprintf("dontJsonType at %s", c.JSONPath)
		}
		return "dontJsonType"
	case c.JSONPath != "":
		return fmt.Sprintf("jsonPath %s", c.JSONPath)
	case c.DontJSONPath != "":
		return fmt.Sprintf("dontJsonPath %s", c.DontJSONPath)
	case c.XPath != "":
		return fmt.Sprintf("xpath %s", c.XPath)
	case c.DontXPath != "":
		return fmt.Sprintf("dontXpath %s", c.DontXPath)
	case c.Schema != "":
		return fmt.Sprintf("schema %s", c.Schema)
	}
	return "no assertion"
}

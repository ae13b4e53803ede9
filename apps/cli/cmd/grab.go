package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/jsonspec/packages/assertions"
)

var grabCmd = &cobra.Command{
	Use:   "grab <document.json>",
	Short: "Extract values from a JSON document",
	Long: `Extract values from a JSON document and print them as JSON lines.

Exactly one selector flag must be given. JSONPath and gjson path matches
print as JSON values; XPath matches print their string values.

Examples:
  jsonspec grab user.json --jsonpath '$.user.roles[*]'
  jsonspec grab user.json --path user.name
  curl -s https://api.example.com/user | jsonspec grab - --xpath '//user/id'`,
	Args: cobra.ExactArgs(1),
	RunE: grabCommand,
}

var (
	grabJSONPathFlag string
	grabPathFlag     string
	grabXPathFlag    string
)

func init() {
	grabCmd.Flags().StringVar(&grabJSONPathFlag, "jsonpath", "", "JSONPath expression")
	grabCmd.Flags().StringVar(&grabPathFlag, "path", "", "gjson path expression")
	grabCmd.Flags().StringVar(&grabXPathFlag, "xpath", "", "XPath expression over the projected document")
}

func grabCommand(cmd *cobra.Command, args []string) error {
	selectors := 0
	for _, f := range []string{grabJSONPathFlag, grabPathFlag, grabXPathFlag} {
		if f != "" {
			selectors++
		}
	}
	if selectors != 1 {
		return fmt.Errorf("exactly one of --jsonpath, --path, --xpath is required")
	}

	body, err := readDocument(args[0])
	if err != nil {
		return err
	}
	a, err := assertions.NewAsserter(body)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	switch {
	case grabJSONPathFlag != "":
		values, err := a.GrabDataFromResponseByJSONPath(grabJSONPathFlag)
		if err != nil {
			return err
		}
		for _, v := range values {
			fmt.Fprintln(out, v.JSON())
		}

	case grabPathFlag != "":
		v, ok := a.GrabByPath(grabPathFlag)
		if !ok {
			return fmt.Errorf("path %q matched nothing", grabPathFlag)
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(encoded))

	case grabXPathFlag != "":
		nodes, err := a.FilterByXPath(grabXPathFlag)
		if err != nil {
			return err
		}
		for _, n := range nodes {
			encoded, _ := json.Marshal(n.InnerText())
			fmt.Fprintln(out, string(encoded))
		}
	}

	return nil
}

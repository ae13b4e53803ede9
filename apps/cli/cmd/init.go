package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new jsonspec project",
	Long: `Initialize a new jsonspec project in the current directory.

This creates:
  - .jsonspec.yaml - Configuration file
  - example.json   - Example JSON document
  - checks.yaml    - Example suite

Examples:
  jsonspec init
  jsonspec init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".jsonspec.yaml")
	documentFile := filepath.Join(cwd, "example.json")
	suiteFile := filepath.Join(cwd, "checks.yaml")

	if !forceInit {
		for _, f := range []string{configFile, documentFile, suiteFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"output":          "console",
		"watchDebounceMs": 250,
	}

	configYAML, _ := yaml.Marshal(configContent)
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	documentContent := `{
  "user": {
    "id": 42,
    "name": "Ada",
    "email": "ada@example.com",
    "roles": ["admin", "editor"]
  },
  "success": 1
}
`
	if err := os.WriteFile(documentFile, []byte(documentContent), 0644); err != nil {
		return fmt.Errorf("failed to create example document: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", documentFile)

	suiteContent := `name: example checks

checks:
  - name: contains the user
    containsJson:
      user:
        name: Ada

  - name: id is an integer
    jsonType:
      id: integer
    jsonPath: $.user

  - name: has an email
    jsonPath: $.user.email

  - name: two roles
    xpath: count(//user/roles) = 2

  - name: no error field
    dontJsonPath: $.error
`
	if err := os.WriteFile(suiteFile, []byte(suiteContent), 0644); err != nil {
		return fmt.Errorf("failed to create example suite: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", suiteFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\njsonspec project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'jsonspec check example.json checks.yaml' to run the example suite.\n")

	return nil
}

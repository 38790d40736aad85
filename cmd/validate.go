package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/manjumh021/flow-manager/internal/engine"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a flow definition file without executing it",
	Long: `Validate reads a flow definition from a JSON or YAML file and
reports every violation found. The exit code is non-zero when the
definition is invalid; warnings alone do not fail validation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readDefinition(args[0])
		if err != nil {
			return err
		}

		violations := engine.Check(raw)
		valid := true
		for _, v := range violations {
			if v.Severity == engine.SeverityError {
				valid = false
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", v.Severity, v)
		}

		if !valid {
			return fmt.Errorf("flow definition is invalid (%d finding(s))", len(violations))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "flow definition is valid")
		return nil
	},
}

func readDefinition(path string) (map[string]any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading definition file: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("error unmarshalling YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("error unmarshalling JSON: %w", err)
		}
	}
	return raw, nil
}

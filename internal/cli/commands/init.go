package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/esqllint/internal/cli/config"
	"github.com/leapstack-labs/esqllint/pkg/lint/rules/convention"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a default esqllint configuration",
		Long: `Write a .esqllint.yaml with the default include patterns, output mode and
rule options, ready to be edited.`,
		Example: `  # Initialize in current directory
  esqllint init

  # Initialize in another directory
  esqllint init ./integration

  # Overwrite an existing config
  esqllint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			r := NewCommandContext(cmd, "").Renderer

			path, err := writeDefaultConfig(dir, force)
			if err != nil {
				return err
			}
			r.Success("Created " + path)
			r.Println("")
			r.Println("Next steps:")
			r.Println("  1. Adjust include/exclude to match your sources")
			r.Println("  2. Run 'esqllint rules' to see the available rules")
			r.Println("  3. Run 'esqllint lint' to check your project")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	return cmd
}

// defaultConfig is the configuration written by init.
func defaultConfig() *config.Config {
	cfg := config.Default()
	cfg.Exclude = []string{}
	cfg.Lint = &config.LintConfig{
		Disabled: []string{},
		Severity: map[string]string{},
		Rules: map[string]config.RuleOptions{
			"CV01": {"format": convention.DefaultVariableFormat},
			"ST01": {"case_insensitive": false},
		},
	}
	return cfg
}

func writeDefaultConfig(dir string, force bool) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.DefaultConfigFile)
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists. Use --force to overwrite", path)
	}

	data, err := renderDefaultConfig()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// keyComments annotates top-level keys of the generated file.
var keyComments = map[string]string{
	"include": "Glob patterns (doublestar syntax) selecting sources below each linted directory.",
	"exclude": "Glob patterns removed from the selection.",
	"output":  "auto, text, markdown, json or github.",
	"lint":    "Rule selection. Severity values: error, warning, info, hint or off.",
}

func renderDefaultConfig() ([]byte, error) {
	var body yaml.Node
	if err := body.Encode(defaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		key := body.Content[i]
		key.HeadComment = keyComments[key.Value]
	}
	doc := yaml.Node{
		Kind:        yaml.DocumentNode,
		HeadComment: "esqllint configuration",
		Content:     []*yaml.Node{&body},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

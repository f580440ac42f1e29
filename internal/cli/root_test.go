package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/esqllint/internal/cli/commands"
	"github.com/leapstack-labs/esqllint/internal/cli/config"
	"github.com/leapstack-labs/esqllint/internal/cli/output"
	"github.com/leapstack-labs/esqllint/internal/cli/testutil"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	config.ResetConfig()
	cfgFile = ""

	root := NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"lint", "rules", "init", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
	for _, flag := range []string{"config", "include", "exclude", "concurrency", "verbose", "output", "docs-url"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestRootCommand_LintWithConfigFile(t *testing.T) {
	project := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(project, config.DefaultConfigFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(`exclude:
  - "broken/**"
output: json
lint:
  disabled: [ST01]
`), 0600))
	t.Chdir(project)

	out, _, err := execute(t, "lint", ".")
	require.ErrorIs(t, err, commands.ErrLintIssues)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Files, 1, "broken file excluded, clean file has no findings")
	assert.Equal(t, filepath.FromSlash(testutil.DirtyFile), result.Files[0].Path)
	require.Len(t, result.Files[0].Diagnostics, 1)
	assert.Equal(t, "CV01", result.Files[0].Diagnostics[0].RuleID)
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	project := testutil.SetupTestProject(t)
	cfgPath := filepath.Join(project, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output: json\nlint:\n  rules:\n    CV01:\n      format: \"[A-Z][a-zA-Z]*\"\n"), 0600))

	out, _, err := execute(t, "--config", cfgPath, "--output", "github", "--exclude", "broken/**", "lint", project)
	require.ErrorIs(t, err, commands.ErrLintIssues)

	assert.Contains(t, out, "::warning ")
	assert.NotContains(t, out, "BadName", "BadName matches the configured format")
	assert.Contains(t, out, `Rename variable "total" to match the regular expression [A-Z][a-zA-Z]*.`)
	assert.Contains(t, out, "unusedProc")
}

func TestRootCommand_InvalidRuleOption(t *testing.T) {
	project := testutil.SetupTestProject(t)
	t.Setenv("ESQLLINT_LINT__RULES__CV01__FORMAT", "(unclosed")

	_, _, err := execute(t, "lint", filepath.Join(project, testutil.CleanFile))
	require.Error(t, err)
	assert.NotErrorIs(t, err, commands.ErrLintIssues)
	assert.Contains(t, err.Error(), `rule CV01: option "format"`)
}

func TestRootCommand_InvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := execute(t, "--output", "xml", "rules")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRootCommand_VerboseLogsToStderr(t *testing.T) {
	project := testutil.SetupTestProject(t)

	_, errOut, err := execute(t, "--verbose", "lint", filepath.Join(project, testutil.CleanFile))
	require.NoError(t, err)
	assert.Contains(t, errOut, "level=DEBUG")
	assert.Contains(t, errOut, "msg=linting")
}

func TestRootCommand_Version(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "esqllint v"+Version)
}

func TestRootCommand_Completion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			out, _, err := execute(t, "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "esqllint")
		})
	}

	_, _, err := execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestRootCommand_DocsURL(t *testing.T) {
	project := testutil.SetupTestProject(t)

	out, _, err := execute(t, "--docs-url", "http://mirror.local/rules/", "--output", "json",
		"lint", filepath.Join(project, testutil.DirtyFile))
	require.ErrorIs(t, err, commands.ErrLintIssues)
	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Files, 1)
	for _, d := range result.Files[0].Diagnostics {
		assert.Equal(t, "http://mirror.local/rules/"+strings.ToLower(d.RuleID), d.DocumentationURL)
	}

	out, _, err = execute(t, "--docs-url", "http://mirror.local/rules", "rules", "CV01", "--format", "json")
	require.NoError(t, err)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "http://mirror.local/rules/cv01", info["documentation_url"])

	// Without the flag the hosted docs are linked again.
	out, _, err = execute(t, "rules", "CV01", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "https://esqllint.dev/docs/rules/cv01", info["documentation_url"])
}

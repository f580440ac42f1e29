package commands

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/esqllint/internal/cli/config"
	"github.com/leapstack-labs/esqllint/internal/cli/output"
	"github.com/leapstack-labs/esqllint/internal/cli/testutil"
	"github.com/leapstack-labs/esqllint/pkg/lint"
)

func runLintCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := NewLintCommand()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [paths...]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"format", "disable", "severity", "rule", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled("ST01"))
		assert.False(t, cfg.IsDisabled("CV01"))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Disable: []string{" st01 "}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("ST01"))
		assert.False(t, cfg.IsDisabled("CV01"))
	})

	t.Run("enable only specific rules", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{Rules: []string{"CV01"}})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled("CV01"))
		for _, r := range lint.GetAllRules() {
			if r.ID() != "CV01" {
				assert.True(t, cfg.IsDisabled(r.ID()), "rule %q should be disabled", r.ID())
			}
		}
	})

	t.Run("unknown rule", func(t *testing.T) {
		_, err := buildLintConfig(nil, &LintOptions{Rules: []string{"XX99"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown rule "XX99"`)
	})

	t.Run("project config", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Disabled: []string{"ST01"},
				Severity: map[string]string{"CV01": "error", "XX01": "off"},
				Rules:    map[string]config.RuleOptions{"cv01": {"format": "[a-z]+"}},
			},
		}
		cfg, err := buildLintConfig(projectCfg, &LintOptions{})
		require.NoError(t, err)

		assert.True(t, cfg.IsDisabled("ST01"))
		assert.True(t, cfg.IsDisabled("XX01"))
		assert.Equal(t, lint.SeverityError, cfg.GetSeverity("CV01", lint.SeverityWarning))
		assert.Equal(t, "[a-z]+", cfg.GetRuleOptions("CV01")["format"])
	})

	t.Run("bad project severity", func(t *testing.T) {
		projectCfg := &config.Config{Lint: &config.LintConfig{Severity: map[string]string{"CV01": "loud"}}}
		_, err := buildLintConfig(projectCfg, &LintOptions{})
		require.Error(t, err)
	})
}

func TestLintCommand_CleanFile(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, err := runLintCmd(t, filepath.Join(root, testutil.CleanFile))
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestLintCommand_DirtyFile(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, err := runLintCmd(t, filepath.Join(root, testutil.DirtyFile))
	require.ErrorIs(t, err, ErrLintIssues)

	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "**CV01**")
	assert.Contains(t, out, `Rename variable "BadName" to match the regular expression ^[a-z][a-zA-Z0-9]{0,30}$.`)
	assert.Contains(t, out, "**ST01**")
	assert.Contains(t, out, `Remove the unused procedure "unusedProc".`)
	assert.Contains(t, out, "Summary: 2 issues, 2 warnings in 1 files")
}

func TestLintCommand_JSON(t *testing.T) {
	root := testutil.SetupTestProject(t)
	dirty := filepath.Join(root, testutil.DirtyFile)

	out, err := runLintCmd(t, "--format", "json", dirty)
	require.ErrorIs(t, err, ErrLintIssues)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 2, result.Summary.TotalIssues)
	assert.Equal(t, 2, result.Summary.Warnings)
	require.Len(t, result.Files, 1)
	assert.Equal(t, dirty, result.Files[0].Path)

	diags := result.Files[0].Diagnostics
	require.Len(t, diags, 2)
	assert.Equal(t, "CV01", diags[0].RuleID)
	assert.Equal(t, 4, diags[0].Line)
	assert.Equal(t, 11, diags[0].Column)
	assert.Equal(t, "ST01", diags[1].RuleID)
	assert.Equal(t, 8, diags[1].Line)
	assert.Equal(t, "https://esqllint.dev/docs/rules/st01", diags[1].DocumentationURL)
}

func TestLintCommand_JSONClean(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, err := runLintCmd(t, "--format", "json", filepath.Join(root, testutil.CleanFile))
	require.NoError(t, err)

	var result output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Zero(t, result.Summary.TotalIssues)
	assert.Empty(t, result.Files)
}

func TestLintCommand_GitHub(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, err := runLintCmd(t, "--format", "github", filepath.Join(root, testutil.DirtyFile))
	require.ErrorIs(t, err, ErrLintIssues)

	assert.Contains(t, out, "::warning file=")
	assert.Contains(t, out, `,line=4,col=11,endLine=4,endColumn=18,title=CV01::Rename variable "BadName"`)
	assert.Contains(t, out, `,line=8,col=2,endLine=10,title=ST01::Remove the unused procedure "unusedProc".`)
	assert.Contains(t, out, "::notice ::2 issues, 2 warnings in 1 files")
}

func TestLintCommand_Severity(t *testing.T) {
	root := testutil.SetupTestProject(t)
	dirty := filepath.Join(root, testutil.DirtyFile)

	out, err := runLintCmd(t, "--severity", "error", dirty)
	require.NoError(t, err, "warnings are below the error threshold")
	assert.Contains(t, out, "No lint issues found")

	_, err = runLintCmd(t, "--severity", "loud", dirty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --severity")
}

func TestLintCommand_RuleSelection(t *testing.T) {
	root := testutil.SetupTestProject(t)
	dirty := filepath.Join(root, testutil.DirtyFile)

	out, err := runLintCmd(t, "--disable", "ST01", dirty)
	require.ErrorIs(t, err, ErrLintIssues)
	assert.Contains(t, out, "CV01")
	assert.NotContains(t, out, "ST01")

	out, err = runLintCmd(t, "--rule", "st01", dirty)
	require.ErrorIs(t, err, ErrLintIssues)
	assert.Contains(t, out, "ST01")
	assert.NotContains(t, out, "CV01")

	_, err = runLintCmd(t, "--rule", "XX99", dirty)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLintIssues)
}

func TestLintCommand_Directory(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, err := runLintCmd(t, root)
	require.ErrorIs(t, err, ErrLintIssues)

	assert.Contains(t, out, filepath.Join(root, testutil.DirtyFile))
	assert.Contains(t, out, filepath.Join(root, testutil.BrokenFile))
	assert.NotContains(t, out, filepath.Join(root, testutil.CleanFile), "files without findings are not listed")
	assert.Contains(t, out, "parse error")
	assert.Contains(t, out, "(1 could not be parsed)")
}

func TestLintCommand_ParseErrorGitHub(t *testing.T) {
	root := testutil.SetupTestProject(t)

	out, err := runLintCmd(t, "--format", "github", filepath.Join(root, testutil.BrokenFile))
	require.ErrorIs(t, err, ErrLintIssues)
	assert.Contains(t, out, "::error file=")
	assert.Contains(t, out, ",line=2,col=10,title=parse error::")
}

func TestLintCommand_MissingPath(t *testing.T) {
	_, err := runLintCmd(t, filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLintIssues)
}

func TestFilterBySeverity(t *testing.T) {
	results := []lint.FileResult{
		{Path: "a", Diagnostics: []lint.Diagnostic{{RuleID: "A", Severity: lint.SeverityError}, {RuleID: "B", Severity: lint.SeverityHint}}},
		{Path: "b", Diagnostics: []lint.Diagnostic{{RuleID: "C", Severity: lint.SeverityInfo}}},
		{Path: "c", Err: assert.AnError},
	}

	filtered := filterBySeverity(results, lint.SeverityWarning)
	require.Len(t, filtered, 2)
	assert.Equal(t, "a", filtered[0].Path)
	assert.Len(t, filtered[0].Diagnostics, 1)
	assert.Equal(t, "c", filtered[1].Path, "parse failures are kept")

	assert.Len(t, filterBySeverity(results, lint.SeverityHint), 3)
}

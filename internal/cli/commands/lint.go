package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/esqllint/internal/cli/config"
	"github.com/leapstack-labs/esqllint/internal/cli/output"
	"github.com/leapstack-labs/esqllint/internal/loader"
	"github.com/leapstack-labs/esqllint/pkg/lint"
	_ "github.com/leapstack-labs/esqllint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/esqllint/pkg/parser"
)

// ErrLintIssues is returned when diagnostics or unparseable files remain
// after filtering, so the process exits non-zero.
var ErrLintIssues = errors.New("lint issues found")

// LintOptions holds options for the lint command.
type LintOptions struct {
	Paths    []string // Files or directories
	Format   string   // Output format: text, markdown, json, github
	Disable  []string // Rule IDs to disable
	Severity string   // Minimum severity: error, warning, info, hint
	Rules    []string // Run only specific rules
	Watch    bool     // Re-lint on change
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run lint rules on ESQL sources",
		Long: `Analyze ESQL sources for unused routines and naming convention violations.

Directories are searched with the include and exclude patterns from the
configuration (default: **/*.esql). Lines carrying a NOSONAR comment are
not reported.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format
  - GitHub: Workflow annotations for pull requests`,
		Example: `  # Lint everything below the current directory
  esqllint lint

  # Lint specific paths
  esqllint lint ./flows Main.esql

  # Output as JSON
  esqllint lint --format json

  # Annotate a GitHub pull request
  esqllint lint --format github

  # Disable specific rules
  esqllint lint --disable ST01

  # Only report errors
  esqllint lint --severity error

  # Re-lint on every save
  esqllint lint --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Paths = args
			return runLint(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, github")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "warning", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch sources and re-lint on change")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return config.OutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("severity", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "hint"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("rule", completeRuleIDs)
	_ = cmd.RegisterFlagCompletionFunc("disable", completeRuleIDs)

	return cmd
}

func completeRuleIDs(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	var ids []string
	for _, r := range lint.GetAllRules() {
		ids = append(ids, r.ID()+"\t"+r.Description())
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func runLint(cmd *cobra.Command, opts *LintOptions) error {
	cmdCtx := NewCommandContext(cmd, opts.Format)
	cfg, r, logger := cmdCtx.Cfg, cmdCtx.Renderer, cmdCtx.Logger

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid --severity %q (expected error, warning, info or hint)", opts.Severity)
	}

	lintCfg, err := buildLintConfig(cfg, opts)
	if err != nil {
		return err
	}

	analyzer, err := lint.NewAnalyzer(lintCfg)
	if err != nil {
		return fmt.Errorf("invalid lint configuration: %w", err)
	}
	analyzer.SetConcurrency(cfg.Concurrency)

	ld, err := loader.New(loader.Options{Include: cfg.Include, Exclude: cfg.Exclude, Logger: logger})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	files, err := ld.Load(opts.Paths...)
	if err != nil {
		return err
	}
	logger.Debug("linting", "files", len(files), "rules", len(analyzer.Rules()), "threshold", threshold.String())

	results, err := analyzer.AnalyzeFiles(ctx, files)
	if err != nil {
		return err
	}
	found := renderLintResults(r, filterBySeverity(results, threshold))

	if !opts.Watch {
		if found {
			return ErrLintIssues
		}
		return nil
	}
	return watchLint(ctx, r, ld, analyzer, threshold, opts.Paths)
}

// watchLint re-lints changed files until interrupted.
func watchLint(ctx context.Context, r *output.Renderer, ld *loader.Loader, analyzer *lint.Analyzer, threshold lint.Severity, paths []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := ld.NewWatcher(loader.DefaultDebounce, paths...)
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	r.Println(r.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))
	return w.Run(ctx, func(changed []string) {
		files, err := ld.Read(changed)
		if err != nil {
			r.Error(err.Error())
		}
		results, err := analyzer.AnalyzeFiles(ctx, files)
		if err != nil {
			if ctx.Err() == nil {
				r.Error(err.Error())
			}
			return
		}
		r.Println("")
		renderLintResults(r, filterBySeverity(results, threshold))
	})
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	lintCfg := lint.NewConfig()
	if cfg != nil {
		lintCfg.SetDocsBaseURL(cfg.DocsURL)
	}

	// Apply project config first (lower precedence)
	if cfg != nil && cfg.Lint != nil {
		projectLint := cfg.Lint
		for _, id := range projectLint.Disabled {
			lintCfg.Disable(normalizeRuleID(id))
		}
		for id, sev := range projectLint.Severity {
			id = normalizeRuleID(id)
			if strings.EqualFold(sev, "off") {
				lintCfg.Disable(id)
				continue
			}
			s, ok := lint.ParseSeverity(sev)
			if !ok {
				return nil, fmt.Errorf("lint.severity.%s: unknown severity %q", id, sev)
			}
			lintCfg.SetSeverity(id, s)
		}
		for id, ruleOpts := range projectLint.Rules {
			lintCfg.SetRuleOptions(normalizeRuleID(id), ruleOpts)
		}
	}

	// Apply CLI overrides (higher precedence)
	for _, id := range opts.Disable {
		lintCfg.Disable(normalizeRuleID(id))
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make([]string, 0, len(opts.Rules))
		for _, id := range opts.Rules {
			id = normalizeRuleID(id)
			if _, ok := lint.GetRuleByID(id); !ok {
				return nil, fmt.Errorf("unknown rule %q", id)
			}
			enabled = append(enabled, id)
		}
		for _, rule := range lint.GetAllRules() {
			if !slices.Contains(enabled, rule.ID()) {
				lintCfg.Disable(rule.ID())
			}
		}
	}

	return lintCfg, nil
}

func normalizeRuleID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// filterBySeverity drops diagnostics below threshold. Files that failed to
// parse are kept so the failure is reported.
func filterBySeverity(results []lint.FileResult, threshold lint.Severity) []lint.FileResult {
	var filtered []lint.FileResult
	for _, res := range results {
		var diags []lint.Diagnostic
		for _, d := range res.Diagnostics {
			if d.Severity.AtLeast(threshold) {
				diags = append(diags, d)
			}
		}
		if len(diags) > 0 || res.Err != nil {
			filtered = append(filtered, lint.FileResult{Path: res.Path, Diagnostics: diags, Err: res.Err})
		}
	}
	return filtered
}

func summarize(results []lint.FileResult) output.LintSummary {
	summary := output.LintSummary{FilesAnalyzed: len(results)}
	for _, res := range results {
		if res.Err != nil {
			summary.FilesWithErrs++
		}
		summary.TotalIssues += len(res.Diagnostics)
		for _, d := range res.Diagnostics {
			switch d.Severity {
			case lint.SeverityError:
				summary.Errors++
			case lint.SeverityWarning:
				summary.Warnings++
			case lint.SeverityInfo:
				summary.Info++
			case lint.SeverityHint:
				summary.Hints++
			}
		}
	}
	return summary
}

// renderLintResults prints results and reports whether anything was found.
func renderLintResults(r *output.Renderer, results []lint.FileResult) bool {
	if len(results) == 0 {
		r.Success("No lint issues found")
		if r.EffectiveMode() == output.ModeJSON {
			_ = r.JSON(output.LintOutput{Files: []output.LintFileResult{}})
		}
		return false
	}

	summary := summarize(results)
	switch r.EffectiveMode() {
	case output.ModeJSON:
		renderLintJSON(r, results, summary)
	case output.ModeGitHub:
		renderLintGitHub(r, results, summary)
	default:
		renderLintText(r, results, summary)
	}
	return true
}

func renderLintJSON(r *output.Renderer, results []lint.FileResult, summary output.LintSummary) {
	jsonOutput := output.LintOutput{Summary: summary}
	for _, res := range results {
		fileResult := output.LintFileResult{Path: res.Path, Diagnostics: []output.LintDiagnostic{}}
		if res.Err != nil {
			fileResult.Error = res.Err.Error()
		}
		for _, d := range res.Diagnostics {
			fileResult.Diagnostics = append(fileResult.Diagnostics, output.LintDiagnostic{
				RuleID:           d.RuleID,
				Severity:         d.Severity.String(),
				Message:          d.Message,
				Line:             d.Pos.Line,
				Column:           d.Pos.Column,
				EndLine:          d.EndPos.Line,
				EndColumn:        d.EndPos.Column,
				DocumentationURL: d.DocumentationURL,
				ImpactScore:      d.ImpactScore,
			})
		}
		jsonOutput.Files = append(jsonOutput.Files, fileResult)
	}
	_ = r.JSON(jsonOutput)
}

func renderLintGitHub(r *output.Renderer, results []lint.FileResult, summary output.LintSummary) {
	for _, res := range results {
		if res.Err != nil {
			a := output.Annotation{Level: "error", File: res.Path, Title: "parse error", Message: res.Err.Error()}
			a.Line, a.Column = errorPosition(res.Err)
			r.Annotate(a)
		}
		for _, d := range res.Diagnostics {
			r.Annotate(output.Annotation{
				Level:     annotationLevel(d.Severity),
				File:      res.Path,
				Line:      d.Pos.Line,
				Column:    d.Pos.Column,
				EndLine:   d.EndPos.Line,
				EndColumn: d.EndPos.Column,
				Title:     d.RuleID,
				Message:   d.Message,
			})
		}
	}
	r.Annotate(output.Annotation{Level: "notice", Message: summaryLine(summary)})
}

// errorPosition extracts the source position from a parse or lex error.
func errorPosition(err error) (line, col int) {
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		return pe.Pos.Line, pe.Pos.Column
	}
	var le *parser.LexError
	if errors.As(err, &le) {
		return le.Pos.Line, le.Pos.Column
	}
	return 0, 0
}

func annotationLevel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

func renderLintText(r *output.Renderer, results []lint.FileResult, summary output.LintSummary) {
	styles := r.Styles()
	markdown := r.EffectiveMode() == output.ModeMarkdown

	for _, res := range results {
		if markdown {
			r.Println(output.FormatHeader(2, res.Path))
			r.Println("")
		} else {
			r.Println(styles.FilePath.Render(res.Path))
		}
		if res.Err != nil {
			r.Printf("  %s  %s\n", styles.Error.Render("parse error"), res.Err.Error())
		}
		for _, d := range res.Diagnostics {
			loc := fmt.Sprintf("%d:%d", d.Pos.Line, d.Pos.Column)
			if d.Pos.Line == 0 {
				loc = "-"
			}
			if markdown {
				r.Printf("- `%s` **%s** %s: %s\n", loc, d.RuleID, d.Severity.String(), d.Message)
				continue
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%-7s", loc)),
				severityStyle(r, d.Severity),
				styles.Bold.Render(d.RuleID),
				d.Message,
			)
		}
		r.Println("")
	}

	r.Println("Summary: " + summaryLine(summary))
}

func summaryLine(summary output.LintSummary) string {
	parts := []string{fmt.Sprintf("%d issues", summary.TotalIssues)}
	if summary.Errors > 0 {
		parts = append(parts, fmt.Sprintf("%d errors", summary.Errors))
	}
	if summary.Warnings > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", summary.Warnings))
	}
	if summary.Info > 0 {
		parts = append(parts, fmt.Sprintf("%d info", summary.Info))
	}
	if summary.Hints > 0 {
		parts = append(parts, fmt.Sprintf("%d hints", summary.Hints))
	}
	line := fmt.Sprintf("%s in %d files", strings.Join(parts, ", "), summary.FilesAnalyzed)
	if summary.FilesWithErrs > 0 {
		line += fmt.Sprintf(" (%d could not be parsed)", summary.FilesWithErrs)
	}
	return line
}

func severityStyle(r *output.Renderer, sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return r.Styles().Error.Render("error  ")
	case lint.SeverityWarning:
		return r.Styles().Warning.Render("warning")
	case lint.SeverityInfo:
		return r.Styles().Info.Render("info   ")
	case lint.SeverityHint:
		return r.Styles().Muted.Render("hint   ")
	default:
		return r.Styles().Muted.Render("unknown")
	}
}

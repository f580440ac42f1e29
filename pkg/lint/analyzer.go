package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/parser"
	"github.com/leapstack-labs/esqllint/pkg/token"
)

// Analyzer runs the enabled lint rules against parsed ESQL.
// It holds no per-run state and is safe for concurrent use.
type Analyzer struct {
	config      *Config
	rules       []preparedRule
	concurrency int
}

// preparedRule is a rule with its options already validated and compiled.
type preparedRule struct {
	rule     Rule
	check    Check
	severity Severity
}

// NewAnalyzer prepares every registered rule the config does not disable.
// Options are decoded and compiled here, once, so configuration errors such
// as a malformed naming pattern surface before any file is analyzed.
func NewAnalyzer(config *Config) (*Analyzer, error) {
	if config == nil {
		config = NewConfig()
	}

	a := &Analyzer{config: config, concurrency: runtime.GOMAXPROCS(0)}
	for _, rule := range GetAllRules() {
		if config.IsDisabled(rule.ID()) {
			continue
		}
		check, err := rule.NewCheck(config.GetRuleOptions(rule.ID()))
		if err != nil {
			return nil, asConfigError(rule.ID(), err)
		}
		a.rules = append(a.rules, preparedRule{
			rule:     rule,
			check:    check,
			severity: config.GetSeverity(rule.ID(), rule.DefaultSeverity()),
		})
	}
	return a, nil
}

// SetConcurrency bounds the number of files AnalyzeFiles works on at once.
// Values below 1 select GOMAXPROCS.
func (a *Analyzer) SetConcurrency(n int) *Analyzer {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	a.concurrency = n
	return a
}

// Rules returns the rules this analyzer runs, sorted by ID.
func (a *Analyzer) Rules() []Rule {
	rules := make([]Rule, 0, len(a.rules))
	for _, p := range a.rules {
		rules = append(rules, p.rule)
	}
	return rules
}

// Analyze runs every enabled rule over one compilation unit. Each rule gets
// a fresh visitor, so no state carries over between calls. Diagnostics on a
// line with a NOSONAR comment are dropped; the rest are sorted by position
// and then rule ID.
func (a *Analyzer) Analyze(prog *ast.Program, comments []*token.Comment) []Diagnostic {
	if prog == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, p := range a.rules {
		sink := &IssueCollector{}
		ast.Walk(p.check(sink), prog)
		for _, issue := range sink.Issues {
			diagnostics = append(diagnostics, a.toDiagnostic(p, issue))
		}
	}

	diagnostics = filterSuppressed(diagnostics, comments)
	SortDiagnostics(diagnostics)
	return diagnostics
}

func (a *Analyzer) toDiagnostic(p preparedRule, issue Issue) Diagnostic {
	primary := ast.SpanOf(issue.Primary)
	d := Diagnostic{
		RuleID:           cmp.Or(issue.RuleID, p.rule.ID()),
		Severity:         p.severity,
		Message:          issue.Message,
		Pos:              primary.Start,
		EndPos:           primary.End,
		DocumentationURL: a.config.DocURL(p.rule.ID()),
		ImpactScore:      p.rule.ImpactScore(),
	}
	if secondary := ast.SpanOf(issue.Secondary); secondary.IsValid() && secondary != primary {
		d.RelatedInfo = append(d.RelatedInfo, RelatedInfo{Pos: secondary.Start, EndPos: secondary.End})
	}
	return d
}

// SortDiagnostics orders diagnostics by line, column, and rule ID.
func SortDiagnostics(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Pos.Line, y.Pos.Line),
			cmp.Compare(x.Pos.Column, y.Pos.Column),
			cmp.Compare(x.RuleID, y.RuleID),
		)
	})
}

// File is one compilation unit to analyze.
type File struct {
	Path   string
	Source string
}

// FileResult holds the outcome for one File. Err is set when the file could
// not be parsed; Diagnostics is then empty.
type FileResult struct {
	Path        string       `json:"path"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Err         error        `json:"-"`
}

// AnalyzeFiles parses and analyzes files concurrently. Results are returned
// in input order. Parse failures are recorded per file; the returned error
// is non-nil only when ctx is cancelled.
func (a *Analyzer) AnalyzeFiles(ctx context.Context, files []File) ([]FileResult, error) {
	results := make([]FileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(a.concurrency, 1))

	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i].Path = f.Path

			prog, comments, err := parser.ParseWithComments(f.Source)
			if err != nil {
				results[i].Err = fmt.Errorf("%s: %w", f.Path, err)
				return nil
			}
			results[i].Diagnostics = a.Analyze(prog, comments)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func asConfigError(ruleID string, err error) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return err
	}
	return &ConfigError{RuleID: ruleID, Err: err}
}

package lint

import (
	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/token"
)

// =============================================================================
// Issues
// =============================================================================

// Issue is a violation reported by a rule visitor. Primary and Secondary
// locate the violation; for both built-in rules they are the same node.
type Issue struct {
	RuleID    string
	Primary   ast.Node
	Secondary ast.Node
	Message   string
}

// IssueSink receives issues as rule visitors find them.
type IssueSink interface {
	AddIssue(issue Issue)
}

// IssueCollector is an IssueSink that keeps issues in report order.
// It is not safe for concurrent use; each rule run gets its own.
type IssueCollector struct {
	Issues []Issue
}

// AddIssue implements IssueSink.
func (c *IssueCollector) AddIssue(issue Issue) {
	c.Issues = append(c.Issues, issue)
}

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string         `json:"rule_id"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"` // end of the problematic range

	// Remediation metadata
	DocumentationURL string        `json:"documentation_url,omitempty"` // e.g. "https://esqllint.dev/docs/rules/st01"
	ImpactScore      int           `json:"impact_score"`                // 0-100
	RelatedInfo      []RelatedInfo `json:"related_info,omitempty"`      // secondary location when it differs from the primary
}

// RelatedInfo provides additional context for a diagnostic.
type RelatedInfo struct {
	Pos     token.Position `json:"pos"`
	EndPos  token.Position `json:"end_pos"`
	Message string         `json:"message,omitempty"`
}

// =============================================================================
// Rule Interfaces
// =============================================================================

// Check builds the visitor that runs a configured rule over one compilation
// unit and reports to sink. One Check serves every unit of an analysis and may
// be called concurrently; per-unit state lives in the returned visitor.
type Check func(sink IssueSink) ast.Visitor

// CheckFactory validates a rule's options and prepares its Check. It runs
// once per analyzer, so compiled configuration such as patterns is shared.
type CheckFactory func(opts map[string]any) (Check, error)

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g., "ST01"
	ID() string

	// Name returns the human-readable name, e.g., "structure.unused_routine"
	Name() string

	// Group returns the category, e.g., "structure", "convention"
	Group() string

	// Description returns a human-readable description
	Description() string

	// DefaultSeverity returns the default severity for this rule
	DefaultSeverity() Severity

	// ConfigKeys returns configuration keys this rule accepts
	ConfigKeys() []string

	// ImpactScore returns the 0-100 weight attached to diagnostics
	ImpactScore() int

	// Documentation methods for richer rule documentation
	Rationale() string   // Why this rule exists, what problems it prevents
	BadExample() string  // Code showing the anti-pattern
	GoodExample() string // Code showing the correct pattern
	Fix() string         // How to fix violations (when not obvious)

	// NewCheck configures the rule from opts.
	NewCheck(opts map[string]any) (Check, error)
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
// Traversal state lives in the visitors its Check builds, never in the
// RuleDef, so one definition can serve many concurrent analyses.
type RuleDef struct {
	ID          string       // Unique identifier, e.g., "ST01"
	Name        string       // Human-readable name, e.g., "structure.unused_routine"
	Group       string       // Category, e.g., "structure", "convention"
	Description string       // Human-readable description
	Severity    Severity     // Default severity
	Impact      ImpactLevel  // Weight of each diagnostic; ImpactMedium when zero
	New         CheckFactory // Validates options and prepares the check
	ConfigKeys  []string     // Configuration keys this rule accepts (for rule-specific options)

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
	Fix         string // How to fix violations (when not obvious)
}

// wrappedRuleDef wraps a RuleDef to implement Rule.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef to implement the Rule interface.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                { return w.def.ID }
func (w *wrappedRuleDef) Name() string              { return w.def.Name }
func (w *wrappedRuleDef) Group() string             { return w.def.Group }
func (w *wrappedRuleDef) Description() string       { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string      { return w.def.ConfigKeys }

// Documentation methods
func (w *wrappedRuleDef) Rationale() string   { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string  { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string         { return w.def.Fix }

func (w *wrappedRuleDef) ImpactScore() int {
	if w.def.Impact == 0 {
		return ImpactMedium.Int()
	}
	return w.def.Impact.Int()
}

func (w *wrappedRuleDef) NewCheck(opts map[string]any) (Check, error) {
	return w.def.New(opts)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}

// =============================================================================
// Rule Info
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Group            string   `json:"group"`
	Description      string   `json:"description"`
	DefaultSeverity  Severity `json:"default_severity"`
	ConfigKeys       []string `json:"config_keys,omitempty"`
	ImpactScore      int      `json:"impact_score"`
	DocumentationURL string   `json:"documentation_url"`

	// Documentation fields
	Rationale   string `json:"rationale,omitempty"`
	BadExample  string `json:"bad_example,omitempty"`
	GoodExample string `json:"good_example,omitempty"`
	Fix         string `json:"fix,omitempty"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	return RuleInfo{
		ID:               r.ID(),
		Name:             r.Name(),
		Group:            r.Group(),
		Description:      r.Description(),
		DefaultSeverity:  r.DefaultSeverity(),
		ConfigKeys:       r.ConfigKeys(),
		ImpactScore:      r.ImpactScore(),
		DocumentationURL: DocURL("", r.ID()),
		Rationale:        r.Rationale(),
		BadExample:       r.BadExample(),
		GoodExample:      r.GoodExample(),
		Fix:              r.Fix(),
	}
}

package convention

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/lint"
)

func init() {
	lint.Register(VariableName)
}

const variableNameID = "CV01"

// DefaultVariableFormat is the pattern declared variable names must match.
const DefaultVariableFormat = `^[a-z][a-zA-Z0-9]{0,30}$`

// VariableName checks DECLARE names against a configurable regular expression.
var VariableName = lint.RuleDef{
	ID:          variableNameID,
	Name:        "convention.variable_name",
	Group:       "convention",
	Description: "Variable name does not match the naming convention.",
	Severity:    lint.SeverityWarning,
	Impact:      lint.ImpactLow,
	ConfigKeys:  []string{"format"},
	New:         newVariableNameCheck,

	Rationale: `Shared naming conventions let readers tell variables from constants,
fields and routines at a glance. Constants (CONSTANT) and user-defined properties
(EXTERNAL) follow their own conventions and are not checked.`,

	BadExample: `DECLARE TotalAmount DECIMAL 0;
DECLARE order_count INTEGER;`,

	GoodExample: `DECLARE totalAmount DECIMAL 0;
DECLARE orderCount INTEGER;
DECLARE MAX_ITEMS CONSTANT INTEGER 100;`,

	Fix: "Rename the variable, or set the format option to the convention your team uses. The whole name must match. " +
		"The format uses backtracking syntax, so lookarounds and backreferences are allowed.",
}

type variableNameOptions struct {
	Format string `mapstructure:"format"`
}

type variableNameCheck struct {
	ast.BaseVisitor
	sink    lint.IssueSink
	format  string
	pattern *regexp2.Regexp
}

// compileFormat anchors format at both ends of the input, so it must match
// the whole name. \z rather than $, which also matches before a final newline.
func compileFormat(format string) (*regexp2.Regexp, error) {
	return regexp2.Compile(`\A(?:`+format+`)\z`, regexp2.None)
}

func newVariableNameCheck(opts map[string]any) (lint.Check, error) {
	o := variableNameOptions{Format: DefaultVariableFormat}
	if err := lint.DecodeOptions(variableNameID, opts, &o); err != nil {
		return nil, err
	}
	if o.Format == "" {
		return nil, &lint.ConfigError{RuleID: variableNameID, Key: "format", Err: errors.New("must not be empty")}
	}
	pattern, err := compileFormat(o.Format)
	if err != nil {
		return nil, &lint.ConfigError{RuleID: variableNameID, Key: "format", Err: err}
	}

	return func(sink lint.IssueSink) ast.Visitor {
		c := &variableNameCheck{sink: sink, format: o.Format, pattern: pattern}
		c.Bind(c)
		return c
	}, nil
}

func (c *variableNameCheck) VisitDeclareStatement(n *ast.DeclareStatement) {
	ast.WalkChildren(c, n)
	if n.IsConstant() {
		return
	}
	for _, name := range n.Names {
		// MatchString fails only on a match timeout, and none is set.
		if ok, _ := c.pattern.MatchString(name.Text()); ok {
			continue
		}
		c.sink.AddIssue(lint.Issue{
			RuleID:    variableNameID,
			Primary:   name,
			Secondary: name,
			Message:   fmt.Sprintf("Rename variable \"%s\" to match the regular expression %s.", name.Text(), c.format),
		})
	}
}

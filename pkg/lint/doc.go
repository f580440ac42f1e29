// Package lint provides the ESQL rule framework: rule metadata, the rule
// registry, configuration, and the Analyzer that runs rule visitors over a
// parsed compilation unit.
//
// # Rule Registration
//
// Rules are automatically registered via init() functions when their package is imported:
//
//	import _ "github.com/leapstack-labs/esqllint/pkg/lint/rules"
//
// # Rule Categories
//
//   - CV (Convention): naming conventions for declared variables
//   - ST (Structure): module structure, such as routines that are never called
//
// # Using the Registry
//
//	rules := lint.AllRules()
//	rule, ok := lint.GetRuleByID("ST01")
//	convention := lint.GetRulesByGroup("convention")
//
// # Configuration
//
// Use Config to control which rules are enabled, their severity, and their options:
//
//	config := lint.NewConfig()
//	config.Disable("ST01")
//	config.SetSeverity("CV01", lint.SeverityError)
//	config.SetRuleOptions("CV01", map[string]any{"format": "^[a-z][A-Za-z]*$"})
//
//	analyzer, err := lint.NewAnalyzer(config) // fails on a bad option
//
// # Creating Custom Rules
//
// A rule's New decodes its options once per Analyzer and returns a Check.
// The Check builds a fresh ast.Visitor for each compilation unit, reporting
// through an IssueSink. Visitors embed ast.BaseVisitor and override only the
// node kinds they need:
//
//	var MyRule = lint.RuleDef{
//		ID:          "MY01",
//		Name:        "custom.my_rule",
//		Group:       "custom",
//		Description: "My custom rule description",
//		Severity:    lint.SeverityWarning,
//		New:         newMyCheck,
//	}
//
//	func init() {
//		lint.Register(MyRule)
//	}
package lint

// Package rules provides the ESQL lint rule implementations.
//
// Rules are organized by category:
//   - structure: Rules about module structure (ST01)
//   - convention: Rules about naming conventions (CV01)
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/esqllint/pkg/lint/rules"
//
// Individual rule categories can also be imported:
//
//	import _ "github.com/leapstack-labs/esqllint/pkg/lint/rules/structure"
package rules

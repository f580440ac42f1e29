package structure

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/lint"
)

func init() {
	lint.Register(UnusedRoutine)
}

const unusedRoutineID = "ST01"

// UnusedRoutine warns about functions and procedures that are declared in a
// module but never called from it.
var UnusedRoutine = lint.RuleDef{
	ID:          unusedRoutineID,
	Name:        "structure.unused_routine",
	Group:       "structure",
	Description: "Function or procedure is declared in a module but never called.",
	Severity:    lint.SeverityWarning,
	Impact:      lint.ImpactMedium,
	ConfigKeys:  []string{"case_insensitive"},
	New:         newUnusedRoutineCheck,

	Rationale: `Routines nobody calls are dead code. They still have to be read, reviewed
and kept compiling, and they often hide a call that was lost in a refactoring.
A Main function is the entry point of a compute, database or filter module and is
never reported.`,

	BadExample: `CREATE COMPUTE MODULE Order_Compute
    CREATE FUNCTION Main() RETURNS BOOLEAN
    BEGIN
        RETURN TRUE;
    END;

    CREATE PROCEDURE logOrder(IN ref REFERENCE)
    BEGIN
    END;
END MODULE;`,

	GoodExample: `CREATE COMPUTE MODULE Order_Compute
    CREATE FUNCTION Main() RETURNS BOOLEAN
    BEGIN
        CALL logOrder(InputRoot);
        RETURN TRUE;
    END;

    CREATE PROCEDURE logOrder(IN ref REFERENCE)
    BEGIN
    END;
END MODULE;`,

	Fix: "Remove the routine, or call it if it was meant to be used. Only calls by simple name inside the same module are recognized, spelled exactly as declared unless case_insensitive is set.",
}

type unusedRoutineOptions struct {
	CaseInsensitive bool `mapstructure:"case_insensitive"`
}

type declaredRoutine struct {
	name *ast.Identifier
	node ast.Node
}

// routineTable tracks the declarations of one routine kind and the names
// called within a module.
type routineTable struct {
	declared map[string]declaredRoutine
	order    []string // keys in first-declaration order
	called   map[string]bool
}

func (t *routineTable) reset() {
	if t.declared == nil {
		t.declared = make(map[string]declaredRoutine)
		t.called = make(map[string]bool)
	}
	clear(t.declared)
	clear(t.called)
	t.order = t.order[:0]
}

// declare records a declaration. A later declaration with the same key replaces the earlier one.
func (t *routineTable) declare(key string, r declaredRoutine) {
	if _, ok := t.declared[key]; !ok {
		t.order = append(t.order, key)
	}
	t.declared[key] = r
}

// unused returns the declarations never called, in declaration order.
func (t *routineTable) unused() []declaredRoutine {
	var out []declaredRoutine
	for _, key := range t.order {
		if !t.called[key] {
			out = append(out, t.declared[key])
		}
	}
	return out
}

// moduleScope is the bookkeeping of one CREATE MODULE.
type moduleScope struct {
	functions  routineTable
	procedures routineTable
}

type unusedRoutineCheck struct {
	ast.BaseVisitor
	sink            lint.IssueSink
	caseInsensitive bool
	fold            cases.Caser

	// scopes[:depth] are the modules being visited, innermost last. Entries
	// past depth are kept for reuse by the next module at that depth.
	scopes []*moduleScope
	depth  int
}

func newUnusedRoutineCheck(opts map[string]any) (lint.Check, error) {
	var o unusedRoutineOptions
	if err := lint.DecodeOptions(unusedRoutineID, opts, &o); err != nil {
		return nil, err
	}
	return func(sink lint.IssueSink) ast.Visitor {
		c := &unusedRoutineCheck{sink: sink, caseInsensitive: o.CaseInsensitive}
		if c.caseInsensitive {
			c.fold = cases.Fold() // a Caser is stateful, one per visitor
		}
		c.Bind(c)
		return c
	}, nil
}

// key is the declared spelling, or its case fold when case_insensitive is set.
func (c *unusedRoutineCheck) key(name string) string {
	if !c.caseInsensitive {
		return name
	}
	return c.fold.String(name)
}

// current returns the innermost module scope, or nil outside any module.
func (c *unusedRoutineCheck) current() *moduleScope {
	if c.depth == 0 {
		return nil
	}
	return c.scopes[c.depth-1]
}

func (c *unusedRoutineCheck) push() *moduleScope {
	if c.depth == len(c.scopes) {
		c.scopes = append(c.scopes, &moduleScope{})
	}
	scope := c.scopes[c.depth]
	scope.functions.reset()
	scope.procedures.reset()
	c.depth++
	return scope
}

func (c *unusedRoutineCheck) pop() {
	c.depth--
}

func (c *unusedRoutineCheck) VisitCreateModuleStatement(n *ast.CreateModuleStatement) {
	scope := c.push()
	ast.WalkChildren(c, n)
	c.report(scope)
	scope.functions.reset()
	scope.procedures.reset()
	c.pop()
}

func (c *unusedRoutineCheck) VisitCreateFunctionStatement(n *ast.CreateFunctionStatement) {
	if scope := c.current(); scope != nil && n.Name != nil {
		scope.functions.declare(c.key(n.Name.Text()), declaredRoutine{name: n.Name, node: n})
	}
	ast.WalkChildren(c, n)
}

func (c *unusedRoutineCheck) VisitCreateProcedureStatement(n *ast.CreateProcedureStatement) {
	if scope := c.current(); scope != nil && n.Name != nil {
		scope.procedures.declare(c.key(n.Name.Text()), declaredRoutine{name: n.Name, node: n})
	}
	ast.WalkChildren(c, n)
}

func (c *unusedRoutineCheck) VisitCallExpression(n *ast.CallExpression) {
	if scope := c.current(); scope != nil {
		// Qualified paths such as schema.fn(...) are not resolved.
		if name, ok := n.Function.SimpleName(); ok {
			scope.functions.called[c.key(name.Text())] = true
		}
	}
	ast.WalkChildren(c, n)
}

func (c *unusedRoutineCheck) VisitCallStatement(n *ast.CallStatement) {
	if scope := c.current(); scope != nil && n.RoutineName != nil {
		scope.procedures.called[c.key(n.RoutineName.Text())] = true
	}
	ast.WalkChildren(c, n)
}

func (c *unusedRoutineCheck) report(scope *moduleScope) {
	for _, fn := range scope.functions.unused() {
		if strings.EqualFold(fn.name.Text(), "Main") {
			continue
		}
		c.addIssue(fn, "function")
	}
	for _, proc := range scope.procedures.unused() {
		c.addIssue(proc, "procedure")
	}
}

func (c *unusedRoutineCheck) addIssue(r declaredRoutine, kind string) {
	c.sink.AddIssue(lint.Issue{
		RuleID:    unusedRoutineID,
		Primary:   r.node,
		Secondary: r.node,
		Message:   fmt.Sprintf("Remove the unused %s \"%s\".", kind, r.name.Text()),
	})
}

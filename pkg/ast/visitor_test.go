package ast_test

import (
	"testing"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
CREATE COMPUTE MODULE M
	CREATE FUNCTION Main() RETURNS BOOLEAN
	BEGIN
		DECLARE a INTEGER helper(1);
		CALL doWork(a);
		RETURN TRUE;
	END;
END MODULE;
`

// identCollector records identifier names in visit order.
type identCollector struct {
	ast.BaseVisitor
	names []string
}

func newIdentCollector() *identCollector {
	c := &identCollector{}
	c.Bind(c)
	return c
}

func (c *identCollector) VisitIdentifier(n *ast.Identifier) {
	c.names = append(c.names, n.Text())
}

func TestBaseVisitor_DefaultTraversalReachesOverrides(t *testing.T) {
	prog, err := parser.Parse(sample)
	require.NoError(t, err)

	c := newIdentCollector()
	ast.Walk(c, prog)

	assert.Equal(t, []string{"M", "Main", "BOOLEAN", "a", "INTEGER", "helper", "doWork", "a"}, c.names)
}

// moduleSkipper does not descend into modules.
type moduleSkipper struct {
	ast.BaseVisitor
	declares int
}

func (s *moduleSkipper) VisitCreateModuleStatement(*ast.CreateModuleStatement) {}

func (s *moduleSkipper) VisitDeclareStatement(n *ast.DeclareStatement) {
	s.declares++
	ast.WalkChildren(s, n)
}

func TestBaseVisitor_OverrideWithoutWalkChildrenStopsDescent(t *testing.T) {
	prog, err := parser.Parse(sample + "DECLARE top INTEGER;")
	require.NoError(t, err)

	s := &moduleSkipper{}
	s.Bind(s)
	ast.Walk(s, prog)

	assert.Equal(t, 1, s.declares)
}

// order records visit and post-visit order to check that an override can
// run code on either side of WalkChildren.
type order struct {
	ast.BaseVisitor
	events []string
}

func (o *order) VisitCreateFunctionStatement(n *ast.CreateFunctionStatement) {
	o.events = append(o.events, "enter "+n.Name.Text())
	ast.WalkChildren(o, n)
	o.events = append(o.events, "leave "+n.Name.Text())
}

func (o *order) VisitCallStatement(n *ast.CallStatement) {
	o.events = append(o.events, "call "+n.RoutineName.Text())
	ast.WalkChildren(o, n)
}

func TestWalkChildren_PrePostOrder(t *testing.T) {
	prog, err := parser.Parse(sample)
	require.NoError(t, err)

	o := &order{}
	o.Bind(o)
	ast.Walk(o, prog)

	assert.Equal(t, []string{"enter Main", "call doWork", "leave Main"}, o.events)
}

func TestBaseVisitor_Unbound(t *testing.T) {
	prog, err := parser.Parse(sample)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		ast.Walk(&ast.BaseVisitor{}, prog)
	})
}

func TestWalk_NilSafe(t *testing.T) {
	c := newIdentCollector()

	assert.NotPanics(t, func() {
		ast.Walk(c, nil)
		var decl *ast.DeclareStatement
		ast.Walk(c, decl)
	})
	assert.Empty(t, c.names)

	// Absent optional children are skipped.
	call := &ast.CallStatement{}
	assert.Empty(t, ast.Children(call))
	assert.NotPanics(t, func() { ast.Walk(c, call) })
}

func TestInspect(t *testing.T) {
	prog, err := parser.Parse(sample)
	require.NoError(t, err)

	var calls []string
	ast.Inspect(prog, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpression); ok {
			name, _ := call.Function.SimpleName()
			calls = append(calls, name.Text())
		}
		return true
	})
	assert.Equal(t, []string{"helper"}, calls)

	var visited int
	ast.Inspect(prog, func(n ast.Node) bool {
		visited++
		_, isModule := n.(*ast.CreateModuleStatement)
		return !isModule
	})
	assert.Equal(t, 2, visited) // Program and the module
}

func TestDeclareStatement_IsConstant(t *testing.T) {
	tests := []struct {
		src  string
		want bool
	}{
		{"DECLARE a INTEGER;", false},
		{"DECLARE A CONSTANT INTEGER 1;", true},
		{"DECLARE a EXTERNAL CHARACTER 'x';", true},
		{"DECLARE a external CHARACTER 'x';", true},
		{"DECLARE a SHARED INTEGER;", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, err := parser.Parse(tt.src)
			require.NoError(t, err)
			decl := prog.Statements[0].(*ast.DeclareStatement)
			assert.Equal(t, tt.want, decl.IsConstant())
		})
	}
}

func TestSpanOf(t *testing.T) {
	prog, err := parser.Parse("DECLARE a INTEGER;")
	require.NoError(t, err)

	span := ast.SpanOf(prog.Statements[0])
	assert.Equal(t, 1, span.Start.Column)
	assert.Equal(t, 19, span.End.Column)
	assert.False(t, ast.SpanOf(nil).IsValid())
}

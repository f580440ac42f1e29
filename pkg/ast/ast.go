// Package ast defines the ESQL syntax tree consumed by lint rules and the
// double-dispatch Visitor used to traverse it.
//
// Every node exposes its source range and an Accept method that calls the
// Visitor method matching its concrete kind. BaseVisitor supplies a default
// for every method that descends into the node's children, so a rule only
// overrides the kinds it cares about:
//
//	type myRule struct {
//		ast.BaseVisitor
//	}
//
//	func newMyRule() *myRule {
//		r := &myRule{}
//		r.Bind(r)
//		return r
//	}
//
//	func (r *myRule) VisitDeclareStatement(n *ast.DeclareStatement) {
//		ast.WalkChildren(r, n) // keep descending
//		// inspect n
//	}
package ast

import "github.com/leapstack-labs/esqllint/pkg/token"

// Node is the base interface for all AST nodes.
type Node interface {
	// Pos returns the position of the first character of the node.
	Pos() token.Position
	// End returns the position of the character immediately after the node.
	End() token.Position
	// Accept dispatches to the Visitor method for the node's kind.
	Accept(v Visitor)
}

// Expr is a marker interface for expression nodes.
type Expr interface {
	Node
	exprNode() // Marker method to distinguish expressions
}

// Stmt is a marker interface for statement nodes.
type Stmt interface {
	Node
	stmtNode() // Marker method to distinguish statements
}

// SpanOf returns the source range of a node, or an empty span for nil.
func SpanOf(n Node) token.Span {
	if isNil(n) {
		return token.Span{}
	}
	return token.Span{Start: n.Pos(), End: n.End()}
}

// Program is the root of a compilation unit (one .esql file).
type Program struct {
	Span       token.Span
	Statements []Stmt
}

// Pos implements Node.
func (p *Program) Pos() token.Position { return p.Span.Start }

// End implements Node.
func (p *Program) End() token.Position { return p.Span.End }

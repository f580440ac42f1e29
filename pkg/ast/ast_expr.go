package ast

import (
	"strings"

	"github.com/leapstack-labs/esqllint/pkg/token"
)

// ---------- Expression Types ----------

// Identifier is a name token. Rule-level comparisons are case-insensitive.
type Identifier struct {
	Span   token.Span
	Name   string
	Quoted bool // written as "name"
}

// Text returns the identifier as written, without quotes.
func (i *Identifier) Text() string { return i.Name }

// LiteralKind represents the type of a literal.
type LiteralKind int

// LiteralKind constants for ESQL literal values.
const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// Literal represents a literal value.
type Literal struct {
	Span  token.Span
	Kind  LiteralKind
	Value string
}

// PathExpression is a field reference or routine path: a.b.c, InputRoot.XMLNSC.*.
type PathExpression struct {
	Span     token.Span
	Elements []*PathElement
}

// SimpleName returns the single plain name of a one-element path.
// Qualified or computed paths return false.
func (p *PathExpression) SimpleName() (*Identifier, bool) {
	if p == nil || len(p.Elements) != 1 {
		return nil, false
	}
	el := p.Elements[0]
	if el.Name == nil || el.Star || el.Index != nil {
		return nil, false
	}
	return el.Name, true
}

// String renders the path with dots, for messages and tests.
func (p *PathExpression) String() string {
	if p == nil {
		return ""
	}
	parts := make([]string, 0, len(p.Elements))
	for _, el := range p.Elements {
		switch {
		case el.Star:
			parts = append(parts, "*")
		case el.Name != nil:
			parts = append(parts, el.Name.Name)
		}
	}
	return strings.Join(parts, ".")
}

// PathElement is one step of a PathExpression: a name or *, with an optional [index].
type PathElement struct {
	Span  token.Span
	Name  *Identifier // nil for *
	Star  bool
	Index Expr // optional
}

// CallExpression is a function invocation: f(args).
type CallExpression struct {
	Span     token.Span
	Function *PathExpression // nil when the callee is not a path
	Args     []Expr
}

// BinaryExpression represents a binary operation.
type BinaryExpression struct {
	Span  token.Span
	Left  Expr
	Op    token.TokenType
	Right Expr
}

// UnaryExpression represents NOT x or -x.
type UnaryExpression struct {
	Span    token.Span
	Op      token.TokenType
	Operand Expr
}

// IsExpression is x IS [NOT] NULL|TRUE|FALSE.
type IsExpression struct {
	Span   token.Span
	Expr   Expr
	Not    bool
	Target Expr
}

// ParenExpression is a parenthesized expression.
type ParenExpression struct {
	Span token.Span
	Expr Expr
}

// CastExpression is CAST(expr AS type).
type CastExpression struct {
	Span token.Span
	Expr Expr
	Type *DataType
}

// DataType names a declared type: INTEGER, CHARACTER, REFERENCE, ...
type DataType struct {
	Span token.Span
	Name *Identifier
}

func (*Identifier) exprNode()       {}
func (*Literal) exprNode()          {}
func (*PathExpression) exprNode()   {}
func (*CallExpression) exprNode()   {}
func (*BinaryExpression) exprNode() {}
func (*UnaryExpression) exprNode()  {}
func (*IsExpression) exprNode()     {}
func (*ParenExpression) exprNode()  {}
func (*CastExpression) exprNode()   {}

// Pos implements Node.
func (e *Identifier) Pos() token.Position       { return e.Span.Start }
func (e *Literal) Pos() token.Position          { return e.Span.Start }
func (e *PathExpression) Pos() token.Position   { return e.Span.Start }
func (e *PathElement) Pos() token.Position      { return e.Span.Start }
func (e *CallExpression) Pos() token.Position   { return e.Span.Start }
func (e *BinaryExpression) Pos() token.Position { return e.Span.Start }
func (e *UnaryExpression) Pos() token.Position  { return e.Span.Start }
func (e *IsExpression) Pos() token.Position     { return e.Span.Start }
func (e *ParenExpression) Pos() token.Position  { return e.Span.Start }
func (e *CastExpression) Pos() token.Position   { return e.Span.Start }
func (e *DataType) Pos() token.Position         { return e.Span.Start }

// End implements Node.
func (e *Identifier) End() token.Position       { return e.Span.End }
func (e *Literal) End() token.Position          { return e.Span.End }
func (e *PathExpression) End() token.Position   { return e.Span.End }
func (e *PathElement) End() token.Position      { return e.Span.End }
func (e *CallExpression) End() token.Position   { return e.Span.End }
func (e *BinaryExpression) End() token.Position { return e.Span.End }
func (e *UnaryExpression) End() token.Position  { return e.Span.End }
func (e *IsExpression) End() token.Position     { return e.Span.End }
func (e *ParenExpression) End() token.Position  { return e.Span.End }
func (e *CastExpression) End() token.Position   { return e.Span.End }
func (e *DataType) End() token.Position         { return e.Span.End }

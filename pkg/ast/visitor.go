package ast

import "reflect"

// Visitor has one method per node kind. Node.Accept selects the method
// for the concrete kind; implementations decide whether to descend by
// calling WalkChildren.
type Visitor interface {
	VisitProgram(n *Program)

	// Statements
	VisitBrokerSchemaStatement(n *BrokerSchemaStatement)
	VisitPathStatement(n *PathStatement)
	VisitCreateModuleStatement(n *CreateModuleStatement)
	VisitCreateFunctionStatement(n *CreateFunctionStatement)
	VisitCreateProcedureStatement(n *CreateProcedureStatement)
	VisitParameterDeclaration(n *ParameterDeclaration)
	VisitBeginEndStatement(n *BeginEndStatement)
	VisitDeclareStatement(n *DeclareStatement)
	VisitSetStatement(n *SetStatement)
	VisitReturnStatement(n *ReturnStatement)
	VisitIfStatement(n *IfStatement)
	VisitElseIfClause(n *ElseIfClause)
	VisitWhileStatement(n *WhileStatement)
	VisitCallStatement(n *CallStatement)

	// Expressions
	VisitIdentifier(n *Identifier)
	VisitLiteral(n *Literal)
	VisitPathExpression(n *PathExpression)
	VisitPathElement(n *PathElement)
	VisitCallExpression(n *CallExpression)
	VisitBinaryExpression(n *BinaryExpression)
	VisitUnaryExpression(n *UnaryExpression)
	VisitIsExpression(n *IsExpression)
	VisitParenExpression(n *ParenExpression)
	VisitCastExpression(n *CastExpression)
	VisitDataType(n *DataType)
}

// Walk dispatches n to v. Nil nodes, including typed nil pointers, are ignored.
func Walk(v Visitor, n Node) {
	if isNil(n) {
		return
	}
	n.Accept(v)
}

// WalkChildren visits each direct child of n in document order.
// Overriding Visitor methods call it to keep descending.
func WalkChildren(v Visitor, n Node) {
	for _, c := range Children(n) {
		c.Accept(v)
	}
}

// Inspect traverses the tree depth-first in document order, calling fn for
// each node. Children of a node are skipped when fn returns false.
func Inspect(n Node, fn func(Node) bool) {
	if isNil(n) || !fn(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, fn)
	}
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// Accept implementations.

func (n *Program) Accept(v Visitor)                  { v.VisitProgram(n) }
func (n *BrokerSchemaStatement) Accept(v Visitor)    { v.VisitBrokerSchemaStatement(n) }
func (n *PathStatement) Accept(v Visitor)            { v.VisitPathStatement(n) }
func (n *CreateModuleStatement) Accept(v Visitor)    { v.VisitCreateModuleStatement(n) }
func (n *CreateFunctionStatement) Accept(v Visitor)  { v.VisitCreateFunctionStatement(n) }
func (n *CreateProcedureStatement) Accept(v Visitor) { v.VisitCreateProcedureStatement(n) }
func (n *ParameterDeclaration) Accept(v Visitor)     { v.VisitParameterDeclaration(n) }
func (n *BeginEndStatement) Accept(v Visitor)        { v.VisitBeginEndStatement(n) }
func (n *DeclareStatement) Accept(v Visitor)         { v.VisitDeclareStatement(n) }
func (n *SetStatement) Accept(v Visitor)             { v.VisitSetStatement(n) }
func (n *ReturnStatement) Accept(v Visitor)          { v.VisitReturnStatement(n) }
func (n *IfStatement) Accept(v Visitor)              { v.VisitIfStatement(n) }
func (n *ElseIfClause) Accept(v Visitor)             { v.VisitElseIfClause(n) }
func (n *WhileStatement) Accept(v Visitor)           { v.VisitWhileStatement(n) }
func (n *CallStatement) Accept(v Visitor)            { v.VisitCallStatement(n) }
func (n *Identifier) Accept(v Visitor)               { v.VisitIdentifier(n) }
func (n *Literal) Accept(v Visitor)                  { v.VisitLiteral(n) }
func (n *PathExpression) Accept(v Visitor)           { v.VisitPathExpression(n) }
func (n *PathElement) Accept(v Visitor)              { v.VisitPathElement(n) }
func (n *CallExpression) Accept(v Visitor)           { v.VisitCallExpression(n) }
func (n *BinaryExpression) Accept(v Visitor)         { v.VisitBinaryExpression(n) }
func (n *UnaryExpression) Accept(v Visitor)          { v.VisitUnaryExpression(n) }
func (n *IsExpression) Accept(v Visitor)             { v.VisitIsExpression(n) }
func (n *ParenExpression) Accept(v Visitor)          { v.VisitParenExpression(n) }
func (n *CastExpression) Accept(v Visitor)           { v.VisitCastExpression(n) }
func (n *DataType) Accept(v Visitor)                 { v.VisitDataType(n) }

// BaseVisitor implements every Visitor method by descending into children.
// Embedders call Bind with themselves so that the default traversal
// dispatches back into their overrides; an unbound BaseVisitor walks the
// whole tree and does nothing else.
type BaseVisitor struct {
	self Visitor
}

// Bind sets the visitor that default traversal dispatches to.
func (b *BaseVisitor) Bind(self Visitor) { b.self = self }

func (b *BaseVisitor) outer() Visitor {
	if b.self != nil {
		return b.self
	}
	return b
}

func (b *BaseVisitor) VisitProgram(n *Program) { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitBrokerSchemaStatement(n *BrokerSchemaStatement) {
	WalkChildren(b.outer(), n)
}
func (b *BaseVisitor) VisitPathStatement(n *PathStatement) { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitCreateModuleStatement(n *CreateModuleStatement) {
	WalkChildren(b.outer(), n)
}
func (b *BaseVisitor) VisitCreateFunctionStatement(n *CreateFunctionStatement) {
	WalkChildren(b.outer(), n)
}
func (b *BaseVisitor) VisitCreateProcedureStatement(n *CreateProcedureStatement) {
	WalkChildren(b.outer(), n)
}
func (b *BaseVisitor) VisitParameterDeclaration(n *ParameterDeclaration) {
	WalkChildren(b.outer(), n)
}
func (b *BaseVisitor) VisitBeginEndStatement(n *BeginEndStatement) { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitDeclareStatement(n *DeclareStatement)   { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitSetStatement(n *SetStatement)           { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitReturnStatement(n *ReturnStatement)     { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitIfStatement(n *IfStatement)             { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitElseIfClause(n *ElseIfClause)           { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitWhileStatement(n *WhileStatement)       { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitCallStatement(n *CallStatement)         { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitIdentifier(n *Identifier)               { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitLiteral(n *Literal)                     { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitPathExpression(n *PathExpression)       { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitPathElement(n *PathElement)             { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitCallExpression(n *CallExpression)       { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitBinaryExpression(n *BinaryExpression)   { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitUnaryExpression(n *UnaryExpression)     { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitIsExpression(n *IsExpression)           { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitParenExpression(n *ParenExpression)     { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitCastExpression(n *CastExpression)       { WalkChildren(b.outer(), n) }
func (b *BaseVisitor) VisitDataType(n *DataType)                   { WalkChildren(b.outer(), n) }

var _ Visitor = (*BaseVisitor)(nil)

package ast

import (
	"strings"

	"github.com/leapstack-labs/esqllint/pkg/token"
)

// ---------- Schema-level statements ----------

// BrokerSchemaStatement is BROKER SCHEMA a.b.c.
type BrokerSchemaStatement struct {
	Span   token.Span
	Schema *PathExpression
}

// PathStatement is PATH a.b, c.d.
type PathStatement struct {
	Span    token.Span
	Schemas []*PathExpression
}

// ModuleType identifies the message flow node a module belongs to.
type ModuleType string

// Module types.
const (
	ModuleNone     ModuleType = ""
	ModuleCompute  ModuleType = "COMPUTE"
	ModuleDatabase ModuleType = "DATABASE"
	ModuleFilter   ModuleType = "FILTER"
)

// CreateModuleStatement is CREATE [COMPUTE|DATABASE|FILTER] MODULE name ... END MODULE.
// It is the scope unit for unused routine detection.
type CreateModuleStatement struct {
	Span token.Span
	Type ModuleType
	Name *Identifier
	Body []Stmt
}

// CreateFunctionStatement is CREATE FUNCTION name(params) [RETURNS type] body.
type CreateFunctionStatement struct {
	Span         token.Span
	Name         *Identifier
	Params       []*ParameterDeclaration
	Returns      *DataType   // optional
	Language     *Identifier // optional: ESQL, JAVA, DATABASE, ...
	ExternalName *Literal    // optional: EXTERNAL NAME "..."
	Body         Stmt        // nil for external routines
}

// CreateProcedureStatement is CREATE PROCEDURE name(params) [RETURNS type] body.
type CreateProcedureStatement struct {
	Span         token.Span
	Name         *Identifier
	Params       []*ParameterDeclaration
	Returns      *DataType   // optional
	Language     *Identifier // optional
	ExternalName *Literal    // optional
	Body         Stmt        // nil for external routines
}

// ParameterDeclaration is one routine parameter: [IN|OUT|INOUT] [CONSTANT] name type.
type ParameterDeclaration struct {
	Span      token.Span
	Direction token.TokenType // token.IN, token.OUT, token.INOUT, or token.EOF when omitted
	Constant  bool
	Name      *Identifier
	Type      *DataType
}

// ---------- Procedural statements ----------

// BeginEndStatement is BEGIN [ATOMIC] statements END.
type BeginEndStatement struct {
	Span       token.Span
	Atomic     bool
	Statements []Stmt
}

// DeclareStatement is DECLARE name[, name...] [SHARED|EXTERNAL] [CONSTANT] type [value].
type DeclareStatement struct {
	Span            token.Span
	Names           []*Identifier
	ConstantKeyword *token.Token // nil when not constant
	SharedExt       *token.Token // SHARED or EXTERNAL keyword; nil when absent
	Type            *DataType
	Value           Expr // optional initial value; the target for REFERENCE TO
}

// SetStatement is SET target = value.
type SetStatement struct {
	Span   token.Span
	Target Expr
	Value  Expr
}

// ReturnStatement is RETURN [value].
type ReturnStatement struct {
	Span  token.Span
	Value Expr // optional
}

// IfStatement is IF cond THEN ... [ELSEIF cond THEN ...] [ELSE ...] END IF.
type IfStatement struct {
	Span      token.Span
	Condition Expr
	Then      []Stmt
	ElseIfs   []*ElseIfClause
	Else      []Stmt
}

// ElseIfClause is one ELSEIF branch of an IfStatement.
type ElseIfClause struct {
	Span      token.Span
	Condition Expr
	Then      []Stmt
}

// WhileStatement is WHILE cond DO ... END WHILE.
type WhileStatement struct {
	Span      token.Span
	Condition Expr
	Body      []Stmt
}

// CallStatement is CALL [schema.]routine(args) [INTO target].
type CallStatement struct {
	Span        token.Span
	Schema      *PathExpression // optional schema qualifier
	RoutineName *Identifier     // nil when the target is not a plain name
	Args        []Expr
	Into        Expr // optional
}

func (*BrokerSchemaStatement) stmtNode()    {}
func (*PathStatement) stmtNode()            {}
func (*CreateModuleStatement) stmtNode()    {}
func (*CreateFunctionStatement) stmtNode()  {}
func (*CreateProcedureStatement) stmtNode() {}
func (*BeginEndStatement) stmtNode()        {}
func (*DeclareStatement) stmtNode()         {}
func (*SetStatement) stmtNode()             {}
func (*ReturnStatement) stmtNode()          {}
func (*IfStatement) stmtNode()              {}
func (*WhileStatement) stmtNode()           {}
func (*CallStatement) stmtNode()            {}

// Pos implements Node.
func (s *BrokerSchemaStatement) Pos() token.Position    { return s.Span.Start }
func (s *PathStatement) Pos() token.Position            { return s.Span.Start }
func (s *CreateModuleStatement) Pos() token.Position    { return s.Span.Start }
func (s *CreateFunctionStatement) Pos() token.Position  { return s.Span.Start }
func (s *CreateProcedureStatement) Pos() token.Position { return s.Span.Start }
func (s *ParameterDeclaration) Pos() token.Position     { return s.Span.Start }
func (s *BeginEndStatement) Pos() token.Position        { return s.Span.Start }
func (s *DeclareStatement) Pos() token.Position         { return s.Span.Start }
func (s *SetStatement) Pos() token.Position             { return s.Span.Start }
func (s *ReturnStatement) Pos() token.Position          { return s.Span.Start }
func (s *IfStatement) Pos() token.Position              { return s.Span.Start }
func (s *ElseIfClause) Pos() token.Position             { return s.Span.Start }
func (s *WhileStatement) Pos() token.Position           { return s.Span.Start }
func (s *CallStatement) Pos() token.Position            { return s.Span.Start }

// End implements Node.
func (s *BrokerSchemaStatement) End() token.Position    { return s.Span.End }
func (s *PathStatement) End() token.Position            { return s.Span.End }
func (s *CreateModuleStatement) End() token.Position    { return s.Span.End }
func (s *CreateFunctionStatement) End() token.Position  { return s.Span.End }
func (s *CreateProcedureStatement) End() token.Position { return s.Span.End }
func (s *ParameterDeclaration) End() token.Position     { return s.Span.End }
func (s *BeginEndStatement) End() token.Position        { return s.Span.End }
func (s *DeclareStatement) End() token.Position         { return s.Span.End }
func (s *SetStatement) End() token.Position             { return s.Span.End }
func (s *ReturnStatement) End() token.Position          { return s.Span.End }
func (s *IfStatement) End() token.Position              { return s.Span.End }
func (s *ElseIfClause) End() token.Position             { return s.Span.End }
func (s *WhileStatement) End() token.Position           { return s.Span.End }
func (s *CallStatement) End() token.Position            { return s.Span.End }

// IsConstant reports whether the declaration is exempt from variable naming:
// it carries CONSTANT, or its shared qualifier is EXTERNAL.
func (s *DeclareStatement) IsConstant() bool {
	if s.ConstantKeyword != nil {
		return true
	}
	return s.SharedExt != nil && strings.EqualFold(s.SharedExt.Literal, "EXTERNAL")
}

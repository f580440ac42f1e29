package parser

import (
	"fmt"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/token"
)

// ---------- Statement lists ----------

// parseStatements parses statements until EOF or one of the terminators.
// The terminator itself is not consumed.
func (p *Parser) parseStatements(terminators ...token.TokenType) []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.EOF) && !p.checkAny(terminators...) {
		offset := p.token.Pos.Offset
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.synchronize()
		}
		// Always make progress
		if p.token.Pos.Offset == offset && !p.check(token.EOF) {
			p.nextToken()
		}
	}
	return stmts
}

// statement → broker_schema | path | create_module | create_routine
//
//	| begin_end | declare | set | return | if | while | call
func (p *Parser) parseStatement() ast.Stmt {
	switch p.token.Type {
	case token.BROKER:
		return p.parseBrokerSchema()
	case token.PATH:
		return p.parsePathStatement()
	case token.CREATE:
		return p.parseCreate()
	case token.BEGIN:
		return p.parseBeginEnd()
	case token.DECLARE:
		return p.parseDeclare()
	case token.SET:
		return p.parseSet()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.CALL:
		return p.parseCall()
	}
	p.addError(fmt.Sprintf(ErrExpectedStatement, describe(p.token)))
	return nil
}

// endStatement requires the terminating semicolon of a simple statement.
func (p *Parser) endStatement() bool {
	return p.expect(token.SEMICOLON)
}

// ---------- Schema-level statements ----------

// broker_schema → BROKER SCHEMA name {. name} ;
func (p *Parser) parseBrokerSchema() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // BROKER
	if !p.expect(token.SCHEMA) {
		return nil
	}
	schema := p.parseNamePath()
	if schema == nil || !p.endStatement() {
		return nil
	}
	return &ast.BrokerSchemaStatement{Span: p.spanFrom(start), Schema: schema}
}

// path → PATH schema {, schema} ;
func (p *Parser) parsePathStatement() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // PATH
	stmt := &ast.PathStatement{}
	for {
		schema := p.parseNamePath()
		if schema == nil {
			return nil
		}
		stmt.Schemas = append(stmt.Schemas, schema)
		if !p.match(token.COMMA) {
			break
		}
	}
	if !p.endStatement() {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// parseCreate dispatches CREATE MODULE / FUNCTION / PROCEDURE.
func (p *Parser) parseCreate() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // CREATE

	switch p.token.Type {
	case token.COMPUTE, token.DATABASE, token.FILTER, token.MODULE:
		return p.parseCreateModule(start)
	case token.FUNCTION, token.PROCEDURE:
		return p.parseCreateRoutine(start)
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "MODULE, FUNCTION or PROCEDURE"))
	return nil
}

// create_module → CREATE [COMPUTE|DATABASE|FILTER] MODULE name statement* END MODULE [;]
func (p *Parser) parseCreateModule(start token.Position) ast.Stmt {
	stmt := &ast.CreateModuleStatement{}
	switch p.token.Type {
	case token.COMPUTE:
		stmt.Type = ast.ModuleCompute
		p.nextToken()
	case token.DATABASE:
		stmt.Type = ast.ModuleDatabase
		p.nextToken()
	case token.FILTER:
		stmt.Type = ast.ModuleFilter
		p.nextToken()
	}
	if !p.expect(token.MODULE) {
		return nil
	}
	if stmt.Name = p.parseIdentifier(); stmt.Name == nil {
		return nil
	}

	stmt.Body = p.parseStatements(token.END)
	if !p.expectEnd(token.MODULE) {
		return nil
	}
	p.match(token.SEMICOLON)
	stmt.Span = p.spanFrom(start)
	return stmt
}

// create_routine → CREATE (FUNCTION|PROCEDURE) name ( [param {, param}] )
//
//	[RETURNS type] [LANGUAGE name] [EXTERNAL NAME string] [statement] [;]
func (p *Parser) parseCreateRoutine(start token.Position) ast.Stmt {
	isFunction := p.check(token.FUNCTION)
	p.nextToken() // FUNCTION / PROCEDURE

	name := p.parseIdentifier()
	if name == nil {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []*ast.ParameterDeclaration
	if !p.check(token.RPAREN) {
		for {
			param := p.parseParameter()
			if param == nil {
				return nil
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}

	var returns *ast.DataType
	if p.match(token.RETURNS) {
		if returns = p.parseDataType(); returns == nil {
			return nil
		}
	}

	var language *ast.Identifier
	if p.match(token.LANGUAGE) {
		if language = p.parseIdentifier(); language == nil {
			return nil
		}
	}

	var external *ast.Literal
	if p.check(token.EXTERNAL) && p.checkPeek(token.NAME) {
		p.nextToken() // EXTERNAL
		p.nextToken() // NAME
		// Java class names are usually written as "pkg.Class.method", which
		// lexes as a quoted identifier.
		if !p.check(token.STRING) && !p.check(token.IDENT) {
			p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), token.STRING))
			return nil
		}
		external = &ast.Literal{Span: p.token.Span(), Kind: ast.LiteralString, Value: p.token.Literal}
		p.nextToken()
	}

	var body ast.Stmt
	if !p.check(token.SEMICOLON) && !p.check(token.EOF) && !p.check(token.END) {
		if body = p.parseStatement(); body == nil {
			return nil
		}
	}
	p.match(token.SEMICOLON)

	span := p.spanFrom(start)
	if isFunction {
		return &ast.CreateFunctionStatement{
			Span: span, Name: name, Params: params, Returns: returns,
			Language: language, ExternalName: external, Body: body,
		}
	}
	return &ast.CreateProcedureStatement{
		Span: span, Name: name, Params: params, Returns: returns,
		Language: language, ExternalName: external, Body: body,
	}
}

// param → [IN|OUT|INOUT] [CONSTANT] name type
func (p *Parser) parseParameter() *ast.ParameterDeclaration {
	start := p.token.Pos
	param := &ast.ParameterDeclaration{Direction: token.EOF}
	switch p.token.Type {
	case token.IN, token.OUT, token.INOUT:
		param.Direction = p.token.Type
		p.nextToken()
	}
	if p.check(token.CONSTANT) && isIdentLike(p.peek) {
		param.Constant = true
		p.nextToken()
	}
	if param.Name = p.parseIdentifier(); param.Name == nil {
		return nil
	}
	if param.Type = p.parseDataType(); param.Type == nil {
		return nil
	}
	param.Span = p.spanFrom(start)
	return param
}

// ---------- Procedural statements ----------

// begin_end → BEGIN [ATOMIC] statement* END [;]
func (p *Parser) parseBeginEnd() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // BEGIN
	stmt := &ast.BeginEndStatement{}
	stmt.Atomic = p.match(token.ATOMIC)
	stmt.Statements = p.parseStatements(token.END)
	if !p.expect(token.END) {
		return nil
	}
	p.match(token.SEMICOLON)
	stmt.Span = p.spanFrom(start)
	return stmt
}

// declare → DECLARE [CONSTANT] name {, name} [SHARED|EXTERNAL] [CONSTANT] type [value] ;
//
//	type → REFERENCE TO expr | data_type
func (p *Parser) parseDeclare() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // DECLARE
	stmt := &ast.DeclareStatement{}

	// CONSTANT before the names, unless it is the (only) variable name itself.
	if p.check(token.CONSTANT) && isIdentLike(p.peek) &&
		p.peek2.Type != token.SEMICOLON && p.peek2.Type != token.COMMA {
		tok := p.token
		stmt.ConstantKeyword = &tok
		p.nextToken()
	}

	for {
		name := p.parseIdentifier()
		if name == nil {
			return nil
		}
		stmt.Names = append(stmt.Names, name)
		if !p.match(token.COMMA) {
			break
		}
	}

	if p.checkAny(token.SHARED, token.EXTERNAL) {
		tok := p.token
		stmt.SharedExt = &tok
		p.nextToken()
	}
	if p.check(token.CONSTANT) {
		tok := p.token
		stmt.ConstantKeyword = &tok
		p.nextToken()
	}

	if p.check(token.REFERENCE) {
		refTok := p.token
		p.nextToken()
		stmt.Type = &ast.DataType{
			Span: refTok.Span(),
			Name: &ast.Identifier{Span: refTok.Span(), Name: refTok.Literal},
		}
		if !p.expect(token.TO) {
			return nil
		}
		if stmt.Value = p.parseExpression(); stmt.Value == nil {
			return nil
		}
	} else {
		if stmt.Type = p.parseDataType(); stmt.Type == nil {
			return nil
		}
		if !p.check(token.SEMICOLON) {
			if stmt.Value = p.parseExpression(); stmt.Value == nil {
				return nil
			}
		}
	}

	if !p.endStatement() {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// set → SET target = expr ;
func (p *Parser) parseSet() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // SET
	target := p.parsePrimary()
	if target == nil {
		return nil
	}
	if !p.expect(token.EQ) {
		return nil
	}
	value := p.parseExpression()
	if value == nil || !p.endStatement() {
		return nil
	}
	return &ast.SetStatement{Span: p.spanFrom(start), Target: target, Value: value}
}

// return → RETURN [expr] ;
func (p *Parser) parseReturn() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // RETURN
	stmt := &ast.ReturnStatement{}
	if !p.check(token.SEMICOLON) {
		if stmt.Value = p.parseExpression(); stmt.Value == nil {
			return nil
		}
	}
	if !p.endStatement() {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// if → IF expr THEN statement* {ELSEIF expr THEN statement*} [ELSE statement*] END IF ;
func (p *Parser) parseIf() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // IF
	stmt := &ast.IfStatement{}
	if stmt.Condition = p.parseExpression(); stmt.Condition == nil {
		return nil
	}
	if !p.expect(token.THEN) {
		return nil
	}
	stmt.Then = p.parseStatements(token.ELSEIF, token.ELSE, token.END)

	for p.check(token.ELSEIF) {
		clauseStart := p.token.Pos
		p.nextToken()
		clause := &ast.ElseIfClause{}
		if clause.Condition = p.parseExpression(); clause.Condition == nil {
			return nil
		}
		if !p.expect(token.THEN) {
			return nil
		}
		clause.Then = p.parseStatements(token.ELSEIF, token.ELSE, token.END)
		clause.Span = p.spanFrom(clauseStart)
		stmt.ElseIfs = append(stmt.ElseIfs, clause)
	}

	if p.match(token.ELSE) {
		stmt.Else = p.parseStatements(token.END)
	}
	if !p.expectEnd(token.IF) || !p.endStatement() {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// while → WHILE expr DO statement* END WHILE ;
func (p *Parser) parseWhile() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // WHILE
	stmt := &ast.WhileStatement{}
	if stmt.Condition = p.parseExpression(); stmt.Condition == nil {
		return nil
	}
	if !p.expect(token.DO) {
		return nil
	}
	stmt.Body = p.parseStatements(token.END)
	if !p.expectEnd(token.WHILE) || !p.endStatement() {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// call → CALL [schema .] name ( [expr {, expr}] ) [INTO target] ;
func (p *Parser) parseCall() ast.Stmt {
	start := p.token.Pos
	p.nextToken() // CALL
	stmt := &ast.CallStatement{}

	path := p.parseNamePath()
	if path == nil {
		return nil
	}
	last := path.Elements[len(path.Elements)-1]
	stmt.RoutineName = last.Name
	if len(path.Elements) > 1 {
		qualifier := path.Elements[:len(path.Elements)-1]
		stmt.Schema = &ast.PathExpression{
			Span:     token.Span{Start: qualifier[0].Span.Start, End: qualifier[len(qualifier)-1].Span.End},
			Elements: qualifier,
		}
	}

	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	stmt.Args = args

	if p.match(token.INTO) {
		if stmt.Into = p.parsePrimary(); stmt.Into == nil {
			return nil
		}
	}
	if !p.endStatement() {
		return nil
	}
	stmt.Span = p.spanFrom(start)
	return stmt
}

// expectEnd consumes END followed by the given keyword.
func (p *Parser) expectEnd(kw token.TokenType) bool {
	if !p.expect(token.END) {
		return false
	}
	if p.check(kw) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrMismatchedEnd, kw, describe(p.token)))
	return false
}

// ---------- Names and types ----------

// parseIdentifier parses a plain or quoted identifier, or an unreserved keyword.
func (p *Parser) parseIdentifier() *ast.Identifier {
	if !isIdentLike(p.token) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), token.IDENT))
		return nil
	}
	id := p.identFromToken(p.token)
	p.nextToken()
	return id
}

func (p *Parser) identFromToken(tok token.Token) *ast.Identifier {
	return &ast.Identifier{
		Span:   tok.Span(),
		Name:   tok.Literal,
		Quoted: tok.Type == token.IDENT && p.lexer.isQuotedAt(tok.Pos.Offset),
	}
}

// parseNamePath parses name {. name} as a PathExpression.
func (p *Parser) parseNamePath() *ast.PathExpression {
	start := p.token.Pos
	path := &ast.PathExpression{}
	for {
		id := p.parseIdentifier()
		if id == nil {
			return nil
		}
		path.Elements = append(path.Elements, &ast.PathElement{Span: id.Span, Name: id})
		if !p.check(token.DOT) {
			break
		}
		p.nextToken()
	}
	path.Span = p.spanFrom(start)
	return path
}

// data_type → name [( number {, number} )]
func (p *Parser) parseDataType() *ast.DataType {
	start := p.token.Pos
	if !isIdentLike(p.token) && !token.IsKeyword(p.token.Type) {
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), "data type"))
		return nil
	}
	name := p.identFromToken(p.token)
	p.nextToken()
	// Precision and scale, as in DECIMAL(10, 2)
	if p.check(token.LPAREN) && p.checkPeek(token.NUMBER) {
		p.nextToken()
		for p.match(token.NUMBER) {
			if !p.match(token.COMMA) {
				break
			}
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}
	return &ast.DataType{Span: p.spanFrom(start), Name: name}
}

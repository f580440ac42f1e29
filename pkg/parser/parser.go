// Package parser provides a lexer and recursive descent parser for the
// subset of ESQL that the lint rules consume.
//
// # Usage
//
//	prog, err := parser.Parse(src)
//	if err != nil {
//	    // handle error
//	}
//
// ParseWithComments also returns the comments collected by the lexer, which
// the analyzer uses for NOSONAR suppression.
//
// # Grammar Overview
//
//	program     → statement*
//	statement   → broker_schema | path | create_module | create_routine
//	            | begin_end | declare | set | return | if | while | call
//	create_module  → CREATE [COMPUTE|DATABASE|FILTER] MODULE name statement* END MODULE [;]
//	create_routine → CREATE (FUNCTION|PROCEDURE) name ( [param {, param}] )
//	                 [RETURNS type] [LANGUAGE name] [EXTERNAL NAME string] [statement] [;]
//
// See parser_stmt.go and parser_expr.go for the detailed rules.
package parser

import (
	"fmt"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/token"
)

// Parser parses ESQL into an AST.
type Parser struct {
	lexer   *Lexer
	token   token.Token // current token
	peek    token.Token // lookahead token
	peek2   token.Token // second lookahead token
	prevEnd token.Position
	errors  []error
}

// NewParser creates a new parser for the given ESQL input.
func NewParser(src string) *Parser {
	p := &Parser{
		lexer: NewLexer(src),
	}
	// Read three tokens to initialize current, peek, and peek2
	p.nextToken()
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses src and returns the program, or the first error encountered.
func Parse(src string) (*ast.Program, error) {
	prog, _, err := ParseWithComments(src)
	return prog, err
}

// ParseWithComments parses src and also returns the comments in source order.
func ParseWithComments(src string) (*ast.Program, []*token.Comment, error) {
	p := NewParser(src)
	prog := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		return nil, nil, errs[0]
	}
	return prog, p.Comments(), nil
}

// ParseProgram parses the whole input. Errors are available from Errors.
func (p *Parser) ParseProgram() *ast.Program {
	start := p.token.Pos
	prog := &ast.Program{}
	prog.Statements = p.parseStatements()
	prog.Span = token.Span{Start: start, End: p.token.End}
	return prog
}

// Errors returns lexical errors first, then parse errors, each in source order.
func (p *Parser) Errors() []error {
	lexErrs := p.lexer.Errors()
	if len(lexErrs) == 0 {
		return p.errors
	}
	out := make([]error, 0, len(lexErrs)+len(p.errors))
	out = append(out, lexErrs...)
	return append(out, p.errors...)
}

// Comments returns the comments collected so far.
func (p *Parser) Comments() []*token.Comment {
	return p.lexer.Comments
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	if p.token.End.IsValid() {
		p.prevEnd = p.token.End
	}
	p.token = p.peek
	p.peek = p.peek2
	p.peek2 = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// checkAny returns true if the current token is any of the given types.
func (p *Parser) checkAny(types ...token.TokenType) bool {
	for _, t := range types {
		if p.check(t) {
			return true
		}
	}
	return false
}

// checkPeek returns true if the peek token is of the given type.
func (p *Parser) checkPeek(t token.TokenType) bool {
	return p.peek.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return false
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos,
		Message: msg,
	})
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prevEnd}
}

// synchronize skips to just past the next semicolon so parsing can resume.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			return
		}
		p.nextToken()
	}
}

// isIdentLike reports whether tok can name something: a plain or quoted
// identifier, or a keyword that ESQL does not reserve.
func isIdentLike(tok token.Token) bool {
	return tok.Type == token.IDENT || token.IsSoftKeyword(tok.Type)
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "EOF"
	case token.IDENT, token.NUMBER, token.STRING, token.ILLEGAL:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return tok.Type.String()
}

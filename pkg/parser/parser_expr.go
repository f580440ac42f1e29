package parser

import (
	"fmt"

	"github.com/leapstack-labs/esqllint/pkg/ast"
	"github.com/leapstack-labs/esqllint/pkg/token"
)

// ---------- Expression Parsing ----------
// Precedence climbing, lowest to highest:
//
//	OR → AND → NOT → comparison → || + - → * / → unary → primary

// parseExpression parses an expression.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for left != nil && p.check(token.OR) {
		p.nextToken()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = p.binary(left, token.OR, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for left != nil && p.check(token.AND) {
		p.nextToken()
		right := p.parseNot()
		if right == nil {
			return nil
		}
		left = p.binary(left, token.AND, right)
	}
	return left
}

func (p *Parser) parseNot() ast.Expr {
	if p.check(token.NOT) {
		start := p.token.Pos
		p.nextToken()
		operand := p.parseNot()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpression{Span: p.spanFrom(start), Op: token.NOT, Operand: operand}
	}
	return p.parseComparison()
}

// comparison → additive [(= | <> | < | > | <= | >=) additive | IS [NOT] primary]
func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}

	switch p.token.Type {
	case token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE:
		op := p.token.Type
		p.nextToken()
		right := p.parseAdditive()
		if right == nil {
			return nil
		}
		return p.binary(left, op, right)
	case token.IS:
		p.nextToken()
		is := &ast.IsExpression{Expr: left}
		is.Not = p.match(token.NOT)
		if is.Target = p.parsePrimary(); is.Target == nil {
			return nil
		}
		is.Span = p.spanFrom(left.Pos())
		return is
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for left != nil && p.checkAny(token.DPIPE, token.PLUS, token.MINUS) {
		op := p.token.Type
		p.nextToken()
		right := p.parseMultiplicative()
		if right == nil {
			return nil
		}
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for left != nil && p.checkAny(token.STAR, token.SLASH) {
		op := p.token.Type
		p.nextToken()
		right := p.parseUnary()
		if right == nil {
			return nil
		}
		left = p.binary(left, op, right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.checkAny(token.MINUS, token.PLUS) {
		start := p.token.Pos
		op := p.token.Type
		p.nextToken()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpression{Span: p.spanFrom(start), Op: op, Operand: operand}
	}
	return p.parsePrimary()
}

func (p *Parser) binary(left ast.Expr, op token.TokenType, right ast.Expr) ast.Expr {
	return &ast.BinaryExpression{
		Span:  token.Span{Start: left.Pos(), End: right.End()},
		Left:  left,
		Op:    op,
		Right: right,
	}
}

// ---------- Primary Expressions ----------

// primary → literal | ( expr ) | CAST ( expr AS type ) | path [( args )]
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.token
	switch tok.Type {
	case token.NUMBER:
		p.nextToken()
		return &ast.Literal{Span: tok.Span(), Kind: ast.LiteralNumber, Value: tok.Literal}
	case token.STRING:
		p.nextToken()
		return &ast.Literal{Span: tok.Span(), Kind: ast.LiteralString, Value: tok.Literal}
	case token.TRUE, token.FALSE:
		p.nextToken()
		return &ast.Literal{Span: tok.Span(), Kind: ast.LiteralBool, Value: tok.Literal}
	case token.NULL:
		p.nextToken()
		return &ast.Literal{Span: tok.Span(), Kind: ast.LiteralNull, Value: tok.Literal}
	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil || !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.ParenExpression{Span: p.spanFrom(tok.Pos), Expr: inner}
	case token.CAST:
		return p.parseCast()
	}

	if isIdentLike(tok) {
		return p.parsePathOrCall()
	}
	p.addError(fmt.Sprintf(ErrExpectedExpression, describe(tok)))
	return nil
}

// cast → CAST ( expr AS type )
func (p *Parser) parseCast() ast.Expr {
	start := p.token.Pos
	p.nextToken() // CAST
	if !p.expect(token.LPAREN) {
		return nil
	}
	expr := p.parseExpression()
	if expr == nil || !p.expect(token.AS) {
		return nil
	}
	typ := p.parseDataType()
	if typ == nil || !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.CastExpression{Span: p.spanFrom(start), Expr: expr, Type: typ}
}

// path → element {. element} ; element → (name [: name] | *) [ [ [expr] ] ]
// A path directly followed by ( is a function call.
func (p *Parser) parsePathOrCall() ast.Expr {
	start := p.token.Pos
	path := &ast.PathExpression{}
	for {
		el := p.parsePathElement(len(path.Elements) > 0)
		if el == nil {
			return nil
		}
		path.Elements = append(path.Elements, el)
		if !p.check(token.DOT) {
			break
		}
		p.nextToken()
	}
	path.Span = p.spanFrom(start)

	if !p.check(token.LPAREN) {
		return path
	}
	args, ok := p.parseArguments()
	if !ok {
		return nil
	}
	return &ast.CallExpression{Span: p.spanFrom(start), Function: path, Args: args}
}

// parsePathElement parses one path step. After a dot any keyword is a field name.
func (p *Parser) parsePathElement(afterDot bool) *ast.PathElement {
	start := p.token.Pos
	el := &ast.PathElement{}

	switch {
	case p.check(token.STAR) && afterDot:
		el.Star = true
		p.nextToken()
	case isIdentLike(p.token) || (afterDot && token.IsKeyword(p.token.Type)):
		el.Name = p.identFromToken(p.token)
		p.nextToken()
		// Namespace prefix, as in OutputRoot.XMLNSC.ns:Element
		if p.check(token.COLON) && (isIdentLike(p.peek) || token.IsKeyword(p.peek.Type)) {
			p.nextToken()
			el.Name.Name += ":" + p.token.Literal
			el.Name.Span.End = p.token.End
			p.nextToken()
		}
	default:
		p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), token.IDENT))
		return nil
	}

	if p.match(token.LBRACKET) {
		switch {
		case p.check(token.RBRACKET):
		case p.checkAny(token.LT, token.GT) && p.checkPeek(token.RBRACKET):
			p.nextToken() // [<] and [>]
		default:
			if el.Index = p.parseExpression(); el.Index == nil {
				return nil
			}
		}
		if !p.expect(token.RBRACKET) {
			return nil
		}
	}

	el.Span = p.spanFrom(start)
	return el
}

// parseArguments parses ( [expr {, expr}] ).
func (p *Parser) parseArguments() ([]ast.Expr, bool) {
	if !p.expect(token.LPAREN) {
		return nil, false
	}
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		for {
			arg := p.parseExpression()
			if arg == nil {
				return nil, false
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if !p.expect(token.RPAREN) {
		return nil, false
	}
	return args, true
}

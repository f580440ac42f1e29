// Package token defines the lexical tokens of ESQL source.
//
// Keywords are matched case-insensitively. Many ESQL keywords are not reserved
// (MODULE, NAME, SHARED, ...); IsSoftKeyword reports the ones the parser also
// accepts in identifier position.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier, plain or "quoted"
	NUMBER // 123, 45.67, 1e10
	STRING // 'hello'

	// Operators and punctuation
	PLUS      // +
	MINUS     // -
	STAR      // *
	SLASH     // /
	DPIPE     // ||
	EQ        // =
	NE        // <>
	LT        // <
	GT        // >
	LE        // <=
	GE        // >=
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	COLON     // :
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]

	keywordStart

	// Keywords (alphabetical)
	AND
	AS
	ATOMIC
	BEGIN
	BROKER
	CALL
	CAST
	COMPUTE
	CONSTANT
	CREATE
	DATABASE
	DECLARE
	DO
	ELSE
	ELSEIF
	END
	EXTERNAL
	FALSE
	FILTER
	FUNCTION
	IF
	IN
	INOUT
	INTO
	IS
	LANGUAGE
	MODULE
	NAME
	NOT
	NULL
	OR
	OUT
	PATH
	PROCEDURE
	REFERENCE
	RETURN
	RETURNS
	SCHEMA
	SET
	SHARED
	THEN
	TO
	TRUE
	WHILE

	keywordEnd
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	if t > keywordStart && t < keywordEnd {
		for word, kw := range keywords {
			if kw == t {
				return strings.ToUpper(word)
			}
		}
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps non-keyword token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	PLUS:      "+",
	MINUS:     "-",
	STAR:      "*",
	SLASH:     "/",
	DPIPE:     "||",
	EQ:        "=",
	NE:        "<>",
	LT:        "<",
	GT:        ">",
	LE:        "<=",
	GE:        ">=",
	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	COLON:     ":",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
}

// keywords maps lowercase keyword strings to their token types.
var keywords = map[string]TokenType{
	"and":       AND,
	"as":        AS,
	"atomic":    ATOMIC,
	"begin":     BEGIN,
	"broker":    BROKER,
	"call":      CALL,
	"cast":      CAST,
	"compute":   COMPUTE,
	"constant":  CONSTANT,
	"create":    CREATE,
	"database":  DATABASE,
	"declare":   DECLARE,
	"do":        DO,
	"else":      ELSE,
	"elseif":    ELSEIF,
	"end":       END,
	"external":  EXTERNAL,
	"false":     FALSE,
	"filter":    FILTER,
	"function":  FUNCTION,
	"if":        IF,
	"in":        IN,
	"inout":     INOUT,
	"into":      INTO,
	"is":        IS,
	"language":  LANGUAGE,
	"module":    MODULE,
	"name":      NAME,
	"not":       NOT,
	"null":      NULL,
	"or":        OR,
	"out":       OUT,
	"path":      PATH,
	"procedure": PROCEDURE,
	"reference": REFERENCE,
	"return":    RETURN,
	"returns":   RETURNS,
	"schema":    SCHEMA,
	"set":       SET,
	"shared":    SHARED,
	"then":      THEN,
	"to":        TO,
	"true":      TRUE,
	"while":     WHILE,
}

// softKeywords can also be used as identifiers.
var softKeywords = map[TokenType]bool{
	ATOMIC:    true,
	BROKER:    true,
	COMPUTE:   true,
	CONSTANT:  true,
	DATABASE:  true,
	EXTERNAL:  true,
	FILTER:    true,
	FUNCTION:  true,
	INOUT:     true,
	LANGUAGE:  true,
	MODULE:    true,
	NAME:      true,
	OUT:       true,
	PATH:      true,
	PROCEDURE: true,
	REFERENCE: true,
	RETURNS:   true,
	SCHEMA:    true,
	SHARED:    true,
	TO:        true,
}

// LookupIdent returns the token type for the given identifier.
// If the identifier is a keyword (in any case), the keyword token type is returned.
// Otherwise, IDENT is returned.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToLower(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t > keywordStart && t < keywordEnd
}

// IsSoftKeyword returns true if the keyword may also appear as an identifier.
func IsSoftKeyword(t TokenType) bool {
	return softKeywords[t]
}

// IsOperator returns true if the token type is an operator or punctuation.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= RBRACKET
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string // source text; unquoted for quoted identifiers and strings
	Pos     Position
	End     Position // position just past the last character
}

// Span returns the source range covered by the token.
func (t Token) Span() Span {
	return Span{Start: t.Pos, End: t.End}
}

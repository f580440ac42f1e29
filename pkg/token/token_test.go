package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"DECLARE", DECLARE},
		{"declare", DECLARE},
		{"Declare", DECLARE},
		{"MODULE", MODULE},
		{"ElseIf", ELSEIF},
		{"myVar", IDENT},
		{"INTEGER", IDENT},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, LookupIdent(tt.input))
		})
	}
}

func TestTokenTypeString(t *testing.T) {
	assert.Equal(t, "DECLARE", DECLARE.String())
	assert.Equal(t, "ELSEIF", ELSEIF.String())
	assert.Equal(t, ";", SEMICOLON.String())
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, "TOKEN(9999)", TokenType(9999).String())
}

func TestKeywordClassification(t *testing.T) {
	assert.True(t, IsKeyword(CREATE))
	assert.True(t, IsKeyword(WHILE))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(SEMICOLON))

	assert.True(t, IsSoftKeyword(NAME))
	assert.True(t, IsSoftKeyword(EXTERNAL))
	assert.False(t, IsSoftKeyword(DECLARE))
	assert.False(t, IsSoftKeyword(IDENT))

	assert.True(t, IsOperator(DPIPE))
	assert.False(t, IsOperator(AND))
}

func TestPosition(t *testing.T) {
	p := Position{Line: 2, Column: 5}
	q := Position{Line: 2, Column: 9}

	assert.True(t, p.Before(q))
	assert.False(t, q.Before(p))
	assert.Equal(t, "2:5", p.String())
	assert.Equal(t, "-", Position{}.String())
}

func TestSpanCover(t *testing.T) {
	a := Span{Start: Position{Line: 1, Column: 1}, End: Position{Line: 1, Column: 10}}
	b := Span{Start: Position{Line: 3, Column: 2}, End: Position{Line: 4, Column: 1}}

	got := a.Cover(b)
	assert.Equal(t, a.Start, got.Start)
	assert.Equal(t, b.End, got.End)
	assert.Equal(t, a, a.Cover(Span{}))
	assert.Equal(t, b, Span{}.Cover(b))
}

func TestCommentBody(t *testing.T) {
	line := &Comment{Kind: LineComment, Text: "-- NOSONAR unused on purpose"}
	block := &Comment{Kind: BlockComment, Text: "/* hello */"}

	assert.True(t, line.IsLineComment())
	assert.Equal(t, "NOSONAR unused on purpose", line.Body())
	assert.True(t, block.IsBlockComment())
	assert.Equal(t, "hello", block.Body())
}

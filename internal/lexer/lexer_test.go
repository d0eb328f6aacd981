package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triples-lang/triples/internal/lexer"
)

func scanAll(src string) []lexer.Token {
	s := lexer.New(src)
	var toks []lexer.Token
	for {
		tok := s.ScanToken()
		toks = append(toks, tok)
		if tok.Type == lexer.TEOF {
			return toks
		}
	}
}

func types(toks []lexer.Token) []lexer.TokenType {
	res := make([]lexer.TokenType, len(toks))
	for i, t := range toks {
		res[i] = t.Type
	}
	return res
}

func TestPunctuationAndOperators(t *testing.T) {
	toks := scanAll("(){};,.-+/*!!====<=>=<>")
	assert.Equal(t, []lexer.TokenType{
		lexer.TLParen, lexer.TRParen, lexer.TLBrace, lexer.TRBrace, lexer.TSemi,
		lexer.TComma, lexer.TDot, lexer.TMinus, lexer.TPlus, lexer.TSlash, lexer.TStar,
		lexer.TBang, lexer.TBangEqual, lexer.TEqualEqual, lexer.TEqual, lexer.TLessEqual,
		lexer.TGreaterEqual, lexer.TLess, lexer.TGreater, lexer.TEOF,
	}, types(toks))
}

func TestNumberDotIsTwoTokens(t *testing.T) {
	// "1." scans as NUMBER "1" then a separate DOT, since the fractional
	// part is only consumed when a digit follows the '.'.
	toks := scanAll("1.")
	assert.Equal(t, []lexer.TokenType{lexer.TNum, lexer.TDot, lexer.TEOF}, types(toks))
	assert.Equal(t, "1", toks[0].Lexeme)
}

func TestNumberWithFraction(t *testing.T) {
	toks := scanAll("3.14")
	assert.Equal(t, lexer.TNum, toks[0].Type)
	assert.Equal(t, "3.14", toks[0].Lexeme)
}

func TestStringEitherDelimiter(t *testing.T) {
	toks := scanAll(`"foo" 'bar'`)
	assert.Equal(t, []lexer.TokenType{lexer.TStr, lexer.TStr, lexer.TEOF}, types(toks))
	assert.Equal(t, `"foo"`, toks[0].Lexeme)
	assert.Equal(t, `'bar'`, toks[1].Lexeme)
}

func TestStringEscapedDelimiter(t *testing.T) {
	toks := scanAll(`"a\"b"`)
	assert.Equal(t, lexer.TStr, toks[0].Type)
	assert.Equal(t, `"a\"b"`, toks[0].Lexeme)
}

func TestUnterminatedString(t *testing.T) {
	toks := scanAll(`"nope`)
	assert.Equal(t, lexer.TErr, toks[0].Type)
	assert.Equal(t, "unterminated string", toks[0].Lexeme)
}

func TestUnexpectedCharacter(t *testing.T) {
	toks := scanAll("@")
	assert.Equal(t, lexer.TErr, toks[0].Type)
	assert.Equal(t, "unexpected character", toks[0].Lexeme)
}

func TestKeywords(t *testing.T) {
	src := "and class else false for function if null or print return super this true var while"
	toks := scanAll(src)
	assert.Equal(t, []lexer.TokenType{
		lexer.TAnd, lexer.TClass, lexer.TElse, lexer.TFalse, lexer.TFor, lexer.TFunction,
		lexer.TIf, lexer.TNull, lexer.TOr, lexer.TPrint, lexer.TReturn, lexer.TSuper,
		lexer.TThis, lexer.TTrue, lexer.TVar, lexer.TWhile, lexer.TEOF,
	}, types(toks))
}

func TestIdentifierNotKeywordPrefix(t *testing.T) {
	toks := scanAll("andromeda classy printer")
	for _, tok := range toks[:3] {
		assert.Equal(t, lexer.TIdent, tok.Type)
	}
}

func TestLineCounting(t *testing.T) {
	toks := scanAll("1\n2\n\n3")
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 2, toks[1].Line)
	assert.Equal(t, 4, toks[2].Line)
}

func TestCommentsSkipped(t *testing.T) {
	toks := scanAll("1 // a comment\n2")
	assert.Equal(t, []lexer.TokenType{lexer.TNum, lexer.TNum, lexer.TEOF}, types(toks))
	assert.Equal(t, 2, toks[1].Line)
}

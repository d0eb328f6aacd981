// Package lexer turns TripleS source text into a stream of Tokens, one
// ScanToken call at a time. The Scanner is stateless between calls except
// for its cursor and line counter, mirroring the teacher's own scanner.
package lexer

import "golang.org/x/exp/slices"

// Scanner produces tokens on demand from a rune slice. It never looks
// back past the current lexeme (start..curr) once a token has been made.
type Scanner struct {
	start, curr, line int
	src               []rune
}

// New creates a Scanner positioned at the beginning of src, line 1.
func New(src string) *Scanner {
	return &Scanner{src: []rune(src), line: 1}
}

// ScanToken consumes and returns the next token, skipping whitespace and
// line comments first. At end of input it returns a TEOF token forever.
func (s *Scanner) ScanToken() Token {
	s.skipWhitespace()
	s.start = s.curr
	if s.isAtEnd() {
		return s.makeToken(TEOF)
	}

	c := s.advance()
	switch {
	case isDigit(c):
		return s.number()
	case isAlpha(c):
		return s.identifier()
	}

	switch c {
	case '(':
		return s.makeToken(TLParen)
	case ')':
		return s.makeToken(TRParen)
	case '{':
		return s.makeToken(TLBrace)
	case '}':
		return s.makeToken(TRBrace)
	case ';':
		return s.makeToken(TSemi)
	case ',':
		return s.makeToken(TComma)
	case '.':
		return s.makeToken(TDot)
	case '-':
		return s.makeToken(TMinus)
	case '+':
		return s.makeToken(TPlus)
	case '/':
		return s.makeToken(TSlash)
	case '*':
		return s.makeToken(TStar)

	case '!':
		if s.match('=') {
			return s.makeToken(TBangEqual)
		}
		return s.makeToken(TBang)

	case '=':
		if s.match('=') {
			return s.makeToken(TEqualEqual)
		}
		return s.makeToken(TEqual)

	case '<':
		if s.match('=') {
			return s.makeToken(TLessEqual)
		}
		return s.makeToken(TLess)

	case '>':
		if s.match('=') {
			return s.makeToken(TGreaterEqual)
		}
		return s.makeToken(TGreater)

	case '\'', '"':
		return s.string(c)
	}

	return s.errorToken("unexpected character")
}

// string scans a string literal delimited by quote (either ' or "),
// having already consumed the opening delimiter. A backslash escapes the
// delimiter itself within the literal; no other escape is recognized.
func (s *Scanner) string(quote rune) Token {
	for {
		p := s.peek()
		if p == quote || s.isAtEnd() {
			break
		}
		if p == '\n' {
			s.line++
		}
		if p == '\\' && s.peekNext() == quote {
			s.advance()
		}
		s.advance()
	}
	if s.isAtEnd() {
		return s.errorToken("unterminated string")
	}
	s.advance() // the closing quote
	return s.makeToken(TStr)
}

func (s *Scanner) number() Token {
	for isDigit(s.peek()) {
		s.advance()
	}
	// 1. scans as NUMBER "1" then a separate DOT, since '.' is only
	// consumed here when followed by a digit.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	return s.makeToken(TNum)
}

func (s *Scanner) identifier() Token {
	for p := s.peek(); isAlpha(p) || isDigit(p); p = s.peek() {
		s.advance()
	}
	return s.makeToken(s.identType())
}

// skipWhitespace advances over consecutive whitespace and `//` comments.
func (s *Scanner) skipWhitespace() {
	for {
		switch s.peek() {
		case '\n':
			s.line++
			fallthrough
		case ' ', '\r', '\t':
			s.advance()

		case '/':
			if s.peekNext() != '/' {
				return
			}
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}

		default:
			return
		}
	}
}

func (s *Scanner) advance() (res rune) {
	res = s.src[s.curr]
	s.curr++
	return
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.src[s.curr]
}

func (s *Scanner) peekNext() rune {
	if s.isAtEnd() || s.curr+1 >= len(s.src) {
		return 0
	}
	return s.src[s.curr+1]
}

func (s *Scanner) match(expected rune) bool {
	if c := s.peek(); c == 0 || c != expected {
		return false
	}
	s.curr++
	return true
}

// identType classifies the just-scanned identifier lexeme (s.start..s.curr)
// against the keyword set via a first-letter dispatch. This is purely an
// optimization over a map lookup; any equivalent strategy is conformant.
func (s *Scanner) identType() TokenType {
	checkKeyword := func(start int, rest string, ty TokenType) TokenType {
		absStart := s.start + start
		if s.curr >= absStart && slices.Equal(s.src[absStart:s.curr], []rune(rest)) {
			return ty
		}
		return TIdent
	}

	switch s.src[s.start] {
	case 'a':
		return checkKeyword(1, "nd", TAnd)
	case 'c':
		return checkKeyword(1, "lass", TClass)
	case 'e':
		return checkKeyword(1, "lse", TElse)
	case 'f':
		if s.curr-s.start > 1 {
			switch s.src[s.start+1] {
			case 'a':
				return checkKeyword(2, "lse", TFalse)
			case 'o':
				return checkKeyword(2, "r", TFor)
			case 'u':
				return checkKeyword(2, "nction", TFunction)
			}
		}
	case 'i':
		return checkKeyword(1, "f", TIf)
	case 'n':
		return checkKeyword(1, "ull", TNull)
	case 'o':
		return checkKeyword(1, "r", TOr)
	case 'p':
		return checkKeyword(1, "rint", TPrint)
	case 'r':
		return checkKeyword(1, "eturn", TReturn)
	case 's':
		return checkKeyword(1, "uper", TSuper)
	case 't':
		if s.curr-s.start > 1 {
			switch s.src[s.start+1] {
			case 'h':
				return checkKeyword(2, "is", TThis)
			case 'r':
				return checkKeyword(2, "ue", TTrue)
			}
		}
	case 'v':
		return checkKeyword(1, "ar", TVar)
	case 'w':
		return checkKeyword(1, "hile", TWhile)
	}
	return TIdent
}

func (s *Scanner) makeToken(ty TokenType) Token {
	return Token{Type: ty, Line: s.line, Lexeme: string(s.src[s.start:s.curr])}
}

// errorToken produces a synthetic TErr token whose Lexeme carries the
// diagnostic message instead of source text.
func (s *Scanner) errorToken(reason string) Token {
	return Token{Type: TErr, Line: s.line, Lexeme: reason}
}

func (s *Scanner) isAtEnd() bool { return s.curr >= len(s.src) }

func isAlpha(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' }
func isDigit(c rune) bool { return c >= '0' && c <= '9' }

// Package compiler implements TripleS's single-pass Pratt compiler: it
// drives a lexer.Scanner token by token and emits bytecode.Chunk
// instructions as it recognizes each grammar production, with no
// intermediate AST.
package compiler

import (
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/triples-lang/triples/debug"
	e "github.com/triples-lang/triples/errors"
	"github.com/triples-lang/triples/internal/bytecode"
	"github.com/triples-lang/triples/internal/lexer"
	"github.com/triples-lang/triples/internal/value"
)

// Parser holds everything needed for one compilation: the scanner it is
// pulling tokens from, the lookahead pair, and panic-mode recovery state.
// It does not outlive a single Compile call.
type Parser struct {
	*lexer.Scanner
	prev, curr lexer.Token

	chunk *bytecode.Chunk
	table *value.Table

	errors    *multierror.Error
	panicMode bool
}

// Compile lowers src to bytecode against the shared object table (owned
// by the VM that will execute the result, so string literals intern into
// the same heap globals will be looked up from). It returns the
// accumulated compile errors, if any; on error the returned Chunk is
// incomplete and must not be executed.
func Compile(src string, table *value.Table) (*bytecode.Chunk, error) {
	p := &Parser{chunk: bytecode.New(), table: table}
	p.Scanner = lexer.New(src)
	p.advance()

	for !p.match(lexer.TEOF) {
		p.declaration()
	}

	p.endCompiler()
	return p.chunk, p.errors.ErrorOrNil()
}

/* declarations and statements */

func (p *Parser) declaration() {
	switch {
	case p.match(lexer.TVar):
		p.varDeclaration()
	default:
		p.statement()
	}
	if p.panicMode {
		p.synchronize()
	}
}

func (p *Parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	switch {
	case p.match(lexer.TEqual):
		p.expression()
	default:
		p.emitBytes(byte(bytecode.OpNull))
	}
	p.consume(lexer.TSemi, "Expect ';' after variable declaration.")
	p.defineVariable(global)
}

func (p *Parser) statement() {
	switch {
	case p.match(lexer.TPrint):
		p.printStatement()
	default:
		p.expressionStatement()
	}
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(lexer.TSemi, "Expect ';' after value.")
	p.emitBytes(byte(bytecode.OpPrint))
}

func (p *Parser) expressionStatement() {
	p.expression()
	p.consume(lexer.TSemi, "Expect ';' after expression.")
	p.emitBytes(byte(bytecode.OpPop))
}

func (p *Parser) expression() { p.parsePrecedence(PrecAssignment) }

/* prefix and infix handlers */

func (p *Parser) number(_ bool) {
	v, err := strconv.ParseFloat(p.prev.Lexeme, 64)
	if err != nil {
		p.errors = multierror.Append(p.errors, err)
		return
	}
	p.emitConstant(value.Number(v))
}

func (p *Parser) stringLit(_ bool) {
	lexeme := p.prev.Lexeme
	// Strip the surrounding quote characters before interning.
	unquoted := lexeme[1 : len(lexeme)-1]
	p.emitConstant(p.table.InternString(unquoted))
}

func (p *Parser) literal(_ bool) {
	switch p.prev.Type {
	case lexer.TFalse:
		p.emitBytes(byte(bytecode.OpFalse))
	case lexer.TTrue:
		p.emitBytes(byte(bytecode.OpTrue))
	case lexer.TNull:
		p.emitBytes(byte(bytecode.OpNull))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) grouping(_ bool) {
	p.expression()
	p.consume(lexer.TRParen, "Expect ')' after expression.")
}

func (p *Parser) unary(_ bool) {
	op := p.prev.Type
	p.parsePrecedence(PrecUnary)
	switch op {
	case lexer.TBang:
		p.emitBytes(byte(bytecode.OpNot))
	case lexer.TMinus:
		p.emitBytes(byte(bytecode.OpNegate))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) binary(_ bool) {
	op := p.prev.Type
	rule := rules[op]
	p.parsePrecedence(rule.Prec + 1)

	switch op {
	case lexer.TBangEqual:
		p.emitBytes(byte(bytecode.OpNotEqual))
	case lexer.TEqualEqual:
		p.emitBytes(byte(bytecode.OpEqual))
	case lexer.TGreater:
		p.emitBytes(byte(bytecode.OpGreater))
	case lexer.TGreaterEqual:
		p.emitBytes(byte(bytecode.OpGreaterEqual))
	case lexer.TLess:
		p.emitBytes(byte(bytecode.OpLess))
	case lexer.TLessEqual:
		p.emitBytes(byte(bytecode.OpLessEqual))
	case lexer.TPlus:
		p.emitBytes(byte(bytecode.OpAdd))
	case lexer.TMinus:
		p.emitBytes(byte(bytecode.OpSubtract))
	case lexer.TStar:
		p.emitBytes(byte(bytecode.OpMultiply))
	case lexer.TSlash:
		p.emitBytes(byte(bytecode.OpDivide))
	default:
		panic(e.Unreachable)
	}
}

func (p *Parser) variable(canAssign bool) { p.namedVariable(p.prev, canAssign) }

func (p *Parser) namedVariable(name lexer.Token, canAssign bool) {
	arg := p.identifierConstant(name)
	switch {
	case canAssign && p.match(lexer.TEqual):
		p.expression()
		p.emitBytes(byte(bytecode.OpSetGlobal), arg)
	default:
		p.emitBytes(byte(bytecode.OpGetGlobal), arg)
	}
}

/* Pratt dispatch */

// Prec orders binding strength low to high; a production at precedence
// prec only consumes an infix operator whose own precedence is >= prec.
type Prec int

const (
	PrecNone Prec = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(p *Parser, canAssign bool)

type rule struct {
	Prefix, Infix parseFn
	Prec
}

// rules is a static table of {prefix, infix, precedence} indexed by
// token kind — no allocation per lookup. Tokens with no entry (the zero
// value) have no prefix or infix handler at PrecNone, which is exactly
// the "no parse rule" case parsePrecedence reports as a missing
// expression.
var rules = map[lexer.TokenType]rule{
	lexer.TLParen:       {(*Parser).grouping, nil, PrecNone},
	lexer.TMinus:        {(*Parser).unary, (*Parser).binary, PrecTerm},
	lexer.TPlus:         {nil, (*Parser).binary, PrecTerm},
	lexer.TSlash:        {nil, (*Parser).binary, PrecFactor},
	lexer.TStar:         {nil, (*Parser).binary, PrecFactor},
	lexer.TBang:         {(*Parser).unary, nil, PrecNone},
	lexer.TBangEqual:    {nil, (*Parser).binary, PrecEquality},
	lexer.TEqualEqual:   {nil, (*Parser).binary, PrecEquality},
	lexer.TGreater:      {nil, (*Parser).binary, PrecComparison},
	lexer.TGreaterEqual: {nil, (*Parser).binary, PrecComparison},
	lexer.TLess:         {nil, (*Parser).binary, PrecComparison},
	lexer.TLessEqual:    {nil, (*Parser).binary, PrecComparison},
	lexer.TNum:          {(*Parser).number, nil, PrecNone},
	lexer.TStr:          {(*Parser).stringLit, nil, PrecNone},
	lexer.TIdent:        {(*Parser).variable, nil, PrecNone},
	lexer.TFalse:        {(*Parser).literal, nil, PrecNone},
	lexer.TTrue:         {(*Parser).literal, nil, PrecNone},
	lexer.TNull:         {(*Parser).literal, nil, PrecNone},
}

func ruleFor(ty lexer.TokenType) rule { return rules[ty] }

func (p *Parser) parsePrecedence(prec Prec) {
	p.advance()

	prefix := ruleFor(p.prev.Type).Prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := prec <= PrecAssignment
	prefix(p, canAssign)

	for prec <= ruleFor(p.curr.Type).Prec {
		p.advance()
		infix := ruleFor(p.prev.Type).Infix
		if infix == nil {
			panic(e.Unreachable)
		}
		infix(p, canAssign)
	}

	if canAssign && p.match(lexer.TEqual) {
		p.error("Invalid assignment target.")
	}
}

/* variable helpers */

func (p *Parser) parseVariable(errMsg string) byte {
	p.consume(lexer.TIdent, errMsg)
	return p.identifierConstant(p.prev)
}

func (p *Parser) identifierConstant(name lexer.Token) byte {
	return p.makeConstant(p.table.InternString(name.Lexeme))
}

func (p *Parser) defineVariable(global byte) {
	p.emitBytes(byte(bytecode.OpDefineGlobal), global)
}

/* bytecode emission */

func (p *Parser) emitConstant(v value.Value) {
	p.emitBytes(byte(bytecode.OpConstant), p.makeConstant(v))
}

func (p *Parser) makeConstant(v value.Value) byte {
	idx := p.chunk.AddConst(v)
	if idx >= bytecode.MaxConstants {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

func (p *Parser) emitBytes(bs ...byte) {
	for _, b := range bs {
		p.chunk.Write(b, p.prev.Line)
	}
}

func (p *Parser) endCompiler() {
	p.emitBytes(byte(bytecode.OpReturn))
	if debug.DEBUG {
		logrus.Debugln(p.chunk.Disassemble("code"))
	}
}

/* token stream helpers */

func (p *Parser) check(ty lexer.TokenType) bool { return p.curr.Type == ty }

func (p *Parser) advance() {
	p.prev = p.curr
	for {
		p.curr = p.ScanToken()
		if !p.check(lexer.TErr) {
			break
		}
		p.error(p.curr.Lexeme)
	}
}

func (p *Parser) match(ty lexer.TokenType) bool {
	if !p.check(ty) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(ty lexer.TokenType, errMsg string) {
	if p.check(ty) {
		p.advance()
		return
	}
	p.errorAtCurrent(errMsg)
}

/* error reporting and recovery */

func (p *Parser) error(msg string)         { p.errorAt(p.prev, msg) }
func (p *Parser) errorAtCurrent(msg string) { p.errorAt(p.curr, msg) }

func (p *Parser) errorAt(tok lexer.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	var where string
	switch tok.Type {
	case lexer.TEOF:
		where = " at end"
	case lexer.TErr:
		where = ""
	default:
		where = fmt.Sprintf(" at '%s'", tok.Lexeme)
	}

	err := &e.CompilationError{Line: tok.Line, Reason: fmt.Sprintf("Error%s: %s", where, msg)}
	logrus.WithFields(logrus.Fields{"line": tok.Line}).Debugln(err)
	p.errors = multierror.Append(p.errors, err)
}

// synchronize discards tokens until it reaches a likely statement
// boundary, so one syntax error doesn't cascade into a wall of
// follow-on errors for the rest of the declaration.
func (p *Parser) synchronize() {
	p.panicMode = false

	for !p.check(lexer.TEOF) {
		if p.prev.Type == lexer.TSemi {
			return
		}
		switch p.curr.Type {
		case lexer.TClass, lexer.TFunction, lexer.TVar, lexer.TFor,
			lexer.TIf, lexer.TWhile, lexer.TPrint, lexer.TReturn:
			return
		}
		p.advance()
	}
}

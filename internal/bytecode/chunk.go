// Package bytecode defines the compiled representation TripleS programs
// are lowered to: a flat instruction stream, a parallel source-line table,
// and a constant pool. A Chunk is append-only while the compiler is
// writing it and read-only once the VM starts executing it.
package bytecode

import (
	"fmt"
	"math"

	"github.com/triples-lang/triples/internal/value"
)

//go:generate stringer -type=OpCode
type OpCode byte

const (
	OpConstant OpCode = iota
	OpNull
	OpTrue
	OpFalse
	OpPop
	OpDefineGlobal
	OpGetGlobal
	OpSetGlobal
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpPrint
	OpReturn
)

// MaxConstants is the largest number of pool entries a single Chunk can
// hold; constant-pool operands are one byte wide.
const MaxConstants = math.MaxUint8 + 1

// Chunk is a compiled unit of bytecode: code and lines always have equal
// length, and every operand byte following OpConstant/OpDefineGlobal/
// OpGetGlobal/OpSetGlobal is a valid index into consts.
type Chunk struct {
	code   []byte
	lines  []int
	consts []value.Value
}

func New() *Chunk { return &Chunk{} }

// Write appends one instruction or operand byte, tagged with the source
// line it was compiled from.
func (c *Chunk) Write(b byte, line int) {
	c.code = append(c.code, b)
	c.lines = append(c.lines, line)
}

// AddConst appends val to the constant pool and returns its index. The
// caller is responsible for checking the MaxConstants bound before
// encoding the returned index as a one-byte operand.
func (c *Chunk) AddConst(val value.Value) int {
	idx := len(c.consts)
	c.consts = append(c.consts, val)
	return idx
}

func (c *Chunk) Len() int { return len(c.code) }

func (c *Chunk) At(offset int) byte { return c.code[offset] }

func (c *Chunk) Const(idx byte) value.Value { return c.consts[idx] }

func (c *Chunk) Line(offset int) int { return c.lines[offset] }

// DisassembleInst renders one instruction at offset in clox-style
// debug-trace format, returning the rendered text and the offset of the
// following instruction.
func (c *Chunk) DisassembleInst(offset int) (res string, next int) {
	sprintf := func(format string, a ...any) { res += fmt.Sprintf(format, a...) }

	sprintf("%04d ", offset)
	if offset > 0 && c.lines[offset] == c.lines[offset-1] {
		sprintf("   | ")
	} else {
		sprintf("%4d ", c.lines[offset])
	}

	switch inst := OpCode(c.code[offset]); inst {
	case OpConstant, OpDefineGlobal, OpGetGlobal, OpSetGlobal:
		idx := c.code[offset+1]
		sprintf("%-16s %4d '%s'", inst, idx, c.consts[idx])
		return res, offset + 2
	default:
		sprintf("%s", inst)
		return res, offset + 1
	}
}

// Disassemble renders every instruction in the chunk under a banner, the
// format the teacher's debug-tracing used for endCompiler() dumps.
func (c *Chunk) Disassemble(name string) (res string) {
	res = fmt.Sprintf("== %s ==\n", name)
	for i := 0; i < len(c.code); {
		var delta string
		delta, i = c.DisassembleInst(i)
		res += delta + "\n"
	}
	return res
}

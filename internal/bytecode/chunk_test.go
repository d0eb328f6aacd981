package bytecode_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/triples-lang/triples/internal/bytecode"
	"github.com/triples-lang/triples/internal/value"
)

func TestWriteKeepsCodeAndLinesInStep(t *testing.T) {
	c := bytecode.New()
	c.Write(byte(bytecode.OpTrue), 1)
	c.Write(byte(bytecode.OpPop), 1)
	c.Write(byte(bytecode.OpReturn), 2)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 1, c.Line(0))
	assert.Equal(t, 2, c.Line(2))
}

func TestAddConstReturnsSequentialIndex(t *testing.T) {
	c := bytecode.New()
	i0 := c.AddConst(value.Number(1))
	i1 := c.AddConst(value.Number(2))
	assert.Equal(t, 0, i0)
	assert.Equal(t, 1, i1)
	assert.Equal(t, value.Number(2), c.Const(byte(i1)))
}

func TestDisassembleRendersConstantOperand(t *testing.T) {
	c := bytecode.New()
	idx := c.AddConst(value.Number(1.2))
	c.Write(byte(bytecode.OpConstant), 7)
	c.Write(byte(idx), 7)
	c.Write(byte(bytecode.OpReturn), 7)

	out := c.Disassemble("test")
	assert.True(t, strings.Contains(out, "OpConstant"))
	assert.True(t, strings.Contains(out, "1.2"))
	assert.True(t, strings.Contains(out, "OpReturn"))
}

func TestDisassembleOmitsRepeatedLineNumber(t *testing.T) {
	c := bytecode.New()
	c.Write(byte(bytecode.OpTrue), 3)
	c.Write(byte(bytecode.OpPop), 3)

	out := c.Disassemble("test")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.True(t, strings.Contains(lines[1], "   3 "))
	assert.True(t, strings.Contains(lines[2], "   | "))
}

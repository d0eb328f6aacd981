package bytecode

import "github.com/alecthomas/repr"

// Repr renders the chunk's constant pool with alecthomas/repr's structural
// pretty-printer. This is a diagnostic alternate to Disassemble: the
// mnemonic dump shows control flow through the code, Repr shows the shape
// of the constant pool's values (handy for inspecting interned strings
// and nested object graphs once the interpreter grows past scalars).
func (c *Chunk) Repr() string {
	return repr.String(c.consts, repr.Indent("  "))
}

package value

import "github.com/josharian/intern"

// Handle identifies one heap object owned by a Table. It is a
// non-owning reference: Values copy Handles freely, but only the Table
// that minted a Handle can resolve it.
type Handle int

type object struct {
	str string
}

// Table is the VM-owned heap: every String object created during
// compilation (literals, identifier names) or execution (concatenation
// results) lives here until the owning VM is discarded. The original
// interpreter links these into a process-wide intrusive chain for
// manual teardown; Go's collector already reclaims the Table itself once
// nothing references it, so the chain degenerates to a plain owned
// slice, with a content-keyed map doing the interning.
type Table struct {
	objects []object
	strings map[string]Handle
}

func NewTable() *Table {
	return &Table{strings: make(map[string]Handle)}
}

// InternString returns the Value for s, reusing an existing object if
// one with equal content is already interned. This is the "copy" path
// for literals and identifier names: when s is new, its canonicalized
// form is stored in the table as the object's content.
func (t *Table) InternString(s string) Obj {
	s = intern.String(s)
	if h, ok := t.strings[s]; ok {
		return Obj{Handle: h, Preview: s}
	}
	h := Handle(len(t.objects))
	t.objects = append(t.objects, object{str: s})
	t.strings[s] = h
	return Obj{Handle: h, Preview: s}
}

// Concat builds the concatenation of a's and b's string content and
// interns the result. This is the "takeString" path: the freshly
// assembled buffer is handed straight to InternString rather than
// copied a second time.
func (t *Table) Concat(a, b Obj) Obj {
	return t.InternString(t.objects[a.Handle].str + t.objects[b.Handle].str)
}

func (t *Table) StringAt(h Handle) string { return t.objects[h].str }

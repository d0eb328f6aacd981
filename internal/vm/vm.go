// Package vm implements the stack-based evaluator that executes a
// compiled bytecode.Chunk: the tagged-value stack machine, the globals
// environment, and the string/object table shared with the compiler.
package vm

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	e "github.com/triples-lang/triples/errors"
	"github.com/triples-lang/triples/internal/bytecode"
	"github.com/triples-lang/triples/internal/compiler"
	"github.com/triples-lang/triples/internal/value"
)

// StackMax bounds the VM's fixed-depth operand stack. The original
// leaves overflow/underflow undefined; this rewrite detects both and
// reports them as runtime errors instead of corrupting memory.
const StackMax = 256

// VM owns one evaluation session: its operand stack, instruction
// pointer, globals environment, and the heap Table backing every
// interned string. Unlike the source's process-wide singleton, a VM
// here is an explicit, owned value — nothing in the language semantics
// depends on there being exactly one.
type VM struct {
	chunk *bytecode.Chunk
	ip    int

	stack    [StackMax]value.Value
	stackTop int

	table   *value.Table
	globals map[value.Handle]value.Value
}

// New returns a VM ready to Interpret source. Its table and globals
// persist across calls, so a REPL driving the same VM line by line sees
// earlier declarations and interned strings.
func New() *VM {
	return &VM{
		table:   value.NewTable(),
		globals: make(map[value.Handle]value.Value),
	}
}

// Interpret compiles src against the VM's shared table and, if
// compilation succeeds, executes the resulting chunk. A compile error
// leaves the VM's globals untouched and runs no bytecode; a runtime
// error may have already produced print output before it's returned.
func (vm *VM) Interpret(src string) error {
	chunk, err := compiler.Compile(src, vm.table)
	if err != nil {
		return err
	}

	vm.chunk = chunk
	vm.ip = 0
	vm.stackTop = 0
	return vm.run()
}

func (vm *VM) push(v value.Value) error {
	if vm.stackTop >= StackMax {
		return vm.runtimeError("Stack overflow.")
	}
	vm.stack[vm.stackTop] = v
	vm.stackTop++
	return nil
}

func (vm *VM) pop() (value.Value, error) {
	if vm.stackTop <= 0 {
		return nil, vm.runtimeError("Stack underflow.")
	}
	vm.stackTop--
	return vm.stack[vm.stackTop], nil
}

func (vm *VM) peek(distance int) value.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) readByte() byte {
	b := vm.chunk.At(vm.ip)
	vm.ip++
	return b
}

func (vm *VM) readConstant() value.Value {
	return vm.chunk.Const(vm.readByte())
}

func (vm *VM) run() error {
	for {
		if logrus.IsLevelEnabled(logrus.TraceLevel) {
			logrus.Traceln(vm.stackTrace())
			inst, _ := vm.chunk.DisassembleInst(vm.ip)
			logrus.Traceln(inst)
		}

		op := bytecode.OpCode(vm.readByte())
		if op == bytecode.OpReturn {
			return nil
		}
		if err := vm.dispatch(op); err != nil {
			return err
		}
	}
}

func (vm *VM) dispatch(op bytecode.OpCode) error {
	switch op {
	case bytecode.OpConstant:
		return vm.push(vm.readConstant())

	case bytecode.OpNull:
		return vm.push(value.Null{})
	case bytecode.OpTrue:
		return vm.push(value.Bool(true))
	case bytecode.OpFalse:
		return vm.push(value.Bool(false))

	case bytecode.OpPop:
		_, err := vm.pop()
		return err

	case bytecode.OpDefineGlobal:
		name := value.AsObj(vm.readConstant())
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.globals[name.Handle] = v
		return nil

	case bytecode.OpGetGlobal:
		name := value.AsObj(vm.readConstant())
		v, ok := vm.globals[name.Handle]
		if !ok {
			return vm.runtimeError("Undefined variable '%s'", name.Preview)
		}
		return vm.push(v)

	case bytecode.OpSetGlobal:
		name := value.AsObj(vm.readConstant())
		if _, ok := vm.globals[name.Handle]; !ok {
			return vm.runtimeError("Undefined variable '%s'", name.Preview)
		}
		vm.globals[name.Handle] = vm.peek(0)
		return nil

	case bytecode.OpEqual:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.push(value.Bool(value.Equal(a, b)))

	case bytecode.OpNotEqual:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.push(value.Bool(!value.Equal(a, b)))

	case bytecode.OpGreater:
		return vm.numericBinary(value.Greater)
	case bytecode.OpGreaterEqual:
		return vm.numericBinary(value.GreaterEqual)
	case bytecode.OpLess:
		return vm.numericBinary(value.Less)
	case bytecode.OpLessEqual:
		return vm.numericBinary(value.LessEqual)

	case bytecode.OpAdd:
		return vm.add()
	case bytecode.OpSubtract:
		return vm.numericBinary(value.Sub)
	case bytecode.OpMultiply:
		return vm.numericBinary(value.Mul)
	case bytecode.OpDivide:
		return vm.numericBinary(value.Div)

	case bytecode.OpNot:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.push(value.Bool(!value.Truthy(v)))

	case bytecode.OpNegate:
		if !value.IsNumber(vm.peek(0)) {
			return vm.runtimeError("Operand must be a number.")
		}
		v, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.push(value.Negate(v))

	case bytecode.OpPrint:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		fmt.Println(v.String())
		return nil

	default:
		return vm.runtimeError("unknown opcode '%d'", op)
	}
}

// numericBinary implements the peek-before-pop discipline spec.md
// requires: both operands must be Number, checked while still on the
// stack, so a type-mismatch error can be raised before either is popped.
func (vm *VM) numericBinary(op func(a, b value.Value) value.Value) error {
	if !value.IsNumber(vm.peek(0)) || !value.IsNumber(vm.peek(1)) {
		return vm.runtimeError("Operands must be numbers.")
	}
	b, err := vm.pop()
	if err != nil {
		return err
	}
	a, err := vm.pop()
	if err != nil {
		return err
	}
	return vm.push(op(a, b))
}

func (vm *VM) add() error {
	switch {
	case value.IsObj(vm.peek(0)) && value.IsObj(vm.peek(1)):
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.push(vm.table.Concat(value.AsObj(a), value.AsObj(b)))
	case value.IsNumber(vm.peek(0)) && value.IsNumber(vm.peek(1)):
		return vm.numericBinary(value.Add)
	default:
		return vm.runtimeError("Operands must be either strings or numbers.")
	}
}

func (vm *VM) runtimeError(format string, a ...any) error {
	line := 0
	if vm.ip-1 >= 0 && vm.ip-1 < vm.chunk.Len() {
		line = vm.chunk.Line(vm.ip - 1)
	}
	err := &e.RuntimeError{Line: line, Reason: fmt.Sprintf(format, a...)}
	fmt.Fprintln(os.Stderr, err)
	vm.stackTop = 0
	return err
}

func (vm *VM) stackTrace() string {
	res := "          "
	for i := 0; i < vm.stackTop; i++ {
		res += fmt.Sprintf("[ %s ]", vm.stack[i].String())
	}
	return res
}

package value

// The arithmetic and comparison helpers below all assume the caller has
// already checked both operands are Number (the VM does this via peek
// before popping, so a runtime error can still reference a consistent
// stack). They mirror the teacher's VAdd/VSub/VMul/VDiv/VGreater/VLess
// free-function shape, narrowed to the one numeric case this language's
// arithmetic actually needs once string concatenation is split out into
// Table.Concat.

func Add(a, b Value) Value { return Number(a.(Number) + b.(Number)) }
func Sub(a, b Value) Value { return Number(a.(Number) - b.(Number)) }
func Mul(a, b Value) Value { return Number(a.(Number) * b.(Number)) }
func Div(a, b Value) Value { return Number(a.(Number) / b.(Number)) }

func Greater(a, b Value) Value      { return Bool(a.(Number) > b.(Number)) }
func GreaterEqual(a, b Value) Value { return Bool(a.(Number) >= b.(Number)) }
func Less(a, b Value) Value         { return Bool(a.(Number) < b.(Number)) }
func LessEqual(a, b Value) Value    { return Bool(a.(Number) <= b.(Number)) }

func Negate(a Value) Value { return -a.(Number) }

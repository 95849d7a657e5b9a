package intcode

import (
	"fmt"
	"strings"
)

// Op represents an IntCode instruction cell: the opcode in its two low
// decimal digits and one parameter mode per higher digit.
type Op int64

const (
	ADD Op = 1
	MUL Op = 2
	IN  Op = 3
	OUT Op = 4
	JNZ Op = 5
	JZ  Op = 6
	LT  Op = 7
	EQ  Op = 8
	ARB Op = 9
	HLT Op = 99
)

var opStrings = map[Op]string{
	ADD: "ADD",
	MUL: "MUL",
	IN:  "IN",
	OUT: "OUT",
	JNZ: "JNZ",
	JZ:  "JZ",
	LT:  "LT",
	EQ:  "EQ",
	ARB: "ARB",
	HLT: "HLT",
}

// Code returns the opcode without its parameter modes.
func (op Op) Code() Op { return op % 100 }

// Valid reports whether op has a known opcode.
func (op Op) Valid() bool {
	_, ok := opStrings[op.Code()]
	return ok
}

// Params returns the number of parameters taken by the opcode,
// including the destination, if any.
func (op Op) Params() int {
	switch op.Code() {
	case ADD, MUL, LT, EQ:
		return 3
	case JNZ, JZ:
		return 2
	case IN, OUT, ARB:
		return 1
	}
	return 0
}

// Size returns the number of cells occupied by the instruction.
func (op Op) Size() int64 { return int64(op.Params()) + 1 }

// Mode returns the addressing mode of the nth parameter, counting from 1.
func (op Op) Mode(n int) Mode {
	d := int64(op) / 100
	for ; n > 1; n-- {
		d /= 10
	}
	return Mode(d % 10)
}

func (op Op) String() string {
	if s, ok := opStrings[op.Code()]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", int64(op))
}

// Mode is a parameter addressing mode.
type Mode int64

const (
	Position  Mode = 0
	Immediate Mode = 1
	Relative  Mode = 2
)

func (m Mode) Valid() bool { return m == Position || m == Immediate || m == Relative }

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int64(m))
}

// Instr is a decoded instruction.
type Instr struct {
	Addr int64
	Op   Op
	Args []int64 // raw parameter cells
}

// Disassemble decodes the instruction at addr. It returns a *Fault if the
// cell at addr does not hold a valid instruction.
func (m *Machine) Disassemble(addr int64) (Instr, error) {
	in := Instr{Addr: addr, Op: Op(m.Peek(addr))}
	if addr < 0 {
		return in, &Fault{FaultCode: BadAddress, Op: in.Op, Addr: addr}
	}
	if !in.Op.Valid() {
		return in, &Fault{FaultCode: UnknownOpcode, Op: in.Op, Addr: addr}
	}
	for n := 1; n <= in.Op.Params(); n++ {
		if !in.Op.Mode(n).Valid() {
			return in, &Fault{FaultCode: BadMode, Op: in.Op, Addr: addr}
		}
		in.Args = append(in.Args, m.Peek(addr+int64(n)))
	}
	return in, nil
}

// String formats the instruction with position parameters as @addr,
// immediate parameters as #value and relative parameters as rb+offset.
func (in Instr) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%.4d %s", in.Addr, in.Op)
	for i, v := range in.Args {
		b.WriteByte(' ')
		switch in.Op.Mode(i + 1) {
		case Position:
			fmt.Fprintf(&b, "@%d", v)
		case Immediate:
			fmt.Fprintf(&b, "#%d", v)
		case Relative:
			fmt.Fprintf(&b, "rb%+d", v)
		}
	}
	return b.String()
}

package intcode

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason tells why execution returned control to the caller.
type Reason int

const (
	NeedsInput     Reason = iota + 1 // input queue empty at an IN instruction
	ProducedOutput                   // OUT instruction executed
	Halted                           // HLT executed, now or earlier
	Errored                          // the machine faulted, now or earlier
)

func (r Reason) String() string {
	switch r {
	case NeedsInput:
		return "needs input"
	case ProducedOutput:
		return "produced output"
	case Halted:
		return "halted"
	case Errored:
		return "errored"
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// Interrupt describes a suspension of execution.
type Interrupt struct {
	Reason Reason
	Value  int64 // the emitted value if Reason is ProducedOutput
}

func (i Interrupt) String() string {
	if i.Reason == ProducedOutput {
		return fmt.Sprintf("%v %d", i.Reason, i.Value)
	}
	return i.Reason.String()
}

// Step executes the instruction at m.IP and reports the interrupt it
// caused, if any. Once the machine has halted or faulted, Step does
// nothing and keeps reporting Halted or Errored.
func (m *Machine) Step() (it Interrupt, ok bool) {
	switch {
	case m.fault != nil:
		return Interrupt{Reason: Errored}, true
	case m.halted:
		return Interrupt{Reason: Halted}, true
	}

	var (
		ip = m.IP
		op Op
	)
	defer func() {
		if e := recover(); e != nil {
			code, isCode := e.(FaultCode)
			if !isCode {
				panic(e)
			}
			m.IP = ip
			m.fault = &Fault{FaultCode: code, Op: op, Addr: ip}
			it, ok = Interrupt{Reason: Errored}, true
		}
	}()

	op = Op(m.load(ip))

	switch op.Code() {
	case ADD:
		a, b := m.arg(op, 1), m.arg(op, 2)
		m.store(m.dest(op, 3), a+b)
	case MUL:
		a, b := m.arg(op, 1), m.arg(op, 2)
		m.store(m.dest(op, 3), a*b)
	case IN:
		addr := m.dest(op, 1)
		if len(m.input) == 0 {
			return Interrupt{Reason: NeedsInput}, true
		}
		m.store(addr, m.input[0])
		m.input = m.input[1:]
	case OUT:
		v := m.arg(op, 1)
		m.output = append(m.output, v)
		m.IP += op.Size()
		return Interrupt{Reason: ProducedOutput, Value: v}, true
	case JNZ, JZ:
		a, b := m.arg(op, 1), m.arg(op, 2)
		if (a != 0) == (op.Code() == JNZ) {
			if b < 0 {
				panic(BadAddress)
			}
			m.IP = b
			return Interrupt{}, false
		}
	case LT:
		a, b := m.arg(op, 1), m.arg(op, 2)
		m.store(m.dest(op, 3), boolInt(a < b))
	case EQ:
		a, b := m.arg(op, 1), m.arg(op, 2)
		m.store(m.dest(op, 3), boolInt(a == b))
	case ARB:
		m.Base += m.arg(op, 1)
	case HLT:
		m.halted = true
		return Interrupt{Reason: Halted}, true
	default:
		panic(UnknownOpcode)
	}

	m.IP += op.Size()
	return Interrupt{}, false
}

// RunUntilInterrupt executes instructions until one of them causes an
// interrupt, and returns it.
func (m *Machine) RunUntilInterrupt() Interrupt {
	for {
		if it, ok := m.Step(); ok {
			return it
		}
	}
}

// RunSteps executes at most n instructions, stopping early at an interrupt.
// It reports the interrupt, if any.
func (m *Machine) RunSteps(n int) (Interrupt, bool) {
	for ; n > 0; n-- {
		if it, ok := m.Step(); ok {
			return it, true
		}
	}
	return Interrupt{}, false
}

// RunUntilComplete runs the program until it halts, in which case it returns
// nil, or faults, in which case it returns the fault. Output is collected
// along the way. All input must have been pushed beforehand: if the program
// asks for more, RunUntilComplete returns a *Fault wrapping ErrInputStarved
// and leaves the machine ready to resume once input is pushed.
func (m *Machine) RunUntilComplete() error {
	for {
		switch it := m.RunUntilInterrupt(); it.Reason {
		case ProducedOutput:
		case NeedsInput:
			return &Fault{FaultCode: InputStarved, Op: Op(m.Peek(m.IP)), Addr: m.IP}
		case Halted:
			return nil
		case Errored:
			return m.fault
		}
	}
}

// arg returns the value of the nth parameter of op.
func (m *Machine) arg(op Op, n int64) int64 {
	v := m.load(m.IP + n)
	switch op.Mode(int(n)) {
	case Position:
		return m.load(v)
	case Immediate:
		return v
	case Relative:
		return m.load(m.Base + v)
	}
	panic(BadMode)
}

// dest returns the address the nth parameter of op writes to.
func (m *Machine) dest(op Op, n int64) int64 {
	v := m.load(m.IP + n)
	switch op.Mode(int(n)) {
	case Position:
		return v
	case Immediate:
		panic(ImmediateWrite)
	case Relative:
		return m.Base + v
	}
	panic(BadMode)
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

var (
	ErrUnknownOpcode  = errors.New("unknown opcode")
	ErrBadMode        = errors.New("invalid parameter mode")
	ErrImmediateWrite = errors.New("write through immediate parameter")
	ErrBadAddress     = errors.New("negative address")
	ErrInputStarved   = errors.New("input starved")
)

// FaultCode signifies the condition that stopped execution.
type FaultCode byte

const (
	UnknownOpcode FaultCode = iota + 1
	BadMode
	ImmediateWrite
	BadAddress

	// InputStarved is only reported by RunUntilComplete. It does not
	// stop the machine for good: pushing input and resuming is allowed.
	InputStarved
)

func (c FaultCode) err() error {
	switch c {
	case UnknownOpcode:
		return ErrUnknownOpcode
	case BadMode:
		return ErrBadMode
	case ImmediateWrite:
		return ErrImmediateWrite
	case BadAddress:
		return ErrBadAddress
	case InputStarved:
		return ErrInputStarved
	}
	return nil
}

func (c FaultCode) String() string {
	if err := c.err(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("unknown (%d)", byte(c))
}

// Fault is the error describing why a Machine stopped. Apart from
// InputStarved, a fault is permanent: the machine will not execute again.
type Fault struct {
	FaultCode
	Op   Op
	Addr int64
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s executing %d (%s) at %d", f.FaultCode, int64(f.Op), f.Op, f.Addr)
}

// Unwrap returns the sentinel error matching f.FaultCode, so that callers
// can test faults with errors.Is.
func (f *Fault) Unwrap() error { return f.FaultCode.err() }

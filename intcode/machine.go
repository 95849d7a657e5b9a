// Package intcode provides an implementation of the IntCode computer,
// called Machine, that can be used to execute IntCode programs.
//
// A Machine never blocks. Execution stops and control returns to the caller
// whenever the program needs input that has not been pushed yet, emits an
// output value, halts or faults. The caller may then push more input and
// resume; the machine picks up exactly where it left off.
package intcode

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// denseLimit is the size past which memory is no longer grown
// contiguously. Cells at or above it live in a sparse map.
const denseLimit = 1 << 24

// Machine is an IntCode computer.
type Machine struct {
	Mem  []int64 // grown on demand by writes beyond its end, up to denseLimit
	IP   int64
	Base int64 // relative base

	high   map[int64]int64 // cells at or above denseLimit
	input  []int64
	output []int64
	halted bool
	fault  *Fault
}

// WithInput returns a Machine whose memory is a copy of mem and whose input
// queue holds the given values.
func WithInput(mem []int64, input ...int64) *Machine {
	return &Machine{
		Mem:   slices.Clone(mem),
		input: slices.Clone(input),
	}
}

// Clone returns an independent copy of m, including its pending input, its
// output log and its halt or fault state.
func (m *Machine) Clone() *Machine {
	c := *m
	c.Mem = slices.Clone(m.Mem)
	c.high = maps.Clone(m.high)
	c.input = slices.Clone(m.input)
	c.output = slices.Clone(m.output)
	if m.fault != nil {
		f := *m.fault
		c.fault = &f
	}
	return &c
}

// Push appends values to the input queue.
func (m *Machine) Push(v ...int64) {
	m.input = append(m.input, v...)
}

// PushString pushes the character codes of s.
func (m *Machine) PushString(s string) {
	for _, r := range s {
		m.input = append(m.input, int64(r))
	}
}

// Pending reports the number of queued input values not yet consumed.
func (m *Machine) Pending() int { return len(m.input) }

// Output returns a copy of every value the program has emitted so far.
func (m *Machine) Output() []int64 { return slices.Clone(m.output) }

// LastOutput returns the most recently emitted value, and false if the
// program has not emitted anything yet.
func (m *Machine) LastOutput() (int64, bool) {
	if len(m.output) == 0 {
		return 0, false
	}
	return m.output[len(m.output)-1], true
}

// Halted reports whether the program has executed a halt instruction.
func (m *Machine) Halted() bool { return m.halted }

// Err returns the fault that stopped the machine, or nil.
func (m *Machine) Err() error {
	if m.fault == nil {
		return nil
	}
	return m.fault
}

// Peek returns the value at addr. Addresses past the end of memory read as
// zero, as they do for the program.
func (m *Machine) Peek(addr int64) int64 {
	if addr < 0 {
		return 0
	}
	return m.load(addr)
}

// Poke sets the value at addr, growing memory if necessary.
// It panics if addr is negative.
func (m *Machine) Poke(addr, v int64) {
	if addr < 0 {
		panic("intcode: Poke at negative address")
	}
	m.store(addr, v)
}

func (m *Machine) load(addr int64) int64 {
	if addr < 0 {
		panic(BadAddress)
	}
	if addr >= int64(len(m.Mem)) {
		return m.high[addr]
	}
	return m.Mem[addr]
}

func (m *Machine) store(addr, v int64) {
	if addr < 0 {
		panic(BadAddress)
	}
	if addr >= denseLimit && addr >= int64(len(m.Mem)) {
		if m.high == nil {
			m.high = make(map[int64]int64)
		}
		m.high[addr] = v
		return
	}
	if n := addr + 1 - int64(len(m.Mem)); n > 0 {
		m.Mem = append(m.Mem, make([]int64, n)...)
	}
	m.Mem[addr] = v
}

// String returns the contiguous memory image in program text form. Cells
// at or above denseLimit are not included.
func (m *Machine) String() string {
	var b strings.Builder
	for i, v := range m.Mem {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(v, 10))
	}
	return b.String()
}

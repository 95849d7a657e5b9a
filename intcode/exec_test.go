package intcode

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"testing"
)

func TestExec(t *testing.T) {
	c := newExecTestCase
	for i, c := range []*execTestCase{
		c(1, 5, 6, 7, 0, 10, 20, 0).want().mem(7, 30),
		c(1101, 3, 4, 5, 0, 0).want().mem(5, 7),
		c(1101, -3, 4, 5, 0, 0).want().mem(5, 1),
		c(2201, 1, 2, 7, 0, 7, 8, 0).base(4).want().mem(7, 15),
		c(21101, 3, 4, 1).base(10).want().mem(11, 7),

		c(1002, 4, 3, 4, 33).want().mem(4, 99),
		c(1102, -3, 7, 4, 0).want().mem(4, -21),
		c(1102, 34915192, 34915192, 4, 0).want().mem(4, 1219070632396864),

		c(3, 5, 99, 0, 0, 0).input(42).want().mem(5, 42),
		c(3, 3, 99, 0).input(1, 2).want().mem(3, 1).input(2),
		c(3, 5, 99).want().ip(0).interrupt(Interrupt{Reason: NeedsInput}),
		c(203, -1, 99).base(5).input(8).want().mem(4, 8),

		c(4, 2, 77).want().out(77).interrupt(Interrupt{Reason: ProducedOutput, Value: 77}),
		c(104, -5).want().out(-5).interrupt(Interrupt{Reason: ProducedOutput, Value: -5}),
		c(204, 1, 9).base(1).want().out(9).interrupt(Interrupt{Reason: ProducedOutput, Value: 9}),
		c(104, 1125899906842624).want().out(1125899906842624).
			interrupt(Interrupt{Reason: ProducedOutput, Value: 1125899906842624}),

		c(1105, 1, 9).want().ip(9),
		c(1105, 0, 9),
		c(1106, 0, 7).want().ip(7),
		c(1106, 5, 7),
		c(6, 3, 4, 0, 12).want().ip(12),
		c(2205, 1, 2, 5, 12).base(2).want().ip(12),

		c(1107, 1, 2, 4, 9).want().mem(4, 1),
		c(1107, 2, 2, 4, 9).want().mem(4, 0),
		c(1107, -2, 2, 4, 9).want().mem(4, 1),
		c(1108, 5, 5, 4, 9).want().mem(4, 1),
		c(8, 5, 6, 4, 0, 7, 8).want().mem(4, 0),

		c(1101, 1, 1, 9000000000000000000).want().mem(9000000000000000000, 2),
		c(21101, 1, 1, 0).base(1<<62).want().mem(1<<62, 2),
		c(1101, 2, 3, denseLimit).want().mem(denseLimit, 5),
		c(1, denseLimit, 4, 0, 3).mem(denseLimit, 7).want().mem(0, 10),

		c(109, 19).base(2000).want().base(2019),
		c(209, 1, -7).base(1).want().base(-6),

		c(99).want().ip(0).halted().interrupt(Interrupt{Reason: Halted}),

		c(77).want().ip(0).fault(UnknownOpcode),
		c(-1).want().ip(0).fault(UnknownOpcode),
		c(11101, 1, 2, 3).want().ip(0).fault(ImmediateWrite),
		c(103, 0, 99).input(1).want().ip(0).fault(ImmediateWrite).input(1),
		c(103, 0, 99).want().ip(0).fault(ImmediateWrite),
		c(301, 0, 0, 0).want().ip(0).fault(BadMode),
		c(1, -1, 0, 0).want().ip(0).fault(BadAddress),
		c(1105, 1, -4).want().ip(0).fault(BadAddress),
		c(21101, 1, 1, 0).base(-5).want().ip(0).fault(BadAddress),
	} {
		t.Run(fmt.Sprintf("%s_%d", Op(c.m.Mem[0]), i), func(t *testing.T) {
			it, ok := c.m.Step()
			if g, w := it, c.it; g != w {
				t.Errorf("interrupt is %v, want %v", g, w)
			}
			if g, w := ok, c.it.Reason != 0; g != w {
				t.Errorf("interrupted is %v, want %v", g, w)
			}
			if g, w := c.m.Mem, c.w.Mem; !slices.Equal(g, w) {
				for i := 0; i < len(g) || i < len(w); i++ {
					if i >= len(g) || i >= len(w) {
						t.Errorf("memory size is %d, want %d", len(g), len(w))
						break
					}
					if g[i] != w[i] {
						t.Errorf("memory[%d] = %d, want %d", i, g[i], w[i])
					}
				}
			}
			if g, w := c.m.high, c.w.high; !maps.Equal(g, w) {
				t.Errorf("sparse memory is %v, want %v", g, w)
			}
			if g, w := c.m.IP, c.w.IP; g != w {
				t.Errorf("IP is %d, want %d", g, w)
			}
			if g, w := c.m.Base, c.w.Base; g != w {
				t.Errorf("relative base is %d, want %d", g, w)
			}
			if g, w := c.m.input, c.w.input; !slices.Equal(g, w) {
				t.Errorf("pending input is %v, want %v", g, w)
			}
			if g, w := c.m.output, c.w.output; !slices.Equal(g, w) {
				t.Errorf("output is %v, want %v", g, w)
			}
			if g, w := c.m.Halted(), c.w.halted; g != w {
				t.Errorf("halted is %v, want %v", g, w)
			}
			if c.code == 0 {
				if err := c.m.Err(); err != nil {
					t.Errorf("got fault %v, want none", err)
				}
				return
			}
			var f *Fault
			if !errors.As(c.m.Err(), &f) {
				t.Fatalf("got error %v, want fault %v", c.m.Err(), c.code)
			}
			want := Fault{FaultCode: c.code, Op: Op(c.w.Mem[0]), Addr: 0}
			if *f != want {
				t.Errorf("got fault %v, want %v", f, &want)
			}
			if it, _ := c.m.Step(); it.Reason != Errored {
				t.Errorf("step after fault returned %v, want %v", it, Errored)
			}
		})
	}
}

type execTestCase struct {
	m, w *Machine
	it   Interrupt
	code FaultCode
	set  *Machine
}

func newExecTestCase(cells ...int64) *execTestCase {
	c := &execTestCase{}
	c.m = WithInput(cells)
	c.w = WithInput(cells)
	c.w.IP = Op(cells[0]).Size()
	c.set = c.m
	return c
}

// mem sets memory cells. Before want it sets them on both machines.
func (c *execTestCase) mem(addr int64, cells ...int64) *execTestCase {
	for i, v := range cells {
		c.set.store(addr+int64(i), v)
		if c.set == c.m {
			c.w.store(addr+int64(i), v)
		}
	}
	return c
}

// base sets the relative base. Before want it sets it on both machines.
func (c *execTestCase) base(b int64) *execTestCase {
	c.set.Base = b
	if c.set == c.m {
		c.w.Base = b
	}
	return c
}

func (c *execTestCase) input(v ...int64) *execTestCase {
	c.set.input = v
	return c
}

func (c *execTestCase) out(v ...int64) *execTestCase {
	c.set.output = v
	return c
}

func (c *execTestCase) ip(addr int64) *execTestCase {
	c.set.IP = addr
	return c
}

func (c *execTestCase) halted() *execTestCase {
	c.set.halted = true
	return c
}

func (c *execTestCase) want() *execTestCase {
	c.set = c.w
	return c
}

func (c *execTestCase) interrupt(it Interrupt) *execTestCase {
	c.it = it
	return c
}

func (c *execTestCase) fault(code FaultCode) *execTestCase {
	c.code = code
	c.it = Interrupt{Reason: Errored}
	return c
}

package intcode

import (
	"errors"
	"strconv"
	"testing"
)

func TestOpDecode(t *testing.T) {
	for _, c := range []struct {
		op     Op
		code   Op
		modes  [3]Mode
		params int
	}{
		{1, ADD, [3]Mode{}, 3},
		{1002, MUL, [3]Mode{Position, Immediate, Position}, 3},
		{21107, LT, [3]Mode{Immediate, Immediate, Relative}, 3},
		{203, IN, [3]Mode{Relative}, 1},
		{104, OUT, [3]Mode{Immediate}, 1},
		{1205, JNZ, [3]Mode{Relative, Immediate}, 2},
		{6, JZ, [3]Mode{}, 2},
		{20008, EQ, [3]Mode{Position, Position, Relative}, 3},
		{109, ARB, [3]Mode{Immediate}, 1},
		{99, HLT, [3]Mode{}, 0},
	} {
		if g := c.op.Code(); g != c.code {
			t.Errorf("Op(%d).Code() = %v, want %v", c.op, g, c.code)
		}
		if !c.op.Valid() {
			t.Errorf("Op(%d) is not valid", c.op)
		}
		if g := c.op.Params(); g != c.params {
			t.Errorf("Op(%d).Params() = %d, want %d", c.op, g, c.params)
		}
		for i, w := range c.modes {
			if g := c.op.Mode(i + 1); g != w {
				t.Errorf("Op(%d).Mode(%d) = %v, want %v", c.op, i+1, g, w)
			}
		}
	}
}

// Check that there are string versions for every valid opcode, and that
// unknown opcodes print their raw value.
func TestOpString(t *testing.T) {
	for code := Op(0); code < 100; code++ {
		g := code.String()
		if code.Valid() {
			if g == "" || g[0] == 'o' {
				t.Errorf("Op(%d).String() returned %q", code, g)
			}
			if g2 := (code + 1100).String(); g2 != g {
				t.Errorf("Op(%d).String() = %q, want %q", code+1100, g2, g)
			}
			continue
		}
		if w := "op(" + strconv.Itoa(int(code)) + ")"; g != w {
			t.Errorf("Op(%d).String() = %q, want %q", code, g, w)
		}
	}
}

func TestDisassemble(t *testing.T) {
	m := WithInput([]int64{1002, 4, 3, 4, 33, 21101, 1, -2, 7, 77, 301, 0, 0, 0, 204, -3, 99})
	for _, c := range []struct {
		addr int64
		want string
		err  error
	}{
		{0, "0000 MUL @4 #3 @4", nil},
		{5, "0005 ADD #1 #-2 rb+7", nil},
		{14, "0014 OUT rb-3", nil},
		{16, "0016 HLT", nil},
		{9, "", ErrUnknownOpcode},
		{10, "", ErrBadMode},
		{-1, "", ErrBadAddress},
	} {
		in, err := m.Disassemble(c.addr)
		if !errors.Is(err, c.err) {
			t.Errorf("Disassemble(%d) returned error %v, want %v", c.addr, err, c.err)
			continue
		}
		if c.err == nil {
			if g := in.String(); g != c.want {
				t.Errorf("Disassemble(%d) = %q, want %q", c.addr, g, c.want)
			}
		}
	}
}

func TestParseProgram(t *testing.T) {
	for _, c := range []struct {
		src   string
		want  []int64
		err   error
		index int
	}{
		{src: "1,0,0,0,99", want: []int64{1, 0, 0, 0, 99}},
		{src: " 1, -2 ,\n3\n", want: []int64{1, -2, 3}},
		{src: "+4", want: []int64{4}},
		{src: "", err: ErrEmptyProgram},
		{src: " \n", err: ErrEmptyProgram},
		{src: "1,,2", err: strconv.ErrSyntax, index: 1},
		{src: "1,2,", err: strconv.ErrSyntax, index: 2},
		{src: "1,two", err: strconv.ErrSyntax, index: 1},
		{src: "9223372036854775808", err: strconv.ErrRange, index: 0},
	} {
		mem, err := ParseProgram(c.src)
		if !errors.Is(err, c.err) {
			t.Errorf("ParseProgram(%q) returned error %v, want %v", c.src, err, c.err)
			continue
		}
		var pe *ParseError
		if errors.As(err, &pe) && pe.Index != c.index {
			t.Errorf("ParseProgram(%q) failed at token %d, want %d", c.src, pe.Index, c.index)
		}
		if len(mem) != len(c.want) {
			t.Errorf("ParseProgram(%q) = %v, want %v", c.src, mem, c.want)
			continue
		}
		for i := range mem {
			if mem[i] != c.want[i] {
				t.Errorf("ParseProgram(%q) = %v, want %v", c.src, mem, c.want)
				break
			}
		}
	}
}

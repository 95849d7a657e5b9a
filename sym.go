package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// symbols is a list of address labels sorted by address.
type symbols []symbol

type symbol struct {
	addr  int64
	label string
}

func (s symbol) String() string { return fmt.Sprintf("%s (%d)", s.label, s.addr) }

func (ss symbols) forAddr(addr int64) (found []symbol) {
	i := sort.Search(len(ss), func(i int) bool { return ss[i].addr >= addr })
	for ; i < len(ss) && ss[i].addr == addr; i++ {
		found = append(found, ss[i])
	}
	return found
}

func (ss symbols) withLabelPrefix(p string) (found []symbol) {
	for _, s := range ss {
		if strings.HasPrefix(s.label, p) {
			found = append(found, s)
		}
	}
	return found
}

// resolve returns the symbol for a label or a decimal address.
func (ss symbols) resolve(arg string) (symbol, bool) {
	for _, s := range ss {
		if s.label == arg {
			return s, true
		}
	}
	addr, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || addr < 0 {
		return symbol{}, false
	}
	if found := ss.forAddr(addr); len(found) > 0 {
		return found[0], true
	}
	return symbol{addr: addr, label: arg}, true
}

// add returns ss with s added, replacing any symbol with the same label.
func (ss symbols) add(s symbol) symbols {
	out := make(symbols, 0, len(ss)+1)
	for _, t := range ss {
		if t.label != s.label {
			out = append(out, t)
		}
	}
	out = append(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].addr < out[j].addr })
	return out
}

// readSymbols reads a symbol file: one "address label" pair per line.
// Blank lines and lines starting with '#' are ignored.
func readSymbols(r io.Reader) (symbols, error) {
	var (
		ss   symbols
		line int
		sc   = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line++
		t := strings.TrimSpace(sc.Text())
		if t == "" || t[0] == '#' {
			continue
		}
		f := strings.Fields(t)
		if len(f) != 2 {
			return nil, errors.Errorf("line %d: want address and label, got %q", line, t)
		}
		addr, err := strconv.ParseInt(f[0], 10, 64)
		if err != nil || addr < 0 {
			return nil, errors.Errorf("line %d: invalid address %q", line, f[0])
		}
		ss = ss.add(symbol{addr: addr, label: f[1]})
	}
	return ss, sc.Err()
}

// parseSymbols reads the symbol file for a program, named after the
// program file with a .sym suffix. A missing file yields no symbols.
func parseSymbols(progFile string) (symbols, error) {
	f, err := os.Open(progFile + ".sym")
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ss, err := readSymbols(f)
	return ss, errors.Wrap(err, f.Name())
}

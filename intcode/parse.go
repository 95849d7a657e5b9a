package intcode

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyProgram is returned when parsing program text with no tokens.
var ErrEmptyProgram = errors.New("empty program")

// ParseError reports a token of the program text that is not an integer.
type ParseError struct {
	Index int    // position of the token, counting from 0
	Token string // the token as found in the program text
	Err   error  // strconv.ErrSyntax or strconv.ErrRange
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("intcode: token %d %q: %v", e.Index, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseProgram parses comma separated integers into a memory image.
// Whitespace around tokens, including newlines, is ignored.
func ParseProgram(src string) ([]int64, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, ErrEmptyProgram
	}
	fields := strings.Split(src, ",")
	mem := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			if ne, ok := err.(*strconv.NumError); ok {
				err = ne.Err
			}
			return nil, &ParseError{Index: i, Token: f, Err: err}
		}
		mem[i] = v
	}
	return mem, nil
}

// Parse returns a Machine loaded with the program in src.
func Parse(src string) (*Machine, error) {
	return ParseWithInput(src)
}

// ParseWithInput returns a Machine loaded with the program in src and with
// the given values queued as input.
func ParseWithInput(src string, input ...int64) (*Machine, error) {
	mem, err := ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return &Machine{Mem: mem, input: append([]int64(nil), input...)}, nil
}

// Load reads program text from r and returns a Machine loaded with it.
func Load(r io.Reader) (*Machine, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	m, err := Parse(string(b))
	if err != nil {
		return nil, errors.Wrap(err, "Load")
	}
	return m, nil
}

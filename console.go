package main

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

// console runs m as a text program. Output values that are ASCII codes
// are written as characters, anything else as a decimal number on its own
// line. Whenever the program needs input, a line is read from in and its
// characters pushed, followed by a newline.
func console(m *intcode.Machine, in io.Reader, out io.Writer) error {
	var (
		r = bufio.NewReader(in)
		w = bufio.NewWriter(out)
	)
	defer w.Flush()
	for {
		switch it := m.RunUntilInterrupt(); it.Reason {
		case intcode.ProducedOutput:
			if v := it.Value; v >= 0 && v < 128 {
				w.WriteByte(byte(v))
			} else {
				w.WriteString(strconv.FormatInt(v, 10))
				w.WriteByte('\n')
			}
		case intcode.NeedsInput:
			if err := w.Flush(); err != nil {
				return err
			}
			line, err := r.ReadString('\n')
			if err != nil && (err != io.EOF || line == "") {
				return errors.Wrap(err, "console: reading input")
			}
			m.PushString(strings.TrimRight(line, "\r\n") + "\n")
		case intcode.Halted:
			return nil
		case intcode.Errored:
			return m.Err()
		}
	}
}

package main

import (
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/rivo/tview"

	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

// contLimit bounds the instructions run by a single next or cont command.
const contLimit = 10_000_000

type debugger struct {
	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu      sync.Mutex
	prog    *intcode.Machine
	m       *intcode.Machine
	last    intcode.Interrupt
	syms    symbols
	breaks  map[int64]bool
	watches []symbol
}

func newDebugger() *debugger {
	d := &debugger{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input:  tview.NewInputField(),
		cols:   tview.NewFlex(),
		rows:   tview.NewFlex().SetDirection(tview.FlexRow),
		app:    tview.NewApplication(),
		breaks: make(map[int64]bool),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if cmd, arg, ok := strings.Cut(t, " "); ok {
			switch cmd {
			case "b", "break", "w", "watch":
				d.mu.Lock()
				for _, s := range d.syms.withLabelPrefix(arg) {
					entries = append(entries, cmd+" "+s.label)
				}
				d.mu.Unlock()
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		if cmd == "exit" {
			d.app.Stop()
			return
		}
		if err := d.command(cmd); err != nil {
			log.Print(err)
		}
		d.show()
	})
	return d
}

func (d *debugger) Run() error { return d.app.Run() }

// load replaces the program being debugged. It may be called from any
// goroutine.
func (d *debugger) load(prog *intcode.Machine, syms symbols) {
	d.mu.Lock()
	d.prog = prog
	d.m = prog.Clone()
	d.last = intcode.Interrupt{}
	d.syms = syms
	d.mu.Unlock()
	d.app.QueueUpdateDraw(d.show)
}

// command executes one debugger command line.
func (d *debugger) command(line string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.m == nil {
		return errors.New("no program loaded")
	}

	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "s", "step":
		d.step()
	case "n", "next":
		if !d.run(false) {
			log.Printf("no interrupt after %d instructions", contLimit)
		}
	case "c", "cont":
		if !d.run(true) {
			log.Printf("still running after %d instructions", contLimit)
		}
	case "i", "input":
		vs, err := intcode.ParseProgram(strings.Join(strings.Fields(arg), ","))
		if err != nil {
			return errors.Wrap(err, "input")
		}
		d.m.Push(vs...)
		log.Printf("pushed %v, %d pending", vs, d.m.Pending())
	case "b", "break":
		s, ok := d.syms.resolve(arg)
		if !ok {
			return errors.Errorf("invalid address %q", arg)
		}
		if d.breaks[s.addr] {
			delete(d.breaks, s.addr)
			log.Printf("cleared break %v", s)
		} else {
			d.breaks[s.addr] = true
			log.Printf("set break %v", s)
		}
	case "w", "watch":
		s, ok := d.syms.resolve(arg)
		if !ok {
			return errors.Errorf("invalid address %q", arg)
		}
		for i, w := range d.watches {
			if w.addr == s.addr {
				d.watches = append(d.watches[:i], d.watches[i+1:]...)
				log.Printf("unwatched %v", s)
				return nil
			}
		}
		d.watches = append(d.watches, s)
		log.Printf("watching %v", s)
	case "l", "label":
		a, name, ok := strings.Cut(arg, " ")
		addr, err := strconv.ParseInt(a, 10, 64)
		if !ok || err != nil || addr < 0 {
			return errors.Errorf("usage: l ADDR NAME")
		}
		d.syms = d.syms.add(symbol{addr: addr, label: strings.TrimSpace(name)})
	case "r", "reset":
		d.m = d.prog.Clone()
		d.last = intcode.Interrupt{}
		log.Print("reset")
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
	return nil
}

// step executes a single instruction.
func (d *debugger) step() {
	it, ok := d.m.Step()
	d.last = it
	if ok {
		d.interrupt(it)
	}
}

// run executes instructions until an interrupt other than output or, if
// brk is set, until the next breakpoint. It reports false if it gave up
// after contLimit instructions.
func (d *debugger) run(brk bool) bool {
	for n := 0; n < contLimit; n++ {
		it, ok := d.m.Step()
		d.last = it
		if ok {
			d.interrupt(it)
			if it.Reason != intcode.ProducedOutput || !brk {
				return true
			}
		}
		if brk && d.breaks[d.m.IP] {
			return true
		}
	}
	return false
}

func (d *debugger) interrupt(it intcode.Interrupt) {
	switch it.Reason {
	case intcode.ProducedOutput:
		log.Printf("output %d", it.Value)
	case intcode.Errored:
		log.Printf("fault: %v", d.m.Err())
	default:
		log.Print(it)
	}
}

// show refreshes the state and watch panes. It must run on the
// application goroutine.
func (d *debugger) show() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.m == nil {
		return
	}
	k := d.kind()
	switch k {
	case brkState:
		d.state.SetTextColor(tcell.ColorYellow)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	case inputState:
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkBlue)
	case haltState, faultState:
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	default:
		d.state.SetTextColor(tcell.ColorBlack)
		d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	}
	d.state.SetText(stateMsg(d.syms, d.m, k))
	d.watch.SetText(watchContent(d.m, d.watches, d.breaks))
}

type stateKind int

const (
	runState stateKind = iota
	brkState
	inputState
	haltState
	faultState
)

func (d *debugger) kind() stateKind {
	switch {
	case d.m.Err() != nil:
		return faultState
	case d.m.Halted():
		return haltState
	case d.last.Reason == intcode.NeedsInput && d.m.Pending() == 0:
		return inputState
	case d.breaks[d.m.IP]:
		return brkState
	}
	return runState
}

func stateMsg(syms symbols, m *intcode.Machine, k stateKind) string {
	var instr, sym string
	if in, err := m.Disassemble(m.IP); err != nil {
		instr = fmt.Sprintf("%.4d %v", m.IP, intcode.Op(m.Peek(m.IP)))
	} else {
		instr = in.String()
	}
	if s := syms.forAddr(m.IP); len(s) > 0 {
		sym = " <- " + s[0].String()
	}
	kind := "       "
	switch k {
	case brkState:
		kind = "[break]"
	case inputState:
		kind = "[input]"
	case haltState:
		kind = "[HALT!]"
	case faultState:
		kind = "[FAULT]"
	}
	return fmt.Sprintf("%s %s%s\nrb: %d in: %d out: %d mem: %d\n",
		kind, instr, sym, m.Base, m.Pending(), len(m.Output()), len(m.Mem))
}

func watchContent(m *intcode.Machine, watches []symbol, breaks map[int64]bool) string {
	var b strings.Builder
	for _, w := range watches {
		fmt.Fprintf(&b, "%v = %d\n", w, m.Peek(w.addr))
	}
	if len(breaks) > 0 {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("breaks:")
		for _, a := range sortedKeys(breaks) {
			fmt.Fprintf(&b, " %d", a)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func sortedKeys(m map[int64]bool) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Command intcode executes IntCode programs.
//
// By default the program is run to completion with the values given by
// -input and its output is printed one value per line. Other flags run it
// behind an ASCII console, an arcade cabinet, a hull-painting robot or a
// row of amplifiers, or load it into an interactive debugger.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Princic-1837592/advent-of-code-sub001/amp"
	"github.com/Princic-1837592/advent-of-code-sub001/arcade"
	"github.com/Princic-1837592/advent-of-code-sub001/hull"
	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

const frameRate = time.Second / 60

func main() {
	log.SetPrefix("intcode: ")
	log.SetFlags(0)

	var (
		input  intList
		phases intList

		asciiFlag  = flag.Bool("ascii", false, "run behind an ASCII console on stdin and stdout")
		arcadeFlag = flag.Bool("arcade", false, "play the program as an arcade game in the terminal")
		guiFlag    = flag.Bool("gui", false, "play the arcade game in a window")
		autoFlag   = flag.Bool("autopilot", false, "let the arcade joystick follow the ball")
		quarters   = flag.Int64("quarters", 0, "number of `quarters` to insert in the arcade (2 plays for free)")
		paintFlag  = flag.String("paint", "", "run a hull-painting robot and write the hull to PNG `file`")
		startFlag  = flag.Int64("start", 0, "`color` of the robot's first panel (0 black, 1 white)")
		scaleFlag  = flag.Int("scale", 8, "size in `pixels` of a hull panel in the PNG")
		loopFlag   = flag.Bool("loop", false, "connect the amplifiers in a feedback loop")
		devFlag    = flag.Bool("dev", false, "enable developer mode (re-run the program when its file changes)")
		debugFlag  = flag.Bool("debug", false, "enable debugger (implies -dev)")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)
	flag.Var(&input, "input", "comma separated `values` to queue as input (repeatable)")
	flag.Var(&phases, "amp", "find the best ordering of the amplifier `phases`")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-input v,...] <-ascii | -arcade | -gui | -paint out.png | -amp p,...> program.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-input v,...] <-dev | -debug> program.txt\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}
	progFile := flag.Arg(0)

	if *devFlag || *debugFlag {
		if err := devMode(progFile, input, *debugFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	m, err := loadFile(progFile)
	if err == nil {
		m.Push(input...)
		switch {
		case *asciiFlag:
			err = console(m, os.Stdin, os.Stdout)
		case *arcadeFlag || *guiFlag:
			err = play(m, *quarters, *autoFlag, *guiFlag)
		case *paintFlag != "":
			err = paint(m, *paintFlag, hull.Color(*startFlag), *scaleFlag)
		case len(phases) > 0:
			err = amplify(os.Stdout, m, phases, *loopFlag)
		default:
			err = run(os.Stdout, m)
		}
	}

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

// intList is a flag.Value holding comma separated integers. Each use of
// the flag appends to the list.
type intList []int64

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i, v := range *l {
		s[i] = fmt.Sprint(v)
	}
	return strings.Join(s, ",")
}

func (l *intList) Set(s string) error {
	vs, err := intcode.ParseProgram(s)
	if err != nil {
		return err
	}
	*l = append(*l, vs...)
	return nil
}

func loadFile(name string) (*intcode.Machine, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := intcode.Load(f)
	return m, errors.Wrap(err, name)
}

// run runs m to completion and prints its output, including any output
// produced before a fault.
func run(w io.Writer, m *intcode.Machine) error {
	err := m.RunUntilComplete()
	for _, v := range m.Output() {
		fmt.Fprintln(w, v)
	}
	return err
}

func play(m *intcode.Machine, quarters int64, autopilot, gui bool) error {
	c := arcade.New(m)
	if quarters > 0 {
		c.Insert(quarters)
	}
	var err error
	if gui {
		err = arcade.NewGUI(c, autopilot).Run(frameRate)
	} else {
		err = playTerminal(c, autopilot, frameRate)
	}
	fmt.Printf("score %d, %d blocks left\n", c.Screen().Score(), c.Screen().Blocks())
	return err
}

func paint(m *intcode.Machine, file string, start hull.Color, scale int) error {
	h, err := hull.Paint(m, start)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := hull.WritePNG(f, h, scale); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("%d panels painted\n%s", h.Painted(), h)
	return nil
}

func amplify(w io.Writer, m *intcode.Machine, phases []int64, loop bool) error {
	f := amp.Chain
	if loop {
		f = amp.Loop
	}
	best, order, err := amp.Max(m, phases, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%d %v\n", best, order)
	return nil
}

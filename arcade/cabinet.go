// Package arcade implements an arcade cabinet driven by an IntCode game.
//
// The game draws tiles on the cabinet Screen through its output and reads
// the joystick position through its input. The cabinet runs the game one
// frame at a time: a frame ends whenever the game asks for the joystick.
package arcade

import (
	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

// Joystick positions.
const (
	Left    int64 = -1
	Neutral int64 = 0
	Right   int64 = 1
)

// Joystick decides the joystick position for the next frame.
type Joystick interface {
	Tilt(s *Screen) int64
}

// JoystickFunc adapts a function to the Joystick interface.
type JoystickFunc func(s *Screen) int64

func (f JoystickFunc) Tilt(s *Screen) int64 { return f(s) }

// Idle is a Joystick that is never touched.
var Idle = JoystickFunc(func(*Screen) int64 { return Neutral })

// Autopilot is a Joystick that keeps the paddle under the ball.
type Autopilot struct{}

func (Autopilot) Tilt(s *Screen) int64 {
	switch b, p := s.Ball(), s.Paddle(); {
	case b.X < p.X:
		return Left
	case b.X > p.X:
		return Right
	}
	return Neutral
}

// Cabinet runs a game on its own copy of an IntCode program.
type Cabinet struct {
	m   *intcode.Machine
	scr Screen
}

// New returns a cabinet running a copy of prog.
func New(prog *intcode.Machine) *Cabinet {
	return &Cabinet{m: prog.Clone()}
}

// Insert stores the number of quarters in the cabinet. Two quarters make
// the game free to play.
func (c *Cabinet) Insert(quarters int64) { c.m.Poke(0, quarters) }

func (c *Cabinet) Screen() *Screen { return &c.scr }

// Tick runs the game for one frame: until it asks for the joystick a
// second time, with the first request answered by js. It reports whether
// the game is still running.
func (c *Cabinet) Tick(js Joystick) (running bool, err error) {
	fed := false
	for {
		switch it := c.m.RunUntilInterrupt(); it.Reason {
		case intcode.ProducedOutput:
			if err := c.scr.out(it.Value); err != nil {
				return false, err
			}
		case intcode.NeedsInput:
			if fed {
				return true, nil
			}
			c.m.Push(js.Tilt(&c.scr))
			fed = true
		case intcode.Halted:
			return false, nil
		case intcode.Errored:
			return false, c.m.Err()
		}
	}
}

// Run plays the game until it halts.
func (c *Cabinet) Run(js Joystick) error {
	for {
		running, err := c.Tick(js)
		if err != nil || !running {
			return err
		}
	}
}

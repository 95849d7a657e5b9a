// Package hull runs an IntCode hull-painting robot.
//
// The robot reads the color of the panel below it and answers with two
// values: the color to paint that panel and the direction to turn before
// moving forward one panel.
package hull

import (
	"image"
	"image/color"
	"strings"

	"github.com/pkg/errors"

	"github.com/Princic-1837592/advent-of-code-sub001/intcode"
)

type Color int64

const (
	Black Color = 0
	White Color = 1
)

// Turn directions emitted by the robot.
const (
	TurnLeft  int64 = 0
	TurnRight int64 = 1
)

var (
	ErrBadColor = errors.New("invalid panel color")
	ErrBadTurn  = errors.New("invalid turn")
)

// Palette maps colors to the pixels of Hull.Image.
var Palette = color.Palette{
	Black: color.Gray{0x00},
	White: color.Gray{0xff},
}

// Robot is a position and a heading on the hull. Y grows downwards, so
// the robot starts facing (0, -1).
type Robot struct {
	Pos image.Point
	Dir image.Point
}

func NewRobot() *Robot {
	return &Robot{Dir: image.Pt(0, -1)}
}

// Turn rotates the robot by 90 degrees.
func (r *Robot) Turn(t int64) error {
	switch t {
	case TurnLeft:
		r.Dir = image.Pt(r.Dir.Y, -r.Dir.X)
	case TurnRight:
		r.Dir = image.Pt(-r.Dir.Y, r.Dir.X)
	default:
		return errors.Wrapf(ErrBadTurn, "%d", t)
	}
	return nil
}

func (r *Robot) Forward() { r.Pos = r.Pos.Add(r.Dir) }

// Hull is the grid of panels the robot walks on. Every panel is black
// except the start panel, whose color is chosen by Paint, and the panels
// the robot painted.
type Hull struct {
	start  Color
	panels map[image.Point]Color
	bounds image.Rectangle
}

func newHull(start Color) *Hull {
	return &Hull{
		start:  start,
		panels: make(map[image.Point]Color),
		bounds: image.Rect(0, 0, 1, 1),
	}
}

func (h *Hull) At(p image.Point) Color {
	if c, ok := h.panels[p]; ok {
		return c
	}
	if p == (image.Point{}) {
		return h.start
	}
	return Black
}

func (h *Hull) paint(p image.Point, c Color) {
	h.panels[p] = c
	h.bounds = h.bounds.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
}

// Painted returns the number of panels painted at least once.
func (h *Hull) Painted() int { return len(h.panels) }

// Bounds returns the smallest rectangle holding the start panel and every
// painted panel.
func (h *Hull) Bounds() image.Rectangle { return h.bounds }

// Image returns the hull as an image with one pixel per panel, translated
// so that its bounds start at the origin.
func (h *Hull) Image() *image.Paletted {
	b := h.bounds
	m := image.NewPaletted(image.Rectangle{Max: b.Size()}, Palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.SetColorIndex(x-b.Min.X, y-b.Min.Y, uint8(h.At(image.Pt(x, y))))
		}
	}
	return m
}

// String renders white panels as '#' and black panels as '.'.
func (h *Hull) String() string {
	var s strings.Builder
	b := h.bounds
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if h.At(image.Pt(x, y)) == White {
				s.WriteByte('#')
			} else {
				s.WriteByte('.')
			}
		}
		s.WriteByte('\n')
	}
	return s.String()
}

// Paint runs a copy of prog as the robot, starting on a panel of color
// start, until the program halts.
func Paint(prog *intcode.Machine, start Color) (*Hull, error) {
	var (
		m    = prog.Clone()
		h    = newHull(start)
		r    = NewRobot()
		pair []int64
	)
	for {
		switch it := m.RunUntilInterrupt(); it.Reason {
		case intcode.NeedsInput:
			m.Push(int64(h.At(r.Pos)))
		case intcode.ProducedOutput:
			if pair = append(pair, it.Value); len(pair) < 2 {
				continue
			}
			c := Color(pair[0])
			if c != Black && c != White {
				return h, errors.Wrapf(ErrBadColor, "%d at %v", pair[0], r.Pos)
			}
			h.paint(r.Pos, c)
			if err := r.Turn(pair[1]); err != nil {
				return h, errors.Wrapf(err, "at %v", r.Pos)
			}
			r.Forward()
			pair = pair[:0]
		case intcode.Halted:
			return h, nil
		case intcode.Errored:
			return h, m.Err()
		}
	}
}

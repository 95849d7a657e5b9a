package arcade

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/pkg/errors"
)

// Tile is the content of one screen position.
type Tile byte

const (
	Empty Tile = iota
	Wall
	Block
	Paddle
	Ball
)

func (t Tile) Rune() rune {
	switch t {
	case Wall:
		return '#'
	case Block:
		return '='
	case Paddle:
		return '-'
	case Ball:
		return 'o'
	}
	return ' '
}

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Block:
		return "block"
	case Paddle:
		return "paddle"
	case Ball:
		return "ball"
	}
	return fmt.Sprintf("Tile(%d)", byte(t))
}

// Palette maps tiles to colors in the images returned by Screen.Image.
var Palette = color.Palette{
	Empty:  color.RGBA{0x00, 0x00, 0x00, 0xff},
	Wall:   color.RGBA{0x88, 0x88, 0x88, 0xff},
	Block:  color.RGBA{0x33, 0x66, 0xcc, 0xff},
	Paddle: color.RGBA{0xee, 0xee, 0xee, 0xff},
	Ball:   color.RGBA{0xff, 0xcc, 0x00, 0xff},
}

// MaxSize bounds both screen coordinates.
const MaxSize = 1 << 12

var (
	ErrBadTile     = errors.New("invalid tile id")
	ErrBadPosition = errors.New("invalid screen position")
)

// Screen is the cabinet display. The game draws on it by emitting
// triples: x, y and a tile id, or -1, 0 and the score.
type Screen struct {
	tiles  map[image.Point]Tile
	size   image.Point
	score  int64
	ball   image.Point
	paddle image.Point
	blocks int

	buf [3]int64
	n   int
}

// out accepts one value emitted by the game.
func (s *Screen) out(v int64) error {
	s.buf[s.n] = v
	s.n++
	if s.n < len(s.buf) {
		return nil
	}
	s.n = 0
	x, y, id := s.buf[0], s.buf[1], s.buf[2]
	if x == -1 && y == 0 {
		s.score = id
		return nil
	}
	if x < 0 || y < 0 || x >= MaxSize || y >= MaxSize {
		return errors.Wrapf(ErrBadPosition, "(%d, %d)", x, y)
	}
	if id < int64(Empty) || id > int64(Ball) {
		return errors.Wrapf(ErrBadTile, "%d at (%d, %d)", id, x, y)
	}
	s.set(image.Pt(int(x), int(y)), Tile(id))
	return nil
}

func (s *Screen) set(p image.Point, t Tile) {
	if s.tiles == nil {
		s.tiles = make(map[image.Point]Tile)
	}
	if s.tiles[p] == Block {
		s.blocks--
	}
	switch t {
	case Block:
		s.blocks++
	case Ball:
		s.ball = p
	case Paddle:
		s.paddle = p
	}
	s.tiles[p] = t
	if p.X >= s.size.X {
		s.size.X = p.X + 1
	}
	if p.Y >= s.size.Y {
		s.size.Y = p.Y + 1
	}
}

func (s *Screen) Score() int64          { return s.score }
func (s *Screen) Blocks() int           { return s.blocks }
func (s *Screen) Ball() image.Point     { return s.ball }
func (s *Screen) Paddle() image.Point   { return s.paddle }
func (s *Screen) Size() image.Point     { return s.size }
func (s *Screen) At(p image.Point) Tile { return s.tiles[p] }

// Image returns a snapshot of the screen, one pixel per tile, using Palette.
func (s *Screen) Image() *image.Paletted {
	m := image.NewPaletted(image.Rectangle{Max: s.size}, Palette)
	for p, t := range s.tiles {
		m.SetColorIndex(p.X, p.Y, uint8(t))
	}
	return m
}

func (s *Screen) String() string {
	var b strings.Builder
	for y := 0; y < s.size.Y; y++ {
		for x := 0; x < s.size.X; x++ {
			b.WriteRune(s.tiles[image.Pt(x, y)].Rune())
		}
		b.WriteByte('\n')
	}
	return b.String()
}

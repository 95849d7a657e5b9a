package main

import (
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Princic-1837592/advent-of-code-sub001/arcade"
)

var tileStyle = [...]tcell.Style{
	arcade.Empty:  tcell.StyleDefault,
	arcade.Wall:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	arcade.Block:  tcell.StyleDefault.Foreground(tcell.ColorBlue),
	arcade.Paddle: tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	arcade.Ball:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
}

// keyJoystick tilts the joystick for one frame per key press.
type keyJoystick struct {
	auto bool
	tilt int64
}

func (j *keyJoystick) Tilt(s *arcade.Screen) int64 {
	if j.auto {
		return arcade.Autopilot{}.Tilt(s)
	}
	t := j.tilt
	j.tilt = arcade.Neutral
	return t
}

// key applies a key press and reports whether the player asked to quit.
func (j *keyJoystick) key(ev *tcell.EventKey) (quit bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		j.tilt = arcade.Left
	case tcell.KeyRight:
		j.tilt = arcade.Right
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'a':
			j.auto = !j.auto
		}
	}
	return false
}

// playTerminal plays c in the terminal, advancing one frame per tick of
// rate, until the player quits.
func playTerminal(c *arcade.Cabinet, autopilot bool, rate time.Duration) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	var (
		events = make(chan tcell.Event)
		quit   = make(chan struct{})
	)
	go s.ChannelEvents(events, quit)
	defer close(quit)

	var (
		js      = &keyJoystick{auto: autopilot}
		t       = time.NewTicker(rate)
		running = true
	)
	defer t.Stop()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if js.key(ev) {
					return nil
				}
			case *tcell.EventResize:
				s.Sync()
			}
		case <-t.C:
			if !running {
				continue
			}
			if running, err = c.Tick(js); err != nil {
				return err
			}
			drawTerminal(s, c.Screen(), js.auto, running)
		}
	}
}

func drawTerminal(s tcell.Screen, scr *arcade.Screen, auto, running bool) {
	s.Clear()
	status := fmt.Sprintf("score %d  blocks %d", scr.Score(), scr.Blocks())
	if auto {
		status += "  [autopilot]"
	}
	putString(s, 0, 0, status, tcell.StyleDefault.Reverse(true))
	size := scr.Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			t := scr.At(image.Pt(x, y))
			s.SetContent(x, y+1, t.Rune(), nil, tileStyle[t])
		}
	}
	if !running {
		putString(s, 0, size.Y+2, "game over, press q to quit", tcell.StyleDefault.Bold(true))
	}
	s.Show()
}

func putString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

package arcade

import (
	"image"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
)

// TileSize is the edge in pixels of one tile in the GUI window.
const TileSize = 16

// GUI plays a Cabinet in a window. The left and right arrow keys tilt the
// joystick, space toggles the autopilot and escape closes the window.
type GUI struct {
	cab  *Cabinet
	tilt atomic.Int64
	auto atomic.Bool

	// The game goroutine offers a frame on update and waits on
	// updateDone until the window has copied it.
	update     chan *Screen
	updateDone chan bool

	size image.Point
	buf  screen.Buffer
	tex  screen.Texture
}

func NewGUI(c *Cabinet, autopilot bool) *GUI {
	g := &GUI{
		cab:        c,
		update:     make(chan *Screen),
		updateDone: make(chan bool),
	}
	g.auto.Store(autopilot)
	return g
}

// Tilt implements Joystick using the keyboard or the autopilot.
func (g *GUI) Tilt(s *Screen) int64 {
	if g.auto.Load() {
		return Autopilot{}.Tilt(s)
	}
	return g.tilt.Load()
}

// play runs the game at one frame per tick, offering each frame to the
// window. It keeps offering the final frame until exit is closed.
func (g *GUI) play(exit <-chan bool, rate time.Duration) error {
	t := time.NewTicker(rate)
	defer t.Stop()
	var (
		err     error
		running = true
	)
	for {
		select {
		case <-t.C:
			if !running {
				continue
			}
			running, err = g.cab.Tick(g)
			if !running {
				log.Printf("game over, score %d", g.cab.Screen().Score())
			}
		case g.update <- g.cab.Screen():
			<-g.updateDone
		case <-exit:
			return err
		}
		if err != nil {
			return err
		}
	}
}

// Run opens the window and plays until the window is closed or the game
// fails. It must be called from the main goroutine.
func (g *GUI) Run(rate time.Duration) error {
	var (
		exit    = make(chan bool)
		gameErr = make(chan error, 1)
	)
	go func() { gameErr <- g.play(exit, rate) }()

	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "intcode arcade",
			Width:  44 * TileSize,
			Height: 24 * TileSize,
		})
		if err != nil {
			log.Fatal(err)
		}
		defer w.Release()
		defer g.release()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / 60)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-exit:
					return
				}
			}
		}()
		defer close(exit)

		var (
			sz    size.Event
			dirty bool
		)
		for {
			switch e := w.NextEvent().(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}
				dirty = true

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case key.Event:
				if e.Direction == key.DirNone {
					continue
				}
				press := e.Direction == key.DirPress
				switch e.Code {
				case key.CodeLeftArrow:
					g.hold(Left, press)
				case key.CodeRightArrow:
					g.hold(Right, press)
				case key.CodeSpacebar:
					if press {
						g.auto.Store(!g.auto.Load())
					}
				case key.CodeEscape:
					return
				}

			case paint.Event:
				dirty = true

			case update:
				select {
				case scr := <-g.update:
					if err := g.copy(s, scr); err != nil {
						log.Fatalf("update: %v", err)
					}
					g.updateDone <- true
					dirty = true
				case err := <-gameErr:
					gameErr <- err
					if err != nil {
						return
					}
				default:
					// game is busy
				}
				if dirty && g.tex != nil {
					w.Scale(sz.Bounds(), g.tex, g.tex.Bounds(), draw.Src, nil)
					w.Publish()
					dirty = false
				}

			case error:
				log.Print(e)
			}
		}
	})
	return <-gameErr
}

// hold moves the joystick to dir on press and back to neutral when the
// key held for dir is released.
func (g *GUI) hold(dir int64, press bool) {
	if press {
		g.tilt.Store(dir)
		return
	}
	g.tilt.CompareAndSwap(dir, Neutral)
}

// copy renders scr into the window texture, scaling each tile to
// TileSize pixels.
func (g *GUI) copy(s screen.Screen, scr *Screen) (err error) {
	src := scr.Image()
	size := src.Bounds().Size().Mul(TileSize)
	if size.X == 0 || size.Y == 0 {
		return nil
	}
	if g.tex == nil || g.size != size {
		g.release()
		g.size = size
		if g.buf, err = s.NewBuffer(size); err != nil {
			return
		}
		if g.tex, err = s.NewTexture(size); err != nil {
			return
		}
	}
	dst := g.buf.RGBA()
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
	return nil
}

func (g *GUI) release() {
	if g.tex != nil {
		g.tex.Release()
		g.tex = nil
	}
	if g.buf != nil {
		g.buf.Release()
		g.buf = nil
	}
}

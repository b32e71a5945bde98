// Package term runs a session in a terminal. Each tile is two columns wide
// so cells come out roughly square.
package term

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"tilesnake/internal/game"
)

const (
	DefaultFrameRate = 30
	statusText       = "arrows steer  q quits"
)

var keyCodes = map[tcell.Key]game.KeyCode{
	tcell.KeyLeft:  game.KeyLeft,
	tcell.KeyUp:    game.KeyUp,
	tcell.KeyRight: game.KeyRight,
	tcell.KeyDown:  game.KeyDown,
}

type Options struct {
	FrameRate int
	OnFrame   func(delta time.Duration)
}

// UI draws one session onto a tcell screen and feeds it key events.
type UI struct {
	screen tcell.Screen
	sess   *game.Session

	body, head, food, grid tcell.Style
}

func NewUI(screen tcell.Screen, sess *game.Session) *UI {
	fg := func(c game.RGB) tcell.Style {
		return tcell.StyleDefault.Foreground(tcell.NewHexColor(c.Hex()))
	}
	return &UI{
		screen: screen,
		sess:   sess,
		body:   fg(game.Palette.Body),
		head:   fg(game.Palette.Head),
		food:   fg(game.Palette.Food),
		grid:   fg(game.Palette.Grid),
	}
}

// Run opens the terminal, builds the session with start and drives it
// until q, Escape or Ctrl-C.
func Run(start func(tp game.TimeProvider) *game.Session, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	ui := NewUI(screen, start(game.SystemTime{}))
	ui.Loop(opts)
	return nil
}

// Loop merges the key-event stream and the frame ticker onto the calling
// goroutine, so the session only ever sees one caller.
func (u *UI) Loop(opts Options) {
	fps := opts.FrameRate
	if fps <= 0 {
		fps = DefaultFrameRate
	}

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	last := time.Now()
	u.Draw()
	for {
		select {
		case ev := <-events:
			if u.HandleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			u.sess.Update(dt)
			if opts.OnFrame != nil {
				opts.OnFrame(dt)
			}
			u.Draw()
		}
	}
}

// HandleEvent applies ev and reports whether the UI should exit. Terminals
// report no key releases, so only KeyDown reaches the session.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			// Runes never steer: '%' through '(' share the arrow codes.
			if ev.Rune() == 'q' || ev.Rune() == 'Q' {
				return true
			}
		default:
			if code, ok := keyCodes[ev.Key()]; ok {
				u.sess.KeyDown(code)
			}
		}
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return false
}

// Draw renders the visible part of the field with the head centred. The
// bottom row is reserved for the status line.
func (u *UI) Draw() {
	u.screen.Clear()
	cols, rows := u.screen.Size()
	playRows := rows - 1
	if cols <= 0 || playRows <= 0 {
		u.screen.Show()
		return
	}

	cs := u.sess.Config().CellSize
	off := u.sess.CameraOffset(float64(cols/2)*cs, float64(playRows)*cs)

	put := func(p game.Vec2, left, right rune, style tcell.Style) {
		col, row := project(p, off, cs)
		if row < 0 || row >= playRows {
			return
		}
		for i, r := range []rune{left, right} {
			if x := col + i; x >= 0 && x < cols {
				u.screen.SetContent(x, row, r, nil, style)
			}
		}
	}

	for _, f := range u.sess.Food().Items() {
		put(f.Position, '<', '>', u.food)
	}
	for _, s := range u.sess.Chain().Segments() {
		if s.IsHead() {
			put(s.Render, '█', '█', u.head)
		} else {
			put(s.Render, '▓', '▓', u.body)
		}
	}

	status := statusText
	if u.sess.State == game.StateCleared {
		status = "field cleared  " + statusText
	}
	for i, r := range status {
		if i >= cols {
			break
		}
		u.screen.SetContent(i, rows-1, r, nil, u.grid)
	}
	u.screen.Show()
}

// project maps a world position, already offset by the camera, to the
// left column and row of its two-column tile.
func project(p, off game.Vec2, cellSize float64) (col, row int) {
	col = int(math.Floor((p.X+off.X)/cellSize*2 + 0.5))
	row = int(math.Floor((p.Y+off.Y)/cellSize + 0.5))
	return col, row
}

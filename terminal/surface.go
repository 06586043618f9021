package terminal

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/buji/component"
	"github.com/lixenwraith/buji/engine"
)

// eventBuffer bounds the events queued between two polls
const eventBuffer = 100

var (
	ErrNotInitialized     = errors.New("surface not initialized")
	ErrAlreadyInitialized = errors.New("surface already initialized")
	ErrEmptySprite        = errors.New("sprite is empty")
)

// Surface renders actors on a tcell screen and turns key presses into quit signals
// Window coordinates are projected onto the screen's cell grid, the top row carries the title
type Surface struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	style   tcell.Style
	title   []rune
	windowW uint32
	windowH uint32
	sprites map[string]Sprite
	ready   bool
}

// New creates a surface on the controlling terminal
func New() (*Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an existing screen, tests pass a simulation screen
func NewWithScreen(screen tcell.Screen) *Surface {
	return &Surface{
		screen:  screen,
		events:  make(chan tcell.Event, eventBuffer),
		done:    make(chan struct{}),
		sprites: make(map[string]Sprite),
	}
}

// Init implements engine.Renderer
func (s *Surface) Init(cfg engine.Config) error {
	if s.ready {
		return ErrAlreadyInitialized
	}
	if cfg.WindowWidth == 0 || cfg.WindowHeight == 0 {
		return engine.ErrInvalidWindow
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	s.style = Style(cfg.Background)
	s.title = []rune(cfg.WindowTitle)
	s.windowW, s.windowH = cfg.WindowWidth, cfg.WindowHeight
	s.screen.SetStyle(s.style)
	s.screen.HideCursor()
	s.ready = true

	go s.pump()
	return nil
}

// pump moves screen events onto the buffered channel until Fini
func (s *Surface) pump() {
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case s.events <- ev:
		case <-s.done:
			return
		}
	}
}

// PollQuit implements engine.Input
// Every queued event is drained, resizes resync the screen
func (s *Surface) PollQuit() bool {
	quit := false
	for {
		select {
		case ev := <-s.events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if IsQuitKey(ev) {
					quit = true
				}
			case *tcell.EventResize:
				s.screen.Sync()
			}
		default:
			return quit
		}
	}
}

// IsQuitKey reports Esc, Ctrl-C and q
func IsQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			return ev.Rune() == 'c' || ev.Rune() == 'C'
		}
		return ev.Rune() == 'q'
	}
	return false
}

// Clear implements engine.Renderer
func (s *Surface) Clear() {
	if !s.ready {
		return
	}
	s.screen.Clear()

	bar := s.style.Reverse(true)
	cols, _ := s.screen.Size()
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(s.title) {
			r = s.title[x]
		}
		s.screen.SetContent(x, 0, r, nil, bar)
	}
}

// Project maps a window position to a screen cell
func (s *Surface) Project(pos component.Position) (col, row int) {
	cols, rows := s.screen.Size()
	col = int(math.Floor(float64(pos.X) * float64(cols) / float64(s.windowW)))
	row = int(math.Floor(float64(pos.Y) * float64(rows) / float64(s.windowH)))
	return col, row
}

// DrawSprite implements engine.Renderer
func (s *Surface) DrawSprite(data []byte, ctx engine.ActorContext) error {
	if !s.ready {
		return ErrNotInitialized
	}

	sprite, ok := s.sprites[string(data)]
	if !ok {
		sprite = ParseSprite(data)
		s.sprites[string(data)] = sprite
	}
	if w, _ := sprite.Size(); w == 0 {
		return fmt.Errorf("%s: %w", ctx.Asset.Path, ErrEmptySprite)
	}

	col, row := s.Project(ctx.Position)
	blit(s.screen, sprite, col, row, ctx, s.style)
	return nil
}

// Present implements engine.Renderer
func (s *Surface) Present() error {
	if !s.ready {
		return ErrNotInitialized
	}
	s.screen.Show()
	return nil
}

// Fini stops the event pump and restores the terminal, safe to call more than once
func (s *Surface) Fini() {
	s.once.Do(func() {
		close(s.done)
		if s.ready {
			s.screen.Fini()
		}
	})
}

// EmergencyReset writes the escape sequences that leave the alternate screen and restore the cursor
// Used from panic handlers where the screen's own Fini may not run
func EmergencyReset(w io.Writer) {
	io.WriteString(w, "\x1b[?1000l\x1b[?1002l\x1b[?1006l")
	io.WriteString(w, "\x1b[?25h\x1b[?1049l\x1b[0m\x1b[?7h")
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}

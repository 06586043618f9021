package terminal

import (
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/buji/engine"
)

// transparent cells are skipped when blitting
const transparent = ' '

// Sprite is a text image, one row per line and one cell per rune
type Sprite struct {
	rows  [][]rune
	width int
}

// ParseSprite splits sprite bytes into rows, trailing newlines and carriage returns are dropped
func ParseSprite(data []byte) Sprite {
	text := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if text == "" {
		return Sprite{}
	}

	lines := strings.Split(text, "\n")
	s := Sprite{rows: make([][]rune, len(lines))}
	for i, line := range lines {
		s.rows[i] = []rune(line)
		s.width = max(s.width, len(s.rows[i]))
	}
	return s
}

// Size returns the sprite's bounding box in cells
func (s Sprite) Size() (w, h int) {
	return s.width, len(s.rows)
}

// At returns the rune at x, y or a transparent cell outside the sprite
func (s Sprite) At(x, y int) rune {
	if y < 0 || y >= len(s.rows) || x < 0 || x >= len(s.rows[y]) {
		return transparent
	}
	return s.rows[y][x]
}

// blit draws s with its top-left at col, row
// Scale stretches the bounding box, rotation turns it about its center, both sampled nearest-neighbour
func blit(screen tcell.Screen, s Sprite, col, row int, ctx engine.ActorContext, style tcell.Style) int {
	w, h := s.Size()
	if w == 0 || h == 0 {
		return 0
	}
	dw, dh := ctx.Scale.Apply(w), ctx.Scale.Apply(h)
	if dw <= 0 || dh <= 0 {
		return 0
	}

	// Destination cells map back to source through the inverse rotation
	inverse := (-ctx.Rotation).Matrix()
	cx, cy := float32(dw)/2, float32(dh)/2
	sx, sy := float32(w)/float32(dw), float32(h)/float32(dh)

	drawn := 0
	for dy := 0; dy < dh; dy++ {
		for dx := 0; dx < dw; dx++ {
			v := inverse.Mul2x1(mgl32.Vec2{float32(dx) + 0.5 - cx, float32(dy) + 0.5 - cy})
			srcX := int(math.Floor(float64((v.X() + cx) * sx)))
			srcY := int(math.Floor(float64((v.Y() + cy) * sy)))

			r := s.At(srcX, srcY)
			if r == transparent {
				continue
			}
			screen.SetContent(col+dx, row+dy, r, nil, style)
			drawn++
		}
	}
	return drawn
}

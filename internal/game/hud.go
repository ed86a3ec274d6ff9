package game

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/embers/internal/countdown"
	"github.com/iburimskiy/embers/internal/surface"
)

// countdownY is the baseline of the countdown line.
const countdownY = 60

var (
	countdownColor = color.RGBA{R: 197, G: 160, B: 101, A: 255}
	panelColor     = color.RGBA{R: 20, G: 16, B: 22, A: 220}
	panelBorder    = color.RGBA{R: 197, G: 160, B: 101, A: 120}
)

func (g *Game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	if g.buttonPressed {
		bgColor = color.RGBA{R: 90, G: 50, B: 20, A: 255}
	} else if g.buttonHovered {
		bgColor = color.RGBA{R: 120, G: 70, B: 30, A: 255}
	} else {
		bgColor = color.RGBA{R: 150, G: 90, B: 40, A: 255}
	}

	b := buttonBox()
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bgColor, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, panelBorder, false)

	label := "Soundtrack"
	textWidth := len(label) * 6 // debug font is 6px wide
	ebitenutil.DebugPrintAt(screen, label, b.X+(b.W-textWidth)/2, b.Y+(b.H-16)/2)
}

func (g *Game) drawPanel(screen *ebiten.Image, b surface.Box) {
	if !b.Visible {
		return
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), panelColor, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 1, panelBorder, false)
}

// drawCountdown centres the countdown line near the top of the window.
func (g *Game) drawCountdown(screen *ebiten.Image, now time.Time) {
	if g.target.IsZero() {
		return
	}
	s := countdown.Format(now, g.target)
	face := basicfont.Face7x13
	bounds := text.BoundString(face, s)
	text.Draw(screen, s, face, (g.w-bounds.Dx())/2, countdownY, countdownColor)
}

func (g *Game) status() string {
	s := "Click for sparks, M: menu, Esc/Q: quit"
	switch {
	case g.player == nil:
		s += " | Audio off"
	case g.player.Paused():
		s += " | Paused - Space to resume"
	default:
		s += " | Space to pause audio"
	}
	if g.lastErr != nil {
		s += " | Error: " + g.lastErr.Error()
	}
	return s
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, g.status(), 12, 12)
}

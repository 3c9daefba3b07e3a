package host

import (
	"errors"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/boxloop/config"
	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/system"
)

// Game adapts a Loop to ebiten. Ebiten paces Update, so each Update runs
// exactly one tick.
type Game struct {
	loop    *system.Loop
	surface *EbitenSurface
	keys    *obj.KeyTable

	width, height int

	pressed []ebiten.Key
	names   []obj.Key
}

// NewGame creates the ebiten adapter for loop. The surface must be the one
// the loop draws on.
func NewGame(loop *system.Loop, surface *EbitenSurface, keys *obj.KeyTable, window config.WindowConfig) *Game {
	if keys == nil {
		keys = obj.NewKeyTable()
	}
	return &Game{
		loop:    loop,
		surface: surface,
		keys:    keys,
		width:   window.Width * window.Scale,
		height:  window.Height * window.Scale,
	}
}

func (g *Game) Update() error {
	g.pressed = inpututil.AppendPressedKeys(g.pressed[:0])
	if slices.Contains(g.pressed, ebiten.KeyEscape) {
		return ebiten.Termination
	}

	g.names = g.names[:0]
	for _, k := range g.pressed {
		g.names = append(g.names, obj.Key(k.String()))
	}
	g.keys.Set(g.names)

	return g.loop.Tick()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Blit(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// RunEbiten opens a window and runs loop in it until the window is closed
// or Esc is pressed.
func RunEbiten(loop *system.Loop, surface *EbitenSurface, keys *obj.KeyTable, cfg *config.Config) error {
	game := NewGame(loop, surface, keys, cfg.Window)

	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

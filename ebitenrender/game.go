package ebitenrender

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/lumen"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int

	// ClearColor fills the screen before each frame.
	ClearColor lumen.Color
	// QuitOnEscape ends the game loop when Escape is pressed. The key is not
	// forwarded to the scene.
	QuitOnEscape bool
	// ShowFPS overlays ebiten's measured FPS/TPS.
	ShowFPS bool
}

// DefaultClearColor matches the dark teal backdrop used by the demos.
var DefaultClearColor = lumen.Color{R: 0.2, G: 0.3, B: 0.3}

// Game adapts a lumen.Scene to ebiten.Game. Update forwards newly pressed
// keys to the scene and runs its update callback; Draw runs one scene frame.
type Game struct {
	scene    *lumen.Scene
	renderer *Renderer
	cfg      RunConfig

	// now is the frame clock; tests replace it.
	now func() time.Time
	err error
}

// NewGame wraps scene. A zero Width or Height in cfg uses the scene size.
func NewGame(scene *lumen.Scene, cfg RunConfig) *Game {
	w, h := scene.Size()
	if cfg.Width <= 0 {
		cfg.Width = w
	}
	if cfg.Height <= 0 {
		cfg.Height = h
	}
	return &Game{
		scene:    scene,
		renderer: NewRenderer(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// Scene returns the wrapped scene.
func (g *Game) Scene() *lumen.Scene { return g.scene }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	for _, m := range keyMap {
		if !inpututil.IsKeyJustPressed(m.native) {
			continue
		}
		if g.cfg.QuitOnEscape && m.key == lumen.KeyEscape {
			return ebiten.Termination
		}
		g.scene.HandleInput(m.key)
	}
	return g.scene.Update()
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(toRGBA(g.cfg.ClearColor))
	g.renderer.SetTarget(screen)
	if err := g.scene.RenderFrame(g.renderer, g.now()); err != nil {
		lumen.Logger().Error("render frame", "scene", g.scene.Name, "err", err)
		g.err = err
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game with a fixed logical size.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run opens a window and runs scene until the window closes, Escape is
// pressed with QuitOnEscape, or a frame fails.
func Run(scene *lumen.Scene, cfg RunConfig) error {
	g := NewGame(scene, cfg)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	ebiten.SetWindowTitle(g.cfg.Title)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run %q: %w", scene.Name, err)
	}
	return nil
}

func toRGBA(c lumen.Color) color.RGBA {
	return color.RGBA{
		R: channel(c.R),
		G: channel(c.G),
		B: channel(c.B),
		A: 0xff,
	}
}

func channel(v float32) uint8 {
	return uint8(max(0, min(1, v))*255 + 0.5)
}

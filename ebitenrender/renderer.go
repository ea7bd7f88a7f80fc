package ebitenrender

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/lumen"
)

// Renderer draws lumen.DrawCommand quads onto an ebiten.Image with
// DrawImage. Solid quads are a 1x1 white pixel scaled to the layer size and
// tinted by the layer color; textured quads stretch the texture to the layer
// size. Textures are uploaded once per source image.
type Renderer struct {
	target   *ebiten.Image
	white    *ebiten.Image
	textures map[image.Image]*ebiten.Image
	op       ebiten.DrawImageOptions
}

// NewRenderer returns a renderer with no target.
func NewRenderer() *Renderer {
	return &Renderer{textures: make(map[image.Image]*ebiten.Image)}
}

// SetTarget sets the image subsequent DrawQuad calls draw onto.
func (r *Renderer) SetTarget(target *ebiten.Image) { r.target = target }

// Target returns the current draw target.
func (r *Renderer) Target() *ebiten.Image { return r.target }

// DrawQuad implements lumen.Renderer. Calls without a target are dropped.
func (r *Renderer) DrawQuad(cmd lumen.DrawCommand) {
	if r.target == nil || cmd.Width <= 0 || cmd.Height <= 0 {
		return
	}
	src := r.source(cmd.Image)
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}

	op := &r.op
	op.GeoM.Reset()
	op.GeoM.Scale(float64(cmd.Width)/float64(sw), float64(cmd.Height)/float64(sh))
	op.GeoM.Concat(GeoM(cmd.Transform))
	op.ColorScale = ColorScale(cmd)
	op.Filter = ebiten.FilterLinear
	r.target.DrawImage(src, op)
}

// Forget drops the uploaded texture for img.
func (r *Renderer) Forget(img image.Image) {
	if t, ok := r.textures[img]; ok {
		t.Deallocate()
		delete(r.textures, img)
	}
}

func (r *Renderer) source(img image.Image) *ebiten.Image {
	if img == nil {
		if r.white == nil {
			r.white = ebiten.NewImage(1, 1)
			r.white.Fill(color.White)
		}
		return r.white
	}
	if t, ok := r.textures[img]; ok {
		return t
	}
	t := ebiten.NewImageFromImage(img)
	r.textures[img] = t
	return t
}

// GeoM extracts the 2D affine part of a world matrix. mgl32 matrices are
// column-major: m[12] and m[13] hold the translation.
func GeoM(m mgl32.Mat4) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, float64(m[0]))
	g.SetElement(0, 1, float64(m[4]))
	g.SetElement(0, 2, float64(m[12]))
	g.SetElement(1, 0, float64(m[1]))
	g.SetElement(1, 1, float64(m[5]))
	g.SetElement(1, 2, float64(m[13]))
	return g
}

// ColorScale returns the premultiplied tint for cmd. Textured quads keep
// their texture colors and only fade by opacity.
func ColorScale(cmd lumen.DrawCommand) ebiten.ColorScale {
	var cs ebiten.ColorScale
	a := max(0, min(1, cmd.Opacity))
	if cmd.Textured() {
		cs.Scale(a, a, a, a)
		return cs
	}
	cs.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
	return cs
}

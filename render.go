package lumen

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// DrawCommand is a single quad draw emitted during the render walk. The quad
// spans (0, 0)-(Width, Height) in the layer's local space.
type DrawCommand struct {
	Layer      string
	Transform  mgl32.Mat4 // world transform
	Projection mgl32.Mat4
	Color      Color
	Opacity    float32
	Width      float32
	Height     float32

	// ImagePath is the layer's image path, "" when untextured.
	ImagePath string
	// Image is the resolved texture, nil for a solid-color quad.
	Image image.Image
}

// Textured reports whether the command carries a texture.
func (c *DrawCommand) Textured() bool { return c.Image != nil }

// Renderer draws quads. Backends implement it; the scene graph knows nothing
// about shaders or GPU buffers.
type Renderer interface {
	DrawQuad(cmd DrawCommand)
}

// CommandRecorder is a Renderer that records every command it receives.
type CommandRecorder struct {
	Commands []DrawCommand
}

// DrawQuad appends cmd.
func (r *CommandRecorder) DrawQuad(cmd DrawCommand) {
	r.Commands = append(r.Commands, cmd)
}

// Reset drops the recorded commands, keeping capacity.
func (r *CommandRecorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Names returns the layer names of the recorded commands in draw order.
func (r *CommandRecorder) Names() []string {
	out := make([]string, len(r.Commands))
	for i := range r.Commands {
		out[i] = r.Commands[i].Layer
	}
	return out
}

// renderContext carries per-frame state through the render walk.
type renderContext struct {
	renderer   Renderer
	projection mgl32.Mat4
	images     *ImageCache
	draws      int
}

// render draws l and its subtree. Invisible layers are skipped along with
// their whole subtree. Sublayers are drawn in order except the focused one,
// which is drawn last so it overlaps its siblings.
func (l *Layer) render(ctx *renderContext, parent *mgl32.Mat4) {
	if !l.Visible {
		return
	}
	world := l.worldMatrix(parent)

	cmd := DrawCommand{
		Layer:      l.Name,
		Transform:  world,
		Projection: ctx.projection,
		Color:      l.color,
		Opacity:    l.Opacity,
		Width:      float32(l.Width),
		Height:     float32(l.Height),
		ImagePath:  l.imagePath,
	}
	switch {
	case l.textImage != nil:
		cmd.Image = l.textImage
	case l.imagePath != "" && ctx.images != nil:
		if img := ctx.images.Load(l.imagePath); img != nil {
			cmd.Image = img
		}
	}
	ctx.renderer.DrawQuad(cmd)
	ctx.draws++

	if len(l.sublayers) == 0 {
		return
	}
	for i, c := range l.sublayers {
		if i != l.focusedIndex {
			c.render(ctx, &world)
		}
	}
	l.sublayers[l.focusedIndex].render(ctx, &world)
}

// Render draws l's subtree through r without a Scene. parent may be nil.
func (l *Layer) Render(r Renderer, parent *mgl32.Mat4, projection mgl32.Mat4) {
	ctx := renderContext{renderer: r, projection: projection}
	l.render(&ctx, parent)
}

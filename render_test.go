package lumen

import (
	"image"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func renderTree(root *Layer) *CommandRecorder {
	rec := &CommandRecorder{}
	root.Render(rec, nil, OrthoProjection(640, 480))
	return rec
}

func TestRenderFocusedSublayerLast(t *testing.T) {
	root := NewLayer("root", 10, 10, nil)
	for _, name := range []string{"c0", "c1", "c2"} {
		root.AddSublayer(NewLayer(name, 10, 10, nil))
	}
	root.SelectNextSublayer()

	rec := renderTree(root)
	want := []string{"root", "c0", "c2", "c1"}
	if got := rec.Names(); !slices.Equal(got, want) {
		t.Errorf("draw order = %v, want %v", got, want)
	}
}

func TestRenderDefaultFocusFirst(t *testing.T) {
	root := NewLayer("root", 10, 10, nil)
	for _, name := range []string{"c0", "c1"} {
		root.AddSublayer(NewLayer(name, 10, 10, nil))
	}
	want := []string{"root", "c1", "c0"}
	if got := renderTree(root).Names(); !slices.Equal(got, want) {
		t.Errorf("draw order = %v, want %v", got, want)
	}
}

func TestRenderSkipsInvisibleSubtree(t *testing.T) {
	root := NewLayer("root", 10, 10, nil)
	hidden := NewLayer("hidden", 10, 10, nil)
	hidden.AddSublayer(NewLayer("grandchild", 10, 10, nil))
	hidden.Visible = false
	root.AddSublayer(hidden)
	root.AddSublayer(NewLayer("shown", 10, 10, nil))

	want := []string{"root", "shown"}
	if got := renderTree(root).Names(); !slices.Equal(got, want) {
		t.Errorf("draw order = %v, want %v", got, want)
	}
}

func TestRenderInvisibleRootDrawsNothing(t *testing.T) {
	root := NewLayer("root", 10, 10, nil)
	root.Visible = false
	if n := len(renderTree(root).Commands); n != 0 {
		t.Errorf("commands = %d, want 0", n)
	}
}

func TestRenderCommandFields(t *testing.T) {
	root := NewLayer("root", 20, 30, nil)
	root.SetPosition(5, 6)
	root.SetColor(1, 0, 0.5)
	root.SetOpacity(0.25)

	proj := OrthoProjection(640, 480)
	rec := &CommandRecorder{}
	root.Render(rec, nil, proj)
	if len(rec.Commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(rec.Commands))
	}
	cmd := rec.Commands[0]
	if cmd.Width != 20 || cmd.Height != 30 {
		t.Errorf("size = %vx%v, want 20x30", cmd.Width, cmd.Height)
	}
	if cmd.Color != (Color{1, 0, 0.5}) || cmd.Opacity != 0.25 {
		t.Errorf("color/opacity = %v/%v", cmd.Color, cmd.Opacity)
	}
	if cmd.Projection != proj {
		t.Error("projection not forwarded")
	}
	if cmd.Transform != root.ModelMatrix() {
		t.Error("root transform should be its model matrix")
	}
	if cmd.Textured() {
		t.Error("solid layer should not be textured")
	}
}

func TestRenderChildTransformIncludesParent(t *testing.T) {
	root := NewLayer("root", 10, 10, nil)
	root.SetPosition(100, 0)
	child := NewLayer("child", 10, 10, nil)
	child.SetPosition(0, 50)
	root.AddSublayer(child)

	rec := renderTree(root)
	x, y := TransformPoint(rec.Commands[1].Transform, 0, 0)
	if !mgl32.FloatEqualThreshold(x, 100, eps) || !mgl32.FloatEqualThreshold(y, 50, eps) {
		t.Errorf("child origin = (%v, %v), want (100, 50)", x, y)
	}
}

func TestRenderTextImageTakesPrecedence(t *testing.T) {
	l := NewLayer("label", 1, 1, nil)
	l.SetImage("ignored.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	if err := l.SetText(stubText{img}, "hi"); err != nil {
		t.Fatal(err)
	}
	rec := renderTree(l)
	cmd := rec.Commands[0]
	if cmd.Image != img {
		t.Error("text bitmap should be the texture")
	}
	if cmd.ImagePath != "" {
		t.Errorf("ImagePath = %q, want empty", cmd.ImagePath)
	}
}

func TestCommandRecorderReset(t *testing.T) {
	rec := renderTree(NewLayer("root", 1, 1, nil))
	rec.Reset()
	if len(rec.Commands) != 0 {
		t.Error("Reset should drop commands")
	}
}

// stubText returns a fixed bitmap.
type stubText struct{ img *image.RGBA }

func (s stubText) RenderText(string) (*image.RGBA, error) { return s.img, nil }

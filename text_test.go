package lumen

import (
	"errors"
	"testing"
)

func newTestFont(t *testing.T) *FontRenderer {
	t.Helper()
	r, err := NewDefaultFontRenderer()
	if err != nil {
		t.Fatalf("NewDefaultFontRenderer: %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRenderTextPadding(t *testing.T) {
	r := newTestFont(t)
	img, err := r.RenderText("Hello")
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() <= 2*DefaultTextPadding || b.Dy() <= 2*DefaultTextPadding {
		t.Errorf("bounds = %v, want larger than padding on both axes", b)
	}

	r.Padding = 0
	bare, err := r.RenderText("Hello")
	if err != nil {
		t.Fatal(err)
	}
	if bare.Bounds().Dx()+2*DefaultTextPadding != b.Dx() {
		t.Errorf("padded width = %d, want %d", b.Dx(), bare.Bounds().Dx()+2*DefaultTextPadding)
	}
	if bare.Bounds().Dy()+2*DefaultTextPadding != b.Dy() {
		t.Errorf("padded height = %d, want %d", b.Dy(), bare.Bounds().Dy()+2*DefaultTextPadding)
	}
}

func TestRenderTextMultiline(t *testing.T) {
	r := newTestFont(t)
	one, err := r.RenderText("line")
	if err != nil {
		t.Fatal(err)
	}
	two, err := r.RenderText("line\nline")
	if err != nil {
		t.Fatal(err)
	}
	if two.Bounds().Dy() <= one.Bounds().Dy() {
		t.Errorf("two lines height %d, want > %d", two.Bounds().Dy(), one.Bounds().Dy())
	}
	if two.Bounds().Dx() != one.Bounds().Dx() {
		t.Errorf("width = %d, want %d", two.Bounds().Dx(), one.Bounds().Dx())
	}
}

func TestRenderTextEmpty(t *testing.T) {
	r := newTestFont(t)
	for _, s := range []string{"", "  ", "\n"} {
		if _, err := r.RenderText(s); !errors.Is(err, ErrEmptyText) {
			t.Errorf("RenderText(%q) err = %v, want ErrEmptyText", s, err)
		}
	}
}

func TestNewFontRendererBadData(t *testing.T) {
	if _, err := NewFontRenderer([]byte("not a font"), 12); err == nil {
		t.Error("expected parse error")
	}
}

func TestLayerSetText(t *testing.T) {
	r := newTestFont(t)
	l := NewLayer("label", 1, 1, nil)
	l.SetImage("ignored.png")
	l.needsLayout = false

	if err := l.SetText(r, "Hi"); err != nil {
		t.Fatal(err)
	}
	img := l.TextImage()
	if img == nil {
		t.Fatal("TextImage is nil")
	}
	w, h := l.Bounds()
	if int(w) != img.Bounds().Dx() || int(h) != img.Bounds().Dy() {
		t.Errorf("Bounds = %dx%d, want %v", w, h, img.Bounds())
	}
	if l.ImagePath() != "" {
		t.Errorf("ImagePath = %q, want empty", l.ImagePath())
	}
	if !l.NeedsLayout() {
		t.Error("SetText should mark needs-layout")
	}

	if err := l.SetText(r, ""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("err = %v, want ErrEmptyText", err)
	}
	if l.TextImage() != img {
		t.Error("failed SetText should keep the previous bitmap")
	}
}

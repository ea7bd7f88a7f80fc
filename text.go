package lumen

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRenderer turns a string into an RGBA bitmap.
type TextRenderer interface {
	RenderText(text string) (*image.RGBA, error)
}

// Defaults for FontRenderer.
const (
	DefaultFontSize    = 45
	DefaultTextPadding = 20
)

// DefaultTextColor is the glyph color used by NewFontRenderer.
var DefaultTextColor = color.RGBA{R: 255, A: 255}

// ErrEmptyText is returned when there is nothing to rasterize.
var ErrEmptyText = errors.New("lumen: empty text")

// FontRenderer rasterizes text with an OpenType face. Lines are separated by
// '\n'; the bitmap is padded by Padding pixels on every side.
type FontRenderer struct {
	Color   color.Color
	Padding int

	face font.Face
}

// NewFontRenderer parses ttf and builds a face at size pixels.
func NewFontRenderer(ttf []byte, size float64) (*FontRenderer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size: size, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return &FontRenderer{Color: DefaultTextColor, Padding: DefaultTextPadding, face: face}, nil
}

// LoadFontRenderer reads a TTF/OTF file from disk.
func LoadFontRenderer(path string, size float64) (*FontRenderer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFontRenderer(data, size)
}

// NewDefaultFontRenderer uses the Go Regular face at DefaultFontSize.
func NewDefaultFontRenderer() (*FontRenderer, error) {
	return NewFontRenderer(goregular.TTF, DefaultFontSize)
}

// Close releases the face.
func (r *FontRenderer) Close() error {
	return r.face.Close()
}

// RenderText draws text into a new bitmap sized to the laid-out lines.
func (r *FontRenderer) RenderText(text string) (*image.RGBA, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	lines := strings.Split(text, "\n")

	m := r.face.Metrics()
	lineHeight := m.Height.Ceil()
	width := 0
	for _, line := range lines {
		width = max(width, font.MeasureString(r.face, line).Ceil())
	}
	height := lineHeight * len(lines)

	pad := r.Padding
	img := image.NewRGBA(image.Rect(0, 0, width+2*pad, height+2*pad))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.Color),
		Face: r.face,
	}
	for i, line := range lines {
		baseline := pad + i*lineHeight + m.Ascent.Ceil()
		d.Dot = fixed.P(pad, baseline)
		d.DrawString(line)
	}
	return img, nil
}

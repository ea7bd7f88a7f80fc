package ebitenrender

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/lumen"
)

// keyMap lists the native keys the scene graph understands.
var keyMap = [...]struct {
	native ebiten.Key
	key    lumen.Key
}{
	{ebiten.KeySpace, lumen.KeySpace},
	{ebiten.KeyEnter, lumen.KeyEnter},
	{ebiten.KeyTab, lumen.KeyTab},
	{ebiten.KeyBackspace, lumen.KeyBackspace},
	{ebiten.KeyEscape, lumen.KeyEscape},
	{ebiten.KeyArrowRight, lumen.KeyRight},
	{ebiten.KeyArrowLeft, lumen.KeyLeft},
	{ebiten.KeyArrowDown, lumen.KeyDown},
	{ebiten.KeyArrowUp, lumen.KeyUp},
}

// TranslateKey maps an Ebitengine key to a lumen.Key. Keys outside the
// scene graph's key set report false.
func TranslateKey(k ebiten.Key) (lumen.Key, bool) {
	for _, m := range keyMap {
		if m.native == k {
			return m.key, true
		}
	}
	return 0, false
}

// NativeKey is the inverse of TranslateKey.
func NativeKey(k lumen.Key) (ebiten.Key, bool) {
	for _, m := range keyMap {
		if m.key == k {
			return m.native, true
		}
	}
	return 0, false
}

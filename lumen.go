package lumen

import (
	"strconv"
	"strings"
)

// Color is an RGB fill color with components in [0, 1]. Opacity is carried
// separately on the Layer.
type Color struct {
	R, G, B float32
}

// ColorWhite is the default layer color.
var ColorWhite = Color{1, 1, 1}

// Rect is an axis-aligned rectangle in parent-relative coordinates. The origin
// is the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float32
}

// Key is the closed set of logical keys the scene graph reasons about.
// Translating native key codes into a Key is the caller's job.
type Key uint8

const (
	KeySpace     Key = iota // space bar
	KeyEnter                // return / enter
	KeyTab                  // tab
	KeyBackspace            // backspace
	KeyEscape               // escape
	KeyRight                // right arrow
	KeyLeft                 // left arrow
	KeyDown                 // down arrow
	KeyUp                   // up arrow
)

var keyNames = [...]string{
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeyRight:     "Right",
	KeyLeft:      "Left",
	KeyDown:      "Down",
	KeyUp:        "Up",
}

// String returns the key's name.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Key(" + strconv.Itoa(int(k)) + ")"
}

// ParseKey returns the Key whose name matches s, ignoring case.
func ParseKey(s string) (Key, bool) {
	for i, name := range keyNames {
		if strings.EqualFold(name, s) {
			return Key(i), true
		}
	}
	return 0, false
}

// LayoutMode selects whether a Scene carries an external flex solver.
type LayoutMode uint8

const (
	LayoutUserDefine LayoutMode = iota // layers position their children manually
	LayoutFlex                         // a FlexSolver computes positions each layout pass
)

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

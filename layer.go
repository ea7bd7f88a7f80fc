package lumen

import (
	"image"
	"time"
)

// EventHandler receives focus and key events for a single Layer.
type EventHandler interface {
	KeyFocusIn(l *Layer)
	KeyFocusOut(l *Layer)
	KeyDown(key Key, l *Layer)
}

// EventHandlerFuncs adapts plain functions to EventHandler. Nil fields are
// skipped.
type EventHandlerFuncs struct {
	OnFocusIn  func(l *Layer)
	OnFocusOut func(l *Layer)
	OnKeyDown  func(key Key, l *Layer)
}

func (h EventHandlerFuncs) KeyFocusIn(l *Layer) {
	if h.OnFocusIn != nil {
		h.OnFocusIn(l)
	}
}

func (h EventHandlerFuncs) KeyFocusOut(l *Layer) {
	if h.OnFocusOut != nil {
		h.OnFocusOut(l)
	}
}

func (h EventHandlerFuncs) KeyDown(key Key, l *Layer) {
	if h.OnKeyDown != nil {
		h.OnKeyDown(key, l)
	}
}

// keyedAnimation is one entry of a layer's animation list. The legacy
// single-slot animation has hasKey == false.
type keyedAnimation struct {
	key    string
	hasKey bool
	anim   *Animation
}

// Layer is the scene graph vertex: a colored or textured quad with
// parent-relative geometry, live transform state, and exclusively owned
// sublayers.
type Layer struct {
	Name string

	// Geometry (parent-relative)
	X, Y             int
	Z                float32
	Width, Height    uint32
	AnchorX, AnchorY float32

	// Live transform state
	ScaleX, ScaleY float32
	Rotation       int // degrees
	Opacity        float32
	Visible        bool

	color     Color
	imagePath string
	textImage *image.RGBA

	// Hierarchy
	parent    *Layer
	sublayers []*Layer

	// Animation
	animations []keyedAnimation
	animated   bool

	// Interaction
	eventHandler EventHandler
	focused      bool
	focusedIndex int

	// Layout
	layout      Layout
	style       *FlexStyle
	layoutNode  LayoutNodeID
	needsLayout bool

	// UserData is free for callers.
	UserData any
}

// NewLayer creates a visible, white, untextured layer with its anchor at the
// center. handler may be nil.
func NewLayer(name string, width, height uint32, handler EventHandler) *Layer {
	return &Layer{
		Name:         name,
		Width:        width,
		Height:       height,
		AnchorX:      0.5,
		AnchorY:      0.5,
		ScaleX:       1,
		ScaleY:       1,
		Opacity:      1,
		Visible:      true,
		color:        ColorWhite,
		eventHandler: handler,
		layoutNode:   NoLayoutNode,
		needsLayout:  true,
	}
}

// --- Tree manipulation ---

// AddSublayer appends child to l's sublayers.
// Panics if child is nil, already has a parent, or is l or one of its
// ancestors.
func (l *Layer) AddSublayer(child *Layer) {
	l.checkAttach(child)
	child.parent = l
	l.sublayers = append(l.sublayers, child)
	l.SetNeedsLayout()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(l)
	}
}

// AddSublayerAt inserts child at index. Same preconditions as AddSublayer.
func (l *Layer) AddSublayerAt(child *Layer, index int) {
	l.checkAttach(child)
	if index < 0 || index > len(l.sublayers) {
		panic("lumen: sublayer index out of range")
	}
	child.parent = l
	l.sublayers = append(l.sublayers, nil)
	copy(l.sublayers[index+1:], l.sublayers[index:])
	l.sublayers[index] = child
	if index <= l.focusedIndex && len(l.sublayers) > 1 {
		l.focusedIndex++
	}
	l.SetNeedsLayout()
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(l)
	}
}

func (l *Layer) checkAttach(child *Layer) {
	if child == nil {
		panic("lumen: cannot add nil sublayer")
	}
	if child.parent != nil {
		panic("lumen: sublayer " + child.Name + " already has a parent")
	}
	if isAncestor(child, l) {
		panic("lumen: adding sublayer would create a cycle")
	}
}

// RemoveSublayer detaches child from l.
// Panics if child's parent is not l.
func (l *Layer) RemoveSublayer(child *Layer) {
	if child.parent != l {
		panic("lumen: sublayer's parent is not this layer")
	}
	for i, c := range l.sublayers {
		if c == child {
			l.removeAt(i)
			return
		}
	}
}

// RemoveFromParent detaches l from its parent. No-op on a root.
func (l *Layer) RemoveFromParent() {
	if l.parent == nil {
		return
	}
	l.parent.RemoveSublayer(l)
}

func (l *Layer) removeAt(i int) {
	child := l.sublayers[i]
	copy(l.sublayers[i:], l.sublayers[i+1:])
	l.sublayers[len(l.sublayers)-1] = nil
	l.sublayers = l.sublayers[:len(l.sublayers)-1]
	child.parent = nil
	hadFocus := i == l.focusedIndex && child.focused
	switch {
	case len(l.sublayers) == 0:
		l.focusedIndex = 0
	case i < l.focusedIndex || l.focusedIndex >= len(l.sublayers):
		l.focusedIndex--
	}
	// The selection passes to the sublayer that now sits at the focused index.
	if hadFocus {
		child.SetFocus(false)
		if len(l.sublayers) > 0 {
			l.sublayers[l.focusedIndex].SetFocus(true)
		}
	}
	l.SetNeedsLayout()
}

// Sublayers returns the sublayer list. The returned slice MUST NOT be mutated.
func (l *Layer) Sublayers() []*Layer { return l.sublayers }

// NumSublayers returns the number of sublayers.
func (l *Layer) NumSublayers() int { return len(l.sublayers) }

// SublayerAt returns the sublayer at index.
func (l *Layer) SublayerAt(index int) *Layer { return l.sublayers[index] }

// Parent returns the owning layer, or nil for a root.
func (l *Layer) Parent() *Layer { return l.parent }

// FindSublayer returns the first descendant named name, searching depth-first.
func (l *Layer) FindSublayer(name string) *Layer {
	for _, c := range l.sublayers {
		if c.Name == name {
			return c
		}
		if found := c.FindSublayer(name); found != nil {
			return found
		}
	}
	return nil
}

func isAncestor(candidate, l *Layer) bool {
	for p := l; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Properties ---

// SetPosition sets X and Y.
func (l *Layer) SetPosition(x, y int) {
	l.X = x
	l.Y = y
}

// Position returns X and Y.
func (l *Layer) Position() (x, y int) { return l.X, l.Y }

// SetBounds sets the layer size.
func (l *Layer) SetBounds(width, height uint32) {
	l.Width = width
	l.Height = height
}

// Bounds returns the layer size.
func (l *Layer) Bounds() (width, height uint32) { return l.Width, l.Height }

// SetOpacity sets the opacity, clamped to [0, 1].
func (l *Layer) SetOpacity(opacity float32) {
	l.Opacity = max(0, min(1, opacity))
}

// SetColor sets the fill color.
func (l *Layer) SetColor(r, g, b float32) {
	l.color = Color{r, g, b}
}

// Color returns the fill color.
func (l *Layer) Color() Color { return l.color }

// SetBackgroundColor is the CoreAnimation name for SetColor.
func (l *Layer) SetBackgroundColor(r, g, b float32) { l.SetColor(r, g, b) }

// BackgroundColor returns the fill color components.
func (l *Layer) BackgroundColor() (r, g, b float32) {
	return l.color.R, l.color.G, l.color.B
}

// SetVisible shows or hides the layer. A change marks the tree for relayout.
func (l *Layer) SetVisible(visible bool) {
	if l.Visible == visible {
		return
	}
	l.Visible = visible
	l.SetNeedsLayout()
}

// SetImage sets the image drawn on the quad and drops any rendered text.
// An empty path draws a solid-color quad.
func (l *Layer) SetImage(path string) {
	l.imagePath = path
	l.textImage = nil
}

// ImagePath returns the image path, or "" when untextured.
func (l *Layer) ImagePath() string { return l.imagePath }

// SetText renders text through r and uses the bitmap as the layer content.
// The layer is resized to the bitmap.
func (l *Layer) SetText(r TextRenderer, text string) error {
	img, err := r.RenderText(text)
	if err != nil {
		return err
	}
	b := img.Bounds()
	l.textImage = img
	l.imagePath = ""
	l.Width = uint32(b.Dx())
	l.Height = uint32(b.Dy())
	l.SetNeedsLayout()
	return nil
}

// TextImage returns the rendered text bitmap, or nil.
func (l *Layer) TextImage() *image.RGBA { return l.textImage }

// SetEventHandler replaces the event handler. nil detaches it.
func (l *Layer) SetEventHandler(h EventHandler) { l.eventHandler = h }

// EventHandler returns the attached event handler.
func (l *Layer) EventHandler() EventHandler { return l.eventHandler }

// --- Animations ---

// SetAnimation replaces the single unkeyed animation. nil removes it.
func (l *Layer) SetAnimation(a *Animation) {
	for i, e := range l.animations {
		if !e.hasKey {
			if a == nil {
				l.animations = append(l.animations[:i], l.animations[i+1:]...)
			} else {
				l.animations[i].anim = a
				a.snap(l)
			}
			return
		}
	}
	if a != nil {
		l.animations = append(l.animations, keyedAnimation{anim: a})
		a.snap(l)
	}
}

// Animation returns the unkeyed animation, or nil.
func (l *Layer) Animation() *Animation {
	for _, e := range l.animations {
		if !e.hasKey {
			return e.anim
		}
	}
	return nil
}

// AddAnimation attaches a under key. An empty key targets the unkeyed slot.
// Re-adding an existing key replaces that animation in place.
func (l *Layer) AddAnimation(a *Animation, key string) {
	if a == nil {
		return
	}
	if key == "" {
		l.SetAnimation(a)
		return
	}
	for i, e := range l.animations {
		if e.hasKey && e.key == key {
			l.animations[i].anim = a
			a.snap(l)
			return
		}
	}
	l.animations = append(l.animations, keyedAnimation{key: key, hasKey: true, anim: a})
	a.snap(l)
}

// AnimationForKey returns the animation attached under key, or nil.
func (l *Layer) AnimationForKey(key string) *Animation {
	for _, e := range l.animations {
		if e.hasKey && e.key == key {
			return e.anim
		}
	}
	return nil
}

// AnimationKeys returns the keys of the keyed animations in run order.
func (l *Layer) AnimationKeys() []string {
	var keys []string
	for _, e := range l.animations {
		if e.hasKey {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// RemoveAnimation detaches the animation under key. A missing key is logged
// and ignored.
func (l *Layer) RemoveAnimation(key string) {
	for i, e := range l.animations {
		if e.hasKey && e.key == key {
			l.animations = append(l.animations[:i], l.animations[i+1:]...)
			return
		}
	}
	Logger().Warn("no animation for key", "layer", l.Name, "key", key)
}

// RemoveAllAnimations detaches every keyed animation and the unkeyed one.
func (l *Layer) RemoveAllAnimations() {
	clear(l.animations)
	l.animations = l.animations[:0]
	l.animated = false
}

// Animated reports whether any attached animation was still running after
// the last animate pass.
func (l *Layer) Animated() bool { return l.animated }

// animate runs the attached animations in attach order, then recurses into
// every sublayer regardless of visibility or focus. When two animations drive
// the same property, the later one wins for the frame.
func (l *Layer) animate(now time.Time) {
	active := false
	for _, e := range l.animations {
		e.anim.Run(l, now)
		active = active || e.anim.IsActive()
	}
	l.animated = active
	for _, c := range l.sublayers {
		c.animate(now)
	}
}

// --- Focus and input ---

// SetFocus updates the focus flag and notifies the event handler.
func (l *Layer) SetFocus(focused bool) {
	l.focused = focused
	if l.eventHandler == nil {
		return
	}
	if focused {
		l.eventHandler.KeyFocusIn(l)
	} else {
		l.eventHandler.KeyFocusOut(l)
	}
}

// Focused reports whether l holds focus within its parent.
func (l *Layer) Focused() bool { return l.focused }

// FocusedIndex returns the index of the selected sublayer. Meaningful only
// when l has sublayers.
func (l *Layer) FocusedIndex() int { return l.focusedIndex }

// FocusedSublayer returns the selected sublayer, or nil without sublayers.
func (l *Layer) FocusedSublayer() *Layer {
	if len(l.sublayers) == 0 {
		return nil
	}
	return l.sublayers[l.focusedIndex]
}

// SelectNextSublayer moves the selection one sublayer forward. No-op at the
// last sublayer or without sublayers.
func (l *Layer) SelectNextSublayer() {
	if len(l.sublayers) == 0 || l.focusedIndex >= len(l.sublayers)-1 {
		return
	}
	l.moveFocus(l.focusedIndex + 1)
}

// SelectPrevSublayer moves the selection one sublayer back. No-op at the
// first sublayer or without sublayers.
func (l *Layer) SelectPrevSublayer() {
	if len(l.sublayers) == 0 || l.focusedIndex == 0 {
		return
	}
	l.moveFocus(l.focusedIndex - 1)
}

func (l *Layer) moveFocus(next int) {
	prev := l.focusedIndex
	l.focusedIndex = next
	l.sublayers[next].SetFocus(true)
	l.sublayers[prev].SetFocus(false)
}

// HandleInput dispatches key to the focused sublayers first, then to l's own
// event handler.
func (l *Layer) HandleInput(key Key) {
	for _, c := range l.sublayers {
		if c.focused {
			c.HandleInput(key)
		}
	}
	if l.eventHandler != nil {
		l.eventHandler.KeyDown(key, l)
	}
}

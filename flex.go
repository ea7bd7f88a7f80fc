package lumen

import (
	"fmt"
	"math"

	"github.com/kjk/flex"
)

// FlexDirection is the main axis of a flex container.
type FlexDirection uint8

const (
	FlexRow FlexDirection = iota
	FlexColumn
)

// FlexJustify distributes children along the main axis.
type FlexJustify uint8

const (
	JustifyStart FlexJustify = iota
	JustifyCenter
	JustifyEnd
	JustifySpaceBetween
	JustifySpaceAround
)

// FlexAlign positions children on the cross axis.
type FlexAlign uint8

const (
	AlignStart FlexAlign = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Edges holds per-side values in pixels.
type Edges struct {
	Left, Top, Right, Bottom float32
}

// UniformEdges returns Edges with v on every side.
func UniformEdges(v float32) Edges { return Edges{v, v, v, v} }

// FlexStyle is the box style a layer is registered with. A zero Width or
// Height leaves that dimension to the solver.
type FlexStyle struct {
	Width, Height float32
	Direction     FlexDirection
	Justify       FlexJustify
	AlignItems    FlexAlign
	Wrap          bool
	Margin        Edges
	Padding       Edges
}

// DefaultFlexMargin is the margin FlexLayout gives layers without a style.
const DefaultFlexMargin = 2

// DefaultFlexStyle is the style used for a layer without an explicit one:
// its own size with DefaultFlexMargin on every side.
func DefaultFlexStyle(l *Layer) FlexStyle {
	return FlexStyle{
		Width:  float32(l.Width),
		Height: float32(l.Height),
		Margin: UniformEdges(DefaultFlexMargin),
	}
}

// --- Solver on kjk/flex ---

// FlexSolver implements Solver on a flexbox engine. Handles are indices into
// the node list and are invalidated by Reset.
type FlexSolver struct {
	nodes    []*flex.Node
	children []int
	parents  []LayoutNodeID
	computed []bool
}

// NewFlexSolver creates an empty solver.
func NewFlexSolver() *FlexSolver {
	return &FlexSolver{}
}

// Reset drops every node.
func (s *FlexSolver) Reset() {
	clear(s.nodes)
	s.nodes = s.nodes[:0]
	s.children = s.children[:0]
	s.parents = s.parents[:0]
	s.computed = s.computed[:0]
}

// Len returns the number of registered nodes.
func (s *FlexSolver) Len() int { return len(s.nodes) }

// NewNode registers a box.
func (s *FlexSolver) NewNode(style FlexStyle) LayoutNodeID {
	n := flex.NewNode()
	applyFlexStyle(n, style)
	s.nodes = append(s.nodes, n)
	s.children = append(s.children, 0)
	s.parents = append(s.parents, NoLayoutNode)
	s.computed = append(s.computed, false)
	return LayoutNodeID(len(s.nodes) - 1)
}

// AddChild appends child to parent. A child can be linked once.
func (s *FlexSolver) AddChild(parent, child LayoutNodeID) error {
	p := s.node(parent)
	c := s.node(child)
	if parent == child {
		return fmt.Errorf("flex node %d cannot be its own child", child)
	}
	if s.parents[child] != NoLayoutNode {
		return fmt.Errorf("flex node %d already has parent %d", child, s.parents[child])
	}
	if s.computed[parent] {
		return fmt.Errorf("flex node %d is already computed", parent)
	}
	p.InsertChild(c, s.children[parent])
	s.children[parent]++
	s.parents[child] = parent
	return nil
}

// ComputeLayout solves the tree under root.
func (s *FlexSolver) ComputeLayout(root LayoutNodeID, availableWidth, availableHeight float32) error {
	n := s.node(root)
	if s.parents[root] != NoLayoutNode {
		return fmt.Errorf("flex node %d is not a root", root)
	}
	flex.CalculateLayout(n, availableWidth, availableHeight, flex.DirectionLTR)
	for id := range s.nodes {
		if s.rootOf(LayoutNodeID(id)) == root {
			s.computed[id] = true
		}
	}
	return nil
}

// Computed reports whether id belongs to a tree solved by ComputeLayout.
func (s *FlexSolver) Computed(id LayoutNodeID) bool {
	s.node(id)
	return s.computed[id]
}

func (s *FlexSolver) rootOf(id LayoutNodeID) LayoutNodeID {
	for s.parents[id] != NoLayoutNode {
		id = s.parents[id]
	}
	return id
}

// Layout returns the solved box of id, relative to its parent. It fails
// for a node whose tree has not been computed since it was registered.
func (s *FlexSolver) Layout(id LayoutNodeID) (Rect, error) {
	n := s.node(id)
	if !s.computed[id] {
		return Rect{}, fmt.Errorf("flex node %d is not in a computed tree", id)
	}
	return Rect{
		X:      n.LayoutGetLeft(),
		Y:      n.LayoutGetTop(),
		Width:  n.LayoutGetWidth(),
		Height: n.LayoutGetHeight(),
	}, nil
}

// node resolves a handle. An unknown handle is a caller ordering bug.
func (s *FlexSolver) node(id LayoutNodeID) *flex.Node {
	if id < 0 || int(id) >= len(s.nodes) {
		panic(fmt.Sprintf("lumen: unknown layout node %d", id))
	}
	return s.nodes[id]
}

func applyFlexStyle(n *flex.Node, st FlexStyle) {
	if st.Width > 0 {
		n.StyleSetWidth(st.Width)
	}
	if st.Height > 0 {
		n.StyleSetHeight(st.Height)
	}
	switch st.Direction {
	case FlexColumn:
		n.StyleSetFlexDirection(flex.FlexDirectionColumn)
	default:
		n.StyleSetFlexDirection(flex.FlexDirectionRow)
	}
	switch st.Justify {
	case JustifyCenter:
		n.StyleSetJustifyContent(flex.JustifyCenter)
	case JustifyEnd:
		n.StyleSetJustifyContent(flex.JustifyFlexEnd)
	case JustifySpaceBetween:
		n.StyleSetJustifyContent(flex.JustifySpaceBetween)
	case JustifySpaceAround:
		n.StyleSetJustifyContent(flex.JustifySpaceAround)
	default:
		n.StyleSetJustifyContent(flex.JustifyFlexStart)
	}
	switch st.AlignItems {
	case AlignCenter:
		n.StyleSetAlignItems(flex.AlignCenter)
	case AlignEnd:
		n.StyleSetAlignItems(flex.AlignFlexEnd)
	case AlignStretch:
		n.StyleSetAlignItems(flex.AlignStretch)
	default:
		n.StyleSetAlignItems(flex.AlignFlexStart)
	}
	if st.Wrap {
		n.StyleSetFlexWrap(flex.WrapWrap)
	} else {
		n.StyleSetFlexWrap(flex.WrapNoWrap)
	}
	n.StyleSetMargin(flex.EdgeLeft, st.Margin.Left)
	n.StyleSetMargin(flex.EdgeTop, st.Margin.Top)
	n.StyleSetMargin(flex.EdgeRight, st.Margin.Right)
	n.StyleSetMargin(flex.EdgeBottom, st.Margin.Bottom)
	n.StyleSetPadding(flex.EdgeLeft, st.Padding.Left)
	n.StyleSetPadding(flex.EdgeTop, st.Padding.Top)
	n.StyleSetPadding(flex.EdgeRight, st.Padding.Right)
	n.StyleSetPadding(flex.EdgeBottom, st.Padding.Bottom)
}

// --- Flex layout strategy ---

// FlexLayout registers a layer with the scene's solver and reads its solved
// position back. Layers use their Style, or DefaultFlexStyle when none is
// set. Only the root of a layout pass is computed, so every other flex layer
// needs a registered parent; reading back an unsolved layer panics.
type FlexLayout struct {
	Name string
}

// LayoutSublayers registers l and links it under parent's solver node.
func (f *FlexLayout) LayoutSublayers(l *Layer, parent *Layer, solver Solver) {
	if solver == nil {
		Logger().Warn("flex layout without solver", "layer", l.Name)
		return
	}
	style := DefaultFlexStyle(l)
	if l.style != nil {
		style = *l.style
	}
	id := solver.NewNode(style)
	l.SetLayoutNode(id)
	if parent == nil || !parent.layoutNode.Valid() {
		return
	}
	if err := solver.AddChild(parent.layoutNode, id); err != nil {
		Logger().Warn("flex add child", "layer", l.Name, "err", err)
	}
}

// UpdateLayout copies the solved left/top into l.X and l.Y.
// Panics if l was not registered in this pass or its tree was never
// computed, which happens when an ancestor has no solver node.
func (f *FlexLayout) UpdateLayout(l *Layer, solver Solver) {
	if solver == nil {
		return
	}
	if !l.layoutNode.Valid() {
		panic("lumen: layer " + l.Name + " has no layout node; register before reading layout")
	}
	r, err := solver.Layout(l.layoutNode)
	if err != nil {
		panic(fmt.Sprintf("lumen: layer %s read layout before solving: %v", l.Name, err))
	}
	l.X = int(math.Round(float64(r.X)))
	l.Y = int(math.Round(float64(r.Y)))
	Logger().Debug("flex layout", "layer", l.Name, "x", l.X, "y", l.Y)
}

// Finalize logs the detach.
func (f *FlexLayout) Finalize() {
	Logger().Info("flex layout finalized", "name", f.Name)
}

package lumen

import (
	"fmt"
	"reflect"
)

// LayoutNodeID is an opaque handle into a Solver.
type LayoutNodeID int

// NoLayoutNode marks a layer that is not registered with a solver.
const NoLayoutNode LayoutNodeID = -1

// Valid reports whether id refers to a registered solver node.
func (id LayoutNodeID) Valid() bool { return id >= 0 }

// Solver is an external constraint solver that positions boxes.
type Solver interface {
	// Reset drops every node. Handles from before the reset become invalid.
	Reset()
	// NewNode registers a box with the given style.
	NewNode(style FlexStyle) LayoutNodeID
	// AddChild declares child as the next child of parent.
	AddChild(parent, child LayoutNodeID) error
	// ComputeLayout solves the tree rooted at root for the available size.
	ComputeLayout(root LayoutNodeID, availableWidth, availableHeight float32) error
	// Layout returns the computed box of a node, relative to its parent.
	Layout(id LayoutNodeID) (Rect, error)
}

// Layout is a pluggable strategy that positions a layer's sublayers.
//
// A layout pass calls LayoutSublayers top-down on every layer, asks the
// solver to compute once, then calls UpdateLayout top-down to read results
// back. Finalize runs when the strategy is detached or replaced.
type Layout interface {
	LayoutSublayers(l *Layer, parent *Layer, solver Solver)
	UpdateLayout(l *Layer, solver Solver)
	Finalize()
}

// SetLayout attaches a layout strategy, finalizing the one it replaces.
// Setting the strategy already attached is a no-op for Finalize. Strategies
// of non-comparable types are always treated as replacements.
func (l *Layer) SetLayout(layout Layout) {
	if !sameLayout(l.layout, layout) {
		l.finalizeLayout()
	}
	l.layout = layout
	l.SetNeedsLayout()
}

// sameLayout compares two strategies without panicking on dynamic types
// that do not support ==.
func sameLayout(a, b Layout) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}

// Layout returns the attached layout strategy.
func (l *Layer) Layout() Layout { return l.layout }

// SetStyle sets the flex style the solver registers this layer with.
func (l *Layer) SetStyle(style FlexStyle) {
	l.style = &style
	l.SetNeedsLayout()
}

// Style returns the flex style, or nil when the layer uses defaults.
func (l *Layer) Style() *FlexStyle { return l.style }

// LayoutNode returns the solver handle from the last layout pass.
func (l *Layer) LayoutNode() LayoutNodeID { return l.layoutNode }

// SetLayoutNode records the solver handle for l. Layout strategies call it
// from LayoutSublayers.
func (l *Layer) SetLayoutNode(id LayoutNodeID) { l.layoutNode = id }

// SetNeedsLayout marks l and its ancestors dirty so the owning root runs a
// layout pass at the start of the next frame.
func (l *Layer) SetNeedsLayout() {
	for p := l; p != nil; p = p.parent {
		p.needsLayout = true
	}
}

// NeedsLayout reports whether a layout pass is pending.
func (l *Layer) NeedsLayout() bool { return l.needsLayout }

// layoutSublayers registers l, then each sublayer with l as its parent.
func (l *Layer) layoutSublayers(parent *Layer, solver Solver) {
	l.layoutNode = NoLayoutNode
	if l.layout != nil {
		l.layout.LayoutSublayers(l, parent, solver)
	}
	for _, c := range l.sublayers {
		c.layoutSublayers(l, solver)
	}
}

// updateLayout reads solved positions back top-down and clears the dirty flag.
func (l *Layer) updateLayout(solver Solver) {
	if l.layout != nil {
		l.layout.UpdateLayout(l, solver)
	}
	l.needsLayout = false
	for _, c := range l.sublayers {
		c.updateLayout(solver)
	}
}

// finalizeLayout runs the strategy's teardown hook.
func (l *Layer) finalizeLayout() {
	if l.layout != nil {
		l.layout.Finalize()
	}
}

// runLayoutPass performs a full layout pass on root: register, solve once,
// read back.
func runLayoutPass(root *Layer, solver Solver, width, height int) error {
	if solver != nil {
		solver.Reset()
	}
	root.layoutSublayers(nil, solver)
	if solver != nil && root.layoutNode.Valid() {
		if err := solver.ComputeLayout(root.layoutNode, float32(width), float32(height)); err != nil {
			return fmt.Errorf("compute layout for %q: %w", root.Name, err)
		}
	}
	root.updateLayout(solver)
	return nil
}

// --- Manual grid layout ---

// GridLayout places sublayers on a fixed grid, filling rows of Columns cells
// left to right. It never touches the solver.
type GridLayout struct {
	Columns    int
	CellWidth  int
	CellHeight int
}

// LayoutSublayers assigns each sublayer its cell position.
func (g *GridLayout) LayoutSublayers(l *Layer, _ *Layer, _ Solver) {
	cols := max(g.Columns, 1)
	for i, c := range l.sublayers {
		c.X = i % cols * g.CellWidth
		c.Y = i / cols * g.CellHeight
	}
	Logger().Debug("grid layout", "layer", l.Name, "sublayers", len(l.sublayers))
}

// UpdateLayout is a no-op: positions were assigned directly.
func (g *GridLayout) UpdateLayout(*Layer, Solver) {}

// Finalize logs the detach.
func (g *GridLayout) Finalize() {
	Logger().Info("grid layout finalized")
}

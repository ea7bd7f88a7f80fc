package lumen

import (
	"fmt"
	"slices"
	"testing"
)

// fakeSolver records calls and serves layouts from a fixed table keyed by
// registration order.
type fakeSolver struct {
	calls   []string
	styles  []FlexStyle
	parents map[LayoutNodeID]LayoutNodeID
	rects   map[LayoutNodeID]Rect
	solved  bool
}

func newFakeSolver() *fakeSolver {
	return &fakeSolver{
		parents: make(map[LayoutNodeID]LayoutNodeID),
		rects:   make(map[LayoutNodeID]Rect),
	}
}

func (f *fakeSolver) Reset() {
	f.calls = append(f.calls, "reset")
	f.styles = f.styles[:0]
	clear(f.parents)
	f.solved = false
}

func (f *fakeSolver) NewNode(style FlexStyle) LayoutNodeID {
	f.styles = append(f.styles, style)
	id := LayoutNodeID(len(f.styles) - 1)
	f.calls = append(f.calls, fmt.Sprintf("new:%d", id))
	return id
}

func (f *fakeSolver) AddChild(parent, child LayoutNodeID) error {
	f.calls = append(f.calls, fmt.Sprintf("add:%d->%d", parent, child))
	f.parents[child] = parent
	return nil
}

func (f *fakeSolver) ComputeLayout(root LayoutNodeID, w, h float32) error {
	f.calls = append(f.calls, fmt.Sprintf("compute:%d:%vx%v", root, w, h))
	f.solved = true
	return nil
}

func (f *fakeSolver) Layout(id LayoutNodeID) (Rect, error) {
	if !f.solved {
		return Rect{}, fmt.Errorf("not solved")
	}
	return f.rects[id], nil
}

// recordingLayout counts protocol calls.
type recordingLayout struct {
	log *[]string
}

func (r recordingLayout) LayoutSublayers(l *Layer, parent *Layer, _ Solver) {
	p := "<nil>"
	if parent != nil {
		p = parent.Name
	}
	*r.log = append(*r.log, "layout:"+l.Name+":"+p)
}

func (r recordingLayout) UpdateLayout(l *Layer, _ Solver) {
	*r.log = append(*r.log, "update:"+l.Name)
}

func (r recordingLayout) Finalize() { *r.log = append(*r.log, "finalize") }

func TestGridLayout(t *testing.T) {
	stage := NewLayer("stage", 1920, 1080, nil)
	stage.SetLayout(&GridLayout{Columns: 5, CellWidth: 400, CellHeight: 225})
	for i := range 7 {
		stage.AddSublayer(NewLayer(fmt.Sprintf("img%d", i), 400, 225, nil))
	}
	if err := runLayoutPass(stage, nil, 1920, 1080); err != nil {
		t.Fatal(err)
	}
	want := [][2]int{{0, 0}, {400, 0}, {800, 0}, {1200, 0}, {1600, 0}, {0, 225}, {400, 225}}
	for i, w := range want {
		c := stage.SublayerAt(i)
		if c.X != w[0] || c.Y != w[1] {
			t.Errorf("img%d = (%d, %d), want (%d, %d)", i, c.X, c.Y, w[0], w[1])
		}
	}
	if stage.NeedsLayout() {
		t.Error("layout pass should clear NeedsLayout")
	}
}

func TestGridLayoutZeroColumns(t *testing.T) {
	stage := NewLayer("stage", 1, 1, nil)
	stage.SetLayout(&GridLayout{CellWidth: 10, CellHeight: 10})
	stage.AddSublayer(NewLayer("a", 1, 1, nil))
	stage.AddSublayer(NewLayer("b", 1, 1, nil))
	_ = runLayoutPass(stage, nil, 100, 100)
	if b := stage.SublayerAt(1); b.X != 0 || b.Y != 10 {
		t.Errorf("b = (%d, %d), want (0, 10)", b.X, b.Y)
	}
}

func TestLayoutProtocolOrder(t *testing.T) {
	var log []string
	rl := recordingLayout{log: &log}
	root := NewLayer("root", 1, 1, nil)
	a := NewLayer("a", 1, 1, nil)
	b := NewLayer("b", 1, 1, nil)
	root.AddSublayer(a)
	a.AddSublayer(b)
	for _, l := range []*Layer{root, a, b} {
		l.layout = rl
	}

	if err := runLayoutPass(root, nil, 10, 10); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"layout:root:<nil>", "layout:a:root", "layout:b:a",
		"update:root", "update:a", "update:b",
	}
	if !slices.Equal(log, want) {
		t.Errorf("calls = %v, want %v", log, want)
	}
	for _, l := range []*Layer{root, a, b} {
		if l.NeedsLayout() {
			t.Errorf("%s still needs layout", l.Name)
		}
	}
}

func TestSetLayoutFinalizesPrevious(t *testing.T) {
	var log []string
	l := NewLayer("l", 1, 1, nil)
	l.SetLayout(recordingLayout{log: &log})
	l.SetLayout(&GridLayout{})
	if !slices.Equal(log, []string{"finalize"}) {
		t.Errorf("calls = %v, want [finalize]", log)
	}
}

// sliceLayout has a non-comparable dynamic type.
type sliceLayout struct {
	log *[]string
	_   []int
}

func (sliceLayout) LayoutSublayers(*Layer, *Layer, Solver) {}
func (sliceLayout) UpdateLayout(*Layer, Solver)            {}
func (s sliceLayout) Finalize()                            { *s.log = append(*s.log, "finalize") }

func TestSetLayoutNonComparable(t *testing.T) {
	var log []string
	l := NewLayer("l", 1, 1, nil)
	l.SetLayout(sliceLayout{log: &log})
	l.SetLayout(sliceLayout{log: &log})
	l.SetLayout(nil)
	if len(log) != 2 {
		t.Errorf("finalize calls = %d, want 2", len(log))
	}
}

func TestSetLayoutSameStrategy(t *testing.T) {
	var log []string
	l := NewLayer("l", 1, 1, nil)
	grid := &GridLayout{}
	l.SetLayout(recordingLayout{log: &log})
	l.SetLayout(recordingLayout{log: &log})
	if len(log) != 0 {
		t.Errorf("re-setting an equal strategy finalized it: %v", log)
	}
	l.SetLayout(grid)
	l.SetLayout(grid)
	if len(log) != 1 {
		t.Errorf("finalize calls = %d, want 1", len(log))
	}
}

func TestFlexLayoutWithFakeSolver(t *testing.T) {
	s := newFakeSolver()
	root := NewLayer("root", 300, 100, nil)
	root.SetLayout(&FlexLayout{})
	a := NewLayer("a", 50, 50, nil)
	a.SetLayout(&FlexLayout{})
	b := NewLayer("b", 60, 60, nil)
	b.SetLayout(&FlexLayout{})
	b.SetStyle(FlexStyle{Width: 70, Height: 70})
	plain := NewLayer("plain", 5, 5, nil)
	plain.SetPosition(9, 9)
	root.AddSublayer(a)
	root.AddSublayer(b)
	root.AddSublayer(plain)

	s.rects[0] = Rect{X: 1, Y: 1}
	s.rects[1] = Rect{X: 2, Y: 3}
	s.rects[2] = Rect{X: 55.6, Y: 3.4}

	if err := runLayoutPass(root, s, 640, 480); err != nil {
		t.Fatal(err)
	}
	wantCalls := []string{"reset", "new:0", "new:1", "add:0->1", "new:2", "add:0->2", "compute:0:640x480"}
	if !slices.Equal(s.calls, wantCalls) {
		t.Errorf("calls = %v, want %v", s.calls, wantCalls)
	}
	if a.X != 2 || a.Y != 3 {
		t.Errorf("a = (%d, %d), want (2, 3)", a.X, a.Y)
	}
	if b.X != 56 || b.Y != 3 {
		t.Errorf("b = (%d, %d), want (56, 3)", b.X, b.Y)
	}
	if plain.X != 9 || plain.Y != 9 {
		t.Errorf("layer without layout moved to (%d, %d)", plain.X, plain.Y)
	}
	if s.styles[1] != DefaultFlexStyle(a) {
		t.Errorf("a style = %+v, want default", s.styles[1])
	}
	if s.styles[1].Margin != UniformEdges(DefaultFlexMargin) {
		t.Errorf("default margin = %+v", s.styles[1].Margin)
	}
	if s.styles[2].Width != 70 {
		t.Errorf("b style width = %v, want 70", s.styles[2].Width)
	}
}

func TestFlexLayoutResetsEachPass(t *testing.T) {
	s := newFakeSolver()
	root := NewLayer("root", 10, 10, nil)
	root.SetLayout(&FlexLayout{})
	_ = runLayoutPass(root, s, 10, 10)
	_ = runLayoutPass(root, s, 10, 10)
	if n := len(s.styles); n != 1 {
		t.Errorf("nodes after two passes = %d, want 1", n)
	}
	if root.LayoutNode() != 0 {
		t.Errorf("LayoutNode = %v, want 0", root.LayoutNode())
	}
}

func TestFlexLayoutUnregisteredPanics(t *testing.T) {
	l := NewLayer("l", 1, 1, nil)
	expectPanic(t, "no layout node", func() {
		(&FlexLayout{}).UpdateLayout(l, newFakeSolver())
	})
}

func TestFlexLayoutUnsolvedParentPanics(t *testing.T) {
	s := newFakeSolver()
	root := NewLayer("root", 10, 10, nil)
	a := NewLayer("a", 5, 5, nil)
	a.SetLayout(&FlexLayout{})
	root.AddSublayer(a)

	expectPanic(t, "read layout before solving", func() {
		_ = runLayoutPass(root, s, 10, 10)
	})
	if slices.Contains(s.calls, "compute:0:10x10") {
		t.Errorf("calls = %v, want no compute without a root node", s.calls)
	}
}

func TestFlexLayoutWithoutSolverIsNoop(t *testing.T) {
	l := NewLayer("l", 1, 1, nil)
	l.SetPosition(4, 4)
	l.SetLayout(&FlexLayout{})
	if err := runLayoutPass(l, nil, 10, 10); err != nil {
		t.Fatal(err)
	}
	if l.X != 4 || l.Y != 4 || l.LayoutNode().Valid() {
		t.Error("flex layout without solver should leave the layer alone")
	}
}

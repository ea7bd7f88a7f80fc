package lumen

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the composition root: it owns an ordered forest of root layers,
// the shared projection, the optional layout solver, and the image cache,
// and drives the per-frame pipeline layout -> animate -> render.
type Scene struct {
	Name string

	width, height int
	mode          LayoutMode
	projection    mgl32.Mat4

	roots     []*Layer
	rootIndex map[string]int

	solver Solver
	images *ImageCache

	updateFunc func() error

	debug       bool
	injectQueue []Key
	testRunner  *TestRunner
}

// NewScene creates a scene for a width x height viewport. LayoutFlex installs
// a FlexSolver; LayoutUserDefine leaves the scene without a solver.
func NewScene(name string, width, height int, mode LayoutMode) *Scene {
	s := &Scene{
		Name:       name,
		width:      width,
		height:     height,
		mode:       mode,
		projection: OrthoProjection(width, height),
		rootIndex:  make(map[string]int),
		images:     NewImageCache(),
	}
	if mode == LayoutFlex {
		s.solver = NewFlexSolver()
	}
	return s
}

// Resize updates the viewport, rebuilds the projection, and marks every root
// for relayout.
func (s *Scene) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.projection = OrthoProjection(width, height)
	for _, r := range s.roots {
		r.needsLayout = true
	}
}

// Size returns the viewport size.
func (s *Scene) Size() (width, height int) { return s.width, s.height }

// Projection returns the shared orthographic projection.
func (s *Scene) Projection() mgl32.Mat4 { return s.projection }

// LayoutMode returns the mode the scene was created with.
func (s *Scene) LayoutMode() LayoutMode { return s.mode }

// SetSolver replaces the layout solver. nil disables solver-backed layout.
func (s *Scene) SetSolver(solver Solver) {
	s.solver = solver
	for _, r := range s.roots {
		r.needsLayout = true
	}
}

// Solver returns the layout solver, or nil.
func (s *Scene) Solver() Solver { return s.solver }

// Images returns the cache used to resolve layer image paths.
func (s *Scene) Images() *ImageCache { return s.images }

// --- Roots ---

// AddRoot appends root to the forest and returns its name. A root with the
// same name as an existing one shadows it for name lookups.
// Panics if root is nil or has a parent.
func (s *Scene) AddRoot(root *Layer) string {
	if root == nil {
		panic("lumen: cannot add nil root")
	}
	if root.parent != nil {
		panic("lumen: root " + root.Name + " has a parent")
	}
	s.roots = append(s.roots, root)
	s.rootIndex[root.Name] = len(s.roots) - 1
	root.needsLayout = true
	Logger().Info("root added", "scene", s.Name, "root", root.Name)
	return root.Name
}

// Root returns the root registered under name, or nil.
func (s *Scene) Root(name string) *Layer {
	i, ok := s.rootIndex[name]
	if !ok {
		return nil
	}
	return s.roots[i]
}

// Roots returns the roots in draw order. The returned slice MUST NOT be mutated.
func (s *Scene) Roots() []*Layer { return s.roots }

// AddLayerToRoot appends layer to the named root. An unknown name is logged
// and ignored.
func (s *Scene) AddLayerToRoot(rootName string, layer *Layer) {
	r := s.Root(rootName)
	if r == nil {
		Logger().Warn("unknown root", "scene", s.Name, "root", rootName)
		return
	}
	r.AddSublayer(layer)
}

// SetRootVisible shows or hides the named root and marks it for relayout.
// An unknown name is logged and ignored.
func (s *Scene) SetRootVisible(name string, visible bool) {
	r := s.Root(name)
	if r == nil {
		Logger().Warn("unknown root", "scene", s.Name, "root", name)
		return
	}
	r.Visible = visible
	r.needsLayout = true
}

// SetRootNeedsLayout forces a layout pass on the named root next frame.
func (s *Scene) SetRootNeedsLayout(name string) {
	r := s.Root(name)
	if r == nil {
		Logger().Warn("unknown root", "scene", s.Name, "root", name)
		return
	}
	r.needsLayout = true
}

// HandleInput dispatches key to every root in order, visible or not.
func (s *Scene) HandleInput(key Key) {
	for _, r := range s.roots {
		r.HandleInput(key)
	}
}

// --- Frame ---

// SetUpdateFunc sets a callback run once per tick by Update, before the
// frame is rendered. Use it for application logic such as loading content
// incrementally.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update runs the update callback, if any.
func (s *Scene) Update() error {
	if s.updateFunc == nil {
		return nil
	}
	return s.updateFunc()
}

// RenderFrame runs one frame at time now. For each root in order: a layout
// pass if the root is dirty at frame start, then animation, then rendering
// through r. Layout errors are returned after the frame has been drawn.
func (s *Scene) RenderFrame(r Renderer, now time.Time) error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	var stats debugStats
	var t0 time.Time
	var firstErr error

	ctx := renderContext{
		renderer:   r,
		projection: s.projection,
		images:     s.images,
	}
	for _, root := range s.roots {
		if s.debug {
			t0 = time.Now()
		}
		if root.needsLayout {
			if err := runLayoutPass(root, s.solver, s.width, s.height); err != nil && firstErr == nil {
				firstErr = err
			}
			stats.layoutPasses++
		}
		if s.debug {
			stats.layoutTime += time.Since(t0)
			t0 = time.Now()
		}

		root.animate(now)

		if s.debug {
			stats.animateTime += time.Since(t0)
			t0 = time.Now()
		}

		root.render(&ctx, nil)

		if s.debug {
			stats.renderTime += time.Since(t0)
			stats.layerCount += countLayers(root)
		}
	}

	if s.debug {
		stats.drawCount = ctx.draws
		s.debugLog(stats)
	}
	return firstErr
}

// SetDebugMode enables or disables debug mode. When enabled, tree depth and
// child count warnings are logged and per-frame timing stats are logged at
// Debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// DebugMode reports whether debug mode is on.
func (s *Scene) DebugMode() bool { return s.debug }

// Package lumen is a CoreAnimation-style scene graph: a tree of layers with
// parent-relative transforms, per-property keyframe animation, key focus, and
// an optional flexbox layout pass.
//
// Rendering is delegated to a [Renderer]. The [ebitenrender] subpackage
// draws on [Ebitengine]; [CommandRecorder] records draw commands for tests.
//
// # Quick start
//
// The simplest way to get started is [ebitenrender.Run], which creates a
// window and game loop for you:
//
//	scene := lumen.NewScene("demo", 1920, 1080, lumen.LayoutUserDefine)
//	stage := lumen.NewLayer("stage", 1920, 1080, nil)
//	scene.AddRoot(stage)
//	// ... add sublayers ...
//	ebitenrender.Run(scene, ebitenrender.RunConfig{
//		Title: "demo", Width: 1920, Height: 1080,
//	})
//
// For full control, call [Scene.HandleInput] with translated keys and
// [Scene.RenderFrame] once per frame with your own [Renderer].
//
// # Layers
//
// Every visual element is a [Layer]: a colored or textured quad with a
// position, size, anchor point, scale, rotation, and opacity. Sublayers
// inherit their parent's transform. A parent owns its sublayers; a layer can
// have at most one parent.
//
//	box := lumen.NewLayer("box", 100, 100, nil)
//	box.SetPosition(50, 50)
//	box.SetBackgroundColor(1, 0, 0)
//	stage.AddSublayer(box)
//
// # Animation
//
// An [Animation] drives up to five properties (x, y, rotation, scale,
// opacity), each through a [PropertyAnimator] with its own easing. Attach
// one with [Layer.SetAnimation] or several under keys with
// [Layer.AddAnimation]; they run in attach order each frame.
//
//	a := lumen.AnimationWithKeyPath("position.x")
//	a.Duration = 2
//	a.TimingFunction = lumen.EaseInOut
//	a.SetFromValuePositionX(0)
//	a.SetToValuePositionX(800)
//	box.AddAnimation(a, "slide")
//
// # Layout
//
// A [Layout] strategy positions a layer's sublayers. [GridLayout] places
// them arithmetically; [FlexLayout] registers each layer with the scene's
// [Solver] (a [FlexSolver] in [LayoutFlex] mode) and reads positions back
// after a single solve. A root is laid out at the start of any frame in
// which it is marked dirty.
//
// # Logging
//
// The package is silent by default. Install a [log/slog] logger with
// [SetLogger] to see warnings and, in debug mode, per-frame stats.
//
// [Ebitengine]: https://ebitengine.org
// [ebitenrender]: https://pkg.go.dev/github.com/phanxgames/lumen/ebitenrender
// [ebitenrender.Run]: https://pkg.go.dev/github.com/phanxgames/lumen/ebitenrender#Run
package lumen

package lumen

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	layoutTime   time.Duration
	animateTime  time.Duration
	renderTime   time.Duration
	layoutPasses int
	drawCount    int
	layerCount   int
}

// debugLog reports the frame's stats at Debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.layoutTime + stats.animateTime + stats.renderTime
	Logger().Debug("frame",
		slog.String("scene", s.Name),
		slog.Duration("layout", stats.layoutTime),
		slog.Duration("animate", stats.animateTime),
		slog.Duration("render", stats.renderTime),
		slog.Duration("total", total),
		slog.Int("layout_passes", stats.layoutPasses),
		slog.Int("draws", stats.drawCount),
		slog.Int("layers", stats.layerCount),
	)
}

// globalDebug mirrors the most recently set Scene debug flag so that layer
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(l *Layer) {
	depth := treeDepth(l)
	if depth > debugMaxTreeDepth {
		Logger().Warn("tree depth exceeds threshold",
			"layer", l.Name, "depth", depth, "threshold", debugMaxTreeDepth)
	}
}

// debugCheckChildCount warns if a layer has more than 1000 sublayers.
const debugMaxChildCount = 1000

func debugCheckChildCount(l *Layer) {
	if len(l.sublayers) > debugMaxChildCount {
		Logger().Warn("sublayer count exceeds threshold",
			"layer", l.Name, "sublayers", len(l.sublayers), "threshold", debugMaxChildCount)
	}
}

func treeDepth(l *Layer) int {
	depth := 0
	for p := l; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// countLayers counts l and all of its descendants.
func countLayers(l *Layer) int {
	n := 1
	for _, c := range l.sublayers {
		n += countLayers(c)
	}
	return n
}

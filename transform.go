package lumen

import "github.com/go-gl/mathgl/mgl32"

// Projection depth range for the orthographic projection.
const (
	projectionNear = 1
	projectionFar  = -1
)

// OrthoProjection returns the screen-space projection for a viewport: origin
// at the top-left, Y increasing downward.
func OrthoProjection(width, height int) mgl32.Mat4 {
	return mgl32.Ortho(0, float32(width), float32(height), 0, projectionNear, projectionFar)
}

// ModelMatrix returns the layer's local transform. Applied right to left:
//
//	Translate(-pivot) -> Scale -> Rotate -> Translate(+pivot) -> Translate(X, Y, Z)
//
// where pivot is (Width*AnchorX, Height*AnchorY). The Z scale factor is 1, so
// the matrix stays invertible; depth is never used for ordering.
func (l *Layer) ModelMatrix() mgl32.Mat4 {
	px := float32(l.Width) * l.AnchorX
	py := float32(l.Height) * l.AnchorY

	m := mgl32.Translate3D(float32(l.X), float32(l.Y), l.Z)
	m = m.Mul4(mgl32.Translate3D(px, py, 0))
	if l.Rotation != 0 {
		m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(float32(l.Rotation))))
	}
	m = m.Mul4(mgl32.Scale3D(l.ScaleX, l.ScaleY, 1))
	return m.Mul4(mgl32.Translate3D(-px, -py, 0))
}

// worldMatrix composes the local transform with the parent's accumulated
// transform. Roots use their local transform alone.
func (l *Layer) worldMatrix(parent *mgl32.Mat4) mgl32.Mat4 {
	m := l.ModelMatrix()
	if parent != nil {
		m = m.Mul4(*parent)
	}
	return m
}

// TransformPoint applies m to the point (x, y) on the z = 0 plane.
func TransformPoint(m mgl32.Mat4, x, y float32) (float32, float32) {
	v := m.Mul4x1(mgl32.Vec4{x, y, 0, 1})
	return v[0], v[1]
}

// Corners returns the layer's four corners after applying m, in the order
// top-left, top-right, bottom-right, bottom-left of the local quad.
func (l *Layer) Corners(m mgl32.Mat4) [4]mgl32.Vec2 {
	w, h := float32(l.Width), float32(l.Height)
	var out [4]mgl32.Vec2
	for i, p := range [4][2]float32{{0, 0}, {w, 0}, {w, h}, {0, h}} {
		x, y := TransformPoint(m, p[0], p[1])
		out[i] = mgl32.Vec2{x, y}
	}
	return out
}

// Package camera provides the turntable manipulator used to inspect a volume.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// minDistanceFloor keeps the zoom distance positive even if MinDistance is
// configured as zero or negative.
const minDistanceFloor = 1e-3

// Turntable orbits, pans and zooms an object around its center.
// Its matrix is Pan * Orbit * Zoom.
type Turntable struct {
	Orbit    mgl32.Quat // accumulated rotation
	Pan      mgl32.Vec3 // view-plane translation
	Distance float32    // zoom distance, scales the object by 1/Distance

	// Constraints
	MinDistance float32
	MaxDistance float32

	// Sensitivity
	OrbitSensitivity float32 // radians per pixel
	PanSensitivity   float32 // units per pixel
	ZoomSensitivity  float32 // log-distance per pixel
}

// NewTurntable creates a turntable with default settings.
func NewTurntable() *Turntable {
	return &Turntable{
		Orbit:            mgl32.QuatIdent(),
		Distance:         1.0,
		MinDistance:      0.05,
		MaxDistance:      20.0,
		OrbitSensitivity: 0.01,
		PanSensitivity:   0.002,
		ZoomSensitivity:  0.005,
	}
}

// Rotate turns the object by the pointer motion from -> to and returns the
// applied increment. The rotation angle is proportional to the distance moved
// and the axis is perpendicular to the motion in the view plane, so dragging
// right spins the object around +Y.
func (t *Turntable) Rotate(from, to mgl32.Vec2) mgl32.Quat {
	d := to.Sub(from)
	length := d.Len()
	if length == 0 {
		return mgl32.QuatIdent()
	}

	// Screen y grows downward; the view axis points at the viewer.
	axis := mgl32.Vec3{d.Y(), d.X(), 0}.Normalize()
	inc := mgl32.QuatRotate(length*t.OrbitSensitivity, axis)
	t.Orbit = inc.Mul(t.Orbit).Normalize()
	return inc
}

// Translate moves the object in the view plane by the pointer motion.
func (t *Turntable) Translate(from, to mgl32.Vec2) {
	d := to.Sub(from)
	t.Pan = t.Pan.Add(mgl32.Vec3{d.X() * t.PanSensitivity, -d.Y() * t.PanSensitivity, 0})
}

// Zoom changes the distance by the vertical pointer motion. Dragging down
// moves away. The change is multiplicative and clamped, so the distance
// never reaches zero.
func (t *Turntable) Zoom(from, to mgl32.Vec2) {
	dy := to.Y() - from.Y()
	next := t.Distance * math32.Exp(dy*t.ZoomSensitivity)
	if math32.IsNaN(next) {
		return
	}
	t.Distance = t.clampDistance(next)
}

func (t *Turntable) clampDistance(d float32) float32 {
	lo := t.MinDistance
	if lo < minDistanceFloor {
		lo = minDistanceFloor
	}
	hi := t.MaxDistance
	if hi < lo {
		hi = lo
	}
	return mgl32.Clamp(d, lo, hi)
}

// Matrix returns Pan * Orbit * Zoom.
func (t *Turntable) Matrix() mgl32.Mat4 {
	s := 1 / t.clampDistance(t.Distance)
	pan := mgl32.Translate3D(t.Pan.X(), t.Pan.Y(), t.Pan.Z())
	zoom := mgl32.Scale3D(s, s, s)
	return pan.Mul4(t.Orbit.Mat4()).Mul4(zoom)
}

package camera

import "github.com/go-gl/mathgl/mgl32"

// Buttons is the pointer button state for one frame.
// Primary orbits, Secondary pans, Tertiary zooms.
type Buttons struct {
	Primary   bool
	Secondary bool
	Tertiary  bool
}

// Manipulator drives a Turntable from per-frame pointer state.
//
// While the primary button is released the last orbit delta keeps being
// applied every frame ("glide"). The glide does not decay; it stops when the
// primary button is pressed again.
type Manipulator struct {
	turntable *Turntable

	last    mgl32.Vec2
	hasLast bool

	// Last orbit pointer pair, replayed while the primary button is up.
	glideFrom mgl32.Vec2
	glideTo   mgl32.Vec2

	pressed  [3]bool
	started  [3]bool
	lastSpin mgl32.Quat
}

// NewManipulator wraps a turntable. A nil turntable gets defaults.
func NewManipulator(t *Turntable) *Manipulator {
	if t == nil {
		t = NewTurntable()
	}
	return &Manipulator{
		turntable: t,
		lastSpin:  mgl32.QuatIdent(),
	}
}

// Turntable returns the manipulated turntable.
func (m *Manipulator) Turntable() *Turntable {
	return m.turntable
}

// Evaluate advances the manipulator by one frame and returns the view
// transform. The first call only records the pointer position.
func (m *Manipulator) Evaluate(pointer mgl32.Vec2, buttons Buttons) mgl32.Mat4 {
	if !m.hasLast {
		m.last = pointer
		m.hasLast = true
	}

	down := [3]bool{buttons.Primary, buttons.Secondary, buttons.Tertiary}
	for i, d := range down {
		m.started[i] = d && !m.pressed[i]
		m.pressed[i] = d
	}

	if buttons.Primary {
		m.lastSpin = m.turntable.Rotate(m.last, pointer)
		m.glideFrom, m.glideTo = m.last, pointer
	} else {
		m.lastSpin = m.turntable.Rotate(m.glideFrom, m.glideTo)
	}

	if buttons.Secondary {
		m.turntable.Translate(m.last, pointer)
	}

	if buttons.Tertiary {
		m.turntable.Zoom(m.last, pointer)
	}

	m.last = pointer
	return m.turntable.Matrix()
}

// DragStarted reports whether each button went down on the last frame.
func (m *Manipulator) DragStarted() Buttons {
	return Buttons{Primary: m.started[0], Secondary: m.started[1], Tertiary: m.started[2]}
}

// LastRotation returns the orbit increment applied on the last frame.
func (m *Manipulator) LastRotation() mgl32.Quat {
	return m.lastSpin
}

// Gliding reports whether the orbit keeps turning with the primary button up.
func (m *Manipulator) Gliding() bool {
	return !m.pressed[0] && m.glideFrom != m.glideTo
}

// Package app holds the viewer's interactive state: render parameters
// adjusted from the keyboard, and the per-frame shader inputs derived from
// them. Nothing here touches the GPU or the window.
package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxray/internal/config"
)

// Per-frame adjustment steps while a key is held.
const (
	LightStep    = 0.5
	IsoStep      = 0.002
	SamplingStep = 0.0001
)

// Controls is the set of viewer commands held down this frame.
type Controls struct {
	Exit bool

	LightLeft  bool
	LightRight bool
	LightUp    bool
	LightDown  bool

	IsoUp        bool
	IsoDown      bool
	SamplingUp   bool
	SamplingDown bool

	Reload        bool
	ToggleOverlay bool
	ToggleBounds  bool
	Capture       bool
}

// Actions are the one-shot requests produced by a frame of Controls.
type Actions struct {
	Exit    bool
	Reload  bool
	Capture bool
}

// State is the mutable render state owned by the viewer.
type State struct {
	IsoValue         float32
	SamplingDistance float32
	LightPosition    mgl32.Vec3
	LightColor       mgl32.Vec3
	Background       mgl32.Vec3
	FieldOfView      float32 // Vertical, degrees

	ShowOverlay bool
	ShowBounds  bool

	prev Controls
}

// NewState seeds the state from the render config.
func NewState(cfg config.RenderConfig) *State {
	s := &State{
		IsoValue:         cfg.IsoValue,
		SamplingDistance: cfg.SamplingDistance,
		LightPosition:    mgl32.Vec3(cfg.LightPosition),
		LightColor:       mgl32.Vec3(cfg.LightColor),
		Background:       mgl32.Vec3(cfg.Background),
		FieldOfView:      cfg.FieldOfView,
		ShowBounds:       cfg.ShowBounds,
	}
	s.clamp()
	return s
}

// Apply advances the state by one frame of held controls. Continuous
// controls act every frame they are held; reload, capture and the toggles
// act once per press.
func (s *State) Apply(c Controls) Actions {
	if c.LightLeft {
		s.LightPosition[0] -= LightStep
	}
	if c.LightRight {
		s.LightPosition[0] += LightStep
	}
	if c.LightUp {
		s.LightPosition[2] -= LightStep
	}
	if c.LightDown {
		s.LightPosition[2] += LightStep
	}

	if c.IsoDown {
		s.IsoValue -= IsoStep
	}
	if c.IsoUp {
		s.IsoValue += IsoStep
	}
	if c.SamplingDown {
		s.SamplingDistance -= SamplingStep
	}
	if c.SamplingUp {
		s.SamplingDistance += SamplingStep
	}
	s.clamp()

	if c.ToggleOverlay && !s.prev.ToggleOverlay {
		s.ShowOverlay = !s.ShowOverlay
	}
	if c.ToggleBounds && !s.prev.ToggleBounds {
		s.ShowBounds = !s.ShowBounds
	}

	a := Actions{
		Exit:    c.Exit,
		Reload:  c.Reload && !s.prev.Reload,
		Capture: c.Capture && !s.prev.Capture,
	}
	s.prev = c
	return a
}

func (s *State) clamp() {
	s.IsoValue = mgl32.Clamp(s.IsoValue, config.MinIsoValue, config.MaxIsoValue)
	s.SamplingDistance = mgl32.Clamp(s.SamplingDistance, config.MinSamplingDistance, config.MaxSamplingDistance)
}

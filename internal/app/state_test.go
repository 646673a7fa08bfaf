package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxray/internal/config"
)

func newTestState() *State {
	return NewState(config.Default().Render)
}

func TestNewStateDefaults(t *testing.T) {
	s := newTestState()

	if s.IsoValue != 0.2 {
		t.Errorf("expected iso value 0.2, got %f", s.IsoValue)
	}
	if s.SamplingDistance != 0.001 {
		t.Errorf("expected sampling distance 0.001, got %f", s.SamplingDistance)
	}
	if s.LightPosition != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("expected light at (1,1,1), got %v", s.LightPosition)
	}
	if s.ShowOverlay || s.ShowBounds {
		t.Error("expected overlay and bounds hidden")
	}
}

func TestLightNudges(t *testing.T) {
	tests := []struct {
		name     string
		controls Controls
		want     mgl32.Vec3
	}{
		{"left", Controls{LightLeft: true}, mgl32.Vec3{0.5, 1, 1}},
		{"right", Controls{LightRight: true}, mgl32.Vec3{1.5, 1, 1}},
		{"up", Controls{LightUp: true}, mgl32.Vec3{1, 1, 0.5}},
		{"down", Controls{LightDown: true}, mgl32.Vec3{1, 1, 1.5}},
		{"left and right cancel", Controls{LightLeft: true, LightRight: true}, mgl32.Vec3{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			s.Apply(tt.controls)
			if s.LightPosition != tt.want {
				t.Errorf("light at %v, want %v", s.LightPosition, tt.want)
			}
		})
	}
}

func TestHeldLightRepeats(t *testing.T) {
	s := newTestState()
	for i := 0; i < 4; i++ {
		s.Apply(Controls{LightRight: true})
	}
	if s.LightPosition[0] != 3 {
		t.Errorf("expected x=3 after four frames, got %f", s.LightPosition[0])
	}
}

func TestIsoValueClamps(t *testing.T) {
	s := newTestState()

	s.Apply(Controls{IsoUp: true})
	if !mgl32.FloatEqualThreshold(s.IsoValue, 0.202, 1e-6) {
		t.Errorf("expected 0.202, got %f", s.IsoValue)
	}

	for i := 0; i < 1000; i++ {
		s.Apply(Controls{IsoUp: true})
	}
	if s.IsoValue != config.MaxIsoValue {
		t.Errorf("expected iso clamped to 1, got %f", s.IsoValue)
	}

	for i := 0; i < 1000; i++ {
		s.Apply(Controls{IsoDown: true})
	}
	if s.IsoValue != config.MinIsoValue {
		t.Errorf("expected iso clamped to 0, got %f", s.IsoValue)
	}
}

func TestSamplingDistanceClamps(t *testing.T) {
	s := newTestState()

	for i := 0; i < 100; i++ {
		s.Apply(Controls{SamplingDown: true})
	}
	if s.SamplingDistance != config.MinSamplingDistance {
		t.Errorf("expected sampling clamped to 0.0001, got %f", s.SamplingDistance)
	}

	for i := 0; i < 5000; i++ {
		s.Apply(Controls{SamplingUp: true})
	}
	if s.SamplingDistance != config.MaxSamplingDistance {
		t.Errorf("expected sampling clamped to 0.2, got %f", s.SamplingDistance)
	}
}

func TestOutOfRangeConfigIsClamped(t *testing.T) {
	cfg := config.Default().Render
	cfg.IsoValue = -3
	cfg.SamplingDistance = 9
	s := NewState(cfg)

	if s.IsoValue != 0 || s.SamplingDistance != config.MaxSamplingDistance {
		t.Errorf("expected clamped state, got iso=%f sampling=%f", s.IsoValue, s.SamplingDistance)
	}
}

func TestTogglesAreEdgeTriggered(t *testing.T) {
	s := newTestState()

	// Holding the key for several frames toggles once.
	for i := 0; i < 5; i++ {
		s.Apply(Controls{ToggleOverlay: true, ToggleBounds: true})
	}
	if !s.ShowOverlay || !s.ShowBounds {
		t.Fatal("expected overlay and bounds shown after holding the toggles")
	}

	s.Apply(Controls{})
	s.Apply(Controls{ToggleOverlay: true})
	if s.ShowOverlay {
		t.Error("expected overlay hidden after a second press")
	}
	if !s.ShowBounds {
		t.Error("bounds toggled without a press")
	}
}

func TestReloadAndCaptureEdges(t *testing.T) {
	s := newTestState()

	a := s.Apply(Controls{Reload: true, Capture: true})
	if !a.Reload || !a.Capture {
		t.Fatalf("expected reload and capture on the first frame, got %+v", a)
	}

	a = s.Apply(Controls{Reload: true, Capture: true})
	if a.Reload || a.Capture {
		t.Errorf("held keys fired again: %+v", a)
	}

	s.Apply(Controls{})
	a = s.Apply(Controls{Reload: true})
	if !a.Reload {
		t.Error("expected reload after release and press")
	}
}

func TestExit(t *testing.T) {
	s := newTestState()
	if s.Apply(Controls{}).Exit {
		t.Error("exit without the control")
	}
	if !s.Apply(Controls{Exit: true}).Exit {
		t.Error("expected exit")
	}
}

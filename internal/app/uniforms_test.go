package app

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxray/internal/engine/camera"
	"github.com/Faultbox/voxray/pkg/volume"
)

var headMeta = volume.Metadata{Dimensions: [3]int{256, 256, 225}, Channels: 1, BitsPerChannel: 8}

func TestUniformsPassThroughState(t *testing.T) {
	s := newTestState()
	u := ComputeUniforms(s, 600, 600, mgl32.Ident4(), headMeta)

	if u.IsoValue != s.IsoValue || u.SamplingDistance != s.SamplingDistance {
		t.Errorf("render parameters not passed through: %+v", u)
	}
	if u.LightPosition != s.LightPosition || u.LightColor != s.LightColor {
		t.Errorf("light not passed through: %+v", u)
	}
	if u.VolumeDimensions != [3]int32{256, 256, 225} {
		t.Errorf("unexpected dimensions %v", u.VolumeDimensions)
	}
	if !u.MaxBounds.ApproxEqualThreshold(mgl32.Vec3{1, 1, 225.0 / 256.0}, 1e-6) {
		t.Errorf("unexpected bounds %v", u.MaxBounds)
	}
}

func TestProjection(t *testing.T) {
	s := newTestState()

	u := ComputeUniforms(s, 800, 400, mgl32.Ident4(), headMeta)
	want := mgl32.Perspective(mgl32.DegToRad(45), 2, NearPlane, FarPlane)
	if !u.Projection.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("unexpected projection\n%v\nwant\n%v", u.Projection, want)
	}

	// A minimized window must not produce NaNs.
	u = ComputeUniforms(s, 0, 0, mgl32.Ident4(), headMeta)
	for _, v := range u.Projection {
		if v != v {
			t.Fatal("NaN in projection for empty viewport")
		}
	}
}

func TestCameraLocationIdentity(t *testing.T) {
	s := newTestState()
	u := ComputeUniforms(s, 600, 600, mgl32.Ident4(), headMeta)

	// The eye sits 1.5 in front of the volume center; the upright rotation
	// maps world +z onto object -x.
	b := u.MaxBounds
	want := mgl32.Vec3{b[0]/2 - 1.5, b[1] / 2, b[2] / 2}
	if !u.CameraLocation.ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("camera at %v, want %v", u.CameraLocation, want)
	}
}

func TestCameraDistanceFollowsTurntable(t *testing.T) {
	s := newTestState()
	tt := camera.NewTurntable()
	tt.Orbit = mgl32.QuatRotate(1.1, mgl32.Vec3{0.3, 1, 0.2}.Normalize())

	center := headMeta.MaxBounds().Mul(0.5)
	for _, d := range []float32{1, 2, 0.5} {
		tt.Distance = d
		u := ComputeUniforms(s, 600, 600, tt.Matrix(), headMeta)
		got := u.CameraLocation.Sub(center).Len()
		if !mgl32.FloatEqualThreshold(got, 1.5*d, 1e-3) {
			t.Errorf("distance %f: camera %f from center, want %f", d, got, 1.5*d)
		}
	}
}

func TestCameraLocationMatchesModelView(t *testing.T) {
	s := newTestState()
	tt := camera.NewTurntable()
	tt.Orbit = mgl32.QuatRotate(0.7, mgl32.Vec3{1, 0, 0})
	tt.Pan = mgl32.Vec3{0.1, -0.2, 0}

	u := ComputeUniforms(s, 600, 600, tt.Matrix(), headMeta)

	// Mapping the camera location back through the model-view lands on the eye.
	eye := mgl32.TransformCoordinate(u.CameraLocation, u.ModelView)
	if !eye.ApproxEqualThreshold(mgl32.Vec3{}, 1e-4) {
		t.Errorf("camera maps to %v in eye space, want origin", eye)
	}
}

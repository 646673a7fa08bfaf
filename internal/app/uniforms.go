package app

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxray/pkg/volume"
)

// Fixed camera setup. The manipulator moves the volume, not the eye.
const (
	NearPlane = 0.025
	FarPlane  = 10.0
)

var (
	Eye    = mgl32.Vec3{0, 0, 1.5}
	Target = mgl32.Vec3{0, 0, 0}
	Up     = mgl32.Vec3{0, 1, 0}
)

// Uniforms is everything the ray-casting program reads per frame.
type Uniforms struct {
	Projection       mgl32.Mat4
	ModelView        mgl32.Mat4
	CameraLocation   mgl32.Vec3 // In volume object space
	SamplingDistance float32
	IsoValue         float32
	MaxBounds        mgl32.Vec3
	VolumeDimensions [3]int32
	LightPosition    mgl32.Vec3
	LightColor       mgl32.Vec3
}

// Orientation turns the datasets' z-up scan layout upright and centers the
// volume on the origin.
func Orientation(bounds mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(90)).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(90))).
		Mul4(mgl32.Translate3D(-bounds[0]/2, -bounds[1]/2, -bounds[2]/2))
}

// ComputeUniforms derives the frame's shader inputs from the state, the
// viewport size, the manipulator matrix and the loaded grid.
func ComputeUniforms(s *State, width, height int, manipulator mgl32.Mat4, meta volume.Metadata) Uniforms {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	aspect := float32(width) / float32(height)

	bounds := meta.MaxBounds()
	view := mgl32.LookAtV(Eye, Target, Up)
	modelView := view.Mul4(manipulator).Mul4(Orientation(bounds))

	return Uniforms{
		Projection:       mgl32.Perspective(mgl32.DegToRad(s.FieldOfView), aspect, NearPlane, FarPlane),
		ModelView:        modelView,
		CameraLocation:   CameraLocation(modelView),
		SamplingDistance: s.SamplingDistance,
		IsoValue:         s.IsoValue,
		MaxBounds:        bounds,
		VolumeDimensions: [3]int32{int32(meta.Dimensions[0]), int32(meta.Dimensions[1]), int32(meta.Dimensions[2])},
		LightPosition:    s.LightPosition,
		LightColor:       s.LightColor,
	}
}

// CameraLocation returns the eye position in the model-view's object space.
func CameraLocation(modelView mgl32.Mat4) mgl32.Vec3 {
	c := modelView.Inv().Col(3)
	if c[3] == 0 {
		return c.Vec3()
	}
	return c.Vec3().Mul(1 / c[3])
}

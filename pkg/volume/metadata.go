// Package volume loads raw voxel grids and describes their layout.
package volume

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Supported sample depths.
const (
	Bits8  = 8
	Bits16 = 16
	Bits32 = 32
)

// MaxChannels is the largest channel count a voxel may carry (RGBA).
const MaxChannels = 4

// MaxDimension bounds each axis, well above common GL 3-D texture limits.
// The renderer checks the driver's own limit at upload.
const MaxDimension = 16384

// Metadata describes the layout of a voxel grid without its payload.
type Metadata struct {
	Dimensions     [3]int // width, height, depth in voxels
	Channels       int
	BitsPerChannel int
}

// Validate checks dimensions, channel count and bit depth.
func (m Metadata) Validate() error {
	for i, d := range m.Dimensions {
		if d < 1 || d > MaxDimension {
			return fmt.Errorf("%w: dimension %d is %d, want 1..%d", ErrBadMetadata, i, d, MaxDimension)
		}
	}
	if m.Channels < 1 || m.Channels > MaxChannels {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, m.Channels)
	}
	switch m.BitsPerChannel {
	case Bits8, Bits16, Bits32:
	default:
		return fmt.Errorf("%w: %d bits per channel", ErrUnsupportedFormat, m.BitsPerChannel)
	}
	if _, ok := m.payloadSize(); !ok {
		return fmt.Errorf("%w: %s payload does not fit in memory", ErrBadMetadata, m)
	}
	return nil
}

// BytesPerChannel returns the size of one sample in bytes.
func (m Metadata) BytesPerChannel() int {
	return m.BitsPerChannel / 8
}

// Stride returns the size of one voxel in bytes.
func (m Metadata) Stride() int {
	return m.Channels * m.BytesPerChannel()
}

// VoxelCount returns width*height*depth. Only meaningful for metadata that
// passed Validate.
func (m Metadata) VoxelCount() int {
	return m.Dimensions[0] * m.Dimensions[1] * m.Dimensions[2]
}

// ByteSize returns the exact payload size the metadata implies, or -1 when
// the product overflows. No file has a negative size, so overflowing
// metadata never passes a size check.
func (m Metadata) ByteSize() int64 {
	n, ok := m.payloadSize()
	if !ok {
		return -1
	}
	return n
}

// payloadSize multiplies the dimensions and stride, reporting false on
// non-positive factors or when the result exceeds what a slice can hold.
func (m Metadata) payloadSize() (int64, bool) {
	n := int64(1)
	for _, f := range []int{m.Dimensions[0], m.Dimensions[1], m.Dimensions[2], m.Stride()} {
		if f < 1 || int64(f) > math.MaxInt64/n {
			return 0, false
		}
		n *= int64(f)
	}
	if n > math.MaxInt {
		return 0, false
	}
	return n, true
}

// MaxBounds returns the dimensions normalized by the largest one, so the
// longest axis spans exactly 1.0.
func (m Metadata) MaxBounds() mgl32.Vec3 {
	maxDim := m.Dimensions[0]
	for _, d := range m.Dimensions[1:] {
		if d > maxDim {
			maxDim = d
		}
	}
	if maxDim <= 0 {
		return mgl32.Vec3{}
	}
	md := float32(maxDim)
	return mgl32.Vec3{
		float32(m.Dimensions[0]) / md,
		float32(m.Dimensions[1]) / md,
		float32(m.Dimensions[2]) / md,
	}
}

// String returns the layout in the filename token style, e.g. "w256_h256_d225_c1_b8".
func (m Metadata) String() string {
	return fmt.Sprintf("w%d_h%d_d%d_c%d_b%d",
		m.Dimensions[0], m.Dimensions[1], m.Dimensions[2], m.Channels, m.BitsPerChannel)
}

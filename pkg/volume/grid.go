package volume

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Grid is a loaded voxel grid. Samples are stored x-fastest, then y, then z,
// with channels interleaved per voxel, in host byte order.
type Grid struct {
	Metadata
	Data []byte
}

// FromBytes wraps an in-memory payload, applying the same validation as Load.
func FromBytes(meta Metadata, data []byte) (*Grid, error) {
	if err := meta.Validate(); err != nil {
		return nil, &LoadError{Op: "load", Path: "<memory>", Err: err}
	}
	if int64(len(data)) != meta.ByteSize() {
		return nil, &LoadError{Op: "load", Path: "<memory>",
			Err: fmt.Errorf("%w: %s needs %d bytes, got %d", ErrSizeMismatch, meta, meta.ByteSize(), len(data))}
	}
	return &Grid{Metadata: meta, Data: data}, nil
}

// Released reports whether the host payload has been dropped.
func (g *Grid) Released() bool {
	return g.Data == nil
}

// Release drops the host copy of the payload. Call after GPU upload.
func (g *Grid) Release() {
	g.Data = nil
}

// Sample returns channel c of voxel (x, y, z) normalized to [0,1] for
// integer depths. 32-bit samples are read as float32 and returned as stored.
func (g *Grid) Sample(x, y, z, c int) float32 {
	w, h := g.Dimensions[0], g.Dimensions[1]
	idx := ((z*h+y)*w+x)*g.Stride() + c*g.BytesPerChannel()

	switch g.BitsPerChannel {
	case Bits8:
		return float32(g.Data[idx]) / math.MaxUint8
	case Bits16:
		return float32(binary.NativeEndian.Uint16(g.Data[idx:])) / math.MaxUint16
	default:
		return math.Float32frombits(binary.NativeEndian.Uint32(g.Data[idx:]))
	}
}

// Histogram counts channel-0 samples into bins equal-width buckets over
// [0,1]. Out-of-range values land in the first or last bucket.
func (g *Grid) Histogram(bins int) []int {
	if bins < 1 || g.Released() {
		return nil
	}
	counts := make([]int, bins)
	w, h, d := g.Dimensions[0], g.Dimensions[1], g.Dimensions[2]
	for z := 0; z < d; z++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				b := int(g.Sample(x, y, z, 0) * float32(bins))
				if b < 0 {
					b = 0
				}
				if b >= bins {
					b = bins - 1
				}
				counts[b]++
			}
		}
	}
	return counts
}

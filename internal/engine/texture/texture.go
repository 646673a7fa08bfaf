// Package texture uploads the voxel grid and the transfer-function lookup
// table to the GPU.
package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxray/internal/logger"
	"github.com/Faultbox/voxray/pkg/transfer"
	"github.com/Faultbox/voxray/pkg/volume"
)

// Texture units the ray-casting shader samples from.
const (
	VolumeUnit   = 0
	TransferUnit = 1
)

// Format is the GL pixel format of a voxel grid.
type Format struct {
	Internal int32
	Layout   uint32
	Type     uint32
}

// FormatFor picks the GL format for the given channel count and bit depth.
// Integer samples are normalized by the GPU; 32-bit samples are floats.
func FormatFor(meta volume.Metadata) (Format, error) {
	var f Format
	switch meta.Channels {
	case 1:
		f.Layout = gl.RED
	case 2:
		f.Layout = gl.RG
	case 3:
		f.Layout = gl.RGB
	case 4:
		f.Layout = gl.RGBA
	default:
		return f, fmt.Errorf("%w: %d channels", volume.ErrUnsupportedFormat, meta.Channels)
	}

	internal := map[int][4]uint32{
		volume.Bits8:  {gl.R8, gl.RG8, gl.RGB8, gl.RGBA8},
		volume.Bits16: {gl.R16, gl.RG16, gl.RGB16, gl.RGBA16},
		volume.Bits32: {gl.R32F, gl.RG32F, gl.RGB32F, gl.RGBA32F},
	}
	formats, ok := internal[meta.BitsPerChannel]
	if !ok {
		return f, fmt.Errorf("%w: %d bits per channel", volume.ErrUnsupportedFormat, meta.BitsPerChannel)
	}
	f.Internal = int32(formats[meta.Channels-1])

	switch meta.BitsPerChannel {
	case volume.Bits8:
		f.Type = gl.UNSIGNED_BYTE
	case volume.Bits16:
		f.Type = gl.UNSIGNED_SHORT
	case volume.Bits32:
		f.Type = gl.FLOAT
	}
	return f, nil
}

// Volume is a 3-D texture holding a voxel grid.
type Volume struct {
	id uint32
}

// NewVolume uploads grid into a linear-filtered, edge-clamped 3-D texture.
// The grid's host buffer can be released afterwards.
func NewVolume(grid *volume.Grid) (*Volume, error) {
	if grid.Released() {
		return nil, fmt.Errorf("uploading %s: host data already released", grid.Metadata)
	}
	f, err := FormatFor(grid.Metadata)
	if err != nil {
		return nil, err
	}

	var maxSize int32
	gl.GetIntegerv(gl.MAX_3D_TEXTURE_SIZE, &maxSize)
	d := grid.Dimensions
	for _, n := range d {
		if int64(n) > int64(maxSize) {
			return nil, fmt.Errorf("%w: %s exceeds the driver's 3-D texture limit of %d",
				volume.ErrBadMetadata, grid.Metadata, maxSize)
		}
	}

	v := &Volume{}

	gl.ActiveTexture(gl.TEXTURE0 + VolumeUnit)
	gl.GenTextures(1, &v.id)
	gl.BindTexture(gl.TEXTURE_3D, v.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage3D(gl.TEXTURE_3D, 0, f.Internal, int32(d[0]), int32(d[1]), int32(d[2]), 0, f.Layout, f.Type, gl.Ptr(grid.Data))
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_3D, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_3D, 0)

	logger.Info("volume texture uploaded",
		zap.Stringer("format", grid.Metadata),
		zap.Int64("bytes", grid.ByteSize()),
		zap.Uint32("id", v.id),
	)
	return v, nil
}

// Bind binds the texture to VolumeUnit.
func (v *Volume) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + VolumeUnit)
	gl.BindTexture(gl.TEXTURE_3D, v.id)
}

// Delete releases the GL texture.
func (v *Volume) Delete() {
	if v.id != 0 {
		gl.DeleteTextures(1, &v.id)
		v.id = 0
	}
}

// Transfer is the TableSize x 1 RGBA8 lookup texture. It re-uploads only
// when the function's version changes.
type Transfer struct {
	id      uint32
	version uint64
	valid   bool
}

// NewTransfer allocates the lookup texture and uploads fn.
func NewTransfer(fn *transfer.Function) *Transfer {
	t := &Transfer{}
	gl.ActiveTexture(gl.TEXTURE0 + TransferUnit)
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, transfer.TableSize, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.Update(fn)
	return t
}

// Update uploads the lookup table if fn changed since the last upload and
// reports whether it did.
func (t *Transfer) Update(fn *transfer.Function) bool {
	if t.valid && fn.Version() == t.version {
		return false
	}
	texels := fn.RGBA8()

	gl.ActiveTexture(gl.TEXTURE0 + TransferUnit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, transfer.TableSize, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(texels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	t.version = fn.Version()
	t.valid = true
	logger.Debug("transfer texture updated", zap.Uint64("version", t.version), zap.Int("points", fn.Len()))
	return true
}

// Bind binds the texture to TransferUnit.
func (t *Transfer) Bind() {
	gl.ActiveTexture(gl.TEXTURE0 + TransferUnit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Delete releases the GL texture.
func (t *Transfer) Delete() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

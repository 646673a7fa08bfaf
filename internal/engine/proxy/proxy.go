// Package proxy builds the box geometry the ray caster rasterizes to find
// where each ray enters the volume.
package proxy

import "github.com/go-gl/mathgl/mgl32"

// Vertex counts of the generated meshes.
const (
	SolidVertexCount     = 36 // 6 faces × 2 triangles × 3
	WireframeVertexCount = 24 // 12 edges × 2 endpoints
)

// Box is an axis-aligned bounding box in object space.
type Box struct {
	Min, Max mgl32.Vec3
}

// FromBounds returns the box spanning the origin to bounds, the space the
// volume texture is mapped into.
func FromBounds(bounds mgl32.Vec3) Box {
	return Box{Max: bounds}.Canon()
}

// Canon swaps inverted components so Min <= Max on every axis.
func (b Box) Canon() Box {
	for i := 0; i < 3; i++ {
		if b.Min[i] > b.Max[i] {
			b.Min[i], b.Max[i] = b.Max[i], b.Min[i]
		}
	}
	return b
}

// Size returns the box extent per axis.
func (b Box) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the box midpoint.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Expand grows the box by pad on all sides.
func (b Box) Expand(pad float32) Box {
	p := mgl32.Vec3{pad, pad, pad}
	return Box{Min: b.Min.Sub(p), Max: b.Max.Add(p)}.Canon()
}

// Contains reports whether p lies inside or on the box.
func (b Box) Contains(p mgl32.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// corners returns the eight corners. Bit 0 of the index selects x, bit 1
// selects y, bit 2 selects z (0 = min, 1 = max).
func (b Box) corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := range c {
		c[i] = b.Min
		if i&1 != 0 {
			c[i][0] = b.Max[0]
		}
		if i&2 != 0 {
			c[i][1] = b.Max[1]
		}
		if i&4 != 0 {
			c[i][2] = b.Max[2]
		}
	}
	return c
}

// Faces wound counter-clockwise when seen from outside the box.
var faceCorners = [6][4]int{
	{0, 2, 3, 1}, // -z
	{4, 5, 7, 6}, // +z
	{0, 4, 6, 2}, // -x
	{1, 3, 7, 5}, // +x
	{0, 1, 5, 4}, // -y
	{2, 6, 7, 3}, // +y
}

var edgeCorners = [12][2]int{
	// Bottom face
	{0, 1}, {1, 5}, {5, 4}, {4, 0},
	// Top face
	{2, 3}, {3, 7}, {7, 6}, {6, 2},
	// Vertical edges
	{0, 2}, {1, 3}, {5, 7}, {4, 6},
}

// Solid returns triangle vertices for the closed box, [x, y, z] per vertex.
func (b Box) Solid() []float32 {
	c := b.corners()
	out := make([]float32, 0, SolidVertexCount*3)
	for _, f := range faceCorners {
		for _, i := range [6]int{f[0], f[1], f[2], f[0], f[2], f[3]} {
			out = append(out, c[i][0], c[i][1], c[i][2])
		}
	}
	return out
}

// Wireframe returns line vertices for the 12 box edges.
func (b Box) Wireframe() []float32 {
	c := b.corners()
	out := make([]float32, 0, WireframeVertexCount*3)
	for _, e := range edgeCorners {
		out = append(out, c[e[0]][0], c[e[0]][1], c[e[0]][2])
		out = append(out, c[e[1]][0], c[e[1]][1], c[e[1]][2])
	}
	return out
}

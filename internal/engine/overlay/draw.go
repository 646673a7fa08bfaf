package overlay

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the vertex layout of a DrawList: x, y, r, g, b, a.
const FloatsPerVertex = 6

// Palette used by the editor panel.
var (
	ColorPanel     = mgl32.Vec4{0.08, 0.08, 0.12, 0.85}
	ColorBorder    = mgl32.Vec4{0.3, 0.3, 0.4, 1}
	ColorHistogram = mgl32.Vec4{0.35, 0.35, 0.45, 0.8}
	ColorCurve     = mgl32.Vec4{0.9, 0.9, 0.9, 1}
	ColorHighlight = mgl32.Vec4{0.2, 0.6, 0.9, 1}
)

// Rect is a screen-space rectangle in pixels, origin at the top left.
type Rect struct {
	X, Y, W, H float32
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(p mgl32.Vec2) bool {
	return p[0] >= r.X && p[0] < r.X+r.W && p[1] >= r.Y && p[1] < r.Y+r.H
}

// DrawList collects colored triangles in screen space.
type DrawList struct {
	Vertices []float32
}

// Reset empties the list, keeping its storage.
func (d *DrawList) Reset() {
	d.Vertices = d.Vertices[:0]
}

// Len returns the number of vertices.
func (d *DrawList) Len() int {
	return len(d.Vertices) / FloatsPerVertex
}

func (d *DrawList) vertex(p mgl32.Vec2, c mgl32.Vec4) {
	d.Vertices = append(d.Vertices, p[0], p[1], c[0], c[1], c[2], c[3])
}

// Quad adds an axis-aligned filled rectangle.
func (d *DrawList) Quad(r Rect, c mgl32.Vec4) {
	d.GradientQuad(r, c, c)
}

// GradientQuad adds a rectangle shaded from left to right.
func (d *DrawList) GradientQuad(r Rect, left, right mgl32.Vec4) {
	tl := mgl32.Vec2{r.X, r.Y}
	tr := mgl32.Vec2{r.X + r.W, r.Y}
	br := mgl32.Vec2{r.X + r.W, r.Y + r.H}
	bl := mgl32.Vec2{r.X, r.Y + r.H}
	d.vertex(tl, left)
	d.vertex(tr, right)
	d.vertex(br, right)
	d.vertex(tl, left)
	d.vertex(br, right)
	d.vertex(bl, left)
}

// Outline adds a rectangle border of the given thickness.
func (d *DrawList) Outline(r Rect, thickness float32, c mgl32.Vec4) {
	d.Quad(Rect{r.X, r.Y, r.W, thickness}, c)
	d.Quad(Rect{r.X, r.Y + r.H - thickness, r.W, thickness}, c)
	d.Quad(Rect{r.X, r.Y, thickness, r.H}, c)
	d.Quad(Rect{r.X + r.W - thickness, r.Y, thickness, r.H}, c)
}

// Segment adds a line from a to b as a quad of the given width.
// Zero-length segments are skipped.
func (d *DrawList) Segment(a, b mgl32.Vec2, width float32, c mgl32.Vec4) {
	dir := b.Sub(a)
	l := dir.Len()
	if l == 0 || math32.IsNaN(l) {
		return
	}
	n := mgl32.Vec2{-dir[1], dir[0]}.Mul(width / (2 * l))
	d.vertex(a.Add(n), c)
	d.vertex(b.Add(n), c)
	d.vertex(b.Sub(n), c)
	d.vertex(a.Add(n), c)
	d.vertex(b.Sub(n), c)
	d.vertex(a.Sub(n), c)
}

// Package transfer maps scalar intensity to color and opacity through a
// piecewise-linear set of control points baked into a dense lookup table.
package transfer

import (
	"sort"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// TableSize is the number of RGBA entries in the lookup table.
const TableSize = 256

// ControlPoint anchors the function at a scalar value.
type ControlPoint struct {
	Value float32
	Color mgl32.Vec4
}

// Function is an ordered set of control points plus the lookup table
// derived from them. Points are kept stably sorted by value, so among points
// sharing a value the one inserted last comes last.
//
// The zero value is an empty function whose table is transparent black.
type Function struct {
	points  []ControlPoint
	table   [TableSize]mgl32.Vec4
	stale   bool
	version uint64
}

// New returns an empty function.
func New() *Function {
	return &Function{}
}

// Default returns a linear ramp from transparent black at 0 to opaque white at 1.
func Default() *Function {
	f := New()
	f.Add(0, mgl32.Vec4{0, 0, 0, 0})
	f.Add(1, mgl32.Vec4{1, 1, 1, 1})
	return f
}

// Reset removes every control point. The table becomes transparent black.
func (f *Function) Reset() {
	f.points = f.points[:0]
	f.table = [TableSize]mgl32.Vec4{}
	f.stale = false
	f.version++
}

// Add inserts a control point and returns its index in sorted order.
// value and the color components are clamped to [0,1]. Duplicates are kept.
func (f *Function) Add(value float32, color mgl32.Vec4) int {
	p := ControlPoint{Value: clamp01(value), Color: clampColor(color)}
	i := sort.Search(len(f.points), func(i int) bool { return f.points[i].Value > p.Value })
	f.points = append(f.points, ControlPoint{})
	copy(f.points[i+1:], f.points[i:])
	f.points[i] = p
	f.touch()
	return i
}

// Remove deletes the point at index. Out-of-range indices are ignored and
// reported with false.
func (f *Function) Remove(index int) bool {
	if index < 0 || index >= len(f.points) {
		return false
	}
	f.points = append(f.points[:index], f.points[index+1:]...)
	f.touch()
	return true
}

// Move changes the value of the point at index, clamping it to [0,1], and
// returns the point's new index. The moved point is re-inserted as the newest
// point at its value. Out-of-range indices are ignored and reported with false.
func (f *Function) Move(index int, value float32) (int, bool) {
	if index < 0 || index >= len(f.points) {
		return index, false
	}
	color := f.points[index].Color
	f.points = append(f.points[:index], f.points[index+1:]...)
	return f.Add(value, color), true
}

// SetColor replaces the color of the point at index. Out-of-range indices are
// ignored and reported with false.
func (f *Function) SetColor(index int, color mgl32.Vec4) bool {
	if index < 0 || index >= len(f.points) {
		return false
	}
	f.points[index].Color = clampColor(color)
	f.touch()
	return true
}

// Len returns the number of control points.
func (f *Function) Len() int {
	return len(f.points)
}

// Point returns the control point at index.
func (f *Function) Point(index int) ControlPoint {
	return f.points[index]
}

// Points returns a copy of the control points in sorted order.
func (f *Function) Points() []ControlPoint {
	out := make([]ControlPoint, len(f.points))
	copy(out, f.points)
	return out
}

// Version changes on every mutation. Compare it to decide whether a GPU copy
// of the table is out of date.
func (f *Function) Version() uint64 {
	return f.version
}

// Table returns the lookup table, regenerating it first if points changed.
// The returned array is owned by f and is valid until the next mutation.
func (f *Function) Table() *[TableSize]mgl32.Vec4 {
	if f.stale {
		f.rebuild()
	}
	return &f.table
}

// RGBA8 returns the table as 8-bit RGBA texels, TableSize*4 bytes.
func (f *Function) RGBA8() []byte {
	table := f.Table()
	out := make([]byte, TableSize*4)
	for i, c := range table {
		for j := 0; j < 4; j++ {
			out[i*4+j] = uint8(math32.Floor(c[j]*255 + 0.5))
		}
	}
	return out
}

// Sample evaluates the function at t without going through the table.
func (f *Function) Sample(t float32) mgl32.Vec4 {
	return evaluate(f.points, t)
}

func (f *Function) touch() {
	f.stale = true
	f.version++
}

func (f *Function) rebuild() {
	for i := range f.table {
		f.table[i] = evaluate(f.points, float32(i)/float32(TableSize-1))
	}
	f.stale = false
}

// evaluate interpolates the sorted points at t. Before the first value and
// after the last the nearest end color is held. Among points sharing a value
// the last one wins.
func evaluate(points []ControlPoint, t float32) mgl32.Vec4 {
	n := len(points)
	if n == 0 {
		return mgl32.Vec4{}
	}

	// hi is the first point strictly above t.
	hi := sort.Search(n, func(i int) bool { return points[i].Value > t })
	if hi == n {
		return points[n-1].Color
	}
	if hi == 0 {
		// Before the first value: hold the last point sharing that value.
		first := sort.Search(n, func(i int) bool { return points[i].Value > points[0].Value })
		return points[first-1].Color
	}

	lo, up := points[hi-1], points[hi]
	span := up.Value - lo.Value
	if span == 0 {
		return up.Color
	}
	frac := (t - lo.Value) / span
	return lo.Color.Add(up.Color.Sub(lo.Color).Mul(frac))
}

func clamp01(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return mgl32.Clamp(v, 0, 1)
}

func clampColor(c mgl32.Vec4) mgl32.Vec4 {
	return mgl32.Vec4{clamp01(c[0]), clamp01(c[1]), clamp01(c[2]), clamp01(c[3])}
}

// Package overlay implements the transfer-function editor drawn over the
// volume: a lookup-table strip, the opacity curve with its stops, and the
// data histogram behind them. It builds screen-space geometry and turns
// pointer input into edits of a transfer.Function. It never touches GL.
package overlay

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/voxray/pkg/transfer"
)

// Layout defaults in pixels.
const (
	DefaultStripHeight = 16
	DefaultPickRadius  = 6
	markerSize         = 8
	curveWidth         = 2
)

// Pointer is the pointer state for one frame.
type Pointer struct {
	Pos   mgl32.Vec2
	Left  bool
	Right bool
}

// Editor edits a transfer function through pointer input.
type Editor struct {
	fn   *transfer.Function
	rect Rect

	StripHeight float32
	PickRadius  float32

	visible   bool
	histogram []float32

	prev     Pointer
	owner    bool // a press started inside the panel and is still held
	dragging int  // index of the stop under a left drag, or -1
	hover    int

	list DrawList
}

// NewEditor creates a hidden editor for fn laid out in rect.
func NewEditor(fn *transfer.Function, rect Rect) *Editor {
	return &Editor{
		fn:          fn,
		rect:        rect,
		StripHeight: DefaultStripHeight,
		PickRadius:  DefaultPickRadius,
		dragging:    -1,
		hover:       -1,
	}
}

// Function returns the edited transfer function.
func (e *Editor) Function() *transfer.Function {
	return e.fn
}

// Rect returns the panel rectangle.
func (e *Editor) Rect() Rect {
	return e.rect
}

// SetRect moves or resizes the panel.
func (e *Editor) SetRect(r Rect) {
	e.rect = r
}

// Visible reports whether the editor is shown.
func (e *Editor) Visible() bool {
	return e.visible
}

// SetVisible shows or hides the editor. Hiding drops any drag in progress.
func (e *Editor) SetVisible(v bool) {
	e.visible = v
	if !v {
		e.owner = false
		e.dragging = -1
		e.hover = -1
	}
}

// SetHistogram sets the bin counts drawn behind the curve. Counts are
// log-scaled and normalized to the tallest bin.
func (e *Editor) SetHistogram(counts []int) {
	e.histogram = e.histogram[:0]
	peak := 0
	for _, c := range counts {
		if c > peak {
			peak = c
		}
	}
	if peak == 0 {
		return
	}
	norm := math32.Log(1 + float32(peak))
	for _, c := range counts {
		e.histogram = append(e.histogram, math32.Log(1+float32(c))/norm)
	}
}

// curveRect is the part of the panel above the lookup-table strip.
func (e *Editor) curveRect() Rect {
	h := e.rect.H - e.StripHeight
	if h < 0 {
		h = 0
	}
	return Rect{e.rect.X, e.rect.Y, e.rect.W, h}
}

// Position maps a stop value and opacity to screen space.
func (e *Editor) Position(value, alpha float32) mgl32.Vec2 {
	c := e.curveRect()
	return mgl32.Vec2{c.X + value*c.W, c.Y + (1-alpha)*c.H}
}

// ValueAt maps a screen position to a stop value and opacity, both clamped to [0,1].
func (e *Editor) ValueAt(p mgl32.Vec2) (value, alpha float32) {
	c := e.curveRect()
	if c.W > 0 {
		value = (p[0] - c.X) / c.W
	}
	if c.H > 0 {
		alpha = 1 - (p[1]-c.Y)/c.H
	}
	return mgl32.Clamp(value, 0, 1), mgl32.Clamp(alpha, 0, 1)
}

// Pick returns the index of the stop marker nearest to p within
// PickRadius, or -1. Later stops win ties so the newest stop at a value
// is picked first.
func (e *Editor) Pick(p mgl32.Vec2) int {
	best := -1
	bestDist := e.PickRadius
	for i, cp := range e.fn.Points() {
		d := e.Position(cp.Value, cp.Color[3]).Sub(p).Len()
		if d <= bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Handle applies one frame of pointer input and reports whether the editor
// consumed it. A consumed pointer must not drive the camera that frame.
func (e *Editor) Handle(p Pointer) bool {
	leftPressed := p.Left && !e.prev.Left
	rightPressed := p.Right && !e.prev.Right
	e.prev = p

	if !e.visible {
		return false
	}

	inside := e.rect.Contains(p.Pos)
	if (leftPressed || rightPressed) && inside {
		e.owner = true
	}
	if !p.Left && !p.Right {
		e.owner = false
	}
	if !p.Left {
		e.dragging = -1
	}

	switch {
	case leftPressed && inside:
		e.dragging = e.Pick(p.Pos)
		if e.dragging < 0 {
			e.dragging = e.addAt(p.Pos)
		}
	case rightPressed && inside:
		if i := e.Pick(p.Pos); i >= 0 {
			e.fn.Remove(i)
		}
	case p.Left && e.dragging >= 0:
		e.dragTo(p.Pos)
	}

	e.hover = -1
	if inside && e.dragging < 0 {
		e.hover = e.Pick(p.Pos)
	}
	return e.owner
}

// addAt inserts a stop under the pointer. Its color is the function's
// current color at that value with the opacity taken from the height.
func (e *Editor) addAt(pos mgl32.Vec2) int {
	value, alpha := e.ValueAt(pos)
	c := e.fn.Sample(value)
	c[3] = alpha
	return e.fn.Add(value, c)
}

func (e *Editor) dragTo(pos mgl32.Vec2) {
	value, alpha := e.ValueAt(pos)
	i, ok := e.fn.Move(e.dragging, value)
	if !ok {
		e.dragging = -1
		return
	}
	c := e.fn.Point(i).Color
	c[3] = alpha
	e.fn.SetColor(i, c)
	e.dragging = i
}

// Dragging returns the index of the stop being dragged, or -1.
func (e *Editor) Dragging() int {
	return e.dragging
}

// Geometry rebuilds the panel's triangles. The returned list is reused by
// the next call.
func (e *Editor) Geometry() *DrawList {
	d := &e.list
	d.Reset()
	if !e.visible {
		return d
	}

	d.Quad(e.rect, ColorPanel)

	c := e.curveRect()
	if n := len(e.histogram); n > 0 {
		w := c.W / float32(n)
		for i, h := range e.histogram {
			if h <= 0 {
				continue
			}
			d.Quad(Rect{c.X + float32(i)*w, c.Y + (1-h)*c.H, w, h * c.H}, ColorHistogram)
		}
	}

	table := e.fn.Table()
	strip := Rect{e.rect.X, c.Y + c.H, e.rect.W, e.rect.H - c.H}
	step := strip.W / float32(transfer.TableSize-1)
	for i := 0; i < transfer.TableSize-1; i++ {
		l, r := table[i], table[i+1]
		l[3], r[3] = 1, 1
		d.GradientQuad(Rect{strip.X + float32(i)*step, strip.Y, step, strip.H}, l, r)
	}

	for i := 0; i < transfer.TableSize-1; i++ {
		t0 := float32(i) / float32(transfer.TableSize-1)
		t1 := float32(i+1) / float32(transfer.TableSize-1)
		d.Segment(e.Position(t0, table[i][3]), e.Position(t1, table[i+1][3]), curveWidth, ColorCurve)
	}

	for i, cp := range e.fn.Points() {
		p := e.Position(cp.Value, cp.Color[3])
		m := Rect{p[0] - markerSize/2, p[1] - markerSize/2, markerSize, markerSize}
		border := ColorBorder
		if i == e.dragging || i == e.hover {
			border = ColorHighlight
		}
		fill := cp.Color
		fill[3] = 1
		d.Quad(m, border)
		d.Quad(Rect{m.X + 1, m.Y + 1, m.W - 2, m.H - 2}, fill)
	}

	d.Outline(e.rect, 1, ColorBorder)
	return d
}

// Package renderer issues the viewer's GL draw calls: the proxy cube that
// starts each ray, the bounds wireframe and the 2-D editor overlay.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/voxray/internal/engine/overlay"
	"github.com/Faultbox/voxray/internal/engine/proxy"
	"github.com/Faultbox/voxray/internal/engine/shader"
	"github.com/Faultbox/voxray/internal/logger"
)

// BoundsColor is the wireframe color.
var BoundsColor = mgl32.Vec4{0.9, 0.6, 0.2, 1}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Sources provides the helper programs the renderer owns.
type Sources struct {
	Line    shader.SourceFunc
	Overlay shader.SourceFunc
}

// mesh is a VAO with a single float32 vertex buffer.
type mesh struct {
	vao, vbo uint32
	count    int32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	cube    mesh
	bounds  mesh
	overlay mesh

	lineProgram    *shader.Program
	overlayProgram *shader.Program
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, src Sources) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	if r.lineProgram, err = shader.NewProgram("line", src.Line); err != nil {
		return nil, err
	}
	if r.overlayProgram, err = shader.NewProgram("overlay", src.Overlay); err != nil {
		r.lineProgram.Delete()
		return nil, err
	}

	r.cube = newMesh([]int32{3})
	r.bounds = newMesh([]int32{3})
	r.overlay = newMesh([]int32{2, 4})

	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// newMesh creates a VAO whose interleaved float attributes have the given
// component counts, bound to locations 0, 1, ...
func newMesh(components []int32) mesh {
	var m mesh
	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)

	var stride int32
	for _, c := range components {
		stride += c * 4
	}
	var offset int32
	for loc, c := range components {
		gl.VertexAttribPointerWithOffset(uint32(loc), c, gl.FLOAT, false, stride, uintptr(offset))
		gl.EnableVertexAttribArray(uint32(loc))
		offset += c * 4
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return m
}

func (m *mesh) upload(vertices []float32, floatsPerVertex int, usage uint32) {
	m.count = int32(len(vertices) / floatsPerVertex)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), usage)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (m *mesh) delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	*m = mesh{}
}

// SetBox uploads the proxy geometry for the volume's bounding box.
func (r *Renderer) SetBox(box proxy.Box) {
	r.cube.upload(box.Solid(), 3, gl.STATIC_DRAW)
	r.bounds.upload(box.Wireframe(), 3, gl.STATIC_DRAW)
	logger.Debug("proxy geometry uploaded",
		zap.Int32("triangles", r.cube.count/3),
		zap.Int32("edges", r.bounds.count/2),
	)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Debug("closing renderer")
	r.cube.delete()
	r.bounds.delete()
	r.overlay.delete()
	if r.lineProgram != nil {
		r.lineProgram.Delete()
	}
	if r.overlayProgram != nil {
		r.overlayProgram.Delete()
	}
}

// Resize handles window resize. Sizes are in framebuffer pixels.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the frame to the background color.
func (r *Renderer) Begin(background mgl32.Vec3) {
	gl.ClearColor(background[0], background[1], background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawVolume rasterizes the front faces of the proxy cube with the bound
// ray-casting program. The program's uniforms and textures must be set.
// Fragments are premultiplied, hence the ONE / ONE_MINUS_SRC_ALPHA blend.
func (r *Renderer) DrawVolume(p *shader.Program) {
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)

	p.Use()
	gl.BindVertexArray(r.cube.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.cube.count)
	gl.BindVertexArray(0)

	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.BLEND)
	gl.UseProgram(0)
}

// DrawBounds draws the bounding box edges.
func (r *Renderer) DrawBounds(projection, modelView mgl32.Mat4) {
	gl.Enable(gl.DEPTH_TEST)

	r.lineProgram.Use()
	r.lineProgram.SetMat4("Projection", projection)
	r.lineProgram.SetMat4("Modelview", modelView)
	r.lineProgram.SetVec4("color", BoundsColor)

	gl.BindVertexArray(r.bounds.vao)
	gl.DrawArrays(gl.LINES, 0, r.bounds.count)
	gl.BindVertexArray(0)

	gl.Disable(gl.DEPTH_TEST)
	gl.UseProgram(0)
}

// DrawOverlay draws screen-space triangles. width and height are the
// window size in the same units as the list's coordinates.
func (r *Renderer) DrawOverlay(list *overlay.DrawList, width, height int) {
	if list.Len() == 0 {
		return
	}
	r.overlay.upload(list.Vertices, overlay.FloatsPerVertex, gl.STREAM_DRAW)

	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	r.overlayProgram.Use()
	r.overlayProgram.SetMat4("Projection", mgl32.Ortho2D(0, float32(width), float32(height), 0))

	gl.BindVertexArray(r.overlay.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.overlay.count)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.UseProgram(0)
}

// ReadPixels reads the current framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, w, h
}

// LineProgram and OverlayProgram expose the helper programs for reloading.
func (r *Renderer) LineProgram() *shader.Program    { return r.lineProgram }
func (r *Renderer) OverlayProgram() *shader.Program { return r.overlayProgram }

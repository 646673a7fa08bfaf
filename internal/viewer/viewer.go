// Package viewer runs the interactive volume viewer: it owns the window,
// the GPU resources and the per-frame loop.
package viewer

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/voxray/internal/app"
	"github.com/Faultbox/voxray/internal/assets"
	"github.com/Faultbox/voxray/internal/config"
	"github.com/Faultbox/voxray/internal/engine/camera"
	"github.com/Faultbox/voxray/internal/engine/capture"
	"github.com/Faultbox/voxray/internal/engine/input"
	"github.com/Faultbox/voxray/internal/engine/overlay"
	"github.com/Faultbox/voxray/internal/engine/proxy"
	"github.com/Faultbox/voxray/internal/engine/renderer"
	"github.com/Faultbox/voxray/internal/engine/shader"
	"github.com/Faultbox/voxray/internal/engine/texture"
	"github.com/Faultbox/voxray/internal/engine/window"
	"github.com/Faultbox/voxray/internal/logger"
	"github.com/Faultbox/voxray/pkg/transfer"
	"github.com/Faultbox/voxray/pkg/volume"
)

// Editor panel placement, in window coordinates.
const (
	panelMargin   = 10
	panelHeight   = 140
	histogramBins = 128
)

// App is the running viewer.
type App struct {
	cfg *config.Config

	win      *window.Window
	input    *input.Input
	renderer *renderer.Renderer

	assets  *assets.Manager
	watcher *assets.Watcher
	program *shader.Program

	meta        volume.Metadata
	volumeTex   *texture.Volume
	transferTex *texture.Transfer

	state       *app.State
	transfer    *transfer.Function
	manipulator *camera.Manipulator
	editor      *overlay.Editor
	capture     *capture.Capturer

	title string
}

// New loads the volume, opens the window and builds every GPU resource.
// Any failure here is fatal; partially built resources are released.
func New(cfg *config.Config) (_ *App, err error) {
	a := &App{
		cfg:      cfg,
		input:    input.New(),
		assets:   assets.NewManager(),
		state:    app.NewState(cfg.Render),
		transfer: transfer.Default(),
		capture:  capture.New(cfg.Capture.Dir, cfg.Capture.Prefix, cfg.Capture.Format),
	}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	// Disk directories override the built-in shaders; the first listed wins.
	for i := len(cfg.Shaders.Dirs) - 1; i >= 0; i-- {
		a.assets.AddDir(cfg.Shaders.Dirs[i])
	}

	grid, err := volume.NewLoader().Load(cfg.Volume.Path)
	if err != nil {
		return nil, err
	}
	a.meta = grid.Metadata
	bounds := grid.MaxBounds()
	logger.Info("volume loaded",
		zap.String("path", cfg.Volume.Path),
		zap.Stringer("layout", grid.Metadata),
		zap.Float32s("bounds", bounds[:]),
	)

	if a.win, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	}); err != nil {
		return nil, err
	}

	fbw, fbh := a.win.DrawableSize()
	if a.renderer, err = renderer.New(renderer.Config{Width: fbw, Height: fbh}, renderer.Sources{
		Line:    a.sources("line.vert", "line.frag"),
		Overlay: a.sources("overlay.vert", "overlay.frag"),
	}); err != nil {
		return nil, err
	}
	a.renderer.SetBox(proxy.FromBounds(bounds))

	if a.program, err = shader.NewProgram("volume", a.sources(cfg.Shaders.Vertex, cfg.Shaders.Fragment)); err != nil {
		return nil, err
	}

	if a.volumeTex, err = texture.NewVolume(grid); err != nil {
		return nil, err
	}
	a.transferTex = texture.NewTransfer(a.transfer)

	w, h := a.win.Size()
	a.editor = overlay.NewEditor(a.transfer, panelRect(w, h))
	a.editor.SetHistogram(grid.Histogram(histogramBins))

	// Nothing reads the host copy after upload.
	grid.Release()

	tt := camera.NewTurntable()
	applyTurntableConfig(tt, cfg.Turntable)
	a.manipulator = camera.NewManipulator(tt)

	if cfg.Shaders.Watch {
		a.watcher, err = assets.NewWatcher(cfg.Shaders.Dirs,
			cfg.Shaders.Vertex, cfg.Shaders.Fragment,
			"line.vert", "line.frag", "overlay.vert", "overlay.frag")
		if err != nil {
			// Manual reload still works.
			logger.Warn("shader watching disabled", zap.Error(err))
			a.watcher, err = nil, nil
		}
	}

	a.updateTitle()
	return a, nil
}

// sources returns a SourceFunc reading the named shaders through the asset manager.
func (a *App) sources(vertex, fragment string) shader.SourceFunc {
	return func() (string, string, error) {
		v, err := a.assets.LoadString(vertex)
		if err != nil {
			return "", "", err
		}
		f, err := a.assets.LoadString(fragment)
		if err != nil {
			return "", "", err
		}
		return v, f, nil
	}
}

func applyTurntableConfig(t *camera.Turntable, cfg config.TurntableConfig) {
	if cfg.OrbitSensitivity > 0 {
		t.OrbitSensitivity = cfg.OrbitSensitivity
	}
	if cfg.PanSensitivity > 0 {
		t.PanSensitivity = cfg.PanSensitivity
	}
	if cfg.ZoomSensitivity > 0 {
		t.ZoomSensitivity = cfg.ZoomSensitivity
	}
	if cfg.MinDistance > 0 {
		t.MinDistance = cfg.MinDistance
	}
	if cfg.MaxDistance > 0 {
		t.MaxDistance = cfg.MaxDistance
	}
}

func panelRect(width, height int) overlay.Rect {
	w := float32(width) - 2*panelMargin
	if w < 0 {
		w = 0
	}
	return overlay.Rect{
		X: panelMargin,
		Y: float32(height) - panelHeight - panelMargin,
		W: w,
		H: panelHeight,
	}
}

// Run drives frames until the window closes or exit is requested.
// Each frame: input, state updates, uploads, draw, present.
func (a *App) Run() error {
	logger.Info("entering render loop")
	for {
		quit := a.input.Update()
		if _, _, ok := a.input.Resized(); ok {
			a.resize()
		}

		actions := a.state.Apply(controls(a.input))
		if quit || actions.Exit {
			logger.Info("exit requested")
			return nil
		}
		if a.editor.Visible() != a.state.ShowOverlay {
			a.editor.SetVisible(a.state.ShowOverlay)
		}

		pointer := a.input.Pointer()
		left := a.input.ButtonHeld(sdl.BUTTON_LEFT)
		middle := a.input.ButtonHeld(sdl.BUTTON_MIDDLE)
		right := a.input.ButtonHeld(sdl.BUTTON_RIGHT)

		var buttons camera.Buttons
		if !a.editor.Handle(overlay.Pointer{Pos: pointer, Left: left, Right: right}) {
			buttons = camera.Buttons{Primary: left, Secondary: middle, Tertiary: right}
		}
		manip := a.manipulator.Evaluate(pointer, buttons)

		if actions.Reload || a.watchedChange() {
			a.reload()
		}

		a.transferTex.Update(a.transfer)
		a.draw(manip)

		if actions.Capture {
			a.screenshot()
		}
		a.updateTitle()
		a.win.SwapBuffers()
	}
}

func (a *App) watchedChange() bool {
	if a.watcher == nil {
		return false
	}
	name, ok := a.watcher.Pending()
	if ok {
		logger.Debug("shader source changed", zap.String("file", name))
	}
	return ok
}

func (a *App) resize() {
	fbw, fbh := a.win.DrawableSize()
	a.renderer.Resize(fbw, fbh)
	w, h := a.win.Size()
	a.editor.SetRect(panelRect(w, h))
}

// reload rebuilds every program from disk. A program that fails to build
// keeps running its previous version.
func (a *App) reload() {
	a.assets.Refresh()
	programs := []*shader.Program{a.program, a.renderer.LineProgram(), a.renderer.OverlayProgram()}
	var errs []error
	for _, p := range programs {
		if err := p.Reload(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.Error("shader reload failed, keeping previous programs", zap.Error(err))
	}
}

func (a *App) draw(manip mgl32.Mat4) {
	fbw, fbh := a.renderer.Size()
	u := app.ComputeUniforms(a.state, fbw, fbh, manip, a.meta)

	a.renderer.Begin(a.state.Background)

	a.volumeTex.Bind()
	a.transferTex.Bind()
	a.program.Use()
	setUniforms(a.program, u)
	a.renderer.DrawVolume(a.program)

	if a.state.ShowBounds {
		a.renderer.DrawBounds(u.Projection, u.ModelView)
	}

	w, h := a.win.Size()
	a.renderer.DrawOverlay(a.editor.Geometry(), w, h)
}

func setUniforms(p *shader.Program, u app.Uniforms) {
	p.SetInt("volume_texture", texture.VolumeUnit)
	p.SetInt("transfer_texture", texture.TransferUnit)
	p.SetVec3("camera_location", u.CameraLocation)
	p.SetFloat("sampling_distance", u.SamplingDistance)
	p.SetFloat("iso_value", u.IsoValue)
	p.SetVec3("max_bounds", u.MaxBounds)
	p.SetIVec3("volume_dimensions", u.VolumeDimensions)
	p.SetVec3("light_position", u.LightPosition)
	p.SetVec3("light_color", u.LightColor)
	p.SetMat4("Projection", u.Projection)
	p.SetMat4("Modelview", u.ModelView)
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	name, err := a.capture.SavePixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("file", name))
}

func (a *App) updateTitle() {
	title := fmt.Sprintf("%s - %s - iso %.3f, step %.4f",
		a.cfg.Window.Title, a.meta, a.state.IsoValue, a.state.SamplingDistance)
	if title != a.title {
		a.win.SetTitle(title)
		a.title = title
	}
}

// Close releases GPU resources and the window, newest first.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.transferTex != nil {
		a.transferTex.Delete()
	}
	if a.volumeTex != nil {
		a.volumeTex.Delete()
	}
	if a.program != nil {
		a.program.Delete()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
}

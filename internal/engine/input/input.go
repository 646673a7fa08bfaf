// Package input turns SDL2 events into a per-frame snapshot of the window,
// pointer and keyboard.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
)

// Input tracks held state across frames.
type Input struct {
	pointer mgl32.Vec2
	buttons map[uint8]bool
	keys    []uint8
	quit    bool

	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		buttons: make(map[uint8]bool, 3),
	}
}

// Update polls all pending SDL events. Returns true once the window was
// asked to close.
func (i *Input) Update() bool {
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.resized = true
				i.width, i.height = int(e.Data1), int(e.Data2)
			}

		case *sdl.MouseMotionEvent:
			i.pointer = mgl32.Vec2{float32(e.X), float32(e.Y)}

		case *sdl.MouseButtonEvent:
			i.pointer = mgl32.Vec2{float32(e.X), float32(e.Y)}
			i.buttons[e.Button] = e.State == sdl.PRESSED
		}
	}

	// Held keys come straight from SDL's keyboard array.
	i.keys = sdl.GetKeyboardState()
	return i.quit
}

// Resized returns the latest size reported this frame, if any.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}

// Pointer returns the pointer position in window coordinates.
func (i *Input) Pointer() mgl32.Vec2 {
	return i.pointer
}

// ButtonHeld reports whether a mouse button (sdl.BUTTON_LEFT, ...) is down.
func (i *Input) ButtonHeld(button uint8) bool {
	return i.buttons[button]
}

// KeyHeld reports whether the key is down.
func (i *Input) KeyHeld(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}

// AnyKeyHeld reports whether any of the keys is down.
func (i *Input) AnyKeyHeld(scancodes ...sdl.Scancode) bool {
	for _, sc := range scancodes {
		if i.KeyHeld(sc) {
			return true
		}
	}
	return false
}

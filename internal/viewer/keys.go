package viewer

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/voxray/internal/app"
	"github.com/Faultbox/voxray/internal/engine/input"
)

// Key bindings.
var (
	keyExit          = []sdl.Scancode{sdl.SCANCODE_ESCAPE}
	keyLightLeft     = []sdl.Scancode{sdl.SCANCODE_LEFT}
	keyLightRight    = []sdl.Scancode{sdl.SCANCODE_RIGHT}
	keyLightUp       = []sdl.Scancode{sdl.SCANCODE_UP}
	keyLightDown     = []sdl.Scancode{sdl.SCANCODE_DOWN}
	keyIsoDown       = []sdl.Scancode{sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS}
	keyIsoUp         = []sdl.Scancode{sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS}
	keySamplingDown  = []sdl.Scancode{sdl.SCANCODE_D}
	keySamplingUp    = []sdl.Scancode{sdl.SCANCODE_S}
	keyReload        = []sdl.Scancode{sdl.SCANCODE_R}
	keyToggleOverlay = []sdl.Scancode{sdl.SCANCODE_T}
	keyToggleBounds  = []sdl.Scancode{sdl.SCANCODE_B}
	keyCapture       = []sdl.Scancode{sdl.SCANCODE_P}
)

// controls reads the held keys into viewer commands.
func controls(in *input.Input) app.Controls {
	return app.Controls{
		Exit:          in.AnyKeyHeld(keyExit...),
		LightLeft:     in.AnyKeyHeld(keyLightLeft...),
		LightRight:    in.AnyKeyHeld(keyLightRight...),
		LightUp:       in.AnyKeyHeld(keyLightUp...),
		LightDown:     in.AnyKeyHeld(keyLightDown...),
		IsoUp:         in.AnyKeyHeld(keyIsoUp...),
		IsoDown:       in.AnyKeyHeld(keyIsoDown...),
		SamplingUp:    in.AnyKeyHeld(keySamplingUp...),
		SamplingDown:  in.AnyKeyHeld(keySamplingDown...),
		Reload:        in.AnyKeyHeld(keyReload...),
		ToggleOverlay: in.AnyKeyHeld(keyToggleOverlay...),
		ToggleBounds:  in.AnyKeyHeld(keyToggleBounds...),
		Capture:       in.AnyKeyHeld(keyCapture...),
	}
}

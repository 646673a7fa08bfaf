// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window" toml:"window"`
	Volume    VolumeConfig    `yaml:"volume" toml:"volume"`
	Shaders   ShaderConfig    `yaml:"shaders" toml:"shaders"`
	Render    RenderConfig    `yaml:"render" toml:"render"`
	Turntable TurntableConfig `yaml:"turntable" toml:"turntable"`
	Capture   CaptureConfig   `yaml:"capture" toml:"capture"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title" toml:"title"`
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Fullscreen bool   `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool   `yaml:"vsync" toml:"vsync"`
}

// VolumeConfig holds the dataset location.
type VolumeConfig struct {
	Path string `yaml:"path" toml:"path"` // Raw file, e.g. data/head_w256_h256_d225_c1_b8.raw
}

// ShaderConfig holds ray-casting shader source paths.
type ShaderConfig struct {
	Dirs     []string `yaml:"dirs" toml:"dirs"` // Searched in order before the built-in sources
	Vertex   string   `yaml:"vertex" toml:"vertex"`
	Fragment string   `yaml:"fragment" toml:"fragment"`
	Watch    bool     `yaml:"watch" toml:"watch"` // Reload automatically when a source changes
}

// RenderConfig holds initial ray-casting parameters.
type RenderConfig struct {
	SamplingDistance float32    `yaml:"sampling_distance" toml:"sampling_distance"`
	IsoValue         float32    `yaml:"iso_value" toml:"iso_value"`
	LightPosition    [3]float32 `yaml:"light_position" toml:"light_position"`
	LightColor       [3]float32 `yaml:"light_color" toml:"light_color"`
	Background       [3]float32 `yaml:"background" toml:"background"`
	FieldOfView      float32    `yaml:"field_of_view" toml:"field_of_view"` // Vertical, degrees
	ShowBounds       bool       `yaml:"show_bounds" toml:"show_bounds"`
}

// TurntableConfig holds camera manipulator settings.
type TurntableConfig struct {
	OrbitSensitivity float32 `yaml:"orbit_sensitivity" toml:"orbit_sensitivity"`
	PanSensitivity   float32 `yaml:"pan_sensitivity" toml:"pan_sensitivity"`
	ZoomSensitivity  float32 `yaml:"zoom_sensitivity" toml:"zoom_sensitivity"`
	MinDistance      float32 `yaml:"min_distance" toml:"min_distance"`
	MaxDistance      float32 `yaml:"max_distance" toml:"max_distance"`
}

// CaptureConfig holds screenshot settings.
type CaptureConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Prefix string `yaml:"prefix" toml:"prefix"`
	Format string `yaml:"format" toml:"format"` // "png" or "bmp"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Ranges enforced on render parameters, both from files and from key input.
const (
	MinIsoValue         = 0.0
	MaxIsoValue         = 1.0
	MinSamplingDistance = 0.0001
	MaxSamplingDistance = 0.2
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "voxray",
			Width:      600,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Volume: VolumeConfig{
			Path: "data/head_w256_h256_d225_c1_b8.raw",
		},
		Shaders: ShaderConfig{
			Dirs:     []string{"shaders"},
			Vertex:   "volume.vert",
			Fragment: "volume.frag",
			Watch:    false,
		},
		Render: RenderConfig{
			SamplingDistance: 0.001,
			IsoValue:         0.2,
			LightPosition:    [3]float32{1, 1, 1},
			LightColor:       [3]float32{1, 1, 1},
			Background:       [3]float32{0, 0, 0},
			FieldOfView:      45,
			ShowBounds:       false,
		},
		Turntable: TurntableConfig{
			OrbitSensitivity: 0.01,
			PanSensitivity:   0.002,
			ZoomSensitivity:  0.005,
			MinDistance:      0.05,
			MaxDistance:      20,
		},
		Capture: CaptureConfig{
			Dir:    "screenshots",
			Prefix: "voxray",
			Format: "png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Normalize clamps render parameters into their allowed ranges and
// falls back to PNG for unknown capture formats.
func (c *Config) Normalize() {
	c.Render.IsoValue = clamp(c.Render.IsoValue, MinIsoValue, MaxIsoValue)
	c.Render.SamplingDistance = clamp(c.Render.SamplingDistance, MinSamplingDistance, MaxSamplingDistance)
	if c.Render.FieldOfView <= 0 || c.Render.FieldOfView >= 180 {
		c.Render.FieldOfView = Default().Render.FieldOfView
	}
	if c.Capture.Format != "bmp" {
		c.Capture.Format = "png"
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

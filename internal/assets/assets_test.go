package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestBuiltinShaders(t *testing.T) {
	m := NewManager()

	for _, name := range []string{"volume.vert", "volume.frag", "overlay.vert", "overlay.frag", "line.vert", "line.frag"} {
		src, err := m.LoadString(name)
		if err != nil {
			t.Fatalf("loading %s: %v", name, err)
		}
		if !strings.HasPrefix(src, "#version 410 core") {
			t.Errorf("%s: missing version line", name)
		}
	}
}

func TestVolumeShaderUniforms(t *testing.T) {
	m := NewManager()
	frag, err := m.LoadString("volume.frag")
	if err != nil {
		t.Fatal(err)
	}
	vert, err := m.LoadString("volume.vert")
	if err != nil {
		t.Fatal(err)
	}

	src := vert + frag
	for _, u := range []string{
		"volume_texture", "transfer_texture", "camera_location", "sampling_distance",
		"iso_value", "max_bounds", "volume_dimensions", "light_position", "light_color",
		"Projection", "Modelview",
	} {
		if !strings.Contains(src, u) {
			t.Errorf("volume shaders do not declare %s", u)
		}
	}
}

func TestDiskOverridesBuiltin(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	if err := os.WriteFile(filepath.Join(low, "volume.frag"), []byte("low"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(high, "volume.frag"), []byte("high"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	m.AddDir(low)
	m.AddDir(high)

	src, err := m.LoadString("volume.frag")
	if err != nil {
		t.Fatal(err)
	}
	if src != "high" {
		t.Errorf("expected last added directory to win, got %q", src)
	}

	// Files missing on disk fall back to the built-in copy.
	vert, err := m.LoadString("volume.vert")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(vert, "ray_entry_position") {
		t.Error("expected built-in vertex shader")
	}
}

func TestRefreshRereadsDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "volume.frag")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatal(err)
	}

	m := NewManager()
	m.AddDir(dir)
	if src, _ := m.LoadString("volume.frag"); src != "v1" {
		t.Fatalf("expected v1, got %q", src)
	}

	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	if src, _ := m.LoadString("volume.frag"); src != "v1" {
		t.Errorf("expected cached v1, got %q", src)
	}

	m.Refresh()
	if src, _ := m.LoadString("volume.frag"); src != "v2" {
		t.Errorf("expected v2 after refresh, got %q", src)
	}
}

func TestLoadMissing(t *testing.T) {
	m := NewManager()
	m.AddDir(t.TempDir())

	_, err := m.Load("missing.frag")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheStats(t *testing.T) {
	c := NewCache()
	c.Set("a", []byte("1"))

	if _, ok := c.Get("a"); !ok {
		t.Error("expected hit")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("expected miss")
	}
	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d and %d", hits, misses)
	}

	c.Clear()
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Error("Clear did not reset stats")
	}
}

package volume

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Probe reads voxel grid metadata for a path without touching the payload.
// A probe that does not recognize the path returns ErrNoMetadata.
type Probe interface {
	Probe(path string) (Metadata, error)
}

// FilenameProbe decodes metadata embedded in the file name, e.g.
// "head_w256_h256_d225_c1_b8.raw". Tokens are matched case-insensitively
// and may appear in any order after the stem.
type FilenameProbe struct{}

// Probe implements Probe.
func (FilenameProbe) Probe(path string) (Metadata, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var meta Metadata
	seen := make(map[byte]bool, 5)
	for _, tok := range strings.Split(strings.ToLower(base), "_") {
		if len(tok) < 2 {
			continue
		}
		key := tok[0]
		switch key {
		case 'w', 'h', 'd', 'c', 'b':
		default:
			continue
		}
		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			// Part of the stem, e.g. "bonsai".
			continue
		}
		if seen[key] {
			return Metadata{}, fmt.Errorf("%w: duplicate %q token in %s", ErrBadMetadata, key, base)
		}
		seen[key] = true
		switch key {
		case 'w':
			meta.Dimensions[0] = n
		case 'h':
			meta.Dimensions[1] = n
		case 'd':
			meta.Dimensions[2] = n
		case 'c':
			meta.Channels = n
		case 'b':
			meta.BitsPerChannel = n
		}
	}

	if len(seen) == 0 {
		return Metadata{}, ErrNoMetadata
	}
	for _, key := range []byte("whdcb") {
		if !seen[key] {
			return Metadata{}, fmt.Errorf("%w: missing %q token in %s", ErrBadMetadata, key, base)
		}
	}
	return meta, nil
}

// FormatFilename builds a file name that FilenameProbe decodes back to meta.
func FormatFilename(stem string, meta Metadata) string {
	return stem + "_" + meta.String() + ".raw"
}

// sidecar is the YAML layout of a "<volume>.yaml" metadata file.
type sidecar struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	Depth    int `yaml:"depth"`
	Channels int `yaml:"channels"`
	Bits     int `yaml:"bits"`
}

// SidecarProbe reads metadata from a YAML file next to the volume
// ("<path>.yaml"). It lets volumes with arbitrary names be loaded.
type SidecarProbe struct{}

// SidecarPath returns the metadata file path for a volume path.
func SidecarPath(path string) string {
	return path + ".yaml"
}

// Probe implements Probe.
func (SidecarProbe) Probe(path string) (Metadata, error) {
	data, err := os.ReadFile(SidecarPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Metadata{}, ErrNoMetadata
		}
		return Metadata{}, err
	}

	var sc sidecar
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrBadMetadata, err)
	}
	return Metadata{
		Dimensions:     [3]int{sc.Width, sc.Height, sc.Depth},
		Channels:       sc.Channels,
		BitsPerChannel: sc.Bits,
	}, nil
}

// WriteSidecar writes meta as the sidecar file for path.
func WriteSidecar(path string, meta Metadata) error {
	data, err := yaml.Marshal(sidecar{
		Width:    meta.Dimensions[0],
		Height:   meta.Dimensions[1],
		Depth:    meta.Dimensions[2],
		Channels: meta.Channels,
		Bits:     meta.BitsPerChannel,
	})
	if err != nil {
		return err
	}
	return os.WriteFile(SidecarPath(path), data, 0644)
}

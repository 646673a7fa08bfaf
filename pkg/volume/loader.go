package volume

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Loader probes metadata and reads raw voxel payloads. It holds no state
// between calls; every query goes back to the file system.
type Loader struct {
	Probes []Probe
}

// NewLoader returns a loader that prefers a YAML sidecar and falls back to
// metadata encoded in the file name.
func NewLoader() *Loader {
	return &Loader{
		Probes: []Probe{SidecarProbe{}, FilenameProbe{}},
	}
}

// Metadata returns the validated layout of the volume at path. It checks that
// the file exists but never reads its payload.
func (l *Loader) Metadata(path string) (Metadata, error) {
	if _, err := os.Stat(path); err != nil {
		return Metadata{}, &LoadError{Op: "probe", Path: path, Err: statError(err)}
	}

	for _, p := range l.Probes {
		meta, err := p.Probe(path)
		if errors.Is(err, ErrNoMetadata) {
			continue
		}
		if err != nil {
			return Metadata{}, &LoadError{Op: "probe", Path: path, Err: err}
		}
		if err := meta.Validate(); err != nil {
			return Metadata{}, &LoadError{Op: "probe", Path: path, Err: err}
		}
		return meta, nil
	}
	return Metadata{}, &LoadError{Op: "probe", Path: path, Err: ErrNoMetadata}
}

// Dimensions returns the voxel counts along x, y and z.
func (l *Loader) Dimensions(path string) ([3]int, error) {
	meta, err := l.Metadata(path)
	return meta.Dimensions, err
}

// Channels returns the number of samples per voxel.
func (l *Loader) Channels(path string) (int, error) {
	meta, err := l.Metadata(path)
	return meta.Channels, err
}

// BitsPerChannel returns the sample depth.
func (l *Loader) BitsPerChannel(path string) (int, error) {
	meta, err := l.Metadata(path)
	return meta.BitsPerChannel, err
}

// Load probes the metadata and reads the full payload. The file size must
// match the metadata exactly.
func (l *Loader) Load(path string) (*Grid, error) {
	meta, err := l.Metadata(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Op: "load", Path: path, Err: statError(err)}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &LoadError{Op: "load", Path: path, Err: err}
	}
	want := meta.ByteSize()
	if info.Size() != want {
		return nil, &LoadError{Op: "load", Path: path,
			Err: fmt.Errorf("%w: %s needs %d bytes, file has %d", ErrSizeMismatch, meta, want, info.Size())}
	}

	data := make([]byte, want)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, &LoadError{Op: "load", Path: path, Err: fmt.Errorf("%w: %v", ErrSizeMismatch, err)}
	}

	return &Grid{Metadata: meta, Data: data}, nil
}

// statError maps a missing file onto ErrNotFound.
func statError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return err
}

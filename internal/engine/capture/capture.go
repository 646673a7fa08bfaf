// Package capture writes framebuffer snapshots to disk as PNG or BMP.
package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/bmp"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatBMP = "bmp"
)

// Capturer names and encodes screenshots.
type Capturer struct {
	dir    string
	prefix string
	format string

	now func() time.Time
	seq int
}

// New creates a capturer writing <dir>/<prefix>_<timestamp>.<format>.
// Unknown formats fall back to PNG.
func New(dir, prefix, format string) *Capturer {
	if format != FormatBMP {
		format = FormatPNG
	}
	return &Capturer{dir: dir, prefix: prefix, format: format, now: time.Now}
}

// Filename returns the path the next capture will use. Captures within the
// same second get a counter suffix.
func (c *Capturer) Filename() string {
	name := fmt.Sprintf("%s_%s", c.prefix, c.now().Format("2006-01-02_15-04-05"))
	if c.seq > 0 {
		name = fmt.Sprintf("%s_%d", name, c.seq)
	}
	name += "." + c.format
	if c.dir != "" {
		name = filepath.Join(c.dir, name)
	}
	return name
}

// FromPixels converts bottom-up RGBA rows, as glReadPixels returns them,
// into a top-down image.
func FromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// Save writes img to the next file name and returns that name.
func (c *Capturer) Save(img image.Image) (string, error) {
	if c.dir != "" {
		if err := os.MkdirAll(c.dir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	name := c.Filename()
	for {
		if _, err := os.Stat(name); os.IsNotExist(err) {
			break
		}
		c.seq++
		name = c.Filename()
	}
	c.seq = 0

	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := c.encode(f, img); err != nil {
		return "", fmt.Errorf("encoding %s: %w", c.format, err)
	}
	return name, nil
}

// SavePixels is FromPixels followed by Save.
func (c *Capturer) SavePixels(pixels []byte, width, height int) (string, error) {
	img, err := FromPixels(pixels, width, height)
	if err != nil {
		return "", err
	}
	return c.Save(img)
}

func (c *Capturer) encode(w io.Writer, img image.Image) error {
	if c.format == FormatBMP {
		return bmp.Encode(w, img)
	}
	return png.Encode(w, img)
}

package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// Capture writes frames to PNG files. Numbered captures are meant for
// frame sequences, the others are named by time.
type Capture struct {
	outputDir string
	prefix    string
	next      int
}

// NewCapture creates a capture writing prefix_*.png files into outputDir.
func NewCapture(outputDir, prefix string) *Capture {
	return &Capture{outputDir: outputDir, prefix: prefix}
}

// FlipPixels wraps bottom-up RGBA rows, as read back from OpenGL, in a
// top-down image.
func FlipPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], pixels[src:src+rowSize])
	}
	return img, nil
}

// SaveFrame writes img as the next numbered frame and returns its path.
func (c *Capture) SaveFrame(img image.Image) (string, error) {
	name := fmt.Sprintf("%s_%04d.png", c.prefix, c.next)
	path, err := c.save(name, img)
	if err == nil {
		c.next++
	}
	return path, err
}

// Screenshot writes img named by the current time.
func (c *Capture) Screenshot(img image.Image) (string, error) {
	name := fmt.Sprintf("%s_%s.png", c.prefix, time.Now().Format("2006-01-02_15-04-05.000"))
	return c.save(name, img)
}

// Frames returns how many numbered frames were written.
func (c *Capture) Frames() int { return c.next }

func (c *Capture) save(name string, img image.Image) (string, error) {
	if c.outputDir != "" {
		if err := os.MkdirAll(c.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
		name = filepath.Join(c.outputDir, name)
	}

	file, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, file.Close()
}

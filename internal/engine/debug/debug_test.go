package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/polyfx/pkg/math"
)

func TestOutline(t *testing.T) {
	got := Outline(math.RectXYWH(10, 20, 30, 40))
	want := []math.Vec2{{X: 10.5, Y: 20.5}, {X: 39.5, Y: 20.5}, {X: 39.5, Y: 59.5}, {X: 10.5, Y: 59.5}}
	if len(got) != len(want) {
		t.Fatalf("got %d points, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
	if Outline(math.Rect{}) != nil {
		t.Error("empty rect should have no outline")
	}
}

func TestDamageTrail(t *testing.T) {
	tr := NewDamageTrail(2)
	a := math.RectXYWH(0, 0, 10, 10)
	b := math.RectXYWH(5, 5, 10, 10)
	c := math.RectXYWH(50, 50, 1, 1)

	tr.Push(a)
	if got := tr.Rects(); len(got) != 1 || got[0] != a {
		t.Errorf("Rects() = %v, want [%v]", got, a)
	}
	tr.Push(b)
	tr.Push(c)
	got := tr.Rects()
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Errorf("Rects() = %v, want [%v %v]", got, b, c)
	}
	if want := (math.Rect{X1: 0, Y1: 0, X2: 51, Y2: 51}); tr.Total() != want {
		t.Errorf("Total() = %v, want %v", tr.Total(), want)
	}

	tr.Reset()
	if len(tr.Rects()) != 0 || !tr.Total().Empty() {
		t.Error("Reset kept state")
	}
}

func TestFlipPixels(t *testing.T) {
	// two rows: bottom red, top blue as OpenGL returns them
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}

	if _, err := FlipPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestSaveFrameNumbers(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	c := NewCapture(dir, "fold")
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))

	for i := 0; i < 3; i++ {
		if _, err := c.SaveFrame(img); err != nil {
			t.Fatalf("SaveFrame: %v", err)
		}
	}
	if c.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", c.Frames())
	}

	f, err := os.Open(filepath.Join(dir, "fold_0002.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding saved frame: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
}

func TestScreenshot(t *testing.T) {
	c := NewCapture(t.TempDir(), "shot")
	path, err := c.Screenshot(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("screenshot not written: %v", err)
	}
	if c.Frames() != 0 {
		t.Error("screenshots should not count as frames")
	}
}

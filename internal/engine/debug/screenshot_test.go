package debug

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCaptureFromPixelsFlipsRows(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "test")

	// 2x2 image, bottom-up as OpenGL returns it: the first row is the
	// bottom of the picture.
	pixels := []byte{
		255, 0, 0, 255, 0, 255, 0, 255, // bottom row: red, green
		0, 0, 255, 255, 255, 255, 255, 255, // top row: blue, white
	}
	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding capture: %v", err)
	}

	// Top-left of the saved image is the top row's first pixel: blue.
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 255 {
		t.Errorf("top-left pixel = (%d, %d, %d), want (0, 0, 255)", r>>8, g>>8, b>>8)
	}
}

func TestCaptureFromPixelsSizeMismatch(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "test")

	if _, err := sc.CaptureFromPixels(make([]byte, 7), 2, 2); err == nil {
		t.Error("CaptureFromPixels() accepted short pixel data")
	}
}

func TestGenerateFilename(t *testing.T) {
	sc := NewScreenshotCapture("shots", "viewer")

	name := sc.GenerateFilename()
	if filepath.Dir(name) != "shots" {
		t.Errorf("filename %q not under output dir", name)
	}
	base := filepath.Base(name)
	if !strings.HasPrefix(base, "viewer_") || !strings.HasSuffix(base, ".png") {
		t.Errorf("filename %q missing prefix or extension", base)
	}
}

func TestDownscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))

	out := Downscale(src, 200)
	b := out.Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Errorf("Downscale bounds = %dx%d, want 200x50", b.Dx(), b.Dy())
	}

	// Already within the bound: returned unchanged.
	if got := Downscale(src, 400); got != src {
		t.Error("Downscale resized an image already within the bound")
	}
}

package overlay

import (
	"image"
	"image/color"
	"testing"
)

func TestMeasureBitmapFace(t *testing.T) {
	r := NewTextRenderer()
	w, h := r.Measure([]string{"abc", "hello"})
	if w != 5*7 || h != 2*13 {
		t.Fatalf("got %dx%d", w, h)
	}
}

func TestRenderLinesStaysInsideBox(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 32))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	r := NewTextRenderer()
	r.Backdrop = nil
	box := r.RenderLines(img, []string{"HI"}, 2, 2)
	if box.Empty() {
		t.Fatal("empty box")
	}

	lit := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			c := img.NRGBAAt(x, y)
			if c.R == 0 {
				continue
			}
			if !(image.Point{x, y}).In(box) {
				t.Fatalf("pixel %d,%d outside %v was drawn", x, y, box)
			}
			lit++
		}
	}
	if lit == 0 {
		t.Fatal("no text drawn")
	}
}

func TestBackdropIsClipped(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	r := NewTextRenderer()
	r.Backdrop = color.NRGBA{255, 0, 0, 255}
	box := r.RenderLines(img, []string{"a long line that overflows"}, 0, 0)
	if box != img.Bounds() {
		t.Fatalf("got %v", box)
	}
	if got := img.NRGBAAt(9, 9); got.R != 255 || got.A != 255 {
		t.Fatalf("corner pixel: %v", got)
	}
	if box := r.RenderLines(img, nil, 0, 0); !box.Empty() {
		t.Fatalf("no lines should touch nothing, got %v", box)
	}
}

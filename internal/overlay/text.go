// Package overlay draws text labels and stat lines onto rendered frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRenderer draws lines of text with a single face.
type TextRenderer struct {
	face     font.Face
	Color    color.Color
	Backdrop color.Color // nil disables the box behind the text
	Padding  int
}

// NewTextRenderer uses the built-in 7x13 bitmap face.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{
		face:     basicfont.Face7x13,
		Color:    color.White,
		Backdrop: color.NRGBA{0, 0, 0, 160},
		Padding:  3,
	}
}

// LoadTextRenderer loads a TrueType or OpenType font at the given pixel size.
func LoadTextRenderer(fontPath string, fontPixels int) (*TextRenderer, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(fontPixels), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	r := NewTextRenderer()
	r.face = face
	return r, nil
}

// LineHeight is the distance between baselines in pixels.
func (r *TextRenderer) LineHeight() int {
	return r.face.Metrics().Height.Ceil()
}

// Measure returns the pixel size a block of lines occupies, padding excluded.
func (r *TextRenderer) Measure(lines []string) (int, int) {
	w := 0
	for _, line := range lines {
		w = max(w, font.MeasureString(r.face, line).Ceil())
	}
	return w, len(lines) * r.LineHeight()
}

// RenderLines draws lines with their top-left corner at (x, y) and returns
// the rectangle that was touched.
func (r *TextRenderer) RenderLines(dst draw.Image, lines []string, x, y int) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}
	w, h := r.Measure(lines)
	box := image.Rect(x, y, x+w+2*r.Padding, y+h+2*r.Padding).Intersect(dst.Bounds())
	if r.Backdrop != nil {
		draw.Draw(dst, box, image.NewUniform(r.Backdrop), image.Point{}, draw.Over)
	}

	d := &font.Drawer{Dst: dst, Src: image.NewUniform(r.Color), Face: r.face}
	ascent := r.face.Metrics().Ascent.Ceil()
	for i, line := range lines {
		if line == "" {
			continue
		}
		d.Dot = fixed.P(x+r.Padding, y+r.Padding+ascent+i*r.LineHeight())
		d.DrawString(line)
	}
	return box
}

// Close releases the face.
func (r *TextRenderer) Close() error {
	return r.face.Close()
}

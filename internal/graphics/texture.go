package graphics

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"math"
	"os"
	"strings"

	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Filter selects how the atlas is sampled.
type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) String() string {
	if f == FilterLinear {
		return "linear"
	}
	return "nearest"
}

// ParseFilter accepts "nearest" or "linear".
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return FilterNearest, nil
	case "linear", "bilinear":
		return FilterLinear, nil
	}
	return FilterNearest, fmt.Errorf("unknown filter %q", s)
}

// Atlas is a square 16x16-tile color texture with its sampler state.
// It is read-only once built and safe for concurrent sampling.
type Atlas struct {
	Image  *image.RGBA
	Filter Filter
	size   int
}

// NewAtlas converts img to RGBA. Atlases that are not square with a
// power-of-two side are rescaled with nearest-neighbour so tile edges stay
// on texel boundaries.
func NewAtlas(img image.Image, filter Filter) *Atlas {
	b := img.Bounds()
	side := nextPow2(max(b.Dx(), b.Dy()))
	side = max(side, vertex.AtlasTiles)

	rgba := image.NewRGBA(image.Rect(0, 0, side, side))
	if b.Dx() == side && b.Dy() == side {
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	} else {
		log.Printf("atlas %dx%d rescaled to %dx%d", b.Dx(), b.Dy(), side, side)
		draw.NearestNeighbor.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
	}
	return &Atlas{Image: rgba, Filter: filter, size: side}
}

// LoadAtlas decodes a PNG or JPEG atlas from disk.
func LoadAtlas(path string, filter Filter) (*Atlas, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open atlas %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode atlas %s: %w", path, err)
	}
	a := NewAtlas(img, filter)
	log.Printf("loaded atlas %s (%dx%d, %s)", path, a.size, a.size, filter)
	return a, nil
}

// Size returns the atlas side in texels.
func (a *Atlas) Size() int { return a.size }

// Sample returns the RGB color at uv with clamp-to-edge addressing.
func (a *Atlas) Sample(uv mgl32.Vec2) mgl32.Vec3 {
	if a.Filter == FilterLinear {
		return a.bilinear(uv)
	}
	x := clampTexel(int(math.Floor(float64(uv[0]*float32(a.size)))), a.size)
	y := clampTexel(int(math.Floor(float64(uv[1]*float32(a.size)))), a.size)
	return a.texel(x, y)
}

func (a *Atlas) bilinear(uv mgl32.Vec2) mgl32.Vec3 {
	fx := float64(uv[0]*float32(a.size)) - 0.5
	fy := float64(uv[1]*float32(a.size)) - 0.5
	x0 := math.Floor(fx)
	y0 := math.Floor(fy)
	tx := float32(fx - x0)
	ty := float32(fy - y0)

	ix0 := clampTexel(int(x0), a.size)
	iy0 := clampTexel(int(y0), a.size)
	ix1 := clampTexel(int(x0)+1, a.size)
	iy1 := clampTexel(int(y0)+1, a.size)

	top := lerp(a.texel(ix0, iy0), a.texel(ix1, iy0), tx)
	bottom := lerp(a.texel(ix0, iy1), a.texel(ix1, iy1), tx)
	return lerp(top, bottom, ty)
}

func (a *Atlas) texel(x, y int) mgl32.Vec3 {
	i := a.Image.PixOffset(x, y)
	p := a.Image.Pix[i : i+3 : i+3]
	return mgl32.Vec3{float32(p[0]) / 255, float32(p[1]) / 255, float32(p[2]) / 255}
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

func clampTexel(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}

func nextPow2(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// tilePalette gives the procedural atlas its block colors; the first eight
// entries follow the block tile table (grass side, grass top, dirt, stone,
// log top, log side, plank, leaves).
var tilePalette = []color.RGBA{
	{106, 150, 62, 255},
	{92, 168, 64, 255},
	{134, 96, 67, 255},
	{125, 125, 125, 255},
	{160, 130, 80, 255},
	{102, 81, 51, 255},
	{180, 144, 90, 255},
	{60, 120, 40, 255},
}

// DefaultAtlas generates a procedural atlas with tileSize texels per tile.
// Tiles beyond the palette get a hue derived from their index.
func DefaultAtlas(tileSize int, filter Filter) *Atlas {
	side := tileSize * vertex.AtlasTiles
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for tile := 0; tile < vertex.AtlasTiles*vertex.AtlasTiles; tile++ {
		base := tileColor(tile)
		ox := (tile % vertex.AtlasTiles) * tileSize
		oy := (tile / vertex.AtlasTiles) * tileSize
		for y := 0; y < tileSize; y++ {
			for x := 0; x < tileSize; x++ {
				c := base
				// grass side: green strip over dirt
				if tile == 0 && y >= tileSize/4 {
					c = tilePalette[2]
				}
				// cheap texture so faces are not flat
				if (x^y)&3 == 0 {
					c = shade(c, 0.85)
				}
				img.SetRGBA(ox+x, oy+y, c)
			}
		}
	}
	return &Atlas{Image: img, Filter: filter, size: side}
}

func tileColor(tile int) color.RGBA {
	if tile < len(tilePalette) {
		return tilePalette[tile]
	}
	h := float64(tile*47%360) / 60
	x := uint8(255 * (1 - math.Abs(math.Mod(h, 2)-1)))
	switch int(h) {
	case 0:
		return color.RGBA{255, x, 0, 255}
	case 1:
		return color.RGBA{x, 255, 0, 255}
	case 2:
		return color.RGBA{0, 255, x, 255}
	case 3:
		return color.RGBA{0, x, 255, 255}
	case 4:
		return color.RGBA{x, 0, 255, 255}
	default:
		return color.RGBA{255, 0, x, 255}
	}
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}

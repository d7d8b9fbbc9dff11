package scene

import (
	"math"

	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// Generator builds a heightmap terrain from value noise.
type Generator struct {
	seed        int64
	scale       float64
	baseHeight  int
	amp         float64
	octaves     int
	persistence float64
	lacunarity  float64
	// Depth is how many layers are filled below the surface.
	Depth int
	// TreeChance is the probability in [0,1] of a tree on a grass column.
	TreeChance float64
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		seed:        seed,
		scale:       1.0 / 24.0,
		baseHeight:  2,
		amp:         12,
		octaves:     3,
		persistence: 0.5,
		lacunarity:  2.0,
		Depth:       4,
		TreeChance:  0.02,
	}
}

// HeightAt returns the surface block Y at world X, Z.
func (g *Generator) HeightAt(x, z int32) int32 {
	n := octaveNoise2D(float64(x)*g.scale, float64(z)*g.scale, g.seed, g.octaves, g.persistence, g.lacunarity)
	return int32(math.Floor(float64(g.baseHeight) + n*g.amp))
}

// Populate fills the columns x in [x0, x1), z in [z0, z1) Depth layers deep:
// grass over up to three layers of dirt, then stone. Trees are sprinkled
// on top.
func (g *Generator) Populate(v *Voxels, x0, z0, x1, z1 int32) {
	for x := x0; x < x1; x++ {
		for z := z0; z < z1; z++ {
			top := g.HeightAt(x, z)
			for y := top - int32(g.Depth) + 1; y <= top; y++ {
				b := BlockTypeStone
				switch {
				case y == top:
					b = BlockTypeGrass
				case top-y <= 3:
					b = BlockTypeDirt
				}
				v.Set(vertex.Voxel{x, y, z}, b)
			}
			// keep trees off the border so their leaves stay in bounds
			inner := x > x0+1 && x < x1-2 && z > z0+1 && z < z1-2
			if inner && lattice(int64(x), int64(z), g.seed^0x7EE) < g.TreeChance {
				g.plantTree(v, vertex.Voxel{x, top + 1, z})
			}
		}
	}
}

func (g *Generator) plantTree(v *Voxels, base vertex.Voxel) {
	const trunk = 4
	for dy := int32(-1); dy <= 1; dy++ {
		r := int32(2)
		if dy == 1 {
			r = 1
		}
		for dx := -r; dx <= r; dx++ {
			for dz := -r; dz <= r; dz++ {
				v.Set(vertex.Voxel{base[0] + dx, base[1] + trunk + dy, base[2] + dz}, BlockTypeLeaves)
			}
		}
	}
	for y := int32(0); y < trunk+1; y++ {
		v.Set(vertex.Voxel{base[0], base[1] + y, base[2]}, BlockTypeLog)
	}
}

// View is a camera placement for the demo scene.
type View struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

// demoDistance keeps the demo target within picking reach.
const demoDistance = 8

// Demo returns a size x size terrain centred on the origin and a view of
// the top face of the centre column.
func Demo(seed int64, size int32) (*Voxels, View) {
	v := NewVoxels()
	g := NewGenerator(seed)
	half := size / 2
	g.Populate(v, -half, -half, size-half, size-half)
	target := mgl32.Vec3{0.5, float32(g.HeightAt(0, 0) + 1), 0.5}
	dir := mgl32.Vec3{1, 0.75, 1}.Normalize()
	return v, View{Eye: target.Add(dir.Mul(demoDistance)), Target: target}
}

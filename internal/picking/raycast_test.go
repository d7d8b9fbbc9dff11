package picking

import (
	"testing"

	"voxshade/internal/vertex"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl32"
)

type cells map[vertex.Voxel]bool

func (c cells) Solid(x, y, z int32) bool { return c[vertex.Voxel{x, y, z}] }

func TestRaycast(t *testing.T) {
	world := cells{
		{0, 0, 0}: true,
		{1, 0, 0}: true,
		{0, 1, 0}: true,
		{0, 0, 1}: true,
	}

	tests := []struct {
		name        string
		origin, dir mgl32.Vec3
		maxDist     float32
		hit         bool
		voxel       vertex.Voxel
		normal      vertex.Voxel
		distance    float32
	}{
		{
			name:     "straight down onto the stack",
			origin:   mgl32.Vec3{0.5, 3.5, 0.5},
			dir:      mgl32.Vec3{0, -1, 0},
			maxDist:  5,
			hit:      true,
			voxel:    vertex.Voxel{0, 1, 0},
			normal:   vertex.Voxel{0, 1, 0},
			distance: 1.5,
		},
		{
			name:     "side of a block",
			origin:   mgl32.Vec3{-1.5, 0.5, 0.5},
			dir:      mgl32.Vec3{1, 0, 0},
			maxDist:  5,
			hit:      true,
			voxel:    vertex.Voxel{0, 0, 0},
			normal:   vertex.Voxel{-1, 0, 0},
			distance: 1.5,
		},
		{
			name:    "empty space",
			origin:  mgl32.Vec3{5, 5, 5},
			dir:     mgl32.Vec3{1, 0, 0},
			maxDist: 10,
		},
		{
			name:    "out of reach",
			origin:  mgl32.Vec3{-8.5, 0.5, 0.5},
			dir:     mgl32.Vec3{1, 0, 0},
			maxDist: 2,
		},
		{
			name:     "origin inside a solid cell",
			origin:   mgl32.Vec3{0.25, 0.5, 0.5},
			dir:      mgl32.Vec3{-1, 0, -1},
			maxDist:  10,
			hit:      true,
			voxel:    vertex.Voxel{0, 0, 0},
			normal:   vertex.Voxel{},
			distance: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := Raycast(tc.origin, tc.dir, tc.maxDist, world)
			if r.Hit != tc.hit {
				t.Fatalf("hit: got %v, want %v\n%s", r.Hit, tc.hit, spew.Sdump(r))
			}
			if !tc.hit {
				return
			}
			if r.Voxel != tc.voxel || r.Normal != tc.normal {
				t.Fatalf("got voxel %v normal %v, want %v %v", r.Voxel, r.Normal, tc.voxel, tc.normal)
			}
			if mgl32.Abs(r.Distance-tc.distance) > 1e-4 {
				t.Fatalf("distance: got %f, want %f", r.Distance, tc.distance)
			}
		})
	}
}

func TestRaycastDiagonalFindsFarBlock(t *testing.T) {
	world := cells{{-3, 0, -3}: true}
	r := Raycast(mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{-1, 0, -1}, 10, world)
	if !r.Hit || r.Voxel != (vertex.Voxel{-3, 0, -3}) {
		t.Fatalf("got %s", spew.Sdump(r))
	}
	if r.Normal[1] != 0 || (r.Normal[0] != 1 && r.Normal[2] != 1) {
		t.Fatalf("entry normal should face +x or +z, got %v", r.Normal)
	}
}

func TestAdjacent(t *testing.T) {
	r := Result{Voxel: vertex.Voxel{2, 3, 4}, Normal: vertex.Voxel{0, 1, 0}, Hit: true}
	if r.Adjacent() != (vertex.Voxel{2, 4, 4}) {
		t.Fatalf("got %v", r.Adjacent())
	}
}

func TestRaycastZeroDirection(t *testing.T) {
	if r := Raycast(mgl32.Vec3{}, mgl32.Vec3{}, 10, cells{}); r.Hit {
		t.Fatal("zero direction must not hit")
	}
}

func TestLook(t *testing.T) {
	hit := Result{Voxel: vertex.Voxel{1, 2, 3}, Hit: true}
	if hit.Look() != hit.Voxel {
		t.Fatalf("got %v", hit.Look())
	}
	if miss := (Result{}); miss.Look() != NoLook {
		t.Fatalf("a miss must not look at the origin voxel, got %v", miss.Look())
	}
}

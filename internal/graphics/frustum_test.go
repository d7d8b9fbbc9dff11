package graphics

import (
	"testing"

	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	c := Camera{Position: mgl32.Vec3{0, 0, 0}}
	c.LookAt(mgl32.Vec3{0, 0, -1})
	u := NewCameraUniform(c, NewProjection(100, 100, 60, 0.1, 200))
	return NewFrustum(u.ViewProj)
}

func TestFrustumContainsChunkInFront(t *testing.T) {
	f := testFrustum()
	if !f.ContainsChunk(vertex.Voxel{-16, -16, -64}) {
		t.Fatal("chunk straight ahead should be visible")
	}
}

func TestFrustumRejectsChunkBehind(t *testing.T) {
	f := testFrustum()
	if f.ContainsChunk(vertex.Voxel{-16, -16, 32}) {
		t.Fatal("chunk behind the camera should be culled")
	}
}

func TestFrustumRejectsBeyondFar(t *testing.T) {
	f := testFrustum()
	if f.ContainsChunk(vertex.Voxel{-16, -16, -512}) {
		t.Fatal("chunk beyond the far plane should be culled")
	}
}

func TestChunkBounds(t *testing.T) {
	min, max := ChunkBounds(vertex.Voxel{32, -32, 0})
	if min != (mgl32.Vec3{32, -32, 0}) || max != (mgl32.Vec3{64, 0, 32}) {
		t.Fatalf("got %v..%v", min, max)
	}
}

// Package pipeline binds vertex decoding, transforms and shading into the
// three selectable draw pipelines.
package pipeline

import (
	"fmt"
	"strings"

	"voxshade/internal/vertex"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind identifies a vertex layout and its shading path.
type Kind int

const (
	KindPackedColor Kind = iota // {u32 packed_pos_normal, vec3 color}
	KindPackedChunk             // {u32 packed_data, ivec3 voxel_pos}
	KindRaw                     // {vec3 position, vec3 normal, vec3 color}
)

var kindNames = map[Kind]string{
	KindPackedColor: "color",
	KindPackedChunk: "chunk",
	KindRaw:         "raw",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps "color", "chunk" or "raw" to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pipeline %q", s)
}

// Varyings carries the vertex stage output to the fragment stage.
// World, Normal, Color and UV are interpolated; Voxel is taken from the
// provoking vertex.
type Varyings struct {
	Clip   mgl32.Vec4
	World  mgl32.Vec3
	Normal mgl32.Vec3
	Color  mgl32.Vec3
	UV     mgl32.Vec2
	Voxel  vertex.Voxel
}

// Shader is one bound pipeline. Vertex and Fragment are pure and may be
// called concurrently.
type Shader interface {
	Kind() Kind
	// Len returns the number of vertices in the bound buffer.
	Len() int
	Vertex(i int) Varyings
	Fragment(v Varyings) mgl32.Vec4
}

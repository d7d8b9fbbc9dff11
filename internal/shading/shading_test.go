package shading

import (
	"testing"

	"voxshade/internal/vertex"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-gl/mathgl/mgl32"
)

var base = mgl32.Vec3{0.5, 0.25, 1}

func TestFlatAtZeroDistance(t *testing.T) {
	f := Fragment{Position: mgl32.Vec3{3, 4, 5}, Normal: vertex.FaceTop.Normal(), Base: base}
	terms := Evaluate(f, f.Position, FixedAttenuation)
	if terms.Attenuation != 1 {
		t.Fatalf("attenuation at distance 0: got %f", terms.Attenuation)
	}
	got := Flat(f, f.Position, FixedAttenuation)
	want := base.Mul(AmbientFactor)
	if !near(got, want) {
		t.Fatalf("got %v, want ambient only %v\n%s", got, want, spew.Sdump(terms))
	}
}

func TestFlatFacingLightIsUnclamped(t *testing.T) {
	f := Fragment{Position: mgl32.Vec3{0, 0, 0}, Normal: vertex.FaceTop.Normal(), Base: mgl32.Vec3{1, 1, 1}}
	eye := mgl32.Vec3{0, 10, 0}
	att := FixedAttenuation.At(10)

	got := Flat(f, eye, FixedAttenuation)
	// ambient 0.4 + diffuse 1 + attenuated specular
	w := float32(AmbientFactor) + 1 + att*SpecularStrength
	if !near(got, mgl32.Vec3{w, w, w}) {
		t.Fatalf("got %v, want %v", got, w)
	}
	if got.X() <= 1 {
		t.Fatalf("expected output above 1 without clamping, got %v", got)
	}
}

func TestDiffuseDependsOnAngle(t *testing.T) {
	n := vertex.FaceTop.Normal()
	f := Fragment{Position: mgl32.Vec3{}, Normal: n, Base: mgl32.Vec3{1, 1, 1}}

	straight := Evaluate(f, mgl32.Vec3{0, 5, 0}, FixedAttenuation)
	oblique := Evaluate(f, mgl32.Vec3{5, 5, 0}, FixedAttenuation)
	behind := Evaluate(f, mgl32.Vec3{0, -5, 0}, FixedAttenuation)

	if d := straight.Diffuse.X(); mgl32.Abs(d-1) > 1e-6 {
		t.Errorf("straight diffuse: got %f", straight.Diffuse.X())
	}
	if d := oblique.Diffuse.X(); mgl32.Abs(d-0.70710677) > 1e-5 {
		t.Errorf("oblique diffuse: got %f", d)
	}
	if behind.Diffuse.X() != 0 || behind.Specular != 0 {
		t.Errorf("back-facing should get no diffuse or specular: %s", spew.Sdump(behind))
	}
}

func TestAttenuationMonotonic(t *testing.T) {
	ranged, err := RangeAttenuation(32)
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range []Attenuation{FixedAttenuation, ranged} {
		prev := a.At(0)
		if prev != 1 {
			t.Fatalf("%+v: At(0) = %f", a, prev)
		}
		for d := float32(0.25); d <= 1000; d += 0.25 {
			cur := a.At(d)
			if cur >= prev {
				t.Fatalf("%+v: not decreasing at %f (%f >= %f)", a, d, cur, prev)
			}
			prev = cur
		}
	}
}

func TestRangeAttenuation(t *testing.T) {
	a, err := RangeAttenuation(4)
	if err != nil {
		t.Fatal(err)
	}
	if a.Linear != 0.25 || a.Quadratic != 0.0625 {
		t.Fatalf("got %+v", a)
	}
	if _, err := RangeAttenuation(0); err == nil {
		t.Fatal("expected error for zero range")
	}
}

func TestChunkLitDropsSpecular(t *testing.T) {
	f := Fragment{Position: mgl32.Vec3{}, Normal: vertex.FaceTop.Normal(), Base: base}
	eye := mgl32.Vec3{0, 8, 0}
	att := FixedAttenuation.At(8)

	got := ChunkLit(f, eye, FixedAttenuation)
	want := base.Mul(AmbientFactor).Add(base.Mul(att))
	if !near(got, want) {
		t.Fatalf("chunk lit: got %v, want %v", got, want)
	}

	fixed := ChunkLitSpecular(f, eye, FixedAttenuation)
	delta := fixed.Sub(got)
	s := att * SpecularStrength
	if !near(delta, mgl32.Vec3{s, s, s}) {
		t.Fatalf("specular variant should add %f, added %v", s, delta)
	}
}

func TestFaceShade(t *testing.T) {
	c := mgl32.Vec3{1, 1, 1}
	cases := map[vertex.Face]float32{
		vertex.FaceLeft:   0.6,
		vertex.FaceRight:  0.6,
		vertex.FaceFront:  0.8,
		vertex.FaceBack:   0.8,
		vertex.FaceTop:    1,
		vertex.FaceBottom: 1,
	}
	for face, k := range cases {
		got := FaceShade(Fragment{Normal: face.Normal(), Base: c}, mgl32.Vec3{100, 0, 0}, FixedAttenuation)
		if !near(got, c.Mul(k)) {
			t.Errorf("%s: got %v, want %f", face, got, k)
		}
	}
}

func TestPolicyFunc(t *testing.T) {
	for _, p := range []Policy{PolicyFlat, PolicyChunkLit, PolicyFaceShade, PolicyChunkLitSpecular} {
		fn, err := p.Func()
		if err != nil || fn == nil {
			t.Fatalf("%s: %v", p, err)
		}
	}
	if _, err := Policy(42).Func(); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestHighlight(t *testing.T) {
	look := vertex.Voxel{4, -2, 9}
	c := mgl32.Vec3{0.5, 0.25, 0.9}

	got := Highlight(c, look, look)
	want := mgl32.Vec3{0.9, 0.45, 1}
	if !near(got, want) {
		t.Fatalf("match: got %v, want %v", got, want)
	}

	for axis := 0; axis < 3; axis++ {
		v := look
		v[axis]++
		if got := Highlight(c, v, look); got != c {
			t.Errorf("mismatch on axis %d changed color to %v", axis, got)
		}
	}
}

func TestMaterials(t *testing.T) {
	c := mgl32.Vec3{0.1, 0.2, 0.3}
	if got := (VertexColor{}).Base(c, mgl32.Vec2{0.5, 0.5}); got != c {
		t.Fatalf("vertex color: got %v", got)
	}
	m := Textured{Sampler: uvSampler{}}
	if got := m.Base(c, mgl32.Vec2{0.25, 0.75}); got != (mgl32.Vec3{0.25, 0.75, 0}) {
		t.Fatalf("textured: got %v", got)
	}
}

type uvSampler struct{}

func (uvSampler) Sample(uv mgl32.Vec2) mgl32.Vec3 { return uv.Vec3(0) }

func BenchmarkFlat(b *testing.B) {
	f := Fragment{Position: mgl32.Vec3{1, 2, 3}, Normal: vertex.FaceTop.Normal(), Base: base}
	eye := mgl32.Vec3{10, 20, 30}
	for i := 0; i < b.N; i++ {
		Flat(f, eye, FixedAttenuation)
	}
}

// near compares component-wise with an absolute tolerance. float32 sums
// taken in a different order differ in the last bits.
func near(got, want mgl32.Vec3) bool {
	for i := range got {
		if mgl32.Abs(got[i]-want[i]) > 1e-6 {
			return false
		}
	}
	return true
}

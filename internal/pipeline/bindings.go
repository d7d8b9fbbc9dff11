package pipeline

import (
	"errors"
	"fmt"
	"reflect"

	"voxshade/internal/graphics"
	"voxshade/internal/shading"

	"github.com/hashicorp/go-multierror"
)

// Bindings are the per-draw resources a pipeline reads. Model is used by
// the color and raw pipelines, Chunk and Atlas by the chunk pipeline.
type Bindings struct {
	Kind        Kind
	Camera      *graphics.CameraUniform
	Model       *graphics.ModelTransform
	Chunk       *graphics.ChunkTransform
	Atlas       shading.Sampler
	Policy      shading.Policy
	Attenuation shading.Attenuation
}

// ChunkPolicy picks the chunk shading policy from the lighting toggles.
func ChunkPolicy(blinnPhong, specularFix bool) shading.Policy {
	switch {
	case !blinnPhong:
		return shading.PolicyFaceShade
	case specularFix:
		return shading.PolicyChunkLitSpecular
	}
	return shading.PolicyChunkLit
}

// SetPushConstants decodes raw push-constant bytes into the transform the
// pipeline kind expects.
func (b *Bindings) SetPushConstants(data []byte) error {
	switch b.Kind {
	case KindPackedChunk:
		var t graphics.ChunkTransform
		if err := t.UnmarshalBinary(data); err != nil {
			return fmt.Errorf("failed to decode %s push constants: %w", b.Kind, err)
		}
		b.Chunk = &t
	case KindPackedColor, KindRaw:
		var t graphics.ModelTransform
		if err := t.UnmarshalBinary(data); err != nil {
			return fmt.Errorf("failed to decode %s push constants: %w", b.Kind, err)
		}
		b.Model = &t
	default:
		return fmt.Errorf("unknown pipeline kind %d", int(b.Kind))
	}
	return nil
}

// Validate reports every missing or inconsistent binding at once.
func (b Bindings) Validate() error {
	var result *multierror.Error
	if b.Camera == nil {
		result = multierror.Append(result, errors.New("camera uniform not bound"))
	}
	if b.Attenuation.Linear < 0 || b.Attenuation.Quadratic < 0 {
		result = multierror.Append(result, fmt.Errorf("negative attenuation %+v", b.Attenuation))
	}

	switch b.Kind {
	case KindPackedColor, KindRaw:
		if b.Model == nil {
			result = multierror.Append(result, fmt.Errorf("%s pipeline needs a model transform", b.Kind))
		}
		if b.Policy != shading.PolicyFlat {
			result = multierror.Append(result, fmt.Errorf("%s pipeline does not support policy %s", b.Kind, b.Policy))
		}
	case KindPackedChunk:
		if b.Chunk == nil {
			result = multierror.Append(result, errors.New("chunk pipeline needs a chunk transform"))
		}
		if isNilSampler(b.Atlas) {
			result = multierror.Append(result, errors.New("chunk pipeline needs an atlas"))
		}
		switch b.Policy {
		case shading.PolicyChunkLit, shading.PolicyFaceShade, shading.PolicyChunkLitSpecular:
		default:
			result = multierror.Append(result, fmt.Errorf("chunk pipeline does not support policy %s", b.Policy))
		}
	default:
		result = multierror.Append(result, fmt.Errorf("unknown pipeline kind %d", int(b.Kind)))
	}
	return result.ErrorOrNil()
}

// isNilSampler also catches a nil pointer stored in the interface, which
// would otherwise fail on the first Sample.
func isNilSampler(s shading.Sampler) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	}
	return false
}

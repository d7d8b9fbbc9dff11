package shading

import "fmt"

// Lighting constants shared by every lit policy.
const (
	AmbientFactor    = 0.4
	SpecularStrength = 0.3
	Shininess        = 16
)

// Attenuation holds the distance falloff coefficients of the camera light.
type Attenuation struct {
	Linear    float32
	Quadratic float32
}

// FixedAttenuation is the falloff used when no light range is configured.
var FixedAttenuation = Attenuation{Linear: 0.027, Quadratic: 0.0028}

// RangeAttenuation derives coefficients from a light range r: 1/r and 1/r².
func RangeAttenuation(r float32) (Attenuation, error) {
	if r <= 0 {
		return Attenuation{}, fmt.Errorf("light range must be positive, got %g", r)
	}
	return Attenuation{Linear: 1 / r, Quadratic: 1 / (r * r)}, nil
}

// At returns the attenuation factor at distance d.
func (a Attenuation) At(d float32) float32 {
	return 1 / (1 + a.Linear*d + a.Quadratic*d*d)
}

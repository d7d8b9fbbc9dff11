package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"voxshade/internal/graphics"
	"voxshade/internal/pipeline"
	"voxshade/internal/shading"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
)

// Environment keys.
const (
	EnvLightRange  = "VOXSHADE_LIGHT_RANGE"
	EnvAttenuation = "VOXSHADE_ATTENUATION"
	EnvBlinnPhong  = "VOXSHADE_BLINN_PHONG"
	EnvSpecularFix = "VOXSHADE_SPECULAR_FIX"
	EnvWidth       = "VOXSHADE_WIDTH"
	EnvHeight      = "VOXSHADE_HEIGHT"
	EnvWorkers     = "VOXSHADE_WORKERS"
	EnvAtlas       = "VOXSHADE_ATLAS"
	EnvFilter      = "VOXSHADE_FILTER"
	EnvLogPath     = "VOXSHADE_LOG_PATH"
)

// Attenuation modes.
const (
	AttenuationFixed = "fixed"
	AttenuationRange = "range"
)

// Settings is a snapshot of the render configuration.
type Settings struct {
	LightRange  float32
	Attenuation string
	BlinnPhong  bool
	SpecularFix bool
	Width       int
	Height      int
	Workers     int
	AtlasPath   string
	Filter      graphics.Filter
	LogPath     string
}

// Defaults returns the built-in configuration.
func Defaults() Settings {
	return Settings{
		LightRange:  32,
		Attenuation: AttenuationFixed,
		BlinnPhong:  true,
		Width:       640,
		Height:      480,
		Workers:     runtime.NumCPU(),
		Filter:      graphics.FilterNearest,
	}
}

// Validate reports every invalid field.
func (s Settings) Validate() error {
	var result *multierror.Error
	if s.Attenuation != AttenuationFixed && s.Attenuation != AttenuationRange {
		result = multierror.Append(result, fmt.Errorf("%s: unknown mode %q", EnvAttenuation, s.Attenuation))
	}
	if s.Attenuation == AttenuationRange && s.LightRange <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s: must be positive, got %g", EnvLightRange, s.LightRange))
	}
	if s.Width <= 0 || s.Height <= 0 {
		result = multierror.Append(result, fmt.Errorf("frame size %dx%d is empty", s.Width, s.Height))
	}
	if s.Workers <= 0 {
		result = multierror.Append(result, fmt.Errorf("%s: must be positive, got %d", EnvWorkers, s.Workers))
	}
	return result.ErrorOrNil()
}

// LightAttenuation returns the falloff coefficients selected by the settings.
func (s Settings) LightAttenuation() shading.Attenuation {
	if s.Attenuation == AttenuationRange {
		if a, err := shading.RangeAttenuation(s.LightRange); err == nil {
			return a
		}
	}
	return shading.FixedAttenuation
}

// ChunkPolicy returns the chunk shading policy chosen by the lighting toggles.
func (s Settings) ChunkPolicy() shading.Policy {
	return pipeline.ChunkPolicy(s.BlinnPhong, s.SpecularFix)
}

// Parse overlays values from lookup onto base. Every malformed value is
// reported; well-formed ones are still applied.
func Parse(base Settings, lookup func(string) (string, bool)) (Settings, error) {
	s := base
	var result *multierror.Error
	fail := func(key string, err error) {
		result = multierror.Append(result, fmt.Errorf("%s: %w", key, err))
	}

	if v, ok := lookup(EnvLightRange); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 32)
		if err != nil {
			fail(EnvLightRange, err)
		} else {
			s.LightRange = float32(f)
			// a configured range implies range attenuation unless overridden below
			s.Attenuation = AttenuationRange
		}
	}
	if v, ok := lookup(EnvAttenuation); ok {
		s.Attenuation = strings.ToLower(strings.TrimSpace(v))
	}
	for key, dst := range map[string]*bool{EnvBlinnPhong: &s.BlinnPhong, EnvSpecularFix: &s.SpecularFix} {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				fail(key, err)
				continue
			}
			*dst = b
		}
	}
	for key, dst := range map[string]*int{EnvWidth: &s.Width, EnvHeight: &s.Height, EnvWorkers: &s.Workers} {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				fail(key, err)
				continue
			}
			*dst = n
		}
	}
	if v, ok := lookup(EnvAtlas); ok {
		s.AtlasPath = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvFilter); ok {
		f, err := graphics.ParseFilter(v)
		if err != nil {
			fail(EnvFilter, err)
		} else {
			s.Filter = f
		}
	}
	if v, ok := lookup(EnvLogPath); ok {
		s.LogPath = strings.TrimSpace(v)
	}
	return s, result.ErrorOrNil()
}

// Load builds settings from the defaults, the optional env file at path and
// the process environment, in increasing precedence. A missing env file is
// not an error.
func Load(path string) (Settings, error) {
	file := map[string]string{}
	if path != "" {
		m, err := godotenv.Read(path)
		switch {
		case err == nil:
			file = m
		case !errors.Is(err, os.ErrNotExist):
			return Settings{}, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}
	s, err := Parse(Defaults(), lookup)
	if err != nil {
		return s, err
	}
	return s, s.Validate()
}

// RenderSettings holds the live configuration shared by the render loop and
// the input handlers.
type RenderSettings struct {
	mu sync.RWMutex
	s  Settings
}

var globalRenderSettings = &RenderSettings{s: Defaults()}

// Apply replaces the live settings. Sizes and worker counts are clamped to
// sane ranges.
func Apply(s Settings) {
	s.Width = clampInt(s.Width, 16, 4096)
	s.Height = clampInt(s.Height, 16, 4096)
	s.Workers = clampInt(s.Workers, 1, 256)
	globalRenderSettings.mu.Lock()
	globalRenderSettings.s = s
	globalRenderSettings.mu.Unlock()
}

// Current returns a snapshot of the live settings.
func Current() Settings {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.s
}

func GetBlinnPhong() bool {
	return Current().BlinnPhong
}

// ToggleBlinnPhong flips between lit and face-shaded chunks and returns the
// new value.
func ToggleBlinnPhong() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.BlinnPhong = !globalRenderSettings.s.BlinnPhong
	return globalRenderSettings.s.BlinnPhong
}

func GetSpecularFix() bool {
	return Current().SpecularFix
}

func ToggleSpecularFix() bool {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.SpecularFix = !globalRenderSettings.s.SpecularFix
	return globalRenderSettings.s.SpecularFix
}

// SetLightRange switches to range attenuation with r clamped to [1, 512].
func SetLightRange(r float32) {
	if r < 1 {
		r = 1
	}
	if r > 512 {
		r = 512
	}
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.s.LightRange = r
	globalRenderSettings.s.Attenuation = AttenuationRange
}

func GetLightRange() float32 {
	return Current().LightRange
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

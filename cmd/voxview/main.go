// Command voxview shows the demo voxel scene in a window, rendered in
// software by the shading pipelines and blitted with OpenGL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"runtime"
	"time"

	"voxshade/internal/config"
	"voxshade/internal/glview"
	"voxshade/internal/graphics"
	"voxshade/internal/input"
	"voxshade/internal/pipeline"
	"voxshade/internal/profiling"
	"voxshade/internal/render"
	"voxshade/internal/scene"
	"voxshade/internal/shading"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var (
	envPath  = flag.String("env", ".env", "env file with VOXSHADE_* settings, reloaded on change")
	seed     = flag.Int64("seed", 1, "terrain seed")
	size     = flag.Int("size", 32, "terrain edge length in blocks")
	fpsLimit = flag.Int("fps", 60, "frame rate cap, 0 for none")
)

const (
	rotateStep = 0.05
	zoomStep   = 0.5
)

func init() {
	runtime.LockOSThread()
}

// viewer holds the state the input actions drive.
type viewer struct {
	voxels   *scene.Voxels
	atlas    shading.Sampler
	orbit    *graphics.Orbit
	kinds    []pipeline.Kind
	active   int
	renderer *render.Renderer
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	settings, err := config.Load(*envPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	config.Apply(settings)
	settings = config.Current()
	defer config.SetupLogging(settings.LogPath).Close()

	if err := glfw.Init(); err != nil {
		log.Fatal(err)
	}
	defer glfw.Terminate()

	window, err := setupWindow(settings.Width, settings.Height)
	if err != nil {
		log.Fatal(err)
	}
	blitter, err := glview.NewBlitter()
	if err != nil {
		log.Fatal(err)
	}
	defer blitter.Delete()

	atlas, err := graphics.GetAtlas(settings.AtlasPath, settings.Filter)
	if err != nil {
		log.Fatalf("Error loading atlas: %v", err)
	}
	voxels, view := scene.Demo(*seed, int32(*size))
	v := &viewer{
		voxels: voxels,
		atlas:  atlas,
		orbit:  graphics.NewOrbit(view.Eye, view.Target),
		kinds:  []pipeline.Kind{pipeline.KindPackedChunk, pipeline.KindPackedColor, pipeline.KindRaw},
	}
	if err := v.rebuild(settings); err != nil {
		log.Fatal(err)
	}
	defer func() { v.renderer.Dispose() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := config.Watch(ctx, *envPath, func(s config.Settings) {
		log.Printf("policy %s, attenuation %s", s.ChunkPolicy(), s.Attenuation)
	}); err != nil {
		log.Printf("config hot reload disabled: %v", err)
	}

	im := input.NewInputManager()
	setupInputHandlers(window, im, v)
	runLoop(ctx, window, blitter, im, v)
}

func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "voxview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, err
	}
	// paced by FPSLimiter
	glfw.SwapInterval(0)
	return window, nil
}

// rebuild replaces the renderer with one drawing the active pipeline.
func (v *viewer) rebuild(s config.Settings) error {
	layer, err := render.NewSceneLayer(v.kinds[v.active], v.voxels, v.atlas)
	if err != nil {
		return err
	}
	if v.renderer != nil {
		v.renderer.Dispose()
	}
	v.renderer = render.NewRenderer(s.Width, s.Height, s.Workers, v.voxels, layer)
	log.Printf("pipeline %s", v.kinds[v.active])
	return nil
}

func setupInputHandlers(window *glfw.Window, im *input.InputManager, v *viewer) {
	im.SetKeyCallback(window)
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		v.orbit.Zoom(float32(-yoff) * zoomStep)
	})
}

// handleInput applies held and newly pressed actions for one frame.
func handleInput(window *glfw.Window, im *input.InputManager, v *viewer) {
	defer im.PostUpdate()
	if im.JustPressed(input.ActionQuit) {
		window.SetShouldClose(true)
	}
	if im.IsActive(input.ActionOrbitLeft) {
		v.orbit.Rotate(-rotateStep, 0)
	}
	if im.IsActive(input.ActionOrbitRight) {
		v.orbit.Rotate(rotateStep, 0)
	}
	if im.IsActive(input.ActionOrbitUp) {
		v.orbit.Rotate(0, rotateStep)
	}
	if im.IsActive(input.ActionOrbitDown) {
		v.orbit.Rotate(0, -rotateStep)
	}
	if im.IsActive(input.ActionZoomIn) {
		v.orbit.Zoom(-zoomStep)
	}
	if im.IsActive(input.ActionZoomOut) {
		v.orbit.Zoom(zoomStep)
	}

	if im.JustPressed(input.ActionToggleBlinnPhong) {
		log.Printf("blinn-phong %v", config.ToggleBlinnPhong())
	}
	if im.JustPressed(input.ActionToggleSpecularFix) {
		log.Printf("specular fix %v", config.ToggleSpecularFix())
	}
	if im.JustPressed(input.ActionLightRangeUp) {
		config.SetLightRange(config.GetLightRange() * 1.25)
		log.Printf("light range %.1f", config.GetLightRange())
	}
	if im.JustPressed(input.ActionLightRangeDown) {
		config.SetLightRange(config.GetLightRange() / 1.25)
		log.Printf("light range %.1f", config.GetLightRange())
	}
	if im.JustPressed(input.ActionNextPipeline) {
		v.active = (v.active + 1) % len(v.kinds)
		if err := v.rebuild(config.Current()); err != nil {
			log.Printf("pipeline switch failed: %v", err)
		}
	}
}

func runLoop(ctx context.Context, window *glfw.Window, blitter *glview.Blitter, im *input.InputManager, v *viewer) {
	limiter := NewFPSLimiter(*fpsLimit)
	frames := 0
	lastFPSCheckTime := time.Now()
	var last render.FrameStats

	for !window.ShouldClose() {
		profiling.ResetFrame()
		handleInput(window, im, v)
		s := config.Current()

		v.orbit.Apply(v.renderer.Camera())
		v.renderer.UpdateViewport(s.Width, s.Height)
		stats, err := v.renderer.Render(ctx, s)
		if err != nil {
			log.Printf("render failed: %v", err)
			break
		}
		last = stats

		func() {
			defer profiling.Track("glview.Blit")()
			fbWidth, fbHeight := window.GetFramebufferSize()
			gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
			blitter.Upload(v.renderer.Frame())
			blitter.Draw()
		}()
		func() { defer profiling.Track("glfw.SwapBuffers")(); window.SwapBuffers() }()
		func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()
		frames++

		if time.Since(lastFPSCheckTime) >= time.Second {
			window.SetTitle(fmt.Sprintf("voxview - %s - %d fps", v.kinds[v.active], frames))
			log.Printf("%d fps, %s", frames, last)
			log.Printf("slowest: %s", profiling.TopN(4))
			frames = 0
			lastFPSCheckTime = time.Now()
		}
		limiter.Wait()
	}
	log.Print(profiling.MemoryLine())
}

// Command voxshade renders the demo voxel scene through each shading
// pipeline and writes one PNG per pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"voxshade/internal/config"
	"voxshade/internal/graphics"
	"voxshade/internal/overlay"
	"voxshade/internal/pipeline"
	"voxshade/internal/profiling"
	"voxshade/internal/render"
	"voxshade/internal/scene"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/nfnt/resize"
)

var (
	envPath   = flag.String("env", ".env", "optional env file with VOXSHADE_* settings")
	pipelines = flag.String("pipeline", "chunk,color,raw", "comma separated pipelines to render")
	outDir    = flag.String("out", ".", "output directory")
	name      = flag.String("name", "", "output file prefix (random when empty)")
	scale     = flag.Int("scale", 1, "integer upscale factor of the written images")
	seed      = flag.Int64("seed", 1, "terrain seed")
	size      = flag.Int("size", 24, "terrain edge length in blocks")
	label     = flag.Bool("label", true, "draw a stats label into each frame")
	fontPath  = flag.String("font", "", "TrueType font for the label (built-in bitmap font when empty)")
)

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

	kinds, err := parseKinds(*pipelines)
	if err != nil {
		log.Fatal(err)
	}
	if *scale < 1 || *size < 1 {
		log.Fatalf("scale and size must be positive")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal(err)
	}

	atlas, err := graphics.GetAtlas(settings.AtlasPath, settings.Filter)
	if err != nil {
		log.Fatalf("Error loading atlas: %v", err)
	}
	voxels, view := scene.Demo(*seed, int32(*size))
	log.Printf("scene: %d blocks, seed %d, atlas %dpx %s", voxels.Len(), *seed, atlas.Size(), settings.Filter)

	text := overlay.NewTextRenderer()
	if *fontPath != "" {
		if text, err = overlay.LoadTextRenderer(*fontPath, 14); err != nil {
			log.Fatalf("Error loading font: %v", err)
		}
	}
	defer text.Close()

	prefix := *name
	if prefix == "" {
		prefix = uuid.New().String()[:8]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for _, kind := range kinds {
		profiling.ResetFrame()
		layer, err := render.NewSceneLayer(kind, voxels, atlas)
		if err != nil {
			log.Fatal(err)
		}
		layers := []render.Renderable{layer}
		if *label {
			layers = append(layers, &render.LabelLayer{Text: text, Lines: labelLines(kind)})
		}

		r := render.NewRenderer(settings.Width, settings.Height, settings.Workers, voxels, layers...)
		cam := r.Camera()
		cam.Position = view.Eye
		cam.LookAt(view.Target)

		stats, err := r.Render(ctx, settings)
		if err != nil {
			r.Dispose()
			log.Fatalf("Error rendering %s: %v", kind, err)
		}
		path := filepath.Join(*outDir, fmt.Sprintf("%s-%s.png", prefix, kind))
		written, err := writePNG(path, r.Frame(), *scale)
		r.Dispose()
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s: %s", kind, stats)
		log.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(written)))
		log.Printf("slowest: %s", profiling.TopN(4))
	}
	log.Print(profiling.MemoryLine())
}

func parseKinds(list string) ([]pipeline.Kind, error) {
	var kinds []pipeline.Kind
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		k, err := pipeline.ParseKind(s)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no pipelines selected")
	}
	return kinds, nil
}

func labelLines(kind pipeline.Kind) func(rc render.RenderContext) []string {
	return func(rc render.RenderContext) []string {
		mode := "flat"
		if kind == pipeline.KindPackedChunk {
			mode = rc.Settings.ChunkPolicy().String()
		}
		look := "look: none"
		if rc.Look.Hit {
			look = fmt.Sprintf("look: %v", rc.Look.Voxel)
		}
		att := rc.Settings.LightAttenuation()
		return []string{
			fmt.Sprintf("%s / %s", kind, mode),
			fmt.Sprintf("att: %.4f %.5f", att.Linear, att.Quadratic),
			look,
			fmt.Sprintf("chunks: %d drawn %d culled", rc.Stats.ChunksDrawn, rc.Stats.ChunksCulled),
		}
	}
}

// writePNG encodes img, upscaled by an integer factor, and returns the file
// size.
func writePNG(path string, img image.Image, factor int) (int64, error) {
	if factor > 1 {
		b := img.Bounds()
		img = resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.NearestNeighbor)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return 0, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return 0, err
	}
	return info.Size(), f.Close()
}

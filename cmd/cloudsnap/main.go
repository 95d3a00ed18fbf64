// Cloud snapshot tool - renders one shape at a fixed diffusion to a PNG file.
//
// Usage: go run ./cmd/cloudsnap -shape heart -diffusion 0.5 -out heart.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/coupling"
	"github.com/pthm-cable/nebula/gesture"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/shapes"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	shapeName := flag.String("shape", "ringed_sphere", "Shape to render")
	color := flag.String("color", "", "Hex colour (empty = use config)")
	count := flag.Int("count", 0, "Particle count (0 = use config)")
	diffusion := flag.Float64("diffusion", 0, "Gesture diffusion in [0,1]")
	elapsed := flag.Float64("time", 0, "Animation time in seconds")
	seed := flag.Int64("seed", 1, "RNG seed")
	outPath := flag.String("out", "cloud.png", "Output PNG path")
	width := flag.Int("width", 800, "Render width")
	height := flag.Int("height", 800, "Render height")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *color == "" {
		*color = cfg.Particles.InitialColor
	}
	if *count == 0 {
		*count = cfg.Particles.InitialCount
	}

	kind, err := shapes.ParseKind(*shapeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	buf, err := shapes.Sample(kind, *count, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to sample: %v\n", err)
		os.Exit(1)
	}

	coupler, err := coupling.New(coupling.ParamsFromConfig(cfg.Render), *color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid colour: %v\n", err)
		os.Exit(1)
	}
	u := coupler.Couple(coupling.FrameContext{
		Elapsed: *elapsed,
		Gesture: gesture.Reading{Diffusion: float32(*diffusion), Active: *diffusion > 0, Hands: 1},
		Color:   *color,
	})

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(*width), int32(*height), "Cloud Snapshot")
	defer rl.CloseWindow()

	cloud := renderer.NewPointCloud(float32(cfg.Render.PointSize), cfg.Render.BatchSize)
	cloud.Init()
	defer cloud.Unload()

	target := rl.LoadRenderTexture(int32(*width), int32(*height))
	defer rl.UnloadRenderTexture(target)

	t := float32(*elapsed)
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	cloud.Draw(
		buf,
		u,
		renderer.ModelMatrix(t, float32(cfg.Render.RotationY), float32(cfg.Render.RotationZ)),
		renderer.Camera3D(camera.NewFromConfig(cfg.Camera)),
		float32(*width)/float32(*height),
	)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Cloud rendered to: %s (%s, %d particles, diffusion %.2f)\n", *outPath, kind, *count, u.Diffusion)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}

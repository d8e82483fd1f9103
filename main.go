package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Config holds all command line options
type Config struct {
	SceneType  string
	Width      int
	Height     int
	Samples    int
	MaxDepth   int
	Seed       int64
	NumWorkers int
	Roulette   bool
	Output     string
	Format     string
	SaveScene  string
	Help       bool
}

func main() {
	config, fs := parseFlags(os.Args[1:])

	if config.Help {
		showHelp(fs)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// parseFlags parses command line arguments into a Config
func parseFlags(args []string) (Config, *flag.FlagSet) {
	config := Config{}
	fs := flag.NewFlagSet("pathtracer", flag.ExitOnError)

	fs.StringVar(&config.SceneType, "scene", "cornell", "Scene: a built-in name, a scenes/<name>.json file, or a path to a .json file")
	fs.IntVar(&config.Width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&config.Height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Depth past which only emission is gathered (0 = scene default)")
	fs.Int64Var(&config.Seed, "seed", 0, "Random seed (0 = time based)")
	fs.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = logical CPU count)")
	fs.BoolVar(&config.Roulette, "rr", false, "Enable Russian Roulette path termination")
	fs.StringVar(&config.Output, "output", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.StringVar(&config.Format, "format", "ppm", "Output format when -output is not given: 'ppm' or 'png'")
	fs.StringVar(&config.SaveScene, "save-scene", "", "Write the resolved scene to this JSON file and exit")
	fs.BoolVar(&config.Help, "help", false, "Show help information")

	fs.Parse(args)
	return config, fs
}

// showHelp displays usage information
func showHelp(fs *flag.FlagSet) {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	fs.SetOutput(os.Stdout)
	fs.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	if scenes, err := scene.ListScenes(); err == nil {
		for _, s := range scenes {
			fmt.Printf("  %-12s - %s\n", s.ID, s.Description)
		}
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.ppm")
}

// applyOverrides copies positive command line values over the scene's sampling config
func applyOverrides(sc *scene.Scene, config Config) {
	cfg := &sc.SamplingConfig
	if config.Width > 0 {
		cfg.Width = config.Width
	}
	if config.Height > 0 {
		cfg.Height = config.Height
	}
	if config.Samples > 0 {
		cfg.SamplesPerPixel = config.Samples
	}
	if config.MaxDepth > 0 {
		cfg.MaxDepth = config.MaxDepth
	}
	if config.Seed != 0 {
		cfg.Seed = config.Seed
	}
	if config.Roulette {
		cfg.RussianRoulette = true
	}
}

// createOutputDir returns the per-scene output directory, named after a JSON file's base name when a path is given
func createOutputDir(sceneType string) string {
	name := sceneType
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return filepath.Join("output", name)
}

// outputPath resolves where the image goes
func outputPath(config Config, format imageio.Format, now time.Time) string {
	if config.Output != "" {
		return config.Output
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join(createOutputDir(config.SceneType), fmt.Sprintf("render_%s.%s", timestamp, format))
}

// run renders the configured scene and writes the image
func run(ctx context.Context, config Config, logger core.Logger) error {
	format, err := imageio.ParseFormat(config.Format)
	if err != nil {
		return err
	}

	sc, err := scene.Create(config.SceneType)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}
	applyOverrides(sc, config)

	if config.SaveScene != "" {
		if err := scene.SaveFile(config.SaveScene, sc); err != nil {
			return fmt.Errorf("failed to save scene: %w", err)
		}
		logger.Printf("Scene saved as %s\n", config.SaveScene)
		return nil
	}

	integratorInst, err := integrator.New(sc)
	if err != nil {
		return err
	}

	host := renderer.ReadHostInfo()
	logger.Printf("Scene %q: %d spheres, %s shading (host: %d logical CPUs, %.1f GiB free)\n",
		sc.Name, sc.GetPrimitiveCount(), sc.Shading, host.LogicalCPUs, float64(host.AvailableMemory)/(1<<30))

	raytracer := renderer.NewRaytracer(sc, integratorInst, renderer.RenderConfig{NumWorkers: config.NumWorkers}, logger)
	buf, stats, err := raytracer.Render(ctx)
	if err != nil {
		return err
	}
	logger.Printf("Seed %d, %d workers, %v\n", stats.Seed, stats.NumWorkers, stats.Duration)

	// Write failures are reported but do not invalidate the render
	if err := imageio.WriteFile(outputPath(config, format, time.Now()), buf, logger); err != nil {
		return fmt.Errorf("render finished but could not be saved: %w", err)
	}
	return nil
}

package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// RenderConfig contains settings that affect how a render is scheduled but not what it produces
type RenderConfig struct {
	NumWorkers int // Number of parallel workers (0 = logical CPU count)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Raytracer renders a whole scene into a pixel buffer using a pool of workers
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     RenderConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(sc *scene.Scene, integratorInst integrator.Integrator, config RenderConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = discardLogger{}
	}

	return &Raytracer{
		scene:      sc,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// validate rejects configurations the scheduler cannot render
func (rt *Raytracer) validate() error {
	cfg := rt.scene.SamplingConfig
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel <= 0 {
		return fmt.Errorf("invalid samples per pixel %d", cfg.SamplesPerPixel)
	}
	if rt.scene.Camera == nil {
		return errors.New("scene has no camera")
	}
	if rt.integrator == nil {
		return errors.New("no integrator")
	}
	return nil
}

// Render computes every pixel of the scene.
// Exactly width×height results are collected; each is written to the buffer by this goroutine only.
// The first worker failure or a cancelled ctx aborts the render and is returned.
func (rt *Raytracer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	if err := rt.validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}

	cfg := rt.scene.SamplingConfig
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
		rt.logger.Printf("Using random seed %d\n", seed)
	}

	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(NewPixelRenderer(rt.scene, rt.integrator, cfg.SamplesPerPixel), cfg.Width, seed, rt.config.NumWorkers)
	total := cfg.Width * cfg.Height

	rt.logger.Printf("Rendering %dx%d at %d samples/pixel (using %d workers)...\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, pool.GetNumWorkers())

	startTime := time.Now()
	pool.Start(ctx)
	pool.SubmitImage(cfg.Width, cfg.Height)

	buf := NewPixelBuffer(cfg.Width, cfg.Height)
	stats := RenderStats{
		TotalPixels:     total,
		SamplesPerPixel: cfg.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
		Seed:            seed,
	}

	nextReport := 1
	for received := 0; received < total; received++ {
		result, err := pool.GetResult()
		if err != nil {
			cancel()
			waitErr := pool.Wait()
			if parent.Err() != nil {
				rt.logger.Printf("Rendering cancelled after %d of %d pixels\n", received, total)
				return nil, RenderStats{}, parent.Err()
			}
			if waitErr != nil {
				err = waitErr
			}
			return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
		}

		if result.Err != nil {
			cancel()
			pool.Wait()
			return nil, RenderStats{}, fmt.Errorf("render failed: %w", result.Err)
		}

		buf.Set(result.Row, result.Col, result.Color)
		stats.TotalSamples += result.Samples

		for nextReport <= 10 && (received+1)*10 >= nextReport*total {
			rt.logger.Printf("Raytracing... (%d%%)\n", nextReport*10)
			nextReport++
		}
	}

	if err := pool.Wait(); err != nil {
		if parent.Err() != nil {
			return nil, RenderStats{}, parent.Err()
		}
		return nil, RenderStats{}, fmt.Errorf("render aborted: %w", err)
	}

	stats.Duration = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(buf)

	rt.logger.Printf("Render completed in %v (%d samples, average luminance %.4f)\n",
		stats.Duration, stats.TotalSamples, stats.AverageLuminance)

	return buf, stats, nil
}

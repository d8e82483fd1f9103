package renderer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// queueDepth is the number of tasks buffered per worker
const queueDepth = 64

// PixelTask represents a single pixel to be rendered by the worker pool
type PixelTask struct {
	Row int
	Col int
}

// PixelResult contains the result from rendering a pixel
type PixelResult struct {
	Row     int
	Col     int
	Color   core.Vec3
	Samples int
	Err     error
}

// WorkerPool manages parallel pixel rendering.
// Workers run under an errgroup so that the first failure or a cancelled
// context stops the producer and every worker.
type WorkerPool struct {
	renderer    *PixelRenderer
	width       int
	baseSeed    int64
	numWorkers  int
	taskQueue   chan PixelTask
	resultQueue chan PixelResult
	group       *errgroup.Group
	ctx         context.Context
}

// Worker handles individual pixel rendering tasks
type Worker struct {
	ID      int
	sampler *core.RandomSampler
	pool    *WorkerPool
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// A non-positive count falls back to DefaultNumWorkers.
func NewWorkerPool(renderer *PixelRenderer, width int, baseSeed int64, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers()
	}

	return &WorkerPool{
		renderer:    renderer,
		width:       width,
		baseSeed:    baseSeed,
		numWorkers:  numWorkers,
		taskQueue:   make(chan PixelTask, numWorkers*queueDepth),
		resultQueue: make(chan PixelResult, numWorkers*queueDepth),
	}
}

// Start launches all workers. They exit when the task queue is closed and drained, or ctx is done.
func (wp *WorkerPool) Start(ctx context.Context) {
	wp.group, wp.ctx = errgroup.WithContext(ctx)

	for i := 0; i < wp.numWorkers; i++ {
		worker := &Worker{
			ID:      i,
			sampler: core.NewSeededSampler(wp.baseSeed),
			pool:    wp,
		}
		wp.group.Go(worker.run)
	}
}

// SubmitImage feeds one task per pixel from a producer goroutine, then closes the task queue
func (wp *WorkerPool) SubmitImage(width, height int) {
	wp.group.Go(func() error {
		defer close(wp.taskQueue)

		for row := 0; row < height; row++ {
			for col := 0; col < width; col++ {
				if err := wp.SubmitTask(PixelTask{Row: row, Col: col}); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SubmitTask submits a pixel task, giving up if the pool has been cancelled
func (wp *WorkerPool) SubmitTask(task PixelTask) error {
	select {
	case wp.taskQueue <- task:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// GetResult waits for the next completed pixel
func (wp *WorkerPool) GetResult() (PixelResult, error) {
	select {
	case result := <-wp.resultQueue:
		return result, nil
	case <-wp.ctx.Done():
		return PixelResult{}, wp.ctx.Err()
	}
}

// Wait blocks until the producer and all workers have exited
func (wp *WorkerPool) Wait() error {
	return wp.group.Wait()
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// PixelSeed derives a pixel's generator seed from the render seed and its row-major index.
// The mix spreads neighbouring indices across the seed space.
func PixelSeed(baseSeed int64, index int) int64 {
	return int64(uint64(baseSeed) ^ (uint64(index+1) * 0x9E3779B97F4A7C15))
}

// run is the main worker loop
func (w *Worker) run() error {
	ctx := w.pool.ctx

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task, ok := <-w.pool.taskQueue:
			if !ok {
				return nil
			}

			result := w.render(task)

			select {
			case w.pool.resultQueue <- result:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

// render computes a single pixel, turning a panic into a result error
func (w *Worker) render(task PixelTask) (result PixelResult) {
	result = PixelResult{Row: task.Row, Col: task.Col}

	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("pixel (%d, %d): render panicked: %v", task.Row, task.Col, r)
		}
	}()

	w.sampler.Reseed(PixelSeed(w.pool.baseSeed, task.Row*w.pool.width+task.Col))
	result.Color = w.pool.renderer.RenderPixel(task.Row, task.Col, w.sampler)
	result.Samples = w.pool.renderer.SamplesPerPixel()

	return result
}

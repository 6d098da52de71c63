package renderer

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// RowTask represents a single image row to render
type RowTask struct {
	Row int // Image row, 0 = top
}

// RowResult contains the result from rendering a row
type RowResult struct {
	Row      int
	WorkerID int
	Samples  int
	Segments int
	Duration time.Duration
	Err      error // Set when the row was skipped or abandoned on cancellation
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker renders rows with its own random generator and row buffer
type Worker struct {
	ID          int
	job         *frameJob
	random      *rand.Rand
	row         []color.RGBA
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// frameJob is the read-only state every worker of a frame shares
type frameJob struct {
	renderer *Renderer
	img      *image.RGBA
}

// newWorkerPool creates a worker pool with the specified number of workers.
// Queues are sized to hold every row of the frame so submission never blocks.
func newWorkerPool(job *frameJob, numWorkers int) *WorkerPool {
	height := job.renderer.config.Height

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, height),
		resultQueue: make(chan RowResult, height),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			job:         job,
			random:      rand.New(rand.NewSource(1)),
			row:         make([]color.RGBA, job.renderer.config.Width),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start(ctx context.Context) {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(ctx, &wp.wg)
	}
}

// Stop shuts down all workers once the queued tasks are drained
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. After cancellation remaining tasks are
// answered with an error result without rendering.
func (w *Worker) run(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		if err := ctx.Err(); err != nil {
			w.resultQueue <- RowResult{Row: task.Row, WorkerID: w.ID, Err: err}
			continue
		}
		w.resultQueue <- w.renderRow(ctx, task.Row)
	}
}

// renderRow renders one row into the worker's buffer and commits it to the
// frame only when complete, so a cancelled row leaves the image untouched.
func (w *Worker) renderRow(ctx context.Context, y int) RowResult {
	r := w.job.renderer
	width, height := r.config.Width, r.config.Height
	spp := r.config.SamplesPerPixel
	start := time.Now()

	// Per-row seeding makes every pixel independent of which worker runs it
	w.random.Seed(rowSeed(r.config.Seed, y))

	result := RowResult{Row: y, WorkerID: w.ID}
	for x := 0; x < width; x++ {
		if err := ctx.Err(); err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}

		var colorAccum mgl64.Vec3
		for sample := 0; sample < spp; sample++ {
			// Jitter within the pixel; t runs bottom to top
			s := (float64(x) + w.random.Float64()) / float64(width)
			t := (float64(height-1-y) + w.random.Float64()) / float64(height)

			ray := r.camera.GetRay(s, t, w.random)
			sampleColor, segments := r.integrator.RayColor(ray, r.world, w.random)
			colorAccum = colorAccum.Add(sampleColor)
			result.Segments += segments
		}
		result.Samples += spp

		w.row[x] = vec3ToColor(colorAccum.Mul(1.0 / float64(spp)))
	}

	// Rows are disjoint, so concurrent writers never touch the same pixels
	for x, c := range w.row {
		w.job.img.SetRGBA(x, y, c)
	}

	result.Duration = time.Since(start)
	return result
}

// rowSeed derives a well-mixed generator seed for a row (splitmix64)
func rowSeed(frameSeed int64, row int) int64 {
	z := uint64(frameSeed) + uint64(row+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

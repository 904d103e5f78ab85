package field

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"

	"go.uber.org/zap"

	"github.com/wrobotics/field-randomizer/pkg/models"
)

// ErrPoolStopped is returned by Submit once the pool is shutting down.
var ErrPoolStopped = errors.New("render pool is shutting down")

// RenderJob is a field request waiting for a worker.
type RenderJob struct {
	Challenge models.ChallengeType
	Direction models.Direction
	Result    chan *RenderResult
}

// RenderResult carries the outcome of a render job.
type RenderResult struct {
	PNG    []byte
	Layout *Layout
	Error  error
}

// WorkerPool bounds the number of concurrent renders. Every worker owns its
// own random generator, so jobs never contend on a shared source and each
// response is an independent randomization.
type WorkerPool struct {
	workers  int
	jobQueue chan *RenderJob
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.Logger
	renderer *Renderer
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(workers int, logger *zap.Logger, renderer *Renderer) *WorkerPool {
	if workers <= 0 {
		workers = 4 // default to 4 workers
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobQueue: make(chan *RenderJob, workers*2), // buffer for 2x workers
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		renderer: renderer,
	}
}

// Start launches all worker goroutines.
func (wp *WorkerPool) Start() {
	wp.logger.Info("Starting render worker pool",
		zap.Int("workers", wp.workers),
		zap.Int("queue_size", cap(wp.jobQueue)))

	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool. The queue is never closed;
// late Submit calls fail with ErrPoolStopped instead of racing a close.
func (wp *WorkerPool) Stop() {
	wp.logger.Info("Stopping render worker pool")
	wp.cancel()
	wp.wg.Wait()
	wp.logger.Info("Render worker pool stopped")
}

// Submit queues a field request and waits for its result.
func (wp *WorkerPool) Submit(ctx context.Context, challenge models.ChallengeType, direction models.Direction) (*RenderResult, error) {
	resultChan := make(chan *RenderResult, 1)

	job := &RenderJob{
		Challenge: challenge,
		Direction: direction,
		Result:    resultChan,
	}

	select {
	case wp.jobQueue <- job:
		// Job submitted
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-wp.ctx.Done():
		return nil, ErrPoolStopped
	}

	select {
	case result := <-resultChan:
		if result.Error != nil {
			return nil, result.Error
		}
		return result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-wp.ctx.Done():
		return nil, ErrPoolStopped
	}
}

// worker is the main loop for a single worker.
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	// Seed the worker generator from the process-wide source.
	gen := NewGenerator(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	wp.logger.Debug("Render worker started", zap.Int("worker_id", id))

	for {
		select {
		case job := <-wp.jobQueue:
			wp.processJob(id, gen, job)
		case <-wp.ctx.Done():
			wp.logger.Debug("Render worker stopping", zap.Int("worker_id", id))
			return
		}
	}
}

// processJob randomizes and renders a single field request.
func (wp *WorkerPool) processJob(workerID int, gen *Generator, job *RenderJob) {
	layout, err := gen.Generate(job.Challenge, job.Direction)
	if err != nil {
		job.Result <- &RenderResult{Error: err}
		close(job.Result)
		wp.logger.Debug("Worker rejected job",
			zap.Int("worker_id", workerID),
			zap.String("challenge", string(job.Challenge)),
			zap.Error(err))
		return
	}

	png, err := wp.renderer.Render(layout)

	job.Result <- &RenderResult{
		PNG:    png,
		Layout: layout,
		Error:  err,
	}
	close(job.Result)

	if err != nil {
		wp.logger.Error("Worker failed to render layout",
			zap.Int("worker_id", workerID),
			zap.String("challenge", string(job.Challenge)),
			zap.Error(err))
	} else {
		wp.logger.Debug("Worker completed job",
			zap.Int("worker_id", workerID),
			zap.String("challenge", string(layout.Challenge)),
			zap.String("direction", string(layout.Direction)),
			zap.String("start_section", layout.StartSection.String()),
			zap.String("start_zone", layout.StartZone.String()))
	}
}

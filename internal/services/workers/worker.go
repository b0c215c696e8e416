package workers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/killallgit/interviewcut/internal/logging"
	"github.com/killallgit/interviewcut/internal/models"
	"github.com/killallgit/interviewcut/internal/services/jobs"
	"github.com/sirupsen/logrus"
)

// JobProcessor defines the interface for processing different job types.
// A processor completes the job itself; a returned error fails it.
type JobProcessor interface {
	ProcessJob(ctx context.Context, job *models.Job) error
	CanProcess(jobType models.JobType) bool
}

// knownJobTypes lists every type a worker may ask the queue for
var knownJobTypes = []models.JobType{
	models.JobTypeFragmentBatch,
}

// Worker represents a background worker that processes jobs
type Worker struct {
	id           string
	jobService   jobs.Service
	processors   []JobProcessor
	stopChan     chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
	pollInterval time.Duration
	logger       logrus.FieldLogger
}

// NewWorker creates a new worker instance
func NewWorker(id string, jobService jobs.Service, pollInterval time.Duration, logger logrus.FieldLogger) *Worker {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &Worker{
		id:           id,
		jobService:   jobService,
		processors:   make([]JobProcessor, 0),
		stopChan:     make(chan struct{}),
		pollInterval: pollInterval,
		logger:       logging.OrDiscard(logger).WithField("worker", id),
	}
}

// RegisterProcessor registers a job processor
func (w *Worker) RegisterProcessor(processor JobProcessor) {
	w.processors = append(w.processors, processor)
}

// Start starts the worker in a goroutine
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go w.run(ctx)
}

// Stop stops the worker gracefully, waiting for the current job
func (w *Worker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
	w.wg.Wait()
}

// run is the main worker loop
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	w.logger.Debug("worker starting")
	defer w.logger.Debug("worker stopped")

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case <-ticker.C:
			if _, err := w.ProcessNext(ctx); err != nil {
				w.logger.WithError(err).Warn("error processing job")
			}
		}
	}
}

// supportedTypes returns the job types at least one processor accepts
func (w *Worker) supportedTypes() []models.JobType {
	var types []models.JobType
	for _, jobType := range knownJobTypes {
		for _, p := range w.processors {
			if p.CanProcess(jobType) {
				types = append(types, jobType)
				break
			}
		}
	}
	return types
}

// ProcessNext claims and processes the next available job. It reports
// whether a job was claimed; an empty queue is not an error.
func (w *Worker) ProcessNext(ctx context.Context) (bool, error) {
	supported := w.supportedTypes()
	if len(supported) == 0 {
		return false, fmt.Errorf("no job processors registered")
	}

	job, err := w.jobService.ClaimNextJob(ctx, w.id, supported)
	if err != nil {
		if errors.Is(err, jobs.ErrNoJobsAvailable) || errors.Is(err, jobs.ErrJobAlreadyClaimed) {
			return false, nil
		}
		return false, err
	}

	log := w.logger.WithFields(logrus.Fields{"job_id": job.ID, "type": job.Type})
	log.Info("job claimed")

	var processor JobProcessor
	for _, p := range w.processors {
		if p.CanProcess(job.Type) {
			processor = p
			break
		}
	}
	if processor == nil {
		err := fmt.Errorf("no processor found for job type %s", job.Type)
		if failErr := w.jobService.FailJob(ctx, job.ID, err); failErr != nil {
			log.WithError(failErr).Error("failed to mark job as failed")
		}
		return true, err
	}

	if err := processor.ProcessJob(ctx, job); err != nil {
		// The job context may be cancelled by shutdown; record the failure regardless.
		if failErr := w.jobService.FailJob(context.WithoutCancel(ctx), job.ID, err); failErr != nil {
			log.WithError(failErr).Error("failed to mark job as failed")
		}
		return true, fmt.Errorf("job processing failed: %w", err)
	}

	log.Info("job completed")
	return true, nil
}

// WorkerPool manages multiple workers
type WorkerPool struct {
	workers    []*Worker
	jobService jobs.Service
	logger     logrus.FieldLogger
	mu         sync.RWMutex
	started    bool
}

// NewWorkerPool creates a new worker pool. One worker keeps cuts sequential.
func NewWorkerPool(jobService jobs.Service, workerCount int, pollInterval time.Duration, logger logrus.FieldLogger) *WorkerPool {
	if workerCount <= 0 {
		workerCount = 1
	}
	logger = logging.OrDiscard(logger)

	pool := &WorkerPool{
		jobService: jobService,
		workers:    make([]*Worker, workerCount),
		logger:     logger,
	}

	for i := 0; i < workerCount; i++ {
		workerID := fmt.Sprintf("worker-%d", i+1)
		pool.workers[i] = NewWorker(workerID, jobService, pollInterval, logger)
	}

	return pool
}

// Size returns the number of workers
func (p *WorkerPool) Size() int {
	return len(p.workers)
}

// RegisterProcessor registers a processor with all workers
func (p *WorkerPool) RegisterProcessor(processor JobProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, worker := range p.workers {
		worker.RegisterProcessor(processor)
	}
}

// Start starts all workers
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("worker pool already started")
	}

	p.logger.WithField("workers", len(p.workers)).Info("starting worker pool")

	for _, worker := range p.workers {
		worker.Start(ctx)
	}

	p.started = true
	return nil
}

// Stop stops all workers gracefully
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}

	p.logger.Info("stopping worker pool")

	for _, worker := range p.workers {
		worker.Stop()
	}

	p.started = false
}

// Started reports whether the pool is running
func (p *WorkerPool) Started() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.started
}

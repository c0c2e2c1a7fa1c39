package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"agent_server/core/domain"
	"agent_server/core/port/in"

	"github.com/go-pkgz/pool"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Job is one bulk-enrichment unit: a single task for a single email.
type Job struct {
	ID      string
	EmailID string
	Task    domain.TaskType
}

// PoolConfig holds worker pool configuration.
type PoolConfig struct {
	Workers   int
	QueueSize int
	// JobTimeout bounds one enrichment run, external retries included.
	JobTimeout time.Duration
}

// DefaultPoolConfig returns default pool configuration.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		Workers:    4,
		QueueSize:  256,
		JobTimeout: 3 * time.Minute,
	}
}

// PoolMetrics holds pool counters.
type PoolMetrics struct {
	JobsProcessed int64
	JobsFailed    int64
	JobsDropped   int64
	JobsQueued    int32
}

// EnrichPool runs bulk enrichment jobs on a go-pkgz/pool worker group so
// an enrich-all request returns immediately while tasks drain in the
// background.
type EnrichPool struct {
	enricher in.EnrichmentService
	config   *PoolConfig

	pool *pool.WorkerGroup[*Job]

	ctx    context.Context
	cancel context.CancelFunc

	metrics PoolMetrics
	queued  int32
	log     zerolog.Logger

	started bool
	mu      sync.Mutex
}

// enrichWorker implements pool.Worker for Job processing.
type enrichWorker struct {
	p *EnrichPool
}

// Do implements pool.Worker.
func (w *enrichWorker) Do(ctx context.Context, job *Job) error {
	return w.p.processJob(ctx, job)
}

// NewEnrichPool creates a new bulk enrichment pool.
func NewEnrichPool(enricher in.EnrichmentService, config *PoolConfig, log zerolog.Logger) *EnrichPool {
	if config == nil {
		config = DefaultPoolConfig()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &EnrichPool{
		enricher: enricher,
		config:   config,
		ctx:      ctx,
		cancel:   cancel,
		log:      log.With().Str("component", "enrich_pool").Logger(),
	}
}

// Start starts the worker pool.
func (p *EnrichPool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	p.pool = pool.New[*Job](p.config.Workers, &enrichWorker{p: p}).
		WithWorkerChanSize(p.config.QueueSize).
		WithContinueOnError()

	if err := p.pool.Go(p.ctx); err != nil {
		return err
	}
	p.started = true

	p.log.Info().
		Int("workers", p.config.Workers).
		Int("queue_size", p.config.QueueSize).
		Msg("enrichment worker pool started")
	return nil
}

// Stop gracefully stops the worker pool, draining queued jobs.
func (p *EnrichPool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer closeCancel()

	if err := p.pool.Close(closeCtx); err != nil {
		p.log.Warn().Err(err).Msg("error closing enrichment pool")
	}
	p.cancel()

	p.log.Info().
		Int64("processed", atomic.LoadInt64(&p.metrics.JobsProcessed)).
		Int64("failed", atomic.LoadInt64(&p.metrics.JobsFailed)).
		Msg("enrichment worker pool stopped")
}

// Submit queues one task for one email. Returns false when the pool is
// not running.
func (p *EnrichPool) Submit(emailID string, task domain.TaskType) bool {
	p.mu.Lock()
	started := p.started
	p.mu.Unlock()
	if !started {
		atomic.AddInt64(&p.metrics.JobsDropped, 1)
		return false
	}

	p.pool.Submit(&Job{
		ID:      uuid.NewString(),
		EmailID: emailID,
		Task:    task,
	})
	atomic.AddInt32(&p.queued, 1)
	return true
}

// SubmitEmail queues all three tasks for one email and reports how many
// jobs were accepted.
func (p *EnrichPool) SubmitEmail(emailID string) int {
	submitted := 0
	for _, task := range domain.AllTasks() {
		if p.Submit(emailID, task) {
			submitted++
		}
	}
	return submitted
}

// Metrics returns a snapshot of the pool counters.
func (p *EnrichPool) Metrics() PoolMetrics {
	return PoolMetrics{
		JobsProcessed: atomic.LoadInt64(&p.metrics.JobsProcessed),
		JobsFailed:    atomic.LoadInt64(&p.metrics.JobsFailed),
		JobsDropped:   atomic.LoadInt64(&p.metrics.JobsDropped),
		JobsQueued:    atomic.LoadInt32(&p.queued),
	}
}

// processJob runs one enrichment task with the configured timeout.
func (p *EnrichPool) processJob(ctx context.Context, job *Job) error {
	atomic.AddInt32(&p.queued, -1)

	jobCtx, cancel := context.WithTimeout(ctx, p.config.JobTimeout)
	defer cancel()

	start := time.Now()
	_, err := p.enricher.EnrichTask(jobCtx, job.EmailID, job.Task)
	if err != nil {
		atomic.AddInt64(&p.metrics.JobsFailed, 1)
		p.log.Warn().Err(err).
			Str("job_id", job.ID).
			Str("email_id", job.EmailID).
			Str("task", string(job.Task)).
			Dur("elapsed", time.Since(start)).
			Msg("bulk enrichment job failed")
		return err
	}

	atomic.AddInt64(&p.metrics.JobsProcessed, 1)
	p.log.Debug().
		Str("job_id", job.ID).
		Str("email_id", job.EmailID).
		Str("task", string(job.Task)).
		Dur("elapsed", time.Since(start)).
		Msg("bulk enrichment job done")
	return nil
}

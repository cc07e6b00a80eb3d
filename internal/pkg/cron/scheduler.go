package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one periodic refresh task.
type Job struct {
	Name      string
	Interval  time.Duration
	Immediate bool
	Run       func(ctx context.Context) error
}

// Scheduler drives the engine's background refresh jobs on plain
// tickers.
type Scheduler struct {
	mu     sync.Mutex
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Add registers a job. Immediate jobs run once at startup before their
// first tick; the rest wait a full interval.
func (s *Scheduler) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job)
	slog.Info("Refresh job registered", "job", job.Name, "interval", job.Interval)
}

// Start launches every registered job.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}
	slog.Info("Refresh scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Refresh scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	if job.Immediate {
		s.execute(job)
	}

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(job)
		}
	}
}

func (s *Scheduler) execute(job Job) {
	start := time.Now()
	if err := job.Run(s.ctx); err != nil {
		slog.Error("Refresh job failed", "job", job.Name, "error", err, "took", time.Since(start))
		return
	}
	slog.Debug("Refresh job completed", "job", job.Name, "took", time.Since(start))
}

// RunOnce executes every job a single time; used by tests.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		if err := job.Run(ctx); err != nil {
			slog.Error("Refresh job failed", "job", job.Name, "error", err)
		}
	}
}

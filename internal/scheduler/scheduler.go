// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// Job is a named task run on a standard five-field cron schedule.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	LastRun  time.Time `json:"last_run"`
	NextRun  time.Time `json:"next_run"`
	LastErr  string    `json:"last_error,omitempty"`
}

type registeredJob struct {
	job     Job
	entryID cron.EntryID
	lastRun time.Time
	lastErr error
}

// Scheduler handles periodic jobs. A job still running when its next tick
// arrives skips that tick.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.Mutex
	jobs map[string]*registeredJob
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Register adds a job. Names must be unique and schedules valid.
func (s *Scheduler) Register(job Job) error {
	if job.Name == "" || job.Run == nil {
		return fmt.Errorf("job needs a name and a run function")
	}
	if _, err := cron.ParseStandard(job.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q for job %s: %w", job.Schedule, job.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %s already registered", job.Name)
	}

	rj := &registeredJob{job: job}
	id, err := s.cron.AddFunc(job.Schedule, func() { s.run(rj) })
	if err != nil {
		return fmt.Errorf("scheduling job %s: %w", job.Name, err)
	}
	rj.entryID = id
	s.jobs[job.Name] = rj
	return nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RunNow runs the named job synchronously outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	rj, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s not found", name)
	}
	return s.run(rj)
}

// Jobs lists registered jobs by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]JobInfo, 0, len(s.jobs))
	for _, rj := range s.jobs {
		info := JobInfo{
			Name:     rj.job.Name,
			Schedule: rj.job.Schedule,
			LastRun:  rj.lastRun,
			NextRun:  s.cron.Entry(rj.entryID).Next,
		}
		if rj.lastErr != nil {
			info.LastErr = rj.lastErr.Error()
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (s *Scheduler) run(rj *registeredJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := rj.job.Run(ctx)

	s.mu.Lock()
	rj.lastRun = start
	rj.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled job failed", "job", rj.job.Name, "error", err)
		return err
	}
	s.logger.Debug("scheduled job finished", "job", rj.job.Name, "duration", time.Since(start))
	return nil
}

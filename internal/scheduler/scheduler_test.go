// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"testing"
)

func noop(context.Context) error { return nil }

func TestNew(t *testing.T) {
	logger := slog.Default()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestRegister(t *testing.T) {
	s := New(slog.Default())

	if err := s.Register(Job{Name: "prune", Schedule: "0 3 * * *", Run: noop}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name string
		job  Job
	}{
		{"duplicate name", Job{Name: "prune", Schedule: "* * * * *", Run: noop}},
		{"invalid schedule", Job{Name: "bad", Schedule: "every minute", Run: noop}},
		{"six fields", Job{Name: "seconds", Schedule: "0 * * * * *", Run: noop}},
		{"missing name", Job{Schedule: "* * * * *", Run: noop}},
		{"missing func", Job{Name: "nofunc", Schedule: "* * * * *"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Register(tt.job); err == nil {
				t.Errorf("Register(%+v) expected error", tt.job)
			}
		})
	}

	if got := len(s.Jobs()); got != 1 {
		t.Errorf("Jobs() len = %d, want 1", got)
	}
}

func TestRunNow(t *testing.T) {
	s := New(slog.Default())

	calls := 0
	failing := errors.New("boom")
	_ = s.Register(Job{Name: "count", Schedule: "@hourly", Run: func(context.Context) error {
		calls++
		return nil
	}})
	_ = s.Register(Job{Name: "fail", Schedule: "@daily", Run: func(context.Context) error {
		return failing
	}})

	if err := s.RunNow("count"); err != nil {
		t.Fatalf("RunNow(count) error = %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if err := s.RunNow("fail"); !errors.Is(err, failing) {
		t.Errorf("RunNow(fail) error = %v, want %v", err, failing)
	}
	if err := s.RunNow("missing"); err == nil {
		t.Error("RunNow(missing) expected error")
	}

	jobs := s.Jobs()
	if len(jobs) != 2 || jobs[0].Name != "count" || jobs[1].Name != "fail" {
		t.Fatalf("Jobs() = %+v, want count and fail sorted", jobs)
	}
	if jobs[0].LastRun.IsZero() {
		t.Error("count LastRun not recorded")
	}
	if jobs[1].LastErr != "boom" {
		t.Errorf("fail LastErr = %q, want boom", jobs[1].LastErr)
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(slog.Default())
	if err := s.Register(Job{Name: "noop", Schedule: "@every 1h", Run: noop}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	s.Start()
	if next := s.Jobs()[0].NextRun; next.IsZero() {
		t.Error("NextRun not set after Start")
	}
	s.Stop()
}

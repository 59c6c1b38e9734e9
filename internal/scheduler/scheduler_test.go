package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := New(context.Background(), quietLogger())
	if err := s.AddJob("bad", "not a cron", func(ctx context.Context) error { return nil }); err == nil {
		t.Fatalf("expected error for invalid schedule")
	}
	if len(s.ListJobs()) != 0 {
		t.Fatalf("unexpected jobs: %#v", s.ListJobs())
	}
}

func TestListAndRemoveJobs(t *testing.T) {
	s := New(context.Background(), quietLogger())
	noop := func(ctx context.Context) error { return nil }
	if err := s.AddJob("sync", "0 */6 * * *", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.AddJob("rescore", "30 3 * * *", noop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Start()
	defer s.Stop()

	jobs := s.ListJobs()
	if len(jobs) != 2 || jobs[0].Name != "rescore" || jobs[1].Schedule != "0 */6 * * *" {
		t.Fatalf("unexpected jobs: %#v", jobs)
	}
	if jobs[0].Next.IsZero() {
		t.Fatalf("next run not computed: %#v", jobs[0])
	}

	if !s.RemoveJob("sync") || s.RemoveJob("sync") {
		t.Fatalf("remove should succeed exactly once")
	}
	if jobs := s.ListJobs(); len(jobs) != 1 || jobs[0].Name != "rescore" {
		t.Fatalf("unexpected jobs after remove: %#v", jobs)
	}
}

func TestRunNowPropagatesContextAndError(t *testing.T) {
	base, cancel := context.WithCancel(context.Background())
	s := New(base, quietLogger())
	if err := s.AddJob("x", "@every 1h", func(ctx context.Context) error { return ctx.Err() }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	if err := s.RunNow("x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled context, got %v", err)
	}
	if err := s.RunNow("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestRunNowUsesRegisteredJob(t *testing.T) {
	s := New(context.Background(), quietLogger())
	calls := 0
	if err := s.AddJob("sync", "0 */6 * * *", func(ctx context.Context) error { calls++; return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.RunNow("sync"); err != nil || calls != 1 {
		t.Fatalf("unexpected run: calls=%d err=%v", calls, err)
	}
	s.RemoveJob("sync")
	if err := s.RunNow("sync"); !errors.Is(err, ErrJobNotFound) || calls != 1 {
		t.Fatalf("removed job should not run: calls=%d err=%v", calls, err)
	}
}

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kvenkat/niftywatch/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     int64
	err      error
	done     chan struct{}
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }

func (j *fakeJob) Run(ctx context.Context) error {
	atomic.AddInt64(&j.runs, 1)
	if j.done != nil {
		select {
		case j.done <- struct{}{}:
		default:
		}
	}
	return j.err
}

func newFakeJob(name string) *fakeJob {
	// Far-future schedule so cron never fires during the test.
	return &fakeJob{name: name, schedule: "0 0 0 1 1 *", done: make(chan struct{}, 8)}
}

func TestAddJob_RejectsDuplicate(t *testing.T) {
	s := New(logger.NewNop())

	if err := s.AddJob(newFakeJob("a")); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.AddJob(newFakeJob("a")); err == nil {
		t.Fatal("duplicate job name should be rejected")
	}
}

func TestAddJob_RejectsBadSchedule(t *testing.T) {
	s := New(logger.NewNop())

	job := newFakeJob("bad")
	job.schedule = "not a cron expression"
	if err := s.AddJob(job); err == nil {
		t.Fatal("invalid schedule should be rejected")
	}
}

func TestRunJob_Immediate(t *testing.T) {
	s := New(logger.NewNop())
	job := newFakeJob("manual")
	if err := s.AddJob(job); err != nil {
		t.Fatal(err)
	}

	if err := s.RunJob("manual"); err != nil {
		t.Fatalf("RunJob() error = %v", err)
	}

	select {
	case <-job.done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestRunJob_UnknownName(t *testing.T) {
	s := New(logger.NewNop())
	if err := s.RunJob("nope"); err == nil {
		t.Fatal("unknown job name should error")
	}
}

func TestRunJob_RecordsHistory(t *testing.T) {
	s := New(logger.NewNop()).WithRetry(0, 0)
	job := newFakeJob("tracked")
	if err := s.AddJob(job); err != nil {
		t.Fatal(err)
	}

	s.runJob(job)

	history, err := s.GetJobHistory("tracked")
	if err != nil {
		t.Fatalf("GetJobHistory() error = %v", err)
	}
	if len(history.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(history.Results))
	}
	if !history.Results[0].Success {
		t.Error("run should be recorded as success")
	}
	if history.GetSuccessRate() != 1.0 {
		t.Errorf("success rate = %v, want 1.0", history.GetSuccessRate())
	}
}

func TestRunJob_RetriesThenFails(t *testing.T) {
	s := New(logger.NewNop()).WithRetry(2, 0)
	job := newFakeJob("failing")
	job.err = errors.New("boom")
	if err := s.AddJob(job); err != nil {
		t.Fatal(err)
	}

	s.runJob(job)

	if got := atomic.LoadInt64(&job.runs); got != 3 {
		t.Errorf("attempts = %d, want 3 (1 + 2 retries)", got)
	}

	history, _ := s.GetJobHistory("failing")
	if len(history.Results) != 1 || history.Results[0].Success {
		t.Errorf("failure should be recorded once: %+v", history.Results)
	}
	if history.Results[0].Error == "" {
		t.Error("result should carry the error message")
	}
}

func TestJobHistory_Capped(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 150; i++ {
		h.AddResult(JobResult{Success: true})
	}
	if len(h.Results) != 100 {
		t.Errorf("history length = %d, want 100", len(h.Results))
	}
}

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenkay/backend/pkg/config"
	"github.com/tenkay/backend/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	runs     int
	err      error
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func testScheduler() *Scheduler {
	s := New(logger.New(&config.Config{Env: "test", LogLevel: "error"}))
	s.retryDelay = time.Millisecond
	return s
}

func TestAddJobRejectsDuplicates(t *testing.T) {
	s := testScheduler()

	job := &fakeJob{name: "sync", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))
	assert.Error(t, s.AddJob(job))
	assert.Equal(t, []string{"sync"}, s.JobNames())
}

func TestAddJobRejectsBadSchedule(t *testing.T) {
	s := testScheduler()

	err := s.AddJob(&fakeJob{name: "bad", schedule: "not a cron expr"})
	assert.Error(t, err)
}

func TestRunJobRecordsHistory(t *testing.T) {
	s := testScheduler()

	job := &fakeJob{name: "sync", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	stats := s.Stats()["sync"]
	assert.Equal(t, 1, stats.TotalRuns)
	assert.Equal(t, 1, stats.SuccessCount)
	assert.Equal(t, 1.0, stats.SuccessRate)
	require.NotNil(t, stats.LastRun)
}

func TestRunJobRetriesOnFailure(t *testing.T) {
	s := testScheduler()

	job := &fakeJob{name: "flaky", schedule: "0 0 6 * * *", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	// Initial attempt plus maxRetries
	assert.Equal(t, s.maxRetries+1, job.runs)

	stats := s.Stats()["flaky"]
	assert.Equal(t, 1, stats.FailureCount)
	assert.Equal(t, 0.0, stats.SuccessRate)
}

func TestRunJobAndWait(t *testing.T) {
	s := testScheduler()

	job := &fakeJob{name: "sync", schedule: "0 0 6 * * *"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJobAndWait(context.Background(), "sync"))
	assert.Equal(t, 1, job.runs)

	assert.Error(t, s.RunJobAndWait(context.Background(), "missing"))
}

func TestJobHistoryBounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "sync", Success: i%2 == 0})
	}
	assert.Len(t, h.Results, historyLimit)
}

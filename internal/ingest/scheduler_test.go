package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

type countingRunner struct {
	mu   sync.Mutex
	runs int
	err  error
	ran  chan struct{}
}

func newCountingRunner(err error) *countingRunner {
	return &countingRunner{err: err, ran: make(chan struct{}, 16)}
}

func (r *countingRunner) Sync(context.Context) error {
	r.mu.Lock()
	r.runs++
	r.mu.Unlock()
	r.ran <- struct{}{}
	return r.err
}

func (r *countingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runs
}

func waitForRun(t *testing.T, r *countingRunner) {
	t.Helper()
	select {
	case <-r.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a scheduled sync")
	}
}

func TestScheduler_BackupInterval(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC))
	runner := newCountingRunner(nil)
	sched := NewScheduler(runner, clock, 6, 6*time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(2)
	clock.Advance(6 * time.Hour)
	waitForRun(t, runner)

	assert.Equal(t, 1, runner.count())

	cancel()
	<-done
}

func TestScheduler_DailyHour(t *testing.T) {
	// 23:30; the next daily slot at hour 6 is 6.5 hours away, while the
	// backup interval is far longer.
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.June, 1, 23, 30, 0, 0, time.UTC))
	runner := newCountingRunner(nil)
	sched := NewScheduler(runner, clock, 6, 48*time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	clock.BlockUntil(2)
	clock.Advance(6*time.Hour + 30*time.Minute)
	waitForRun(t, runner)

	assert.Equal(t, 1, runner.count())
}

func TestScheduler_KeepsGoingAfterFailure(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC))
	runner := newCountingRunner(errors.New("upstream down"))
	sched := NewScheduler(runner, clock, 6, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sched.Run(ctx)

	clock.BlockUntil(2)
	clock.Advance(time.Hour)
	waitForRun(t, runner)

	clock.BlockUntil(2)
	clock.Advance(time.Hour)
	waitForRun(t, runner)

	assert.Equal(t, 2, runner.count())
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	clock := clockwork.NewFakeClock()
	runner := newCountingRunner(nil)
	sched := NewScheduler(runner, clock, 6, time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.Run(ctx)
		close(done)
	}()

	clock.BlockUntil(2)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}
	assert.Equal(t, 0, runner.count())
}

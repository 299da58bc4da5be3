package sweeper

import (
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hustlehub/backend/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweeper_RunsImmediatelyAndOnTicks(t *testing.T) {
	var calls atomic.Int32

	service := new(mocks.ServiceMock)
	service.On("ReleaseOverdue", mock.Anything).
		Run(func(args mock.Arguments) { calls.Add(1) }).
		Return(2, nil)

	s := New(service, 20*time.Millisecond, testLogger())
	s.Start()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond, "expected the immediate pass plus ticker passes")

	s.Stop()
}

func TestSweeper_KeepsRunningAfterSweepError(t *testing.T) {
	var calls atomic.Int32

	service := new(mocks.ServiceMock)
	service.On("ReleaseOverdue", mock.Anything).
		Run(func(args mock.Arguments) { calls.Add(1) }).
		Return(0, errors.New("db down"))

	s := New(service, 20*time.Millisecond, testLogger())
	s.Start()

	assert.Eventually(t, func() bool {
		return calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond, "a failed sweep must not stop the loop")

	s.Stop()
}

func TestSweeper_StopWaitsForTheLoop(t *testing.T) {
	service := new(mocks.ServiceMock)
	service.On("ReleaseOverdue", mock.Anything).Return(0, nil)

	s := New(service, time.Hour, testLogger())
	s.Start()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return")
	}
}
